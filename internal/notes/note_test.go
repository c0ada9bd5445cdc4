package notes

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

const wellFormedNote = `![](https://image.tmdb.org/t/p/w185/6FfCtAuVAW8XJjZ7eWeLibRLWTw.jpg)
[URL](https://letterboxd.com/tmdb/11)
**Director:** George Lucas
**Rating:** :luc_star::luc_star::luc_star::luc_star:

---

> [!NOTE] 12.08.2025

#george-lucas #8-rating #1970s #2025-watched #adventure #action #science-fiction #us
`

func TestParseWellFormed(t *testing.T) {
	note, err := Parse([]byte(wellFormedNote))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(note.Head) != 4 {
		t.Errorf("Head has %d lines, want 4: %v", len(note.Head), note.Head)
	}
	if want := []string{"> [!NOTE] 12.08.2025"}; !reflect.DeepEqual(note.User, want) {
		t.Errorf("User = %v, want %v", note.User, want)
	}
	if !strings.HasPrefix(note.TagLine, "#george-lucas") {
		t.Errorf("TagLine = %q", note.TagLine)
	}
}

func TestParseRenderRoundTrip(t *testing.T) {
	note, err := Parse([]byte(wellFormedNote))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := string(note.Render()); got != wellFormedNote {
		t.Errorf("Render() = %q, want %q", got, wellFormedNote)
	}
}

func TestParseMissingSeparator(t *testing.T) {
	_, err := Parse([]byte("just some text\n#tag\n"))
	if !errors.Is(err, ErrMalformedNote) {
		t.Fatalf("Parse() error = %v, want ErrMalformedNote", err)
	}
	if !strings.Contains(err.Error(), "missing") {
		t.Errorf("error %q should name the missing separator", err)
	}
}

func TestParseDuplicatedSeparator(t *testing.T) {
	corrupted := strings.Replace(wellFormedNote, "> [!NOTE] 12.08.2025", "> [!NOTE] 12.08.2025\n\n---", 1)
	_, err := Parse([]byte(corrupted))
	if !errors.Is(err, ErrMalformedNote) {
		t.Fatalf("Parse() error = %v, want ErrMalformedNote", err)
	}
	if !strings.Contains(err.Error(), "duplicated") {
		t.Errorf("error %q should name the duplicated separator", err)
	}
}

func TestParseMissingTagLine(t *testing.T) {
	_, err := Parse([]byte("head line\n\n---\n\n> [!NOTE] 12.08.2025\n"))
	if !errors.Is(err, ErrMalformedNote) {
		t.Fatalf("Parse() error = %v, want ErrMalformedNote", err)
	}
}

func TestParseEmptyGeneratedRegion(t *testing.T) {
	_, err := Parse([]byte("\n---\n\n#tag\n"))
	if !errors.Is(err, ErrMalformedNote) {
		t.Fatalf("Parse() error = %v, want ErrMalformedNote", err)
	}
}

func TestHasCallout(t *testing.T) {
	note, err := Parse([]byte(wellFormedNote))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !note.HasCallout("12.08.2025") {
		t.Error("HasCallout(12.08.2025) = false, want true")
	}
	if note.HasCallout("13.08.2025") {
		t.Error("HasCallout(13.08.2025) = true, want false")
	}
}

func TestAppendCalloutPreservesUserText(t *testing.T) {
	note, err := Parse([]byte(wellFormedNote))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	note.User = append(note.User, "", "Loved the opening shot.")
	before := strings.Join(note.User, "\n")

	note.AppendCallout("20.08.2025")

	after := strings.Join(note.User, "\n")
	if !strings.Contains(after, before) {
		t.Errorf("prior user content lost:\nbefore %q\nafter %q", before, after)
	}
	if !note.HasCallout("20.08.2025") {
		t.Error("new callout missing")
	}
}
