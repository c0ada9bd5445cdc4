package notes

import (
	"strings"
	"testing"
	"time"

	"cinelog/internal/letterboxd"
	"cinelog/internal/tags"
	"cinelog/internal/tmdb"
)

func starWarsEntry() letterboxd.Entry {
	return letterboxd.Entry{
		TMDBID:      11,
		Title:       "Star Wars",
		Year:        "1977",
		WatchedDate: time.Date(2025, 8, 12, 0, 0, 0, 0, time.UTC),
		Rating:      4.0,
	}
}

func starWarsMetadata() tmdb.Metadata {
	return tmdb.Metadata{
		TMDBID:      11,
		Title:       "Star Wars",
		PosterPath:  "/6FfCtAuVAW8XJjZ7eWeLibRLWTw.jpg",
		ReleaseDate: "1977-05-25",
		Genres:      []string{"Adventure", "Action", "Science Fiction"},
		Directors:   []string{"George Lucas"},
		Countries:   []string{"US"},
	}
}

func TestNewNoteStarWarsScenario(t *testing.T) {
	entry := starWarsEntry()
	meta := starWarsMetadata()
	note := New(entry, meta, tags.Derive(entry, meta))

	if got := string(note.Render()); got != wellFormedNote {
		t.Errorf("Render() =\n%s\nwant\n%s", got, wellFormedNote)
	}
}

func TestNewNoteByteStable(t *testing.T) {
	entry := starWarsEntry()
	meta := starWarsMetadata()
	first := New(entry, meta, tags.Derive(entry, meta)).Render()
	second := New(entry, meta, tags.Derive(entry, meta)).Render()
	if string(first) != string(second) {
		t.Error("rendering identical inputs produced different bytes")
	}
}

func TestHeadOmitsPosterWhenMissing(t *testing.T) {
	meta := starWarsMetadata()
	meta.PosterPath = ""
	head := Head(starWarsEntry(), meta)
	for _, line := range head {
		if strings.HasPrefix(line, "![](") {
			t.Errorf("poster line present despite missing poster path: %q", line)
		}
	}
	if len(head) != 3 {
		t.Errorf("Head has %d lines, want 3", len(head))
	}
}

func TestHeadDirectorVariants(t *testing.T) {
	tests := []struct {
		name      string
		directors []string
		want      string
	}{
		{"none", nil, "**Director:** not found"},
		{"single", []string{"George Lucas"}, "**Director:** George Lucas"},
		{"multiple", []string{"Joel Coen", "Ethan Coen"}, "**Directors:** Joel Coen, Ethan Coen"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := directorLine(tt.directors); got != tt.want {
				t.Errorf("directorLine(%v) = %q, want %q", tt.directors, got, tt.want)
			}
		})
	}
}

func TestStarGlyphs(t *testing.T) {
	tests := []struct {
		rating float64
		want   string
	}{
		{0, "none"},
		{0.5, ":luc_star_half:"},
		{1, ":luc_star:"},
		{3.5, ":luc_star::luc_star::luc_star::luc_star_half:"},
		{4, ":luc_star::luc_star::luc_star::luc_star:"},
		{5, ":luc_star::luc_star::luc_star::luc_star::luc_star:"},
	}
	for _, tt := range tests {
		if got := StarGlyphs(tt.rating); got != tt.want {
			t.Errorf("StarGlyphs(%v) = %q, want %q", tt.rating, got, tt.want)
		}
	}
}

func TestMergeTagLineReplacesRating(t *testing.T) {
	entry := starWarsEntry()
	entry.Rating = 5.0
	entry.WatchedDate = time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)

	existing := "#george-lucas #8-rating #1970s #2025-watched #my-own-tag"
	got := MergeTagLine(existing, entry)
	want := "#george-lucas #10-rating #1970s #2025-watched #my-own-tag #2026-watched"
	if got != want {
		t.Errorf("MergeTagLine() = %q, want %q", got, want)
	}
}

func TestMergeTagLineIdempotent(t *testing.T) {
	entry := starWarsEntry()
	existing := "#george-lucas #8-rating #1970s #2025-watched"
	once := MergeTagLine(existing, entry)
	twice := MergeTagLine(once, entry)
	if once != existing || twice != existing {
		t.Errorf("MergeTagLine not idempotent: %q -> %q -> %q", existing, once, twice)
	}
}

func TestMergeTagLineAppendsRatingWhenAbsent(t *testing.T) {
	entry := starWarsEntry()
	got := MergeTagLine("#george-lucas #1970s #2025-watched", entry)
	if !strings.Contains(got, "#8-rating") {
		t.Errorf("MergeTagLine() = %q, missing rating tag", got)
	}
}
