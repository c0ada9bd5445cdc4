package notes

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedNote indicates an existing note file does not match the
// expected generated/user structure. The reconciler surfaces it instead of
// guessing a merge point.
var ErrMalformedNote = errors.New("malformed note")

const (
	separatorLine = "---"
	calloutPrefix = "> [!NOTE] "
	tagPrefix     = "#"
)

// Note is the typed form of a parsed note file.
type Note struct {
	// Head is the generated block above the separator.
	Head []string
	// User is the user region: callouts and free text, preserved verbatim.
	User []string
	// TagLine is the trailing "#tag #tag ..." line.
	TagLine string
}

// Parse splits raw note content into its typed regions. It fails with
// ErrMalformedNote when the separator is missing or duplicated, or when the
// trailing tag line is absent.
func Parse(data []byte) (*Note, error) {
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")

	sep := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == separatorLine {
			if sep >= 0 {
				return nil, fmt.Errorf("%w: duplicated %q separator", ErrMalformedNote, separatorLine)
			}
			sep = i
		}
	}
	if sep < 0 {
		return nil, fmt.Errorf("%w: missing %q separator", ErrMalformedNote, separatorLine)
	}

	head := trimBlank(lines[:sep])
	if len(head) == 0 {
		return nil, fmt.Errorf("%w: empty generated region", ErrMalformedNote)
	}

	rest := trimBlank(lines[sep+1:])
	if len(rest) == 0 || !strings.HasPrefix(strings.TrimSpace(rest[len(rest)-1]), tagPrefix) {
		return nil, fmt.Errorf("%w: missing trailing tag line", ErrMalformedNote)
	}

	return &Note{
		Head:    head,
		User:    trimBlank(rest[:len(rest)-1]),
		TagLine: strings.TrimSpace(rest[len(rest)-1]),
	}, nil
}

// Render serializes the note into its canonical byte form. Rendering is
// byte-stable: Parse(Render(n)) reproduces n exactly.
func (n *Note) Render() []byte {
	var b strings.Builder
	b.Grow(256)
	for _, line := range n.Head {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString("\n" + separatorLine + "\n\n")
	for _, line := range n.User {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString("\n" + n.TagLine + "\n")
	return []byte(b.String())
}

// HasCallout reports whether the user region already contains a callout for
// the given watched-date label.
func (n *Note) HasCallout(label string) bool {
	want := calloutPrefix + label
	for _, line := range n.User {
		if strings.TrimSpace(line) == strings.TrimSpace(want) {
			return true
		}
	}
	return false
}

// AppendCallout adds a new dated callout below the existing user content.
func (n *Note) AppendCallout(label string) {
	if len(n.User) > 0 {
		n.User = append(n.User, "")
	}
	n.User = append(n.User, calloutPrefix+label)
}

func trimBlank(lines []string) []string {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}
