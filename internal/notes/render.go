package notes

import (
	"fmt"
	"math"
	"strings"

	"cinelog/internal/letterboxd"
	"cinelog/internal/tags"
	"cinelog/internal/tmdb"
)

const (
	// posterBaseURL serves the fixed-width poster variant referenced from
	// note head blocks.
	posterBaseURL = "https://image.tmdb.org/t/p/w185"
	// filmURLBase resolves a TMDB id to the film's Letterboxd page.
	filmURLBase = "https://letterboxd.com/tmdb/"

	starGlyph     = ":luc_star:"
	halfStarGlyph = ":luc_star_half:"
)

// New builds a complete note for a first watch: generated head, one dated
// callout, and the derived tag line.
func New(entry letterboxd.Entry, meta tmdb.Metadata, tagList []string) *Note {
	note := &Note{
		Head:    Head(entry, meta),
		TagLine: TagLine(tagList),
	}
	note.AppendCallout(entry.WatchedLabel())
	return note
}

// Head renders the generated block: poster reference (when a poster path is
// known), film URL, director line, and rating glyph line.
func Head(entry letterboxd.Entry, meta tmdb.Metadata) []string {
	head := make([]string, 0, 4)
	if meta.PosterPath != "" {
		head = append(head, fmt.Sprintf("![](%s%s)", posterBaseURL, meta.PosterPath))
	}
	head = append(head, fmt.Sprintf("[URL](%s%d)", filmURLBase, entry.TMDBID))
	head = append(head, directorLine(meta.Directors))
	head = append(head, "**Rating:** "+StarGlyphs(entry.Rating))
	return head
}

func directorLine(directors []string) string {
	if len(directors) == 0 {
		return "**Director:** not found"
	}
	label := "**Director:**"
	if len(directors) > 1 {
		label = "**Directors:**"
	}
	return label + " " + strings.Join(directors, ", ")
}

// StarGlyphs renders a rating as repeated star glyphs with a trailing half
// star for half-step ratings. Returns "none" for an absent rating.
func StarGlyphs(rating float64) string {
	if rating <= 0 {
		return "none"
	}
	full := int(math.Floor(rating))
	var b strings.Builder
	for i := 0; i < full; i++ {
		b.WriteString(starGlyph)
	}
	if rating-float64(full) >= 0.5 {
		b.WriteString(halfStarGlyph)
	}
	return b.String()
}

// TagLine joins derived tags into the trailing note line.
func TagLine(tagList []string) string {
	tokens := make([]string, 0, len(tagList))
	for _, tag := range tagList {
		if tag == "" {
			continue
		}
		tokens = append(tokens, tagPrefix+tag)
	}
	return strings.Join(tokens, " ")
}

// MergeTagLine merges freshly derived rating and watched-year tags into an
// existing tag line. The rating tag is replaced in place, the watched-year
// tag is appended when absent, and every other token -- user-added tags and
// prior years' watched tags included -- is preserved.
func MergeTagLine(existing string, entry letterboxd.Entry) string {
	tokens := strings.Fields(existing)
	if entry.HasRating() {
		ratingToken := tagPrefix + tags.RatingTag(entry.Rating)
		replaced := false
		for i, token := range tokens {
			if tags.IsRatingTag(strings.TrimPrefix(token, tagPrefix)) {
				tokens[i] = ratingToken
				replaced = true
				break
			}
		}
		if !replaced {
			tokens = append(tokens, ratingToken)
		}
	}

	watchedToken := tagPrefix + tags.WatchedTag(entry.WatchedDate)
	if watchedToken != tagPrefix {
		present := false
		for _, token := range tokens {
			if token == watchedToken {
				present = true
				break
			}
		}
		if !present {
			tokens = append(tokens, watchedToken)
		}
	}
	return strings.Join(tokens, " ")
}
