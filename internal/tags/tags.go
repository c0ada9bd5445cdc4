// Package tags derives the note tag set for a diary entry.
//
// Derivation is pure: the same entry and metadata always produce the same
// ordered tag sequence. Missing optional fields (no director, no country,
// unknown release year) simply contribute no tag.
package tags

import (
	"fmt"
	"time"

	"cinelog/internal/letterboxd"
	"cinelog/internal/textutil"
	"cinelog/internal/tmdb"
)

// Derive returns the ordered tag sequence for one watch event: director
// slugs, rating, decade, watched year, genre slugs, country slugs.
// Duplicates collapse, keeping the first occurrence.
func Derive(entry letterboxd.Entry, meta tmdb.Metadata) []string {
	out := make([]string, 0, 6+len(meta.Genres)+len(meta.Countries))
	seen := make(map[string]struct{})
	add := func(tag string) {
		if tag == "" {
			return
		}
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}

	for _, director := range meta.Directors {
		add(textutil.Slug(director))
	}
	if entry.HasRating() {
		add(RatingTag(entry.Rating))
	}
	year := entry.Year
	if year == "" {
		year = meta.Year()
	}
	add(DecadeTag(year))
	add(WatchedTag(entry.WatchedDate))
	for _, genre := range meta.Genres {
		add(textutil.Slug(genre))
	}
	for _, country := range meta.Countries {
		add(textutil.Slug(country))
	}
	return out
}

// RatingTag maps the half-step 5-point member rating onto the 10-point
// integer tag scale, e.g. 4.0 -> "8-rating", 3.5 -> "7-rating".
func RatingTag(rating float64) string {
	return fmt.Sprintf("%d-rating", int(rating*2))
}

// DecadeTag returns the release decade tag, e.g. "1977" -> "1970s".
// Returns "" when the year is not a four-digit value.
func DecadeTag(year string) string {
	if len(year) != 4 {
		return ""
	}
	for _, r := range year {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return year[:3] + "0s"
}

// WatchedTag returns the watched-year tag, e.g. "2025-watched".
func WatchedTag(watched time.Time) string {
	if watched.IsZero() {
		return ""
	}
	return watched.Format("2006") + "-watched"
}

// IsRatingTag reports whether the token (without the leading '#') is a
// rating tag. The reconciler uses this to swap rating tags in place.
func IsRatingTag(tag string) bool {
	if len(tag) < len("1-rating") {
		return false
	}
	const suffix = "-rating"
	if tag[len(tag)-len(suffix):] != suffix {
		return false
	}
	for _, r := range tag[:len(tag)-len(suffix)] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
