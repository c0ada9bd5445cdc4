package tags

import (
	"reflect"
	"testing"
	"time"

	"cinelog/internal/letterboxd"
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

func TestDeriveStarWars(t *testing.T) {
	got := Derive(starWarsEntry(), starWarsMetadata())
	want := []string{
		"george-lucas",
		"8-rating",
		"1970s",
		"2025-watched",
		"adventure",
		"action",
		"science-fiction",
		"us",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Derive() = %v, want %v", got, want)
	}
}

func TestDeriveDeterministic(t *testing.T) {
	first := Derive(starWarsEntry(), starWarsMetadata())
	second := Derive(starWarsEntry(), starWarsMetadata())
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Derive() not deterministic: %v vs %v", first, second)
	}
}

func TestDeriveMissingFields(t *testing.T) {
	entry := letterboxd.Entry{
		Title:       "Obscure Film",
		WatchedDate: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		Rating:      3.5,
	}
	meta := tmdb.Metadata{Genres: []string{"Drama"}}

	got := Derive(entry, meta)
	want := []string{"7-rating", "2025-watched", "drama"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Derive() = %v, want %v", got, want)
	}
}

func TestDeriveUnratedHasNoRatingTag(t *testing.T) {
	entry := starWarsEntry()
	entry.Rating = 0
	for _, tag := range Derive(entry, starWarsMetadata()) {
		if IsRatingTag(tag) {
			t.Errorf("unrated entry produced rating tag %q", tag)
		}
	}
}

func TestDeriveCollapsesDuplicates(t *testing.T) {
	meta := starWarsMetadata()
	meta.Genres = append(meta.Genres, "Action")
	got := Derive(starWarsEntry(), meta)

	count := 0
	for _, tag := range got {
		if tag == "action" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("duplicate genre produced %d action tags, want 1", count)
	}
}

func TestDecadeTag(t *testing.T) {
	tests := []struct {
		year string
		want string
	}{
		{"1977", "1970s"},
		{"1973", "1970s"},
		{"2001", "2000s"},
		{"", ""},
		{"77", ""},
		{"abcd", ""},
	}
	for _, tt := range tests {
		if got := DecadeTag(tt.year); got != tt.want {
			t.Errorf("DecadeTag(%q) = %q, want %q", tt.year, got, tt.want)
		}
	}
}

func TestRatingTagHalfSteps(t *testing.T) {
	tests := []struct {
		rating float64
		want   string
	}{
		{0.5, "1-rating"},
		{3.5, "7-rating"},
		{4.0, "8-rating"},
		{5.0, "10-rating"},
	}
	for _, tt := range tests {
		if got := RatingTag(tt.rating); got != tt.want {
			t.Errorf("RatingTag(%v) = %q, want %q", tt.rating, got, tt.want)
		}
	}
}

func TestIsRatingTag(t *testing.T) {
	tests := []struct {
		tag  string
		want bool
	}{
		{"8-rating", true},
		{"10-rating", true},
		{"rating", false},
		{"x-rating", false},
		{"1970s", false},
	}
	for _, tt := range tests {
		if got := IsRatingTag(tt.tag); got != tt.want {
			t.Errorf("IsRatingTag(%q) = %v, want %v", tt.tag, got, tt.want)
		}
	}
}
