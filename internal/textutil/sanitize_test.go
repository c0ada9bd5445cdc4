package textutil

import "testing"

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Star Wars", "Star Wars"},
		{"colon", "Alien: Resurrection", "Alien Resurrection"},
		{"slash and question", "What Is It? N/A", "What Is It NA"},
		{"angle brackets and pipe", "<Movie> | Cut", "Movie  Cut"},
		{"whitespace trimmed", "  Heat  ", "Heat"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFileName(tt.input); got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single word", "Action", "action"},
		{"multi word", "Science Fiction", "science-fiction"},
		{"full name", "George Lucas", "george-lucas"},
		{"diacritics", "Pedro Almodóvar", "pedro-almodovar"},
		{"punctuation collapses", "Monty Python's Life", "monty-python-s-life"},
		{"country code", "US", "us"},
		{"empty", "", ""},
		{"only punctuation", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slug(tt.input); got != tt.want {
				t.Errorf("Slug(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
