package notes

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cinelog/internal/letterboxd"
)

func TestNotRatedLogAdd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not_rated.md")
	log := NewNotRatedLog(path)
	entry := letterboxd.Entry{TMDBID: 1398, Title: "Stalker", Year: "1979"}

	added, err := log.Add(entry)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if !added {
		t.Fatal("Add() = false on first append")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	want := "Stalker - 1979 (tmdb:1398)\n"
	if string(data) != want {
		t.Errorf("log contents %q, want %q", data, want)
	}
}

func TestNotRatedLogDedup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not_rated.md")
	entry := letterboxd.Entry{TMDBID: 1398, Title: "Stalker", Year: "1979"}

	// Same run and a later run both see the entry unrated.
	for i := 0; i < 2; i++ {
		log := NewNotRatedLog(path)
		if _, err := log.Add(entry); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		added, err := log.Add(entry)
		if err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		if added {
			t.Errorf("run %d: Add() appended a duplicate", i)
		}
	}

	data, _ := os.ReadFile(path)
	if got := strings.Count(string(data), "tmdb:1398"); got != 1 {
		t.Errorf("movie logged %d times, want 1", got)
	}
}

func TestNotRatedLogFallbackKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not_rated.md")
	log := NewNotRatedLog(path)
	entry := letterboxd.Entry{Title: "Home Movie", Year: "2020"}

	if _, err := log.Add(entry); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	added, err := log.Add(entry)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if added {
		t.Error("Add() appended duplicate without tmdb id")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "Home Movie - 2020\n" {
		t.Errorf("log contents %q", data)
	}
}
