package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

const detailsPayload = `{
	"id": 11,
	"title": "Star Wars",
	"original_title": "Star Wars",
	"poster_path": "/6FfCtAuVAW8XJjZ7eWeLibRLWTw.jpg",
	"release_date": "1977-05-25",
	"genres": [{"id": 12, "name": "Adventure"}, {"id": 28, "name": "Action"}, {"id": 878, "name": "Science Fiction"}],
	"origin_country": ["US"],
	"credits": {"crew": [
		{"name": "George Lucas", "job": "Director"},
		{"name": "Gary Kurtz", "job": "Producer"}
	]}
}`

func TestMovieMetadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/11" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("append_to_response"); got != "credits" {
			t.Errorf("append_to_response = %q, want credits", got)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-token" {
			t.Errorf("Authorization = %q, want bearer token", auth)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(detailsPayload))
	}))
	defer server.Close()

	client, err := New("test-token", server.URL, "en-US")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	meta, err := client.MovieMetadata(context.Background(), 11)
	if err != nil {
		t.Fatalf("MovieMetadata() error = %v", err)
	}

	if meta.Title != "Star Wars" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.Year() != "1977" {
		t.Errorf("Year() = %q, want 1977", meta.Year())
	}
	wantGenres := []string{"Adventure", "Action", "Science Fiction"}
	if !reflect.DeepEqual(meta.Genres, wantGenres) {
		t.Errorf("Genres = %v, want %v", meta.Genres, wantGenres)
	}
	wantDirectors := []string{"George Lucas"}
	if !reflect.DeepEqual(meta.Directors, wantDirectors) {
		t.Errorf("Directors = %v, want %v", meta.Directors, wantDirectors)
	}
	if !reflect.DeepEqual(meta.Countries, []string{"US"}) {
		t.Errorf("Countries = %v, want [US]", meta.Countries)
	}
	if meta.PosterPath != "/6FfCtAuVAW8XJjZ7eWeLibRLWTw.jpg" {
		t.Errorf("PosterPath = %q", meta.PosterPath)
	}
}

func TestMovieMetadataNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status_code":34}`, http.StatusNotFound)
	}))
	defer server.Close()

	client, err := New("test-token", server.URL, "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = client.MovieMetadata(context.Background(), 999999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("MovieMetadata() error = %v, want ErrNotFound", err)
	}
}

func TestNewRequiresToken(t *testing.T) {
	if _, err := New("", "", ""); err == nil {
		t.Fatal("New() accepted empty token")
	}
}

func TestMetadataYearMissing(t *testing.T) {
	if got := (Metadata{}).Year(); got != "" {
		t.Errorf("Year() = %q, want empty", got)
	}
}
