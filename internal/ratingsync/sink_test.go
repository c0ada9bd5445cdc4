package ratingsync

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func TestSearchQueries(t *testing.T) {
	tests := []struct {
		name  string
		movie Movie
		want  []string
	}{
		{
			"distinct titles",
			Movie{Title: "Stalker", OriginalTitle: "Сталкер", Year: "1979"},
			[]string{"Stalker 1979", "Сталкер 1979"},
		},
		{
			"identical titles collapse",
			Movie{Title: "Heat", OriginalTitle: "Heat", Year: "1995"},
			[]string{"Heat 1995"},
		},
		{
			"no year",
			Movie{Title: "Heat"},
			[]string{"Heat"},
		},
		{
			"no titles",
			Movie{Year: "1995"},
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := searchQueries(tt.movie)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("searchQueries() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSessionWireProtocol(t *testing.T) {
	var gotPaths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/session":
			var caps map[string]any
			if err := json.NewDecoder(r.Body).Decode(&caps); err != nil {
				t.Errorf("decode capabilities: %v", err)
			}
			_, _ = w.Write([]byte(`{"value":{"sessionId":"abc123","capabilities":{}}}`))
		case strings.HasSuffix(r.URL.Path, "/element"):
			_, _ = w.Write([]byte(`{"value":{"` + webElementKey + `":"el-1"}}`))
		default:
			_, _ = w.Write([]byte(`{"value":null}`))
		}
	}))
	defer server.Close()

	ctx := context.Background()
	sess, err := newSession(ctx, server.URL, "/tmp/profile")
	if err != nil {
		t.Fatalf("newSession() error = %v", err)
	}
	if sess.id != "abc123" {
		t.Errorf("session id = %q, want abc123", sess.id)
	}

	if err := sess.navigate(ctx, "https://example.com/"); err != nil {
		t.Fatalf("navigate() error = %v", err)
	}
	el, err := sess.findElement(ctx, "//input")
	if err != nil {
		t.Fatalf("findElement() error = %v", err)
	}
	if el != "el-1" {
		t.Errorf("element id = %q, want el-1", el)
	}
	if err := sess.click(ctx, el); err != nil {
		t.Fatalf("click() error = %v", err)
	}
	if err := sess.close(ctx); err != nil {
		t.Fatalf("close() error = %v", err)
	}

	want := []string{
		"POST /session",
		"POST /session/abc123/url",
		"POST /session/abc123/element",
		"POST /session/abc123/element/el-1/click",
		"DELETE /session/abc123",
	}
	if !reflect.DeepEqual(gotPaths, want) {
		t.Errorf("wire calls = %v, want %v", gotPaths, want)
	}
}

func TestSessionNoSuchElement(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"value":{"error":"no such element","message":"not found"}}`))
	}))
	defer server.Close()

	sess := &session{baseURL: server.URL, id: "abc", httpClient: server.Client()}
	_, err := sess.findElement(context.Background(), "//missing")
	if err != errNoSuchElement {
		t.Errorf("findElement() error = %v, want errNoSuchElement", err)
	}
}

func TestNoopSink(t *testing.T) {
	var sink Sink = Noop{}
	if err := sink.SetRating(context.Background(), Movie{Title: "Heat"}, 4.5); err != nil {
		t.Errorf("Noop SetRating() error = %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Errorf("Noop Close() error = %v", err)
	}
}
