package notes

import (
	"fmt"
	"strings"

	"cinelog/internal/fileutil"
	"cinelog/internal/letterboxd"
)

// NotRatedLog is the append-only file listing movies still awaiting a
// rating. Appends are idempotent across runs: a movie already present is
// never appended twice.
type NotRatedLog struct {
	path string
}

// NewNotRatedLog creates a log backed by the given file path.
func NewNotRatedLog(path string) *NotRatedLog {
	return &NotRatedLog{path: path}
}

// Add appends the movie unless it is already logged. Dedup is keyed by TMDB
// id; entries without one fall back to the "Title - Year" identifier.
// Returns whether a line was appended.
func (l *NotRatedLog) Add(entry letterboxd.Entry) (bool, error) {
	key := dedupKey(entry)

	data, exists, err := fileutil.ReadFileIfExists(l.path)
	if err != nil {
		return false, err
	}
	if exists {
		for _, line := range strings.Split(string(data), "\n") {
			if lineKey(line) == key {
				return false, nil
			}
		}
	}

	return true, fileutil.AppendLine(l.path, formatLine(entry))
}

func formatLine(entry letterboxd.Entry) string {
	if entry.TMDBID == 0 {
		return entry.Film()
	}
	return fmt.Sprintf("%s (tmdb:%d)", entry.Film(), entry.TMDBID)
}

func dedupKey(entry letterboxd.Entry) string {
	if entry.TMDBID == 0 {
		return entry.Film()
	}
	return fmt.Sprintf("tmdb:%d", entry.TMDBID)
}

func lineKey(line string) string {
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}
	if open := strings.LastIndex(line, "(tmdb:"); open >= 0 && strings.HasSuffix(line, ")") {
		return line[open+1 : len(line)-1]
	}
	return line
}
