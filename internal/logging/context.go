package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for pipeline run identifiers.
	FieldRunID = "run_id"
	// FieldFilm is the standardized structured logging key for movie identifiers ("Title - Year").
	FieldFilm = "film"
	// FieldTMDBID is the standardized structured logging key for TMDB movie ids.
	FieldTMDBID = "tmdb_id"
)

type contextKey string

const (
	runIDKey contextKey = "run_id"
	filmKey  contextKey = "film"
)

// WithRunID stores a pipeline run identifier on the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// WithFilm stores the movie identifier currently being processed on the context.
func WithFilm(ctx context.Context, film string) context.Context {
	return context.WithValue(ctx, filmKey, film)
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := ctx.Value(runIDKey).(string); ok && id != "" {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if film, ok := ctx.Value(filmKey).(string); ok && film != "" {
		fields = append(fields, slog.String(FieldFilm, film))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from
// the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	args := make([]any, 0, len(fields))
	for _, attr := range fields {
		args = append(args, attr)
	}
	return logger.With(args...)
}
