package ratingsync

import (
	"context"
	"errors"
)

// ErrNotSynced indicates the movie could not be found or rated on the
// target site. The caller routes such movies to the not-rated log.
var ErrNotSynced = errors.New("rating not synced")

// Movie identifies a film on the target site's search surface.
type Movie struct {
	Title         string
	OriginalTitle string
	Year          string
}

// Sink pushes one movie rating to an external site. Rating is on the
// 0.5-5.0 half-step scale; implementations convert as needed.
type Sink interface {
	SetRating(ctx context.Context, movie Movie, rating float64) error
	Close() error
}

// Noop is the sink used when rating sync is disabled.
type Noop struct{}

// SetRating does nothing.
func (Noop) SetRating(context.Context, Movie, float64) error { return nil }

// Close does nothing.
func (Noop) Close() error { return nil }
