package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"cinelog/internal/config"
	"cinelog/internal/letterboxd"
	"cinelog/internal/logging"
	"cinelog/internal/notes"
	"cinelog/internal/notifications"
	"cinelog/internal/ratingsync"
	"cinelog/internal/tags"
	"cinelog/internal/tmdb"
)

// ErrPartialFailure marks a run where some entries failed while the rest
// completed. Callers map it to a distinct exit code.
var ErrPartialFailure = errors.New("some entries failed")

// ErrAlreadyRunning is returned when another run holds the data-dir lock.
var ErrAlreadyRunning = errors.New("another run is already in progress")

// FeedSource supplies recent diary entries, oldest first.
type FeedSource interface {
	RecentEntries(ctx context.Context, window int) ([]letterboxd.Entry, error)
}

// EntryOutcome records what one run did with a single diary entry.
type EntryOutcome struct {
	Entry  letterboxd.Entry
	State  notes.State
	Path   string
	Synced bool
	Err    error
}

// Summary aggregates the outcomes of one run.
type Summary struct {
	RunID    string
	Outcomes []EntryOutcome
	Duration time.Duration
}

// Failed counts entries that ended with an error.
func (s Summary) Failed() int {
	failed := 0
	for _, outcome := range s.Outcomes {
		if outcome.Err != nil {
			failed++
		}
	}
	return failed
}

// Processed counts entries that completed without an error.
func (s Summary) Processed() int {
	return len(s.Outcomes) - s.Failed()
}

// Pipeline runs one diary sync pass end to end.
type Pipeline struct {
	cfg         *config.Config
	feed        FeedSource
	metadata    tmdb.Fetcher
	sink        ratingsync.Sink
	syncEnabled bool
	notifier    notifications.Service
	reconciler  *notes.Reconciler
	notRated    *notes.NotRatedLog
	logger      *slog.Logger
}

// New wires a pipeline from its collaborators. A nil sink disables rating
// sync and a nil logger discards output.
func New(cfg *config.Config, feed FeedSource, metadata tmdb.Fetcher, sink ratingsync.Sink, notifier notifications.Service, logger *slog.Logger) (*Pipeline, error) {
	if cfg == nil {
		return nil, errors.New("pipeline: config is required")
	}
	if feed == nil {
		return nil, errors.New("pipeline: feed source is required")
	}
	if metadata == nil {
		return nil, errors.New("pipeline: metadata fetcher is required")
	}
	syncEnabled := sink != nil
	if sink == nil {
		sink = ratingsync.Noop{}
	}
	if _, noop := sink.(ratingsync.Noop); noop {
		syncEnabled = false
	}
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		cfg:         cfg,
		feed:        feed,
		metadata:    metadata,
		sink:        sink,
		syncEnabled: syncEnabled,
		notifier:    notifier,
		reconciler:  notes.NewReconciler(cfg.Paths.VaultDir),
		notRated:    notes.NewNotRatedLog(cfg.Paths.NotRatedFile),
		logger:      logger,
	}, nil
}

// Run executes one sync pass: fetch the recent diary window, reconcile a
// note per entry, log unrated entries, and push new ratings to the sink.
// Entry-level failures are collected in the summary; Run returns
// ErrPartialFailure when at least one entry failed but the run finished.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	summary := Summary{RunID: uuid.NewString()}

	ctx = logging.WithRunID(ctx, summary.RunID)
	logger := logging.WithContext(ctx, p.logger)

	lock := flock.New(p.cfg.LockFilePath())
	locked, err := lock.TryLock()
	if err != nil {
		return summary, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return summary, ErrAlreadyRunning
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			logger.Warn("failed to release run lock", "error", unlockErr)
		}
	}()

	entries, err := p.feed.RecentEntries(ctx, p.cfg.Letterboxd.Window)
	if err != nil {
		err = fmt.Errorf("fetch diary feed: %w", err)
		if notifyErr := p.notifier.NotifyRunError(ctx, err); notifyErr != nil {
			logger.Warn("failed to send error notification", "error", notifyErr)
		}
		return summary, err
	}
	logger.Info("diary feed fetched", "entries", len(entries))

	for _, entry := range entries {
		summary.Outcomes = append(summary.Outcomes, p.processEntry(ctx, entry))
	}
	summary.Duration = time.Since(start)

	if notifyErr := p.notifier.NotifyRunCompleted(ctx, summary.Processed(), summary.Failed(), summary.Duration); notifyErr != nil {
		logger.Warn("failed to send completion notification", "error", notifyErr)
	}

	if failed := summary.Failed(); failed > 0 {
		return summary, fmt.Errorf("%d of %d entries failed: %w", failed, len(summary.Outcomes), ErrPartialFailure)
	}
	return summary, nil
}

func (p *Pipeline) processEntry(ctx context.Context, entry letterboxd.Entry) EntryOutcome {
	ctx = logging.WithFilm(ctx, entry.Film())
	logger := logging.WithContext(ctx, p.logger).With(logging.FieldTMDBID, entry.TMDBID)

	outcome := EntryOutcome{Entry: entry}

	if !entry.HasRating() {
		result, err := p.reconciler.Reconcile(entry, tmdb.Metadata{}, nil)
		if err != nil {
			logger.Error("reconcile failed", "error", err)
			outcome.Err = err
			return outcome
		}
		outcome.State = result.State
		outcome.Path = result.Path
		added, err := p.notRated.Add(entry)
		if err != nil {
			logger.Error("not-rated log append failed", "error", err)
			outcome.Err = fmt.Errorf("not-rated log: %w", err)
			return outcome
		}
		if added {
			logger.Info("logged unrated entry")
		} else {
			logger.Debug("unrated entry already logged")
		}
		return outcome
	}

	meta, err := p.metadata.MovieMetadata(ctx, entry.TMDBID)
	if err != nil {
		logger.Warn("metadata fetch failed", "error", err)
		outcome.Err = fmt.Errorf("metadata: %w", err)
		return outcome
	}

	tagList := tags.Derive(entry, *meta)
	result, err := p.reconciler.Reconcile(entry, *meta, tagList)
	if err != nil {
		logger.Error("reconcile failed", "error", err)
		outcome.Err = err
		return outcome
	}
	outcome.State = result.State
	outcome.Path = result.Path
	logger.Info("note reconciled", "state", result.State.String(), "path", result.Path)

	// Ratings are pushed only on first watch; rewatches and refreshes keep
	// the sink untouched.
	if !p.syncEnabled || result.State != notes.StateCreated {
		return outcome
	}

	movie := ratingsync.Movie{
		Title:         meta.Title,
		OriginalTitle: meta.OriginalTitle,
		Year:          meta.Year(),
	}
	if err := p.sink.SetRating(ctx, movie, entry.Rating); err != nil {
		if errors.Is(err, ratingsync.ErrNotSynced) {
			logger.Warn("rating not synced, routing to not-rated log", "error", err)
			if _, addErr := p.notRated.Add(entry); addErr != nil {
				outcome.Err = fmt.Errorf("not-rated log: %w", addErr)
			}
			return outcome
		}
		logger.Error("rating sync failed", "error", err)
		outcome.Err = fmt.Errorf("rating sync: %w", err)
		return outcome
	}
	outcome.Synced = true
	logger.Info("rating synced", "rating", entry.Rating)
	return outcome
}
