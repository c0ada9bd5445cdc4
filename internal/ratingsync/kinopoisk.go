package ratingsync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cinelog/internal/logging"
)

// DefaultKinopoiskURL is the site the rating sink drives.
const DefaultKinopoiskURL = "https://www.kinopoisk.ru/"

const (
	searchInputXPath = "//input[@name='kp_query']"
	firstResultXPath = "//article[@role='presentation']"
	loginGateXPath   = "//span[@class='passp-add-account-page-title']"

	elementWait   = 10 * time.Second
	loginGateWait = 5 * time.Second
)

// Kinopoisk rates movies on kinopoisk.ru through a browser session. The
// Chrome profile must already hold an authenticated session; hitting the
// login gate aborts the sync for that movie.
type Kinopoisk struct {
	siteURL    string
	profileDir string
	driver     *driver
	session    *session
	logger     *slog.Logger
}

// NewKinopoisk launches chromedriver and opens a browser session against
// the configured Chrome profile.
func NewKinopoisk(ctx context.Context, driverPath, profileDir, siteURL string, logger *slog.Logger) (*Kinopoisk, error) {
	if strings.TrimSpace(driverPath) == "" {
		return nil, errors.New("chromedriver path required")
	}
	if strings.TrimSpace(profileDir) == "" {
		return nil, errors.New("browser profile directory required")
	}
	if strings.TrimSpace(siteURL) == "" {
		siteURL = DefaultKinopoiskURL
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	drv, err := startDriver(ctx, driverPath)
	if err != nil {
		return nil, err
	}
	sess, err := newSession(ctx, drv.url, profileDir)
	if err != nil {
		drv.stop()
		return nil, err
	}
	return &Kinopoisk{
		siteURL:    siteURL,
		profileDir: profileDir,
		driver:     drv,
		session:    sess,
		logger:     logger.With(logging.FieldComponent, "ratingsync"),
	}, nil
}

var _ Sink = (*Kinopoisk)(nil)

// SetRating searches for the movie by title (then original title) plus
// release year and clicks the rating label matching the doubled 10-point
// value. Returns ErrNotSynced when the movie cannot be found or rated.
func (k *Kinopoisk) SetRating(ctx context.Context, movie Movie, rating float64) error {
	value := int(rating * 2)
	if value < 1 || value > 10 {
		return fmt.Errorf("%w: rating %v out of range", ErrNotSynced, rating)
	}

	searches := searchQueries(movie)
	if len(searches) == 0 {
		return fmt.Errorf("%w: no searchable title", ErrNotSynced)
	}

	if err := k.session.navigate(ctx, k.siteURL); err != nil {
		return fmt.Errorf("open site: %w", err)
	}

	for _, search := range searches {
		synced, err := k.trySearch(ctx, search, value)
		if err != nil {
			return err
		}
		if synced {
			k.logger.Info("rating synced", "search", search, "value", value)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotSynced, movie.Title)
}

func (k *Kinopoisk) trySearch(ctx context.Context, search string, value int) (bool, error) {
	input, err := k.session.waitForElement(ctx, searchInputXPath, elementWait)
	if err != nil {
		if errors.Is(err, errNoSuchElement) {
			return false, fmt.Errorf("%w: search input missing", ErrNotSynced)
		}
		return false, err
	}
	if err := k.session.sendKeys(ctx, input, search); err != nil {
		return false, err
	}

	result, err := k.session.waitForElement(ctx, firstResultXPath, elementWait)
	if err != nil {
		if errors.Is(err, errNoSuchElement) {
			// No match for this query; clear the box and let the caller try
			// the next title variant.
			if clearErr := k.session.clear(ctx, input); clearErr != nil {
				return false, clearErr
			}
			return false, nil
		}
		return false, err
	}
	if err := k.session.click(ctx, result); err != nil {
		return false, err
	}

	label, err := k.session.waitForElement(ctx, ratingLabelXPath(value), elementWait)
	if err != nil {
		if errors.Is(err, errNoSuchElement) {
			return false, fmt.Errorf("%w: rating control missing", ErrNotSynced)
		}
		return false, err
	}
	if err := k.session.click(ctx, label); err != nil {
		return false, err
	}

	// An authentication prompt after clicking means the profile session
	// expired and the rating did not stick.
	if _, err := k.session.waitForElement(ctx, loginGateXPath, loginGateWait); err == nil {
		return false, fmt.Errorf("%w: login required", ErrNotSynced)
	} else if !errors.Is(err, errNoSuchElement) {
		return false, err
	}
	return true, nil
}

// Close tears down the browser session and the driver process.
func (k *Kinopoisk) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := k.session.close(ctx)
	k.driver.stop()
	return err
}

func ratingLabelXPath(value int) string {
	return fmt.Sprintf("//label[@data-value='%d']", value)
}

func searchQueries(movie Movie) []string {
	queries := make([]string, 0, 2)
	seen := make(map[string]struct{})
	for _, title := range []string{movie.Title, movie.OriginalTitle} {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		query := title
		if movie.Year != "" {
			query = title + " " + movie.Year
		}
		if _, ok := seen[query]; ok {
			continue
		}
		seen[query] = struct{}{}
		queries = append(queries, query)
	}
	return queries
}
