package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the TMDB v3 API root.
	DefaultBaseURL = "https://api.themoviedb.org/3"
	// DefaultLanguage selects the metadata language.
	DefaultLanguage = "en-US"
	// DefaultRequestsPerSecond throttles outgoing API calls.
	DefaultRequestsPerSecond = 4
)

// ErrNotFound indicates TMDB has no movie for the requested id.
var ErrNotFound = errors.New("tmdb: movie not found")

// Metadata captures the movie fields used for note generation.
type Metadata struct {
	TMDBID        int64
	Title         string
	OriginalTitle string
	PosterPath    string
	ReleaseDate   string
	Genres        []string
	Directors     []string
	Countries     []string
}

// Year returns the release year, or "" when the release date is unknown.
func (m Metadata) Year() string {
	if len(m.ReleaseDate) < 4 {
		return ""
	}
	return m.ReleaseDate[:4]
}

// Fetcher defines the metadata lookup used by the pipeline.
type Fetcher interface {
	MovieMetadata(ctx context.Context, movieID int64) (*Metadata, error)
}

// Client provides access to the TMDB API.
type Client struct {
	baseURL    string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

var _ Fetcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the token-authenticated HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRequestsPerSecond overrides the request throttle.
func WithRequestsPerSecond(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// New creates a TMDB client authenticated with a v4 read access token.
func New(accessToken, baseURL, language string, opts ...Option) (*Client, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil, errors.New("tmdb access token required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	language = strings.TrimSpace(language)
	if language == "" {
		language = DefaultLanguage
	}

	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	httpClient := oauth2.NewClient(context.Background(), source)
	httpClient.Timeout = 10 * time.Second

	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   language,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), 1),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type movieDetails struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	OriginalTitle string `json:"original_title"`
	PosterPath    string `json:"poster_path"`
	ReleaseDate   string `json:"release_date"`
	Genres        []struct {
		Name string `json:"name"`
	} `json:"genres"`
	OriginCountry []string `json:"origin_country"`
	Credits       struct {
		Crew []struct {
			Name string `json:"name"`
			Job  string `json:"job"`
		} `json:"crew"`
	} `json:"credits"`
}

// MovieMetadata fetches movie details with credits by TMDB id.
func (c *Client) MovieMetadata(ctx context.Context, movieID int64) (*Metadata, error) {
	if movieID <= 0 {
		return nil, errors.New("movie id must be positive")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	endpoint, err := url.Parse(fmt.Sprintf("%s/movie/%d", c.baseURL, movieID))
	if err != nil {
		return nil, fmt.Errorf("parse tmdb url: %w", err)
	}
	params := url.Values{}
	params.Set("append_to_response", "credits")
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("movie %d: %w", movieID, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tmdb movie details returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var payload movieDetails
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode movie details: %w", err)
	}
	return payload.toMetadata(), nil
}

func (d movieDetails) toMetadata() *Metadata {
	meta := &Metadata{
		TMDBID:        d.ID,
		Title:         d.Title,
		OriginalTitle: d.OriginalTitle,
		PosterPath:    d.PosterPath,
		ReleaseDate:   d.ReleaseDate,
		Countries:     append([]string(nil), d.OriginCountry...),
	}
	for _, genre := range d.Genres {
		if name := strings.TrimSpace(genre.Name); name != "" {
			meta.Genres = append(meta.Genres, name)
		}
	}
	for _, member := range d.Credits.Crew {
		if member.Job == "Director" {
			if name := strings.TrimSpace(member.Name); name != "" {
				meta.Directors = append(meta.Directors, name)
			}
		}
	}
	return meta
}
