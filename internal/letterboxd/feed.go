package letterboxd

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public Letterboxd site root.
	DefaultBaseURL = "https://letterboxd.com"
	// DefaultWindow is the number of recent diary entries consumed per run.
	DefaultWindow = 5

	userAgent = "cinelog/0.1.0"
)

// Entry is one watch event from the user's diary feed.
type Entry struct {
	TMDBID      int64
	Title       string
	Year        string
	WatchedDate time.Time
	// Rating is the member rating on the 0.5-5.0 half-step scale; 0 means
	// the entry has not been rated yet.
	Rating  float64
	Rewatch bool
}

// HasRating reports whether the entry carries a rating.
func (e Entry) HasRating() bool {
	return e.Rating > 0
}

// Film returns the "Title - Year" identifier used for note filenames and
// the not-rated log.
func (e Entry) Film() string {
	if e.Year == "" {
		return e.Title
	}
	return e.Title + " - " + e.Year
}

// WatchedLabel renders the watched date in the DD.MM.YYYY form used by note
// callouts.
func (e Entry) WatchedLabel() string {
	return e.WatchedDate.Format("02.01.2006")
}

// Client fetches and parses the diary feed for a single user.
type Client struct {
	username   string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a feed client for the given Letterboxd username.
func New(username, baseURL string, opts ...Option) (*Client, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("letterboxd username required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := &Client{
		username:   username,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// FeedURL returns the RSS feed URL for the configured user.
func (c *Client) FeedURL() string {
	return fmt.Sprintf("%s/%s/rss/", c.baseURL, c.username)
}

// RecentEntries fetches the feed and returns up to window diary entries,
// oldest first.
func (c *Client) RecentEntries(ctx context.Context, window int) ([]Entry, error) {
	if window <= 0 {
		window = DefaultWindow
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.FeedURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed fetch returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}
	return ParseFeed(body, window)
}

type feedDocument struct {
	XMLName xml.Name `xml:"rss"`
	Channel struct {
		Items []feedItem `xml:"item"`
	} `xml:"channel"`
}

type feedItem struct {
	GUID         string `xml:"guid"`
	FilmTitle    string `xml:"filmTitle"`
	FilmYear     string `xml:"filmYear"`
	MemberRating string `xml:"memberRating"`
	WatchedDate  string `xml:"watchedDate"`
	Rewatch      string `xml:"rewatch"`
	TMDBID       string `xml:"movieId"`
	PubDate      string `xml:"pubDate"`
}

// ParseFeed decodes the RSS payload and extracts up to window watch entries,
// oldest first. List items (guids without a watch or review marker) are
// skipped.
func ParseFeed(data []byte, window int) ([]Entry, error) {
	var doc feedDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}

	entries := make([]Entry, 0, window)
	for _, item := range doc.Channel.Items {
		if len(entries) >= window {
			break
		}
		if !isWatchItem(item.GUID) {
			continue
		}
		entry, err := item.toEntry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	// Feed is newest-first; process watches in chronological order.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

func isWatchItem(guid string) bool {
	return strings.Contains(guid, "watch") || strings.Contains(guid, "review")
}

func (item feedItem) toEntry() (Entry, error) {
	title := strings.TrimSpace(item.FilmTitle)
	if title == "" {
		title = "No title"
	}

	entry := Entry{
		Title:   title,
		Year:    strings.TrimSpace(item.FilmYear),
		Rewatch: strings.EqualFold(strings.TrimSpace(item.Rewatch), "yes"),
	}

	if raw := strings.TrimSpace(item.TMDBID); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Entry{}, fmt.Errorf("parse tmdb id %q: %w", raw, err)
		}
		entry.TMDBID = id
	}

	if raw := strings.TrimSpace(item.MemberRating); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Entry{}, fmt.Errorf("parse rating %q: %w", raw, err)
		}
		entry.Rating = rating
	}

	watched, err := parseWatchedDate(item.WatchedDate, item.PubDate)
	if err != nil {
		return Entry{}, err
	}
	entry.WatchedDate = watched
	return entry, nil
}

func parseWatchedDate(watched, pubDate string) (time.Time, error) {
	if raw := strings.TrimSpace(watched); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse watched date %q: %w", raw, err)
		}
		return t, nil
	}
	if raw := strings.TrimSpace(pubDate); raw != "" {
		t, err := time.Parse(time.RFC1123Z, raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse pub date %q: %w", raw, err)
		}
		return t.Truncate(24 * time.Hour), nil
	}
	return time.Time{}, errors.New("feed item has no watched date")
}
