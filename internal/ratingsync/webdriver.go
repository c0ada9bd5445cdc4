package ratingsync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// webElementKey is the W3C WebDriver element identifier property.
const webElementKey = "element-6066-11e4-a52e-4f735466cecf"

var errNoSuchElement = errors.New("no such element")

// session is a minimal W3C WebDriver client bound to one browser session.
type session struct {
	baseURL    string
	id         string
	httpClient *http.Client
}

// newSession starts a Chrome session on a running chromedriver, pointing it
// at the pre-authenticated user profile.
func newSession(ctx context.Context, driverURL, profileDir string) (*session, error) {
	caps := map[string]any{
		"capabilities": map[string]any{
			"alwaysMatch": map[string]any{
				"browserName": "chrome",
				"goog:chromeOptions": map[string]any{
					"args": []string{
						"--no-sandbox",
						"--disable-dev-shm-usage",
						"--headless=new",
						"--disable-gpu",
						"--log-level=3",
						"--user-data-dir=" + profileDir,
					},
				},
			},
		},
	}

	s := &session{
		baseURL:    strings.TrimRight(driverURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	var result struct {
		SessionID string `json:"sessionId"`
	}
	if err := s.do(ctx, http.MethodPost, "/session", caps, &result); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	if result.SessionID == "" {
		return nil, errors.New("create session: empty session id")
	}
	s.id = result.SessionID
	return s, nil
}

func (s *session) close(ctx context.Context) error {
	if s.id == "" {
		return nil
	}
	return s.do(ctx, http.MethodDelete, "/session/"+s.id, nil, nil)
}

func (s *session) navigate(ctx context.Context, url string) error {
	body := map[string]string{"url": url}
	return s.do(ctx, http.MethodPost, "/session/"+s.id+"/url", body, nil)
}

// findElement locates an element by XPath without waiting.
func (s *session) findElement(ctx context.Context, xpath string) (string, error) {
	body := map[string]string{"using": "xpath", "value": xpath}
	var result map[string]string
	err := s.do(ctx, http.MethodPost, "/session/"+s.id+"/element", body, &result)
	if err != nil {
		return "", err
	}
	id, ok := result[webElementKey]
	if !ok || id == "" {
		return "", errNoSuchElement
	}
	return id, nil
}

// waitForElement polls for an element until it appears or the timeout
// elapses, mirroring an explicit wait.
func (s *session) waitForElement(ctx context.Context, xpath string, timeout time.Duration) (string, error) {
	deadline := time.Now().Add(timeout)
	for {
		id, err := s.findElement(ctx, xpath)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, errNoSuchElement) {
			return "", err
		}
		if time.Now().After(deadline) {
			return "", fmt.Errorf("%w: %s", errNoSuchElement, xpath)
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(500 * time.Millisecond):
		}
	}
}

func (s *session) click(ctx context.Context, elementID string) error {
	return s.do(ctx, http.MethodPost, "/session/"+s.id+"/element/"+elementID+"/click", map[string]any{}, nil)
}

func (s *session) sendKeys(ctx context.Context, elementID, text string) error {
	body := map[string]string{"text": text}
	return s.do(ctx, http.MethodPost, "/session/"+s.id+"/element/"+elementID+"/value", body, nil)
}

func (s *session) clear(ctx context.Context, elementID string) error {
	return s.do(ctx, http.MethodPost, "/session/"+s.id+"/element/"+elementID+"/clear", map[string]any{}, nil)
}

// do issues one WebDriver wire call and decodes the "value" envelope.
func (s *session) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var envelope struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var wireErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		_ = json.Unmarshal(envelope.Value, &wireErr)
		if wireErr.Error == "no such element" {
			return errNoSuchElement
		}
		if wireErr.Error != "" {
			return fmt.Errorf("webdriver %s: %s", wireErr.Error, wireErr.Message)
		}
		return fmt.Errorf("webdriver returned %d", resp.StatusCode)
	}

	if out != nil && len(envelope.Value) > 0 {
		if err := json.Unmarshal(envelope.Value, out); err != nil {
			return fmt.Errorf("decode value: %w", err)
		}
	}
	return nil
}
