// Package pocketsmith provides a client for the PocketSmith REST API:
// the authorized user, budget events for a date span, and scheduled-event
// amount updates for repayment write-back.
package pocketsmith

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

const (
	defaultBaseURL = "https://api.pocketsmith.com/v2"
	requestTimeout = 15 * time.Second
	maxBodySize    = 4 << 20 // 4 MB
)

var (
	// ErrUnauthorized indicates the developer key is missing or invalid.
	ErrUnauthorized = errors.New("pocketsmith: unauthorized (check developer key)")
	// ErrRateLimited indicates the API rate limit was hit.
	ErrRateLimited = errors.New("pocketsmith: rate limited")
)

// Client talks to the PocketSmith API with a developer key.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given developer key. baseURL may be
// empty to use the production API. Returns nil if the key is empty.
func NewClient(apiKey, baseURL string) *Client {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{},
	}
}

// CurrentUser fetches the user the developer key belongs to.
func (c *Client) CurrentUser(ctx context.Context) (User, error) {
	body, _, err := c.get(ctx, c.baseURL+"/me")
	if err != nil {
		return User{}, err
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return User{}, fmt.Errorf("pocketsmith: parsing user: %w", err)
	}
	return user, nil
}

// Events fetches all budget events for the user between start and end
// (inclusive, day precision), following Link-header pagination. Event
// dates are interpreted in loc; events with unparseable dates are dropped
// and counted in the result.
func (c *Client) Events(ctx context.Context, userID int64, start, end time.Time, loc *time.Location) (EventsResult, error) {
	var result EventsResult

	url := fmt.Sprintf("%s/users/%d/events?start_date=%s&end_date=%s&per_page=100",
		c.baseURL, userID, start.Format("2006-01-02"), end.Format("2006-01-02"))

	for url != "" {
		body, header, err := c.get(ctx, url)
		if err != nil {
			return EventsResult{}, err
		}

		var raws []rawEvent
		if err := json.Unmarshal(body, &raws); err != nil {
			return EventsResult{}, fmt.Errorf("pocketsmith: parsing events: %w", err)
		}

		for _, r := range raws {
			ev, ok := r.toModel(loc)
			if !ok {
				result.SkippedDates++
				continue
			}
			result.Events = append(result.Events, ev)
		}

		url = nextLink(header.Get("Link"))
	}

	return result, nil
}

// UpdateEventAmount sets a scheduled event's amount. behaviour follows the
// API's convention: "one" updates just this occurrence, "all" the series.
func (c *Client) UpdateEventAmount(ctx context.Context, eventID string, amount float64, behaviour string) error {
	payload, err := json.Marshal(map[string]any{
		"amount":    amount,
		"behaviour": behaviour,
	})
	if err != nil {
		return fmt.Errorf("pocketsmith: encoding event update: %w", err)
	}

	url := fmt.Sprintf("%s/events/%s", c.baseURL, eventID)
	return c.put(ctx, url, payload)
}

// get performs an authenticated GET and returns the body and headers.
func (c *Client) get(ctx context.Context, url string) ([]byte, http.Header, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("pocketsmith: creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("pocketsmith: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, nil, fmt.Errorf("pocketsmith: reading response: %w", err)
	}
	return body, resp.Header, nil
}

func (c *Client) put(ctx context.Context, url string, payload []byte) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("pocketsmith: creating request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("pocketsmith: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	return checkStatus(resp.StatusCode)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("X-Developer-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "ccplan/1.0")
}

func checkStatus(code int) error {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}
	if code < 200 || code >= 300 {
		return fmt.Errorf("pocketsmith: unexpected status %d", code)
	}
	return nil
}

// nextLink extracts the rel="next" URL from a Link header, or "" if the
// final page has been reached.
func nextLink(header string) string {
	for _, part := range strings.Split(header, ",") {
		segments := strings.Split(part, ";")
		if len(segments) < 2 {
			continue
		}
		url := strings.Trim(strings.TrimSpace(segments[0]), "<>")
		for _, param := range segments[1:] {
			if strings.TrimSpace(param) == `rel="next"` {
				return url
			}
		}
	}
	return ""
}
