// Package graph implements the EventSource interface against the Microsoft
// Graph calendarView API. It fetches raw events page by page and normalizes
// them into the core event model.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gaurav-prasanna/dayscribe/core"
)

const (
	defaultBaseURL = "https://graph.microsoft.com/v1.0"
	defaultTimeout = 30 * time.Second
	pageSize       = 50
)

// APIError is a Graph API failure. StatusCode is zero for transport-level
// errors; RetryAfter is non-zero only for 429 responses.
type APIError struct {
	Message    string
	StatusCode int
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("graph: %s (status %d)", e.Message, e.StatusCode)
	}
	return "graph: " + e.Message
}

// Client fetches calendar events via the Graph API.
type Client struct {
	// BaseURL is overridable for tests; defaults to the v1.0 endpoint.
	BaseURL string

	token  string
	client *http.Client
}

// New creates a Client authenticating with the given access token.
func New(token string) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		token:   token,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

// calendarPage is one page of the calendarView response.
type calendarPage struct {
	Value    []graphEvent `json:"value"`
	NextLink string       `json:"@odata.nextLink"`
}

// FetchEvents retrieves all events overlapping [start, end), following
// pagination, and returns them normalized.
func (c *Client) FetchEvents(ctx context.Context, start, end time.Time) ([]core.Event, error) {
	next := c.BaseURL + "/me/calendarView?" + calendarQuery(start, end)

	var events []core.Event
	for next != "" {
		page, err := c.fetchPage(ctx, next)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Value {
			events = append(events, normalizeEvent(raw))
		}
		// Query parameters are baked into the nextLink.
		next = page.NextLink
	}
	return events, nil
}

func (c *Client) fetchPage(ctx context.Context, pageURL string) (*calendarPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &APIError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if err := responseError(resp); err != nil {
		return nil, err
	}

	var page calendarPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decoding calendar page: %w", err)
	}
	return &page, nil
}

// calendarQuery builds the calendarView query string. Start is inclusive
// (beginning of day), end is exclusive.
func calendarQuery(start, end time.Time) string {
	q := url.Values{}
	q.Set("startDateTime", start.UTC().Format(time.RFC3339))
	q.Set("endDateTime", end.UTC().Format(time.RFC3339))
	q.Set("$select", "id,subject,start,end,location,attendees,body,isAllDay,isCancelled,organizer,isOnlineMeeting,onlineMeeting")
	q.Set("$orderby", "start/dateTime")
	q.Set("$top", strconv.Itoa(pageSize))
	return q.Encode()
}

// responseError maps non-2xx responses to APIError.
func responseError(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	message := "HTTP " + strconv.Itoa(resp.StatusCode)
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error.Message != "" {
		message = body.Error.Message
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return &APIError{Message: "authentication failed: " + message, StatusCode: resp.StatusCode}
	case http.StatusTooManyRequests:
		retryAfter := 60 * time.Second
		if s := resp.Header.Get("Retry-After"); s != "" {
			if secs, err := strconv.Atoi(s); err == nil {
				retryAfter = time.Duration(secs) * time.Second
			}
		}
		return &APIError{
			Message:    "rate limit exceeded: " + message,
			StatusCode: resp.StatusCode,
			RetryAfter: retryAfter,
		}
	default:
		return &APIError{Message: message, StatusCode: resp.StatusCode}
	}
}
