// Package crossref provides the primary bibliographic source client,
// speaking the CrossRef works API.
package crossref

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/matsen/citevet/internal/citation"
	"github.com/matsen/citevet/internal/source"
)

const (
	// BaseURL is the CrossRef REST API base URL.
	BaseURL = "https://api.crossref.org"

	// DefaultTimeout is the per-request HTTP timeout. A timed-out request
	// surfaces as a failed outcome, never as not-found.
	DefaultTimeout = 10 * time.Second

	// RateLimit is the polite-pool request pacing in requests per second.
	RateLimit = 10.0

	// DefaultSearchRows is the number of candidates requested from
	// bibliographic search.
	DefaultSearchRows = 5
)

// Client is a rate-limited CrossRef API client.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	contact    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithContact sets the contact email sent in the User-Agent header, per the
// CrossRef polite-pool convention.
func WithContact(email string) ClientOption {
	return func(c *Client) {
		c.contact = email
	}
}

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a new CrossRef client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// userAgent identifies the client and its contact email.
func (c *Client) userAgent() string {
	if c.contact == "" {
		return "citevet/1.0 (https://github.com/matsen/citevet)"
	}
	return fmt.Sprintf("citevet/1.0 (https://github.com/matsen/citevet; mailto:%s)", c.contact)
}

func (c *Client) get(ctx context.Context, rawURL string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	return resp, nil
}

// GetWork resolves a normalized DOI. A 404 maps to not-found; every other
// failure (transport error, non-404 HTTP status, malformed body) maps to a
// failed outcome.
func (c *Client) GetWork(ctx context.Context, doi string) source.Outcome {
	resp, err := c.get(ctx, fmt.Sprintf("%s/works/%s", c.baseURL, url.PathEscape(doi)))
	if err != nil {
		return source.Failed(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return source.NotFound()
	case resp.StatusCode == http.StatusTooManyRequests:
		return source.Failed(fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return source.Failed(&APIError{StatusCode: resp.StatusCode, DOI: doi})
	}

	// Success payload nests the work under "message".
	var body worksResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return source.Failed(fmt.Errorf("%w: decoding work: %v", ErrInvalidResponse, err))
	}

	return source.Found(mapWork(body.Message))
}

// SearchByTitleAuthorYear runs a best-effort bibliographic search. Returns an
// empty slice on any failure: search is already a fallback path, so its
// errors never propagate.
func (c *Client) SearchByTitleAuthorYear(ctx context.Context, title, author string, year int) []citation.Work {
	if title == "" {
		return nil
	}

	q := url.Values{}
	q.Set("query.bibliographic", title)
	q.Set("rows", strconv.Itoa(DefaultSearchRows))
	if author != "" {
		q.Set("query.author", author)
	}
	if year > 0 {
		// Widen by a year each way; cited years are often off by one.
		q.Set("filter", fmt.Sprintf("from-pub-date:%d-01-01,until-pub-date:%d-12-31", year-1, year+1))
	}

	resp, err := c.get(ctx, fmt.Sprintf("%s/works?%s", c.baseURL, q.Encode()))
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil
	}

	works := make([]citation.Work, 0, len(body.Message.Items))
	for _, item := range body.Message.Items {
		works = append(works, *mapWork(item))
	}
	return works
}
