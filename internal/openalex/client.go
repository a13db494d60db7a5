// Package openalex provides the secondary bibliographic source client,
// speaking the OpenAlex works API.
package openalex

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
	// BaseURL is the OpenAlex REST API base URL.
	BaseURL = "https://api.openalex.org"

	// DefaultTimeout is the per-request HTTP timeout. A timed-out request
	// surfaces as a failed outcome, never as not-found.
	DefaultTimeout = 10 * time.Second

	// RateLimit is 10 requests per second per OpenAlex documentation.
	RateLimit = 10.0

	// DefaultSearchRows is the number of candidates requested from search.
	DefaultSearchRows = 5
)

// Client is a rate-limited OpenAlex API client.
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

// WithContact sets the contact email sent as the mailto query parameter,
// joining the OpenAlex polite pool.
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

// NewClient creates a new OpenAlex client.
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

func (c *Client) userAgent() string {
	return "citevet/1.0 (https://github.com/matsen/citevet)"
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	if query == nil {
		query = url.Values{}
	}
	if c.contact != "" {
		query.Set("mailto", c.contact)
	}
	rawURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		rawURL += "?" + encoded
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

// getWorkByID resolves a prefixed external identifier (doi:..., pmid:...).
// The response body is itself the work payload, with no envelope.
func (c *Client) getWorkByID(ctx context.Context, id string) source.Outcome {
	resp, err := c.get(ctx, "/works/"+url.PathEscape(id), nil)
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
		return source.Failed(&APIError{StatusCode: resp.StatusCode, ID: id})
	}

	var body openalexWork
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return source.Failed(fmt.Errorf("%w: decoding work: %v", ErrInvalidResponse, err))
	}

	return source.Found(mapWork(body))
}

// GetWork resolves a normalized DOI. A 404 maps to not-found; every other
// failure maps to a failed outcome.
func (c *Client) GetWork(ctx context.Context, doi string) source.Outcome {
	return c.getWorkByID(ctx, "doi:"+doi)
}

// GetWorkByPMID resolves a PubMed identifier. Same outcome mapping as
// GetWork; this is the optional source.PMIDLookup capability.
func (c *Client) GetWorkByPMID(ctx context.Context, pmid string) source.Outcome {
	return c.getWorkByID(ctx, "pmid:"+pmid)
}

// SearchByTitleAuthorYear runs a best-effort relevance search. Returns an
// empty slice on any failure.
func (c *Client) SearchByTitleAuthorYear(ctx context.Context, title, author string, year int) []citation.Work {
	if title == "" {
		return nil
	}

	q := url.Values{}
	q.Set("search", searchTerm(title, author))
	q.Set("per-page", strconv.Itoa(DefaultSearchRows))
	if year > 0 {
		// Widen by a year each way; cited years are often off by one.
		q.Set("filter", fmt.Sprintf("publication_year:%d-%d", year-1, year+1))
	}

	resp, err := c.get(ctx, "/works", q)
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

	works := make([]citation.Work, 0, len(body.Results))
	for _, item := range body.Results {
		works = append(works, *mapWork(item))
	}
	return works
}

// searchTerm combines title and author into one relevance query.
func searchTerm(title, author string) string {
	if author == "" {
		return title
	}
	return title + " " + author
}
