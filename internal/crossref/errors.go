package crossref

import (
	"errors"
	"fmt"
)

// Common errors returned by the CrossRef client. All of them mean "existence
// could not be determined"; only an HTTP 404 means the DOI does not exist.
var (
	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with CrossRef")

	// ErrRateLimited indicates the rate limit has been exceeded.
	ErrRateLimited = errors.New("CrossRef rate limit exceeded")

	// ErrInvalidResponse indicates an unexpected API response body.
	ErrInvalidResponse = errors.New("invalid response from CrossRef")
)

// APIError represents an unexpected HTTP status from the CrossRef API.
type APIError struct {
	StatusCode int
	DOI        string
}

func (e *APIError) Error() string {
	if e.DOI != "" {
		return fmt.Sprintf("CrossRef API error (status %d, doi %s)", e.StatusCode, e.DOI)
	}
	return fmt.Sprintf("CrossRef API error (status %d)", e.StatusCode)
}

// IsRateLimited checks if an error is a rate limit error.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}
