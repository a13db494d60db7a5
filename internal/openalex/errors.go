package openalex

import (
	"errors"
	"fmt"
)

// Common errors returned by the OpenAlex client. All of them mean "existence
// could not be determined"; only an HTTP 404 means the identifier does not
// exist.
var (
	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with OpenAlex")

	// ErrRateLimited indicates the rate limit has been exceeded.
	ErrRateLimited = errors.New("OpenAlex rate limit exceeded")

	// ErrInvalidResponse indicates an unexpected API response body.
	ErrInvalidResponse = errors.New("invalid response from OpenAlex")
)

// APIError represents an unexpected HTTP status from the OpenAlex API.
type APIError struct {
	StatusCode int
	ID         string // Prefixed identifier, e.g. "doi:10.1234/x"
}

func (e *APIError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("OpenAlex API error (status %d, id %s)", e.StatusCode, e.ID)
	}
	return fmt.Sprintf("OpenAlex API error (status %d)", e.StatusCode)
}

// IsRateLimited checks if an error is a rate limit error.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}
