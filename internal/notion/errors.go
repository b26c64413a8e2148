package notion

import (
	"errors"
	"fmt"
)

// Common errors returned by the Notion client.
var (
	// ErrAuthError indicates an authentication error (missing/invalid token).
	ErrAuthError = errors.New("Notion authentication error")

	// ErrRateLimited indicates the rate limit has been exceeded.
	ErrRateLimited = errors.New("Notion rate limit exceeded")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with Notion")

	// ErrInvalidResponse indicates an unexpected API response.
	ErrInvalidResponse = errors.New("invalid response from Notion")
)

// APIError represents an error response from the Notion API.
type APIError struct {
	StatusCode int
	Code       string // Error code from API (e.g., "object_not_found", "validation_error")
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Notion API error (status %d, code %s): %s", e.StatusCode, e.Code, e.Message)
}

// IsAuthError returns true if the error indicates an authentication problem.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrAuthError) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403 || apiErr.Code == "unauthorized"
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.Code == "rate_limited"
	}
	return false
}
