package gemini

import (
	"errors"
	"fmt"
)

// Common errors returned by the Gemini client.
var (
	// ErrAuthError indicates an authentication error (missing/invalid API key).
	ErrAuthError = errors.New("Gemini authentication error")

	// ErrRateLimited indicates the rate limit has been exceeded.
	ErrRateLimited = errors.New("Gemini rate limit exceeded")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with Gemini")

	// ErrInvalidResponse indicates an unexpected API response.
	ErrInvalidResponse = errors.New("invalid response from Gemini")

	// ErrProcessingFailed indicates the uploaded file failed server-side processing.
	ErrProcessingFailed = errors.New("Gemini file processing failed")

	// ErrProcessingTimeout indicates the uploaded file did not become ready in time.
	ErrProcessingTimeout = errors.New("Gemini file processing timed out")
)

// APIError represents an error response from the Gemini API.
type APIError struct {
	StatusCode int
	Message    string
	FilePath   string // For context in upload/analysis errors
}

func (e *APIError) Error() string {
	if e.FilePath != "" {
		return fmt.Sprintf("Gemini API error (status %d): %s (file: %s)", e.StatusCode, e.Message, e.FilePath)
	}
	return fmt.Sprintf("Gemini API error (status %d): %s", e.StatusCode, e.Message)
}

// IsAuthError returns true if the error indicates an authentication problem.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrAuthError) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403
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
		return apiErr.StatusCode == 429
	}
	return false
}
