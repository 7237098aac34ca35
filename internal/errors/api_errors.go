package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a failed call to the hosting service API
type APIError struct {
	Op      string // API call that failed
	Message string // Error message
	Status  int    // HTTP status code (if applicable)
	Err     error  // Underlying error
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Op, e.Message, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NewAPIError creates a new APIError
func NewAPIError(op, message string, err error) *APIError {
	return &APIError{
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// NewAPIHTTPError creates a new APIError with HTTP status
func NewAPIHTTPError(op string, status int, message string, err error) *APIError {
	return &APIError{
		Op:      op,
		Status:  status,
		Message: message,
		Err:     err,
	}
}

func statusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsAPIError checks if an error is or wraps an APIError
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// IsNotFound checks if the error indicates the account or resource does not exist
func IsNotFound(err error) bool {
	return statusOf(err) == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates rejected credentials
func IsUnauthorized(err error) bool {
	return statusOf(err) == http.StatusUnauthorized
}

// IsRateLimitExceeded checks if the error indicates rate limit was exceeded
func IsRateLimitExceeded(err error) bool {
	status := statusOf(err)
	return status == http.StatusTooManyRequests || status == http.StatusForbidden
}
