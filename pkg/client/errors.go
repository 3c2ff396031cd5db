package client

import (
	"errors"
	"fmt"
)

// HTTPError represents a non-2xx HTTP response from the API.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// IsRejected reports whether err is a server rejection (any HTTP status
// error) as opposed to a network-level failure. The two are distinguished
// only coarsely, for form messaging.
func IsRejected(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr)
}
