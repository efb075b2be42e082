package errors

import "fmt"

// HTTPError represents an HTTP error with status code from a requirement's
// backing query.
type HTTPError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("HTTP %d at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// TimeoutError indicates a requirement check timed out.
type TimeoutError struct {
	Operation string
	Duration  string
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout after %s: %s", e.Duration, e.Operation)
}

// CheckError wraps an error with requirement context.
// It identifies which requirement slot failed and what was attempted.
type CheckError struct {
	// Index is the terminal index of the requirement that failed.
	Index int
	// Op is the operation that failed (e.g., "check").
	Op string
	// Err is the underlying error from the requirement.
	Err error
}

// Error implements the error interface.
func (e *CheckError) Error() string {
	return fmt.Sprintf("requirement %d: %s: %v", e.Index, e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *CheckError) Unwrap() error {
	return e.Err
}
