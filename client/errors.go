package client

import "fmt"

// TransientError is returned when a transport-level failure (connection
// refused/reset, timeout) persisted across every retry attempt. The original
// cause is wrapped, not swallowed.
type TransientError struct {
	Attempts int
	Err      error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("request failed after %d attempts: %s", e.Attempts, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }
