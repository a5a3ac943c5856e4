// Package persistence maps resume save/load operations onto the remote
// resume API, degrading silently to a local key-value fallback store when
// the remote call fails.
package persistence

import "fmt"

// NotFoundError indicates the requested resume id exists in neither fallback
// collection. It is the only failure the fallback path surfaces to callers.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resume not found: %s", e.ID)
}

// RemoteError represents a failed remote API call: a transport error, a
// timeout, or a non-success response. The service absorbs these into the
// fallback path; they never reach callers.
type RemoteError struct {
	Operation  string
	StatusCode int
	Cause      error
}

func (e *RemoteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("remote %s failed: %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("remote %s failed: status %d", e.Operation, e.StatusCode)
}

func (e *RemoteError) Unwrap() error {
	return e.Cause
}
