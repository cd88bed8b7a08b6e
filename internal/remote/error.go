package remote

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable marks transport-level failures: the service could not
	// be reached at all. The store degrades to the local snapshot on it.
	ErrUnavailable = errors.New("remote service unavailable")
	// ErrNotFound marks a targeted id with no matching remote row.
	ErrNotFound = errors.New("record not found on remote")
	// ErrConflict marks an update whose base version no longer matches the
	// remote row.
	ErrConflict = errors.New("record version conflict")
)

// APIError is a request the service rejected for any other reason,
// carrying the service-reported detail.
type APIError struct {
	Status int
	Reason string
}

func (e *APIError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("remote rejected request (status %d): %s", e.Status, e.Reason)
	}
	return fmt.Sprintf("remote rejected request (status %d)", e.Status)
}
