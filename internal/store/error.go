package store

import (
	"errors"
)

var (
	// ErrInvalidFormat marks a malformed import payload. No remote call is
	// made once it is raised.
	ErrInvalidFormat = errors.New("invalid import payload format")
	// ErrBlocked marks a collection left in a mixed state by a partially
	// failed bulk operation. Refetch clears it.
	ErrBlocked = errors.New("collection blocked after partial bulk failure, refetch required")
)
