// Package storage defines the persistence contract of the table service:
// generic rows keyed by (collection, id), with service-owned timestamps
// and a version counter for conflict checks.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("row not found")
	ErrConflict  = errors.New("row version mismatch")
	ErrDuplicate = errors.New("row already exists")
)

// Row is one stored record. Data holds the client-authored fields; the
// envelope (id, version, timestamps) lives in columns.
type Row struct {
	Collection string
	ID         string
	Data       []byte
	Version    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableStorage is the minimal table contract the sync client needs:
// list, insert, update by id, delete by id.
type TableStorage interface {
	// List returns a collection's rows newest-first; insertion order
	// breaks created_at ties.
	List(ctx context.Context, collection string) ([]Row, error)
	Get(ctx context.Context, collection, id string) (*Row, error)
	Insert(ctx context.Context, collection, id string, data []byte) (*Row, error)
	// Update applies data to one row. A positive baseVersion must match
	// the stored version or ErrConflict is returned.
	Update(ctx context.Context, collection, id string, baseVersion int, data []byte) (*Row, error)
	// Delete is idempotent: deleting an absent row is not an error.
	Delete(ctx context.Context, collection, id string) error
	Close() error
}
