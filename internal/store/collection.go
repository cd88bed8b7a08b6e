package store

import "context"

// Info is the untyped health summary of a store.
type Info struct {
	State    State
	Degraded bool
	Count    int
	Err      error
}

func (s *Store[T]) Info() Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Info{
		State:    s.state,
		Degraded: s.degraded,
		Count:    len(s.records),
		Err:      s.lastErr,
	}
}

// Collection is the type-erased surface of a Store, for callers that
// address collections by name instead of by record type.
type Collection interface {
	Name() string
	Fetch(ctx context.Context) error
	Refetch(ctx context.Context) error
	Bootstrap(ctx context.Context) error
	Import(ctx context.Context, payload []byte) (Result, error)
	Reset(ctx context.Context) (Result, error)
	ExportJSON() ([]byte, error)
	Info() Info
}
