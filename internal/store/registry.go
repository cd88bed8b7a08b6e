package store

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/exp/slog"

	"zervitravel/internal/cache"
)

// Registry owns one Store per collection name for the lifetime of the
// process, constructed lazily on first access. All subscribers of a
// collection observe the same instance; stores are dropped only when the
// registry is closed at shutdown.
type Registry struct {
	mu     sync.Mutex
	stores map[string]any
	views  map[string]collectionView
	kv     cache.KV
	log    *slog.Logger
}

// collectionView is the untyped slice of a store the registry needs for
// cross-collection work.
type collectionView interface {
	Name() string
	marshalRecords() ([]byte, error)
}

func NewRegistry(kv cache.KV, log *slog.Logger) *Registry {
	return &Registry{
		stores: make(map[string]any),
		views:  make(map[string]collectionView),
		kv:     kv,
		log:    log,
	}
}

// Open returns the store for desc.Name, creating it on first access.
func Open[T Record](r *Registry, desc Descriptor[T], table TableClient) *Store[T] {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.stores[desc.Name]; ok {
		return existing.(*Store[T])
	}
	s := New(desc, table, r.kv, r.log)
	r.stores[desc.Name] = s
	r.views[desc.Name] = s
	return s
}

// SaveAsDefault snapshots the current in-memory state of the named
// collections as their new bootstrap baseline. Deliberately the one
// cross-collection operation; it never touches the remote service, its
// only failure mode is a local storage write, reported but non-fatal to
// the collections themselves.
func (r *Registry) SaveAsDefault(names ...string) error {
	if len(names) == 0 {
		return fmt.Errorf("no collections named")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for _, name := range names {
		v, ok := r.views[name]
		if !ok {
			return fmt.Errorf("collection %q is not open", name)
		}
		data, err := v.marshalRecords()
		if err != nil {
			return fmt.Errorf("marshal %s records: %w", name, err)
		}
		if err := r.kv.SaveCustomDefault(name, data); err != nil {
			r.log.Warn("custom default write failed", "collection", name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Close drops every store. Meant for process shutdown only.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stores = make(map[string]any)
	r.views = make(map[string]collectionView)
}
