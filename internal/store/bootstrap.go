package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Bootstrap reconciles a collection on first use, exactly once per
// session: an empty reachable remote is seeded from the saved custom
// default (if any) or the built-in sample; an unreachable remote falls
// back to the cached snapshot or, failing that, the sample in memory.
//
// Seeding is sequential and ordered. A failed seed insert aborts the
// remainder, flags the collection Degraded and serves the built-in sample
// purely in memory so the caller never sees an empty collection.
// Re-running after such an abort is deliberately not attempted within the
// session: rows that were accepted before the abort would be duplicated.
func (s *Store[T]) Bootstrap(ctx context.Context) error {
	s.mu.Lock()
	if s.bootstrapped {
		s.mu.Unlock()
		return nil
	}
	s.bootstrapped = true
	s.mu.Unlock()

	if err := s.Fetch(ctx); err != nil {
		return err
	}

	snap := s.Snapshot()
	if snap.Degraded {
		if len(snap.Records) == 0 {
			s.serveSampleInMemory(nil)
		}
		return nil
	}
	if len(snap.Records) > 0 {
		return nil
	}

	seed := s.seedDataset()
	for i, rec := range seed {
		if _, err := s.Insert(ctx, rec); err != nil {
			s.serveSampleInMemory(err)
			return fmt.Errorf("seeding %s aborted after %d of %d records: %w",
				s.desc.Name, i, len(seed), err)
		}
	}

	// Reconcile with what the remote actually accepted.
	return s.Refetch(ctx)
}

// seedDataset prefers a previously saved custom default over the built-in
// sample.
func (s *Store[T]) seedDataset() []T {
	if s.cache.HasCustomDefault(s.desc.Name) {
		if data, ok := s.cache.LoadCustomDefault(s.desc.Name); ok {
			var records []T
			if err := json.Unmarshal(data, &records); err != nil {
				s.log.Warn("custom default unreadable, seeding built-in sample", "error", err)
			} else {
				return records
			}
		}
	}
	return append([]T(nil), s.desc.Sample...)
}

func (s *Store[T]) serveSampleInMemory(cause error) {
	s.mu.Lock()
	s.records = append([]T(nil), s.desc.Sample...)
	s.degraded = true
	if cause != nil {
		s.lastErr = cause
	}
	s.mu.Unlock()
	s.notify()
}
