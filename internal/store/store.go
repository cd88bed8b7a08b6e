// Package store keeps a client-visible collection of records consistent
// across the remote table service, the device-local snapshot cache and the
// built-in sample datasets. One Store per collection name owns the
// authoritative in-memory record set; the cache only ever holds a copy.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/oklog/ulid/v2"
	"golang.org/x/exp/slog"

	"zervitravel/internal/cache"
	"zervitravel/internal/remote"
	"zervitravel/internal/sanitize"
)

// Record is the contract a typed collection record satisfies.
type Record interface {
	RecordID() string
	RecordVersion() int
}

// Validator is implemented by record types that carry field invariants
// beyond the descriptor's required list. Insert and Import check it
// before any remote call.
type Validator interface {
	Validate() error
}

// TableClient is the remote surface the store composes. Implemented by
// remote.Table; faked in tests.
type TableClient interface {
	List(ctx context.Context) ([]json.RawMessage, error)
	Insert(ctx context.Context, fields sanitize.Fields) (json.RawMessage, error)
	Update(ctx context.Context, id string, baseVersion int, fields sanitize.Fields) (json.RawMessage, error)
	Remove(ctx context.Context, id string) error
}

// Descriptor describes one collection.
type Descriptor[T Record] struct {
	Name     string
	Required []string // fields an import payload must carry, besides id
	Sample   []T      // built-in seed dataset, in seeding order
}

type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Snapshot is the state a subscriber observes.
type Snapshot[T Record] struct {
	Records  []T
	State    State
	Degraded bool
	Err      error
}

// Store is the stateful, subscribable container for one collection.
type Store[T Record] struct {
	desc  Descriptor[T]
	table TableClient
	cache cache.KV
	log   *slog.Logger

	mu           sync.RWMutex
	records      []T
	state        State
	degraded     bool
	lastErr      error
	blocked      error
	bootstrapped bool

	subMu   sync.Mutex
	subs    map[int]chan Snapshot[T]
	nextSub int
}

func New[T Record](desc Descriptor[T], table TableClient, kv cache.KV, log *slog.Logger) *Store[T] {
	return &Store[T]{
		desc:  desc,
		table: table,
		cache: kv,
		log:   log.With("collection", desc.Name),
		subs:  make(map[int]chan Snapshot[T]),
	}
}

func (s *Store[T]) Name() string {
	return s.desc.Name
}

// Records returns a copy of the current in-memory record set.
func (s *Store[T]) Records() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]T(nil), s.records...)
}

// Snapshot returns the full observable state.
func (s *Store[T]) Snapshot() Snapshot[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot[T]{
		Records:  append([]T(nil), s.records...),
		State:    s.state,
		Degraded: s.degraded,
		Err:      s.lastErr,
	}
}

// Subscribe registers a state-change listener. Every committed change is
// delivered as a Snapshot; slow consumers miss intermediate snapshots
// rather than blocking store operations.
func (s *Store[T]) Subscribe() (<-chan Snapshot[T], func()) {
	ch := make(chan Snapshot[T], 8)

	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subMu.Unlock()

	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// Fetch replaces the in-memory set with the remote list. An unreachable
// remote degrades to the cached snapshot (or an empty set) instead of
// failing; this is the only path that may serve stale data and it is
// always flagged via Degraded.
func (s *Store[T]) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.state = StateLoading
	s.mu.Unlock()
	s.notify()

	raws, err := s.table.List(ctx)
	if err != nil {
		if errors.Is(err, remote.ErrUnavailable) {
			records := s.loadSnapshotRecords()
			s.mu.Lock()
			s.records = records
			s.state = StateReady
			s.degraded = true
			s.lastErr = err
			s.mu.Unlock()
			s.notify()
			s.log.Warn("remote unreachable, serving local snapshot", "records", len(records), "error", err)
			return nil
		}
		s.mu.Lock()
		s.state = StateReady
		s.lastErr = err
		s.mu.Unlock()
		s.notify()
		return err
	}

	records, err := decodeRecords[T](raws)
	if err != nil {
		s.mu.Lock()
		s.state = StateReady
		s.lastErr = err
		s.mu.Unlock()
		s.notify()
		return err
	}

	s.mu.Lock()
	s.records = records
	s.state = StateReady
	s.degraded = false
	s.lastErr = nil
	// The set now mirrors the remote exactly, so a pending bulk-failure
	// block has nothing left to protect.
	s.blocked = nil
	s.mu.Unlock()
	s.persistSnapshot()
	s.notify()
	return nil
}

// Refetch is a full Fetch issued to reconcile after operations whose
// remote results may have raced; kept as its own name so call sites
// signal intent. Any successful full replace lifts a pending
// bulk-failure block; a degraded fetch does not, the mixed remote state
// is still unobserved then.
func (s *Store[T]) Refetch(ctx context.Context) error {
	return s.Fetch(ctx)
}

// Insert creates a record, assigning a client-side id when absent. On
// failure the in-memory set is untouched and the error propagates; no
// automatic retry, a retried create could duplicate the record.
func (s *Store[T]) Insert(ctx context.Context, rec T) (T, error) {
	var zero T
	if err := s.guard(); err != nil {
		return zero, err
	}
	if err := validateRecord(&rec); err != nil {
		return zero, fmt.Errorf("invalid record: %w", err)
	}

	fields, err := recordFields(rec)
	if err != nil {
		return zero, err
	}
	if id, _ := fields["id"].(string); id == "" {
		fields["id"] = NewID()
	}

	raw, err := s.table.Insert(ctx, sanitize.ForCreate(fields))
	if err != nil {
		s.setErr(err)
		return zero, err
	}

	created, err := decodeRecord[T](raw)
	if err != nil {
		return zero, fmt.Errorf("decode created record: %w", err)
	}

	s.mu.Lock()
	s.upsertLocked(created)
	s.mu.Unlock()
	s.persistSnapshot()
	s.notify()
	return created, nil
}

// Update full-replaces the mutable field set of one record. The held
// record's version rides along as the conflict base; NotFound and
// Conflict surface without touching local state, the caller's view is
// then known-stale and must Refetch.
func (s *Store[T]) Update(ctx context.Context, id string, fields sanitize.Fields) (T, error) {
	var zero T
	if err := s.guard(); err != nil {
		return zero, err
	}

	base := 0
	s.mu.RLock()
	for _, r := range s.records {
		if r.RecordID() == id {
			base = r.RecordVersion()
			break
		}
	}
	s.mu.RUnlock()

	raw, err := s.table.Update(ctx, id, base, sanitize.ForUpdate(fields))
	if err != nil {
		s.setErr(err)
		return zero, err
	}

	updated, err := decodeRecord[T](raw)
	if err != nil {
		return zero, fmt.Errorf("decode updated record: %w", err)
	}

	s.mu.Lock()
	s.upsertLocked(updated)
	s.mu.Unlock()
	s.persistSnapshot()
	s.notify()
	return updated, nil
}

// Remove deletes a record. Idempotent on both sides: an id absent locally
// or remotely is not an error.
func (s *Store[T]) Remove(ctx context.Context, id string) error {
	if err := s.guard(); err != nil {
		return err
	}

	if err := s.table.Remove(ctx, id); err != nil {
		s.setErr(err)
		return err
	}

	s.mu.Lock()
	kept := s.records[:0]
	for _, r := range s.records {
		if r.RecordID() != id {
			kept = append(kept, r)
		}
	}
	s.records = kept
	s.mu.Unlock()
	s.persistSnapshot()
	s.notify()
	return nil
}

// NewID returns a client-assigned record id, unique and time-sortable.
func NewID() string {
	return ulid.Make().String()
}

// ==================== internals ====================

func (s *Store[T]) guard() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.blocked != nil {
		return s.blocked
	}
	return nil
}

func (s *Store[T]) setErr(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
	s.notify()
}

// upsertLocked replaces the record with the same id, or appends.
func (s *Store[T]) upsertLocked(rec T) {
	for i, r := range s.records {
		if r.RecordID() == rec.RecordID() {
			s.records[i] = rec
			return
		}
	}
	s.records = append(s.records, rec)
}

func (s *Store[T]) loadSnapshotRecords() []T {
	data, ok := s.cache.LoadSnapshot(s.desc.Name)
	if !ok {
		return nil
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		s.log.Warn("snapshot unreadable, serving empty set", "error", err)
		return nil
	}
	return records
}

func (s *Store[T]) persistSnapshot() {
	data, err := s.marshalRecords()
	if err != nil {
		s.log.Warn("snapshot marshal failed", "error", err)
		return
	}
	if err := s.cache.SaveSnapshot(s.desc.Name, data); err != nil {
		s.log.Warn("snapshot write failed", "error", err)
	}
}

func (s *Store[T]) marshalRecords() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.records
	if records == nil {
		records = []T{}
	}
	return json.Marshal(records)
}

func (s *Store[T]) notify() {
	snap := s.Snapshot()
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

func validateRecord[T Record](rec *T) error {
	if v, ok := any(rec).(Validator); ok {
		return v.Validate()
	}
	return nil
}

func recordFields(rec Record) (sanitize.Fields, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	var fields sanitize.Fields
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("unmarshal record fields: %w", err)
	}
	return fields, nil
}

func decodeRecord[T Record](raw json.RawMessage) (T, error) {
	var rec T
	err := json.Unmarshal(raw, &rec)
	return rec, err
}

func decodeRecords[T Record](raws []json.RawMessage) ([]T, error) {
	records := make([]T, 0, len(raws))
	for _, raw := range raws {
		rec, err := decodeRecord[T](raw)
		if err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}
