package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Phase tracks how far a bulk replace progressed. No multi-row
// transaction exists on the remote side, so a mid-sequence failure leaves
// a mixed state; exposing the phase (plus counts) lets the caller report
// precisely what happened instead of a bare failure flag.
type Phase int

const (
	PhaseDraft Phase = iota
	PhaseClearing
	PhaseSeeding
	PhaseVerified
)

func (p Phase) String() string {
	switch p {
	case PhaseDraft:
		return "draft"
	case PhaseClearing:
		return "clearing"
	case PhaseSeeding:
		return "seeding"
	case PhaseVerified:
		return "verified"
	default:
		return "unknown"
	}
}

// Result reports a bulk transfer outcome.
type Result struct {
	Phase    Phase
	Removed  int
	Inserted int
}

// Import replaces every record of the collection with the payload,
// built from single-record primitives: sequential removes of the
// pre-import set, sequential inserts of the payload, one final Refetch.
// A malformed payload fails with ErrInvalidFormat before any remote call.
// A mid-sequence failure blocks further mutations until a successful
// refetch, so an already-inconsistent state cannot be compounded.
func (s *Store[T]) Import(ctx context.Context, payload []byte) (Result, error) {
	res := Result{Phase: PhaseDraft}
	if err := s.guard(); err != nil {
		return res, err
	}

	records, err := s.parseImport(payload)
	if err != nil {
		return res, err
	}

	res.Phase = PhaseClearing
	existing := s.Records()
	for _, rec := range existing {
		if err := s.Remove(ctx, rec.RecordID()); err != nil {
			s.block(res)
			return res, fmt.Errorf("import aborted in clearing phase after %d of %d removals: %w",
				res.Removed, len(existing), err)
		}
		res.Removed++
	}

	res.Phase = PhaseSeeding
	for _, rec := range records {
		if _, err := s.Insert(ctx, rec); err != nil {
			s.block(res)
			return res, fmt.Errorf("import aborted in seeding phase after %d of %d inserts: %w",
				res.Inserted, len(records), err)
		}
		res.Inserted++
	}

	res.Phase = PhaseVerified
	if err := s.Refetch(ctx); err != nil {
		return res, err
	}
	return res, nil
}

// Reset is Import with the built-in sample dataset as payload.
func (s *Store[T]) Reset(ctx context.Context) (Result, error) {
	payload, err := json.Marshal(s.desc.Sample)
	if err != nil {
		return Result{Phase: PhaseDraft}, fmt.Errorf("marshal sample dataset: %w", err)
	}
	return s.Import(ctx, payload)
}

// ExportJSON returns a pretty-printed serialization of the current
// in-memory record sequence.
func (s *Store[T]) ExportJSON() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.records
	if records == nil {
		records = []T{}
	}
	return json.MarshalIndent(records, "", "  ")
}

// parseImport validates the payload without touching the remote: it must
// be a JSON array, the first element must carry id plus the collection's
// required discriminant fields, and every decoded record must pass its
// own validation.
func (s *Store[T]) parseImport(payload []byte) ([]T, error) {
	var rawList []map[string]any
	if err := json.Unmarshal(payload, &rawList); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if len(rawList) > 0 {
		required := append([]string{"id"}, s.desc.Required...)
		for _, key := range required {
			v, ok := rawList[0][key]
			if !ok || v == nil || v == "" {
				return nil, fmt.Errorf("%w: first record missing %q", ErrInvalidFormat, key)
			}
		}
	}

	var records []T
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	for i := range records {
		if err := validateRecord(&records[i]); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrInvalidFormat, i, err)
		}
	}
	return records, nil
}

func (s *Store[T]) block(res Result) {
	s.mu.Lock()
	s.blocked = fmt.Errorf("%w (phase %s, %d removed, %d inserted)",
		ErrBlocked, res.Phase, res.Removed, res.Inserted)
	s.mu.Unlock()
	s.notify()
}
