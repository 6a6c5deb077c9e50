// Package memory provides an in-memory record store. It backs tests and the
// default zero-configuration backend.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"tally/internal/core"
	"tally/internal/ledger"
)

type Store struct {
	mu      sync.RWMutex
	records []core.Record
	nextSeq int64
}

func New() *Store {
	return &Store{}
}

// Create assigns identity and stores the record. The sequence counter is
// shared across kinds so creation order is total.
func (s *Store) Create(_ context.Context, r core.Record) (core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSeq++
	r.ID = uuid.NewString()
	r.Seq = s.nextSeq
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	s.records = append(s.records, r)
	return r, nil
}

func (s *Store) Delete(_ context.Context, kind core.Kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.records {
		if r.Kind == kind && r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return ledger.ErrNotFound
}

func (s *Store) List(_ context.Context, kind core.Kind) ([]core.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(kind), nil
}

func (s *Store) Get(_ context.Context, kind core.Kind, id string) (core.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.records {
		if r.Kind == kind && r.ID == id {
			return r, nil
		}
	}
	return core.Record{}, ledger.ErrNotFound
}

// Snapshot reads both kinds under a single lock acquisition, so the caller
// observes one consistent state without interleaved mutations.
func (s *Store) Snapshot(_ context.Context) ([]core.Record, []core.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(core.KindIncome), s.collect(core.KindExpense), nil
}

func (s *Store) collect(kind core.Kind) []core.Record {
	out := make([]core.Record, 0)
	for _, r := range s.records {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}
