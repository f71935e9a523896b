// Package store provides the in-memory triple store and its pattern scanner.
//
// The store is an insertion-ordered, append-only sequence of triples; the
// only destructive operation is a full clear. Every query is a linear scan
// over the current contents; no index is built or reused between calls.
// Dataset sizes are ontology-scale (thousands of triples), so the design
// favors an obviously-correct scan over indexing machinery.
//
// Mutation (BulkLoad, Add, Clear) and reads are guarded by an RWMutex:
// scans copy a snapshot under the read lock, so an in-flight iteration never
// observes a concurrent mutation.
package store

import (
	"fmt"
	"sync"

	"github.com/c360/semgraph/errors"
	"github.com/c360/semgraph/term"
)

// Store holds an ordered sequence of triples. Order is insertion order
// (parser emission order); first-match lookups depend on it, so repeated
// queries against an unmutated store always observe the same sequence.
type Store struct {
	mu      sync.RWMutex
	triples []term.Triple
}

// New creates an empty triple store.
func New() *Store {
	return &Store{}
}

// BulkLoad appends a batch of triples to the store. Prior content is kept;
// repeated loads accumulate. Every triple is validated first and the batch
// is applied all-or-nothing: a single invalid triple rejects the whole load
// and leaves the store untouched.
func (s *Store) BulkLoad(triples []term.Triple) error {
	for i, t := range triples {
		if err := t.Validate(); err != nil {
			return errors.WrapInvalid(
				fmt.Errorf("triple %d: %w", i, err),
				"Store", "BulkLoad", "triple validation")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.triples = append(s.triples, triples...)
	return nil
}

// Add appends a single triple to the store.
func (s *Store) Add(t term.Triple) error {
	if err := t.Validate(); err != nil {
		return errors.WrapInvalid(err, "Store", "Add", "triple validation")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.triples = append(s.triples, t)
	return nil
}

// Clear discards all triples and returns the store to empty.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.triples = nil
}

// Count returns the number of stored triples.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.triples)
}

// Iterate returns a snapshot of all triples in insertion order. The snapshot
// is a copy; later mutation does not affect it.
func (s *Store) Iterate() []term.Triple {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]term.Triple, len(s.triples))
	copy(snapshot, s.triples)
	return snapshot
}
