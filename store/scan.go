package store

import "github.com/c360/semgraph/term"

// Scan selects all triples matching a partially-specified pattern. A nil
// position is a wildcard matching any term; a non-nil position must compare
// equal under strict term equality. Results preserve store iteration order.
//
// The error return exists so the scan contract can signal iteration failure;
// the in-memory implementation never produces one.
func (s *Store) Scan(subject, predicate, object *term.Term) ([]term.Triple, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []term.Triple
	for _, t := range s.triples {
		if subject != nil && !t.Subject.Equals(*subject) {
			continue
		}
		if predicate != nil && !t.Predicate.Equals(*predicate) {
			continue
		}
		if object != nil && !t.Object.Equals(*object) {
			continue
		}
		matches = append(matches, t)
	}
	return matches, nil
}

// FirstObject returns the object of the first (lowest store-order) triple
// matching (subject, predicate, *). When a subject carries multiple values
// for the same predicate only the first in store order is visible; later
// values are deliberately ignored. Single-valued property lookups (labels,
// descriptions) rely on exactly this tie-break.
func (s *Store) FirstObject(subject, predicate term.Term) (term.Term, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.triples {
		if t.Subject.Equals(subject) && t.Predicate.Equals(predicate) {
			return t.Object, true
		}
	}
	return term.Term{}, false
}

// AllObjects returns every object across all triples matching
// (subject, predicate, *), in store order. Duplicates are not removed.
func (s *Store) AllObjects(subject, predicate term.Term) []term.Term {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var objects []term.Term
	for _, t := range s.triples {
		if t.Subject.Equals(subject) && t.Predicate.Equals(predicate) {
			objects = append(objects, t.Object)
		}
	}
	return objects
}

// SubjectsByObject returns the subjects of every triple whose object equals
// the given term and whose predicate is in the given set, in store order.
// Used for reverse-reference lookups ("what points at me").
func (s *Store) SubjectsByObject(object term.Term, predicates ...term.Term) []term.Term {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var subjects []term.Term
	for _, t := range s.triples {
		if !t.Object.Equals(object) {
			continue
		}
		for _, p := range predicates {
			if t.Predicate.Equals(p) {
				subjects = append(subjects, t.Subject)
				break
			}
		}
	}
	return subjects
}
