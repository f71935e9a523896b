package vocabulary

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/c360/semgraph/errors"
	"github.com/c360/semgraph/term"
)

// Registry maps namespace prefixes to base IRIs and resolves prefixed names
// into IRI terms. Every Registry is seeded with the well-known prefixes
// (sn, rdf, rdfs, owl, xsd); callers may register additional prefixes.
//
// Resolution is strict: an unregistered prefix that does not form a valid
// absolute IRI, or malformed IRI text, yields an explicit error rather than
// silently degrading to an unmatchable empty term.
type Registry struct {
	mu       sync.RWMutex
	prefixes map[string]string
}

// NewRegistry creates a namespace registry seeded with the well-known
// prefixes. The seed set is part of the observable contract and must stay
// compatible with data expressed against it.
func NewRegistry() *Registry {
	return &Registry{
		prefixes: map[string]string{
			"sn":   SinopleBase,
			"rdf":  RDFBase,
			"rdfs": RDFSBase,
			"owl":  OWLBase,
			"xsd":  XSDBase,
		},
	}
}

// Register adds or overrides a prefix mapping. The base must be valid IRI
// text; re-registering a prefix replaces the previous base.
func (r *Registry) Register(prefix, base string) error {
	if prefix == "" {
		return errors.WrapInvalid(
			fmt.Errorf("empty prefix"), "Registry", "Register", "prefix validation")
	}
	if !IsValidIRI(base) {
		return errors.WrapInvalid(
			fmt.Errorf("%w: %q", errors.ErrMalformedIRI, base),
			"Registry", "Register", "base IRI validation")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefixes[prefix] = base
	return nil
}

// Base returns the base IRI registered for a prefix.
func (r *Registry) Base(prefix string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	base, ok := r.prefixes[prefix]
	return base, ok
}

// Prefixes returns all registered prefixes in sorted order.
func (r *Registry) Prefixes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	prefixes := make([]string, 0, len(r.prefixes))
	for prefix := range r.prefixes {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)
	return prefixes
}

// Resolve expands a prefixed name (e.g. "sn:Construct") into an IRI term.
// Input whose prefix portion is not registered is treated as literal full
// IRI text and wrapped directly.
//
// Returns ErrMalformedIRI (wrapped) when the resulting text fails IRI
// syntax validation, rather than degrading to an empty, unmatchable term.
func (r *Registry) Resolve(input string) (term.Term, error) {
	if prefix, local, ok := strings.Cut(input, ":"); ok {
		r.mu.RLock()
		base, registered := r.prefixes[prefix]
		r.mu.RUnlock()

		if registered {
			return term.IRI(base + local), nil
		}
	}

	// No recognized prefix: treat input as a full IRI.
	if !IsValidIRI(input) {
		return term.Term{}, errors.WrapInvalid(
			fmt.Errorf("%w: %q", errors.ErrMalformedIRI, input),
			"Registry", "Resolve", "IRI validation")
	}
	return term.IRI(input), nil
}

// IsValidIRI reports whether s is plausible absolute IRI text: a scheme
// followed by a colon, with no whitespace or control characters. This is a
// syntax gate, not a full RFC 3987 validation.
func IsValidIRI(s string) bool {
	scheme, _, ok := strings.Cut(s, ":")
	if !ok || scheme == "" {
		return false
	}
	if !isSchemeStart(rune(scheme[0])) {
		return false
	}
	for _, r := range scheme[1:] {
		if !isSchemeChar(r) {
			return false
		}
	}
	for _, r := range s {
		if r <= ' ' || r == '<' || r == '>' || r == '"' || r == '{' || r == '}' || r == '|' || r == '\\' || r == '^' || r == '`' {
			return false
		}
	}
	return true
}

func isSchemeStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isSchemeChar(r rune) bool {
	return isSchemeStart(r) || (r >= '0' && r <= '9') || r == '+' || r == '-' || r == '.'
}
