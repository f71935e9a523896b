package term

import (
	"fmt"

	"github.com/c360/semgraph/errors"
)

// Triple represents a single semantic statement following the
// Subject-Predicate-Object pattern. Triples are immutable once stored.
//
// Position restrictions follow the RDF data model:
//   - Subject: IRI or blank node
//   - Predicate: IRI only
//   - Object: any term kind
type Triple struct {
	Subject   Term `json:"subject"`
	Predicate Term `json:"predicate"`
	Object    Term `json:"object"`
}

// NewTriple constructs a triple and validates position restrictions.
func NewTriple(subject, predicate, object Term) (Triple, error) {
	t := Triple{Subject: subject, Predicate: predicate, Object: object}
	if err := t.Validate(); err != nil {
		return Triple{}, err
	}
	return t, nil
}

// Validate checks the position restrictions of the triple.
func (t Triple) Validate() error {
	if !t.Subject.IsIRI() && !t.Subject.IsBlankNode() {
		return errors.WrapInvalid(
			fmt.Errorf("%w: subject must be IRI or blank node, got %s",
				errors.ErrInvalidTriple, t.Subject.Kind),
			"Triple", "Validate", "subject check")
	}
	if !t.Predicate.IsIRI() {
		return errors.WrapInvalid(
			fmt.Errorf("%w: predicate must be IRI, got %s",
				errors.ErrInvalidTriple, t.Predicate.Kind),
			"Triple", "Validate", "predicate check")
	}
	return nil
}
