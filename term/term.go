// Package term defines the RDF term model used throughout SemGraph.
//
// A Term is a tagged union over the five RDF term kinds: IRI, blank node,
// plain literal, language-tagged literal, and datatype-tagged literal.
// Equality is strict: two terms are equal only when their kinds and all
// constituent fields match. An IRI never compares equal to a literal that
// happens to share the same text.
package term

import "strings"

// Kind identifies the variant of a Term.
type Kind int

const (
	// KindIRI is an absolute IRI reference.
	KindIRI Kind = iota
	// KindBlankNode is a graph-scoped anonymous node label.
	KindBlankNode
	// KindLiteral is a plain string literal with no language or datatype.
	KindLiteral
	// KindLangLiteral is a literal with a language tag (e.g. "en").
	KindLangLiteral
	// KindTypedLiteral is a literal with a datatype IRI (e.g. xsd:integer).
	KindTypedLiteral
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindIRI:
		return "iri"
	case KindBlankNode:
		return "blank"
	case KindLiteral:
		return "literal"
	case KindLangLiteral:
		return "lang-literal"
	case KindTypedLiteral:
		return "typed-literal"
	default:
		return "unknown"
	}
}

// Term is a single RDF term. The zero value is the empty IRI, which matches
// nothing in a populated store.
type Term struct {
	Kind Kind `json:"kind"`

	// Value holds the IRI text, the blank node label, or the literal
	// lexical form depending on Kind.
	Value string `json:"value"`

	// Language is set only for KindLangLiteral.
	Language string `json:"language,omitempty"`

	// Datatype is the datatype IRI, set only for KindTypedLiteral.
	Datatype string `json:"datatype,omitempty"`
}

// IRI constructs an IRI term.
func IRI(iri string) Term {
	return Term{Kind: KindIRI, Value: iri}
}

// BlankNode constructs a blank node term from its local label (without the
// "_:" sigil).
func BlankNode(label string) Term {
	return Term{Kind: KindBlankNode, Value: label}
}

// Literal constructs a plain literal term.
func Literal(value string) Term {
	return Term{Kind: KindLiteral, Value: value}
}

// LangLiteral constructs a language-tagged literal term.
func LangLiteral(value, language string) Term {
	return Term{Kind: KindLangLiteral, Value: value, Language: language}
}

// TypedLiteral constructs a datatype-tagged literal term.
func TypedLiteral(value, datatype string) Term {
	return Term{Kind: KindTypedLiteral, Value: value, Datatype: datatype}
}

// Equals reports whether two terms are identical: same kind and same
// constituent fields. There is no coercion between variants.
func (t Term) Equals(other Term) bool {
	return t.Kind == other.Kind &&
		t.Value == other.Value &&
		t.Language == other.Language &&
		t.Datatype == other.Datatype
}

// IsIRI reports whether the term is an IRI.
func (t Term) IsIRI() bool {
	return t.Kind == KindIRI
}

// IsBlankNode reports whether the term is a blank node.
func (t Term) IsBlankNode() bool {
	return t.Kind == KindBlankNode
}

// IsLiteral reports whether the term is any literal variant.
func (t Term) IsLiteral() bool {
	return t.Kind == KindLiteral || t.Kind == KindLangLiteral || t.Kind == KindTypedLiteral
}

// IsZero reports whether the term is the zero value (empty IRI).
func (t Term) IsZero() bool {
	return t == Term{}
}

// String returns the caller-facing text of the term: the IRI text, the
// literal lexical form, or "_:label" for blank nodes.
func (t Term) String() string {
	if t.Kind == KindBlankNode {
		return "_:" + t.Value
	}
	return t.Value
}

// LocalName extracts the local part of an IRI: the substring after the last
// "#", else after the last "/", else the IRI unchanged.
func LocalName(iri string) string {
	if idx := strings.LastIndex(iri, "#"); idx >= 0 {
		return iri[idx+1:]
	}
	if idx := strings.LastIndex(iri, "/"); idx >= 0 {
		return iri[idx+1:]
	}
	return iri
}
