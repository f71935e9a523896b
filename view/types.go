// Package view derives typed, serializable aggregates from the triple store.
//
// Each view is a pure function of the store contents at the moment of the
// call: views hold no identity of their own and go stale as soon as the
// store mutates. Construction composes pattern scans and first-match /
// all-match lookups; absent values resolve to documented defaults, never to
// errors.
package view

// DefaultRelationship is the relationship type reported for entanglements
// that carry no explicit relationshipType assertion.
const DefaultRelationship = "related"

// DefaultGlossLanguage is the language reported for every gloss. Gloss
// triples carry no per-gloss language in the source ontology.
const DefaultGlossLanguage = "en"

// Gloss is an annotation or explanation attached to a construct.
//
// Known limitation: ID is synthesized as subject+"#gloss" for every gloss of
// a subject, so a subject with multiple glosses produces colliding IDs.
// Downstream consumers depend on this exact shape; do not deduplicate.
type Gloss struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Language string `json:"language"`
	Position *int   `json:"position,omitempty"`
}

// Construct is a conceptual construct in the ontology.
type Construct struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Description string  `json:"description,omitempty"`
	Glosses     []Gloss `json:"glosses"`

	// Relationships lists the entanglements that reference this construct
	// as source or target (reverse lookup, store order).
	Relationships []string `json:"relationships"`
}

// Entanglement is a relationship entity linking a source construct to a
// target construct.
type Entanglement struct {
	ID               string `json:"id"`
	Label            string `json:"label"`
	Source           string `json:"source"`
	Target           string `json:"target"`
	RelationshipType string `json:"relationship_type"`
	Description      string `json:"description,omitempty"`
}

// Character is a character entity in the semantic universe.
type Character struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Constructs  []string `json:"constructs"`
}

// GraphNode is a node in the visualization projection.
type GraphNode struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	NodeType string `json:"node_type"`
}

// GraphEdge is a directed edge in the visualization projection.
type GraphEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

// NetworkGraph is the node/edge projection of the store for visualization.
type NetworkGraph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}
