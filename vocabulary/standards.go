// Package vocabulary provides namespace registration, prefixed-name
// resolution, and the IRI constants of the Sinople ontology.
package vocabulary

// Base IRIs for the well-known namespaces seeded into every Registry.
//
// These exact bases are part of the observable contract: ontology documents
// express their terms against them, so changing a base silently breaks every
// prefixed query.
const (
	// SinopleBase is the Sinople ontology namespace ("sn" prefix).
	SinopleBase = "https://sinople.org/ontology#"

	// RDFBase is the RDF syntax namespace ("rdf" prefix).
	RDFBase = "https://www.w3.org/1999/02/22-rdf-syntax-ns#"

	// RDFSBase is the RDF Schema namespace ("rdfs" prefix).
	RDFSBase = "https://www.w3.org/2000/01/rdf-schema#"

	// OWLBase is the Web Ontology Language namespace ("owl" prefix).
	OWLBase = "https://www.w3.org/2002/07/owl#"

	// XSDBase is the XML Schema datatype namespace ("xsd" prefix).
	XSDBase = "https://www.w3.org/2001/XMLSchema#"
)

// RDF / RDFS predicate IRIs used by the view builders.
const (
	// RDFType asserts class membership ("rdf:type", also spelled "a" in Turtle).
	RDFType = RDFBase + "type"

	// RDFSLabel provides a human-readable name for a resource.
	RDFSLabel = RDFSBase + "label"

	// RDFSComment provides a human-readable description.
	RDFSComment = RDFSBase + "comment"
)

// Sinople ontology class IRIs.
const (
	// ClassConstruct is the conceptual-construct entity class.
	ClassConstruct = SinopleBase + "Construct"

	// ClassEntanglement is the relationship-entity class linking two constructs.
	ClassEntanglement = SinopleBase + "Entanglement"

	// ClassCharacter is the character entity class.
	ClassCharacter = SinopleBase + "Character"
)

// Sinople ontology predicate IRIs.
const (
	// HasGloss attaches an annotation or explanation to a construct.
	HasGloss = SinopleBase + "hasGloss"

	// HasSource points an entanglement at its source construct.
	HasSource = SinopleBase + "hasSource"

	// HasTarget points an entanglement at its target construct.
	HasTarget = SinopleBase + "hasTarget"

	// RelationshipType names the kind of relationship an entanglement carries.
	RelationshipType = SinopleBase + "relationshipType"

	// HasConstruct associates a character with a construct.
	HasConstruct = SinopleBase + "hasConstruct"
)
