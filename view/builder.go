package view

import (
	"strings"

	"github.com/c360/semgraph/errors"
	"github.com/c360/semgraph/store"
	"github.com/c360/semgraph/term"
	"github.com/c360/semgraph/vocabulary"
)

// Fixed vocabulary terms used by every builder.
var (
	rdfType          = term.IRI(vocabulary.RDFType)
	rdfsLabel        = term.IRI(vocabulary.RDFSLabel)
	rdfsComment      = term.IRI(vocabulary.RDFSComment)
	classConstruct   = term.IRI(vocabulary.ClassConstruct)
	classEntangle    = term.IRI(vocabulary.ClassEntanglement)
	classCharacter   = term.IRI(vocabulary.ClassCharacter)
	hasGloss         = term.IRI(vocabulary.HasGloss)
	hasSource        = term.IRI(vocabulary.HasSource)
	hasTarget        = term.IRI(vocabulary.HasTarget)
	relationshipType = term.IRI(vocabulary.RelationshipType)
	hasConstruct     = term.IRI(vocabulary.HasConstruct)
)

// Builder constructs typed views from the current store contents. Builders
// never mutate the store.
type Builder struct {
	store *store.Store
}

// NewBuilder creates a view builder over the given store.
func NewBuilder(s *store.Store) *Builder {
	return &Builder{store: s}
}

// EntitiesOfType returns the subjects of every (*, rdf:type, typeIRI)
// triple, in store order. This is the entry point for every typed view.
func (b *Builder) EntitiesOfType(typeIRI term.Term) ([]term.Term, error) {
	matches, err := b.store.Scan(nil, &rdfType, &typeIRI)
	if err != nil {
		return nil, errors.WrapFatal(err, "Builder", "EntitiesOfType", "type scan")
	}

	subjects := make([]term.Term, 0, len(matches))
	for _, t := range matches {
		subjects = append(subjects, t.Subject)
	}
	return subjects, nil
}

// Constructs assembles the construct view for every sn:Construct entity.
func (b *Builder) Constructs() ([]Construct, error) {
	subjects, err := b.EntitiesOfType(classConstruct)
	if err != nil {
		return nil, err
	}

	constructs := make([]Construct, 0, len(subjects))
	for _, subject := range subjects {
		constructs = append(constructs, Construct{
			ID:            subject.String(),
			Label:         b.firstString(subject, rdfsLabel),
			Description:   b.firstString(subject, rdfsComment),
			Glosses:       b.Glosses(subject),
			Relationships: b.Relationships(subject),
		})
	}
	return constructs, nil
}

// Glosses collects one Gloss record per (subject, sn:hasGloss, value)
// triple, in store order. See the Gloss type for the ID collision caveat.
func (b *Builder) Glosses(subject term.Term) []Gloss {
	objects := b.store.AllObjects(subject, hasGloss)

	glosses := make([]Gloss, 0, len(objects))
	for _, obj := range objects {
		glosses = append(glosses, Gloss{
			ID:       subject.String() + "#gloss",
			Text:     obj.String(),
			Language: DefaultGlossLanguage,
		})
	}
	return glosses
}

// Relationships returns the entanglement subjects that reference the given
// term through sn:hasSource or sn:hasTarget, in store order.
func (b *Builder) Relationships(subject term.Term) []string {
	referrers := b.store.SubjectsByObject(subject, hasSource, hasTarget)

	ids := make([]string, 0, len(referrers))
	for _, r := range referrers {
		ids = append(ids, r.String())
	}
	return ids
}

// Entanglements assembles the entanglement view for every sn:Entanglement
// entity. Source and target default to empty when unasserted; the
// relationship type defaults to DefaultRelationship only when no
// relationshipType triple exists. An asserted empty string stays empty.
func (b *Builder) Entanglements() ([]Entanglement, error) {
	subjects, err := b.EntitiesOfType(classEntangle)
	if err != nil {
		return nil, err
	}

	entanglements := make([]Entanglement, 0, len(subjects))
	for _, subject := range subjects {
		relType := DefaultRelationship
		if obj, found := b.store.FirstObject(subject, relationshipType); found {
			relType = obj.String()
		}

		entanglements = append(entanglements, Entanglement{
			ID:               subject.String(),
			Label:            b.firstString(subject, rdfsLabel),
			Source:           b.firstString(subject, hasSource),
			Target:           b.firstString(subject, hasTarget),
			RelationshipType: relType,
			Description:      b.firstString(subject, rdfsComment),
		})
	}
	return entanglements, nil
}

// Characters assembles the character view for every sn:Character entity.
func (b *Builder) Characters() ([]Character, error) {
	subjects, err := b.EntitiesOfType(classCharacter)
	if err != nil {
		return nil, err
	}

	characters := make([]Character, 0, len(subjects))
	for _, subject := range subjects {
		objects := b.store.AllObjects(subject, hasConstruct)
		constructs := make([]string, 0, len(objects))
		for _, obj := range objects {
			constructs = append(constructs, obj.String())
		}

		characters = append(characters, Character{
			ID:          subject.String(),
			Name:        b.firstString(subject, rdfsLabel),
			Description: b.firstString(subject, rdfsComment),
			Constructs:  constructs,
		})
	}
	return characters, nil
}

// NetworkGraph projects the store into nodes and edges for visualization.
//
// The node pass emits one node per rdf:type triple with NO deduplication: a
// subject with two type assertions produces two nodes sharing an ID.
// Visualization consumers depend on one node per type assertion.
//
// The edge pass emits one edge per entanglement that has both a source and a
// target; entanglements missing either endpoint are skipped silently.
func (b *Builder) NetworkGraph() (NetworkGraph, error) {
	typed, err := b.store.Scan(nil, &rdfType, nil)
	if err != nil {
		return NetworkGraph{}, errors.WrapFatal(err, "Builder", "NetworkGraph", "node scan")
	}

	nodes := make([]GraphNode, 0, len(typed))
	for _, t := range typed {
		// The local-name fallback applies only when no label triple exists.
		label := term.LocalName(t.Subject.String())
		if obj, found := b.store.FirstObject(t.Subject, rdfsLabel); found {
			label = obj.String()
		}

		nodes = append(nodes, GraphNode{
			ID:       t.Subject.String(),
			Label:    label,
			NodeType: classifyNodeType(t.Object.String()),
		})
	}

	subjects, err := b.EntitiesOfType(classEntangle)
	if err != nil {
		return NetworkGraph{}, err
	}

	edges := make([]GraphEdge, 0, len(subjects))
	for _, subject := range subjects {
		source, sourceOK := b.store.FirstObject(subject, hasSource)
		target, targetOK := b.store.FirstObject(subject, hasTarget)
		if !sourceOK || !targetOK {
			continue
		}

		label := DefaultRelationship
		if obj, found := b.store.FirstObject(subject, relationshipType); found {
			label = obj.String()
		}

		edges = append(edges, GraphEdge{
			Source: source.String(),
			Target: target.String(),
			Label:  label,
		})
	}

	return NetworkGraph{Nodes: nodes, Edges: edges}, nil
}

// classifyNodeType inspects the type IRI text for the known class names.
// First match wins; the check order is part of the observable contract.
func classifyNodeType(typeIRI string) string {
	switch {
	case strings.Contains(typeIRI, "Construct"):
		return "construct"
	case strings.Contains(typeIRI, "Character"):
		return "character"
	case strings.Contains(typeIRI, "Entanglement"):
		return "entanglement"
	default:
		return "other"
	}
}

// firstString returns the string form of the first object for the
// subject/predicate pair, or "" when no triple matches.
func (b *Builder) firstString(subject, predicate term.Term) string {
	obj, found := b.store.FirstObject(subject, predicate)
	if !found {
		return ""
	}
	return obj.String()
}
