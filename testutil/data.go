// Package testutil provides shared Turtle fixtures for tests.
package testutil

// FullOntology exercises every entity class: two constructs, one
// entanglement with an explicit relationship type, and one character.
// It parses to 14 triples.
const FullOntology = `@prefix sn: <https://sinople.org/ontology#> .
@prefix rdfs: <https://www.w3.org/2000/01/rdf-schema#> .

sn:memory a sn:Construct ;
    rdfs:label "Memory" ;
    rdfs:comment "The persistence of experience" ;
    sn:hasGloss "what remains" .

sn:forgetting a sn:Construct ;
    rdfs:label "Forgetting" .

sn:tension a sn:Entanglement ;
    rdfs:label "Memory against forgetting" ;
    sn:hasSource sn:memory ;
    sn:hasTarget sn:forgetting ;
    sn:relationshipType "opposes" .

sn:keeper a sn:Character ;
    rdfs:label "The Keeper" ;
    sn:hasConstruct sn:memory .
`

// MinimalOntology is two constructs linked by one entanglement with no
// explicit relationship type. It parses to 7 triples.
const MinimalOntology = `@prefix sn: <https://sinople.org/ontology#> .
@prefix rdfs: <https://www.w3.org/2000/01/rdf-schema#> .

sn:alpha a sn:Construct ;
    rdfs:label "Alpha" .

sn:beta a sn:Construct ;
    rdfs:label "Beta" .

sn:link a sn:Entanglement ;
    sn:hasSource sn:alpha ;
    sn:hasTarget sn:beta .
`

// MalformedDocs are Turtle documents that must fail to parse.
var MalformedDocs = []string{
	"not turtle at all {",
	"sn:a a sn:B .",
	`<http://ex.org/s> <http://ex.org/p> "unterminated .`,
}
