// Package semgraph provides an in-memory semantic graph service: an RDF
// triple store with typed views over a narrative ontology.
//
// # Architecture
//
// The module is layered bottom-up:
//
//   - term: RDF term and triple model with strict, no-coercion equality
//   - vocabulary: namespace registry and the well-known class/predicate IRIs
//   - store: insertion-ordered triple store with a linear pattern scanner
//   - turtle: Turtle-subset parser producing validated triples
//   - view: typed projections (constructs, entanglements, characters,
//     network graph) derived from pattern scans
//   - semantic: the processor facade binding store, registry, parser, and
//     views behind one load/query/clear API
//   - gateway: HTTP JSON API, Prometheus metrics endpoint, and a websocket
//     that pushes the regenerated graph after each mutation
//
// Views are pure functions of the store contents: nothing is indexed or
// cached, and every query observes the store at the moment of the call.
// Loads are atomic; a document that fails to parse or validate leaves the
// store untouched.
//
// The semgraph binary under cmd/semgraph wires these together with JSON
// configuration and structured logging.
package semgraph
