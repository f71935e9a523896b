// Package semantic is the facade over the triple store, namespace registry,
// Turtle parser, and view builders. A Processor owns one store and exposes
// the load / query / clear surface the gateway and CLI consume.
package semantic

import (
	"log/slog"
	"strings"
	"time"

	"github.com/c360/semgraph/errors"
	"github.com/c360/semgraph/metric"
	"github.com/c360/semgraph/store"
	"github.com/c360/semgraph/term"
	"github.com/c360/semgraph/turtle"
	"github.com/c360/semgraph/view"
	"github.com/c360/semgraph/vocabulary"
)

// Processor binds the store, registry, parser, and view builder behind a
// single API. All methods are safe for concurrent use; loads serialize
// against queries through the store's own locking.
type Processor struct {
	registry *vocabulary.Registry
	store    *store.Store
	parser   *turtle.Parser
	builder  *view.Builder
	metrics  *metric.Metrics
	logger   *slog.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithMetrics attaches core metrics for load and query instrumentation.
func WithMetrics(m *metric.Metrics) Option {
	return func(p *Processor) {
		p.metrics = m
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// New creates a Processor with an empty store and a registry seeded with the
// well-known namespace prefixes.
func New(opts ...Option) *Processor {
	s := store.New()
	p := &Processor{
		registry: vocabulary.NewRegistry(),
		store:    s,
		parser:   turtle.NewParser(),
		builder:  view.NewBuilder(s),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Registry returns the processor's namespace registry.
func (p *Processor) Registry() *vocabulary.Registry {
	return p.registry
}

// LoadTurtle parses a Turtle document and adds its triples to the store.
// The load is atomic: on a parse or validation error the store is untouched.
// Successive loads accumulate. Returns the number of triples added.
func (p *Processor) LoadTurtle(data []byte) (int, error) {
	start := time.Now()

	triples, err := p.parser.Parse(data)
	if err != nil {
		p.recordLoad("failure", 0, start)
		p.logger.Error("turtle parse failed", "error", err)
		return 0, errors.WrapInvalid(err, "Processor", "LoadTurtle", "turtle parsing")
	}

	if err := p.store.BulkLoad(triples); err != nil {
		p.recordLoad("failure", 0, start)
		return 0, err
	}

	p.recordLoad("success", len(triples), start)
	p.logger.Info("ontology loaded",
		"triples_added", len(triples),
		"triple_count", p.store.Count(),
		"elapsed", time.Since(start))
	return len(triples), nil
}

// LoadTriples adds pre-built triples to the store, atomically.
func (p *Processor) LoadTriples(triples []term.Triple) error {
	start := time.Now()

	if err := p.store.BulkLoad(triples); err != nil {
		p.recordLoad("failure", 0, start)
		return err
	}

	p.recordLoad("success", len(triples), start)
	return nil
}

// TripleCount returns the number of triples currently in the store.
func (p *Processor) TripleCount() int {
	return p.store.Count()
}

// Clear removes all triples. The namespace registry is unaffected.
func (p *Processor) Clear() {
	p.store.Clear()
	if p.metrics != nil {
		p.metrics.SetTripleCount(0)
	}
	p.logger.Info("store cleared")
}

// QueryConstructs returns the construct view of the current store contents.
func (p *Processor) QueryConstructs() ([]view.Construct, error) {
	p.recordQuery("constructs")
	defer p.observeScan(time.Now())
	return p.builder.Constructs()
}

// QueryEntanglements returns the entanglement view of the current store
// contents.
func (p *Processor) QueryEntanglements() ([]view.Entanglement, error) {
	p.recordQuery("entanglements")
	defer p.observeScan(time.Now())
	return p.builder.Entanglements()
}

// QueryCharacters returns the character view of the current store contents.
func (p *Processor) QueryCharacters() ([]view.Character, error) {
	p.recordQuery("characters")
	defer p.observeScan(time.Now())
	return p.builder.Characters()
}

// FindRelationships returns the IDs of entanglements that reference the
// given construct as source or target. The construct is identified by its
// term text: an IRI, or a "_:" prefixed blank node label.
func (p *Processor) FindRelationships(constructID string) []string {
	p.recordQuery("relationships")
	defer p.observeScan(time.Now())

	subject := term.IRI(constructID)
	if label, ok := strings.CutPrefix(constructID, "_:"); ok {
		subject = term.BlankNode(label)
	}
	return p.builder.Relationships(subject)
}

// GenerateNetworkGraph returns the node/edge projection of the current
// store contents.
func (p *Processor) GenerateNetworkGraph() (view.NetworkGraph, error) {
	p.recordQuery("graph")
	defer p.observeScan(time.Now())
	return p.builder.NetworkGraph()
}

func (p *Processor) recordLoad(status string, triples int, start time.Time) {
	if p.metrics == nil {
		return
	}
	p.metrics.RecordLoad(status, triples, time.Since(start))
	if status == "success" {
		p.metrics.SetTripleCount(p.store.Count())
	}
}

func (p *Processor) recordQuery(viewName string) {
	if p.metrics == nil {
		return
	}
	p.metrics.RecordViewQuery(viewName)
}

func (p *Processor) observeScan(start time.Time) {
	if p.metrics == nil {
		return
	}
	p.metrics.ObserveScanDuration(time.Since(start))
}
