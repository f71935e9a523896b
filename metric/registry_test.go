package metric

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/semgraph/errors"
)

func TestNewRegistryRegistersCoreMetrics(t *testing.T) {
	r := NewRegistry()

	require.NotNil(t, r.CoreMetrics())
	require.NotNil(t, r.PrometheusRegistry())

	// Core metrics must be gatherable from the prometheus registry.
	r.CoreMetrics().RecordLoad("success", 10, 5*time.Millisecond)
	r.CoreMetrics().RecordViewQuery("constructs")
	r.CoreMetrics().SetTripleCount(10)

	families, err := r.PrometheusRegistry().Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}

	assert.True(t, names["semgraph_ontology_loads_total"])
	assert.True(t, names["semgraph_ontology_triples_loaded_total"])
	assert.True(t, names["semgraph_store_triple_count"])
	assert.True(t, names["semgraph_query_views_total"])
}

func TestRegisterComponentCollector(t *testing.T) {
	r := NewRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gateway_test_operations_total",
		Help: "Test counter",
	})

	require.NoError(t, r.Register("gateway", "operations", counter))

	// Duplicate key is rejected as invalid.
	err := r.Register("gateway", "operations", counter)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestUnregister(t *testing.T) {
	r := NewRegistry()

	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "gateway_test_active",
		Help: "Test gauge",
	})
	require.NoError(t, r.Register("gateway", "active", gauge))

	assert.True(t, r.Unregister("gateway", "active"))
	assert.False(t, r.Unregister("gateway", "active"))
	assert.False(t, r.Unregister("gateway", "never_registered"))

	// Key is free for re-registration after unregister.
	require.NoError(t, r.Register("gateway", "active", gauge))
}

func TestRecordLoadFailureSkipsTripleCounter(t *testing.T) {
	r := NewRegistry()
	m := r.CoreMetrics()

	m.RecordLoad("failure", 0, time.Millisecond)

	families, err := r.PrometheusRegistry().Gather()
	require.NoError(t, err)

	for _, f := range families {
		if f.GetName() == "semgraph_ontology_triples_loaded_total" {
			require.Len(t, f.GetMetric(), 1)
			assert.Zero(t, f.GetMetric()[0].GetCounter().GetValue())
		}
	}
}
