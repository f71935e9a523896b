package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/semgraph/config"
	"github.com/c360/semgraph/metric"
	"github.com/c360/semgraph/semantic"
	"github.com/c360/semgraph/testutil"
	"github.com/c360/semgraph/view"
	"github.com/c360/semgraph/vocabulary"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	cfg := config.Default().Server
	registry := metric.NewRegistry()
	processor := semantic.New(semantic.WithMetrics(registry.CoreMetrics()))

	gw := NewServer(cfg, processor, registry, nil)
	ts := httptest.NewServer(gw.Handler())
	t.Cleanup(ts.Close)
	return gw, ts
}

func loadOntology(t *testing.T, ts *httptest.Server, doc string) {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/v1/ontology", "text/turtle", strings.NewReader(doc))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func getJSON(t *testing.T, ts *httptest.Server, path string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestOntologyLoadAndQuery(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/v1/ontology", "text/turtle", strings.NewReader(testutil.MinimalOntology))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var loaded loadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&loaded))
	assert.Equal(t, 7, loaded.TriplesAdded)
	assert.Equal(t, 7, loaded.TripleCount)

	var constructs []view.Construct
	getJSON(t, ts, "/api/v1/constructs", &constructs)
	require.Len(t, constructs, 2)
	assert.Equal(t, "Alpha", constructs[0].Label)

	var entanglements []view.Entanglement
	getJSON(t, ts, "/api/v1/entanglements", &entanglements)
	require.Len(t, entanglements, 1)
	assert.Equal(t, "related", entanglements[0].RelationshipType)

	var characters []view.Character
	getJSON(t, ts, "/api/v1/characters", &characters)
	assert.Empty(t, characters)

	var graph view.NetworkGraph
	getJSON(t, ts, "/api/v1/graph", &graph)
	assert.Len(t, graph.Nodes, 3)
	assert.Len(t, graph.Edges, 1)
}

func TestRelationshipsEndpoint(t *testing.T) {
	_, ts := newTestServer(t)
	loadOntology(t, ts, testutil.MinimalOntology)

	var rels []string
	resp := getJSON(t, ts, "/api/v1/relationships?construct="+
		url.QueryEscape(vocabulary.SinopleBase+"alpha"), &rels)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{vocabulary.SinopleBase + "link"}, rels)

	// Missing query parameter is a client error.
	resp = getJSON(t, ts, "/api/v1/relationships", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOntologyLoadErrors(t *testing.T) {
	_, ts := newTestServer(t)

	docs := append([]string{""}, testutil.MalformedDocs...)
	for _, doc := range docs {
		resp, err := http.Post(ts.URL+"/api/v1/ontology", "text/turtle", strings.NewReader(doc))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.NotEmpty(t, body["error"])
		resp.Body.Close()
	}

	// Failed loads leave the store empty.
	var stats statsResponse
	getJSON(t, ts, "/api/v1/stats", &stats)
	assert.Zero(t, stats.TripleCount)
}

func TestOntologyClear(t *testing.T) {
	_, ts := newTestServer(t)
	loadOntology(t, ts, testutil.MinimalOntology)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/v1/ontology", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats statsResponse
	getJSON(t, ts, "/api/v1/stats", &stats)
	assert.Zero(t, stats.TripleCount)
	// Seeded prefixes survive the clear.
	assert.Contains(t, stats.Prefixes, "sn")
}

func TestStats(t *testing.T) {
	_, ts := newTestServer(t)
	loadOntology(t, ts, testutil.MinimalOntology)

	var stats statsResponse
	getJSON(t, ts, "/api/v1/stats", &stats)
	assert.Equal(t, 7, stats.TripleCount)
	assert.Equal(t, []string{"owl", "rdf", "rdfs", "sn", "xsd"}, stats.Prefixes)
	assert.Zero(t, stats.Clients)
}

func TestRequestIDPropagation(t *testing.T) {
	_, ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/stats", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "trace-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "trace-123", resp.Header.Get("X-Request-ID"))
}

func TestCORS(t *testing.T) {
	_, ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/v1/constructs", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://example.com", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestRequestTooLarge(t *testing.T) {
	cfg := config.Default().Server
	cfg.MaxRequestSize = 64

	processor := semantic.New()
	gw := NewServer(cfg, processor, nil, nil)
	ts := httptest.NewServer(gw.Handler())
	defer ts.Close()

	big := strings.Repeat("# padding\n", 100)
	resp, err := http.Post(ts.URL+"/api/v1/ontology", "text/turtle", strings.NewReader(big))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestHealthAndMetricsEndpoints(t *testing.T) {
	_, ts := newTestServer(t)

	var health map[string]string
	resp := getJSON(t, ts, "/health", &health)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", health["status"])

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWebsocketGraphPush(t *testing.T) {
	_, ts := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/graph/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Initial snapshot arrives on connect.
	var graph view.NetworkGraph
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	require.NoError(t, conn.ReadJSON(&graph))
	assert.Empty(t, graph.Nodes)

	// A load pushes the regenerated graph.
	loadOntology(t, ts, testutil.MinimalOntology)

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	require.NoError(t, conn.ReadJSON(&graph))
	assert.Len(t, graph.Nodes, 3)
	assert.Len(t, graph.Edges, 1)

	// A clear pushes the empty graph.
	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/v1/ontology", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	require.NoError(t, conn.ReadJSON(&graph))
	assert.Empty(t, graph.Nodes)
}
