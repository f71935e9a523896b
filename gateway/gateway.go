// Package gateway exposes the semantic processor over HTTP: JSON view
// endpoints, ontology load/clear, Prometheus metrics, and a websocket that
// pushes the regenerated network graph to subscribers after each mutation.
package gateway

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/c360/semgraph/config"
	"github.com/c360/semgraph/errors"
	"github.com/c360/semgraph/metric"
	"github.com/c360/semgraph/semantic"
)

// Server is the HTTP gateway over a semantic processor.
type Server struct {
	cfg       config.ServerConfig
	processor *semantic.Processor
	registry  *metric.Registry
	logger    *slog.Logger

	upgrader  websocket.Upgrader
	clients   map[*websocket.Conn]struct{}
	clientsMu sync.Mutex

	mu         sync.Mutex
	httpServer *http.Server
}

// NewServer creates a gateway over the given processor. The metrics registry
// is optional; when nil the /metrics endpoint is disabled and no request
// metrics are recorded.
func NewServer(cfg config.ServerConfig, processor *semantic.Processor, registry *metric.Registry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:       cfg,
		processor: processor,
		registry:  registry,
		logger:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return originAllowed(r.Header.Get("Origin"), cfg.CORSOrigins)
			},
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Handler builds the gateway's HTTP handler. Exposed separately from Start
// for httptest use.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/constructs", s.wrap("constructs", s.handleConstructs))
	mux.HandleFunc("GET /api/v1/entanglements", s.wrap("entanglements", s.handleEntanglements))
	mux.HandleFunc("GET /api/v1/characters", s.wrap("characters", s.handleCharacters))
	mux.HandleFunc("GET /api/v1/relationships", s.wrap("relationships", s.handleRelationships))
	mux.HandleFunc("GET /api/v1/graph", s.wrap("graph", s.handleGraph))
	mux.HandleFunc("GET /api/v1/stats", s.wrap("stats", s.handleStats))
	mux.HandleFunc("POST /api/v1/ontology", s.wrap("ontology_load", s.handleOntologyLoad))
	mux.HandleFunc("DELETE /api/v1/ontology", s.wrap("ontology_clear", s.handleOntologyClear))
	mux.HandleFunc("GET /api/v1/graph/ws", s.handleWebsocket)

	// CORS preflight for all API routes.
	mux.HandleFunc("OPTIONS /api/v1/", func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.EnableCORS {
			s.applyCORS(w, r)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	if s.registry != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(
			s.registry.PrometheusRegistry(),
			promhttp.HandlerOpts{EnableOpenMetrics: true},
		))
	}

	return mux
}

// Start begins serving on the configured host and port. It returns once the
// listener is bound; serving continues in the background until Stop.
func (s *Server) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.httpServer != nil {
		return errors.WrapInvalid(errors.ErrAlreadyStarted, "Server", "Start", "lifecycle check")
	}

	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprintf("%d", s.cfg.Port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.WrapFatal(err, "Server", "Start", "listener bind")
	}

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		s.logger.Info("gateway listening", "addr", addr)
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("gateway serve failed", "error", err)
		}
	}()

	return nil
}

// Stop shuts the server down gracefully, closing websocket clients first.
func (s *Server) Stop(timeout time.Duration) error {
	s.mu.Lock()
	server := s.httpServer
	s.httpServer = nil
	s.mu.Unlock()

	if server == nil {
		return errors.WrapInvalid(errors.ErrNotStarted, "Server", "Stop", "lifecycle check")
	}

	s.closeClients()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return errors.WrapTransient(err, "Server", "Stop", "graceful shutdown")
	}
	return nil
}

// wrap applies request ID, CORS, and request metrics around a handler.
func (s *Server) wrap(route string, handler func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := getOrGenerateRequestID(r)
		w.Header().Set("X-Request-ID", requestID)

		if s.cfg.EnableCORS {
			s.applyCORS(w, r)
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		handler(rec, r)

		if s.registry != nil {
			s.registry.CoreMetrics().HTTPRequests.
				WithLabelValues(route, fmt.Sprintf("%d", rec.status)).Inc()
		}
	}
}

func (s *Server) applyCORS(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if !originAllowed(origin, s.cfg.CORSOrigins) {
		return
	}

	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
	} else {
		w.Header().Set("Access-Control-Allow-Origin", "*")
	}
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

func originAllowed(origin string, allowed []string) bool {
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}

// getOrGenerateRequestID extracts the request ID from headers or generates
// one for tracing across the gateway.
func getOrGenerateRequestID(r *http.Request) string {
	if reqID := r.Header.Get("X-Request-ID"); reqID != "" {
		return reqID
	}

	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("req-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

// statusRecorder captures the response status for request metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
