package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/c360/semgraph/errors"
)

// statsResponse is the body of GET /api/v1/stats.
type statsResponse struct {
	TripleCount int      `json:"triple_count"`
	Prefixes    []string `json:"prefixes"`
	Clients     int      `json:"websocket_clients"`
}

// loadResponse is the body of POST /api/v1/ontology.
type loadResponse struct {
	TriplesAdded int `json:"triples_added"`
	TripleCount  int `json:"triple_count"`
}

func (s *Server) handleConstructs(w http.ResponseWriter, r *http.Request) {
	constructs, err := s.processor.QueryConstructs()
	if err != nil {
		s.serveError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, constructs)
}

func (s *Server) handleEntanglements(w http.ResponseWriter, r *http.Request) {
	entanglements, err := s.processor.QueryEntanglements()
	if err != nil {
		s.serveError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, entanglements)
}

func (s *Server) handleCharacters(w http.ResponseWriter, r *http.Request) {
	characters, err := s.processor.QueryCharacters()
	if err != nil {
		s.serveError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, characters)
}

// handleRelationships serves the reverse lookup for one construct, given by
// the required "construct" query parameter.
func (s *Server) handleRelationships(w http.ResponseWriter, r *http.Request) {
	constructID := r.URL.Query().Get("construct")
	if constructID == "" {
		s.writeError(w, http.StatusBadRequest, "construct query parameter is required")
		return
	}
	s.writeJSON(w, http.StatusOK, s.processor.FindRelationships(constructID))
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	graph, err := s.processor.GenerateNetworkGraph()
	if err != nil {
		s.serveError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, graph)
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.clientsMu.Lock()
	clients := len(s.clients)
	s.clientsMu.Unlock()

	s.writeJSON(w, http.StatusOK, statsResponse{
		TripleCount: s.processor.TripleCount(),
		Prefixes:    s.processor.Registry().Prefixes(),
		Clients:     clients,
	})
}

// handleOntologyLoad accepts a Turtle document body, loads it, and pushes
// the regenerated graph to websocket subscribers.
func (s *Server) handleOntologyLoad(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxRequestSize)
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			s.writeError(w, http.StatusRequestEntityTooLarge,
				errors.ErrRequestTooLarge.Error())
			return
		}
		s.writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if len(data) == 0 {
		s.writeError(w, http.StatusBadRequest, errors.ErrEmptyDocument.Error())
		return
	}

	added, err := s.processor.LoadTurtle(data)
	if err != nil {
		s.serveError(w, r, err)
		return
	}

	s.broadcastGraph()
	s.writeJSON(w, http.StatusOK, loadResponse{
		TriplesAdded: added,
		TripleCount:  s.processor.TripleCount(),
	})
}

func (s *Server) handleOntologyClear(w http.ResponseWriter, _ *http.Request) {
	s.processor.Clear()
	s.broadcastGraph()
	s.writeJSON(w, http.StatusOK, loadResponse{TripleCount: 0})
}

// serveError logs the full error and responds with a sanitized message.
func (s *Server) serveError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed",
		"path", r.URL.Path,
		"request_id", w.Header().Get("X-Request-ID"),
		"error", err)

	if s.registry != nil {
		s.registry.CoreMetrics().RecordError("gateway", errors.Classify(err).String())
	}

	s.writeError(w, mapErrorToHTTPStatus(err), sanitizeError(err))
}

// mapErrorToHTTPStatus maps classified errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.IsTransient(err):
		if strings.Contains(err.Error(), "timeout") {
			return http.StatusGatewayTimeout
		}
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// sanitizeError returns a safe message for external clients. Parse errors
// keep their detail; everything else is reduced to a generic message.
func sanitizeError(err error) string {
	switch {
	case err == nil:
		return "internal server error"
	case errors.IsInvalid(err):
		// Syntax positions help API callers and leak nothing internal.
		return err.Error()
	case errors.IsTransient(err):
		return "service temporarily unavailable"
	default:
		return "internal server error"
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("response encoding failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]any{
		"error":  message,
		"status": status,
	})
}
