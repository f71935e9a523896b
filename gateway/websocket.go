package gateway

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeTimeout = 10 * time.Second
	pongTimeout  = 60 * time.Second
	pingInterval = 30 * time.Second
)

// handleWebsocket upgrades the connection and registers the client for graph
// pushes. The current graph is sent immediately on connect.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	s.clientsMu.Lock()
	s.clients[conn] = struct{}{}
	count := len(s.clients)
	s.clientsMu.Unlock()

	s.setClientGauge(count)
	s.logger.Info("websocket client connected", "clients", count)

	if graph, err := s.processor.GenerateNetworkGraph(); err == nil {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(graph); err != nil {
			s.dropClient(conn)
			return
		}
	}

	go s.pingLoop(conn)
	go s.readLoop(conn)
}

// readLoop drains client frames so pongs and close frames are processed.
// Clients never send application data; anything readable is discarded.
func (s *Server) readLoop(conn *websocket.Conn) {
	defer s.dropClient(conn)

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongTimeout))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) pingLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for range ticker.C {
		s.clientsMu.Lock()
		_, alive := s.clients[conn]
		s.clientsMu.Unlock()
		if !alive {
			return
		}

		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			s.dropClient(conn)
			return
		}
	}
}

// broadcastGraph regenerates the network graph and pushes it to every
// connected client. Clients that fail the write are dropped.
func (s *Server) broadcastGraph() {
	s.clientsMu.Lock()
	if len(s.clients) == 0 {
		s.clientsMu.Unlock()
		return
	}
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for conn := range s.clients {
		conns = append(conns, conn)
	}
	s.clientsMu.Unlock()

	graph, err := s.processor.GenerateNetworkGraph()
	if err != nil {
		s.logger.Error("graph broadcast failed", "error", err)
		return
	}

	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(graph); err != nil {
			s.dropClient(conn)
		}
	}
}

func (s *Server) dropClient(conn *websocket.Conn) {
	s.clientsMu.Lock()
	_, present := s.clients[conn]
	delete(s.clients, conn)
	count := len(s.clients)
	s.clientsMu.Unlock()

	conn.Close()
	if present {
		s.setClientGauge(count)
		s.logger.Info("websocket client disconnected", "clients", count)
	}
}

func (s *Server) closeClients() {
	s.clientsMu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for conn := range s.clients {
		conns = append(conns, conn)
	}
	s.clients = make(map[*websocket.Conn]struct{})
	s.clientsMu.Unlock()

	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(time.Second))
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		conn.Close()
	}
	s.setClientGauge(0)
}

func (s *Server) setClientGauge(n int) {
	if s.registry == nil {
		return
	}
	s.registry.CoreMetrics().WebsocketClients.Set(float64(n))
}
