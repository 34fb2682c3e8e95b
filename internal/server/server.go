package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// Server represents the WebSocket server
type Server struct {
	addr        string
	staticDir   string
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	register    chan *Connection
	unregister  chan *Connection
	logger      *log.Logger
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
	registry    *Registry
	httpServer  *http.Server
}

// NewServer creates a new WebSocket server fronting the room registry.
// staticDir may be empty to disable static file serving.
func NewServer(addr, staticDir string, registry *Registry, logger *log.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		addr:      addr,
		staticDir: staticDir,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// For development, allow all origins
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		logger:      logger.WithPrefix("server"),
		ctx:         ctx,
		cancel:      cancel,
		registry:    registry,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	if staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}
	s.httpServer = &http.Server{Addr: addr, Handler: mux}

	registry.SetUpdateHandler(s.BroadcastSnapshots)
	return s
}

// Start starts the WebSocket server and blocks until Stop shuts the
// listener down.
func (s *Server) Start() error {
	go s.run()

	s.logger.Info("Starting WebSocket server", "addr", s.addr)
	return s.httpServer.ListenAndServe()
}

// Stop closes the HTTP listener, then every live connection. Start
// returns http.ErrServerClosed once the listener is released.
func (s *Server) Stop() error {
	s.cancel()

	err := s.httpServer.Shutdown(context.Background())

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close()
	}
	s.mu.Unlock()

	return err
}

// run handles connection lifecycle
func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Client connected", "player", conn.PlayerID(), "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			_, ok := s.connections[conn]
			if ok {
				delete(s.connections, conn)
			}
			total := len(s.connections)
			s.mu.Unlock()

			if ok {
				// Drop the player from their room; lobby rooms forget
				// them, running games keep the seat.
				if roomID := conn.RoomID(); roomID != "" {
					if snaps := s.registry.Disconnect(roomID, conn.PlayerID()); snaps != nil {
						s.BroadcastSnapshots(roomID, snaps)
					}
				}
				_ = conn.Close()
			}
			s.logger.Info("Client disconnected", "player", conn.PlayerID(), "total", total)

		case <-s.ctx.Done():
			return
		}
	}
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s, s.logger)
	s.register <- client
	client.Start()

	go func() {
		<-client.ctx.Done()
		s.unregister <- client
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK rooms=%d", s.registry.RoomCount())
}

// BroadcastSnapshots delivers a room_state message to every connected
// player with an entry in snaps.
func (s *Server) BroadcastSnapshots(roomID string, snaps Snapshots) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for conn := range s.connections {
		snap, ok := snaps[conn.PlayerID()]
		if !ok {
			continue
		}
		msg, err := NewMessage(MessageTypeRoomState, RoomStateData{State: snap})
		if err != nil {
			s.logger.Error("Failed to encode room state", "error", err)
			continue
		}
		if err := conn.SendMessage(msg); err != nil {
			s.logger.Error("Failed to send room state", "error", err, "player", conn.PlayerID())
		}
	}

	s.logger.Debug("Broadcasted room state", "room", roomID, "recipients", len(snaps))
}
