// Package server exposes the classifier and equity simulator over a websocket.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/pokerequity/equity"
	"github.com/lox/pokerequity/poker"
)

// DefaultMaxTrials is the per-request trial cap unless WithMaxTrials says otherwise.
const DefaultMaxTrials = 10_000_000

// Server represents the WebSocket server
type Server struct {
	addr          string
	upgrader      websocket.Upgrader
	classifier    *poker.Classifier
	sim           *equity.Simulator
	defaultTrials int
	maxTrials     int
	clock         quartz.Clock
	logger        *log.Logger

	mu          sync.RWMutex
	connections map[*Connection]bool
}

// Option configures a Server.
type Option func(*Server)

// WithClock sets the clock used for timestamps, latency and pings.
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) {
		s.clock = clock
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithSimulator sets the shared simulator used for unseeded requests.
func WithSimulator(sim *equity.Simulator) Option {
	return func(s *Server) {
		s.sim = sim
	}
}

// WithClassifier sets the classifier for classify and best requests.
func WithClassifier(c *poker.Classifier) Option {
	return func(s *Server) {
		s.classifier = c
	}
}

// WithDefaultTrials sets the trial count for requests that leave it unset.
func WithDefaultTrials(n int) Option {
	return func(s *Server) {
		s.defaultTrials = n
	}
}

// WithMaxTrials caps the trial count a single request may ask for. Zero
// removes the cap.
func WithMaxTrials(n int) Option {
	return func(s *Server) {
		s.maxTrials = n
	}
}

// NewServer creates a new WebSocket server
func NewServer(addr string, opts ...Option) *Server {
	s := &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			// The server answers computation requests only, so any origin may connect
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		classifier:    poker.DefaultClassifier(),
		defaultTrials: 10000,
		maxTrials:     DefaultMaxTrials,
		clock:         quartz.NewReal(),
		logger:        log.New(io.Discard),
		connections:   make(map[*Connection]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithPrefix("server")
	if s.sim == nil {
		s.sim = equity.NewSimulator(equity.WithClassifier(s.classifier), equity.WithLogger(s.logger))
	}
	return s
}

// Handler returns the HTTP routes: /ws for the websocket and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// Start serves until ctx is cancelled, then closes every connection.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting WebSocket server", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down")
	s.closeAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ConnectionCount returns the number of open websocket connections.
func (s *Server) ConnectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}

func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.connections {
		_ = conn.Close() // Ignore close errors during shutdown
	}
}

func (s *Server) register(conn *Connection) {
	s.mu.Lock()
	s.connections[conn] = true
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Client connected", "total", total)
}

func (s *Server) unregister(conn *Connection) {
	s.mu.Lock()
	delete(s.connections, conn)
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Client disconnected", "total", total)
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s)
	s.register(client)
	client.Start()

	go func() {
		<-client.ctx.Done()
		s.unregister(client)
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK") // Ignore write errors for health check
}
