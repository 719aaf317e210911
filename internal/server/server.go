package server

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/wot-discovery/internal/logging"
)

// Config holds the server configuration
type Config struct {
	Host     string
	Port     int
	CertPath string // Serve https when both CertPath and KeyPath are set
	KeyPath  string
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, fmt.Sprint(c.Port))
}

// Update is one message pushed to feed clients
type Update struct {
	Type  string          `json:"type"`
	Thing json.RawMessage `json:"thing,omitempty"`
	Error string          `json:"error,omitempty"`
}

// Update types
const (
	UpdateThing = "thing"
	UpdateError = "error"
	UpdateDone  = "done"
)

// Server publishes the results of one discovery session over HTTP and
// a WebSocket feed
type Server struct {
	config    *Config
	tlsConfig *tls.Config
	logger    *zap.Logger

	wg       sync.WaitGroup
	mu       sync.Mutex
	things   []json.RawMessage
	errCount int
	done     bool
	closed   bool
	clients  map[*client]struct{}
	httpSrv  *http.Server
	listener net.Listener
}

// New creates a new Server instance
func New(config *Config, logger *zap.Logger) (*Server, error) {
	if config == nil {
		config = &Config{}
	}
	if logger == nil {
		logger = logging.GetLogger()
	}

	var tlsConfig *tls.Config
	if config.CertPath != "" || config.KeyPath != "" {
		var err error
		tlsConfig, err = NewTLSConfig(config.CertPath, config.KeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %w", err)
		}
	}

	return &Server{
		config:    config,
		tlsConfig: tlsConfig,
		logger:    logger,
		clients:   make(map[*client]struct{}),
	}, nil
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /things", s.handleThings)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("GET /events", s.handleEvents)
	return mux
}

// Publish records an update and pushes it to every connected client.
// Thing updates are kept and replayed to clients that connect later.
func (s *Server) Publish(u Update) {
	data, err := json.Marshal(u)
	if err != nil {
		s.logger.Error("Failed to encode update", zap.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch u.Type {
	case UpdateThing:
		s.things = append(s.things, u.Thing)
	case UpdateError:
		s.errCount++
	case UpdateDone:
		s.done = true
	}

	for c := range s.clients {
		if !c.enqueue(data) {
			s.logger.Warn("Dropping slow feed client", zap.String("remote_addr", c.remoteAddr))
			s.removeLocked(c)
		}
	}
}

// Start listens on the configured address and serves until ctx is done
func (s *Server) Start(ctx context.Context) error {
	addr := s.config.Addr()

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	if s.tlsConfig != nil {
		listener = tls.NewListener(listener, s.tlsConfig)
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx is done
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	s.mu.Lock()
	s.listener = listener
	s.httpSrv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	httpSrv := s.httpSrv
	s.mu.Unlock()

	s.logger.Info("Server listening for connections",
		zap.String("addr", listener.Addr().String()),
		zap.Bool("tls", s.tlsConfig != nil),
	)

	errChan := make(chan error, 1)
	go func() {
		errChan <- httpSrv.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Stopping server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Shutdown stops accepting connections, closes every feed client and
// waits for their goroutines
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	httpSrv := s.httpSrv
	for c := range s.clients {
		s.removeLocked(c)
	}
	s.mu.Unlock()

	var err error
	if httpSrv != nil {
		err = httpSrv.Shutdown(ctx)
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("All feed clients closed")
	case <-ctx.Done():
		s.logger.Warn("Shutdown timeout, forcing close")
		return ctx.Err()
	}
	return err
}

// ActiveClients returns the number of connected feed clients
func (s *Server) ActiveClients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Addr returns the address the server listens on, or nil before Serve
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// removeLocked detaches c; the caller holds s.mu
func (s *Server) removeLocked(c *client) {
	if _, ok := s.clients[c]; !ok {
		return
	}
	delete(s.clients, c)
	close(c.send)
}
