// Package server provides the HTTP server lifecycle for taskdeck.
package server

import (
	"context"
	"database/sql"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/taskdeck/taskdeck/internal/api"
)

// DefaultShutdownTimeout is the default timeout for graceful shutdown.
const DefaultShutdownTimeout = 30 * time.Second

// Server manages the HTTP server lifecycle.
type Server struct {
	httpServer *http.Server
	db         *sql.DB
	log        *logrus.Logger
	listener   net.Listener
	mu         sync.Mutex
	started    bool
}

// New creates a new Server instance serving the API router on addr.
func New(addr string, db *sql.DB, log *logrus.Logger, opts api.RouterOptions) *Server {
	opts.Logger = log
	router := api.NewRouter(db, opts)

	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		db:  db,
		log: log,
	}
}

// Start starts the HTTP server and blocks until it is shut down. It returns
// http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	s.listener = ln
	s.started = true
	s.mu.Unlock()

	s.log.WithField("addr", ln.Addr().String()).Info("server listening")

	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server, waiting for active connections
// to finish or until the context is canceled.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	s.log.Info("shutting down server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	if err := s.db.Close(); err != nil {
		s.log.WithError(err).Warn("error closing database")
	}

	s.log.Info("server stopped")
	return nil
}

// Addr returns the address the server is listening on, or an empty string
// before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}

// Run starts the server and blocks until SIGINT or SIGTERM, then shuts down
// gracefully.
func (s *Server) Run() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		s.log.WithField("signal", sig.String()).Info("received signal")
	}

	ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()

	return s.Shutdown(ctx)
}
