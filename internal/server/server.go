package server

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// Server represents the HTTP server
type Server struct {
	http *http.Server
}

// New creates a new server instance serving handler on the given port.
func New(port string, handler http.Handler) *Server {
	return &Server{
		http: &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start starts the server and blocks until it stops.
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
