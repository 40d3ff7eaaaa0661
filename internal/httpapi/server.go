package httpapi

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/workingdad365/gitops-test/internal/config"
)

// Server wraps the demo HTTP server with timeouts and graceful shutdown.
type Server struct {
	server *http.Server
}

// NewServer creates the demo server from the resolved configuration.
func NewServer(cfg config.ServerConfig, handler http.Handler) (*Server, error) {
	if cfg.HTTP.ListenAddr == "" {
		return nil, fmt.Errorf("listen address is required")
	}
	if handler == nil {
		return nil, fmt.Errorf("handler is required")
	}

	return &Server{
		server: &http.Server{
			Addr:              cfg.HTTP.ListenAddr,
			Handler:           handler,
			ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
			ReadTimeout:       cfg.HTTP.ReadTimeout,
			WriteTimeout:      cfg.HTTP.WriteTimeout,
			IdleTimeout:       cfg.HTTP.IdleTimeout,
		},
	}, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start begins serving. It returns once the listener is up, or with the
// startup error if binding fails immediately.
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("httpapi server error: %v", err)
			errChan <- err
		}
	}()

	// Wait briefly to catch immediate startup errors
	select {
	case err := <-errChan:
		return err
	case <-time.After(100 * time.Millisecond):
		log.Printf("httpapi server listening on %s", s.server.Addr)
		return nil
	}
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}
