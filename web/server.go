/* server.go
 * Contains NewServer and the ListenAndServe function that serves requests until it is told to shut down
 * Authors: Zachary Bower
 */

package web

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/unrolled/render"
)

const defaultShutdownTimeout = 10 * time.Second

// NewServer creates the HTTP server with every route mounted.
// Preconditions: Receives a Config with the listen address, the API and the logger
// Postconditions: Returns pointer to a Server that is ready to ListenAndServe
func NewServer(cfg Config) *Server {
	s := &Server{
		api:             cfg.API,
		log:             cfg.Logger.With().Str("component", "web").Logger(),
		render:          render.New(render.Options{}),
		shutdownTimeout: cfg.ShutdownTimeout,
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = defaultShutdownTimeout
	}

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.routes(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	return s
}

// Addr returns the address the server listens on
func (s *Server) Addr() string {
	return s.server.Addr
}

// Handler returns the root handler, used by tests to serve requests without binding a port
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// ListenAndServe serves requests until shutdown is signalled, then gracefully drains open connections.
// Preconditions: wg has been incremented for this server, shutdown is closed or sent to when the process exits
// Postconditions: Calls wg.Done once the server has shut down. Returns nil after a clean shutdown or the error
// that stopped the server
func (s *Server) ListenAndServe(shutdown <-chan bool, wg *sync.WaitGroup) error {
	go func() {
		defer wg.Done()

		// Wait for the shutdown signal and safely close the server.
		<-shutdown

		ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			s.log.Error().Err(err).Msg("error shutting down server")
		}
	}()

	s.log.Info().Str("addr", s.server.Addr).Msg("web server is listening")
	err := s.server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
