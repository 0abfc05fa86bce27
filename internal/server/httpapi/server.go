package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/smartware/smartware-api/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// Server runs the HTTP endpoint and shuts it down when the context is
// cancelled.
type Server struct {
	addr    string
	handler http.Handler
	logger  logging.Logger
}

func NewServer(addr string, handler http.Handler, logger logging.Logger) *Server {
	return &Server{addr: addr, handler: handler, logger: logger}
}

// Run blocks until the context is cancelled or the listener fails. On
// cancellation, in-flight requests get shutdownTimeout to finish.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.handler,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server listening", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
