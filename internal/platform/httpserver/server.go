// Package httpserver runs an http.Handler until its context is cancelled.
package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// ShutdownTimeout bounds how long in-flight requests may take after cancellation.
const ShutdownTimeout = 10 * time.Second

// Serve listens on addr and serves handler until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, logger *slog.Logger, addr string, handler http.Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return ServeListener(ctx, logger, ln, handler)
}

// ServeListener is Serve over an existing listener.
func ServeListener(ctx context.Context, logger *slog.Logger, ln net.Listener, handler http.Handler) error {
	if logger == nil {
		logger = slog.Default()
	}
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		logger.Info("http server shutting down", slog.String("addr", ln.Addr().String()))
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
