package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// shutdownTimeout bounds how long in-flight requests may take to drain.
const shutdownTimeout = 10 * time.Second

// Start runs the HTTP server until ctx is cancelled, then drains in-flight
// requests. A caller disconnect mid-operation never leaves a partial write;
// the transaction wrapping each operation rolls back on its own.
func (app *App) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    app.Cfg.HTTP.Addr,
		Handler: app.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("HTTP server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
