package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Listener serves the Prometheus exposition endpoint on its own address,
// separate from any application traffic.
type Listener struct {
	server *http.Server
	logger *slog.Logger
}

// NewListener creates a metrics listener that serves the provider's handler
// at /metrics on host:port.
func NewListener(provider *Provider, host string, port int, logger *slog.Logger) *Listener {
	mux := http.NewServeMux()
	mux.Handle("/metrics", provider.Handler())

	return &Listener{
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Start serves the metrics endpoint until Shutdown is called. Blocks; run it
// in its own goroutine.
func (l *Listener) Start() error {
	l.logger.Info("metrics listener started", slog.String("addr", l.server.Addr))

	if err := l.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics listener failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the metrics listener.
func (l *Listener) Shutdown(ctx context.Context) error {
	l.logger.Info("metrics listener shutting down")
	return l.server.Shutdown(ctx)
}
