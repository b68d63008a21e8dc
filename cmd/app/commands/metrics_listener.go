package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mvidal/ordervault/internal/app"
	"github.com/mvidal/ordervault/internal/config"
)

// RunMetricsListener serves the Prometheus metrics endpoint until the process
// receives an interrupt or termination signal.
func RunMetricsListener(ctx context.Context) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	listener, err := container.MetricsListener()
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- listener.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	case sig := <-stop:
		logger.Info("signal received", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return listener.Shutdown(shutdownCtx)
}
