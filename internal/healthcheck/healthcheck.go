package healthcheck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/angeloszaimis/static-server/internal/metrics"
)

const DefaultInterval = 10 * time.Second

var ErrNotDirectory = errors.New("not a directory")

// Root tracks whether the served directory is currently usable.
type Root struct {
	path    string
	healthy atomic.Bool
}

// NewRoot probes path once and records the result.
func NewRoot(path string) *Root {
	root := &Root{path: path}
	root.healthy.Store(Check(path) == nil)
	return root
}

func (r *Root) Path() string {
	return r.path
}

func (r *Root) IsHealthy() bool {
	return r.healthy.Load()
}

// SetHealthy updates the status and reports whether it changed.
func (r *Root) SetHealthy(healthy bool) bool {
	return r.healthy.Swap(healthy) != healthy
}

// Check returns nil when path is a directory that can be opened for reading.
func Check(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		return fmt.Errorf("%s: %w", path, ErrNotDirectory)
	}

	dir, err := os.Open(path)
	if err != nil {
		return err
	}

	return dir.Close()
}

// HealthCheck periodically checks the root directory until ctx is done.
// A non-positive interval falls back to DefaultInterval. collector may be nil.
func HealthCheck(
	ctx context.Context,
	root *Root,
	interval time.Duration,
	logger *slog.Logger,
	collector *metrics.Collector,
) {
	if interval <= 0 {
		logger.Warn("Invalid health check interval, using default",
			slog.Duration("requested", interval),
			slog.Duration("interval", DefaultInterval))
		interval = DefaultInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	report(collector, root.IsHealthy())

	for {
		select {
		case <-ctx.Done():
			logger.Info("Health check stopped",
				slog.String("root", root.Path()))
			return

		case <-ticker.C:
			err := Check(root.Path())
			healthy := err == nil

			if !root.SetHealthy(healthy) {
				continue
			}

			report(collector, healthy)

			if healthy {
				logger.Info("Root directory is available again",
					slog.String("root", root.Path()))
			} else {
				logger.Warn("Root directory is unavailable",
					slog.String("root", root.Path()),
					slog.Any("err", err))
			}
		}
	}
}

func report(collector *metrics.Collector, healthy bool) {
	if collector == nil {
		return
	}

	collector.Emit(metrics.MetricEvent{
		Type:      metrics.EventRootHealthChanged,
		Timestamp: time.Now(),
		Healthy:   healthy,
	})
}
