package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/obrtools/obrdocs"
)

// Ensure LoggingDiscoverer implements obrdocs.Discoverer.
var _ obrdocs.Discoverer = (*LoggingDiscoverer)(nil)

// LoggingDiscoverer wraps a Discoverer with per-category logging.
type LoggingDiscoverer struct {
	next     obrdocs.Discoverer
	strategy string
	logger   *slog.Logger
}

// NewLoggingDiscoverer creates a new LoggingDiscoverer. The strategy name
// identifies the wrapped implementation in log output.
func NewLoggingDiscoverer(next obrdocs.Discoverer, strategy string, logger *slog.Logger) *LoggingDiscoverer {
	return &LoggingDiscoverer{next: next, strategy: strategy, logger: logger}
}

// Discover delegates to the wrapped discoverer and logs the operation.
func (d *LoggingDiscoverer) Discover(ctx context.Context, category obrdocs.Category) (tasks []obrdocs.PageTask, err error) {
	defer func(begin time.Time) {
		d.logger.Info("discovery",
			"strategy", d.strategy,
			"category", category,
			"count", len(tasks),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Discover(ctx, category)
}
