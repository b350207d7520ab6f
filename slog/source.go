package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/obrtools/obrdocs"
)

// Ensure LoggingRawSource implements obrdocs.RawSource.
var _ obrdocs.RawSource = (*LoggingRawSource)(nil)

// LoggingRawSource wraps a RawSource and logs each resolution with its
// provenance, so cache hits and real network fetches are distinguishable in
// the run log.
type LoggingRawSource struct {
	next   obrdocs.RawSource
	logger *slog.Logger
}

// NewLoggingRawSource creates a new LoggingRawSource.
func NewLoggingRawSource(next obrdocs.RawSource, logger *slog.Logger) *LoggingRawSource {
	return &LoggingRawSource{next: next, logger: logger}
}

// Resolve delegates to the wrapped source and logs the operation.
func (s *LoggingRawSource) Resolve(ctx context.Context, task obrdocs.PageTask, force bool) (body []byte, prov obrdocs.Provenance, err error) {
	defer func(begin time.Time) {
		s.logger.Info("resolve",
			"url", task.URL,
			"source", prov,
			"bytes", len(body),
			"force", force,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Resolve(ctx, task, force)
}
