// Package slog provides logging decorators for spiderkit interfaces.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/spiderkit"
)

// Ensure LoggingDeduplicator implements spiderkit.Deduplicator.
var _ spiderkit.Deduplicator = (*LoggingDeduplicator)(nil)

// LoggingDeduplicator wraps a Deduplicator with debug logging of
// check-and-mark decisions.
type LoggingDeduplicator struct {
	next   spiderkit.Deduplicator
	logger *slog.Logger
}

// NewLoggingDeduplicator creates a new LoggingDeduplicator.
func NewLoggingDeduplicator(next spiderkit.Deduplicator, logger *slog.Logger) *LoggingDeduplicator {
	return &LoggingDeduplicator{next: next, logger: logger}
}

// Insert delegates to the wrapped deduplicator.
func (d *LoggingDeduplicator) Insert(key spiderkit.Fingerprint) {
	d.next.Insert(key)
}

// Contains delegates to the wrapped deduplicator.
func (d *LoggingDeduplicator) Contains(key spiderkit.Fingerprint) bool {
	return d.next.Contains(key)
}

// CheckAndMark delegates to the wrapped deduplicator and logs the
// decision.
func (d *LoggingDeduplicator) CheckAndMark(key spiderkit.Fingerprint) bool {
	begin := time.Now()
	seen := d.next.CheckAndMark(key)
	d.logger.Debug("dedup check",
		"fingerprint", key.String(),
		"seen", seen,
		"duration", time.Since(begin),
	)
	return seen
}
