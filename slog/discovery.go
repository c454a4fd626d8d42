// Package slog provides logging decorators for sitemapr domain interfaces
// using the standard library's log/slog.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitemapr"
)

// Ensure LoggingDiscoveryService implements sitemapr.DiscoveryService.
var _ sitemapr.DiscoveryService = (*LoggingDiscoveryService)(nil)

// LoggingDiscoveryService wraps a DiscoveryService with operation logging.
type LoggingDiscoveryService struct {
	next   sitemapr.DiscoveryService
	logger *slog.Logger
}

// NewLoggingDiscoveryService creates a new LoggingDiscoveryService.
func NewLoggingDiscoveryService(next sitemapr.DiscoveryService, logger *slog.Logger) *LoggingDiscoveryService {
	return &LoggingDiscoveryService{next: next, logger: logger}
}

// Discover delegates to the wrapped service and logs the operation.
func (s *LoggingDiscoveryService) Discover(ctx context.Context, baseURL string, filter *sitemapr.URLFilter) (sitemaps []*sitemapr.Sitemap, err error) {
	defer func(begin time.Time) {
		s.logger.Info("sitemap discovery",
			"url", baseURL,
			"sitemaps", len(sitemaps),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Discover(ctx, baseURL, filter)
}
