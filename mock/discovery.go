// Package mock provides hand-written mocks for sitemapr domain interfaces.
package mock

import (
	"context"

	"github.com/fwojciec/sitemapr"
)

var _ sitemapr.DiscoveryService = (*DiscoveryService)(nil)

// DiscoveryService is a mock implementation of sitemapr.DiscoveryService.
type DiscoveryService struct {
	DiscoverFn func(ctx context.Context, baseURL string, filter *sitemapr.URLFilter) ([]*sitemapr.Sitemap, error)
}

func (s *DiscoveryService) Discover(ctx context.Context, baseURL string, filter *sitemapr.URLFilter) ([]*sitemapr.Sitemap, error) {
	return s.DiscoverFn(ctx, baseURL, filter)
}
