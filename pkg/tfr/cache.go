// Package tfr implements the temporary-flight-restriction geofence cache:
// a single in-memory snapshot with a freshness window, answering radius
// queries with a circle-overlap test.
package tfr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/paulmach/orb"

	"flightbag/pkg/config"
	"flightbag/pkg/geo"
	"flightbag/pkg/model"
)

// ErrProviderUnavailable marks a refresh failure with no usable snapshot.
var ErrProviderUnavailable = errors.New("tfr provider unavailable")

// Provider returns the complete current TFR set. The cache replaces its
// snapshot wholesale on every refresh; providers never deliver deltas.
type Provider interface {
	Fetch(ctx context.Context) ([]model.TFR, error)
}

// Cache holds one mutable TFR snapshot. All operations serialize on one
// mutex; the snapshot is never shared across cache instances.
type Cache struct {
	mu       sync.Mutex
	provider Provider
	ttl      time.Duration

	snapshot  []model.TFR
	fetchedAt time.Time

	logger *slog.Logger
}

// New creates a TFR cache over the given provider.
func New(p Provider, cfg config.TFRConfig) *Cache {
	ttl := time.Duration(cfg.SnapshotTTL)
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Cache{
		provider: p,
		ttl:      ttl,
		logger:   slog.With("component", "tfr"),
	}
}

// ActiveTFRs returns the restrictions active right now whose circle overlaps
// the query circle. The snapshot is refreshed (replaced, not merged) when
// older than the TTL or empty; on refresh failure the previous snapshot is
// filtered instead, and an error surfaces only when no snapshot exists.
func (c *Cache) ActiveTFRs(ctx context.Context, near orb.Point, radiusNM float64) ([]model.TFR, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if now.Sub(c.fetchedAt) >= c.ttl || len(c.snapshot) == 0 {
		fetched, err := c.provider.Fetch(ctx)
		if err != nil {
			if len(c.snapshot) == 0 {
				return nil, fmt.Errorf("refresh: %w: %w", ErrProviderUnavailable, err)
			}
			c.logger.Warn("TFR refresh failed, filtering previous snapshot", "error", err)
		} else {
			c.snapshot = fetched
			c.fetchedAt = now
			c.logger.Debug("TFR snapshot refreshed", "count", len(fetched))
		}
	}

	return filterActive(c.snapshot, now, near, radiusNM), nil
}

// filterActive keeps restrictions active at now whose center lies within
// the query radius plus the restriction's own radius. Boundary inclusive.
func filterActive(snapshot []model.TFR, now time.Time, near orb.Point, radiusNM float64) []model.TFR {
	var out []model.TFR
	for i := range snapshot {
		t := &snapshot[i]
		if !t.Active(now) {
			continue
		}
		reachNM := radiusNM
		if t.RadiusNM != nil {
			reachNM += *t.RadiusNM
		}
		if geo.DistanceMeters(near, t.Point()) <= reachNM*geo.MetersPerNM {
			out = append(out, *t)
		}
	}
	return out
}
