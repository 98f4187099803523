// Package wx implements the weather cache engine: a per-station cached
// meteorological summary with a freshness window, backed by an in-memory
// tier and a write-through durable tier in the reference store.
package wx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"flightbag/pkg/config"
	"flightbag/pkg/model"
	"flightbag/pkg/store"
)

// ErrProviderUnavailable marks a provider failure with no cached value to
// fall back on. Any cached value, fresh or not, is preferred over this error.
var ErrProviderUnavailable = errors.New("weather provider unavailable")

// Engine caches per-station weather summaries. All operations serialize on
// one mutex: the engine is an exclusive-access unit and its in-memory tier
// must not be shared across engine instances. Concurrent fetches for the
// same station are not deduplicated; the duplicate provider call is
// accepted as harmless.
type Engine struct {
	mu       sync.Mutex
	mem      *gocache.Cache
	store    store.WeatherStore
	provider Provider

	freshFor   time.Duration
	staleAfter time.Duration
	logger     *slog.Logger
}

// NewEngine creates a weather cache engine on top of the given durable tier
// and provider.
func NewEngine(st store.WeatherStore, p Provider, cfg config.WeatherConfig) *Engine {
	freshFor := time.Duration(cfg.FreshFor)
	if freshFor <= 0 {
		freshFor = 15 * time.Minute
	}
	staleAfter := time.Duration(cfg.StaleAfter)
	if staleAfter <= 0 {
		staleAfter = model.DefaultStaleAfter
	}

	return &Engine{
		mem:        gocache.New(gocache.NoExpiration, 0),
		store:      st,
		provider:   p,
		freshFor:   freshFor,
		staleAfter: staleAfter,
		logger:     slog.With("component", "wx"),
	}
}

// FetchCurrent returns the current summary for a station: the in-memory
// entry when fresh, else the durable entry when fresh (promoting it), else
// a provider fetch with write-through. On provider failure the best cached
// value is returned regardless of age; an error surfaces only when no
// cached value exists at all.
func (e *Engine) FetchCurrent(ctx context.Context, stationID string) (*model.WeatherSummary, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now()

	if cached := e.memGet(stationID); cached != nil && cached.Age(now) < e.freshFor {
		return cached, nil
	}

	durable, err := e.store.GetCachedWeather(ctx, stationID)
	if err != nil {
		// Store trouble is not a reason to fail a weather lookup.
		e.logger.Warn("Durable weather read failed", "station", stationID, "error", err)
		durable = nil
	}
	if durable != nil && durable.Age(now) < e.freshFor {
		e.mem.Set(stationID, durable, gocache.NoExpiration)
		return durable, nil
	}

	fetched, err := e.fetchAndStore(ctx, []string{stationID})
	if err != nil {
		if cached := e.memGet(stationID); cached != nil {
			e.logger.Warn("Provider failed, serving cached weather", "station", stationID, "error", err)
			return cached, nil
		}
		if durable != nil {
			e.logger.Warn("Provider failed, serving durable weather", "station", stationID, "error", err)
			return durable, nil
		}
		return nil, fmt.Errorf("fetch %s: %w: %w", stationID, ErrProviderUnavailable, err)
	}

	for _, w := range fetched {
		if w.StationID == stationID {
			return w, nil
		}
	}
	// Provider answered but without this station.
	if durable != nil {
		return durable, nil
	}
	return nil, fmt.Errorf("fetch %s: %w: no report for station", stationID, ErrProviderUnavailable)
}

// FetchBatch fetches all stations in a single provider call. The call is
// all-or-nothing: on provider failure, cached values are returned only when
// every requested station has one; otherwise the whole batch errors.
func (e *Engine) FetchBatch(ctx context.Context, stationIDs []string) ([]*model.WeatherSummary, error) {
	if len(stationIDs) == 0 {
		return nil, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	fetched, err := e.fetchAndStore(ctx, stationIDs)
	if err != nil {
		cached := make([]*model.WeatherSummary, 0, len(stationIDs))
		for _, id := range stationIDs {
			w := e.memGet(id)
			if w == nil {
				w, _ = e.store.GetCachedWeather(ctx, id)
			}
			if w == nil {
				return nil, fmt.Errorf("fetch batch: %w: %w", ErrProviderUnavailable, err)
			}
			cached = append(cached, w)
		}
		e.logger.Warn("Provider failed, serving cached batch", "stations", len(cached), "error", err)
		return cached, nil
	}
	return fetched, nil
}

// fetchAndStore calls the provider, merges retained fields from any prior
// cached entry, and writes each summary through to memory and the durable
// tier. Caller holds the lock.
func (e *Engine) fetchAndStore(ctx context.Context, stationIDs []string) ([]*model.WeatherSummary, error) {
	summaries, err := e.provider.Fetch(ctx, stationIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for _, w := range summaries {
		w.FetchedAt = now

		// A short-form refresh can omit the long-form report text; keep the
		// last known one rather than dropping it.
		if w.RawText == "" {
			if prev := e.memGet(w.StationID); prev != nil && prev.RawText != "" {
				w.RawText = prev.RawText
			} else if prev, _ := e.store.GetCachedWeather(ctx, w.StationID); prev != nil {
				w.RawText = prev.RawText
			}
		}

		e.mem.Set(w.StationID, w, gocache.NoExpiration)
		if err := e.store.PutWeather(ctx, w); err != nil {
			e.logger.Warn("Weather write-through failed", "station", w.StationID, "error", err)
		}
	}
	return summaries, nil
}

// PurgeStale removes in-memory entries older than the configured staleness
// threshold and rewrites the durable tier to contain exactly the remaining
// fresh entries. The in-memory snapshot stays stable for the duration: the
// engine lock is held across the whole replace.
func (e *Engine) PurgeStale(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now()
	var fresh []*model.WeatherSummary
	for id, item := range e.mem.Items() {
		w, ok := item.Object.(*model.WeatherSummary)
		if !ok {
			e.mem.Delete(id)
			continue
		}
		if w.Age(now) > e.staleAfter {
			e.mem.Delete(id)
			continue
		}
		fresh = append(fresh, w)
	}

	if err := e.store.ReplaceWeatherCache(ctx, fresh); err != nil {
		return fmt.Errorf("purge stale: %w", err)
	}
	e.logger.Debug("Purged stale weather", "remaining", len(fresh))
	return nil
}

func (e *Engine) memGet(stationID string) *model.WeatherSummary {
	v, ok := e.mem.Get(stationID)
	if !ok {
		return nil
	}
	w, ok := v.(*model.WeatherSummary)
	if !ok {
		return nil
	}
	return w
}
