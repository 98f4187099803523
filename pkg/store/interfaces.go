package store

import (
	"context"
	"time"

	"github.com/paulmach/orb"

	"flightbag/pkg/model"
)

// Store defines the repository interface.
// It composes all sub-interfaces for full store access.
// Consumers should depend on specific sub-interfaces when possible.
type Store interface {
	AirportStore
	NavaidStore
	WeatherStore
	MetaStore

	// Close closes the store connection.
	Close() error
}

// AirportStore handles airport persistence, spatial queries and search.
type AirportStore interface {
	// UpsertAirport inserts or replaces an airport by ICAO. Replacing an
	// airport atomically replaces its runway and frequency sets and updates
	// the spatial and search indexes.
	UpsertAirport(ctx context.Context, a *model.Airport) error
	UpsertAirports(ctx context.Context, batch []*model.Airport) error

	// GetAirport returns the airport with its full ordered runway and
	// frequency collections, or nil when the ICAO is unknown.
	GetAirport(ctx context.Context, icao string) (*model.Airport, error)

	// AirportsNear returns all airports whose indexed bounding box intersects
	// the degree box derived from center/radius. This is a coarse filter;
	// callers needing exact distance must post-filter.
	AirportsNear(ctx context.Context, center orb.Point, radiusNM float64) ([]*model.Airport, error)

	// NearestAirports returns up to count airports sorted by great-circle
	// distance from the given point. The candidate search is bounded by a
	// configured radius (50nm default) and does not expand for sparse
	// regions.
	NearestAirports(ctx context.Context, to orb.Point, count int) ([]*model.Airport, error)

	// SearchAirports runs a prefix search over ICAO, name and FAA identifier,
	// ranked by search relevance. A query the search engine cannot parse
	// yields an empty result, not an error.
	SearchAirports(ctx context.Context, query string, limit int) ([]*model.Airport, error)
}

// NavaidStore handles navaid persistence and spatial queries.
type NavaidStore interface {
	UpsertNavaid(ctx context.Context, n *model.Navaid) error
	GetNavaid(ctx context.Context, ident string) (*model.Navaid, error)
	NavaidsNear(ctx context.Context, center orb.Point, radiusNM float64) ([]*model.Navaid, error)
}

// WeatherStore is the durable tier the weather cache engine writes through
// to. It is a secondary replica: once an in-memory entry exists the engine
// never reads it back as primary truth.
type WeatherStore interface {
	GetCachedWeather(ctx context.Context, stationID string) (*model.WeatherSummary, error)
	PutWeather(ctx context.Context, w *model.WeatherSummary) error
	StaleStationIDs(ctx context.Context, olderThan time.Duration) ([]string, error)
	ClearWeatherCache(ctx context.Context) error

	// ReplaceWeatherCache truncates the durable tier and rewrites it with
	// the given entries in one transaction.
	ReplaceWeatherCache(ctx context.Context, entries []*model.WeatherSummary) error
}

// MetaStore handles persistent key/value state (seed gating).
type MetaStore interface {
	GetMeta(ctx context.Context, key string) (string, bool)
	SetMeta(ctx context.Context, key, value string) error
}
