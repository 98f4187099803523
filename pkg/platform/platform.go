// Package platform wires the reference store, weather engine and TFR cache
// into one data-access facade. Consumers hold a Platform and never touch the
// underlying tiers directly.
package platform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/paulmach/orb"
	"golang.org/x/sync/errgroup"

	"flightbag/pkg/config"
	"flightbag/pkg/db"
	"flightbag/pkg/model"
	"flightbag/pkg/request"
	"flightbag/pkg/seed"
	"flightbag/pkg/store"
	"flightbag/pkg/tfr"
	"flightbag/pkg/wx"
)

// Platform is the data-access facade over the reference store, the weather
// cache engine and the TFR geofence cache.
type Platform struct {
	cfg    *config.Config
	store  store.Store
	wx     *wx.Engine
	tfr    *tfr.Cache
	logger *slog.Logger
}

// Open builds a platform from configuration: it opens the store, seeds it on
// first run, and wires the weather and TFR tiers over a shared HTTP client.
func Open(ctx context.Context, cfg *config.Config) (*Platform, error) {
	database, err := db.Init(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	st := store.NewSQLiteStore(database)
	st.SetNearestRadius(cfg.Query.NearestRadius.NauticalMiles())

	if err := seed.EnsureSeeded(ctx, st); err != nil {
		st.Close()
		return nil, fmt.Errorf("seed store: %w", err)
	}

	client := request.New(cfg.Request)

	var tfrProvider tfr.Provider
	if cfg.TFR.URL != "" {
		tfrProvider = tfr.NewHTTPProvider(client, cfg.TFR.URL)
	} else {
		tfrProvider = &tfr.StaticProvider{TFRs: tfr.Bootstrap()}
	}

	return &Platform{
		cfg:    cfg,
		store:  st,
		wx:     wx.NewEngine(st, wx.NewMETARClient(client, cfg.Weather.URL), cfg.Weather),
		tfr:    tfr.New(tfrProvider, cfg.TFR),
		logger: slog.With("component", "platform"),
	}, nil
}

// NewWithDeps assembles a platform from pre-built tiers. Used by tests and by
// callers that need a non-default provider wiring.
func NewWithDeps(cfg *config.Config, st store.Store, weather *wx.Engine, restrictions *tfr.Cache) *Platform {
	return &Platform{
		cfg:    cfg,
		store:  st,
		wx:     weather,
		tfr:    restrictions,
		logger: slog.With("component", "platform"),
	}
}

// Close releases the underlying store.
func (p *Platform) Close() error {
	return p.store.Close()
}

// Store exposes the reference store for callers that need direct repository
// access (data import tooling).
func (p *Platform) Store() store.Store {
	return p.store
}

// degradeRead downgrades a store outage on a read path to an empty result
// with a warning. A pilot-facing lookup must not crash on a broken database
// file; anything other than ErrUnavailable passes through.
func degradeRead[T any](p *Platform, op string, err error) (T, error) {
	var zero T
	if errors.Is(err, store.ErrUnavailable) {
		p.logger.Warn("Store unavailable, serving empty result", "op", op, "error", err)
		return zero, nil
	}
	return zero, err
}

// Airport returns the airport with its runways and frequencies, or nil when
// the ICAO is unknown.
func (p *Platform) Airport(ctx context.Context, icao string) (*model.Airport, error) {
	a, err := p.store.GetAirport(ctx, icao)
	if err != nil {
		return degradeRead[*model.Airport](p, "airport", err)
	}
	return a, nil
}

// AirportsNear returns airports whose indexed box intersects the query box.
func (p *Platform) AirportsNear(ctx context.Context, center orb.Point, radiusNM float64) ([]*model.Airport, error) {
	res, err := p.store.AirportsNear(ctx, center, radiusNM)
	if err != nil {
		return degradeRead[[]*model.Airport](p, "airports near", err)
	}
	return res, nil
}

// NearestAirports returns up to count airports by great-circle distance.
func (p *Platform) NearestAirports(ctx context.Context, to orb.Point, count int) ([]*model.Airport, error) {
	res, err := p.store.NearestAirports(ctx, to, count)
	if err != nil {
		return degradeRead[[]*model.Airport](p, "nearest airports", err)
	}
	return res, nil
}

// SearchAirports runs a ranked prefix search over identifiers and names.
// A zero limit falls back to the configured default.
func (p *Platform) SearchAirports(ctx context.Context, query string, limit int) ([]*model.Airport, error) {
	if limit <= 0 {
		limit = p.cfg.Query.SearchLimit
	}
	res, err := p.store.SearchAirports(ctx, query, limit)
	if err != nil {
		return degradeRead[[]*model.Airport](p, "search airports", err)
	}
	return res, nil
}

// Navaid returns the navaid by identifier, or nil when unknown.
func (p *Platform) Navaid(ctx context.Context, ident string) (*model.Navaid, error) {
	n, err := p.store.GetNavaid(ctx, ident)
	if err != nil {
		return degradeRead[*model.Navaid](p, "navaid", err)
	}
	return n, nil
}

// NavaidsNear returns navaids whose indexed box intersects the query box.
func (p *Platform) NavaidsNear(ctx context.Context, center orb.Point, radiusNM float64) ([]*model.Navaid, error) {
	res, err := p.store.NavaidsNear(ctx, center, radiusNM)
	if err != nil {
		return degradeRead[[]*model.Navaid](p, "navaids near", err)
	}
	return res, nil
}

// Weather returns the current summary for one station.
func (p *Platform) Weather(ctx context.Context, stationID string) (*model.WeatherSummary, error) {
	return p.wx.FetchCurrent(ctx, stationID)
}

// WeatherBatch fetches all stations in one provider call.
func (p *Platform) WeatherBatch(ctx context.Context, stationIDs []string) ([]*model.WeatherSummary, error) {
	return p.wx.FetchBatch(ctx, stationIDs)
}

// PurgeStaleWeather evicts weather entries past the staleness threshold from
// both cache tiers.
func (p *Platform) PurgeStaleWeather(ctx context.Context) error {
	return p.wx.PurgeStale(ctx)
}

// ActiveTFRs returns the restrictions currently active near a point.
func (p *Platform) ActiveTFRs(ctx context.Context, near orb.Point, radiusNM float64) ([]model.TFR, error) {
	return p.tfr.ActiveTFRs(ctx, near, radiusNM)
}

// Briefing is the combined picture around a position: the nearby airports,
// the weather at the nearest reporting one, and the active restrictions.
type Briefing struct {
	Position    orb.Point
	RadiusNM    float64
	GeneratedAt time.Time

	Airports []*model.Airport
	Weather  *model.WeatherSummary
	TFRs     []model.TFR
}

// Brief assembles a briefing for the given position. The airport lookup runs
// first; weather and TFR queries then run concurrently. Weather is best
// effort: a provider outage leaves Briefing.Weather nil rather than failing
// the briefing, since the restrictions still matter on their own.
func (p *Platform) Brief(ctx context.Context, position orb.Point, radiusNM float64) (*Briefing, error) {
	const maxAirports = 10

	airports, err := p.NearestAirports(ctx, position, maxAirports)
	if err != nil {
		return nil, fmt.Errorf("briefing airports: %w", err)
	}

	b := &Briefing{
		Position:    position,
		RadiusNM:    radiusNM,
		GeneratedAt: time.Now(),
		Airports:    airports,
	}

	g, gctx := errgroup.WithContext(ctx)

	if len(airports) > 0 {
		station := airports[0].ICAO
		g.Go(func() error {
			w, err := p.wx.FetchCurrent(gctx, station)
			if err != nil {
				p.logger.Warn("Briefing weather unavailable", "station", station, "error", err)
				return nil
			}
			b.Weather = w
			return nil
		})
	}

	g.Go(func() error {
		tfrs, err := p.tfr.ActiveTFRs(gctx, position, radiusNM)
		if err != nil {
			return fmt.Errorf("briefing tfrs: %w", err)
		}
		b.TFRs = tfrs
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return b, nil
}
