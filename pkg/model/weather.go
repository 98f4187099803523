package model

import "time"

// FlightCategory is the ceiling/visibility classification of a station report.
type FlightCategory string

// Flight categories, best to worst.
const (
	CategoryVFR  FlightCategory = "VFR"
	CategoryMVFR FlightCategory = "MVFR"
	CategoryIFR  FlightCategory = "IFR"
	CategoryLIFR FlightCategory = "LIFR"
)

// DefaultStaleAfter is how old a weather summary may grow before it is
// considered stale and eligible for purging.
const DefaultStaleAfter = time.Hour

// WeatherSummary is the cached meteorological summary for one station.
// At most one live summary exists per station; a refetch overwrites it.
type WeatherSummary struct {
	StationID string
	RawText   string
	Category  FlightCategory

	TemperatureC *float64
	DewpointC    *float64

	WindDirDeg   *int
	WindVariable bool
	WindSpeedKt  *int
	WindGustKt   *int

	VisibilitySM *float64
	CeilingFt    *int

	// FetchedAt is when this summary was retrieved from the provider;
	// ObservedAt is when the underlying observation was taken.
	FetchedAt  time.Time
	ObservedAt time.Time
}

// Age returns how long ago the summary was fetched.
func (w *WeatherSummary) Age(now time.Time) time.Duration {
	return now.Sub(w.FetchedAt)
}

// IsStale reports whether the summary is older than DefaultStaleAfter.
func (w *WeatherSummary) IsStale(now time.Time) bool {
	return w.Age(now) > DefaultStaleAfter
}
