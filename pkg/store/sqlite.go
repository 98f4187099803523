package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"flightbag/pkg/db"
	"flightbag/pkg/geo"
	"flightbag/pkg/model"
)

// defaultNearestRadiusNM bounds the candidate box for NearestAirports.
// Deliberately not expanded when fewer than the requested count exist
// inside it; sparse regions return short results.
const defaultNearestRadiusNM = 50.0

// SQLiteStore implements Store.
type SQLiteStore struct {
	db *db.DB

	nearestRadiusNM float64
}

// NewSQLiteStore creates a new store.
func NewSQLiteStore(db *db.DB) *SQLiteStore {
	return &SQLiteStore{db: db, nearestRadiusNM: defaultNearestRadiusNM}
}

// SetNearestRadius overrides the candidate radius for NearestAirports.
// Non-positive values keep the default.
func (s *SQLiteStore) SetNearestRadius(nm float64) {
	if nm > 0 {
		s.nearestRadiusNM = nm
	}
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// --- Airports ---

const airportColumns = `icao, faa_ident, name, lat, lon, elevation_ft, facility, ownership,
	ctaf_mhz, unicom_mhz, artcc_ident, artcc_name, mag_var, pattern_alt_ft, fuel_types, has_beacon`

func (s *SQLiteStore) UpsertAirport(ctx context.Context, a *model.Airport) error {
	return s.UpsertAirports(ctx, []*model.Airport{a})
}

func (s *SQLiteStore) UpsertAirports(ctx context.Context, batch []*model.Airport) error {
	if len(batch) == 0 {
		return nil
	}
	for _, a := range batch {
		if a.ICAO == "" {
			return fmt.Errorf("airport icao must not be empty")
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("upsert airports", err)
	}
	defer tx.Rollback()

	for _, a := range batch {
		if err := upsertAirportTx(ctx, tx, a); err != nil {
			return unavailable("upsert airports", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return unavailable("upsert airports", err)
	}
	return nil
}

// upsertAirportTx replaces the airport row, its children and its index
// entries in one transaction.
func upsertAirportTx(ctx context.Context, tx *sql.Tx, a *model.Airport) error {
	var oldID int64
	err := tx.QueryRowContext(ctx, "SELECT id FROM airports WHERE icao = ?", a.ICAO).Scan(&oldID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// first insert
	case err != nil:
		return err
	default:
		if _, err := tx.ExecContext(ctx, "DELETE FROM airports_rtree WHERE id = ?", oldID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM airports_fts WHERE rowid = ?", oldID); err != nil {
			return err
		}
		// Cascade removes the old runway and frequency sets.
		if _, err := tx.ExecContext(ctx, "DELETE FROM airports WHERE id = ?", oldID); err != nil {
			return err
		}
	}

	res, err := tx.ExecContext(ctx, `INSERT INTO airports (`+airportColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ICAO, a.FAAIdent, a.Name, a.Lat, a.Lon, a.ElevationFt, string(a.Facility), string(a.Ownership),
		nullF64(a.CTAFMHz), nullF64(a.UnicomMHz), a.ARTCCIdent, a.ARTCCName,
		nullF64(a.MagneticVariation), nullF64(a.PatternAltitudeFt), a.FuelTypes, a.HasBeacon,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO airports_rtree (id, min_lat, max_lat, min_lon, max_lon) VALUES (?, ?, ?, ?, ?)",
		id, a.Lat, a.Lat, a.Lon, a.Lon); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO airports_fts (rowid, icao, name, faa_ident) VALUES (?, ?, ?, ?)",
		id, a.ICAO, a.Name, a.FAAIdent); err != nil {
		return err
	}

	for i, r := range a.Runways {
		if _, err := tx.ExecContext(ctx, `INSERT INTO runways (
			airport_icao, seq, designator, length_ft, width_ft, surface, lighting,
			base_ident, base_lat, base_lon, base_elev_ft,
			recip_ident, recip_lat, recip_lon, recip_elev_ft
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ICAO, i, r.Designator, r.LengthFt, r.WidthFt, r.Surface, r.Lighting,
			r.BaseEnd.Ident, r.BaseEnd.Lat, r.BaseEnd.Lon, nullF64(r.BaseEnd.ThresholdElevFt),
			r.RecipEnd.Ident, r.RecipEnd.Lat, r.RecipEnd.Lon, nullF64(r.RecipEnd.ThresholdElevFt),
		); err != nil {
			return err
		}
	}

	for i := range a.Frequencies {
		f := &a.Frequencies[i]
		if f.ID == "" {
			f.ID = uuid.NewString()
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO frequencies (
			id, airport_icao, seq, type, mhz, name
		) VALUES (?, ?, ?, ?, ?, ?)`,
			f.ID, a.ICAO, i, string(f.Type), f.MHz, f.Name,
		); err != nil {
			return err
		}
	}

	return nil
}

func (s *SQLiteStore) GetAirport(ctx context.Context, icao string) (*model.Airport, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+airportColumns+" FROM airports WHERE icao = ?", icao)

	a, err := scanAirport(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, unavailable("get airport", err)
	}

	if err := s.loadChildren(ctx, a); err != nil {
		return nil, unavailable("get airport", err)
	}
	return a, nil
}

func (s *SQLiteStore) AirportsNear(ctx context.Context, center orb.Point, radiusNM float64) ([]*model.Airport, error) {
	bound := geo.DegreeBound(center, radiusNM)

	rows, err := s.db.QueryContext(ctx, `SELECT `+airportColumns+` FROM airports a
		JOIN airports_rtree r ON a.id = r.id
		WHERE r.max_lat >= ? AND r.min_lat <= ? AND r.max_lon >= ? AND r.min_lon <= ?
		ORDER BY a.id`,
		bound.Min.Lat(), bound.Max.Lat(), bound.Min.Lon(), bound.Max.Lon())
	if err != nil {
		return nil, unavailable("airports near", err)
	}
	defer rows.Close()

	var results []*model.Airport
	for rows.Next() {
		a, err := scanAirport(rows)
		if err != nil {
			return nil, unavailable("airports near", err)
		}
		results = append(results, a)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("airports near", err)
	}

	for _, a := range results {
		if err := s.loadChildren(ctx, a); err != nil {
			return nil, unavailable("airports near", err)
		}
	}
	return results, nil
}

func (s *SQLiteStore) NearestAirports(ctx context.Context, to orb.Point, count int) ([]*model.Airport, error) {
	if count <= 0 {
		return nil, nil
	}

	candidates, err := s.AirportsNear(ctx, to, s.nearestRadiusNM)
	if err != nil {
		return nil, err
	}

	// Stable sort keeps input order for (astronomically unlikely) exact ties.
	sort.SliceStable(candidates, func(i, j int) bool {
		return geo.DistanceMeters(to, candidates[i].Point()) < geo.DistanceMeters(to, candidates[j].Point())
	})

	if len(candidates) > count {
		candidates = candidates[:count]
	}
	return candidates, nil
}

func (s *SQLiteStore) SearchAirports(ctx context.Context, query string, limit int) ([]*model.Airport, error) {
	match := ftsPrefixQuery(query)
	if match == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 25
	}

	rows, err := s.db.QueryContext(ctx, `SELECT a.icao, a.faa_ident, a.name, a.lat, a.lon, a.elevation_ft, a.facility, a.ownership,
		a.ctaf_mhz, a.unicom_mhz, a.artcc_ident, a.artcc_name, a.mag_var, a.pattern_alt_ft, a.fuel_types, a.has_beacon
		FROM airports a
		JOIN airports_fts ON a.id = airports_fts.rowid
		WHERE airports_fts MATCH ?
		ORDER BY airports_fts.rank
		LIMIT ?`, match, limit)
	if err != nil {
		// A query FTS5 refuses to parse is not a store failure.
		if strings.Contains(err.Error(), "syntax error") || strings.Contains(err.Error(), "fts5") {
			return nil, nil
		}
		return nil, unavailable("search airports", err)
	}
	defer rows.Close()

	var results []*model.Airport
	for rows.Next() {
		a, err := scanAirport(rows)
		if err != nil {
			return nil, unavailable("search airports", err)
		}
		results = append(results, a)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("search airports", err)
	}

	for _, a := range results {
		if err := s.loadChildren(ctx, a); err != nil {
			return nil, unavailable("search airports", err)
		}
	}
	return results, nil
}

// ftsPrefixQuery escapes the user's query against quote injection and wraps
// it as a phrase prefix match ("palo alto"*).
func ftsPrefixQuery(query string) string {
	q := strings.TrimSpace(query)
	if q == "" {
		return ""
	}
	q = strings.ReplaceAll(q, `"`, `""`)
	return `"` + q + `"*`
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAirport(row rowScanner) (*model.Airport, error) {
	var a model.Airport
	var facility, ownership string
	var faaIdent, name, artccIdent, artccName, fuelTypes sql.NullString
	var ctaf, unicom, magVar, patternAlt, elevation sql.NullFloat64

	err := row.Scan(
		&a.ICAO, &faaIdent, &name, &a.Lat, &a.Lon, &elevation, &facility, &ownership,
		&ctaf, &unicom, &artccIdent, &artccName, &magVar, &patternAlt, &fuelTypes, &a.HasBeacon,
	)
	if err != nil {
		return nil, err
	}

	a.FAAIdent = faaIdent.String
	a.Name = name.String
	a.ElevationFt = elevation.Float64
	a.Facility = model.FacilityType(facility)
	a.Ownership = model.Ownership(ownership)
	a.CTAFMHz = f64Ptr(ctaf)
	a.UnicomMHz = f64Ptr(unicom)
	a.ARTCCIdent = artccIdent.String
	a.ARTCCName = artccName.String
	a.MagneticVariation = f64Ptr(magVar)
	a.PatternAltitudeFt = f64Ptr(patternAlt)
	a.FuelTypes = fuelTypes.String
	return &a, nil
}

func (s *SQLiteStore) loadChildren(ctx context.Context, a *model.Airport) error {
	rows, err := s.db.QueryContext(ctx, `SELECT designator, length_ft, width_ft, surface, lighting,
		base_ident, base_lat, base_lon, base_elev_ft,
		recip_ident, recip_lat, recip_lon, recip_elev_ft
		FROM runways WHERE airport_icao = ? ORDER BY seq`, a.ICAO)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var r model.Runway
		var baseElev, recipElev sql.NullFloat64
		if err := rows.Scan(&r.Designator, &r.LengthFt, &r.WidthFt, &r.Surface, &r.Lighting,
			&r.BaseEnd.Ident, &r.BaseEnd.Lat, &r.BaseEnd.Lon, &baseElev,
			&r.RecipEnd.Ident, &r.RecipEnd.Lat, &r.RecipEnd.Lon, &recipElev); err != nil {
			return err
		}
		r.BaseEnd.ThresholdElevFt = f64Ptr(baseElev)
		r.RecipEnd.ThresholdElevFt = f64Ptr(recipElev)
		a.Runways = append(a.Runways, r)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	frows, err := s.db.QueryContext(ctx,
		"SELECT id, type, mhz, name FROM frequencies WHERE airport_icao = ? ORDER BY seq", a.ICAO)
	if err != nil {
		return err
	}
	defer frows.Close()

	for frows.Next() {
		var f model.Frequency
		var ftype string
		var name sql.NullString
		if err := frows.Scan(&f.ID, &ftype, &f.MHz, &name); err != nil {
			return err
		}
		f.Type = model.FrequencyType(ftype)
		f.Name = name.String
		a.Frequencies = append(a.Frequencies, f)
	}
	return frows.Err()
}

// --- Navaids ---

func (s *SQLiteStore) UpsertNavaid(ctx context.Context, n *model.Navaid) error {
	if n.Ident == "" {
		return fmt.Errorf("navaid ident must not be empty")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("upsert navaid", err)
	}
	defer tx.Rollback()

	var oldID int64
	err = tx.QueryRowContext(ctx, "SELECT id FROM navaids WHERE ident = ?", n.Ident).Scan(&oldID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return unavailable("upsert navaid", err)
	default:
		if _, err := tx.ExecContext(ctx, "DELETE FROM navaids_rtree WHERE id = ?", oldID); err != nil {
			return unavailable("upsert navaid", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM navaids WHERE id = ?", oldID); err != nil {
			return unavailable("upsert navaid", err)
		}
	}

	res, err := tx.ExecContext(ctx, `INSERT INTO navaids (ident, name, type, lat, lon, freq, mag_var, elevation_ft)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		n.Ident, n.Name, string(n.Type), n.Lat, n.Lon, n.Frequency,
		nullF64(n.MagneticVariation), nullF64(n.ElevationFt))
	if err != nil {
		return unavailable("upsert navaid", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return unavailable("upsert navaid", err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO navaids_rtree (id, min_lat, max_lat, min_lon, max_lon) VALUES (?, ?, ?, ?, ?)",
		id, n.Lat, n.Lat, n.Lon, n.Lon); err != nil {
		return unavailable("upsert navaid", err)
	}

	if err := tx.Commit(); err != nil {
		return unavailable("upsert navaid", err)
	}
	return nil
}

func (s *SQLiteStore) GetNavaid(ctx context.Context, ident string) (*model.Navaid, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT ident, name, type, lat, lon, freq, mag_var, elevation_ft FROM navaids WHERE ident = ?", ident)

	n, err := scanNavaid(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, unavailable("get navaid", err)
	}
	return n, nil
}

func (s *SQLiteStore) NavaidsNear(ctx context.Context, center orb.Point, radiusNM float64) ([]*model.Navaid, error) {
	bound := geo.DegreeBound(center, radiusNM)

	rows, err := s.db.QueryContext(ctx, `SELECT ident, name, type, lat, lon, freq, mag_var, elevation_ft
		FROM navaids n
		JOIN navaids_rtree r ON n.id = r.id
		WHERE r.max_lat >= ? AND r.min_lat <= ? AND r.max_lon >= ? AND r.min_lon <= ?
		ORDER BY n.id`,
		bound.Min.Lat(), bound.Max.Lat(), bound.Min.Lon(), bound.Max.Lon())
	if err != nil {
		return nil, unavailable("navaids near", err)
	}
	defer rows.Close()

	var results []*model.Navaid
	for rows.Next() {
		n, err := scanNavaid(rows)
		if err != nil {
			return nil, unavailable("navaids near", err)
		}
		results = append(results, n)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("navaids near", err)
	}
	return results, nil
}

func scanNavaid(row rowScanner) (*model.Navaid, error) {
	var n model.Navaid
	var ntype string
	var name sql.NullString
	var freq, magVar, elevation sql.NullFloat64

	if err := row.Scan(&n.Ident, &name, &ntype, &n.Lat, &n.Lon, &freq, &magVar, &elevation); err != nil {
		return nil, err
	}
	n.Name = name.String
	n.Type = model.NavaidType(ntype)
	n.Frequency = freq.Float64
	n.MagneticVariation = f64Ptr(magVar)
	n.ElevationFt = f64Ptr(elevation)
	return &n, nil
}

// --- Weather cache (durable tier) ---

const weatherColumns = `station_id, raw_text, category, temp_c, dewpoint_c,
	wind_dir, wind_variable, wind_speed_kt, wind_gust_kt, visibility_sm, ceiling_ft,
	fetched_at, observed_at`

func (s *SQLiteStore) GetCachedWeather(ctx context.Context, stationID string) (*model.WeatherSummary, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+weatherColumns+" FROM weather_cache WHERE station_id = ?", stationID)

	w, err := scanWeather(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, unavailable("get cached weather", err)
	}
	return w, nil
}

func (s *SQLiteStore) PutWeather(ctx context.Context, w *model.WeatherSummary) error {
	if w.StationID == "" {
		return fmt.Errorf("weather station id must not be empty")
	}

	_, err := s.db.ExecContext(ctx, `INSERT INTO weather_cache (`+weatherColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(station_id) DO UPDATE SET
			raw_text=excluded.raw_text,
			category=excluded.category,
			temp_c=excluded.temp_c,
			dewpoint_c=excluded.dewpoint_c,
			wind_dir=excluded.wind_dir,
			wind_variable=excluded.wind_variable,
			wind_speed_kt=excluded.wind_speed_kt,
			wind_gust_kt=excluded.wind_gust_kt,
			visibility_sm=excluded.visibility_sm,
			ceiling_ft=excluded.ceiling_ft,
			fetched_at=excluded.fetched_at,
			observed_at=excluded.observed_at`,
		weatherArgs(w)...)
	if err != nil {
		return unavailable("put weather", err)
	}
	return nil
}

func (s *SQLiteStore) StaleStationIDs(ctx context.Context, olderThan time.Duration) ([]string, error) {
	cutoff := time.Now().Add(-olderThan)

	rows, err := s.db.QueryContext(ctx,
		"SELECT station_id FROM weather_cache WHERE fetched_at < ?", cutoff)
	if err != nil {
		return nil, unavailable("stale station ids", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, unavailable("stale station ids", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("stale station ids", err)
	}
	return ids, nil
}

func (s *SQLiteStore) ClearWeatherCache(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM weather_cache"); err != nil {
		return unavailable("clear weather cache", err)
	}
	return nil
}

func (s *SQLiteStore) ReplaceWeatherCache(ctx context.Context, entries []*model.WeatherSummary) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("replace weather cache", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM weather_cache"); err != nil {
		return unavailable("replace weather cache", err)
	}
	for _, w := range entries {
		if _, err := tx.ExecContext(ctx, `INSERT INTO weather_cache (`+weatherColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, weatherArgs(w)...); err != nil {
			return unavailable("replace weather cache", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return unavailable("replace weather cache", err)
	}
	return nil
}

func weatherArgs(w *model.WeatherSummary) []any {
	return []any{
		w.StationID, w.RawText, string(w.Category),
		nullF64(w.TemperatureC), nullF64(w.DewpointC),
		nullInt(w.WindDirDeg), w.WindVariable, nullInt(w.WindSpeedKt), nullInt(w.WindGustKt),
		nullF64(w.VisibilitySM), nullInt(w.CeilingFt),
		w.FetchedAt, w.ObservedAt,
	}
}

func scanWeather(row rowScanner) (*model.WeatherSummary, error) {
	var w model.WeatherSummary
	var rawText, category sql.NullString
	var temp, dewpoint, visibility sql.NullFloat64
	var windDir, windSpeed, windGust, ceiling sql.NullInt64
	var fetchedAt, observedAt sql.NullTime

	err := row.Scan(&w.StationID, &rawText, &category, &temp, &dewpoint,
		&windDir, &w.WindVariable, &windSpeed, &windGust, &visibility, &ceiling,
		&fetchedAt, &observedAt)
	if err != nil {
		return nil, err
	}

	w.RawText = rawText.String
	w.Category = model.FlightCategory(category.String)
	w.TemperatureC = f64Ptr(temp)
	w.DewpointC = f64Ptr(dewpoint)
	w.WindDirDeg = intPtr(windDir)
	w.WindSpeedKt = intPtr(windSpeed)
	w.WindGustKt = intPtr(windGust)
	w.VisibilitySM = f64Ptr(visibility)
	w.CeilingFt = intPtr(ceiling)
	if fetchedAt.Valid {
		w.FetchedAt = fetchedAt.Time
	}
	if observedAt.Valid {
		w.ObservedAt = observedAt.Time
	}
	return &w, nil
}

// --- Meta ---

func (s *SQLiteStore) GetMeta(ctx context.Context, key string) (string, bool) {
	var val string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM meta WHERE key = ?", key).Scan(&val)
	if err != nil {
		return "", false
	}
	return val, true
}

func (s *SQLiteStore) SetMeta(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO meta (key, value, created_at) VALUES (?, ?, ?)", key, value, time.Now())
	if err != nil {
		return unavailable("set meta", err)
	}
	return nil
}

// --- Null helpers ---

func nullF64(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func f64Ptr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
