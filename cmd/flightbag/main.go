// Package main provides the flightbag CLI: a briefing tool over the reference
// store, weather cache and TFR cache. Point it at a position to see nearby
// airports, the weather at the nearest one, and any active restrictions, or
// use the lookup flags to query individual records.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"

	"flightbag/pkg/config"
	"flightbag/pkg/geo"
	"flightbag/pkg/logging"
	"flightbag/pkg/model"
	"flightbag/pkg/platform"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfgPath := flag.String("config", "configs/flightbag.yaml", "Path to config file")
	lat := flag.Float64("lat", 37.4611, "Position latitude")
	lon := flag.Float64("lon", -122.1150, "Position longitude")
	radius := flag.Float64("radius", 30.0, "Search radius in nautical miles")
	search := flag.String("search", "", "Prefix search airports by ident or name")
	airport := flag.String("airport", "", "Look up a single airport by ICAO")
	navaid := flag.String("navaid", "", "Look up a single navaid by ident")
	station := flag.String("station", "", "Fetch weather for a single station")
	purge := flag.Bool("purge", false, "Purge stale weather cache entries and exit")
	flag.Parse()

	// Optional; deployments without a .env just use the config file.
	_ = godotenv.Load()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cleanup, err := logging.Init(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to init logging: %w", err)
	}
	defer cleanup()

	ctx := context.Background()

	p, err := platform.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open platform: %w", err)
	}
	defer p.Close()

	switch {
	case *purge:
		return p.PurgeStaleWeather(ctx)
	case *search != "":
		return runSearch(ctx, p, *search)
	case *airport != "":
		return runAirport(ctx, p, *airport)
	case *navaid != "":
		return runNavaid(ctx, p, *navaid)
	case *station != "":
		return runWeather(ctx, p, *station)
	}

	return runBriefing(ctx, p, *lat, *lon, *radius)
}

func runBriefing(ctx context.Context, p *platform.Platform, lat, lon, radiusNM float64) error {
	b, err := p.Brief(ctx, geo.Point(lat, lon), radiusNM)
	if err != nil {
		return fmt.Errorf("briefing failed: %w", err)
	}

	fmt.Printf("Position: %.4f, %.4f  (radius %.0fnm)\n\n", lat, lon, radiusNM)

	if len(b.Airports) == 0 {
		fmt.Println("No airports within range.")
	} else {
		fmt.Println("Nearest airports:")
		for _, a := range b.Airports {
			printAirportLine(a)
		}
	}

	fmt.Println()
	if b.Weather != nil {
		printWeather(b.Weather)
	} else {
		fmt.Println("Weather unavailable.")
	}

	fmt.Println()
	if len(b.TFRs) == 0 {
		fmt.Println("No active TFRs in range.")
	} else {
		fmt.Printf("Active TFRs (%d):\n", len(b.TFRs))
		for _, t := range b.TFRs {
			radius := "area"
			if t.RadiusNM != nil {
				radius = fmt.Sprintf("%.0fnm", *t.RadiusNM)
			}
			fmt.Printf("  %-8s %-9s %s, SFC-%d ft, until %s\n",
				t.NoticeID, t.Type, radius, t.CeilingFt, t.ExpiresAt.Format("Jan 2 15:04Z"))
			fmt.Printf("           %s\n", t.Description)
		}
	}
	return nil
}

func runSearch(ctx context.Context, p *platform.Platform, query string) error {
	results, err := p.SearchAirports(ctx, query, 0)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(results) == 0 {
		fmt.Printf("No airports matching %q.\n", query)
		return nil
	}
	for _, a := range results {
		printAirportLine(a)
	}
	return nil
}

func runAirport(ctx context.Context, p *platform.Platform, icao string) error {
	a, err := p.Airport(ctx, strings.ToUpper(icao))
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}
	if a == nil {
		fmt.Printf("Unknown airport %q.\n", icao)
		return nil
	}

	fmt.Printf("%s (%s) %s\n", a.ICAO, a.FAAIdent, a.Name)
	fmt.Printf("  %.4f, %.4f  elev %.0f ft  %s/%s\n", a.Lat, a.Lon, a.ElevationFt, a.Facility, a.Ownership)
	if a.CTAFMHz != nil {
		fmt.Printf("  CTAF %.2f\n", *a.CTAFMHz)
	}
	for _, r := range a.Runways {
		fmt.Printf("  RWY %-7s %5.0fx%-3.0f %s %s\n", r.Designator, r.LengthFt, r.WidthFt, r.Surface, r.Lighting)
	}
	for _, f := range a.Frequencies {
		fmt.Printf("  %-9s %.3f  %s\n", f.Type, f.MHz, f.Name)
	}
	return nil
}

func runNavaid(ctx context.Context, p *platform.Platform, ident string) error {
	n, err := p.Navaid(ctx, strings.ToUpper(ident))
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}
	if n == nil {
		fmt.Printf("Unknown navaid %q.\n", ident)
		return nil
	}
	fmt.Printf("%s %s (%s)  %.4f, %.4f  %.1f\n", n.Ident, n.Name, n.Type, n.Lat, n.Lon, n.Frequency)
	return nil
}

func runWeather(ctx context.Context, p *platform.Platform, station string) error {
	w, err := p.Weather(ctx, strings.ToUpper(station))
	if err != nil {
		return fmt.Errorf("weather fetch failed: %w", err)
	}
	printWeather(w)
	return nil
}

func printAirportLine(a *model.Airport) {
	fmt.Printf("  %-5s %-30s %.4f, %.4f\n", a.ICAO, a.Name, a.Lat, a.Lon)
}

func printWeather(w *model.WeatherSummary) {
	fmt.Printf("Weather at %s: %s\n", w.StationID, w.Category)
	if w.RawText != "" {
		fmt.Printf("  %s\n", w.RawText)
	}
	if w.TemperatureC != nil && w.DewpointC != nil {
		fmt.Printf("  Temp %.0fC / Dew %.0fC\n", *w.TemperatureC, *w.DewpointC)
	}
	if w.WindSpeedKt != nil {
		dir := "VRB"
		if !w.WindVariable && w.WindDirDeg != nil {
			dir = fmt.Sprintf("%03d", *w.WindDirDeg)
		}
		gust := ""
		if w.WindGustKt != nil {
			gust = fmt.Sprintf("G%d", *w.WindGustKt)
		}
		fmt.Printf("  Wind %s at %d%s kt\n", dir, *w.WindSpeedKt, gust)
	}
	if w.VisibilitySM != nil {
		fmt.Printf("  Visibility %.1f sm\n", *w.VisibilitySM)
	}
	if w.CeilingFt != nil {
		fmt.Printf("  Ceiling %d ft\n", *w.CeilingFt)
	}
}
