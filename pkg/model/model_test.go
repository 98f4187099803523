package model

import (
	"testing"
	"time"
)

func TestWeatherSummaryIsStale(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name    string
		fetched time.Time
		want    bool
	}{
		{"Fresh", now.Add(-10 * time.Minute), false},
		{"JustUnderThreshold", now.Add(-time.Hour + time.Second), false},
		{"JustOverThreshold", now.Add(-time.Hour - time.Second), true},
		{"VeryOld", now.Add(-24 * time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &WeatherSummary{StationID: "KPAO", FetchedAt: tt.fetched}
			if got := w.IsStale(now); got != tt.want {
				t.Errorf("IsStale = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTFRActive(t *testing.T) {
	eff := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	exp := eff.Add(4 * time.Hour)
	tfr := &TFR{NoticeID: "4/0001", EffectiveAt: eff, ExpiresAt: exp}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"BeforeEffective", eff.Add(-time.Minute), false},
		{"AtEffective", eff, true},
		{"Inside", eff.Add(time.Hour), true},
		{"AtExpiry", exp, true},
		{"AfterExpiry", exp.Add(time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tfr.Active(tt.now); got != tt.want {
				t.Errorf("Active(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestAirportPoint(t *testing.T) {
	a := &Airport{ICAO: "KPAO", Lat: 37.4611, Lon: -122.1150}
	p := a.Point()
	if p.Lat() != a.Lat || p.Lon() != a.Lon {
		t.Errorf("Point() = %v, want (lon %v, lat %v)", p, a.Lon, a.Lat)
	}
}
