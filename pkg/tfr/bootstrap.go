package tfr

import (
	"time"

	"flightbag/pkg/model"
)

func nmPtr(v float64) *float64 { return &v }

// Bootstrap returns the bundled placeholder TFR set, windowed around the
// current time so the demo data is active when loaded. It stands in until a
// live NOTAM-derived feed is wired up.
func Bootstrap() []model.TFR {
	now := time.Now().UTC()
	return []model.TFR{
		{
			NoticeID:    "4/1234",
			Type:        model.TFRSecurity,
			Description: "Security TFR over San Francisco waterfront event",
			EffectiveAt: now.Add(-1 * time.Hour),
			ExpiresAt:   now.Add(23 * time.Hour),
			Lat:         37.7955,
			Lon:         -122.3937,
			RadiusNM:    nmPtr(3),
			FloorFt:     0,
			CeilingFt:   2000,
		},
		{
			NoticeID:    "4/5678",
			Type:        model.TFRVIP,
			Description: "VIP movement, Moffett Federal Airfield",
			EffectiveAt: now.Add(-30 * time.Minute),
			ExpiresAt:   now.Add(6 * time.Hour),
			Lat:         37.4161,
			Lon:         -122.0490,
			RadiusNM:    nmPtr(10),
			FloorFt:     0,
			CeilingFt:   17999,
		},
		{
			NoticeID:    "4/9012",
			Type:        model.TFRHazard,
			Description: "Firefighting operations, Santa Cruz Mountains",
			EffectiveAt: now.Add(-2 * time.Hour),
			ExpiresAt:   now.Add(46 * time.Hour),
			Lat:         37.1547,
			Lon:         -122.0310,
			RadiusNM:    nmPtr(5),
			FloorFt:     0,
			CeilingFt:   8000,
		},
		{
			NoticeID:    "4/3456",
			Type:        model.TFRStadium,
			Description: "Stadium TFR, Levi's Stadium scheduled event",
			EffectiveAt: now.Add(4 * time.Hour),
			ExpiresAt:   now.Add(9 * time.Hour),
			Lat:         37.4030,
			Lon:         -121.9700,
			RadiusNM:    nmPtr(3),
			FloorFt:     0,
			CeilingFt:   3000,
		},
	}
}
