package model

import (
	"time"

	"github.com/paulmach/orb"
)

// TFRType classifies a temporary flight restriction.
type TFRType string

// TFR types.
const (
	TFRSecurity TFRType = "security"
	TFRVIP      TFRType = "vip"
	TFRHazard   TFRType = "hazard"
	TFRAirshow  TFRType = "airshow"
	TFRStadium  TFRType = "stadium"
	TFROther    TFRType = "other"
)

// TFR is a temporary flight restriction keyed by its provider-issued notice
// number. The whole TFR set is replaced on refresh; there are no partial
// updates.
type TFR struct {
	NoticeID    string
	Type        TFRType
	Description string

	EffectiveAt time.Time
	ExpiresAt   time.Time

	Lat float64
	Lon float64
	// RadiusNM is nil for point restrictions.
	RadiusNM *float64

	FloorFt   int
	CeilingFt int
}

// Point returns the restriction center.
func (t *TFR) Point() orb.Point {
	return orb.Point{t.Lon, t.Lat}
}

// Active reports whether now falls within [EffectiveAt, ExpiresAt].
func (t *TFR) Active(now time.Time) bool {
	return !now.Before(t.EffectiveAt) && !now.After(t.ExpiresAt)
}
