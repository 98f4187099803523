// Package model defines the value types persisted and cached by the
// flightbag data platform.
package model

import (
	"github.com/paulmach/orb"
)

// FacilityType classifies a landing facility.
type FacilityType string

// Facility types.
const (
	FacilityAirport    FacilityType = "airport"
	FacilityHeliport   FacilityType = "heliport"
	FacilitySeaplane   FacilityType = "seaplane"
	FacilityUltralight FacilityType = "ultralight"
)

// Ownership classifies who operates a facility.
type Ownership string

// Ownership kinds.
const (
	OwnershipPublic   Ownership = "public"
	OwnershipPrivate  Ownership = "private"
	OwnershipMilitary Ownership = "military"
)

// Airport is a landing facility keyed by its ICAO code. It owns its runway
// and frequency child records; replacing an airport replaces both sets.
type Airport struct {
	ICAO        string // unique, immutable once created
	FAAIdent    string
	Name        string
	Lat         float64
	Lon         float64
	ElevationFt float64
	Facility    FacilityType
	Ownership   Ownership

	CTAFMHz   *float64
	UnicomMHz *float64

	ARTCCIdent string
	ARTCCName  string

	MagneticVariation *float64
	PatternAltitudeFt *float64
	FuelTypes         string
	HasBeacon         bool

	Runways     []Runway
	Frequencies []Frequency
}

// Point returns the airport reference point.
func (a *Airport) Point() orb.Point {
	return orb.Point{a.Lon, a.Lat}
}

// RunwayEnd is one named end of a runway.
type RunwayEnd struct {
	Ident           string
	Lat             float64
	Lon             float64
	ThresholdElevFt *float64
}

// Runway belongs to exactly one airport.
type Runway struct {
	Designator string // e.g. "13/31"
	LengthFt   float64
	WidthFt    float64
	Surface    string
	Lighting   string
	BaseEnd    RunwayEnd
	RecipEnd   RunwayEnd
}

// FrequencyType classifies the use of a published frequency.
type FrequencyType string

// Frequency types.
const (
	FreqTower     FrequencyType = "tower"
	FreqGround    FrequencyType = "ground"
	FreqCTAF      FrequencyType = "ctaf"
	FreqATIS      FrequencyType = "atis"
	FreqApproach  FrequencyType = "approach"
	FreqDeparture FrequencyType = "departure"
	FreqClearance FrequencyType = "clearance"
	FreqUnicom    FrequencyType = "unicom"
)

// Frequency belongs to exactly one airport.
type Frequency struct {
	ID   string // generated identifier
	Type FrequencyType
	MHz  float64
	Name string
}

// NavaidType classifies a radio navigation aid.
type NavaidType string

// Navaid types.
const (
	NavaidVOR    NavaidType = "VOR"
	NavaidVORDME NavaidType = "VOR-DME"
	NavaidVORTAC NavaidType = "VORTAC"
	NavaidDME    NavaidType = "DME"
	NavaidNDB    NavaidType = "NDB"
	NavaidTACAN  NavaidType = "TACAN"
)

// Navaid is a standalone radio navigation aid keyed by station identifier.
type Navaid struct {
	Ident             string // e.g. "SJC"
	Name              string
	Type              NavaidType
	Lat               float64
	Lon               float64
	Frequency         float64 // MHz for VOR family, kHz for NDB
	MagneticVariation *float64
	ElevationFt       *float64
}

// Point returns the navaid position.
func (n *Navaid) Point() orb.Point {
	return orb.Point{n.Lon, n.Lat}
}
