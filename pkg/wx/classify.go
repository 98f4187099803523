package wx

import (
	"math"

	"flightbag/pkg/model"
)

// Classify derives the flight category from ceiling (ft AGL) and visibility
// (statute miles). An absent ceiling means clear sky and is treated as
// unlimited; an absent visibility report assumes good visibility.
func Classify(ceilingFt *int, visibilitySM *float64) model.FlightCategory {
	ceil := math.Inf(1)
	if ceilingFt != nil {
		ceil = float64(*ceilingFt)
	}
	vis := 10.0
	if visibilitySM != nil {
		vis = *visibilitySM
	}

	switch {
	case ceil < 500 || vis < 1.0:
		return model.CategoryLIFR
	case ceil < 1000 || vis < 3.0:
		return model.CategoryIFR
	case ceil <= 3000 || vis <= 5.0:
		return model.CategoryMVFR
	default:
		return model.CategoryVFR
	}
}

// CloudLayer is one reported cloud layer.
type CloudLayer struct {
	Cover  string `json:"cover"`
	BaseFt *int   `json:"base"`
}

// DeriveCeiling returns the base of the lowest broken or overcast layer.
// Clear, few and scattered layers never contribute a ceiling.
func DeriveCeiling(layers []CloudLayer) *int {
	var ceiling *int
	for _, l := range layers {
		if l.BaseFt == nil {
			continue
		}
		if l.Cover != "BKN" && l.Cover != "OVC" {
			continue
		}
		if ceiling == nil || *l.BaseFt < *ceiling {
			base := *l.BaseFt
			ceiling = &base
		}
	}
	return ceiling
}
