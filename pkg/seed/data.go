package seed

import "flightbag/pkg/model"

func mhz(v float64) *float64 { return &v }
func ft(v float64) *float64  { return &v }

// Airports returns the bundled airport dataset: the San Francisco bay area
// subset used for first-run bootstrap and tests. Coordinates and published
// frequencies are approximate.
func Airports() []*model.Airport {
	return []*model.Airport{
		{
			ICAO: "KPAO", FAAIdent: "PAO", Name: "Palo Alto",
			Lat: 37.4611, Lon: -122.1150, ElevationFt: 4,
			Facility: model.FacilityAirport, Ownership: model.OwnershipPublic,
			CTAFMHz: mhz(118.60), UnicomMHz: mhz(122.95),
			ARTCCIdent: "ZOA", ARTCCName: "Oakland Center",
			MagneticVariation: ft(13), PatternAltitudeFt: ft(800),
			FuelTypes: "100LL", HasBeacon: true,
			Runways: []model.Runway{
				{
					Designator: "13/31", LengthFt: 2443, WidthFt: 70, Surface: "asphalt", Lighting: "MIRL",
					BaseEnd:  model.RunwayEnd{Ident: "13", Lat: 37.4644, Lon: -122.1185, ThresholdElevFt: ft(4)},
					RecipEnd: model.RunwayEnd{Ident: "31", Lat: 37.4578, Lon: -122.1115, ThresholdElevFt: ft(3)},
				},
			},
			Frequencies: []model.Frequency{
				{Type: model.FreqTower, MHz: 118.60, Name: "Palo Alto Tower"},
				{Type: model.FreqGround, MHz: 125.00, Name: "Palo Alto Ground"},
				{Type: model.FreqATIS, MHz: 120.60, Name: "Palo Alto ATIS"},
			},
		},
		{
			ICAO: "KSFO", FAAIdent: "SFO", Name: "San Francisco Intl",
			Lat: 37.6189, Lon: -122.3750, ElevationFt: 13,
			Facility: model.FacilityAirport, Ownership: model.OwnershipPublic,
			ARTCCIdent: "ZOA", ARTCCName: "Oakland Center",
			FuelTypes: "100LL,JETA", HasBeacon: true,
			Runways: []model.Runway{
				{
					Designator: "10L/28R", LengthFt: 11870, WidthFt: 200, Surface: "asphalt", Lighting: "HIRL",
					BaseEnd:  model.RunwayEnd{Ident: "10L", Lat: 37.6289, Lon: -122.3932, ThresholdElevFt: ft(12)},
					RecipEnd: model.RunwayEnd{Ident: "28R", Lat: 37.6135, Lon: -122.3572, ThresholdElevFt: ft(13)},
				},
				{
					Designator: "01R/19L", LengthFt: 8648, WidthFt: 200, Surface: "asphalt", Lighting: "HIRL",
					BaseEnd:  model.RunwayEnd{Ident: "01R", Lat: 37.6070, Lon: -122.3817, ThresholdElevFt: ft(11)},
					RecipEnd: model.RunwayEnd{Ident: "19L", Lat: 37.6285, Lon: -122.3700, ThresholdElevFt: ft(13)},
				},
			},
			Frequencies: []model.Frequency{
				{Type: model.FreqTower, MHz: 120.50, Name: "San Francisco Tower"},
				{Type: model.FreqGround, MHz: 121.80, Name: "San Francisco Ground"},
				{Type: model.FreqATIS, MHz: 113.70, Name: "San Francisco ATIS"},
				{Type: model.FreqApproach, MHz: 134.50, Name: "NorCal Approach"},
			},
		},
		{
			ICAO: "KSJC", FAAIdent: "SJC", Name: "Norman Y Mineta San Jose Intl",
			Lat: 37.3626, Lon: -121.9291, ElevationFt: 62,
			Facility: model.FacilityAirport, Ownership: model.OwnershipPublic,
			ARTCCIdent: "ZOA", ARTCCName: "Oakland Center",
			FuelTypes: "100LL,JETA", HasBeacon: true,
			Runways: []model.Runway{
				{
					Designator: "12L/30R", LengthFt: 11000, WidthFt: 150, Surface: "asphalt", Lighting: "HIRL",
					BaseEnd:  model.RunwayEnd{Ident: "12L", Lat: 37.3733, Lon: -121.9406, ThresholdElevFt: ft(58)},
					RecipEnd: model.RunwayEnd{Ident: "30R", Lat: 37.3520, Lon: -121.9177, ThresholdElevFt: ft(62)},
				},
			},
			Frequencies: []model.Frequency{
				{Type: model.FreqTower, MHz: 124.00, Name: "San Jose Tower"},
				{Type: model.FreqGround, MHz: 121.70, Name: "San Jose Ground"},
				{Type: model.FreqATIS, MHz: 126.95, Name: "San Jose ATIS"},
			},
		},
		{
			ICAO: "KSQL", FAAIdent: "SQL", Name: "San Carlos",
			Lat: 37.5119, Lon: -122.2495, ElevationFt: 5,
			Facility: model.FacilityAirport, Ownership: model.OwnershipPublic,
			CTAFMHz: mhz(119.00), UnicomMHz: mhz(122.95),
			ARTCCIdent: "ZOA", ARTCCName: "Oakland Center",
			PatternAltitudeFt: ft(800), FuelTypes: "100LL", HasBeacon: true,
			Runways: []model.Runway{
				{
					Designator: "12/30", LengthFt: 2600, WidthFt: 75, Surface: "asphalt", Lighting: "MIRL",
					BaseEnd:  model.RunwayEnd{Ident: "12", Lat: 37.5153, Lon: -122.2531, ThresholdElevFt: ft(5)},
					RecipEnd: model.RunwayEnd{Ident: "30", Lat: 37.5085, Lon: -122.2459, ThresholdElevFt: ft(4)},
				},
			},
			Frequencies: []model.Frequency{
				{Type: model.FreqTower, MHz: 119.00, Name: "San Carlos Tower"},
				{Type: model.FreqATIS, MHz: 125.90, Name: "San Carlos ATIS"},
			},
		},
		{
			ICAO: "KHAF", FAAIdent: "HAF", Name: "Half Moon Bay",
			Lat: 37.5134, Lon: -122.5011, ElevationFt: 66,
			Facility: model.FacilityAirport, Ownership: model.OwnershipPublic,
			CTAFMHz: mhz(122.80), UnicomMHz: mhz(122.80),
			ARTCCIdent: "ZOA", ARTCCName: "Oakland Center",
			PatternAltitudeFt: ft(1000), FuelTypes: "100LL", HasBeacon: true,
			Runways: []model.Runway{
				{
					Designator: "12/30", LengthFt: 5000, WidthFt: 150, Surface: "asphalt", Lighting: "MIRL",
					BaseEnd:  model.RunwayEnd{Ident: "12", Lat: 37.5201, Lon: -122.5071, ThresholdElevFt: ft(66)},
					RecipEnd: model.RunwayEnd{Ident: "30", Lat: 37.5066, Lon: -122.4951, ThresholdElevFt: ft(60)},
				},
			},
		},
		{
			ICAO: "KRHV", FAAIdent: "RHV", Name: "Reid-Hillview",
			Lat: 37.3329, Lon: -121.8190, ElevationFt: 135,
			Facility: model.FacilityAirport, Ownership: model.OwnershipPublic,
			CTAFMHz: mhz(119.80), UnicomMHz: mhz(122.95),
			ARTCCIdent: "ZOA", ARTCCName: "Oakland Center",
			PatternAltitudeFt: ft(1100), FuelTypes: "100LL", HasBeacon: true,
			Runways: []model.Runway{
				{
					Designator: "13L/31R", LengthFt: 3101, WidthFt: 75, Surface: "asphalt", Lighting: "MIRL",
					BaseEnd:  model.RunwayEnd{Ident: "13L", Lat: 37.3368, Lon: -121.8229, ThresholdElevFt: ft(133)},
					RecipEnd: model.RunwayEnd{Ident: "31R", Lat: 37.3291, Lon: -121.8152, ThresholdElevFt: ft(135)},
				},
			},
			Frequencies: []model.Frequency{
				{Type: model.FreqTower, MHz: 119.80, Name: "Reid-Hillview Tower"},
				{Type: model.FreqGround, MHz: 121.30, Name: "Reid-Hillview Ground"},
			},
		},
		{
			ICAO: "KNUQ", FAAIdent: "NUQ", Name: "Moffett Federal Airfield",
			Lat: 37.4161, Lon: -122.0490, ElevationFt: 32,
			Facility: model.FacilityAirport, Ownership: model.OwnershipMilitary,
			ARTCCIdent: "ZOA", ARTCCName: "Oakland Center",
			FuelTypes: "JETA", HasBeacon: true,
			Runways: []model.Runway{
				{
					Designator: "14L/32R", LengthFt: 9197, WidthFt: 200, Surface: "asphalt", Lighting: "HIRL",
					BaseEnd:  model.RunwayEnd{Ident: "14L", Lat: 37.4273, Lon: -122.0562, ThresholdElevFt: ft(20)},
					RecipEnd: model.RunwayEnd{Ident: "32R", Lat: 37.4051, Lon: -122.0416, ThresholdElevFt: ft(32)},
				},
			},
			Frequencies: []model.Frequency{
				{Type: model.FreqTower, MHz: 120.05, Name: "Moffett Tower"},
			},
		},
		{
			ICAO: "KOAK", FAAIdent: "OAK", Name: "Metropolitan Oakland Intl",
			Lat: 37.7213, Lon: -122.2207, ElevationFt: 9,
			Facility: model.FacilityAirport, Ownership: model.OwnershipPublic,
			ARTCCIdent: "ZOA", ARTCCName: "Oakland Center",
			FuelTypes: "100LL,JETA", HasBeacon: true,
			Runways: []model.Runway{
				{
					Designator: "12/30", LengthFt: 10520, WidthFt: 150, Surface: "asphalt", Lighting: "HIRL",
					BaseEnd:  model.RunwayEnd{Ident: "12", Lat: 37.7316, Lon: -122.2322, ThresholdElevFt: ft(8)},
					RecipEnd: model.RunwayEnd{Ident: "30", Lat: 37.7122, Lon: -122.2096, ThresholdElevFt: ft(9)},
				},
			},
			Frequencies: []model.Frequency{
				{Type: model.FreqTower, MHz: 118.30, Name: "Oakland Tower"},
				{Type: model.FreqGround, MHz: 121.90, Name: "Oakland Ground"},
				{Type: model.FreqATIS, MHz: 128.50, Name: "Oakland ATIS"},
			},
		},
		{
			ICAO: "KLVK", FAAIdent: "LVK", Name: "Livermore Municipal",
			Lat: 37.6934, Lon: -121.8203, ElevationFt: 400,
			Facility: model.FacilityAirport, Ownership: model.OwnershipPublic,
			CTAFMHz: mhz(118.10), UnicomMHz: mhz(122.95),
			ARTCCIdent: "ZOA", ARTCCName: "Oakland Center",
			PatternAltitudeFt: ft(1400), FuelTypes: "100LL,JETA", HasBeacon: true,
			Runways: []model.Runway{
				{
					Designator: "07L/25R", LengthFt: 5253, WidthFt: 100, Surface: "asphalt", Lighting: "MIRL",
					BaseEnd:  model.RunwayEnd{Ident: "07L", Lat: 37.6910, Lon: -121.8295, ThresholdElevFt: ft(397)},
					RecipEnd: model.RunwayEnd{Ident: "25R", Lat: 37.6957, Lon: -121.8114, ThresholdElevFt: ft(400)},
				},
			},
			Frequencies: []model.Frequency{
				{Type: model.FreqTower, MHz: 118.10, Name: "Livermore Tower"},
			},
		},
		{
			ICAO: "KCCR", FAAIdent: "CCR", Name: "Buchanan Field",
			Lat: 37.9897, Lon: -122.0569, ElevationFt: 26,
			Facility: model.FacilityAirport, Ownership: model.OwnershipPublic,
			CTAFMHz: mhz(123.90), UnicomMHz: mhz(122.95),
			ARTCCIdent: "ZOA", ARTCCName: "Oakland Center",
			PatternAltitudeFt: ft(826), FuelTypes: "100LL", HasBeacon: true,
			Runways: []model.Runway{
				{
					Designator: "01L/19R", LengthFt: 2770, WidthFt: 75, Surface: "asphalt", Lighting: "MIRL",
					BaseEnd:  model.RunwayEnd{Ident: "01L", Lat: 37.9860, Lon: -122.0579, ThresholdElevFt: ft(23)},
					RecipEnd: model.RunwayEnd{Ident: "19R", Lat: 37.9935, Lon: -122.0560, ThresholdElevFt: ft(26)},
				},
			},
			Frequencies: []model.Frequency{
				{Type: model.FreqTower, MHz: 123.90, Name: "Concord Tower"},
			},
		},
	}
}

// Navaids returns the bundled navaid dataset.
func Navaids() []*model.Navaid {
	return []*model.Navaid{
		{Ident: "SJC", Name: "San Jose", Type: model.NavaidVORDME, Lat: 37.3743, Lon: -121.9446, Frequency: 114.1, MagneticVariation: ft(13), ElevationFt: ft(60)},
		{Ident: "SFO", Name: "San Francisco", Type: model.NavaidVORDME, Lat: 37.6195, Lon: -122.3738, Frequency: 115.8, MagneticVariation: ft(13), ElevationFt: ft(13)},
		{Ident: "OAK", Name: "Oakland", Type: model.NavaidVORTAC, Lat: 37.7258, Lon: -122.2237, Frequency: 116.8, MagneticVariation: ft(13), ElevationFt: ft(10)},
		{Ident: "OSI", Name: "Woodside", Type: model.NavaidVOR, Lat: 37.3926, Lon: -122.2814, Frequency: 113.9, MagneticVariation: ft(13), ElevationFt: ft(2200)},
	}
}
