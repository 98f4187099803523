package wx

import (
	"testing"

	"flightbag/pkg/model"
)

func intp(v int) *int         { return &v }
func f64p(v float64) *float64 { return &v }

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		ceiling *int
		visib   *float64
		want    model.FlightCategory
	}{
		{"ClearAndTen", nil, f64p(10), model.CategoryVFR},
		{"HighCeiling", intp(5000), f64p(10), model.CategoryVFR},
		{"CeilingExactly3000", intp(3000), f64p(10), model.CategoryMVFR},
		{"MidCeiling", intp(2500), f64p(10), model.CategoryMVFR},
		{"VisExactlyFive", nil, f64p(5), model.CategoryMVFR},
		{"LowCeiling", intp(800), f64p(10), model.CategoryIFR},
		{"CeilingExactly1000", intp(1000), f64p(10), model.CategoryMVFR},
		{"LowVis", nil, f64p(2), model.CategoryIFR},
		{"VeryLowCeiling", intp(200), f64p(10), model.CategoryLIFR},
		{"VeryLowVis", intp(5000), f64p(0.5), model.CategoryLIFR},
		{"CeilingExactly500", intp(500), f64p(10), model.CategoryIFR},
		{"NothingReported", nil, nil, model.CategoryVFR},
		{"WorstWins", intp(400), f64p(4), model.CategoryLIFR},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.ceiling, tt.visib); got != tt.want {
				t.Errorf("Classify(%v, %v) = %s, want %s", tt.ceiling, tt.visib, got, tt.want)
			}
		})
	}
}

func TestDeriveCeiling(t *testing.T) {
	tests := []struct {
		name   string
		layers []CloudLayer
		want   *int
	}{
		{"NoLayers", nil, nil},
		{"ClearOnly", []CloudLayer{{Cover: "CLR"}}, nil},
		{"ScatteredIgnored", []CloudLayer{{Cover: "SCT", BaseFt: intp(1200)}}, nil},
		{"SingleBroken", []CloudLayer{{Cover: "BKN", BaseFt: intp(2500)}}, intp(2500)},
		{"LowestOfSeveral", []CloudLayer{
			{Cover: "SCT", BaseFt: intp(800)},
			{Cover: "OVC", BaseFt: intp(3000)},
			{Cover: "BKN", BaseFt: intp(1500)},
		}, intp(1500)},
		{"MissingBaseSkipped", []CloudLayer{{Cover: "BKN"}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveCeiling(tt.layers)
			switch {
			case got == nil && tt.want == nil:
			case got == nil || tt.want == nil:
				t.Errorf("DeriveCeiling = %v, want %v", got, tt.want)
			case *got != *tt.want:
				t.Errorf("DeriveCeiling = %d, want %d", *got, *tt.want)
			}
		})
	}
}
