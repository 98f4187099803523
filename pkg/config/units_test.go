package config

import (
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"15m", 15 * time.Minute, false},
		{"30m", 30 * time.Minute, false},
		{"1.5h", 90 * time.Minute, false},
		{"1d", 24 * time.Hour, false},
		{"1w", 168 * time.Hour, false},
		{"2d2h", 50 * time.Hour, false},
		{"500ms", 500 * time.Millisecond, false},
		{"", 0, false},
		{"invalid", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseDuration(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDuration(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseDuration(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestParseDistance(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		wantErr  bool
	}{
		{"100m", 100, false},
		{"1.5km", 1500, false},
		{"1nm", 1852, false},
		{"50nm", 92600, false},
		{"500", 500, false}, // Unitless fallback
		{"10x", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseDistance(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDistance(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseDistance(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestDurationYAML(t *testing.T) {
	var s struct {
		FreshFor Duration `yaml:"fresh_for"`
	}
	if err := yaml.Unmarshal([]byte("fresh_for: 15m\n"), &s); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if time.Duration(s.FreshFor) != 15*time.Minute {
		t.Errorf("expected 15m, got %v", time.Duration(s.FreshFor))
	}
}

func TestDistanceYAML(t *testing.T) {
	var s struct {
		Radius Distance `yaml:"radius"`
	}
	if err := yaml.Unmarshal([]byte("radius: 50nm\n"), &s); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if s.Radius.NauticalMiles() != 50 {
		t.Errorf("expected 50nm, got %v", s.Radius.NauticalMiles())
	}

	if err := yaml.Unmarshal([]byte("radius: 1852\n"), &s); err != nil {
		t.Fatalf("bare number unmarshal failed: %v", err)
	}
	if s.Radius.NauticalMiles() != 1 {
		t.Errorf("expected 1nm from bare meters, got %v", s.Radius.NauticalMiles())
	}
}
