package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Request RequestConfig `yaml:"request"`
	Log     LogConfig     `yaml:"log"`
	DB      DBConfig      `yaml:"db"`
	Weather WeatherConfig `yaml:"weather"`
	TFR     TFRConfig     `yaml:"tfr"`
	Query   QueryConfig   `yaml:"query"`
}

// RequestConfig holds HTTP request settings.
type RequestConfig struct {
	Retries int           `yaml:"retries"`
	Timeout Duration      `yaml:"timeout"`
	Backoff BackoffConfig `yaml:"backoff"`
}

// BackoffConfig holds exponential backoff settings.
type BackoffConfig struct {
	BaseDelay Duration `yaml:"base_delay"`
	MaxDelay  Duration `yaml:"max_delay"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Server LogSettings `yaml:"server"`
}

// LogSettings holds settings for a specific logger.
type LogSettings struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// DBConfig holds database settings.
type DBConfig struct {
	Path string `yaml:"path"`
}

// WeatherConfig holds settings for the weather cache engine.
type WeatherConfig struct {
	// URL is the METAR endpoint; station ids are appended as ?ids=A,B.
	URL string `yaml:"url"`
	// FreshFor is how long a fetched summary is served without refetching.
	FreshFor Duration `yaml:"fresh_for"`
	// StaleAfter is when a summary becomes eligible for purging.
	StaleAfter Duration `yaml:"stale_after"`
}

// TFRConfig holds settings for the TFR geofence cache.
type TFRConfig struct {
	URL         string   `yaml:"url"`
	SnapshotTTL Duration `yaml:"snapshot_ttl"`
}

// QueryConfig holds tuning for reference store queries.
type QueryConfig struct {
	// NearestRadius bounds the candidate search for nearest-airport lookups.
	// Results are never expanded beyond this radius, even when fewer than
	// the requested count exist inside it.
	NearestRadius Distance `yaml:"nearest_radius"`
	SearchLimit   int      `yaml:"search_limit"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Request: RequestConfig{
			Retries: 3,
			Timeout: Duration(30 * time.Second),
			Backoff: BackoffConfig{
				BaseDelay: Duration(500 * time.Millisecond),
				MaxDelay:  Duration(15 * time.Second),
			},
		},
		Log: LogConfig{
			Server: LogSettings{
				Path:  "./logs/flightbag.log",
				Level: "INFO",
			},
		},
		DB: DBConfig{
			Path: "./data/flightbag.db",
		},
		Weather: WeatherConfig{
			URL:        "https://aviationweather.gov/api/data/metar",
			FreshFor:   Duration(15 * time.Minute),
			StaleAfter: Duration(1 * time.Hour),
		},
		TFR: TFRConfig{
			URL:         "",
			SnapshotTTL: Duration(30 * time.Minute),
		},
		Query: QueryConfig{
			NearestRadius: Distance(50 * 1852), // 50nm
			SearchLimit:   25,
		},
	}
}

// Load loads the configuration from the given path.
// If the file does not exist, it creates it with default values.
// If the file exists, it merges defaults with existing values but does NOT
// save back to disk (to preserve user formatting and comments).
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		applyEnv(cfg)
		return cfg, nil
	}

	if err := Save(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config file: %w", err)
	}
	applyEnv(cfg)
	return cfg, nil
}

// applyEnv fills provider endpoints from the environment when the file leaves
// them empty, so deployments can point at a mirror without editing the YAML.
func applyEnv(cfg *Config) {
	if v := os.Getenv("FLIGHTBAG_METAR_URL"); v != "" {
		cfg.Weather.URL = v
	}
	if v := os.Getenv("FLIGHTBAG_TFR_URL"); v != "" {
		cfg.TFR.URL = v
	}
}

// Save writes the configuration to the path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# Flightbag Configuration
# ----------------------
# Supported Units:
#   Duration: ns, us, ms, s, m, h, d (day), w (week)
#   Distance: m (meters), km (kilometers), nm (nautical miles)

`)
	data = append(header, data...)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
