// Package config loads the application configuration from a JSON file, with
// environment overrides for secrets and defaults for anything unset.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/unklstewy/groundscope/pkg/ssd"
)

// Config represents the complete application configuration.
type Config struct {
	Database DatabaseConfig `json:"database"`
	ADSB     ADSBConfig     `json:"adsb"`
	Analysis AnalysisConfig `json:"analysis"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	// Host is the database server hostname
	Host string `json:"host"`

	// Port is the database server port
	Port int `json:"port"`

	// Database is the database name
	Database string `json:"database"`

	// Username for database authentication
	Username string `json:"username"`

	// Password for database authentication (should be loaded from environment)
	Password string `json:"password"`

	// SSLMode for PostgreSQL connections (disable, require, verify-ca, verify-full)
	SSLMode string `json:"ssl_mode"`

	// MaxOpenConns is the maximum number of open connections
	MaxOpenConns int `json:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle connections
	MaxIdleConns int `json:"max_idle_conns"`
}

// ADSBConfig contains the live ADS-B data source configuration used by the
// collector.
type ADSBConfig struct {
	// BaseURL is the API base URL (e.g., "https://api.airplanes.live/v2")
	BaseURL string `json:"base_url"`

	// RateLimitSeconds is the minimum time between API calls in seconds.
	// airplanes.live: recommend 3 seconds to avoid 429 errors
	RateLimitSeconds float64 `json:"rate_limit_seconds"`

	// Region defines the geographic area to collect aircraft from
	Region RegionConfig `json:"region"`

	// UpdateIntervalSeconds is how often to take an analysis snapshot
	UpdateIntervalSeconds int `json:"update_interval_seconds"`
}

// RegionConfig is the collection region: a circle around an airport or other
// surface-movement area of interest.
type RegionConfig struct {
	// Name is a friendly identifier for this region
	Name string `json:"name"`

	// Latitude in decimal degrees (-90 to +90)
	Latitude float64 `json:"latitude"`

	// Longitude in decimal degrees (-180 to +180)
	Longitude float64 `json:"longitude"`

	// RadiusNM is the collection radius in nautical miles
	RadiusNM float64 `json:"radius_nm"`
}

// AnalysisConfig contains the conflict-engine parameters.
type AnalysisConfig struct {
	// LookaheadSeconds sets the analysis window width (windows are
	// lookahead_seconds × 1000 ms wide)
	LookaheadSeconds float64 `json:"lookahead_seconds"`

	// RingSamples is the number of vertices per reachable-velocity circle
	RingSamples int `json:"ring_samples"`

	// ADSBRangeMeters is the neighbor sensor horizon in meters.
	// 0 = the 65-statute-mile default
	ADSBRangeMeters float64 `json:"adsb_range_meters"`

	// Workers is the number of concurrent per-aircraft computations per
	// window (values below 2 run serially)
	Workers int `json:"workers"`
}

// Params converts the analysis section into engine parameters, applying
// defaults for unset values.
func (a AnalysisConfig) Params() ssd.Params {
	p := ssd.DefaultParams()
	if a.LookaheadSeconds > 0 {
		p.LookaheadSeconds = a.LookaheadSeconds
	}
	if a.RingSamples > 0 {
		p.RingSamples = a.RingSamples
	}
	if a.ADSBRangeMeters > 0 {
		p.ADSBRangeMeters = a.ADSBRangeMeters
	}
	if a.Workers > 0 {
		p.Workers = a.Workers
	}
	return p
}

// Load reads configuration from a JSON file.
// If the file doesn't exist, returns a default configuration.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to a JSON file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:         "localhost",
			Port:         5432,
			Database:     "groundscope",
			Username:     "groundscope",
			SSLMode:      "disable",
			MaxOpenConns: 25,
			MaxIdleConns: 5,
		},
		ADSB: ADSBConfig{
			BaseURL:          "https://api.airplanes.live/v2",
			RateLimitSeconds: 3.0,
			Region: RegionConfig{
				Name:     "Primary Region",
				RadiusNM: 50.0,
			},
			UpdateIntervalSeconds: 2,
		},
		Analysis: AnalysisConfig{
			LookaheadSeconds: 1,
			RingSamples:      ssd.DefaultRingSamples,
			Workers:          1,
		},
	}
}

// Validate checks the configuration for values the rest of the system cannot
// work with.
func (c *Config) Validate() error {
	if c.ADSB.Region.Latitude < -90 || c.ADSB.Region.Latitude > 90 {
		return fmt.Errorf("region latitude %.4f out of range", c.ADSB.Region.Latitude)
	}
	if c.ADSB.Region.Longitude < -180 || c.ADSB.Region.Longitude > 180 {
		return fmt.Errorf("region longitude %.4f out of range", c.ADSB.Region.Longitude)
	}
	if c.ADSB.Region.RadiusNM < 0 {
		return fmt.Errorf("region radius %.1f nm is negative", c.ADSB.Region.RadiusNM)
	}
	if c.Analysis.LookaheadSeconds < 0 {
		return fmt.Errorf("lookahead_seconds %.3f is negative", c.Analysis.LookaheadSeconds)
	}
	if c.Analysis.RingSamples < 0 {
		return fmt.Errorf("ring_samples %d is negative", c.Analysis.RingSamples)
	}
	return nil
}

// applyEnvironmentOverrides lets secrets come from the environment instead of
// the config file.
func (c *Config) applyEnvironmentOverrides() {
	if v := os.Getenv("GROUNDSCOPE_DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("GROUNDSCOPE_DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("GROUNDSCOPE_DB_USER"); v != "" {
		c.Database.Username = v
	}
}
