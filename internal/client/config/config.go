package config

import (
	"time"

	"github.com/dmitrijs2005/medmate/internal/client/client"
)

const DefaultBaseURL = "http://localhost:5000"

// Location is a fixed position used when the device cannot report one.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Config holds runtime settings for the MedMate CLI.
type Config struct {
	// BaseURL is the backend root, e.g. https://medmate.example.
	BaseURL string
	// DBPath is the local SQLite file. Empty keeps remembered credentials in
	// memory only.
	DBPath   string
	LogLevel string
	// OTelEndpoint enables trace export when set.
	OTelEndpoint string
	Timeouts     client.Timeouts
	Location     *Location
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = DefaultBaseURL
	c.DBPath = "medmate.db"
	c.LogLevel = "warn"
	c.OTelEndpoint = ""
	c.Timeouts = client.DefaultTimeouts()
	c.Location = nil
}

// LoadConfig builds a Config from defaults, then the JSON file named by
// -c/-config, then MEDMATE_* environment variables, then flags. Each source
// only overrides what it sets.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return cfg, nil
}

func overrideDuration(dst *time.Duration, v time.Duration) {
	if v > 0 {
		*dst = v
	}
}
