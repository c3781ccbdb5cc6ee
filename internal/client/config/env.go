package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig uses pointers so an unset variable is told apart from an empty one.
type envConfig struct {
	BaseURL              *string        `env:"MEDMATE_API_URL"`
	DBPath               *string        `env:"MEDMATE_DB_PATH"`
	LogLevel             *string        `env:"MEDMATE_LOG_LEVEL"`
	OTelEndpoint         *string        `env:"MEDMATE_OTEL_ENDPOINT"`
	DiagnoseTimeout      *time.Duration `env:"MEDMATE_DIAGNOSE_TIMEOUT"`
	DiagnoseImageTimeout *time.Duration `env:"MEDMATE_DIAGNOSE_IMAGE_TIMEOUT"`
	Latitude             *float64       `env:"MEDMATE_LATITUDE"`
	Longitude            *float64       `env:"MEDMATE_LONGITUDE"`
}

func parseEnv(cfg *Config) error {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}

	if ec.BaseURL != nil {
		cfg.BaseURL = *ec.BaseURL
	}
	if ec.DBPath != nil {
		cfg.DBPath = *ec.DBPath
	}
	if ec.LogLevel != nil {
		cfg.LogLevel = *ec.LogLevel
	}
	if ec.OTelEndpoint != nil {
		cfg.OTelEndpoint = *ec.OTelEndpoint
	}
	if ec.DiagnoseTimeout != nil {
		overrideDuration(&cfg.Timeouts.Diagnose, *ec.DiagnoseTimeout)
	}
	if ec.DiagnoseImageTimeout != nil {
		overrideDuration(&cfg.Timeouts.DiagnoseImage, *ec.DiagnoseImageTimeout)
	}
	if ec.Latitude != nil && ec.Longitude != nil {
		cfg.Location = &Location{Latitude: *ec.Latitude, Longitude: *ec.Longitude}
	}
	return nil
}
