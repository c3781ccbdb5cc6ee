package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/medmate/internal/flagx"
	"github.com/dmitrijs2005/medmate/internal/timex"
)

// JsonConfig is the on-disk shape. Durations accept "30s" or integer
// milliseconds.
type JsonConfig struct {
	BaseURL      string        `json:"base_url"`
	DBPath       string        `json:"db_path"`
	LogLevel     string        `json:"log_level"`
	OTelEndpoint string        `json:"otel_endpoint"`
	Timeouts     JsonTimeouts  `json:"timeouts"`
	Location     *JsonLocation `json:"location"`
}

type JsonTimeouts struct {
	Check         timex.Duration `json:"check"`
	Default       timex.Duration `json:"default"`
	Diagnose      timex.Duration `json:"diagnose"`
	DiagnoseImage timex.Duration `json:"diagnose_image"`
	Chat          timex.Duration `json:"chat"`
	History       timex.Duration `json:"history"`
	Upload        timex.Duration `json:"upload"`
}

type JsonLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// parseJson overlays cfg with the file given by -c or -config. Absent or
// zero fields leave cfg untouched.
func parseJson(cfg *Config) error {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.DBPath != "" {
		cfg.DBPath = jc.DBPath
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.OTelEndpoint != "" {
		cfg.OTelEndpoint = jc.OTelEndpoint
	}

	t := &cfg.Timeouts
	overrideDuration(&t.Check, jc.Timeouts.Check.Duration)
	overrideDuration(&t.Default, jc.Timeouts.Default.Duration)
	overrideDuration(&t.Diagnose, jc.Timeouts.Diagnose.Duration)
	overrideDuration(&t.DiagnoseImage, jc.Timeouts.DiagnoseImage.Duration)
	overrideDuration(&t.Chat, jc.Timeouts.Chat.Duration)
	overrideDuration(&t.History, jc.Timeouts.History.Duration)
	overrideDuration(&t.Upload, jc.Timeouts.Upload.Duration)

	if jc.Location != nil {
		cfg.Location = &Location{Latitude: jc.Location.Latitude, Longitude: jc.Location.Longitude}
	}
	return nil
}
