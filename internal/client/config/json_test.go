package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/medmate/internal/client/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	dir := t.TempDir()
	full := writeTempJSON(t, dir, "full.json", map[string]any{
		"base_url":      "https://medmate.example",
		"db_path":       "/var/lib/medmate.db",
		"log_level":     "info",
		"otel_endpoint": "collector:4318",
		"timeouts": map[string]any{
			"diagnose":       "90s",
			"diagnose_image": 120000,
		},
		"location": map[string]any{"latitude": 28.45, "longitude": 77.02},
	})

	t.Run("overlays set fields", func(t *testing.T) {
		withArgs(t, "-config", full)

		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJson(cfg))

		assert.Equal(t, "https://medmate.example", cfg.BaseURL)
		assert.Equal(t, "/var/lib/medmate.db", cfg.DBPath)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "collector:4318", cfg.OTelEndpoint)
		assert.Equal(t, 90*time.Second, cfg.Timeouts.Diagnose)
		assert.Equal(t, 120*time.Second, cfg.Timeouts.DiagnoseImage)
		assert.Equal(t, client.DefaultTimeouts().Chat, cfg.Timeouts.Chat)
		assert.Equal(t, &Location{Latitude: 28.45, Longitude: 77.02}, cfg.Location)
	})

	t.Run("missing fields keep earlier values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{"log_level": "error"})
		withArgs(t, "-c", partial)

		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJson(cfg))

		assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
		assert.Equal(t, "error", cfg.LogLevel)
	})

	t.Run("no config flag leaves config alone", func(t *testing.T) {
		withArgs(t)

		cfg := &Config{BaseURL: "http://keep"}
		require.NoError(t, parseJson(cfg))
		assert.Equal(t, "http://keep", cfg.BaseURL)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		withArgs(t, "-config", bad)

		require.ErrorContains(t, parseJson(&Config{}), "parsing config file")
	})

	t.Run("invalid duration", func(t *testing.T) {
		bad := writeTempJSON(t, dir, "baddur.json", map[string]any{
			"timeouts": map[string]any{"chat": true},
		})
		withArgs(t, "-config", bad)

		require.Error(t, parseJson(&Config{}))
	})
}
