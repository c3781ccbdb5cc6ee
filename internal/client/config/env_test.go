package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("MEDMATE_API_URL", "https://medmate.example")
	t.Setenv("MEDMATE_OTEL_ENDPOINT", "localhost:4318")
	t.Setenv("MEDMATE_DIAGNOSE_TIMEOUT", "2m")
	t.Setenv("MEDMATE_LATITUDE", "28.5")
	t.Setenv("MEDMATE_LONGITUDE", "77.1")

	var cfg Config
	cfg.LoadDefaults()
	require.NoError(t, parseEnv(&cfg))

	want := Config{}
	want.LoadDefaults()
	want.BaseURL = "https://medmate.example"
	want.OTelEndpoint = "localhost:4318"
	want.Timeouts.Diagnose = 2 * time.Minute
	want.Location = &Location{Latitude: 28.5, Longitude: 77.1}

	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestParseEnv_LatitudeAloneIsIgnored(t *testing.T) {
	t.Setenv("MEDMATE_LATITUDE", "28.5")

	var cfg Config
	require.NoError(t, parseEnv(&cfg))
	assert.Nil(t, cfg.Location)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("MEDMATE_DIAGNOSE_TIMEOUT", "soon")

	var cfg Config
	require.Error(t, parseEnv(&cfg))
}
