package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easel-agent/cli/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:8080", cfg.Gateway.URL)
	assert.Equal(t, "google/gemini-2.0-flash", cfg.Gateway.Model)
	assert.Equal(t, "Paint", cfg.Paint.WindowTitle)
	assert.Equal(t, 150, cfg.Paint.Insets.Top)
	assert.Equal(t, "auto", cfg.Display.Backend)
	assert.True(t, cfg.Sessions.Enabled)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Gateway.URL, cfg.Gateway.URL)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Gateway.URL = "http://gateway.internal:9000"
	cfg.Gateway.Model = "openai/gpt-4o"
	cfg.Paint.WindowTitle = "Krita"
	cfg.Paint.Insets.Top = 120
	cfg.Display.Backend = "x11"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://gateway.internal:9000", loaded.Gateway.URL)
	assert.Equal(t, "openai/gpt-4o", loaded.Gateway.Model)
	assert.Equal(t, "Krita", loaded.Paint.WindowTitle)
	assert.Equal(t, 120, loaded.Paint.Insets.Top)
	assert.Equal(t, "x11", loaded.Display.Backend)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("paint:\n  window_title: GIMP\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "GIMP", cfg.Paint.WindowTitle)
	// Untouched sections keep their defaults
	assert.Equal(t, 2000, cfg.Paint.SettleDelayMs)
	assert.Equal(t, ".easel/profiles", cfg.Calibration.Dir)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("EASEL_API_KEY", "env-key")
	t.Setenv("EASEL_GATEWAY_URL", "http://env:1234")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Gateway.APIKey)
	assert.Equal(t, "http://env:1234", cfg.Gateway.URL)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoAPIKey)

	cfg.Gateway.APIKey = "key"
	assert.NoError(t, cfg.Validate())

	cfg.Gateway.Model = ""
	assert.Error(t, cfg.Validate())
}

func TestGetConfigPathExplicitWins(t *testing.T) {
	assert.Equal(t, "/tmp/custom.yaml", GetConfigPath("/tmp/custom.yaml"))
}
