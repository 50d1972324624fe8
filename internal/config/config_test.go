package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromDefaultsCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultUILanguage, cfg.UILanguage())
	assert.True(t, cfg.NotificationsEnabled())
	assert.Equal(t, DefaultSpinsPerSecond, cfg.SpinsPerSecond())
	assert.Equal(t, DefaultFrameRate, cfg.FrameRate())
	assert.Empty(t, cfg.GlyphFont())
	assert.False(t, cfg.LaunchAtLoginDefaultApplied())

	_, err = os.Stat(path)
	assert.NoError(t, err, "default config file should be written")
}

func TestLoadFromReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"ui_language":"ru","notifications":false,"spins_per_second":2,"frame_rate":60}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "ru", cfg.UILanguage())
	assert.False(t, cfg.NotificationsEnabled())
	assert.Equal(t, 2.0, cfg.SpinsPerSecond())
	assert.Equal(t, 60.0, cfg.FrameRate())
}

func TestLoadFromEnvOverride(t *testing.T) {
	t.Setenv("FNFLIP_FRAME_RATE", "12")
	t.Setenv("FNFLIP_UI_LANGUAGE", "ru")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)

	assert.Equal(t, 12.0, cfg.FrameRate())
	assert.Equal(t, "ru", cfg.UILanguage())
}

func TestLoadFromRejectsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestNonPositiveFrameRateFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"frame_rate":0}`), 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultFrameRate, cfg.FrameRate())
}

func TestDefaultAppliedMarkerPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	require.NoError(t, cfg.MarkLaunchAtLoginDefaultApplied())

	reloaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.True(t, reloaded.LaunchAtLoginDefaultApplied())
}

func TestSettersPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	require.NoError(t, cfg.SetNotifications(false))
	require.NoError(t, cfg.SetUILanguage("ru"))

	reloaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.False(t, reloaded.NotificationsEnabled())
	assert.Equal(t, "ru", reloaded.UILanguage())
}
