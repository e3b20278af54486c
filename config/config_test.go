package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "circles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "App", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.True(t, cfg.Window.VSync)
	assert.Equal(t, 60, cfg.Simulation.HeadlessTPS)
	assert.False(t, cfg.Simulation.Launch)
}

func TestLoadPartialFile(t *testing.T) {
	path := writeConfig(t, `
window:
  title: Circles
render:
  circle_color: "#ff0000"
simulation:
  seed: 42
  launch: true
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Circles", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width, "unset keys keep defaults")
	assert.Equal(t, "#ff0000", cfg.Render.CircleColor)
	assert.Equal(t, "#282828", cfg.Render.BackgroundColor)
	assert.Equal(t, uint64(42), cfg.Simulation.Seed)
	assert.True(t, cfg.Simulation.Launch)
	assert.Equal(t, 60, cfg.Simulation.HeadlessTPS)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		invalid bool
	}{
		{"bad yaml", "window: [", false},
		{"negative size", "window:\n  width: -1\n", true},
		{"bad colour", "render:\n  circle_color: notacolour\n", true},
		{"zero radius", "render:\n  circle_radius: 0\n", true},
		{"zero tps", "simulation:\n  headless_tps: 0\n", true},
		{"zero history", "inspector:\n  history_frames: 0\n", true},
		{"bad format", "logging:\n  format: xml\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Equal(t, tt.invalid, errors.Is(err, ErrInvalidConfig))
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidateJoinsProblems(t *testing.T) {
	cfg := Default()
	cfg.Window.Width = 0
	cfg.Render.CircleRadius = -1

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "window size 0x720")
	assert.Contains(t, err.Error(), "render.circle_radius -1")
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#282828", color.RGBA{40, 40, 40, 255}, false},
		{"#FF8000", color.RGBA{255, 128, 0, 255}, false},
		{"purple", color.RGBA{128, 0, 128, 255}, false},
		{" Purple ", color.RGBA{128, 0, 128, 255}, false},
		{"#fff", color.RGBA{}, true},
		{"#gggggg", color.RGBA{}, true},
		{"blurple", color.RGBA{}, true},
		{"", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
