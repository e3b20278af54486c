// Package config loads the host configuration for the circles window.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Render     RenderConfig     `yaml:"render"`
	Simulation SimulationConfig `yaml:"simulation"`
	Inspector  InspectorConfig  `yaml:"inspector"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	VSync  bool   `yaml:"vsync"`
}

type RenderConfig struct {
	CircleColor     string  `yaml:"circle_color"`
	BackgroundColor string  `yaml:"background_color"`
	CircleRadius    float32 `yaml:"circle_radius"`
}

type SimulationConfig struct {
	// Seed for the spawner; 0 picks a random seed.
	Seed uint64 `yaml:"seed"`
	// HeadlessTPS is the tick rate when running without a window.
	HeadlessTPS int `yaml:"headless_tps"`
	// Launch spawns bodies at the launch velocity instead of at rest.
	Launch bool `yaml:"launch"`
}

type InspectorConfig struct {
	Enabled       bool `yaml:"enabled"`
	HistoryFrames int  `yaml:"history_frames"`
}

type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "App",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Render: RenderConfig{
			CircleColor:     "purple",
			BackgroundColor: "#282828",
			CircleRadius:    10,
		},
		Simulation: SimulationConfig{
			HeadlessTPS: 60,
		},
		Inspector: InspectorConfig{
			Enabled:       true,
			HistoryFrames: 120,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default value.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and colour syntax.
func (c Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	errs = append(errs, c.Render.problems()...)
	if c.Simulation.HeadlessTPS <= 0 {
		errs = append(errs, fmt.Errorf("simulation.headless_tps %d must be positive", c.Simulation.HeadlessTPS))
	}
	if c.Inspector.HistoryFrames <= 0 {
		errs = append(errs, fmt.Errorf("inspector.history_frames %d must be positive", c.Inspector.HistoryFrames))
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q must be console or json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Validate checks the render section alone; it is what hot reload applies.
func (r RenderConfig) Validate() error {
	if errs := r.problems(); len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

func (r RenderConfig) problems() []error {
	var errs []error
	if _, err := ParseColor(r.CircleColor); err != nil {
		errs = append(errs, fmt.Errorf("render.circle_color: %w", err))
	}
	if _, err := ParseColor(r.BackgroundColor); err != nil {
		errs = append(errs, fmt.Errorf("render.background_color: %w", err))
	}
	if r.CircleRadius <= 0 {
		errs = append(errs, fmt.Errorf("render.circle_radius %g must be positive", r.CircleRadius))
	}
	return errs
}

// ParseColor accepts "#rrggbb" or an SVG colour name such as "purple".
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		var r, g, b uint8
		if len(s) == 7 {
			if n, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err == nil && n == 3 {
				return color.RGBA{r, g, b, 255}, nil
			}
		}
		return color.RGBA{}, fmt.Errorf("bad hex colour %q", s)
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("unknown colour %q", s)
}
