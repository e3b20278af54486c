package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/plus3/circles/circles"
	"github.com/plus3/circles/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to a YAML config file.")
	seed := flag.Uint64("seed", 0, "Spawn seed; 0 picks one at random.")
	headless := flag.Bool("headless", false, "Run without a window.")
	frames := flag.Uint64("frames", 600, "Number of ticks to run in headless mode.")
	inspector := flag.Bool("inspector", true, "Show the debug inspector overlay.")
	launch := flag.Bool("launch", false, "Spawn bodies moving at the launch velocity.")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Simulation.Seed = *seed
		case "inspector":
			cfg.Inspector.Enabled = *inspector
		case "launch":
			cfg.Simulation.Launch = *launch
		}
	})

	logger, closeLog, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	opts := worldOptions(cfg, logger)

	if *headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		report := runHeadless(ctx, cfg, *frames, logger, opts...)
		return report.Generate(os.Stdout)
	}

	logger.Info("opening window",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height))

	if err := runWindow(cfg, *configPath, logger, opts...); err != nil {
		logger.Error("window closed with error", zap.Error(err))
		return err
	}
	return nil
}

// worldOptions maps the config onto circles options. The world bounds follow
// the window size so the walls sit on the window edges.
func worldOptions(cfg config.Config, logger *zap.Logger) []circles.Option {
	opts := []circles.Option{
		circles.WithLogger(logger),
		circles.WithBounds(circles.Bounds{
			Width:  float32(cfg.Window.Width),
			Height: float32(cfg.Window.Height),
		}),
	}
	if cfg.Simulation.Seed != 0 {
		opts = append(opts, circles.WithSeed(cfg.Simulation.Seed))
	}
	if cfg.Simulation.Launch {
		opts = append(opts, circles.WithLaunch())
	}
	return opts
}
