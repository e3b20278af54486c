package main

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/circles/circles"
	"github.com/plus3/circles/config"
	"github.com/plus3/circles/ecs"
)

// stopSystem cancels the run once Limit ticks have executed.
type stopSystem struct {
	Limit  uint64
	Cancel context.CancelFunc
}

func (s *stopSystem) Execute(frame *ecs.UpdateFrame) {
	if frame.Tick >= s.Limit {
		s.Cancel()
	}
}

// runHeadless steps a world on a ticker at cfg.Simulation.HeadlessTPS until
// frames ticks have run or ctx is cancelled.
func runHeadless(ctx context.Context, cfg config.Config, frames uint64, log *zap.Logger, opts ...circles.Option) *Report {
	world := circles.NewWorld(opts...)
	world.Startup()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	scheduler := world.Scheduler()
	if frames > 0 {
		scheduler.Register(&stopSystem{Limit: frames, Cancel: cancel})
	}

	interval := time.Second / time.Duration(cfg.Simulation.HeadlessTPS)
	log.Info("running headless",
		zap.Uint64("frames", frames),
		zap.Duration("interval", interval),
		zap.Int("bodies", world.Len()))

	start := time.Now()
	scheduler.Run(ctx, interval)

	report := &Report{
		Frames:    scheduler.Ticks(),
		TotalTime: time.Since(start),
		Systems:   scheduler.GetStats().Systems,
		Bodies:    world.Bodies(),
	}
	for _, b := range report.Bodies {
		if hasNaN(b) {
			report.NaNBodies++
		}
	}

	for i, b := range report.Bodies {
		log.Debug("final body",
			zap.Int("index", i),
			zap.Float32("x", b.Position[0]),
			zap.Float32("y", b.Position[1]),
			zap.Float32("vx", b.Velocity[0]),
			zap.Float32("vy", b.Velocity[1]))
	}
	log.Info("headless run finished",
		zap.Uint64("ticks", report.Frames),
		zap.Duration("elapsed", report.TotalTime),
		zap.Int("entities", world.Storage().EntityCount()))

	return report
}

func hasNaN(b circles.Body) bool {
	for _, v := range [...]float32{b.Position[0], b.Position[1], b.Velocity[0], b.Velocity[1]} {
		if math.IsNaN(float64(v)) {
			return true
		}
	}
	return false
}
