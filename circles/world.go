package circles

import (
	"io"
	"math/rand/v2"
	"os"

	"go.uber.org/zap"

	"github.com/plus3/circles/ecs"
)

// World wires the circle systems into an ECS storage and scheduler.
//
// The host calls Startup once (or lets the first Step do it), then Step once
// per frame, and reads Bodies or the storage to draw.
type World struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	bodies    *ecs.Query[circleView]
	log       *zap.Logger
}

type worldOptions struct {
	rand     *rand.Rand
	out      io.Writer
	log      *zap.Logger
	count    int
	registry *ecs.ComponentRegistry
	bounds   Bounds
	launch   bool
}

// Option configures NewWorld.
type Option func(*worldOptions)

// WithRand sets the random source for spawning.
func WithRand(r *rand.Rand) Option {
	return func(o *worldOptions) { o.rand = r }
}

// WithSeed seeds a PCG source for spawning.
func WithSeed(seed uint64) Option {
	return func(o *worldOptions) { o.rand = rand.New(rand.NewPCG(seed, seed)) }
}

// WithDiagnostics sets where spawn samples are printed. Defaults to stdout;
// nil disables the output.
func WithDiagnostics(w io.Writer) Option {
	return func(o *worldOptions) { o.out = w }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(o *worldOptions) { o.log = log }
}

// WithoutRandomSpawn skips the random spawner, leaving the world empty
// until bodies are added with Spawn.
func WithoutRandomSpawn() Option {
	return func(o *worldOptions) { o.count = 0 }
}

// WithBounds sets the world rectangle. Hosts pass their window size so the
// walls match the visible area. Non-positive sizes are ignored.
func WithBounds(b Bounds) Option {
	return func(o *worldOptions) {
		if b.Width > 0 && b.Height > 0 {
			o.bounds = b
		}
	}
}

// WithLaunch spawns every body moving at LaunchVelocity instead of at rest.
func WithLaunch() Option {
	return func(o *worldOptions) { o.launch = true }
}

// WithRegistry uses registry instead of a fresh one, so hosts can register
// their own component types (inspector windows, for example) alongside
// the circle components.
func WithRegistry(registry *ecs.ComponentRegistry) Option {
	return func(o *worldOptions) { o.registry = registry }
}

// NewWorld creates a world of Width x Height (unless WithBounds says
// otherwise) with CircleCount bodies pending spawn.
func NewWorld(opts ...Option) *World {
	o := worldOptions{
		out:    os.Stdout,
		log:    zap.NewNop(),
		count:  CircleCount,
		bounds: Bounds{Width: Width, Height: Height},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rand == nil {
		o.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if o.registry == nil {
		o.registry = ecs.NewComponentRegistry()
	}
	RegisterComponents(o.registry)

	storage := ecs.NewStorage(o.registry)
	ecs.NewSingleton(storage, o.bounds)

	scheduler := ecs.NewScheduler(storage)
	scheduler.RegisterStartup(&SetupSystem{})
	if o.count > 0 {
		scheduler.RegisterStartup(&SpawnSystem{Count: o.count, Rand: o.rand, Out: o.out, Launch: o.launch})
	}
	scheduler.Register(&ForceSystem{})

	return &World{
		storage:   storage,
		scheduler: scheduler,
		bodies:    ecs.NewQuery[circleView](storage),
		log:       o.log.Named("world"),
	}
}

// Storage exposes the underlying storage to the host.
func (w *World) Storage() *ecs.Storage {
	return w.storage
}

// Scheduler exposes the scheduler so hosts can register extra systems.
func (w *World) Scheduler() *ecs.Scheduler {
	return w.scheduler
}

// Spawn adds a body directly, bypassing the command buffer.
func (w *World) Spawn(b Body) ecs.EntityId {
	return w.storage.Spawn(
		Transform{X: b.Position[0], Y: b.Position[1]},
		Velocity{X: b.Velocity[0], Y: b.Velocity[1]},
		Circle{},
	)
}

// Startup runs the startup stage once.
func (w *World) Startup() {
	if w.scheduler.Started() {
		return
	}
	w.scheduler.Startup()
	w.log.Debug("world started", zap.Int("bodies", w.Len()))
}

// Step runs one frame tick. dt is forwarded to systems but does not affect
// the force step.
func (w *World) Step(dt float64) {
	w.Startup()
	w.scheduler.Once(dt)
}

// Len returns the number of bodies.
func (w *World) Len() int {
	w.bodies.Execute()
	return w.bodies.Len()
}

// Bodies returns a snapshot of every body in sequence order.
func (w *World) Bodies() []Body {
	w.bodies.Execute()
	out := make([]Body, 0, w.bodies.Len())
	for b := range w.bodies.Values() {
		out = append(out, Body{
			Position: [2]float32{b.Transform.X, b.Transform.Y},
			Velocity: [2]float32{b.Velocity.X, b.Velocity.Y},
		})
	}
	return out
}

// Camera returns the camera singleton, or nil before startup.
func (w *World) Camera() *Camera {
	var cam *Camera
	if !w.storage.ReadSingleton(&cam) {
		return nil
	}
	return cam
}
