// Package circles is a toy N-body world: a fixed number of circles are
// scattered across the window and pushed around by a pairwise force law
// every frame, bouncing off the window edges.
package circles

import (
	"math"

	"github.com/plus3/circles/ecs"
)

const (
	Width        float32 = 1280.0
	Height       float32 = 720.0
	CircleRadius float32 = 10.0
	CircleCount          = 10

	GravitationalValue float32 = -1.0
	InteractionRadius  float32 = 200.0

	BallSpeed float32 = 400.0
)

// InitialBallDirection is the launch direction used by LaunchVelocity.
var InitialBallDirection = [2]float32{0.5, -0.5}

// Transform is a body's position in world units. The origin is the centre
// of the window and y points up.
type Transform struct {
	X, Y float32
}

// Velocity is added to Transform once per interacting pair per frame.
type Velocity struct {
	X, Y float32
}

// Circle marks entities that take part in the force step.
type Circle struct{}

// Bounds is the world rectangle [-Width/2, Width/2] x [-Height/2, Height/2].
type Bounds struct {
	Width, Height float32
}

// HalfExtents returns half the width and half the height.
func (b Bounds) HalfExtents() (float32, float32) {
	return b.Width / 2, b.Height / 2
}

// Camera maps world units to screen pixels.
type Camera struct {
	X, Y    float32
	Zoom    float32
	ScreenW int
	ScreenH int
}

// WorldToScreen converts a world position to pixel coordinates.
func (c *Camera) WorldToScreen(x, y float32) (float32, float32) {
	sx := (x-c.X)*c.Zoom + float32(c.ScreenW)/2
	sy := float32(c.ScreenH)/2 - (y-c.Y)*c.Zoom
	return sx, sy
}

// Body is the flat value form of a circle entity.
type Body struct {
	Position [2]float32
	Velocity [2]float32
}

// LaunchVelocity is InitialBallDirection normalized and scaled to
// BallSpeed. Spawned bodies start at rest unless the world is built
// WithLaunch.
func LaunchVelocity() [2]float32 {
	dx, dy := InitialBallDirection[0], InitialBallDirection[1]
	n := float32(math.Hypot(float64(dx), float64(dy)))
	return [2]float32{dx / n * BallSpeed, dy / n * BallSpeed}
}

// RegisterComponents registers every component type of this package.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Circle](registry)
}
