package circles

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/plus3/circles/ecs"
)

// SpawnSystem scatters Count circles across the bounds, at rest unless
// Launch is set. Each coordinate is an integer drawn uniformly from
// [-extent/2, extent/2) and then widened to float32. Every sample is
// reported on Out as "x -> X and y -> Y".
type SpawnSystem struct {
	Bounds ecs.Singleton[Bounds]

	Count int
	Rand  *rand.Rand
	Out   io.Writer

	// Launch starts every body at LaunchVelocity.
	Launch bool
}

func (s *SpawnSystem) Execute(frame *ecs.UpdateFrame) {
	bounds := s.Bounds.Get()
	halfW, halfH := int(bounds.Width/2), int(bounds.Height/2)

	for range s.Count {
		x := float32(s.Rand.IntN(2*halfW) - halfW)
		y := float32(s.Rand.IntN(2*halfH) - halfH)

		if s.Out != nil {
			fmt.Fprintf(s.Out, "x -> %v and y -> %v\n", x, y)
		}

		var v Velocity
		if s.Launch {
			lv := LaunchVelocity()
			v = Velocity{X: lv[0], Y: lv[1]}
		}

		frame.Commands.Spawn(Transform{X: x, Y: y}, v, Circle{})
	}
}

// SetupSystem adds the Camera singleton, centred on the world origin and
// sized to the bounds.
type SetupSystem struct {
	Bounds ecs.Singleton[Bounds]
}

func (s *SetupSystem) Execute(frame *ecs.UpdateFrame) {
	bounds := s.Bounds.Get()
	frame.Storage.AddSingleton(Camera{
		Zoom:    1,
		ScreenW: int(bounds.Width),
		ScreenH: int(bounds.Height),
	})
}
