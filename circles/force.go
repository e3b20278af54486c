package circles

import (
	"math"

	"github.com/plus3/circles/ecs"
)

type circleView struct {
	*Transform
	*Velocity
	*Circle
}

// ForceSystem integrates the pairwise force law over all circles, once per
// tick. The frame delta is ignored: motion is per frame, not per second.
//
// Pairs are visited in sequence order and updated in place, so a body's
// state when paired with a later body already includes the kicks from its
// earlier pairs.
type ForceSystem struct {
	Bounds  ecs.Singleton[Bounds]
	Circles ecs.Query[circleView]
}

func (s *ForceSystem) Execute(frame *ecs.UpdateFrame) {
	bounds := s.Bounds.Get()
	if bounds == nil {
		return
	}
	halfW, halfH := bounds.HalfExtents()

	for a, b := range s.Circles.Pairs() {
		applyPair(a.Transform, a.Velocity, b.Transform, b.Velocity, halfW, halfH)
	}
}

// applyPair runs one pair iteration. Pairs at distance zero or at or beyond
// InteractionRadius are left untouched, boundary check included.
func applyPair(t1 *Transform, v1 *Velocity, t2 *Transform, v2 *Velocity, halfW, halfH float32) {
	dx := t1.X - t2.X
	dy := t1.Y - t2.Y
	d := float32(math.Sqrt(float64(dx*dx + dy*dy)))

	if d <= 0 || d >= InteractionRadius {
		return
	}

	k := GravitationalValue / d

	v1.X += k * dx * 0.5
	v1.Y += k * dy * 0.5
	t1.X += v1.X
	t1.Y += v1.Y

	v2.X += k * -dx * 0.5
	v2.Y += k * -dy * 0.5
	t2.X += v2.X
	t2.Y += v2.Y

	bounce(t1, v1, halfW, halfH)
	bounce(t2, v2, halfW, halfH)
}

// bounce negates each velocity component whose position is on or past a
// wall. Position is not clamped.
func bounce(t *Transform, v *Velocity, halfW, halfH float32) {
	if t.X <= -halfW || t.X >= halfW {
		v.X = -v.X
	}
	if t.Y <= -halfH || t.Y >= halfH {
		v.Y = -v.Y
	}
}
