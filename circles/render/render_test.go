package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/circles/circles"
	"github.com/plus3/circles/ecs"
)

func TestDefaultPalette(t *testing.T) {
	p := DefaultPalette()
	assert.Equal(t, color.RGBA{0x80, 0x00, 0x80, 0xff}, p.Circle)
	assert.Equal(t, color.RGBA{40, 40, 40, 255}, p.Background)
	assert.Equal(t, circles.CircleRadius, p.Radius)
}

func TestRenderSystemWithoutScreen(t *testing.T) {
	world := circles.NewWorld(circles.WithSeed(1), circles.WithDiagnostics(nil))
	world.Startup()

	scheduler := ecs.NewScheduler(world.Storage())
	scheduler.Register(&RenderSystem{Palette: DefaultPalette()})

	// no Screen singleton yet: drawing is skipped
	assert.NotPanics(t, func() { scheduler.Once(0) })
}
