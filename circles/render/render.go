// Package render draws the circle world with ebiten.
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/plus3/circles/circles"
	"github.com/plus3/circles/ecs"
)

// Palette holds the colours and sizes used for drawing.
type Palette struct {
	Circle     color.RGBA
	Background color.RGBA
	Radius     float32
}

// DefaultPalette is purple circles on a dark grey background.
func DefaultPalette() Palette {
	return Palette{
		Circle:     colornames.Purple,
		Background: color.RGBA{40, 40, 40, 255},
		Radius:     circles.CircleRadius,
	}
}

// Screen is a singleton pointing at the image being drawn this frame.
type Screen struct {
	Image *ebiten.Image
}

// RenderSystem draws every circle through the camera. It runs in its own
// scheduler from ebiten's Draw so that drawing never advances the world.
type RenderSystem struct {
	Camera  ecs.Singleton[circles.Camera]
	Screen  ecs.Singleton[Screen]
	Circles ecs.Query[struct {
		*circles.Transform
		*circles.Circle
	}]

	Palette Palette
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Screen.Get()
	camera := s.Camera.Get()
	if screen == nil || screen.Image == nil || camera == nil {
		return
	}

	screen.Image.Fill(s.Palette.Background)

	radius := s.Palette.Radius * camera.Zoom
	for c := range s.Circles.Values() {
		sx, sy := camera.WorldToScreen(c.Transform.X, c.Transform.Y)
		vector.DrawFilledCircle(screen.Image, sx, sy, radius, s.Palette.Circle, true)
	}
}
