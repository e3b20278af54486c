// Package ebiten hosts the debug UI on top of an ebiten game loop.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
)

// ImguiBackend wraps the cimgui-go ebiten backend. A nil or disabled
// backend turns every call into a no-op so hosts need not branch.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend

	Enabled bool
}

// NewImguiBackend creates the backend and the window it draws into. The
// ImGui ini file is disabled so no state is written to disk.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return &ImguiBackend{EbitenBackend: backend, Enabled: true}
}

func (b *ImguiBackend) active() bool {
	return b != nil && b.EbitenBackend != nil && b.Enabled
}

// BeginFrame starts an ImGui frame. Call from ebiten's Update before the
// systems that render ImGui widgets.
func (b *ImguiBackend) BeginFrame() {
	if b.active() {
		b.EbitenBackend.BeginFrame()
	}
}

// EndFrame finishes the ImGui frame started by BeginFrame.
func (b *ImguiBackend) EndFrame() {
	if b.active() {
		b.EbitenBackend.EndFrame()
	}
}

// Draw paints the overlay onto screen.
func (b *ImguiBackend) Draw(screen *ebiten.Image) {
	if b.active() {
		b.EbitenBackend.Draw(screen)
	}
}

// Layout forwards the window size to ImGui.
func (b *ImguiBackend) Layout(width, height int) {
	if b.active() {
		b.EbitenBackend.Layout(width, height)
	}
}
