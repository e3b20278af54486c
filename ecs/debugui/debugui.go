// Package debugui is a Dear ImGui inspector for ECS worlds. Windows are
// entities carrying an ImguiItem; ImguiSystem queues their render functions
// so they draw after the frame's systems have run.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/circles/ecs"
)

// ImguiItem renders ImGui widgets once per frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState is a singleton that tells game systems whether ImGui
// currently owns the mouse or keyboard.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem refreshes ImguiInputState and defers every ImguiItem render
// to the end of the frame.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (s *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := s.InputState.Get(); state != nil {
		io := imgui.CurrentIO()
		state.WantCaptureMouse = io.WantCaptureMouse()
		state.WantCaptureKeyboard = io.WantCaptureKeyboard()
	}

	for item := range s.Items.Values() {
		if item.ImguiItem.Render != nil {
			frame.Commands.Defer(item.ImguiItem.Render)
		}
	}
}

// RegisterComponents registers the component types spawned by Spawn.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}

// Spawn adds the inspector windows to storage and creates the
// ImguiInputState singleton. historyFrames sizes the frame time graph.
func Spawn(storage *ecs.Storage, scheduler *ecs.Scheduler, historyFrames int) {
	ecs.NewSingleton(storage, ImguiInputState{})

	inspector := NewWorldInspector(storage)
	storage.Spawn(ImguiItem{Render: inspector.Render})

	perf := NewPerformanceWindow(storage, scheduler, historyFrames)
	storage.Spawn(ImguiItem{Render: perf.Render})
}
