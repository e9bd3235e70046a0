// Package debugui renders a Dear ImGui overlay for a running scene: frame
// timings, per-system durations, an entity browser and a component
// inspector.
package debugui

import (
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/puffin/ecs/systems"
	"github.com/plus3/puffin/scene"
)

// InputState tracks whether ImGui is consuming the pointer or the keyboard.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay groups the debug windows. Render must be called between the ImGui
// backend's BeginFrame and EndFrame.
type Overlay struct {
	Performance *PerformanceStats
	Systems     *SystemTimings
	Entities    *EntityBrowser
	Inspector   *ComponentInspector
	Input       InputState

	// Visible hides every window when false.
	Visible bool
}

func New() *Overlay {
	return &Overlay{
		Performance: NewPerformanceStats(120),
		Systems:     &SystemTimings{},
		Entities:    NewEntityBrowser(100),
		Inspector:   &ComponentInspector{},
		Visible:     true,
	}
}

// Render draws every window for s. A nil scene renders nothing.
func (o *Overlay) Render(s *scene.Scene, elapsed time.Duration) {
	io := imgui.CurrentIO()
	o.Input.WantCaptureMouse = io.WantCaptureMouse()
	o.Input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	o.Performance.Record(elapsed)
	if s == nil || !o.Visible {
		return
	}

	o.Performance.Render(s, drawingSystem(s))
	o.Systems.Render(s.Stats())
	o.Entities.Render(s.Entities())
	o.Inspector.Render(o.Entities.Selected())
}

func drawingSystem(s *scene.Scene) *systems.DrawingSystem {
	for _, sys := range s.Systems() {
		if d, ok := sys.(*systems.DrawingSystem); ok {
			return d
		}
	}
	return nil
}
