package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/puffin/ecs/systems"
	"github.com/plus3/puffin/scene"
)

// PerformanceStats keeps a ring of recent frame times in milliseconds.
type PerformanceStats struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	recorded      int
}

func NewPerformanceStats(historyFrames int) *PerformanceStats {
	if historyFrames < 1 {
		historyFrames = 1
	}
	return &PerformanceStats{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// Record appends one frame time.
func (ps *PerformanceStats) Record(elapsed time.Duration) {
	ps.frameHistory[ps.frameIndex] = float32(elapsed.Seconds() * 1000.0)
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
	if ps.recorded < ps.historyFrames {
		ps.recorded++
	}
}

// AverageFrameTime returns the mean of the recorded frame times in
// milliseconds, or 0 before the first frame.
func (ps *PerformanceStats) AverageFrameTime() float32 {
	if ps.recorded == 0 {
		return 0
	}
	var total float32
	for _, ft := range ps.frameHistory {
		total += ft
	}
	return total / float32(ps.recorded)
}

func (ps *PerformanceStats) Render(s *scene.Scene, drawing *systems.DrawingSystem) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(300, 260), imgui.CondOnce)
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Scene: %s", s.State()))
	imgui.Text(fmt.Sprintf("Entities: %d", len(s.Entities())))
	imgui.Text(fmt.Sprintf("Tile Maps: %d", len(s.TileMaps())))
	imgui.Text(fmt.Sprintf("FPS: %.1f (%d draws)", s.Fps(), s.Draws()))

	avg := ps.AverageFrameTime()
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms", avg))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if drawing != nil {
		surface := drawing.Surface()
		imgui.Separator()
		imgui.Text(fmt.Sprintf("Sprites: %d  Fonts: %d  Tile Images: %d",
			surface.SpriteCount(), surface.FontCount(), surface.TileImageCount()))

		show := surface.ShowCollisionAreas()
		if imgui.Checkbox("Show Collision Areas", &show) {
			surface.SetShowCollisionAreas(show)
		}
	}

	imgui.End()
}
