// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	"time"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/puffin/debugui"
	"github.com/plus3/puffin/scene"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation
// and renders a debugui.Overlay for the director's current scene. It
// satisfies the host's overlay interface.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
	Overlay *debugui.Overlay
}

// New creates the ImGui context for a window of the given size.
func New(title string, width, height int, overlay *debugui.Overlay) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: backend, Overlay: overlay}
}

func (b *ImguiBackend) Update(d *scene.Director, elapsed time.Duration) {
	b.BeginFrame()
	b.Overlay.Render(d.Current(), elapsed)
	b.EndFrame()
}

func (b *ImguiBackend) Draw(screen *ebiten.Image) { b.EbitenBackend.Draw(screen) }

func (b *ImguiBackend) Layout(width, height int) { b.EbitenBackend.Layout(width, height) }
