package ebiten_test

import (
	"github.com/plus3/puffin/config"
	"github.com/plus3/puffin/debugui"
	debugui_ebiten "github.com/plus3/puffin/debugui/ebiten"
	"github.com/plus3/puffin/ecs"
	host "github.com/plus3/puffin/host/ebiten"
	"github.com/plus3/puffin/scene"
)

func Example() {
	cfg := config.Default()

	// Create the ImGui context and the overlay windows
	overlay := debugui_ebiten.New(cfg.Title, cfg.Window.Width, cfg.Window.Height, debugui.New())

	game, err := host.NewGame(cfg, host.WithOverlay(overlay))
	if err != nil {
		panic(err)
	}

	s := scene.New()
	s.Add(ecs.NewEntity().Move(100, 100).Colour(0x3366FF, 32, 32).Collide(32, 32, true))

	// Run the game; the overlay is drawn on top of every frame
	if err := game.Run(s); err != nil {
		panic(err)
	}
}
