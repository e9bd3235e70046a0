package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/plus3/puffin/config"
	"github.com/plus3/puffin/debugui"
	debugui_ebiten "github.com/plus3/puffin/debugui/ebiten"
	"github.com/plus3/puffin/ecs"
	host "github.com/plus3/puffin/host/ebiten"
	"github.com/plus3/puffin/input"
	"github.com/plus3/puffin/logging"
	"github.com/plus3/puffin/scene"
	"github.com/plus3/puffin/tiles"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML game configuration.")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	if _, ok := cfg.Keys[actionQuit]; !ok {
		if cfg.Keys == nil {
			cfg.Keys = make(map[input.Action][]string)
		}
		cfg.Keys[actionQuit] = []string{"Escape"}
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	opts := []host.Option{host.WithLogger(logger)}
	if cfg.DebugOverlay {
		overlay := debugui_ebiten.New(cfg.Title, cfg.Window.Width, cfg.Window.Height, debugui.New())
		opts = append(opts, host.WithOverlay(overlay))
	}

	game, err := host.NewGame(cfg, opts...)
	if err != nil {
		logger.Fatal("create game", zap.Error(err))
	}

	if err := game.Run(newWorld(game)); err != nil {
		logger.Fatal("game exited", zap.Error(err))
	}
}

// newWorld builds a walled room with a player, a drifting crate and a pause
// button that opens a sub-scene.
func newWorld(game *host.Game) *scene.Scene {
	s := scene.New()
	s.BackgroundColour = 0x202030

	room := tiles.New(30, 17, "Content/Images/tiles.png", 32, 32)
	room.Define("floor", 0, 0, false)
	room.Define("wall", 1, 0, true)
	room.Fill("floor")
	for x := range room.MapWidth() {
		room.Set(x, 0, "wall")
		room.Set(x, room.MapHeight()-1, "wall")
	}
	for y := range room.MapHeight() {
		room.Set(0, y, "wall")
		room.Set(room.MapWidth()-1, y, "wall")
	}
	s.AddTileMap(room)

	bump := ecs.NewEntity().Audio("Content/Audio/bump.wav")

	player := ecs.NewEntity().
		Move(96, 96).
		Image("Content/Images/player.png").
		Collide(32, 32, true).
		FourWayMovement(150).
		Camera(1.5)
	ecs.Get[*ecs.CameraComponent](player).Follow = true
	ecs.Get[*ecs.CollisionComponent](player).OnOverlapStart = func(_, _ *ecs.Entity) {
		ecs.Get[*ecs.AudioComponent](bump).Play()
	}

	crate := ecs.NewEntity().
		Move(320, 160).
		Colour(0xAA7744, 32, 32).
		Collide(32, 32, true).
		TweenTo(320, 400, 3*time.Second, ease.InOutQuad)

	score := 0
	hud := ecs.NewUIEntity().Move(12, 12).Label("Clicks: 0")
	ecs.Get[*ecs.TextLabelComponent](hud).OutlineThickness = 2

	pause := ecs.NewUIEntity().
		Move(12, 48).
		Colour(0x446688, 96, 28).
		Label("Pause").
		Mouse(96, 28, func(*ecs.Entity, float64, float64) {
			if err := s.ShowSubScene(newPauseMenu()); err != nil {
				game.Quit()
			}
		})

	s.Add(bump)
	s.Add(player)
	s.Add(crate)
	s.Add(hud)
	s.Add(pause)

	s.OnMouseClick(func(ev ecs.MouseClicked) {
		score++
		ecs.Get[*ecs.TextLabelComponent](hud).Text = fmt.Sprintf("Clicks: %d", score)
	})
	s.AddUpdateHandler(func(s *scene.Scene, _ time.Duration) {
		if s.IsActionDown(actionQuit) {
			game.Quit()
		}
	})
	return s
}

const actionQuit input.Action = "quit"

func newPauseMenu() *scene.Scene {
	menu := scene.New()
	menu.BackgroundColour = 0x101010
	menu.Add(ecs.NewUIEntity().
		Move(200, 200).
		Label("Paused - click to resume").
		Mouse(400, 40, func(*ecs.Entity, float64, float64) {
			_ = menu.HideSubScene()
		}))
	return menu
}
