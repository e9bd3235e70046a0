package ebiten

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/puffin/config"
	"github.com/plus3/puffin/drawing"
	"github.com/plus3/puffin/ecs"
	"github.com/plus3/puffin/ecs/systems"
	"github.com/plus3/puffin/logging"
	"github.com/plus3/puffin/scene"
	"go.uber.org/zap"
)

// Overlay is drawn over the game every frame, typically a debug UI.
type Overlay interface {
	Update(d *scene.Director, elapsed time.Duration)
	Draw(screen *ebiten.Image)
	Layout(width, height int)
}

type Option func(*Game)

func WithLogger(l *zap.Logger) Option {
	return func(g *Game) { g.logger = logging.OrNop(l) }
}

// WithAudio replaces the beep player. A nil player silences the game.
func WithAudio(p systems.AudioPlayer) Option {
	return func(g *Game) { g.audio = p }
}

func WithOverlay(o Overlay) Option {
	return func(g *Game) { g.overlay = o }
}

// Game implements ebiten.Game. Every tick advances the director's current
// scene by the configured tick duration; the first error returned by an
// update or a draw terminates the loop.
type Game struct {
	cfg      config.Config
	logger   *zap.Logger
	backend  *Backend
	keyboard *Keyboard
	audio    systems.AudioPlayer
	overlay  Overlay
	director *scene.Director

	elapsed time.Duration
	err     error
	quit    bool
}

func NewGame(cfg config.Config, opts ...Option) (*Game, error) {
	keyboard, err := NewKeyboard(cfg.Bindings())
	if err != nil {
		return nil, err
	}
	g := &Game{
		cfg:      cfg,
		logger:   logging.Nop(),
		backend:  NewBackend(cfg.FontDir),
		keyboard: keyboard,
		audio:    NewAudioPlayer(),
		elapsed:  cfg.TickDuration(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.director = scene.NewDirector(g.pipeline, g.logger)
	return g, nil
}

// Director returns the director used to show scenes.
func (g *Game) Director() *scene.Director { return g.director }

// Quit ends the loop after the current tick.
func (g *Game) Quit() { g.quit = true }

// pipeline builds the standard systems for one scene with its own surface.
func (g *Game) pipeline(bus *ecs.EventBus) (scene.Pipeline, error) {
	surface := drawing.NewSurface(bus, g.backend, drawing.Options{
		Width:              g.cfg.Game.Width,
		Height:             g.cfg.Game.Height,
		DefaultFont:        g.cfg.DefaultFont,
		DefaultFontSize:    g.cfg.DefaultFontSize,
		ShowCollisionAreas: g.cfg.ShowCollisionAreas,
		Logger:             g.logger,
	})
	mouse := NewMouse(func(x, y float64) (float64, float64) {
		return surface.ActiveTransform().Invert(x, y)
	})
	p := systems.Standard(bus, systems.StandardConfig{
		Mouse:    mouse,
		Keyboard: g.keyboard,
		Surface:  surface,
		Audio:    g.audio,
		Logger:   g.logger,
	})
	return scene.Pipeline{Systems: p.Systems(), Mouse: mouse, Keyboard: g.keyboard}, nil
}

func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	if g.quit {
		return ebiten.Termination
	}

	if err := g.director.Update(g.elapsed); err != nil {
		g.logger.Error("update failed", zap.Error(err))
		return err
	}
	if g.overlay != nil {
		g.overlay.Update(g.director, g.elapsed)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.backend.SetTarget(screen)
	if err := g.director.Draw(g.elapsed); err != nil && g.err == nil {
		g.logger.Error("draw failed", zap.Error(err))
		g.err = err
	}
	g.backend.SetTarget(nil)

	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.overlay != nil {
		g.overlay.Layout(g.cfg.Game.Width, g.cfg.Game.Height)
	}
	return g.cfg.Game.Width, g.cfg.Game.Height
}

// Run opens the window and blocks until the game ends. The director and the
// audio player are disposed on return.
func (g *Game) Run(first *scene.Scene) error {
	defer g.close()

	if err := g.director.ShowScene(first); err != nil {
		return err
	}

	ebiten.SetWindowSize(g.cfg.Window.Width, g.cfg.Window.Height)
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.cfg.TPS)

	g.logger.Info("starting game",
		zap.String("title", g.cfg.Title),
		zap.Int("width", g.cfg.Game.Width),
		zap.Int("height", g.cfg.Game.Height),
		zap.Int("tps", g.cfg.TPS),
	)
	return ebiten.RunGame(g)
}

func (g *Game) close() {
	g.director.Dispose()
	if p, ok := g.audio.(*AudioPlayer); ok {
		p.Close()
	}
}
