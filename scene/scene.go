// Package scene owns the entity collection and system pipeline of one
// gameplay screen and drives it once per frame.
package scene

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/plus3/puffin/drawing"
	"github.com/plus3/puffin/ecs"
	"github.com/plus3/puffin/input"
	"github.com/plus3/puffin/logging"
	"github.com/plus3/puffin/tiles"
	"go.uber.org/zap"
)

var (
	ErrAlreadyInitialized = errors.New("scene: already initialized")
	ErrNotInitialized     = errors.New("scene: not initialized")
	ErrDisposed           = errors.New("scene: disposed")
	ErrNoDrawingSystem    = errors.New("scene: exactly one drawing system is required")
	ErrNoDirector         = errors.New("scene: not shown by a director")
	ErrNoBus              = errors.New("scene: an event bus is required")
)

// State is the lifecycle stage of a scene.
type State int

const (
	StateUninitialized State = iota
	StateInitialized
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitialized:
		return "initialized"
	case StateDisposed:
		return "disposed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Drawer is the system that renders the scene.
type Drawer interface {
	OnDraw(elapsed time.Duration, bg drawing.Background) error
}

// TileMapSystem is implemented by systems that care about tile maps.
type TileMapSystem interface {
	OnAddTileMap(m *tiles.TileMap)
	OnRemoveTileMap(m *tiles.TileMap)
}

// Disposer is implemented by systems holding resources beyond the scene.
type Disposer interface {
	Dispose()
}

// UpdateHandler runs once per frame after every system and entity update.
type UpdateHandler func(s *Scene, elapsed time.Duration)

// Option configures a Scene.
type Option func(*Scene)

// WithLogger sets the logger used for lifecycle and fps messages.
func WithLogger(l *zap.Logger) Option {
	return func(s *Scene) { s.logger = logging.OrNop(l) }
}

// WithClock replaces time.Now for fps sampling.
func WithClock(now func() time.Time) Option {
	return func(s *Scene) { s.now = now }
}

// Scene holds the entities, tile maps and systems of one screen.
type Scene struct {
	BackgroundColour uint32
	BackgroundImage  string

	state     State
	bus       *ecs.EventBus
	scheduler *ecs.Scheduler
	drawer    Drawer
	mouse     input.MouseProvider
	keyboard  input.KeyboardProvider
	director  *Director

	entities []*ecs.Entity
	tileMaps []*tiles.TileMap

	updateHandlers []UpdateHandler
	readyHandlers  []func(s *Scene)
	clickHandlers  []func(ev ecs.MouseClicked)
	subs           []ecs.Subscription

	frame *ecs.UpdateFrame

	now         func() time.Time
	windowStart time.Time
	draws       int
	totalDraws  int64
	fps         float64

	logger *zap.Logger
}

var _ ecs.Owner = (*Scene)(nil)

func New(opts ...Option) *Scene {
	s := &Scene{
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize attaches the pipeline and replays every entity and tile map
// added so far to every system, exactly once. Exactly one system must
// implement Drawer. The bus must be the one the systems publish to.
func (s *Scene) Initialize(bus *ecs.EventBus, systems []ecs.System, mouse input.MouseProvider, keyboard input.KeyboardProvider) error {
	switch s.state {
	case StateInitialized:
		return ErrAlreadyInitialized
	case StateDisposed:
		return ErrDisposed
	}
	if bus == nil {
		return ErrNoBus
	}

	var drawers []Drawer
	for _, system := range systems {
		if d, ok := system.(Drawer); ok {
			drawers = append(drawers, d)
		}
	}
	if len(drawers) != 1 {
		return fmt.Errorf("%w: found %d", ErrNoDrawingSystem, len(drawers))
	}

	s.bus = bus
	s.drawer = drawers[0]
	s.mouse = mouse
	s.keyboard = keyboard
	s.scheduler = ecs.NewScheduler(systems...)
	s.scheduler.Seal()
	s.subs = append(s.subs, ecs.Subscribe(bus, func(ev ecs.MouseClicked) {
		for _, fn := range slices.Clone(s.clickHandlers) {
			fn(ev)
		}
	}))
	s.state = StateInitialized

	for _, e := range s.entities {
		s.attach(e)
	}
	for _, m := range s.tileMaps {
		s.attachTileMap(m)
	}

	s.windowStart = s.now()
	s.logger.Info("scene initialized",
		zap.Int("systems", len(systems)),
		zap.Int("entities", len(s.entities)),
		zap.Int("tilemaps", len(s.tileMaps)))

	for _, fn := range s.readyHandlers {
		fn(s)
	}
	s.readyHandlers = nil
	return nil
}

func (s *Scene) State() State { return s.state }

// Bus returns the scene's event bus, or nil before Initialize.
func (s *Scene) Bus() *ecs.EventBus { return s.bus }

// Add puts e in the scene. An entity owned by another scene is removed from
// it first. During an update the addition is applied when the update ends.
func (s *Scene) Add(e *ecs.Entity) {
	if s.state == StateDisposed {
		return
	}
	if s.frame != nil {
		s.frame.Commands.Add(e)
		return
	}
	if slices.Contains(s.entities, e) {
		return
	}
	if owner := e.Owner(); owner != nil && owner != ecs.Owner(s) {
		owner.Remove(e)
	}

	s.entities = append(s.entities, e)
	e.SetOwner(s)
	if s.state == StateInitialized {
		s.attach(e)
	}
}

// Remove takes e out of the scene and detaches it from every system.
// During an update the removal is applied when the update ends.
func (s *Scene) Remove(e *ecs.Entity) {
	if s.frame != nil {
		s.frame.Commands.Remove(e)
		return
	}
	i := slices.Index(s.entities, e)
	if i < 0 {
		return
	}
	s.entities = slices.Delete(s.entities, i, i+1)
	// a deferred removal may run after another scene took e over
	if e.Owner() == ecs.Owner(s) {
		e.SetOwner(nil)
	}
	if s.state == StateInitialized {
		for _, system := range s.scheduler.Systems() {
			system.OnRemoveEntity(e)
		}
	}
}

// AddTileMap puts m in the scene.
func (s *Scene) AddTileMap(m *tiles.TileMap) {
	if s.state == StateDisposed {
		return
	}
	if s.frame != nil {
		s.frame.Commands.Defer(func() { s.AddTileMap(m) })
		return
	}
	if slices.Contains(s.tileMaps, m) {
		return
	}
	s.tileMaps = append(s.tileMaps, m)
	if s.state == StateInitialized {
		s.attachTileMap(m)
	}
}

// RemoveTileMap takes m out of the scene and releases its resources.
func (s *Scene) RemoveTileMap(m *tiles.TileMap) {
	if s.frame != nil {
		s.frame.Commands.Defer(func() { s.RemoveTileMap(m) })
		return
	}
	i := slices.Index(s.tileMaps, m)
	if i < 0 {
		return
	}
	s.tileMaps = slices.Delete(s.tileMaps, i, i+1)
	if s.state == StateInitialized {
		for _, system := range s.scheduler.Systems() {
			if ts, ok := system.(TileMapSystem); ok {
				ts.OnRemoveTileMap(m)
			}
		}
	}
}

func (s *Scene) attach(e *ecs.Entity) {
	for _, system := range s.scheduler.Systems() {
		system.OnAddEntity(e)
	}
}

func (s *Scene) attachTileMap(m *tiles.TileMap) {
	for _, system := range s.scheduler.Systems() {
		if ts, ok := system.(TileMapSystem); ok {
			ts.OnAddTileMap(m)
		}
	}
}

// Entities returns the entities in insertion order.
func (s *Scene) Entities() []*ecs.Entity { return slices.Clone(s.entities) }

// TileMaps returns the tile maps in insertion order.
func (s *Scene) TileMaps() []*tiles.TileMap { return slices.Clone(s.tileMaps) }

// Systems returns the pipeline, or nil before Initialize.
func (s *Scene) Systems() []ecs.System {
	if s.scheduler == nil {
		return nil
	}
	return s.scheduler.Systems()
}

// Stats returns per-system timings, or nil before Initialize.
func (s *Scene) Stats() *ecs.SchedulerStats {
	if s.scheduler == nil {
		return nil
	}
	return s.scheduler.Stats()
}

// AddUpdateHandler registers fn to run at the end of every update.
func (s *Scene) AddUpdateHandler(fn UpdateHandler) {
	s.updateHandlers = append(s.updateHandlers, fn)
}

// OnReady registers fn to run once, right after Initialize. On an already
// initialized scene fn runs immediately.
func (s *Scene) OnReady(fn func(s *Scene)) {
	if s.state == StateInitialized {
		fn(s)
		return
	}
	s.readyHandlers = append(s.readyHandlers, fn)
}

// OnMouseClick registers fn for every mouse click in the scene.
func (s *Scene) OnMouseClick(fn func(ev ecs.MouseClicked)) {
	s.clickHandlers = append(s.clickHandlers, fn)
}

// IsActionDown reports whether any key bound to action is held.
func (s *Scene) IsActionDown(action input.Action) bool {
	if s.keyboard == nil {
		return false
	}
	return s.keyboard.IsActionDown(action)
}

// MouseCoordinates returns the pointer position in screen space.
func (s *Scene) MouseCoordinates() (x, y float64) {
	if s.mouse == nil {
		return 0, 0
	}
	return s.mouse.Coordinates()
}

// OnUpdate runs one frame: every system in order, then every entity's update
// handlers, then the scene's. Adds and removes made during the frame are
// applied afterwards.
func (s *Scene) OnUpdate(elapsed time.Duration) error {
	if err := s.checkActive(); err != nil {
		return err
	}

	if s.mouse != nil {
		s.mouse.Update()
	}
	if s.keyboard != nil {
		s.keyboard.Update()
	}

	frame := ecs.NewUpdateFrame(elapsed)
	s.frame = frame

	err := s.scheduler.Once(frame)
	if err == nil {
		for _, e := range slices.Clone(s.entities) {
			e.Update(elapsed)
		}
		for _, fn := range slices.Clone(s.updateHandlers) {
			fn(s, elapsed)
		}
	}

	s.frame = nil
	frame.Commands.Flush(s)

	if err != nil {
		return fmt.Errorf("scene update: %w", err)
	}
	return nil
}

// OnDraw draws one frame and samples the draw rate.
func (s *Scene) OnDraw(elapsed time.Duration) error {
	if err := s.checkActive(); err != nil {
		return err
	}

	err := s.drawer.OnDraw(elapsed, drawing.Background{
		Colour: s.BackgroundColour,
		Image:  s.BackgroundImage,
	})
	if err != nil {
		return fmt.Errorf("scene draw: %w", err)
	}

	s.draws++
	s.totalDraws++
	now := s.now()
	if window := now.Sub(s.windowStart); window >= time.Second {
		s.fps = float64(s.draws) / window.Seconds()
		s.draws = 0
		s.windowStart = now
		s.logger.Debug("scene fps", zap.Float64("fps", s.fps))
	}
	return nil
}

// Fps returns the draw rate measured over the last full one second window.
func (s *Scene) Fps() float64 { return s.fps }

// Draws returns the number of frames drawn.
func (s *Scene) Draws() int64 { return s.totalDraws }

// ShowSubScene displays sub over this scene through the owning director.
func (s *Scene) ShowSubScene(sub *Scene) error {
	if s.director == nil {
		return ErrNoDirector
	}
	return s.director.ShowSubScene(sub)
}

// HideSubScene closes the sub-scene shown over this scene.
func (s *Scene) HideSubScene() error {
	if s.director == nil {
		return ErrNoDirector
	}
	return s.director.HideSubScene()
}

// Dispose detaches every entity and tile map from the systems, releases the
// systems' resources and disposes the event bus. Disposing twice is harmless.
func (s *Scene) Dispose() {
	if s.state == StateDisposed {
		return
	}

	if s.state == StateInitialized {
		systems := s.scheduler.Systems()
		for _, e := range s.entities {
			for _, system := range systems {
				system.OnRemoveEntity(e)
			}
		}
		for _, m := range s.tileMaps {
			for _, system := range systems {
				if ts, ok := system.(TileMapSystem); ok {
					ts.OnRemoveTileMap(m)
				}
			}
		}
		for _, system := range systems {
			if d, ok := system.(Disposer); ok {
				d.Dispose()
			}
		}
		for _, sub := range s.subs {
			sub.Cancel()
		}
		s.bus.Dispose()
	}

	for _, e := range s.entities {
		e.SetOwner(nil)
	}
	s.entities = nil
	s.tileMaps = nil
	s.subs = nil
	s.updateHandlers = nil
	s.clickHandlers = nil
	s.readyHandlers = nil
	s.state = StateDisposed
	s.logger.Info("scene disposed")
}

func (s *Scene) checkActive() error {
	switch s.state {
	case StateUninitialized:
		return ErrNotInitialized
	case StateDisposed:
		return ErrDisposed
	}
	return nil
}
