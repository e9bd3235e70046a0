package scene

import (
	"errors"
	"fmt"
	"time"

	"github.com/plus3/puffin/ecs"
	"github.com/plus3/puffin/input"
	"github.com/plus3/puffin/logging"
	"go.uber.org/zap"
)

// Pipeline is what a scene needs to be initialized.
type Pipeline struct {
	Systems  []ecs.System
	Mouse    input.MouseProvider
	Keyboard input.KeyboardProvider
}

// PipelineFactory builds a fresh pipeline bound to bus. It is called once per
// scene shown.
type PipelineFactory func(bus *ecs.EventBus) (Pipeline, error)

// Director selects the active scene and at most one sub-scene. While a
// sub-scene is shown it alone receives updates and draws; the parent is
// suspended, not disposed.
//
// Transitions requested while a scene is updating are applied once that
// update returns.
type Director struct {
	factory PipelineFactory
	logger  *zap.Logger

	active   *Scene
	sub      *Scene
	updating bool
	pending  []func() error
}

func NewDirector(factory PipelineFactory, logger *zap.Logger) *Director {
	return &Director{factory: factory, logger: logging.OrNop(logger)}
}

// Active returns the main scene, or nil.
func (d *Director) Active() *Scene { return d.active }

// SubScene returns the scene shown over the main scene, or nil.
func (d *Director) SubScene() *Scene { return d.sub }

// Current returns the scene receiving updates and draws.
func (d *Director) Current() *Scene {
	if d.sub != nil {
		return d.sub
	}
	return d.active
}

// ShowScene replaces the main scene with s. The previous scene and any
// sub-scene are disposed, releasing their event buses.
func (d *Director) ShowScene(s *Scene) error {
	return d.transition(func() error {
		if d.sub != nil {
			d.sub.Dispose()
			d.sub = nil
		}
		if d.active != nil && d.active != s {
			d.active.Dispose()
			d.active = nil
		}
		if err := d.prepare(s); err != nil {
			return err
		}
		d.active = s
		d.logger.Info("scene shown", zap.Int("entities", len(s.entities)))
		return nil
	})
}

// ShowSubScene shows s over the main scene, disposing any previous
// sub-scene.
func (d *Director) ShowSubScene(s *Scene) error {
	return d.transition(func() error {
		if d.active == nil {
			return errors.New("scene: no active scene to show a sub-scene over")
		}
		if d.sub != nil && d.sub != s {
			d.sub.Dispose()
			d.sub = nil
		}
		if err := d.prepare(s); err != nil {
			return err
		}
		d.sub = s
		d.logger.Info("sub-scene shown")
		return nil
	})
}

// HideSubScene disposes the sub-scene and resumes the main scene.
func (d *Director) HideSubScene() error {
	return d.transition(func() error {
		if d.sub == nil {
			return nil
		}
		d.sub.Dispose()
		d.sub = nil
		d.logger.Info("sub-scene hidden")
		return nil
	})
}

func (d *Director) transition(fn func() error) error {
	if d.updating {
		d.pending = append(d.pending, fn)
		return nil
	}
	return fn()
}

func (d *Director) prepare(s *Scene) error {
	switch s.State() {
	case StateDisposed:
		return ErrDisposed
	case StateInitialized:
		s.director = d
		return nil
	}
	s.director = d

	bus := ecs.NewEventBus()
	pipeline, err := d.factory(bus)
	if err != nil {
		bus.Dispose()
		return fmt.Errorf("scene: build pipeline: %w", err)
	}
	return s.Initialize(bus, pipeline.Systems, pipeline.Mouse, pipeline.Keyboard)
}

// Update runs one frame of the current scene, then applies any transition
// requested during it.
func (d *Director) Update(elapsed time.Duration) error {
	current := d.Current()
	if current == nil {
		return nil
	}

	d.updating = true
	err := current.OnUpdate(elapsed)
	d.updating = false

	pending := d.pending
	d.pending = nil
	errs := []error{err}
	for _, fn := range pending {
		errs = append(errs, fn())
	}
	return errors.Join(errs...)
}

// Draw draws the current scene.
func (d *Director) Draw(elapsed time.Duration) error {
	current := d.Current()
	if current == nil {
		return nil
	}
	return current.OnDraw(elapsed)
}

// Dispose disposes the sub-scene and the main scene.
func (d *Director) Dispose() {
	if d.sub != nil {
		d.sub.Dispose()
		d.sub = nil
	}
	if d.active != nil {
		d.active.Dispose()
		d.active = nil
	}
	d.pending = nil
}
