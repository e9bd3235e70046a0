package systems

import (
	"github.com/plus3/puffin/drawing"
	"github.com/plus3/puffin/ecs"
	"github.com/plus3/puffin/input"
	"go.uber.org/zap"
)

// StandardConfig holds the collaborators of the standard pipeline.
type StandardConfig struct {
	Mouse    input.MouseProvider
	Keyboard input.KeyboardProvider
	Surface  *drawing.Surface
	Audio    AudioPlayer
	Logger   *zap.Logger
}

// Pipeline is the standard system list with typed access to each system.
type Pipeline struct {
	Movement     *MovementSystem
	Overlap      *OverlapSystem
	MouseOverlap *MouseOverlapSystem
	Mouse        *MouseSystem
	Keyboard     *KeyboardSystem
	Audio        *AudioSystem
	Drawing      *DrawingSystem
}

// Standard builds the default Puffin pipeline bound to bus.
func Standard(bus *ecs.EventBus, cfg StandardConfig) *Pipeline {
	var keyboard input.ActionChecker
	if cfg.Keyboard != nil {
		keyboard = cfg.Keyboard
	}
	return &Pipeline{
		Movement:     NewMovementSystem(keyboard),
		Overlap:      NewOverlapSystem(bus),
		MouseOverlap: NewMouseOverlapSystem(bus, cfg.Mouse),
		Mouse:        NewMouseSystem(bus, cfg.Mouse),
		Keyboard:     NewKeyboardSystem(bus, cfg.Keyboard),
		Audio:        NewAudioSystem(bus, cfg.Audio, cfg.Logger),
		Drawing:      NewDrawingSystem(cfg.Surface),
	}
}

// Systems returns the systems in execution order: movement, overlap, mouse
// overlap, mouse, keyboard, audio, drawing.
func (p *Pipeline) Systems() []ecs.System {
	return []ecs.System{
		p.Movement,
		p.Overlap,
		p.MouseOverlap,
		p.Mouse,
		p.Keyboard,
		p.Audio,
		p.Drawing,
	}
}
