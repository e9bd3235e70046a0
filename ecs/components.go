package ecs

import (
	"github.com/plus3/puffin/geom"
	"github.com/plus3/puffin/input"
	"github.com/tanema/gween"
)

// SpriteComponent draws an image, or one frame of a spritesheet, at the
// entity position.
type SpriteComponent struct {
	parent
	FileName  string
	OffsetX   float64
	OffsetY   float64
	IsVisible bool

	// Width and Height are filled in from the texture on first draw.
	Width  float64
	Height float64

	// FrameWidth and FrameHeight are the spritesheet cell size; zero draws the
	// whole image.
	FrameWidth  int
	FrameHeight int
	FrameIndex  int
}

func (*SpriteComponent) Kind() Kind { return KindSprite }

// IsSpritesheet reports whether the sprite draws a single frame.
func (s *SpriteComponent) IsSpritesheet() bool {
	return s.FrameWidth > 0 && s.FrameHeight > 0
}

// SetImage replaces the image file and invalidates any cached texture.
func (s *SpriteComponent) SetImage(fileName string) {
	s.FileName = fileName
	Publish(s.bus(), SpriteChanged{Entity: s.entity})
}

// ColourComponent fills a rectangle with a packed 0xRRGGBB colour.
type ColourComponent struct {
	parent
	Colour  uint32
	Width   float64
	Height  float64
	OffsetX float64
	OffsetY float64
	// Alpha is in [0, 1].
	Alpha float64
}

func (*ColourComponent) Kind() Kind { return KindColour }

// Bounds returns the filled rectangle in the entity's coordinate space.
func (c *ColourComponent) Bounds() geom.Rect {
	return Area{Width: c.Width, Height: c.Height, OffsetX: c.OffsetX, OffsetY: c.OffsetY}.at(c.entity)
}

// TextLabelComponent draws text, optionally outlined and word-wrapped.
type TextLabelComponent struct {
	parent
	Text             string
	FontName         string
	FontSize         int
	Colour           uint32
	OutlineColour    uint32
	OutlineThickness float64
	OffsetX          float64
	OffsetY          float64
	// WordWrapWidth wraps lines narrower than this many pixels; zero disables
	// wrapping.
	WordWrapWidth float64
}

func (*TextLabelComponent) Kind() Kind { return KindTextLabel }

// SetFont replaces the font and invalidates any cached face.
func (t *TextLabelComponent) SetFont(name string, size int) {
	t.FontName = name
	t.FontSize = size
	Publish(t.bus(), LabelFontChanged{Entity: t.entity})
}

// OverlapHandler is called with the entity on each side of an overlap.
type OverlapHandler func(self, other *Entity)

// CollisionComponent is an axis-aligned box relative to the entity position.
type CollisionComponent struct {
	parent
	Width   float64
	Height  float64
	XOffset float64
	YOffset float64
	// IsSolid colliders are pushed apart instead of passing through.
	IsSolid bool

	OnOverlapStart OverlapHandler
	OnOverlapEnd   OverlapHandler
}

func (*CollisionComponent) Kind() Kind { return KindCollision }

// Bounds returns the box in world coordinates.
func (c *CollisionComponent) Bounds() geom.Rect {
	var x, y float64
	if c.entity != nil {
		x, y = c.entity.X(), c.entity.Y()
	}
	return geom.Rect{X: x + c.XOffset, Y: y + c.YOffset, Width: c.Width, Height: c.Height}
}

// CameraComponent scales the world pass. With Follow set the view is centred
// on the entity, otherwise the entity position is the top-left of the view.
type CameraComponent struct {
	parent
	Zoom   float64
	Follow bool
}

func (*CameraComponent) Kind() Kind { return KindCamera }

// FourWayMovementComponent moves the entity at Speed pixels per second in the
// direction of the held movement actions.
type FourWayMovementComponent struct {
	parent
	Speed float64
}

func (*FourWayMovementComponent) Kind() Kind { return KindFourWayMovement }

// VelocityComponent moves the entity by (X, Y) pixels per second regardless of
// input.
type VelocityComponent struct {
	parent
	X float64
	Y float64
}

func (*VelocityComponent) Kind() Kind { return KindVelocity }

// Area is a rectangle relative to the entity position.
type Area struct {
	Width   float64
	Height  float64
	OffsetX float64
	OffsetY float64
}

func (a Area) at(e *Entity) geom.Rect {
	if e == nil {
		return geom.Rect{X: a.OffsetX, Y: a.OffsetY, Width: a.Width, Height: a.Height}
	}
	return geom.Rect{X: e.X() + a.OffsetX, Y: e.Y() + a.OffsetY, Width: a.Width, Height: a.Height}
}

// MouseHandler receives the pointer position the event fired at.
type MouseHandler func(e *Entity, x, y float64)

// MouseComponent makes an area of the entity clickable.
type MouseComponent struct {
	parent
	Area
	OnClick   MouseHandler
	OnRelease MouseHandler
}

func (*MouseComponent) Kind() Kind { return KindMouse }

// Bounds returns the clickable area in the entity's coordinate space.
func (m *MouseComponent) Bounds() geom.Rect { return m.Area.at(m.entity) }

// MouseOverlapComponent tracks the pointer entering and leaving an area.
type MouseOverlapComponent struct {
	parent
	Area
	OnEnter func(e *Entity)
	OnExit  func(e *Entity)
}

func (*MouseOverlapComponent) Kind() Kind { return KindMouseOverlap }

// Bounds returns the hover area in the entity's coordinate space.
func (m *MouseOverlapComponent) Bounds() geom.Rect { return m.Area.at(m.entity) }

// ActionHandler receives the logical action that changed state.
type ActionHandler func(e *Entity, action input.Action)

// KeyboardComponent subscribes an entity to action press and release edges.
type KeyboardComponent struct {
	parent
	OnActionPressed  ActionHandler
	OnActionReleased ActionHandler
}

func (*KeyboardComponent) Kind() Kind { return KindKeyboard }

// AudioComponent plays a sound file through the scene's audio system.
type AudioComponent struct {
	parent
	FileName string
	// Volume is a linear gain, 1 is unchanged.
	Volume float64
	// Pitch is a playback speed ratio, 1 is unchanged.
	Pitch float64
	Loop  bool
}

func (*AudioComponent) Kind() Kind { return KindAudio }

// Play queues the sound for playback on the next audio update.
func (a *AudioComponent) Play() {
	Publish(a.bus(), PlaySound{Entity: a.entity, Audio: a})
}

// Stop halts any playing instance of the sound.
func (a *AudioComponent) Stop() {
	Publish(a.bus(), StopSound{Entity: a.entity, Audio: a})
}

// TweenComponent moves the entity towards a target position over time.
type TweenComponent struct {
	parent
	X, Y       *gween.Tween
	OnComplete func(e *Entity)
	done       bool
}

func (*TweenComponent) Kind() Kind { return KindTween }

// Advance steps both tweens by seconds and returns the new position.
// finished is true once both tweens have completed.
func (t *TweenComponent) Advance(seconds float32) (x, y float64, finished bool) {
	if t.done {
		return t.entity.X(), t.entity.Y(), true
	}
	vx, doneX := t.X.Update(seconds)
	vy, doneY := t.Y.Update(seconds)
	t.done = doneX && doneY
	return float64(vx), float64(vy), t.done
}

// Done reports whether the tween has finished.
func (t *TweenComponent) Done() bool { return t.done }
