package ecs

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Colour attaches an opaque colour rectangle.
func (e *Entity) Colour(colour uint32, width, height float64) *Entity {
	return e.Set(&ColourComponent{Colour: colour, Width: width, Height: height, Alpha: 1})
}

// Image attaches a visible sprite drawn from fileName.
func (e *Entity) Image(fileName string) *Entity {
	return e.Set(&SpriteComponent{FileName: fileName, IsVisible: true})
}

// Spritesheet attaches a sprite showing frame index of a sheet cut into
// frameWidth x frameHeight cells.
func (e *Entity) Spritesheet(fileName string, frameWidth, frameHeight, index int) *Entity {
	return e.Set(&SpriteComponent{
		FileName:    fileName,
		IsVisible:   true,
		FrameWidth:  frameWidth,
		FrameHeight: frameHeight,
		FrameIndex:  index,
	})
}

// Label attaches white text in the default font.
func (e *Entity) Label(text string) *Entity {
	return e.Set(&TextLabelComponent{Text: text, Colour: 0xFFFFFF})
}

// Collide attaches a collision box of the given size at the entity position.
func (e *Entity) Collide(width, height float64, solid bool) *Entity {
	return e.Set(&CollisionComponent{Width: width, Height: height, IsSolid: solid})
}

func (e *Entity) Camera(zoom float64) *Entity {
	return e.Set(&CameraComponent{Zoom: zoom})
}

func (e *Entity) FourWayMovement(speed float64) *Entity {
	return e.Set(&FourWayMovementComponent{Speed: speed})
}

func (e *Entity) Velocity(x, y float64) *Entity {
	return e.Set(&VelocityComponent{X: x, Y: y})
}

// Mouse makes a width x height area at the entity position clickable.
func (e *Entity) Mouse(width, height float64, onClick MouseHandler) *Entity {
	return e.Set(&MouseComponent{Area: Area{Width: width, Height: height}, OnClick: onClick})
}

// MouseOverlap reports the pointer entering and leaving a width x height area.
func (e *Entity) MouseOverlap(width, height float64, onEnter, onExit func(*Entity)) *Entity {
	return e.Set(&MouseOverlapComponent{
		Area:    Area{Width: width, Height: height},
		OnEnter: onEnter,
		OnExit:  onExit,
	})
}

func (e *Entity) Keyboard(onPressed, onReleased ActionHandler) *Entity {
	return e.Set(&KeyboardComponent{OnActionPressed: onPressed, OnActionReleased: onReleased})
}

func (e *Entity) Audio(fileName string) *Entity {
	return e.Set(&AudioComponent{FileName: fileName, Volume: 1, Pitch: 1})
}

// TweenTo moves the entity from its current position to (x, y) over
// duration. A nil fn eases linearly.
func (e *Entity) TweenTo(x, y float64, duration time.Duration, fn ease.TweenFunc) *Entity {
	if fn == nil {
		fn = ease.Linear
	}
	seconds := float32(duration.Seconds())
	return e.Set(&TweenComponent{
		X: gween.New(float32(e.x), float32(x), seconds, fn),
		Y: gween.New(float32(e.y), float32(y), seconds, fn),
	})
}
