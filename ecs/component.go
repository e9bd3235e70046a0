package ecs

import "fmt"

// Kind identifies a component slot on an entity.
type Kind int

const (
	KindSprite Kind = iota
	KindColour
	KindTextLabel
	KindCollision
	KindCamera
	KindFourWayMovement
	KindVelocity
	KindMouse
	KindMouseOverlap
	KindKeyboard
	KindAudio
	KindTween
	kindCount
)

var kindNames = [kindCount]string{
	"Sprite",
	"Colour",
	"TextLabel",
	"Collision",
	"Camera",
	"FourWayMovement",
	"Velocity",
	"Mouse",
	"MouseOverlap",
	"Keyboard",
	"Audio",
	"Tween",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Component is an attribute bundle attached to a single entity. The set of
// components is closed; every implementation lives in this package.
type Component interface {
	Kind() Kind
	// Parent returns the entity the component is attached to, or nil.
	Parent() *Entity
	bind(e *Entity)
}

type parent struct {
	entity *Entity
}

func (p *parent) Parent() *Entity { return p.entity }
func (p *parent) bind(e *Entity)  { p.entity = e }

// bus returns the event bus of the owning entity's scene, if any.
func (p *parent) bus() *EventBus {
	if p.entity == nil {
		return nil
	}
	return p.entity.Bus()
}
