package ecs

import (
	"slices"
	"sync/atomic"
	"time"
)

// EntityID uniquely identifies an entity for the lifetime of the process.
type EntityID uint64

var nextEntityID atomic.Uint64

// UpdateHandler is a per-frame callback registered on an entity.
type UpdateHandler func(e *Entity, elapsed time.Duration)

// PositionListener is notified after every call to Entity.Move.
type PositionListener func(x, y float64)

// Owner is the collection an entity currently belongs to, typically a scene.
type Owner interface {
	Bus() *EventBus
	Remove(e *Entity)
}

// Entity is a positioned game object holding at most one component of each
// Kind.
type Entity struct {
	id   EntityID
	ui   bool
	x, y float64

	// DrawColourBeforeSprite draws the colour rectangle underneath the sprite
	// instead of over it.
	DrawColourBeforeSprite bool

	components        [kindCount]Component
	positionListeners []PositionListener
	updateHandlers    []UpdateHandler
	owner             Owner
}

// NewEntity creates a world-space entity at the origin.
func NewEntity() *Entity {
	return &Entity{id: EntityID(nextEntityID.Add(1))}
}

// NewUIEntity creates an entity drawn in screen space, unaffected by the camera.
func NewUIEntity() *Entity {
	e := NewEntity()
	e.ui = true
	return e
}

func (e *Entity) ID() EntityID { return e.id }

// IsUI reports whether the entity renders in screen space.
func (e *Entity) IsUI() bool { return e.ui }

func (e *Entity) X() float64 { return e.x }
func (e *Entity) Y() float64 { return e.y }

// Move sets the absolute position and notifies every position listener, in
// registration order, even when the position is unchanged.
func (e *Entity) Move(x, y float64) *Entity {
	e.x, e.y = x, y
	for _, listener := range e.positionListeners {
		listener(x, y)
	}
	return e
}

// AddPositionChangeListener registers fn to be called after every Move.
func (e *Entity) AddPositionChangeListener(fn PositionListener) *Entity {
	e.positionListeners = append(e.positionListeners, fn)
	return e
}

// OnUpdate registers a per-frame handler.
func (e *Entity) OnUpdate(fn UpdateHandler) *Entity {
	e.updateHandlers = append(e.updateHandlers, fn)
	return e
}

// Update invokes the update handlers registered when the call started.
func (e *Entity) Update(elapsed time.Duration) {
	for _, fn := range slices.Clone(e.updateHandlers) {
		fn(e, elapsed)
	}
}

// Set attaches c, replacing any component of the same kind.
func (e *Entity) Set(c Component) *Entity {
	if old := e.components[c.Kind()]; old != nil {
		old.bind(nil)
	}
	c.bind(e)
	e.components[c.Kind()] = c
	return e
}

// Component returns the component of the given kind, or nil.
func (e *Entity) Component(kind Kind) Component {
	if kind < 0 || kind >= kindCount {
		return nil
	}
	return e.components[kind]
}

// Has reports whether a component of the given kind is attached.
func (e *Entity) Has(kind Kind) bool {
	return e.Component(kind) != nil
}

// RemoveComponent detaches the component of the given kind, if any.
func (e *Entity) RemoveComponent(kind Kind) {
	if c := e.Component(kind); c != nil {
		c.bind(nil)
		e.components[kind] = nil
	}
}

// Kinds returns the kinds of all attached components in Kind order.
func (e *Entity) Kinds() []Kind {
	var kinds []Kind
	for k, c := range e.components {
		if c != nil {
			kinds = append(kinds, Kind(k))
		}
	}
	return kinds
}

// Owner returns the collection the entity was added to, or nil.
func (e *Entity) Owner() Owner { return e.owner }

// SetOwner records the collection the entity belongs to. It is called by the
// owning scene on add and remove.
func (e *Entity) SetOwner(o Owner) { e.owner = o }

// Bus returns the event bus of the owning scene, or nil when unowned.
func (e *Entity) Bus() *EventBus {
	if e.owner == nil {
		return nil
	}
	return e.owner.Bus()
}

// Destroy removes the entity from its owner and releases every component and
// handler.
func (e *Entity) Destroy() {
	if e.owner != nil {
		e.owner.Remove(e)
	}
	for k := range e.components {
		e.RemoveComponent(Kind(k))
	}
	e.positionListeners = nil
	e.updateHandlers = nil
}

// Get returns the component of type T attached to e, or the zero value.
func Get[T Component](e *Entity) T {
	var zero T
	c, _ := e.components[zero.Kind()].(T)
	return c
}
