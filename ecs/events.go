package ecs

import "github.com/plus3/puffin/input"

// Signal is the closed set of event kinds carried by an EventBus.
type Signal int

const (
	SignalMouseClicked Signal = iota
	SignalMouseReleased
	SignalMouseEntered
	SignalMouseExited
	SignalActionPressed
	SignalActionReleased
	SignalOverlapped
	SignalOverlapEnded
	SignalLabelFontChanged
	SignalSpriteChanged
	SignalPlaySound
	SignalStopSound
	signalCount
)

// Event is a typed payload bound to exactly one Signal.
type Event interface {
	Signal() Signal
}

// MouseClicked fires when a mouse button goes down. Entity is nil for a click
// that hit no clickable area.
type MouseClicked struct {
	Entity *Entity
	X, Y   float64
	Button input.MouseButton
}

// MouseReleased fires when a mouse button goes up.
type MouseReleased struct {
	Entity *Entity
	X, Y   float64
	Button input.MouseButton
}

type MouseEntered struct{ Entity *Entity }
type MouseExited struct{ Entity *Entity }

type ActionPressed struct{ Action input.Action }
type ActionReleased struct{ Action input.Action }

// Overlapped fires every frame two colliders intersect.
type Overlapped struct{ A, B *Entity }

// OverlapEnded fires on the first frame two colliders stop intersecting.
type OverlapEnded struct{ A, B *Entity }

type LabelFontChanged struct{ Entity *Entity }
type SpriteChanged struct{ Entity *Entity }

type PlaySound struct {
	Entity *Entity
	Audio  *AudioComponent
}

type StopSound struct {
	Entity *Entity
	Audio  *AudioComponent
}

func (MouseClicked) Signal() Signal     { return SignalMouseClicked }
func (MouseReleased) Signal() Signal    { return SignalMouseReleased }
func (MouseEntered) Signal() Signal     { return SignalMouseEntered }
func (MouseExited) Signal() Signal      { return SignalMouseExited }
func (ActionPressed) Signal() Signal    { return SignalActionPressed }
func (ActionReleased) Signal() Signal   { return SignalActionReleased }
func (Overlapped) Signal() Signal       { return SignalOverlapped }
func (OverlapEnded) Signal() Signal     { return SignalOverlapEnded }
func (LabelFontChanged) Signal() Signal { return SignalLabelFontChanged }
func (SpriteChanged) Signal() Signal    { return SignalSpriteChanged }
func (PlaySound) Signal() Signal        { return SignalPlaySound }
func (StopSound) Signal() Signal        { return SignalStopSound }
