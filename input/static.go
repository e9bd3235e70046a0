package input

import (
	"maps"
	"slices"
)

// StaticMouse is a MouseProvider whose state is set directly. It backs
// headless runs and tests.
type StaticMouse struct {
	X, Y           float64
	WorldX, WorldY float64
	// WorldSet makes WorldCoordinates report WorldX/WorldY instead of X/Y.
	WorldSet bool
	Buttons  map[MouseButton]bool
}

var _ MouseProvider = (*StaticMouse)(nil)

// MoveTo places the pointer at (x, y) in both game and world space.
func (m *StaticMouse) MoveTo(x, y float64) {
	m.X, m.Y = x, y
	m.WorldSet = false
}

// Press holds the button down.
func (m *StaticMouse) Press(button MouseButton) {
	if m.Buttons == nil {
		m.Buttons = make(map[MouseButton]bool)
	}
	m.Buttons[button] = true
}

// Release lets go of the button.
func (m *StaticMouse) Release(button MouseButton) {
	delete(m.Buttons, button)
}

func (m *StaticMouse) Update() {}

func (m *StaticMouse) Coordinates() (float64, float64) {
	return m.X, m.Y
}

func (m *StaticMouse) WorldCoordinates() (float64, float64) {
	if m.WorldSet {
		return m.WorldX, m.WorldY
	}
	return m.X, m.Y
}

func (m *StaticMouse) IsButtonDown(button MouseButton) bool {
	return m.Buttons[button]
}

// StaticKeyboard is a KeyboardProvider driven by explicit Press/Release calls.
type StaticKeyboard struct {
	bindings Bindings
	down     map[Action]bool
}

var _ KeyboardProvider = (*StaticKeyboard)(nil)

// NewStaticKeyboard creates a keyboard that knows the actions in bindings.
// A nil bindings value uses DefaultBindings.
func NewStaticKeyboard(bindings Bindings) *StaticKeyboard {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	return &StaticKeyboard{
		bindings: bindings,
		down:     make(map[Action]bool),
	}
}

// Press holds every key bound to action.
func (k *StaticKeyboard) Press(actions ...Action) {
	for _, action := range actions {
		k.down[action] = true
	}
}

// Release lets go of every key bound to action.
func (k *StaticKeyboard) Release(actions ...Action) {
	for _, action := range actions {
		delete(k.down, action)
	}
}

func (k *StaticKeyboard) Update() {}

func (k *StaticKeyboard) IsActionDown(action Action) bool {
	return k.down[action]
}

func (k *StaticKeyboard) Actions() []Action {
	actions := k.bindings.Actions()
	for action := range k.down {
		if !slices.Contains(actions, action) {
			actions = append(actions, action)
		}
	}
	slices.Sort(actions)
	return slices.Compact(actions)
}

// Down returns the currently held actions in a stable order.
func (k *StaticKeyboard) Down() []Action {
	return slices.Sorted(maps.Keys(k.down))
}
