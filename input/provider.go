package input

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// ActionChecker answers whether any key bound to an action is held.
type ActionChecker interface {
	IsActionDown(action Action) bool
}

// MouseProvider exposes the pointer state captured by the host for the
// current frame.
type MouseProvider interface {
	// Update captures the host's raw pointer state. Called once per frame
	// before any scene update.
	Update()
	// Coordinates returns the pointer position in game (render target) space.
	Coordinates() (x, y float64)
	// WorldCoordinates returns the pointer position under the active camera.
	WorldCoordinates() (x, y float64)
	IsButtonDown(button MouseButton) bool
}

// KeyboardProvider exposes the action state captured by the host for the
// current frame.
type KeyboardProvider interface {
	ActionChecker
	// Update captures the host's raw key state. Called once per frame before
	// any scene update.
	Update()
	// Actions returns every action that has at least one key bound.
	Actions() []Action
}
