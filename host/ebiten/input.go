package ebiten

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/puffin/input"
)

// ErrUnknownKey is returned for a binding that names no ebiten key.
var ErrUnknownKey = errors.New("unknown key")

var mouseButtons = [...]ebiten.MouseButton{
	input.MouseButtonLeft:   ebiten.MouseButtonLeft,
	input.MouseButtonRight:  ebiten.MouseButtonRight,
	input.MouseButtonMiddle: ebiten.MouseButtonMiddle,
}

// Mouse polls the ebiten cursor. Coordinates are in layout space; ToWorld
// maps them under the active camera.
type Mouse struct {
	ToWorld func(x, y float64) (float64, float64)

	x, y    float64
	buttons [len(mouseButtons)]bool
}

func NewMouse(toWorld func(x, y float64) (float64, float64)) *Mouse {
	return &Mouse{ToWorld: toWorld}
}

func (m *Mouse) Update() {
	cx, cy := ebiten.CursorPosition()
	m.x, m.y = float64(cx), float64(cy)
	for i, b := range mouseButtons {
		m.buttons[i] = ebiten.IsMouseButtonPressed(b)
	}
}

func (m *Mouse) Coordinates() (float64, float64) { return m.x, m.y }

func (m *Mouse) WorldCoordinates() (float64, float64) {
	if m.ToWorld == nil {
		return m.x, m.y
	}
	return m.ToWorld(m.x, m.y)
}

func (m *Mouse) IsButtonDown(button input.MouseButton) bool {
	return int(button) < len(m.buttons) && m.buttons[button]
}

// Keyboard resolves action bindings to ebiten keys and polls them once per
// frame.
type Keyboard struct {
	keys    map[input.Action][]ebiten.Key
	actions []input.Action
	down    map[input.Action]bool
}

// ParseKey resolves a key name such as "W", "ArrowUp" or "Space".
func ParseKey(name string) (ebiten.Key, error) {
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("%w %q", ErrUnknownKey, name)
	}
	return k, nil
}

func NewKeyboard(bindings input.Bindings) (*Keyboard, error) {
	kb := &Keyboard{
		keys:    make(map[input.Action][]ebiten.Key, len(bindings)),
		actions: bindings.Actions(),
		down:    make(map[input.Action]bool, len(bindings)),
	}
	var errs []error
	for action, names := range bindings {
		for _, name := range names {
			k, err := ParseKey(name)
			if err != nil {
				errs = append(errs, fmt.Errorf("action %q: %w", action, err))
				continue
			}
			kb.keys[action] = append(kb.keys[action], k)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return kb, nil
}

func (kb *Keyboard) Update() {
	for action, keys := range kb.keys {
		down := false
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				down = true
				break
			}
		}
		kb.down[action] = down
	}
}

func (kb *Keyboard) Actions() []input.Action { return kb.actions }

func (kb *Keyboard) IsActionDown(action input.Action) bool { return kb.down[action] }
