package input_test

import (
	"testing"

	"github.com/plus3/puffin/input"
	"github.com/stretchr/testify/assert"
)

func TestDefaultBindings(t *testing.T) {
	bindings := input.DefaultBindings()

	assert.Equal(t, []string{"W", "ArrowUp"}, bindings[input.ActionUp])
	assert.Equal(t, []string{"S", "ArrowDown"}, bindings[input.ActionDown])
	assert.Equal(t, []string{"A", "ArrowLeft"}, bindings[input.ActionLeft])
	assert.Equal(t, []string{"D", "ArrowRight"}, bindings[input.ActionRight])
	assert.Equal(t, []input.Action{"down", "left", "right", "up"}, bindings.Actions())
}

func TestBindingsMerge(t *testing.T) {
	const jump input.Action = "jump"

	base := input.DefaultBindings()
	merged := base.Merge(input.Bindings{
		input.ActionUp: {"K"},
		jump:           {"Space"},
	})

	assert.Equal(t, []string{"K"}, merged[input.ActionUp])
	assert.Equal(t, []string{"Space"}, merged[jump])
	assert.Equal(t, []string{"S", "ArrowDown"}, merged[input.ActionDown])

	// the receiver is untouched
	assert.Equal(t, []string{"W", "ArrowUp"}, base[input.ActionUp])

	merged[input.ActionDown][0] = "X"
	assert.Equal(t, "S", base[input.ActionDown][0])
}

func TestStaticKeyboard(t *testing.T) {
	kb := input.NewStaticKeyboard(nil)

	assert.False(t, kb.IsActionDown(input.ActionUp))
	kb.Press(input.ActionUp, input.ActionLeft)
	assert.True(t, kb.IsActionDown(input.ActionUp))
	assert.True(t, kb.IsActionDown(input.ActionLeft))
	assert.Equal(t, []input.Action{input.ActionLeft, input.ActionUp}, kb.Down())

	kb.Release(input.ActionUp)
	assert.False(t, kb.IsActionDown(input.ActionUp))
	assert.Len(t, kb.Actions(), 4)
}

func TestStaticMouse(t *testing.T) {
	m := &input.StaticMouse{}
	m.MoveTo(12, 34)

	x, y := m.Coordinates()
	assert.Equal(t, 12.0, x)
	assert.Equal(t, 34.0, y)

	wx, wy := m.WorldCoordinates()
	assert.Equal(t, 12.0, wx)
	assert.Equal(t, 34.0, wy)

	m.WorldX, m.WorldY, m.WorldSet = 6, 17, true
	wx, wy = m.WorldCoordinates()
	assert.Equal(t, 6.0, wx)
	assert.Equal(t, 17.0, wy)

	m.Press(input.MouseButtonLeft)
	assert.True(t, m.IsButtonDown(input.MouseButtonLeft))
	assert.False(t, m.IsButtonDown(input.MouseButtonRight))
	m.Release(input.MouseButtonLeft)
	assert.False(t, m.IsButtonDown(input.MouseButtonLeft))
}
