package ebiten

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/puffin/config"
	"github.com/plus3/puffin/ecs"
	"github.com/plus3/puffin/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	k, err := ParseKey("W")
	require.NoError(t, err)
	assert.Equal(t, ebiten.KeyW, k)

	k, err = ParseKey("ArrowUp")
	require.NoError(t, err)
	assert.Equal(t, ebiten.KeyArrowUp, k)

	_, err = ParseKey("NotAKey")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestNewKeyboard(t *testing.T) {
	kb, err := NewKeyboard(input.DefaultBindings())
	require.NoError(t, err)
	assert.Equal(t, []input.Action{input.ActionDown, input.ActionLeft, input.ActionRight, input.ActionUp}, kb.Actions())
	assert.False(t, kb.IsActionDown(input.ActionUp))

	_, err = NewKeyboard(input.Bindings{"jump": {"Space", "Bogus"}})
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestMouseWorldCoordinates(t *testing.T) {
	m := NewMouse(nil)
	m.x, m.y = 10, 20
	m.buttons[input.MouseButtonRight] = true

	x, y := m.WorldCoordinates()
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 20.0, y)
	assert.True(t, m.IsButtonDown(input.MouseButtonRight))
	assert.False(t, m.IsButtonDown(input.MouseButtonLeft))
	assert.False(t, m.IsButtonDown(input.MouseButton(9)))

	m.ToWorld = func(x, y float64) (float64, float64) { return x / 2, y / 2 }
	x, y = m.WorldCoordinates()
	assert.Equal(t, 5.0, x)
	assert.Equal(t, 10.0, y)
}

func TestGamePipeline(t *testing.T) {
	cfg := config.Default()
	g, err := NewGame(cfg, WithAudio(nil))
	require.NoError(t, err)

	w, h := g.Layout(1920, 1080)
	assert.Equal(t, cfg.Game.Width, w)
	assert.Equal(t, cfg.Game.Height, h)

	p, err := g.pipeline(ecs.NewEventBus())
	require.NoError(t, err)
	require.Len(t, p.Systems, 7)
	assert.Equal(t, "DrawingSystem", ecs.SystemName(p.Systems[6]))
	assert.Same(t, g.keyboard, p.Keyboard)
	assert.NotNil(t, p.Mouse)
}

func TestNewGameRejectsUnknownKeys(t *testing.T) {
	cfg := config.Default()
	cfg.Keys = map[input.Action][]string{input.ActionUp: {"Nope"}}
	_, err := NewGame(cfg)
	assert.ErrorIs(t, err, ErrUnknownKey)
}
