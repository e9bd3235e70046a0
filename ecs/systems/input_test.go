package systems_test

import (
	"testing"

	"github.com/plus3/puffin/ecs"
	"github.com/plus3/puffin/ecs/systems"
	"github.com/plus3/puffin/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMouseSystem(t *testing.T) {
	bus := ecs.NewEventBus()
	mouse := &input.StaticMouse{}
	system := systems.NewMouseSystem(bus, mouse)

	var clicked []string
	back := ecs.NewEntity().Mouse(100, 100, func(e *ecs.Entity, x, y float64) { clicked = append(clicked, "back") })
	front := ecs.NewEntity().Move(10, 10).Mouse(20, 20, func(e *ecs.Entity, x, y float64) { clicked = append(clicked, "front") })
	released := 0
	ecs.Get[*ecs.MouseComponent](front).OnRelease = func(*ecs.Entity, float64, float64) { released++ }
	system.OnAddEntity(back)
	system.OnAddEntity(front)

	var clicks []ecs.MouseClicked
	var releases []ecs.MouseReleased
	ecs.Subscribe(bus, func(ev ecs.MouseClicked) { clicks = append(clicks, ev) })
	ecs.Subscribe(bus, func(ev ecs.MouseReleased) { releases = append(releases, ev) })

	t.Run("press edge hits the topmost entity", func(t *testing.T) {
		mouse.MoveTo(15, 15)
		mouse.Press(input.MouseButtonLeft)
		step(t, system, 0)
		step(t, system, 0)

		assert.Equal(t, []string{"front"}, clicked)
		require.Len(t, clicks, 1)
		assert.Same(t, front, clicks[0].Entity)
		assert.Equal(t, 15.0, clicks[0].X)
		assert.Equal(t, input.MouseButtonLeft, clicks[0].Button)
	})

	t.Run("release edge", func(t *testing.T) {
		mouse.Release(input.MouseButtonLeft)
		step(t, system, 0)
		assert.Equal(t, 1, released)
		require.Len(t, releases, 1)
		assert.Same(t, front, releases[0].Entity)
	})

	t.Run("miss publishes without an entity", func(t *testing.T) {
		mouse.MoveTo(500, 500)
		mouse.Press(input.MouseButtonRight)
		step(t, system, 0)
		require.Len(t, clicks, 2)
		assert.Nil(t, clicks[1].Entity)
		assert.Equal(t, input.MouseButtonRight, clicks[1].Button)
		mouse.Release(input.MouseButtonRight)
		step(t, system, 0)
	})

	t.Run("world entities use world coordinates", func(t *testing.T) {
		mouse.X, mouse.Y = 15, 15
		mouse.WorldX, mouse.WorldY = 50, 50
		mouse.WorldSet = true

		mouse.Press(input.MouseButtonLeft)
		step(t, system, 0)
		assert.Equal(t, "back", clicked[len(clicked)-1])

		x, y := system.Coordinates()
		assert.Equal(t, 15.0, x)
		assert.Equal(t, 15.0, y)
		mouse.Release(input.MouseButtonLeft)
		step(t, system, 0)
	})

	t.Run("ui entities use screen coordinates", func(t *testing.T) {
		button := ecs.NewUIEntity().Move(10, 10).Mouse(10, 10, func(*ecs.Entity, float64, float64) { clicked = append(clicked, "button") })
		system.OnAddEntity(button)

		mouse.Press(input.MouseButtonLeft)
		step(t, system, 0)
		assert.Equal(t, "button", clicked[len(clicked)-1])
	})
}

func TestMouseOverlapSystem(t *testing.T) {
	bus := ecs.NewEventBus()
	mouse := &input.StaticMouse{}
	system := systems.NewMouseOverlapSystem(bus, mouse)

	var log []string
	hover := func(name string) (func(*ecs.Entity), func(*ecs.Entity)) {
		return func(*ecs.Entity) { log = append(log, "enter "+name) },
			func(*ecs.Entity) { log = append(log, "exit "+name) }
	}
	enterA, exitA := hover("a")
	enterB, exitB := hover("b")
	a := ecs.NewEntity().MouseOverlap(50, 50, enterA, exitA)
	b := ecs.NewEntity().Move(40, 0).MouseOverlap(50, 50, enterB, exitB)
	system.OnAddEntity(a)
	system.OnAddEntity(b)

	entered := 0
	ecs.Subscribe(bus, func(ecs.MouseEntered) { entered++ })

	mouse.MoveTo(10, 10)
	step(t, system, 0)
	assert.Same(t, a, system.Current())

	// both areas contain the pointer; the later entity wins
	mouse.MoveTo(45, 10)
	step(t, system, 0)
	assert.Same(t, b, system.Current())

	mouse.MoveTo(45, 10)
	step(t, system, 0)

	mouse.MoveTo(200, 200)
	step(t, system, 0)
	assert.Nil(t, system.Current())

	assert.Equal(t, []string{"enter a", "exit a", "enter b", "exit b"}, log)
	assert.Equal(t, 2, entered)

	mouse.MoveTo(10, 10)
	step(t, system, 0)
	system.OnRemoveEntity(a)
	assert.Nil(t, system.Current())
}

func TestMouseOverlapSystemEnterTargetDetached(t *testing.T) {
	bus := ecs.NewEventBus()
	mouse := &input.StaticMouse{}
	system := systems.NewMouseOverlapSystem(bus, mouse)

	entered := false
	b := ecs.NewEntity().Move(100, 0).MouseOverlap(50, 50, func(*ecs.Entity) { entered = true }, nil)
	a := ecs.NewEntity().MouseOverlap(50, 50, nil, func(*ecs.Entity) {
		b.RemoveComponent(ecs.KindMouseOverlap)
	})
	system.OnAddEntity(a)
	system.OnAddEntity(b)

	var events []ecs.MouseEntered
	ecs.Subscribe(bus, func(ev ecs.MouseEntered) { events = append(events, ev) })

	mouse.MoveTo(10, 10)
	step(t, system, 0)

	mouse.MoveTo(110, 10)
	require.NotPanics(t, func() { step(t, system, 0) })
	assert.False(t, entered)
	require.Len(t, events, 2)
	assert.Same(t, b, events[1].Entity)
}

func TestKeyboardSystem(t *testing.T) {
	bus := ecs.NewEventBus()
	keyboard := input.NewStaticKeyboard(nil)
	system := systems.NewKeyboardSystem(bus, keyboard)

	var log []string
	e := ecs.NewEntity().Keyboard(
		func(_ *ecs.Entity, a input.Action) { log = append(log, "press "+string(a)) },
		func(_ *ecs.Entity, a input.Action) { log = append(log, "release "+string(a)) },
	)
	system.OnAddEntity(e)

	var pressed []input.Action
	ecs.Subscribe(bus, func(ev ecs.ActionPressed) { pressed = append(pressed, ev.Action) })

	keyboard.Press(input.ActionUp)
	step(t, system, 0)
	step(t, system, 0)
	assert.True(t, system.IsActionDown(input.ActionUp))
	assert.False(t, system.IsActionDown(input.ActionDown))

	keyboard.Release(input.ActionUp)
	keyboard.Press("jump")
	step(t, system, 0)

	assert.Equal(t, []input.Action{input.ActionUp, "jump"}, pressed)
	assert.ElementsMatch(t, []string{"press up", "release up", "press jump"}, log)
}

func TestInputSystemsWithoutProviders(t *testing.T) {
	bus := ecs.NewEventBus()
	for _, s := range []ecs.System{
		systems.NewMouseSystem(bus, nil),
		systems.NewMouseOverlapSystem(bus, nil),
		systems.NewKeyboardSystem(bus, nil),
	} {
		assert.NoError(t, s.OnUpdate(ecs.NewUpdateFrame(0)))
	}
	assert.False(t, systems.NewKeyboardSystem(bus, nil).IsActionDown(input.ActionUp))
}
