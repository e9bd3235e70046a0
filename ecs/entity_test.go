package ecs_test

import (
	"testing"
	"time"

	"github.com/plus3/puffin/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityMove(t *testing.T) {
	t.Run("listeners fire once per call in registration order", func(t *testing.T) {
		e := ecs.NewEntity()

		var calls []string
		e.AddPositionChangeListener(func(x, y float64) { calls = append(calls, "first") })
		e.AddPositionChangeListener(func(x, y float64) { calls = append(calls, "second") })

		e.Move(10, 20)
		assert.Equal(t, []string{"first", "second"}, calls)
		assert.Equal(t, 10.0, e.X())
		assert.Equal(t, 20.0, e.Y())
	})

	t.Run("repeated move is idempotent but still notifies", func(t *testing.T) {
		e := ecs.NewEntity()
		count := 0
		e.AddPositionChangeListener(func(x, y float64) {
			count++
			assert.Equal(t, 5.0, x)
			assert.Equal(t, 7.0, y)
		})

		e.Move(5, 7)
		e.Move(5, 7)

		assert.Equal(t, 2, count)
		assert.Equal(t, 5.0, e.X())
		assert.Equal(t, 7.0, e.Y())
	})
}

func TestEntityComponents(t *testing.T) {
	t.Run("absent kind is empty", func(t *testing.T) {
		e := ecs.NewEntity()
		assert.Nil(t, ecs.Get[*ecs.SpriteComponent](e))
		assert.Nil(t, e.Component(ecs.KindSprite))
		assert.False(t, e.Has(ecs.KindSprite))
	})

	t.Run("set replaces the existing component", func(t *testing.T) {
		e := ecs.NewEntity()
		first := &ecs.ColourComponent{Colour: 0xFF0000}
		second := &ecs.ColourComponent{Colour: 0x00FF00}

		e.Set(first)
		e.Set(second)

		got := ecs.Get[*ecs.ColourComponent](e)
		require.NotNil(t, got)
		assert.Same(t, second, got)
		assert.Nil(t, first.Parent())
		assert.Same(t, e, second.Parent())
	})

	t.Run("remove component", func(t *testing.T) {
		e := ecs.NewEntity().Collide(10, 10, true).Velocity(1, 0)
		assert.Equal(t, []ecs.Kind{ecs.KindCollision, ecs.KindVelocity}, e.Kinds())

		c := ecs.Get[*ecs.CollisionComponent](e)
		e.RemoveComponent(ecs.KindCollision)

		assert.False(t, e.Has(ecs.KindCollision))
		assert.Nil(t, c.Parent())
		e.RemoveComponent(ecs.KindCollision)
	})

	t.Run("collision bounds follow the entity", func(t *testing.T) {
		e := ecs.NewEntity().Collide(32, 16, false).Move(100, 50)
		c := ecs.Get[*ecs.CollisionComponent](e)
		c.XOffset = 4

		b := c.Bounds()
		assert.Equal(t, 104.0, b.X)
		assert.Equal(t, 50.0, b.Y)
		assert.Equal(t, 32.0, b.Width)
		assert.Equal(t, 16.0, b.Height)
	})
}

func TestEntityUpdateHandlers(t *testing.T) {
	e := ecs.NewEntity()

	var total time.Duration
	e.OnUpdate(func(self *ecs.Entity, elapsed time.Duration) {
		assert.Same(t, e, self)
		total += elapsed
		// handlers registered mid-update run from the next update
		self.OnUpdate(func(*ecs.Entity, time.Duration) { total += time.Hour })
	})

	e.Update(time.Second)
	assert.Equal(t, time.Second, total)

	e.Update(time.Second)
	assert.Equal(t, 2*time.Second+time.Hour, total)
}

type fakeOwner struct {
	bus     *ecs.EventBus
	removed []*ecs.Entity
}

func (o *fakeOwner) Bus() *ecs.EventBus { return o.bus }
func (o *fakeOwner) Remove(e *ecs.Entity) {
	o.removed = append(o.removed, e)
	e.SetOwner(nil)
}

func TestEntityDestroy(t *testing.T) {
	owner := &fakeOwner{bus: ecs.NewEventBus()}
	e := ecs.NewEntity().Image("hero.png").Label("Hero")
	e.SetOwner(owner)
	sprite := ecs.Get[*ecs.SpriteComponent](e)

	e.Destroy()

	assert.Equal(t, []*ecs.Entity{e}, owner.removed)
	assert.Empty(t, e.Kinds())
	assert.Nil(t, sprite.Parent())
	assert.Nil(t, e.Owner())
}

func TestUIEntity(t *testing.T) {
	assert.True(t, ecs.NewUIEntity().IsUI())
	assert.False(t, ecs.NewEntity().IsUI())
	assert.NotEqual(t, ecs.NewEntity().ID(), ecs.NewEntity().ID())
}

func TestComponentEventsUseOwnerBus(t *testing.T) {
	owner := &fakeOwner{bus: ecs.NewEventBus()}
	e := ecs.NewEntity().Image("a.png").Label("x").Audio("hit.wav")

	var sprites, fonts, plays, stops int
	ecs.Subscribe(owner.bus, func(ev ecs.SpriteChanged) { sprites++; assert.Same(t, e, ev.Entity) })
	ecs.Subscribe(owner.bus, func(ecs.LabelFontChanged) { fonts++ })
	ecs.Subscribe(owner.bus, func(ecs.PlaySound) { plays++ })
	ecs.Subscribe(owner.bus, func(ecs.StopSound) { stops++ })

	// unowned entities publish nowhere
	ecs.Get[*ecs.SpriteComponent](e).SetImage("b.png")
	assert.Equal(t, 0, sprites)

	e.SetOwner(owner)
	ecs.Get[*ecs.SpriteComponent](e).SetImage("c.png")
	ecs.Get[*ecs.TextLabelComponent](e).SetFont("Mono", 12)
	ecs.Get[*ecs.AudioComponent](e).Play()
	ecs.Get[*ecs.AudioComponent](e).Stop()

	assert.Equal(t, 1, sprites)
	assert.Equal(t, 1, fonts)
	assert.Equal(t, 1, plays)
	assert.Equal(t, 1, stops)
	assert.Equal(t, "c.png", ecs.Get[*ecs.SpriteComponent](e).FileName)
	assert.Equal(t, 12, ecs.Get[*ecs.TextLabelComponent](e).FontSize)
}

func TestTweenTo(t *testing.T) {
	e := ecs.NewEntity().Move(0, 0).TweenTo(100, 50, time.Second, nil)
	tween := ecs.Get[*ecs.TweenComponent](e)
	require.NotNil(t, tween)

	x, y, done := tween.Advance(0.5)
	assert.InDelta(t, 50.0, x, 0.001)
	assert.InDelta(t, 25.0, y, 0.001)
	assert.False(t, done)

	x, y, done = tween.Advance(0.5)
	assert.InDelta(t, 100.0, x, 0.001)
	assert.InDelta(t, 50.0, y, 0.001)
	assert.True(t, done)
	assert.True(t, tween.Done())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Sprite", ecs.KindSprite.String())
	assert.Equal(t, "Tween", ecs.KindTween.String())
	assert.Equal(t, "Kind(99)", ecs.Kind(99).String())
}
