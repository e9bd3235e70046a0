package scene_test

import (
	"errors"
	"testing"
	"time"

	"github.com/plus3/puffin/ecs"
	"github.com/plus3/puffin/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type factoryLog struct {
	buses   []*ecs.EventBus
	drawers []*fakeDrawer
	err     error
}

func (f *factoryLog) build(bus *ecs.EventBus) (scene.Pipeline, error) {
	if f.err != nil {
		return scene.Pipeline{}, f.err
	}
	f.buses = append(f.buses, bus)
	drawer := newDrawer()
	f.drawers = append(f.drawers, drawer)
	return scene.Pipeline{Systems: []ecs.System{drawer}}, nil
}

func TestDirectorShowScene(t *testing.T) {
	factory := &factoryLog{}
	director := scene.NewDirector(factory.build, nil)

	assert.Nil(t, director.Current())
	assert.NoError(t, director.Update(0))
	assert.NoError(t, director.Draw(0))

	first := scene.New()
	require.NoError(t, director.ShowScene(first))
	assert.Same(t, first, director.Active())
	assert.Equal(t, scene.StateInitialized, first.State())
	require.Len(t, factory.buses, 1)
	assert.Same(t, factory.buses[0], first.Bus())

	second := scene.New()
	require.NoError(t, director.ShowScene(second))
	assert.Equal(t, scene.StateDisposed, first.State())
	assert.True(t, factory.buses[0].IsDisposed())
	require.Len(t, factory.buses, 2)
	assert.NotSame(t, factory.buses[0], factory.buses[1])

	require.NoError(t, director.Draw(0))
	assert.Equal(t, 1, factory.drawers[1].draws)

	assert.ErrorIs(t, director.ShowScene(first), scene.ErrDisposed)
}

func TestDirectorSubScene(t *testing.T) {
	factory := &factoryLog{}
	director := scene.NewDirector(factory.build, nil)

	main := scene.New()
	require.NoError(t, director.ShowScene(main))

	updates := map[string]int{}
	main.AddUpdateHandler(func(*scene.Scene, time.Duration) { updates["main"]++ })

	pause := scene.New()
	pause.AddUpdateHandler(func(*scene.Scene, time.Duration) { updates["pause"]++ })
	require.NoError(t, main.ShowSubScene(pause))

	assert.Same(t, pause, director.SubScene())
	assert.Same(t, pause, director.Current())

	require.NoError(t, director.Update(0))
	require.NoError(t, director.Draw(0))
	assert.Equal(t, map[string]int{"pause": 1}, updates)
	assert.Equal(t, 0, factory.drawers[0].draws)
	assert.Equal(t, 1, factory.drawers[1].draws)

	require.NoError(t, pause.HideSubScene())
	assert.Equal(t, scene.StateDisposed, pause.State())
	assert.Equal(t, scene.StateInitialized, main.State(), "parent is suspended, not disposed")
	assert.Same(t, main, director.Current())

	require.NoError(t, director.Update(0))
	assert.Equal(t, 1, updates["main"])
	assert.NoError(t, director.HideSubScene())
}

func TestDirectorDefersTransitionsDuringUpdate(t *testing.T) {
	factory := &factoryLog{}
	director := scene.NewDirector(factory.build, nil)

	menu := scene.New()
	level := scene.New()
	menu.AddUpdateHandler(func(s *scene.Scene, _ time.Duration) {
		require.NoError(t, director.ShowScene(level))
		assert.Equal(t, scene.StateInitialized, s.State(), "still running this frame")
		assert.Same(t, menu, director.Active())
	})
	require.NoError(t, director.ShowScene(menu))

	require.NoError(t, director.Update(0))
	assert.Same(t, level, director.Active())
	assert.Equal(t, scene.StateDisposed, menu.State())
}

func TestDirectorErrors(t *testing.T) {
	factory := &factoryLog{}
	director := scene.NewDirector(factory.build, nil)

	assert.Error(t, director.ShowSubScene(scene.New()), "no active scene")

	factory.err = errors.New("no gpu")
	err := director.ShowScene(scene.New())
	assert.ErrorContains(t, err, "no gpu")
	assert.Nil(t, director.Active())
}

func TestDirectorDispose(t *testing.T) {
	factory := &factoryLog{}
	director := scene.NewDirector(factory.build, nil)
	main, sub := scene.New(), scene.New()
	require.NoError(t, director.ShowScene(main))
	require.NoError(t, director.ShowSubScene(sub))

	director.Dispose()
	assert.Equal(t, scene.StateDisposed, main.State())
	assert.Equal(t, scene.StateDisposed, sub.State())
	assert.Nil(t, director.Current())
}
