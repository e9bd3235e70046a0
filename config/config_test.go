package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/plus3/puffin/config"
	"github.com/plus3/puffin/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("empty input is the default", func(t *testing.T) {
		cfg, err := config.Parse(strings.NewReader(""))
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("overrides", func(t *testing.T) {
		cfg, err := config.Parse(strings.NewReader(`
title: Dungeon
window: {width: 1280, height: 720}
game: {width: 640, height: 360}
tps: 30
showCollisionAreas: true
bindings:
  up: [I]
  jump: [Space]
`))
		require.NoError(t, err)
		assert.Equal(t, "Dungeon", cfg.Title)
		assert.Equal(t, config.Size{Width: 640, Height: 360}, cfg.Game)
		assert.True(t, cfg.ShowCollisionAreas)
		assert.Equal(t, "OpenSans", cfg.DefaultFont)
		assert.Equal(t, time.Second/30, cfg.TickDuration())

		bindings := cfg.Bindings()
		assert.Equal(t, []string{"I"}, bindings[input.ActionUp])
		assert.Equal(t, []string{"S", "ArrowDown"}, bindings[input.ActionDown])
		assert.Equal(t, []string{"Space"}, bindings["jump"])
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		_, err := config.Parse(strings.NewReader("fullscreen: true\n"))
		assert.Error(t, err)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := config.Parse(strings.NewReader("tps: 0\ngame: {width: -1, height: 10}\n"))
		require.ErrorIs(t, err, config.ErrInvalid)
		assert.Contains(t, err.Error(), "tps 0")
		assert.Contains(t, err.Error(), "game size -1x10")

		_, err = config.Parse(strings.NewReader("bindings: {up: []}\n"))
		assert.ErrorIs(t, err, config.ErrInvalid)
	})
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: From disk\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "From disk", cfg.Title)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
