// Package config loads the YAML game configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/plus3/puffin/input"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Size is a width and height in pixels.
type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Config is the game configuration.
type Config struct {
	Title string `yaml:"title"`
	// Window is the OS window size; Game is the render target size scaled
	// into it.
	Window Size `yaml:"window"`
	Game   Size `yaml:"game"`
	TPS    int  `yaml:"tps"`

	DefaultFont     string `yaml:"defaultFont"`
	DefaultFontSize int    `yaml:"defaultFontSize"`
	FontDir         string `yaml:"fontDir"`

	ShowCollisionAreas bool `yaml:"showCollisionAreas"`
	DebugOverlay       bool `yaml:"debugOverlay"`

	LogLevel    string `yaml:"logLevel"`
	LogEncoding string `yaml:"logEncoding"`

	// Keys overrides the default key bindings per action.
	Keys map[input.Action][]string `yaml:"bindings"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Title:           "Puffin",
		Window:          Size{Width: 960, Height: 540},
		Game:            Size{Width: 960, Height: 540},
		TPS:             60,
		DefaultFont:     "OpenSans",
		DefaultFontSize: 24,
		FontDir:         "Content/Fonts",
		LogLevel:        "info",
		LogEncoding:     "console",
	}
}

// Load reads and validates the file at path over the defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes YAML from r over the defaults and validates the result.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height))
	}
	if c.Game.Width <= 0 || c.Game.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: game size %dx%d", ErrInvalid, c.Game.Width, c.Game.Height))
	}
	if c.TPS <= 0 {
		errs = append(errs, fmt.Errorf("%w: tps %d", ErrInvalid, c.TPS))
	}
	if c.DefaultFontSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: defaultFontSize %d", ErrInvalid, c.DefaultFontSize))
	}
	for action, keys := range c.Keys {
		if len(keys) == 0 {
			errs = append(errs, fmt.Errorf("%w: action %q has no keys", ErrInvalid, action))
		}
	}
	return errors.Join(errs...)
}

// Bindings returns the default bindings with the configured overrides
// applied.
func (c Config) Bindings() input.Bindings {
	return input.DefaultBindings().Merge(c.Keys)
}

// TickDuration returns the simulated time of one update.
func (c Config) TickDuration() time.Duration {
	return time.Second / time.Duration(c.TPS)
}
