// Package input defines logical actions, their default key bindings and the
// mouse and keyboard state the host framework polls once per frame.
package input

import (
	"maps"
	"slices"
)

// Action is a logical, rebindable input such as "move up". Games define their
// own actions as additional constants of this type.
type Action string

const (
	ActionUp    Action = "up"
	ActionDown  Action = "down"
	ActionLeft  Action = "left"
	ActionRight Action = "right"
)

// Bindings maps each action to the names of the physical keys that trigger it.
// Key names are interpreted by the host framework.
type Bindings map[Action][]string

// DefaultBindings returns WASD plus arrow keys for the four movement actions.
func DefaultBindings() Bindings {
	return Bindings{
		ActionUp:    {"W", "ArrowUp"},
		ActionDown:  {"S", "ArrowDown"},
		ActionLeft:  {"A", "ArrowLeft"},
		ActionRight: {"D", "ArrowRight"},
	}
}

// Merge returns a copy of b where every action present in overrides replaces
// the keys bound in b. Actions only present in overrides are added.
func (b Bindings) Merge(overrides Bindings) Bindings {
	merged := make(Bindings, len(b)+len(overrides))
	for action, keys := range b {
		merged[action] = slices.Clone(keys)
	}
	for action, keys := range overrides {
		merged[action] = slices.Clone(keys)
	}
	return merged
}

// Actions returns the bound actions in a stable order.
func (b Bindings) Actions() []Action {
	return slices.Sorted(maps.Keys(b))
}
