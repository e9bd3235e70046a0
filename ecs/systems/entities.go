// Package systems holds the per-frame processors of a Puffin scene.
package systems

import (
	"slices"

	"github.com/plus3/puffin/ecs"
)

// entityList keeps entities in insertion order.
type entityList struct {
	items []*ecs.Entity
}

func (l *entityList) add(e *ecs.Entity) {
	if slices.Contains(l.items, e) {
		return
	}
	l.items = append(l.items, e)
}

func (l *entityList) remove(e *ecs.Entity) bool {
	i := slices.Index(l.items, e)
	if i < 0 {
		return false
	}
	l.items = slices.Delete(l.items, i, i+1)
	return true
}

// snapshot returns a copy that is safe to iterate while callbacks add or
// remove entities.
func (l *entityList) snapshot() []*ecs.Entity {
	return slices.Clone(l.items)
}

func (l *entityList) len() int { return len(l.items) }
