package systems

import (
	"slices"

	"github.com/kamstrup/intmap"
	"github.com/plus3/puffin/ecs"
	"github.com/plus3/puffin/geom"
	"github.com/plus3/puffin/tiles"
)

type position struct {
	x, y float64
}

type pairKey struct {
	a, b ecs.EntityID
}

type overlapPair struct {
	key  pairKey
	a, b *ecs.Entity
}

// OverlapSystem tests every pair of colliders each frame, publishes overlap
// events and pushes solid colliders apart.
//
// When a pair is resolved the entity that moved since the previous frame is
// pushed. If both or neither moved, the one added later is pushed.
type OverlapSystem struct {
	bus      *ecs.EventBus
	entities entityList
	tileMaps []*tiles.TileMap

	lastPosition *intmap.Map[ecs.EntityID, position]
	overlapping  []overlapPair
}

func NewOverlapSystem(bus *ecs.EventBus) *OverlapSystem {
	return &OverlapSystem{
		bus:          bus,
		lastPosition: intmap.New[ecs.EntityID, position](64),
	}
}

func (s *OverlapSystem) OnAddEntity(e *ecs.Entity) {
	s.entities.add(e)
	s.lastPosition.Put(e.ID(), position{e.X(), e.Y()})
}

func (s *OverlapSystem) OnRemoveEntity(e *ecs.Entity) {
	s.entities.remove(e)
	s.lastPosition.Del(e.ID())
	s.overlapping = slices.DeleteFunc(s.overlapping, func(p overlapPair) bool {
		return p.a == e || p.b == e
	})
}

// OnAddTileMap makes the solid tiles of m block colliders.
func (s *OverlapSystem) OnAddTileMap(m *tiles.TileMap) {
	if !slices.Contains(s.tileMaps, m) {
		s.tileMaps = append(s.tileMaps, m)
	}
}

func (s *OverlapSystem) OnRemoveTileMap(m *tiles.TileMap) {
	s.tileMaps = slices.DeleteFunc(s.tileMaps, func(t *tiles.TileMap) bool { return t == m })
}

// Overlapping reports whether a and b were intersecting after the last update.
func (s *OverlapSystem) Overlapping(a, b *ecs.Entity) bool {
	return s.wasOverlapping(makePairKey(a, b))
}

func (s *OverlapSystem) OnUpdate(frame *ecs.UpdateFrame) error {
	var colliders []*ecs.Entity
	for _, e := range s.entities.snapshot() {
		if e.Has(ecs.KindCollision) {
			colliders = append(colliders, e)
		}
	}

	moved := make([]bool, len(colliders))
	for i, e := range colliders {
		last, ok := s.lastPosition.Get(e.ID())
		moved[i] = !ok || last.x != e.X() || last.y != e.Y()
	}

	var current []overlapPair
	for i := 0; i < len(colliders); i++ {
		for j := i + 1; j < len(colliders); j++ {
			a, b := colliders[i], colliders[j]
			ca := ecs.Get[*ecs.CollisionComponent](a)
			cb := ecs.Get[*ecs.CollisionComponent](b)
			// a callback may have detached a collider earlier in this pass
			if ca == nil || cb == nil || !ca.Bounds().Intersects(cb.Bounds()) {
				continue
			}

			pair := overlapPair{key: makePairKey(a, b), a: a, b: b}
			current = append(current, pair)
			if !s.wasOverlapping(pair.key) {
				notifyOverlap(ca.OnOverlapStart, a, b)
				notifyOverlap(cb.OnOverlapStart, b, a)
			}
			ecs.Publish(s.bus, ecs.Overlapped{A: a, B: b})

			// the start callbacks may have detached either collider
			ca = ecs.Get[*ecs.CollisionComponent](a)
			cb = ecs.Get[*ecs.CollisionComponent](b)
			if ca == nil || cb == nil {
				continue
			}
			if ca.IsSolid || cb.IsSolid {
				mover, mc, oc := b, cb, ca
				if moved[i] && !moved[j] {
					mover, mc, oc = a, ca, cb
				}
				separate(mover, mc.Bounds(), oc.Bounds())
			}
		}
	}

	s.resolveTiles(colliders)

	for _, pair := range s.overlapping {
		if slices.ContainsFunc(current, func(p overlapPair) bool { return p.key == pair.key }) {
			continue
		}
		if ca := ecs.Get[*ecs.CollisionComponent](pair.a); ca != nil {
			notifyOverlap(ca.OnOverlapEnd, pair.a, pair.b)
		}
		if cb := ecs.Get[*ecs.CollisionComponent](pair.b); cb != nil {
			notifyOverlap(cb.OnOverlapEnd, pair.b, pair.a)
		}
		ecs.Publish(s.bus, ecs.OverlapEnded{A: pair.a, B: pair.b})
	}
	s.overlapping = current

	for _, e := range s.entities.items {
		s.lastPosition.Put(e.ID(), position{e.X(), e.Y()})
	}
	return nil
}

// resolveTiles pushes every collider out of the solid tiles it overlaps.
func (s *OverlapSystem) resolveTiles(colliders []*ecs.Entity) {
	for _, m := range s.tileMaps {
		for _, e := range colliders {
			c := ecs.Get[*ecs.CollisionComponent](e)
			if c == nil {
				continue
			}
			for _, tile := range m.SolidTilesIn(c.Bounds()) {
				separate(e, c.Bounds(), tile)
			}
		}
	}
}

func (s *OverlapSystem) wasOverlapping(key pairKey) bool {
	return slices.ContainsFunc(s.overlapping, func(p overlapPair) bool { return p.key == key })
}

func separate(mover *ecs.Entity, bounds, other geom.Rect) {
	dx, dy := geom.Separation(bounds, other)
	if dx != 0 || dy != 0 {
		mover.Move(mover.X()+dx, mover.Y()+dy)
	}
}

func notifyOverlap(fn ecs.OverlapHandler, self, other *ecs.Entity) {
	if fn != nil {
		fn(self, other)
	}
}

func makePairKey(a, b *ecs.Entity) pairKey {
	if a.ID() > b.ID() {
		a, b = b, a
	}
	return pairKey{a: a.ID(), b: b.ID()}
}
