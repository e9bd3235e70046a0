package systems

import (
	"github.com/plus3/puffin/ecs"
	"github.com/plus3/puffin/input"
)

// MovementSystem moves entities with a four-way movement, velocity or tween
// component.
type MovementSystem struct {
	keyboard input.ActionChecker
	entities entityList
}

// NewMovementSystem creates a movement system reading held actions from
// keyboard. A nil keyboard disables four-way movement.
func NewMovementSystem(keyboard input.ActionChecker) *MovementSystem {
	return &MovementSystem{keyboard: keyboard}
}

func (s *MovementSystem) OnAddEntity(e *ecs.Entity)    { s.entities.add(e) }
func (s *MovementSystem) OnRemoveEntity(e *ecs.Entity) { s.entities.remove(e) }

func (s *MovementSystem) OnUpdate(frame *ecs.UpdateFrame) error {
	seconds := frame.Seconds()

	for _, e := range s.entities.snapshot() {
		x, y := e.X(), e.Y()
		moved := false
		var completed *ecs.TweenComponent

		if tween := ecs.Get[*ecs.TweenComponent](e); tween != nil && !tween.Done() {
			var finished bool
			x, y, finished = tween.Advance(float32(seconds))
			moved = true
			if finished {
				completed = tween
			}
		}

		if fw := ecs.Get[*ecs.FourWayMovementComponent](e); fw != nil {
			dx, dy := s.direction()
			if dx != 0 || dy != 0 {
				x += dx * fw.Speed * seconds
				y += dy * fw.Speed * seconds
				moved = true
			}
		}

		if v := ecs.Get[*ecs.VelocityComponent](e); v != nil && (v.X != 0 || v.Y != 0) {
			x += v.X * seconds
			y += v.Y * seconds
			moved = true
		}

		if moved {
			e.Move(x, y)
		}
		if completed != nil && completed.OnComplete != nil {
			completed.OnComplete(e)
		}
	}
	return nil
}

// direction returns the unit intent on each axis. Opposite actions held
// together cancel out.
func (s *MovementSystem) direction() (dx, dy float64) {
	if s.keyboard == nil {
		return 0, 0
	}
	if s.keyboard.IsActionDown(input.ActionLeft) {
		dx--
	}
	if s.keyboard.IsActionDown(input.ActionRight) {
		dx++
	}
	if s.keyboard.IsActionDown(input.ActionUp) {
		dy--
	}
	if s.keyboard.IsActionDown(input.ActionDown) {
		dy++
	}
	return dx, dy
}
