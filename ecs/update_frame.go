package ecs

import "time"

type UpdateFrame struct {
	Elapsed  time.Duration
	Commands *Commands
}

// NewUpdateFrame creates a frame with an empty command buffer.
func NewUpdateFrame(elapsed time.Duration) *UpdateFrame {
	return &UpdateFrame{
		Elapsed:  elapsed,
		Commands: newCommands(),
	}
}

// Seconds returns the elapsed time in seconds.
func (f *UpdateFrame) Seconds() float64 {
	return f.Elapsed.Seconds()
}
