package ecs

// CommandTarget is the entity collection Commands are flushed into.
type CommandTarget interface {
	Add(e *Entity)
	Remove(e *Entity)
}

// Commands provides a buffer for structural changes made while a frame is
// running. Operations are applied in the order they were queued.
type Commands struct {
	ops []command
}

func newCommands() *Commands {
	return &Commands{}
}

type commandOp int

const (
	opAdd commandOp = iota
	opRemove
	opDefer
)

type command struct {
	op     commandOp
	entity *Entity
	fn     func()
}

// Add queues an entity addition.
func (c *Commands) Add(e *Entity) {
	c.ops = append(c.ops, command{op: opAdd, entity: e})
}

// Remove queues an entity removal.
func (c *Commands) Remove(e *Entity) {
	c.ops = append(c.ops, command{op: opRemove, entity: e})
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.ops = append(c.ops, command{op: opDefer, fn: fn})
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.ops)
}

// Flush applies all queued operations to target and resets the buffer.
// Operations queued by the flushed operations themselves are applied in the
// same flush.
func (c *Commands) Flush(target CommandTarget) {
	for i := 0; i < len(c.ops); i++ {
		cmd := c.ops[i]
		switch cmd.op {
		case opAdd:
			target.Add(cmd.entity)
		case opRemove:
			target.Remove(cmd.entity)
		case opDefer:
			cmd.fn()
		}
	}
	c.ops = c.ops[:0]
}
