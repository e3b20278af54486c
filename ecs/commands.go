package ecs

// Commands buffers spawns made while systems run. The buffer is
// applied by Flush once every system of a stage has executed, so queries
// never observe a half-updated storage.
type Commands struct {
	spawns [][]any
	defers []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues an entity with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Defer queues fn to run after spawns have been applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending returns the number of queued operations.
func (c *Commands) Pending() int {
	return len(c.spawns) + len(c.defers)
}

// Flush applies queued spawns in queue order, then deferred functions, and
// resets the buffer.
func (c *Commands) Flush(storage *Storage) {
	for _, components := range c.spawns {
		storage.Spawn(components...)
	}
	for _, fn := range c.defers {
		fn()
	}

	clear(c.spawns)
	c.spawns = c.spawns[:0]
	clear(c.defers)
	c.defers = c.defers[:0]
}
