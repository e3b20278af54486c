package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/circles/ecs"
)

type spawnOnce struct {
	done bool
}

func (s *spawnOnce) Execute(frame *ecs.UpdateFrame) {
	if s.done {
		return
	}
	s.done = true
	frame.Commands.Spawn(Position{X: 1}, Velocity{})
	frame.Commands.Spawn(Position{X: 2}, Velocity{})
}

type countMovable struct {
	Movable ecs.Query[movable]
	Seen    []int
}

func (s *countMovable) Execute(frame *ecs.UpdateFrame) {
	s.Seen = append(s.Seen, s.Movable.Len())
}

func TestCommandsFlushAtEndOfStage(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	counter := &countMovable{}
	scheduler.Register(&spawnOnce{})
	scheduler.Register(counter)

	scheduler.Once(0)
	scheduler.Once(0)

	// spawns from the first tick are invisible until the stage ends
	assert.Equal(t, []int{0, 2}, counter.Seen)
	assert.Equal(t, 2, storage.EntityCount())
}

func TestCommandsOrdering(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{X: 1})

	commands := &ecs.Commands{}
	var order []string

	// deferred functions run after every queued spawn, whatever the queue order
	commands.Defer(func() {
		order = append(order, "defer")
		assert.Equal(t, 2, storage.EntityCount())
	})
	commands.Spawn(Position{X: 2})
	require.Equal(t, 2, commands.Pending())
	assert.Equal(t, 1, storage.EntityCount(), "nothing applied before Flush")

	commands.Flush(storage)
	assert.Equal(t, []string{"defer"}, order)
	assert.Zero(t, commands.Pending())

	commands.Flush(storage)
	assert.Equal(t, []string{"defer"}, order)
}

func TestCommandsSpawnKeepsQueueOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	commands := &ecs.Commands{}

	for i := range 4 {
		commands.Spawn(Position{X: float32(i)}, Velocity{})
	}
	commands.Flush(storage)

	q := ecs.NewQuery[movable](storage)
	q.Execute()

	var xs []float32
	for m := range q.Values() {
		xs = append(xs, m.Position.X)
	}
	assert.Equal(t, []float32{0, 1, 2, 3}, xs)
}
