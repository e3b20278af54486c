package ecs_test

import (
	"strconv"
	"testing"

	"github.com/plus3/circles/ecs"
)

func BenchmarkSpawn(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		storage.Spawn(Position{X: float32(i)}, Velocity{})
	}
}

func BenchmarkQueryExecute(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	for i := range 1000 {
		storage.Spawn(Position{X: float32(i)}, Velocity{})
	}
	q := ecs.NewQuery[movable](storage)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q.Execute()
	}
}

func BenchmarkPairs(b *testing.B) {
	for _, n := range []int{10, 100, 500} {
		b.Run("n="+strconv.Itoa(n), func(b *testing.B) {
			storage := ecs.NewStorage(newTestRegistry())
			for i := range n {
				storage.Spawn(Position{X: float32(i)}, Velocity{})
			}
			q := ecs.NewQuery[movable](storage)
			q.Execute()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				for a, c := range q.Pairs() {
					dx := a.Position.X - c.Position.X
					a.Velocity.DX += dx
					c.Velocity.DX -= dx
				}
			}
		})
	}
}

