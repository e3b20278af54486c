package ecs_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/circles/ecs"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		archetypeId uint32
		index       uint32
	}{
		{0, 0},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{1, 0},
		{0, 1},
		{0x12345678, 0x9ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("archetype=%d,index=%d", tt.archetypeId, tt.index), func(t *testing.T) {
			id := ecs.NewEntityId(tt.archetypeId, tt.index)
			assert.Equal(t, tt.archetypeId, id.ArchetypeId())
			assert.Equal(t, tt.index, id.Index())
		})
	}

	assert.False(t, ecs.EntityId(0).Valid())
	assert.True(t, ecs.NewEntityId(1, 0).Valid())
}

func TestSpawnAndGetComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 3, Y: 4}, Velocity{DX: 1, DY: 2})

	pos := component[Position](storage, id)
	require.NotNil(t, pos)
	assert.Equal(t, Position{X: 3, Y: 4}, *pos)

	vel := component[Velocity](storage, id)
	require.NotNil(t, vel)
	assert.Equal(t, Velocity{DX: 1, DY: 2}, *vel)

	assert.Nil(t, component[Health](storage, id))
	assert.Nil(t, storage.GetComponent(id, reflect.TypeFor[Health]()))
	archetype := storage.GetArchetypeById(id.ArchetypeId())
	require.NotNil(t, archetype)
	assert.True(t, archetype.HasComponent(reflect.TypeFor[Position]()))
	assert.False(t, archetype.HasComponent(reflect.TypeFor[Health]()))
}

func TestComponentPointersAreStable(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Position{X: 1})
	ptr := component[Position](storage, first)

	for i := range 500 {
		storage.Spawn(Position{X: float32(i)})
	}

	ptr.X = 42
	assert.Equal(t, float32(42), component[Position](storage, first).X)
}

func TestSpawnSharesArchetypeRegardlessOfOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{}, Velocity{})
	b := storage.Spawn(Velocity{}, Position{})

	assert.Equal(t, a.ArchetypeId(), b.ArchetypeId())
	assert.Len(t, storage.GetArchetypes(), 1)
	assert.Equal(t, 2, storage.EntityCount())
}

func TestRowsAreSequential(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	for i := range 130 {
		id := storage.Spawn(Position{X: float32(i)})
		assert.Equal(t, uint32(i), id.Index())
	}
	assert.Equal(t, 130, storage.EntityCount())

	archetype := storage.GetArchetypes()[0]
	var rows []uint32
	for id := range archetype.Iter() {
		rows = append(rows, id.Index())
	}
	require.Len(t, rows, 130)
	assert.Equal(t, uint32(0), rows[0])
	assert.Equal(t, uint32(129), rows[129])
	assert.Equal(t, float32(129), component[Position](storage, ecs.NewEntityId(archetype.ID(), 129)).X)

	// unknown ids and rows resolve to nothing
	assert.Nil(t, component[Position](storage, ecs.NewEntityId(0xDEAD, 0)))
	assert.Nil(t, component[Position](storage, ecs.NewEntityId(archetype.ID(), 130)))
}

func TestSpawnPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { storage.Spawn() })
	assert.Panics(t, func() { storage.Spawn(map[string]int{}) })
	assert.Panics(t, func() { storage.Spawn("not registered") })
}

func TestPrimitiveComponents(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Score(7), Marker{})
	score := component[Score](storage, id)
	require.NotNil(t, score)
	assert.Equal(t, Score(7), *score)
	assert.NotNil(t, component[Marker](storage, id))
}

func TestSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var bounds *Bounds
	assert.False(t, storage.ReadSingleton(&bounds))

	storage.AddSingleton(Bounds{W: 10, H: 20})
	require.True(t, storage.ReadSingleton(&bounds))
	assert.Equal(t, Bounds{W: 10, H: 20}, *bounds)

	single := ecs.NewSingleton[Bounds](storage)
	single.Get().W = 99
	assert.Equal(t, float32(99), bounds.W)

	assert.Panics(t, func() { storage.ReadSingleton(bounds) })
}

func TestNewSingletonInitializer(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := ecs.NewSingleton(storage, Bounds{W: 1, H: 2})
	second := ecs.NewSingleton(storage, Bounds{W: 100, H: 200})

	// the initializer only applies when the singleton is missing
	assert.Equal(t, Bounds{W: 1, H: 2}, *second.Get())
	assert.Same(t, first.Get(), second.Get())

	var missing ecs.Singleton[Health]
	missing.Init(storage)
	assert.Nil(t, missing.Get())

	// a singleton added later is picked up on the next Get
	storage.AddSingleton(Health{Current: 3})
	require.NotNil(t, missing.Get())
	assert.Equal(t, 3, missing.Get().Current)
}

func TestCollectStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	stats := storage.CollectStats()
	assert.Zero(t, stats.ArchetypeCount)
	assert.Zero(t, stats.TotalEntityCount)
	assert.Zero(t, stats.SingletonCount)

	storage.Spawn(Position{}, Velocity{})
	storage.Spawn(Position{}, Velocity{})
	storage.Spawn(Health{})
	storage.AddSingleton(Bounds{})

	stats = storage.CollectStats()
	assert.Equal(t, 2, stats.ArchetypeCount)
	assert.Equal(t, 3, stats.TotalEntityCount)
	assert.Equal(t, 1, stats.SingletonCount)
	assert.Equal(t, []string{"ecs_test.Bounds"}, stats.SingletonTypes)

	require.Len(t, stats.ArchetypeBreakdown, 2)
	assert.Equal(t, 2, stats.ArchetypeBreakdown[0].EntityCount)
	assert.Equal(t, []string{"ecs_test.Position", "ecs_test.Velocity"}, stats.ArchetypeBreakdown[0].ComponentTypes)
	assert.Equal(t, 1, stats.ArchetypeBreakdown[1].EntityCount)
}
