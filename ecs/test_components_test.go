package ecs_test

import (
	"reflect"

	"github.com/plus3/circles/ecs"
)

type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Health struct {
	Current int
	Max     int
}

type Marker struct{}

type Score int32

type Bounds struct {
	W, H float32
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Marker](registry)
	ecs.RegisterComponent[Score](registry)
	return registry
}

// component is the typed form of Storage.GetComponent; nil when missing.
func component[T any](storage *ecs.Storage, id ecs.EntityId) *T {
	c, _ := storage.GetComponent(id, reflect.TypeFor[T]()).(*T)
	return c
}
