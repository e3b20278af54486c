package ecs

import (
	"iter"
	"reflect"
	"slices"
)

// Archetype holds every entity that has exactly the same set of component
// types. Each type gets its own column; a row index addresses the same
// entity in all of them.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []column
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]column, len(types)),
	}
	for i, t := range types {
		a.columns[i] = registry.newColumn(t)
	}
	return a
}

// ID returns the archetype's hash identifier.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the archetype's component types, sorted by name.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of entities.
func (a *Archetype) Len() int {
	if len(a.columns) == 0 {
		return 0
	}
	return a.columns[0].Len()
}

// HasComponent reports whether entities of this archetype carry t.
func (a *Archetype) HasComponent(t reflect.Type) bool {
	return slices.Contains(a.types, t)
}

func (a *Archetype) columnIndex(t reflect.Type) int {
	return slices.Index(a.types, t)
}

func (a *Archetype) spawn(components []any) uint32 {
	row := -1
	for _, comp := range components {
		idx := a.columnIndex(componentType(comp))
		if idx < 0 {
			continue
		}
		row = a.columns[idx].Append(comp)
	}
	return uint32(row)
}

// GetComponent returns a pointer to the component of type t at row, or nil.
func (a *Archetype) GetComponent(row uint32, t reflect.Type) any {
	idx := a.columnIndex(t)
	if idx < 0 {
		return nil
	}
	return a.columns[idx].Get(int(row))
}

// Iter yields the ids of the archetype's entities in row order.
func (a *Archetype) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		if len(a.columns) == 0 {
			return
		}
		for row := range a.columns[0].Rows() {
			if !yield(NewEntityId(a.id, uint32(row))) {
				return
			}
		}
	}
}
