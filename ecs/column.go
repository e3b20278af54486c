package ecs

import (
	"iter"
	"reflect"
)

// column is a type-erased view over the storage for one component type
// inside one archetype. Rows are stable: a row never moves.
type column interface {
	Append(item any) int
	Get(row int) any
	Has(row int) bool
	Rows() iter.Seq[int]
	Len() int
}

// ComponentRegistry records which component types a Storage may hold and
// how to build a column for each of them.
type ComponentRegistry struct {
	factories map[reflect.Type]func() column
}

// NewComponentRegistry creates an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() column),
	}
}

// RegisterComponent makes T usable as a component in storages built from r.
// Registering the same type twice is harmless.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() column {
		return &blockColumn[T]{}
	}
}

func (r *ComponentRegistry) newColumn(t reflect.Type) column {
	factory, ok := r.factories[t]
	if !ok {
		panic("component type " + t.String() + " not registered")
	}
	return factory()
}

const blockSize = 64

// blockColumn stores values in fixed-size blocks so that pointers handed out
// by Get stay valid while the column grows. Rows are handed out in order and
// never reused.
type blockColumn[T any] struct {
	blocks []*[blockSize]T
	count  int
}

func (c *blockColumn[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case T:
		value = v
	case *T:
		value = *v
	default:
		return -1
	}

	row := c.count
	if row/blockSize >= len(c.blocks) {
		c.blocks = append(c.blocks, new([blockSize]T))
	}
	c.blocks[row/blockSize][row%blockSize] = value
	c.count++
	return row
}

func (c *blockColumn[T]) Has(row int) bool {
	return row >= 0 && row < c.count
}

func (c *blockColumn[T]) Get(row int) any {
	if !c.Has(row) {
		return nil
	}
	return &c.blocks[row/blockSize][row%blockSize]
}

// Rows yields rows in ascending order.
func (c *blockColumn[T]) Rows() iter.Seq[int] {
	return func(yield func(int) bool) {
		for row := 0; row < c.count; row++ {
			if !yield(row) {
				return
			}
		}
	}
}

func (c *blockColumn[T]) Len() int {
	return c.count
}
