package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// eface mirrors the runtime layout of an empty interface.
type eface struct {
	_    unsafe.Pointer
	data unsafe.Pointer
}

// Query iterates entities that carry a given set of components.
//
// T must be a struct whose fields are pointers to component types. Embedded
// fields are required; named fields may be tagged `ecs:"optional"` and are
// left nil when absent. A field of type EntityId receives the entity's id.
//
// Results are cached by Execute, which the Scheduler calls before each
// system runs. Iteration order is archetype creation order, then row order,
// and is stable across Executes; new entities are appended at the end of
// their archetype.
type Query[T any] struct {
	storage *Storage
	fields  []queryField

	archetypes     []*Archetype
	archetypesSeen int

	components []T
	valid      bool
}

type queryField struct {
	typ      reflect.Type
	offset   uintptr
	optional bool
	entityId bool
}

// NewQuery creates a query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage and drops all caches. Called by the
// Scheduler during registration.
func (q *Query[T]) Init(storage *Storage) {
	q.storage = storage
	q.fields = queryFields(reflect.TypeFor[T]())
	q.archetypes = nil
	q.archetypesSeen = -1
	q.valid = false
}

func queryFields(t reflect.Type) []queryField {
	if t.Kind() != reflect.Struct {
		panic("Query type parameter must be a struct")
	}

	fields := make([]queryField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Type == entityIdType {
			fields = append(fields, queryField{offset: f.Offset, entityId: true})
			continue
		}
		if f.Type.Kind() != reflect.Pointer {
			panic("Query struct fields must be pointer types or EntityId")
		}

		optional := false
		if tag := f.Tag.Get("ecs"); tag != "" && !f.Anonymous {
			if tag != "optional" {
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
			optional = true
		}

		fields = append(fields, queryField{
			typ:      f.Type.Elem(),
			offset:   f.Offset,
			optional: optional,
		})
	}
	return fields
}

func (q *Query[T]) matches(archetype *Archetype) bool {
	for _, f := range q.fields {
		if f.entityId || f.optional {
			continue
		}
		if !archetype.HasComponent(f.typ) {
			return false
		}
	}
	return true
}

func (q *Query[T]) refreshArchetypes() {
	all := q.storage.GetArchetypes()
	if q.archetypes != nil && len(all) == q.archetypesSeen {
		return
	}
	q.archetypes = q.archetypes[:0]
	for _, a := range all {
		if q.matches(a) {
			q.archetypes = append(q.archetypes, a)
		}
	}
	q.archetypesSeen = len(all)
}

// fill writes the entity's component pointers into the struct at dst.
func (q *Query[T]) fill(dst unsafe.Pointer, archetype *Archetype, row uint32) bool {
	for _, f := range q.fields {
		fieldPtr := unsafe.Add(dst, f.offset)
		if f.entityId {
			*(*EntityId)(fieldPtr) = NewEntityId(archetype.id, row)
			continue
		}

		var comp any
		if idx := archetype.columnIndex(f.typ); idx >= 0 {
			comp = archetype.columns[idx].Get(int(row))
		}
		if comp == nil {
			if !f.optional {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}
		*(*unsafe.Pointer)(fieldPtr) = (*eface)(unsafe.Pointer(&comp)).data
	}
	return true
}

// Execute rebuilds the cached result set.
func (q *Query[T]) Execute() {
	q.refreshArchetypes()

	q.components = q.components[:0]

	for _, archetype := range q.archetypes {
		for id := range archetype.Iter() {
			var item T
			if !q.fill(unsafe.Pointer(&item), archetype, id.Index()) {
				continue
			}
			q.components = append(q.components, item)
		}
	}

	q.valid = true
}

func (q *Query[T]) mustBeValid(method string) {
	if !q.valid {
		panic("Query." + method + "() called before Query.Execute()")
	}
}

// Len returns the number of cached results.
func (q *Query[T]) Len() int {
	q.mustBeValid("Len")
	return len(q.components)
}

// Values yields cached results. Declare an EntityId field in T to get ids.
func (q *Query[T]) Values() iter.Seq[T] {
	q.mustBeValid("Values")
	return func(yield func(T) bool) {
		for i := range q.components {
			if !yield(q.components[i]) {
				return
			}
		}
	}
}

// Pairs yields every unordered pair of cached results exactly once, as
// (a, b) with a before b in iteration order. Pairs are visited in
// lexicographic order of their positions: (0,1), (0,2), ..., (1,2), ...
// Component pointers alias storage, so a write made while visiting one pair
// is seen by every later pair.
func (q *Query[T]) Pairs() iter.Seq2[T, T] {
	q.mustBeValid("Pairs")
	return func(yield func(T, T) bool) {
		n := len(q.components)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if !yield(q.components[i], q.components[j]) {
					return
				}
			}
		}
	}
}
