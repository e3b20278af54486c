package ecs

import (
	"hash/fnv"
	"reflect"
	"slices"
	"strings"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Storage owns every entity, component and singleton of one world.
type Storage struct {
	registry   *ComponentRegistry
	archetypes *intmap.Map[uint32, *Archetype]
	singletons map[reflect.Type]*singletonEntry

	// creation order, so iteration over the storage is stable
	ordered []*Archetype
}

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// NewStorage creates an empty storage for the component types in registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		archetypes: intmap.New[uint32, *Archetype](16),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Spawn creates an entity holding the given components and returns its id.
// Components may be passed by value or by pointer; they are always copied.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := componentTypes(components)
	id := archetypeHash(types)

	archetype, ok := s.archetypes.Get(id)
	if !ok {
		archetype = newArchetype(id, types, s.registry)
		s.archetypes.Put(id, archetype)
		s.ordered = append(s.ordered, archetype)
	}

	return NewEntityId(id, archetype.spawn(components))
}

// GetComponent returns a pointer to the entity's component of type t, or nil.
func (s *Storage) GetComponent(id EntityId, t reflect.Type) any {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return nil
	}
	return archetype.GetComponent(id.Index(), t)
}

// GetArchetypeById returns the archetype with the given id, or nil.
func (s *Storage) GetArchetypeById(id uint32) *Archetype {
	archetype, _ := s.archetypes.Get(id)
	return archetype
}

// GetArchetypes returns all archetypes in creation order.
func (s *Storage) GetArchetypes() []*Archetype {
	return s.ordered
}

// EntityCount returns the number of entities across all archetypes.
func (s *Storage) EntityCount() int {
	total := 0
	for _, a := range s.ordered {
		total += a.Len()
	}
	return total
}

// AddSingleton stores value as the singleton of its type, replacing any
// previous one. Pointers already handed out for that type keep pointing at
// the old value.
func (s *Storage) AddSingleton(value any) {
	t := componentType(value)
	ptr := reflect.New(t)
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	ptr.Elem().Set(rv)
	s.singletons[t] = &singletonEntry{
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
}

// ReadSingleton points *target at the stored singleton of type T.
// It returns false when no such singleton exists.
func (s *Storage) ReadSingleton(target any) bool {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Pointer {
		panic("ReadSingleton expects a pointer to a pointer")
	}
	entry := s.singletons[rv.Elem().Type().Elem()]
	if entry == nil {
		return false
	}
	rv.Elem().Set(entry.value)
	return true
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

func componentType(component any) reflect.Type {
	t := reflect.TypeOf(component)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// componentTypes returns the sorted types of components. Reference kinds are
// rejected since the storage copies components by value.
func componentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		t := componentType(comp)
		switch t.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}
		types = append(types, t)
	}
	sortTypes(types)
	return types
}

func sortTypes(types []reflect.Type) {
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(typeKey(a), typeKey(b))
	})
}

func typeKey(t reflect.Type) string {
	return t.PkgPath() + "." + t.String()
}

// archetypeHash is FNV-1a over the qualified names of the sorted types.
func archetypeHash(types []reflect.Type) uint32 {
	h := fnv.New32a()
	for _, t := range types {
		h.Write([]byte(typeKey(t)))
		h.Write([]byte{0})
	}
	return h.Sum32()
}
