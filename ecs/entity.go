package ecs

// EntityId packs the archetype ID into the upper 32 bits and the row inside
// that archetype into the lower 32 bits. The zero value means "no entity".
type EntityId uint64

// NewEntityId builds an EntityId from an archetype ID and a row.
func NewEntityId(archetypeId uint32, row uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(row))
}

// ArchetypeId returns the archetype half of the id.
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index returns the row half of the id.
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Valid reports whether the id refers to an entity at all.
func (e EntityId) Valid() bool {
	return e != 0
}
