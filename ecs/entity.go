package ecs

import "fmt"

// Entity is a slot index in the low 32 bits and that slot's generation in the
// high 32 bits. Slots start at 1, so the zero Entity is never alive.
type Entity uint64

type (
	entityID   uint32
	generation uint32
)

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<32 | uint64(id))
}

func (e Entity) id() entityID { return entityID(e & 0xffffffff) }

func (e Entity) generation() generation { return generation(e >> 32) }

// ColliderID is the id the entity's box is registered under in the probe
// world and the physics space. Ray hits report it back as Hit.Collider.
func (e Entity) ColliderID() uint64 { return uint64(e) }

// EntityForCollider is the inverse of ColliderID.
func EntityForCollider(id uint64) Entity { return Entity(id) }

func (e Entity) String() string {
	return fmt.Sprintf("%d:%d", e.id(), e.generation())
}

func (e Entity) Valid() bool {
	return e > 0
}
