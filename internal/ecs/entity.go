package ecs

// EntityID identifies an entity. IDs start at 1 and increase.
type EntityID uint64

// NilEntity is never assigned; functions return it for "no entity".
const NilEntity EntityID = 0

// ComponentType keys a component store.
type ComponentType uint8

// Component is any value stored in the world.
type Component interface {
	Type() ComponentType
}
