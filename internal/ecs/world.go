package ecs

import (
	"slices"

	"github.com/zyedidia/generic/mapset"
)

// store holds every component of one type.
type store map[EntityID]Component

// World owns entity IDs and their components. IDs are never reused, so
// ascending ID order is creation order.
type World struct {
	nextID EntityID
	alive  mapset.Set[EntityID]
	stores []store // indexed by ComponentType, grown on demand
}

func NewWorld() *World {
	return &World{nextID: 1, alive: mapset.New[EntityID]()}
}

// CreateEntity mints a new live entity.
func (w *World) CreateEntity() EntityID {
	id := w.nextID
	w.nextID++
	w.alive.Put(id)
	return id
}

// DestroyEntity drops the entity and all its components. Destroying an
// unknown or already destroyed entity is a no-op.
func (w *World) DestroyEntity(id EntityID) {
	if !w.alive.Has(id) {
		return
	}
	w.alive.Remove(id)
	for _, s := range w.stores {
		delete(s, id)
	}
}

func (w *World) Alive(id EntityID) bool { return w.alive.Has(id) }

// Count returns the number of live entities.
func (w *World) Count() int { return w.alive.Size() }

func (w *World) store(t ComponentType) store {
	if int(t) < len(w.stores) {
		return w.stores[t]
	}
	return nil
}

// Add attaches c to id, replacing any component of the same type.
func (w *World) Add(id EntityID, c Component) {
	t := c.Type()
	if int(t) >= len(w.stores) {
		w.stores = append(w.stores, make([]store, int(t)+1-len(w.stores))...)
	}
	if w.stores[t] == nil {
		w.stores[t] = make(store)
	}
	w.stores[t][id] = c
}

// Get returns id's component of type t, or nil.
func (w *World) Get(id EntityID, t ComponentType) Component {
	return w.store(t)[id]
}

func (w *World) Remove(id EntityID, t ComponentType) {
	delete(w.store(t), id)
}

func (w *World) Has(id EntityID, t ComponentType) bool {
	_, ok := w.store(t)[id]
	return ok
}

// Query returns the live entities carrying every listed type, in
// ascending ID order. With no types it returns nil.
func (w *World) Query(types ...ComponentType) []EntityID {
	if len(types) == 0 {
		return nil
	}
	// Scan the smallest store and probe the others.
	base := w.store(types[0])
	for _, t := range types[1:] {
		if s := w.store(t); len(s) < len(base) {
			base = s
		}
	}

	var out []EntityID
next:
	for id := range base {
		if !w.alive.Has(id) {
			continue
		}
		for _, t := range types {
			if !w.Has(id, t) {
				continue next
			}
		}
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
