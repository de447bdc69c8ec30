package ecs

import (
	"slices"
	"testing"
)

type hp struct{ n int }

func (hp) Type() ComponentType { return 1 }

type tag struct{}

func (tag) Type() ComponentType { return 2 }

// far exercises store growth past the low component types.
type far struct{}

func (far) Type() ComponentType { return 200 }

func TestEntityLifecycle(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()
	if id == NilEntity || !w.Alive(id) {
		t.Fatalf("new entity %d should be alive and non-nil", id)
	}
	w.Add(id, hp{n: 42})
	if got, ok := w.Get(id, hp{}.Type()).(hp); !ok || got.n != 42 {
		t.Fatalf("Get = %#v, want hp{42}", w.Get(id, hp{}.Type()))
	}
	w.Add(id, hp{n: 7})
	if got := w.Get(id, hp{}.Type()).(hp); got.n != 7 {
		t.Errorf("Add should replace, got %d", got.n)
	}

	w.DestroyEntity(id)
	w.DestroyEntity(id)
	if w.Alive(id) || w.Count() != 0 {
		t.Error("entity should be gone after DestroyEntity")
	}
	if w.Get(id, hp{}.Type()) != nil {
		t.Error("components should be dropped with the entity")
	}
}

func TestHasAndRemove(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()
	w.Remove(id, 99) // never added: no-op

	if w.Has(id, 1) {
		t.Fatal("Has before Add")
	}
	w.Add(id, hp{})
	w.Add(id, far{})
	if !w.Has(id, 1) || !w.Has(id, 200) {
		t.Fatal("Has after Add")
	}
	w.Remove(id, 1)
	if w.Has(id, 1) || w.Get(id, 1) != nil {
		t.Fatal("component survived Remove")
	}
}

func TestQuery(t *testing.T) {
	w := NewWorld()
	both := w.CreateEntity()
	w.Add(both, hp{})
	w.Add(both, tag{})
	onlyHP := w.CreateEntity()
	w.Add(onlyHP, hp{})
	dead := w.CreateEntity()
	w.Add(dead, hp{})
	w.Add(dead, tag{})
	w.DestroyEntity(dead)
	w.CreateEntity() // no components

	cases := []struct {
		name  string
		types []ComponentType
		want  []EntityID
	}{
		{"single type", []ComponentType{1}, []EntityID{both, onlyHP}},
		{"intersection", []ComponentType{1, 2}, []EntityID{both}},
		{"order independent", []ComponentType{2, 1}, []EntityID{both}},
		{"unknown type", []ComponentType{1, 77}, nil},
		{"no types", nil, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := w.Query(tc.types...); !slices.Equal(got, tc.want) {
				t.Errorf("Query(%v) = %v, want %v", tc.types, got, tc.want)
			}
		})
	}
}

func TestQueryReturnsCreationOrder(t *testing.T) {
	w := NewWorld()
	var want []EntityID
	for range 20 {
		id := w.CreateEntity()
		w.Add(id, tag{})
		want = append(want, id)
	}
	w.DestroyEntity(want[7])
	want = slices.Delete(want, 7, 8)

	if got := w.Query(2); !slices.Equal(got, want) {
		t.Fatalf("Query = %v, want %v", got, want)
	}
	if w.Count() != len(want) {
		t.Errorf("Count = %d, want %d", w.Count(), len(want))
	}
}
