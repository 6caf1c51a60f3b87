package ecs

import "github.com/milk9111/shapetransition/ecs/component"

// Add attaches (or replaces) a component value on e.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	w.store(kind.ID(), true).Set(e, value)
	return nil
}

// Remove detaches the component from e.
func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	return w.store(kind.ID(), false).Remove(e)
}

// Has reports whether e carries the component.
func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	return w.store(kind.ID(), false).Has(e)
}

// Get returns a pointer to e's component. Mutations through the pointer are
// visible to every later reader.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !IsAlive(w, e) {
		return nil, false
	}
	v, ok := w.store(kind.ID(), false).Get(e).(*T)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// First returns the first live entity carrying the component. It is the
// lookup used for singletons.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	for _, e := range w.store(kind.ID(), false).Entities() {
		if IsAlive(w, e) {
			return e, true
		}
	}
	return 0, false
}

// Single returns the component of the first entity carrying it.
func Single[T any](w *World, kind component.ComponentKind[T]) (*T, bool) {
	e, ok := First(w, kind)
	if !ok {
		return nil, false
	}
	return Get(w, e, kind)
}

// ForEach calls fn for every live entity carrying the component.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	store := w.store(kind.ID(), false)
	if store == nil || fn == nil {
		return
	}
	ents := append([]Entity(nil), store.Entities()...)
	for _, e := range ents {
		if v, ok := Get(w, e, kind); ok {
			fn(e, v)
		}
	}
}

// ForEach2 calls fn for every live entity carrying both components.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa := w.store(ka.ID(), false)
	sb := w.store(kb.ID(), false)
	if sa == nil || sb == nil || fn == nil {
		return
	}
	// iterate smaller set
	ents := sa.Entities()
	if sb.Len() < sa.Len() {
		ents = sb.Entities()
	}
	for _, e := range append([]Entity(nil), ents...) {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		b, ok := Get(w, e, kb)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}
