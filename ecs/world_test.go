package ecs

import (
	"testing"

	"github.com/milk9111/shapetransition/ecs/component"
)

func TestSparseWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
			}
		})
	}
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func float64Ptr(f float64) *float64 {
	return &f
}

func TestSparseWorldComponentsAndQueries(t *testing.T) {
	t.Run("component_table", func(t *testing.T) {
		w := NewWorld()

		h1 := component.NewComponent[int]()
		h2 := component.NewComponent[string]()
		h3 := component.NewComponent[float64]()

		e1 := CreateEntity(w)
		e2 := CreateEntity(w)

		tests := []struct {
			name     string
			setup    func() error
			check    func(t *testing.T)
			teardown func() bool
		}{
			{
				name:  "add_int_to_e1",
				setup: func() error { return Add(w, e1, h1.Kind(), intPtr(10)) },
				check: func(t *testing.T) {
					v, ok := Get[int](w, e1, h1.Kind())
					if !ok || *v != 10 {
						t.Fatalf("expected 10, got %v ok=%v", v, ok)
					}
				},
				teardown: func() bool { return Remove[int](w, e1, h1.Kind()) },
			},
			{
				name: "add_str_to_e1_and_e2",
				setup: func() error {
					if err := Add(w, e1, h2.Kind(), stringPtr("a")); err != nil {
						return err
					}
					return Add(w, e2, h2.Kind(), stringPtr("b"))
				},
				check: func(t *testing.T) {
					if !Has[string](w, e1, h2.Kind()) || !Has[string](w, e2, h2.Kind()) {
						t.Fatalf("expected both entities to have string component")
					}
				},
				teardown: func() bool { return Remove[string](w, e1, h2.Kind()) },
			},
			{
				name:  "add_float_and_remove",
				setup: func() error { return Add(w, e1, h3.Kind(), float64Ptr(1.23)) },
				check: func(t *testing.T) {
					if _, ok := Get[float64](w, e1, h3.Kind()); !ok {
						t.Fatalf("expected float present")
					}
				},
				teardown: func() bool { return Remove[float64](w, e1, h3.Kind()) },
			},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				if err := tc.setup(); err != nil {
					t.Fatalf("setup failed: %v", err)
				}
				tc.check(t)
				if !tc.teardown() {
					t.Fatalf("teardown failed for %s", tc.name)
				}
			})
		}
	})
}

func TestForEach(t *testing.T) {
	t.Run("basic", func(t *testing.T) {
		w := NewWorld()
		h := component.NewComponent[int]()

		e1 := CreateEntity(w)
		e2 := CreateEntity(w)
		e3 := CreateEntity(w)

		if err := Add(w, e1, h.Kind(), intPtr(1)); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if err := Add(w, e3, h.Kind(), intPtr(3)); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		var ents []Entity
		ForEach(w, h.Kind(), func(e Entity, _ *int) { ents = append(ents, e) })
		set := toSet(ents)

		if _, ok := set[e1]; !ok {
			t.Fatalf("expected e1 in ForEach result")
		}
		if _, ok := set[e3]; !ok {
			t.Fatalf("expected e3 in ForEach result")
		}
		if _, ok := set[e2]; ok {
			t.Fatalf("did not expect e2 in ForEach result")
		}
	})
}

func TestForEach2(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "intersection",
			run: func(t *testing.T) {
				w := NewWorld()
				e1 := CreateEntity(w)
				e2 := CreateEntity(w)
				e3 := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[string]()

				if err := Add(w, e1, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e2, ka, intPtr(2)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e2, kb, stringPtr("two")); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e3, kb, stringPtr("three")); err != nil {
					t.Fatal(err)
				}

				var res []Entity
				ForEach2(w, ka, kb, func(e Entity, a *int, b *string) {
					if *a != 2 || *b != "two" {
						t.Fatalf("unexpected values %d %q", *a, *b)
					}
					res = append(res, e)
				})
				if len(res) != 1 || res[0] != e2 {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "ignores_dead_entities",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()

				if err := Add(w, e, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e, kb, intPtr(2)); err != nil {
					t.Fatal(err)
				}
				if !DestroyEntity(w, e) {
					t.Fatal("failed to destroy entity")
				}

				var res []Entity
				ForEach2(w, ka, kb, func(e Entity, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty result after destroy, got %v", res)
				}
			},
		},
		{
			name: "missing_store",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()

				if err := Add(w, e, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}

				called := false
				ForEach2(w, ka, kb, func(Entity, *int, *int) { called = true })
				if called {
					t.Fatal("expected no callback when the other store is missing")
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestEntityGenerations(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()

	old := CreateEntity(w)
	if err := Add(w, old, k, intPtr(1)); err != nil {
		t.Fatal(err)
	}
	if !DestroyEntity(w, old) {
		t.Fatal("destroy failed")
	}
	if DestroyEntity(w, old) {
		t.Fatal("double destroy should fail")
	}

	reused := CreateEntity(w)
	if reused.id() != old.id() {
		t.Fatalf("expected id %d to be recycled, got %d", old.id(), reused.id())
	}
	if reused == old {
		t.Fatal("recycled entity should have a new generation")
	}
	if Has(w, reused, k) {
		t.Fatal("recycled entity inherited a component")
	}
	if err := Add(w, old, k, intPtr(2)); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive for stale handle, got %v", err)
	}
}

func TestAddErrors(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)

	if err := Add(w, e, component.ComponentKind[int]{}, intPtr(1)); err != component.ErrInvalidComponentKind {
		t.Fatalf("zero kind: got %v", err)
	}
	if err := Add(w, e, component.NewComponentKind[int](), nil); err != component.ErrNilComponent {
		t.Fatalf("nil value: got %v", err)
	}
}

func TestSingleton(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[string]()

	if _, ok := Single(w, k); ok {
		t.Fatal("expected no singleton in empty world")
	}
	e := CreateEntity(w)
	if err := Add(w, e, k, stringPtr("only")); err != nil {
		t.Fatal(err)
	}
	v, ok := Single(w, k)
	if !ok || *v != "only" {
		t.Fatalf("Single = %v, %v", v, ok)
	}
	*v = "changed"
	if got, _ := Get(w, e, k); *got != "changed" {
		t.Fatal("mutation through Single was not stored")
	}
}

func TestEventQueueTake(t *testing.T) {
	var q EventQueue
	q.Push(Event{Type: EventWindowResized, Data: 1})
	q.Push(Event{Type: EventTransitionRequest, Data: "a"})
	q.Push(Event{Type: EventWindowResized, Data: 2})
	q.Push(Event{Type: EventTransitionRequest, Data: "b"})

	got := q.Take(EventTransitionRequest)
	if len(got) != 2 || got[0].Data != "a" || got[1].Data != "b" {
		t.Fatalf("Take returned %v", got)
	}
	if q.Len() != 2 {
		t.Fatalf("expected 2 events left, got %d", q.Len())
	}
	if q.Take(EventTransitionRequest) != nil {
		t.Fatal("second Take should be empty")
	}
	rest := q.Drain()
	if len(rest) != 2 || rest[0].Data != 1 || rest[1].Data != 2 {
		t.Fatalf("Drain returned %v", rest)
	}
}

func TestSchedulerOrderAndFlush(t *testing.T) {
	w := NewWorld()
	var order []string
	s := NewScheduler(
		SystemFunc(func(w *World) {
			order = append(order, "first")
			w.Events().Push(Event{Type: "late"})
		}),
		nil,
		SystemFunc(func(*World) { order = append(order, "second") }),
	)
	if len(s.Systems()) != 2 {
		t.Fatalf("expected nil systems to be skipped, got %d", len(s.Systems()))
	}

	s.Update(w)
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("systems ran as %v", order)
	}
	if w.Events().Len() != 0 {
		t.Fatal("events should be flushed at the end of a tick")
	}
}

func TestTimeAdvance(t *testing.T) {
	var tm Time
	tm.Advance(0.5)
	tm.Advance(-1)
	tm.Advance(0.25)
	if tm.Elapsed() != 0.75 || tm.Delta() != 0.25 || tm.Frames() != 3 {
		t.Fatalf("time = %v %v %v", tm.Elapsed(), tm.Delta(), tm.Frames())
	}
}
