package ecs

// EventType names an event channel.
type EventType string

// Event is a generic ECS event payload.
type Event struct {
	Type EventType
	Data any
}

const (
	// EventTransitionRequest carries a component.TransitionRequest.
	EventTransitionRequest EventType = "transition_request"
	// EventWindowResized carries a component.WindowResized.
	EventWindowResized EventType = "window_resized"
)

// EventQueue is a simple FIFO queue. Events not taken during a tick are
// dropped when the scheduler flushes the queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Take removes and returns every event of the given type, in arrival order.
// Events of other types stay queued.
func (q *EventQueue) Take(t EventType) []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	var out []Event
	kept := q.items[:0]
	for _, evt := range q.items {
		if evt.Type == t {
			out = append(out, evt)
			continue
		}
		kept = append(kept, evt)
	}
	for i := len(kept); i < len(q.items); i++ {
		q.items[i] = Event{}
	}
	q.items = kept
	return out
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
