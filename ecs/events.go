package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const EventTrigger = "trigger"

// TriggerEventKind identifies trigger overlap transitions.
type TriggerEventKind string

const (
	TriggerEnter TriggerEventKind = "enter"
	TriggerExit  TriggerEventKind = "exit"
)

// TriggerEvent is emitted when a body starts or stops overlapping a trigger volume.
type TriggerEvent struct {
	Trigger Entity
	Other   Entity
	Kind    TriggerEventKind
}

// EventQueue is a simple FIFO queue. Events live until the end of the frame
// so every system after the producer can observe them.
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

// Peek returns the queued events without clearing them.
func (q *EventQueue) Peek() []Event {
	if q == nil {
		return nil
	}
	return q.items
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

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}

// TriggerEvents returns this frame's trigger events of the given kind in
// emission order.
func TriggerEvents(w *World, kind TriggerEventKind) []TriggerEvent {
	if w == nil {
		return nil
	}
	var out []TriggerEvent
	for _, evt := range w.events.items {
		if evt.Type != EventTrigger {
			continue
		}
		te, ok := evt.Data.(TriggerEvent)
		if !ok || te.Kind != kind {
			continue
		}
		out = append(out, te)
	}
	return out
}
