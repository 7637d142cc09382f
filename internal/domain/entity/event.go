package entity

// EventKind identifies what happened to an object or one of its components.
type EventKind int

const (
	EventObjectDestroyed EventKind = iota
	EventObjectEnabled
	EventObjectDisabled
	EventComponentAdded
	EventComponentRemoved
	EventComponentEnabled
	EventComponentDisabled
)

// String returns the string representation of the event kind
func (k EventKind) String() string {
	switch k {
	case EventObjectDestroyed:
		return "ObjectDestroyed"
	case EventObjectEnabled:
		return "ObjectEnabled"
	case EventObjectDisabled:
		return "ObjectDisabled"
	case EventComponentAdded:
		return "ComponentAdded"
	case EventComponentRemoved:
		return "ComponentRemoved"
	case EventComponentEnabled:
		return "ComponentEnabled"
	case EventComponentDisabled:
		return "ComponentDisabled"
	default:
		return "Unknown"
	}
}

// EventContext is delivered to an Observer. Component is nil for
// object-level events.
type EventContext struct {
	Kind      EventKind
	Object    string
	Handle    Handle
	Component Component
}

// Observer receives notifications synchronously, before the triggering call
// returns.
type Observer interface {
	OnEvent(ev EventContext)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ev EventContext)

func (f ObserverFunc) OnEvent(ev EventContext) { f(ev) }

// Observers fans one notification out to several observers in order.
type Observers []Observer

func (os Observers) OnEvent(ev EventContext) {
	for _, o := range os {
		if o != nil {
			o.OnEvent(ev)
		}
	}
}

// EventRecorder keeps every event it receives, in delivery order.
type EventRecorder struct {
	events []EventContext
}

// NewEventRecorder creates an empty recorder.
func NewEventRecorder() *EventRecorder {
	return &EventRecorder{}
}

func (r *EventRecorder) OnEvent(ev EventContext) {
	r.events = append(r.events, ev)
}

// Events returns a copy of the recorded events.
func (r *EventRecorder) Events() []EventContext {
	out := make([]EventContext, len(r.events))
	copy(out, r.events)
	return out
}

// Count returns how many events of kind k were recorded.
func (r *EventRecorder) Count(k EventKind) int {
	n := 0
	for _, ev := range r.events {
		if ev.Kind == k {
			n++
		}
	}
	return n
}

// Kinds returns the recorded kinds in order.
func (r *EventRecorder) Kinds() []EventKind {
	out := make([]EventKind, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Kind
	}
	return out
}

// Reset drops all recorded events.
func (r *EventRecorder) Reset() {
	r.events = r.events[:0]
}
