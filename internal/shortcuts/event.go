package shortcuts

import (
	"sort"
	"sync"
)

// Target classifies the element a key event originated from. Events from
// editable targets (text inputs, anything accepting typed text) are never
// dispatched as shortcuts.
type Target interface {
	Editable() bool
}

// StaticTarget is a fixed Target classification.
type StaticTarget bool

// Editable implements Target.
func (t StaticTarget) Editable() bool { return bool(t) }

// KeyEvent is a single key press delivered by the host input-event stream.
type KeyEvent struct {
	Key   string
	Ctrl  bool
	Alt   bool
	Shift bool
	Meta  bool

	// Target is the origination element; nil is treated as non-editable.
	Target Target

	defaultPrevented   bool
	propagationStopped bool
}

// Canonical returns the canonical key for the event's combination.
func (e *KeyEvent) Canonical() string {
	return canonicalKey(e.Ctrl, e.Alt, e.Shift, e.Meta, e.Key)
}

// PreventDefault suppresses the host's default behavior for this event.
func (e *KeyEvent) PreventDefault() { e.defaultPrevented = true }

// StopPropagation stops the event from reaching further host processing.
func (e *KeyEvent) StopPropagation() { e.propagationStopped = true }

// DefaultPrevented reports whether default behavior was suppressed.
func (e *KeyEvent) DefaultPrevented() bool { return e.defaultPrevented }

// PropagationStopped reports whether propagation was stopped.
func (e *KeyEvent) PropagationStopped() bool { return e.propagationStopped }

// EventSource is a stream of key events a registry can attach to.
type EventSource interface {
	// Subscribe registers fn for every delivered event and returns an
	// unsubscribe function. Delivery order follows emission order.
	Subscribe(fn func(*KeyEvent)) (unsubscribe func())
}

// Stream is an in-process EventSource. The UI layer emits translated
// terminal key presses into it; tests emit synthetic events.
type Stream struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]func(*KeyEvent)
}

// NewStream creates an empty event stream.
func NewStream() *Stream {
	return &Stream{listeners: make(map[int]func(*KeyEvent))}
}

// Subscribe implements EventSource.
func (s *Stream) Subscribe(fn func(*KeyEvent)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Emit delivers the event synchronously to every subscriber, stopping
// early if a subscriber stops propagation.
func (s *Stream) Emit(event *KeyEvent) {
	s.mu.Lock()
	fns := make([]func(*KeyEvent), 0, len(s.listeners))
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		fns = append(fns, s.listeners[id])
	}
	s.mu.Unlock()

	for _, fn := range fns {
		if event.PropagationStopped() {
			return
		}
		fn(event)
	}
}
