package shortcuts

import (
	"sync"

	logger "github.com/xipchat/cli/internal/logger"
)

// Registry maps canonical key combinations to bound handlers and dispatches
// key events from an EventSource to them while listening.
//
// At most one binding is active per canonical combination; registering a
// second binding for the same combination silently replaces the first
// (a diagnostic is logged, the contract is last-write-wins).
type Registry struct {
	mu          sync.RWMutex
	source      EventSource
	bindings    map[string]Binding
	listening   bool
	unsubscribe func()
}

// NewRegistry creates a registry attached to the given event source.
// The registry starts in the not-listening state.
func NewRegistry(source EventSource) *Registry {
	return &Registry{
		source:   source,
		bindings: make(map[string]Binding),
	}
}

// Register inserts or replaces the binding for its canonical combination.
// It always succeeds; a missing key degrades to a modifier-only canonical
// key rather than failing.
func (r *Registry) Register(binding Binding) {
	canonical := binding.Canonical()

	r.mu.Lock()
	previous, replaced := r.bindings[canonical]
	r.bindings[canonical] = binding
	r.mu.Unlock()

	if replaced {
		logger.Warn("shortcut binding replaced",
			"combination", canonical,
			"previous", previous.Description,
			"current", binding.Description)
	}
}

// Unregister removes the binding matching the combination of the given
// binding, if present. Handler and description are irrelevant to identity.
// Unregistering an unknown combination is a no-op.
func (r *Registry) Unregister(binding Binding) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.bindings, binding.Canonical())
}

// StartListening attaches the registry to its event source. Calling it
// while already listening is a no-op; a single event never produces more
// than one dispatch cycle.
func (r *Registry) StartListening() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.listening {
		return
	}

	r.unsubscribe = r.source.Subscribe(r.handleEvent)
	r.listening = true
}

// StopListening detaches the registry from its event source. Safe to call
// at any point of the lifecycle, including before the first StartListening.
func (r *Registry) StopListening() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.listening {
		return
	}

	r.unsubscribe()
	r.unsubscribe = nil
	r.listening = false
}

// Listening reports whether the registry is attached to its event source.
func (r *Registry) Listening() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.listening
}

// Bindings returns a snapshot of the registered bindings.
func (r *Registry) Bindings() []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bindings := make([]Binding, 0, len(r.bindings))
	for _, binding := range r.bindings {
		bindings = append(bindings, binding)
	}

	return bindings
}

// handleEvent runs one dispatch cycle. Events originating from editable
// targets are ignored outright: no lookup, no default suppression. On a
// match the event's default behavior and propagation are suppressed before
// the handler runs synchronously. Handler panics are not recovered here;
// failure policy belongs to the caller.
func (r *Registry) handleEvent(event *KeyEvent) {
	if event.Target != nil && event.Target.Editable() {
		return
	}

	r.mu.RLock()
	binding, found := r.bindings[event.Canonical()]
	r.mu.RUnlock()

	if !found {
		return
	}

	event.PreventDefault()
	event.StopPropagation()

	if binding.Handler != nil {
		binding.Handler()
	}
}
