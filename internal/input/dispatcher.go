package input

// Subscriber registers handlers for (event type, modifier) pairs. Destroy drops every
// registration at once; the selection tool only ever talks to its own Subscriber.
type Subscriber interface {
	SetInputAction(t EventType, m Modifier, h Handler)
	RemoveInputAction(t EventType, m Modifier)
	Destroy()
}

type actionKey struct {
	event    EventType
	modifier Modifier
}

// Dispatcher holds handlers keyed by event type and modifier. A handler registered for
// (LeftUp, Alt) fires only while Alt is held; one registered for (LeftUp, None) fires only
// while no modifier is held.
type Dispatcher struct {
	actions   map[actionKey]Handler
	destroyed bool
}

// NewDispatcher returns an empty dispatcher not attached to any hub.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{actions: make(map[actionKey]Handler)}
}

// SetInputAction registers h for the pair, replacing any previous handler.
// A nil h removes the registration. No-op after Destroy.
func (d *Dispatcher) SetInputAction(t EventType, m Modifier, h Handler) {
	if d.destroyed {
		return
	}
	if h == nil {
		delete(d.actions, actionKey{t, m})
		return
	}
	d.actions[actionKey{t, m}] = h
}

// RemoveInputAction drops the handler for the pair, if any.
func (d *Dispatcher) RemoveInputAction(t EventType, m Modifier) {
	delete(d.actions, actionKey{t, m})
}

// InputAction returns the handler registered for the pair, or nil.
func (d *Dispatcher) InputAction(t EventType, m Modifier) Handler {
	return d.actions[actionKey{t, m}]
}

// Len is the number of registered handlers.
func (d *Dispatcher) Len() int {
	return len(d.actions)
}

// Dispatch runs the handler for exactly (t, m). Returns false when none is registered.
func (d *Dispatcher) Dispatch(t EventType, m Modifier, e Event) bool {
	if d.destroyed {
		return false
	}
	h, ok := d.actions[actionKey{t, m}]
	if !ok {
		return false
	}
	h(e)
	return true
}

// Destroy removes all handlers. Safe to call more than once.
func (d *Dispatcher) Destroy() {
	d.destroyed = true
	clear(d.actions)
}

// IsDestroyed reports whether Destroy has been called.
func (d *Dispatcher) IsDestroyed() bool {
	return d.destroyed
}

// Hub fans events out to every live dispatcher created from it, in creation order.
// Destroyed dispatchers are dropped on the next Dispatch.
type Hub struct {
	dispatchers []*Dispatcher
}

// NewHub returns a hub with no dispatchers.
func NewHub() *Hub {
	return &Hub{}
}

// NewDispatcher creates a dispatcher attached to the hub.
func (h *Hub) NewDispatcher() *Dispatcher {
	d := NewDispatcher()
	h.dispatchers = append(h.dispatchers, d)
	return d
}

// Len is the number of attached, non-destroyed dispatchers.
func (h *Hub) Len() int {
	n := 0
	for _, d := range h.dispatchers {
		if !d.destroyed {
			n++
		}
	}
	return n
}

// Dispatch delivers the event to every attached dispatcher.
func (h *Hub) Dispatch(t EventType, m Modifier, e Event) {
	live := h.dispatchers[:0]
	for _, d := range h.dispatchers {
		if !d.destroyed {
			live = append(live, d)
		}
	}
	h.dispatchers = live
	// Handlers may create or destroy dispatchers; iterate over a snapshot.
	snapshot := append([]*Dispatcher(nil), live...)
	for _, d := range snapshot {
		d.Dispatch(t, m, e)
	}
}
