package input

import "math"

// DefaultClickTolerance is how far, in pixels, the pointer may travel between press and
// release for the release to also count as a click.
const DefaultClickTolerance = 5

// State is the raw pointer and modifier state sampled once per frame.
type State struct {
	Position Position
	LeftDown bool
	Shift    bool
	Ctrl     bool
	Alt      bool
}

// Modifier returns the modifier events are qualified with. When several keys are held
// Alt wins over Ctrl, and Ctrl over Shift.
func (s State) Modifier() Modifier {
	switch {
	case s.Alt:
		return Alt
	case s.Ctrl:
		return Ctrl
	case s.Shift:
		return Shift
	}
	return None
}

// Emitter receives the events a Tracker synthesizes. *Hub and *Dispatcher satisfy it.
type Emitter interface {
	Dispatch(t EventType, m Modifier, e Event)
}

// Tracker turns per-frame State samples into discrete events. Within one sample the order
// is MouseMove, then LeftDown on a press edge, or LeftUp followed by LeftClick on a release edge.
type Tracker struct {
	ClickTolerance float32

	out      Emitter
	last     State
	primed   bool
	pressed  bool
	pressPos Position
}

// NewTracker returns a tracker that emits into out with DefaultClickTolerance.
func NewTracker(out Emitter) *Tracker {
	return &Tracker{ClickTolerance: DefaultClickTolerance, out: out}
}

// Sample compares s against the previous sample and emits the resulting events.
// The first sample only primes the tracker.
func (t *Tracker) Sample(s State) {
	if !t.primed {
		t.last = s
		t.primed = true
		return
	}
	mod := s.Modifier()

	if s.Position != t.last.Position {
		t.out.Dispatch(MouseMove, mod, Event{StartPosition: t.last.Position, EndPosition: s.Position})
	}

	switch {
	case s.LeftDown && !t.last.LeftDown:
		t.pressed = true
		t.pressPos = s.Position
		t.out.Dispatch(LeftDown, mod, Event{Position: s.Position})
	case !s.LeftDown && t.last.LeftDown:
		t.out.Dispatch(LeftUp, mod, Event{Position: s.Position})
		if t.pressed && distance(t.pressPos, s.Position) <= t.ClickTolerance {
			t.out.Dispatch(LeftClick, mod, Event{Position: s.Position})
		}
		t.pressed = false
	}

	t.last = s
}

func distance(a, b Position) float32 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return float32(math.Hypot(dx, dy))
}
