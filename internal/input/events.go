package input

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// EventType identifies a pointer event the dispatcher can route.
type EventType int

const (
	LeftDown EventType = iota
	LeftUp
	LeftClick
	MouseMove
)

func (t EventType) String() string {
	switch t {
	case LeftDown:
		return "left_down"
	case LeftUp:
		return "left_up"
	case LeftClick:
		return "left_click"
	case MouseMove:
		return "mouse_move"
	}
	return fmt.Sprintf("event(%d)", int(t))
}

// Modifier is the keyboard modifier held while an event fires. None means no modifier.
type Modifier int

const (
	None Modifier = iota
	Shift
	Ctrl
	Alt
)

func (m Modifier) String() string {
	switch m {
	case None:
		return "none"
	case Shift:
		return "shift"
	case Ctrl:
		return "ctrl"
	case Alt:
		return "alt"
	}
	return fmt.Sprintf("modifier(%d)", int(m))
}

// ParseModifier maps a config value ("alt", "ctrl", "control", "shift", "none") to a Modifier.
func ParseModifier(s string) (Modifier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "alt", "option":
		return Alt, nil
	case "ctrl", "control":
		return Ctrl, nil
	case "shift":
		return Shift, nil
	case "", "none":
		return None, nil
	}
	return None, errors.Errorf("unknown modifier %q", s)
}

// Position is a pixel coordinate in canvas space.
type Position struct {
	X, Y float32
}

// Event is passed to handlers. Press, release and click fill Position; moves fill
// StartPosition (previous pointer position) and EndPosition (current one).
type Event struct {
	Position      Position
	StartPosition Position
	EndPosition   Position
}

// Handler reacts to one dispatched event. Handlers run on the frame loop and must not block.
type Handler func(Event)
