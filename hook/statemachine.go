package hook

import (
	"fmt"

	"quasimode/keys"
)

// State is the quasimode state: idle or active.
type State int

const (
	Idle State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "idle"
}

// EventKind tags an Event.
type EventKind int

const (
	ModeStart EventKind = iota + 1
	ModeEnd
	Keypress
)

// Event is what the state machine emits for the consumer.
type Event struct {
	Kind EventKind
	// Key is set for Keypress events.
	Key keys.VirtualKey
}

func (e Event) String() string {
	switch e.Kind {
	case ModeStart:
		return "ModeStart"
	case ModeEnd:
		return "ModeEnd"
	case Keypress:
		return fmt.Sprintf("Keypress(%s)", e.Key)
	}
	return fmt.Sprintf("Event(%d)", int(e.Kind))
}

// Transition is a single physical key going down or up. System variants of
// the key messages are reported the same way as the plain ones.
type Transition struct {
	Key  keys.VirtualKey
	Down bool
}

// Outcome is the result of feeding one transition to the state machine.
type Outcome struct {
	Next State
	// Event is nil when nothing is emitted.
	Event *Event
	// Swallow tells the hook to keep the keystroke from other applications.
	Swallow bool
}

// Machine turns raw transitions into quasimode events. It holds only the
// mode key; the state is passed in and out so that Step is a pure function.
type Machine struct {
	ModeKey keys.VirtualKey
}

// Step applies t in state s. Every emitted event swallows the keystroke. The
// mode key repeating while active is swallowed without an event.
func (m Machine) Step(s State, t Transition) Outcome {
	isModeKey := t.Key == m.ModeKey

	if s == Idle {
		if isModeKey && t.Down {
			return emit(Active, Event{Kind: ModeStart})
		}
		return Outcome{Next: Idle}
	}

	switch {
	case isModeKey && !t.Down:
		return emit(Idle, Event{Kind: ModeEnd})
	case isModeKey:
		// auto-repeat of the held mode key
		return Outcome{Next: Active, Swallow: true}
	case t.Down:
		return emit(Active, Event{Kind: Keypress, Key: t.Key})
	}
	return Outcome{Next: Active}
}

func emit(next State, e Event) Outcome {
	return Outcome{Next: next, Event: &e, Swallow: true}
}
