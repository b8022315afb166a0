package input

import "strings"

// Action is a logical control, independent of the device that produced it.
type Action uint8

const (
	ActionLeft Action = iota
	ActionRight
	ActionJump
	ActionPause
	ActionDebug
	ActionReload
	actionCount
)

var actionNames = [actionCount]string{"left", "right", "jump", "pause", "debug", "reload"}

func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return "unknown"
}

// Set is a de-duplicated set of actions.
type Set uint16

func SetOf(actions ...Action) Set {
	var s Set
	for _, a := range actions {
		s = s.With(a)
	}
	return s
}

func (s Set) Has(a Action) bool {
	return a < actionCount && s&(1<<a) != 0
}

func (s Set) With(a Action) Set {
	if a >= actionCount {
		return s
	}
	return s | 1<<a
}

func (s Set) Without(a Action) Set {
	if a >= actionCount {
		return s
	}
	return s &^ (1 << a)
}

func (s Set) String() string {
	var names []string
	for a := Action(0); a < actionCount; a++ {
		if s.Has(a) {
			names = append(names, a.String())
		}
	}
	return "{" + strings.Join(names, ",") + "}"
}

// Snapshot is the input state for one frame. It is taken once, before the
// world steps, and read by every consumer of that frame.
type Snapshot struct {
	Held     Set
	Pressed  Set
	Released Set
	// CursorX/Y are in screen pixels.
	CursorX, CursorY float64
}

func (s Snapshot) Down(a Action) bool {
	return s.Held.Has(a)
}

func (s Snapshot) JustPressed(a Action) bool {
	return s.Pressed.Has(a)
}

func (s Snapshot) JustReleased(a Action) bool {
	return s.Released.Has(a)
}

// Tracker derives press and release edges from successive held sets.
type Tracker struct {
	prev Set
}

// Next returns the snapshot for a frame in which exactly held is down.
func (t *Tracker) Next(held Set) Snapshot {
	s := Snapshot{
		Held:     held,
		Pressed:  held &^ t.prev,
		Released: t.prev &^ held,
	}
	t.prev = held
	return s
}

// Reset forgets the previous frame, e.g. after the game was paused.
func (t *Tracker) Reset() {
	t.prev = 0
}
