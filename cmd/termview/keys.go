package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/blockworld/input"
)

// Terminals report key presses and auto-repeats but never releases, so an
// action stays held for a few frames after its last key event.
type heldKeys struct {
	hold  int
	frame int
	last  map[input.Action]int
}

func newHeldKeys(hold int) *heldKeys {
	return &heldKeys{
		hold: max(hold, 1),
		last: make(map[input.Action]int),
	}
}

func (h *heldKeys) Press(a input.Action) {
	h.last[a] = h.frame
}

// Next returns the actions held this frame and advances the frame.
func (h *heldKeys) Next() input.Set {
	var held input.Set
	for a, f := range h.last {
		if h.frame-f < h.hold {
			held = held.With(a)
		} else {
			delete(h.last, a)
		}
	}
	h.frame++
	return held
}

func (h *heldKeys) Reset() {
	clear(h.last)
}

type keyResult int

const (
	keyIgnored keyResult = iota
	keyAction
	keyQuit
)

func actionFor(ev *tcell.EventKey) (input.Action, keyResult) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return 0, keyQuit
	case tcell.KeyLeft:
		return input.ActionLeft, keyAction
	case tcell.KeyRight:
		return input.ActionRight, keyAction
	case tcell.KeyUp:
		return input.ActionJump, keyAction
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return 0, keyQuit
		case 'a', 'A':
			return input.ActionLeft, keyAction
		case 'd', 'D':
			return input.ActionRight, keyAction
		case ' ', 'w', 'W':
			return input.ActionJump, keyAction
		case 'p', 'P':
			return input.ActionPause, keyAction
		case 'r', 'R':
			return input.ActionReload, keyAction
		}
	}
	return 0, keyIgnored
}
