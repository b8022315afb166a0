package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/blockworld/input"
	"github.com/stretchr/testify/assert"
)

func TestHeldKeysDecay(t *testing.T) {
	h := newHeldKeys(3)
	h.Press(input.ActionLeft)

	for i := 0; i < 3; i++ {
		assert.True(t, h.Next().Has(input.ActionLeft), "frame %d", i)
	}
	assert.False(t, h.Next().Has(input.ActionLeft))
}

func TestHeldKeysRepeatExtends(t *testing.T) {
	h := newHeldKeys(2)
	h.Press(input.ActionRight)
	h.Next()
	h.Press(input.ActionRight)
	h.Next()
	assert.True(t, h.Next().Has(input.ActionRight))
	assert.False(t, h.Next().Has(input.ActionRight))
}

func TestHeldKeysReset(t *testing.T) {
	h := newHeldKeys(10)
	h.Press(input.ActionJump)
	h.Reset()
	assert.Equal(t, input.Set(0), h.Next())
}

func TestActionFor(t *testing.T) {
	cases := []struct {
		name   string
		ev     *tcell.EventKey
		action input.Action
		res    keyResult
	}{
		{"a", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), input.ActionLeft, keyAction},
		{"D", tcell.NewEventKey(tcell.KeyRune, 'D', tcell.ModShift), input.ActionRight, keyAction},
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), input.ActionLeft, keyAction},
		{"right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), input.ActionRight, keyAction},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), input.ActionJump, keyAction},
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), input.ActionJump, keyAction},
		{"pause", tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), input.ActionPause, keyAction},
		{"reload", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), input.ActionReload, keyAction},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), 0, keyQuit},
		{"esc", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), 0, keyQuit},
		{"ctrl_c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), 0, keyQuit},
		{"x", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), 0, keyIgnored},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), 0, keyIgnored},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			action, res := actionFor(tc.ev)
			assert.Equal(t, tc.res, res)
			if res == keyAction {
				assert.Equal(t, tc.action, action)
			}
		})
	}
}
