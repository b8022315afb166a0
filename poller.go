package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/blockworld/input"
)

const stickDeadzone = 0.3

var keyBindings = map[ebiten.Key]input.Action{
	ebiten.KeyA:      input.ActionLeft,
	ebiten.KeyLeft:   input.ActionLeft,
	ebiten.KeyD:      input.ActionRight,
	ebiten.KeyRight:  input.ActionRight,
	ebiten.KeySpace:  input.ActionJump,
	ebiten.KeyEscape: input.ActionPause,
	ebiten.KeyF3:     input.ActionDebug,
	ebiten.KeyF5:     input.ActionReload,
}

var padBindings = map[ebiten.StandardGamepadButton]input.Action{
	ebiten.StandardGamepadButtonLeftLeft:    input.ActionLeft,
	ebiten.StandardGamepadButtonLeftRight:   input.ActionRight,
	ebiten.StandardGamepadButtonRightBottom: input.ActionJump,
	ebiten.StandardGamepadButtonCenterRight: input.ActionPause,
	ebiten.StandardGamepadButtonCenterLeft:  input.ActionDebug,
}

// Poller reads the keyboard, the first gamepad and the cursor from ebiten.
type Poller struct {
	tracker input.Tracker
	ids     []ebiten.GamepadID
}

func NewPoller() *Poller {
	return &Poller{}
}

// Poll must be called once per ebiten Update.
func (p *Poller) Poll() input.Snapshot {
	var held input.Set
	for key, action := range keyBindings {
		if ebiten.IsKeyPressed(key) {
			held = held.With(action)
		}
	}

	p.ids = ebiten.AppendGamepadIDs(p.ids[:0])
	if len(p.ids) > 0 {
		gid := p.ids[0]
		if ebiten.IsStandardGamepadLayoutAvailable(gid) {
			for button, action := range padBindings {
				if ebiten.IsStandardGamepadButtonPressed(gid, button) {
					held = held.With(action)
				}
			}
			leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
			if leftX < -stickDeadzone {
				held = held.With(input.ActionLeft)
			} else if leftX > stickDeadzone {
				held = held.With(input.ActionRight)
			}
		}
	}

	s := p.tracker.Next(held)
	mx, my := ebiten.CursorPosition()
	s.CursorX, s.CursorY = float64(mx), float64(my)
	return s
}

// Reset drops edge state so keys held across a pause do not re-trigger.
func (p *Poller) Reset() {
	p.tracker.Reset()
}
