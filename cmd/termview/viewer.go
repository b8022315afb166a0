package main

import (
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/blockworld/camera"
	"github.com/milk9111/blockworld/input"
	"github.com/milk9111/blockworld/prefabs"
	"github.com/milk9111/blockworld/session"
	"go.uber.org/zap"
)

// viewer runs a session in the terminal. It is driven one frame at a time
// so tests can step it against a simulation screen.
type viewer struct {
	log     *zap.Logger
	session *session.Session
	canvas  *Canvas
	camera  *camera.Camera
	keys    *heldKeys
	tracker input.Tracker
	sound   *sound
	watcher *prefabs.Watcher

	viewW, viewH float64
	paused       bool
	quit         bool
}

func newViewer(s *session.Session, screen tcell.Screen, cell float64, hold int, log *zap.Logger) *viewer {
	v := &viewer{
		log:     log,
		session: s,
		canvas:  NewCanvas(screen, cell, log.Named("canvas")),
		keys:    newHeldKeys(hold),
		sound:   &sound{},
	}
	v.resize()
	return v
}

// resize fits the camera to the terminal and re-centres it on the player.
func (v *viewer) resize() {
	v.viewW, v.viewH = v.canvas.ViewSize()
	v.camera = camera.New(int(v.viewW), int(v.viewH))
	v.camera.SetSmooth(0.25)
	v.levelLoaded()
}

func (v *viewer) levelLoaded() {
	v.camera.SetBounds(v.session.Level().Bounds)
	if p := v.session.Player(); p != nil {
		v.camera.SnapTo(p.Center)
	}
}

// handle applies one terminal event.
func (v *viewer) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		action, res := actionFor(ev)
		switch res {
		case keyQuit:
			v.quit = true
		case keyAction:
			v.keys.Press(action)
		}
	case *tcell.EventResize:
		v.resize()
	}
}

// frame advances the session one tick and draws it.
func (v *viewer) frame() {
	world := v.session.World()
	if changes := v.watcher.Drain(); len(changes) > 0 {
		for _, c := range changes {
			if c.Kind == prefabs.ChangeSpec {
				v.canvas.Forget()
			}
		}
		v.session.Apply(changes)
	}

	in := v.tracker.Next(v.keys.Next())
	if in.JustPressed(input.ActionPause) {
		v.paused = !v.paused
		v.keys.Reset()
		v.tracker.Reset()
	}
	if in.JustPressed(input.ActionReload) {
		v.canvas.Forget()
		if err := v.session.Reload(); err != nil {
			v.log.Error("reload", zap.Error(err))
		}
	}
	if world != v.session.World() {
		v.levelLoaded()
	}

	if !v.paused {
		if err := v.session.Tick(in); err != nil {
			v.log.Error("tick", zap.Error(err))
		}
		if v.session.Landed() {
			v.sound.Land()
		}
		if p := v.session.Player(); p != nil {
			v.camera.Update(p.Center)
		}
	}

	v.draw()
}

func (v *viewer) draw() {
	var bg color.Color = color.Black
	if c := v.session.Level().Background; c != nil {
		bg = c
	} else if c := v.session.Spec().Colors.Background; c != nil {
		bg = c.Color
	}

	w := v.session.World()
	v.canvas.Begin(v.camera.ViewTopLeft(), bg)
	w.Draw(v.canvas)
	v.canvas.End(v.status())
}

func (v *viewer) status() string {
	w := v.session.World()
	line := fmt.Sprintf(" %s  frame %d  contacts %d", v.session.Level().Name, w.Frame(), len(w.Contacts()))
	if p := v.session.Player(); p != nil {
		line += fmt.Sprintf("  pos %.0f,%.0f", p.Position.X, p.Position.Y)
		if p.TouchingGround {
			line += "  grounded"
		}
	}
	if v.paused {
		line += "  [paused]"
	}
	return line + "  a/d move  space jump  p pause  r reload  q quit"
}
