package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/blockworld/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestViewer(t *testing.T) (*viewer, tcell.SimulationScreen) {
	t.Helper()
	log := zaptest.NewLogger(t)
	s, err := session.New(session.Options{Log: log})
	require.NoError(t, err)
	screen := newSimScreen(t, 100, 31)
	return newViewer(s, screen, 8, 4, log), screen
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestViewerStepsAndDraws(t *testing.T) {
	v, screen := newTestViewer(t)
	for i := 0; i < 5; i++ {
		v.frame()
	}
	assert.Equal(t, uint64(5), v.session.World().Frame())

	var status []rune
	for col := 0; col < 8; col++ {
		r, _, _, _ := screen.GetContent(col, 30)
		status = append(status, r)
	}
	assert.Equal(t, " quarry ", string(status))
}

func TestViewerHeldKeyMovesPlayer(t *testing.T) {
	v, _ := newTestViewer(t)
	for i := 0; i < 90; i++ {
		v.frame()
	}
	require.True(t, v.session.Player().TouchingGround)
	startX := v.session.Player().Position.X

	// auto-repeat keeps the key held between events
	for i := 0; i < 30; i++ {
		if i%3 == 0 {
			v.handle(key('d'))
		}
		v.frame()
	}
	assert.Greater(t, v.session.Player().Position.X, startX)
}

func TestViewerPause(t *testing.T) {
	v, _ := newTestViewer(t)
	v.frame()

	v.handle(key('p'))
	v.frame()
	require.True(t, v.paused)
	frame := v.session.World().Frame()
	for i := 0; i < 10; i++ {
		v.frame()
	}
	assert.Equal(t, frame, v.session.World().Frame())
	assert.Contains(t, v.status(), "[paused]")

	v.handle(key('p'))
	v.frame()
	assert.False(t, v.paused)
}

func TestViewerReloadRebuildsWorld(t *testing.T) {
	v, _ := newTestViewer(t)
	before := v.session.World()

	v.handle(key('r'))
	v.frame()
	assert.NotSame(t, before, v.session.World())
	assert.Equal(t, uint64(1), v.session.World().Frame())
}

func TestViewerQuit(t *testing.T) {
	v, _ := newTestViewer(t)
	v.handle(key('x'))
	assert.False(t, v.quit)
	v.handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	assert.True(t, v.quit)
}

func TestViewerResize(t *testing.T) {
	v, screen := newTestViewer(t)
	screen.SetSize(40, 11)
	v.handle(tcell.NewEventResize(40, 11))
	assert.Equal(t, 320.0, v.viewW)
	assert.Equal(t, 160.0, v.viewH)
	v.frame()
}
