package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/blockworld/camera"
	"github.com/milk9111/blockworld/common"
	"github.com/milk9111/blockworld/input"
	"github.com/milk9111/blockworld/logging"
	"github.com/milk9111/blockworld/prefabs"
	"github.com/milk9111/blockworld/render"
	"github.com/milk9111/blockworld/session"
	"github.com/milk9111/blockworld/settings"
	"github.com/milk9111/blockworld/world"
	"go.uber.org/zap"
	"golang.design/x/clipboard"
)

const (
	BaseWidth  = common.BaseWidth
	BaseHeight = common.BaseHeight
)

type Options struct {
	Log   *logging.Logger
	World *prefabs.WorldSpec
	Level string
	Debug bool
	Watch bool
}

type Game struct {
	log      *logging.Logger
	session  *session.Session
	settings *settings.Manager
	watcher  *prefabs.Watcher

	poller *Poller
	screen *render.Screen
	camera *camera.Camera
	world  *world.World

	ui        *ebitenui.UI
	paused    bool
	debug     bool
	clipboard bool
	in        input.Snapshot
}

func NewGame(opts Options) (*Game, error) {
	log := opts.Log
	if log == nil {
		log = logging.Nop()
	}

	sm := settings.Open(log.Named("settings"))
	lvl := opts.Level
	if lvl == "" {
		lvl = sm.Get().LastLevel
	}

	s, err := session.New(session.Options{Log: log.Logger, Level: lvl, World: opts.World})
	if err != nil && opts.Level == "" && lvl != "" {
		// A remembered level may have been deleted since.
		log.Warn("last level unavailable", zap.String("level", lvl), zap.Error(err))
		s, err = session.New(session.Options{Log: log.Logger, World: opts.World})
	}
	if err != nil {
		return nil, err
	}

	g := &Game{
		log:      log,
		session:  s,
		settings: sm,
		poller:   NewPoller(),
		screen:   render.NewScreen(render.NewImages(), log.Named("render")),
		camera:   camera.New(BaseWidth, BaseHeight),
		debug:    opts.Debug || sm.Get().DebugOverlay,
	}

	if err := clipboard.Init(); err != nil {
		log.Warn("clipboard unavailable", zap.Error(err))
	} else {
		g.clipboard = true
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher(log.Named("watch"), prefabs.WatchDirs()...)
		if err != nil {
			log.Info("prefab hot reload off", zap.Error(err))
		} else {
			g.watcher = w
		}
	}

	if err := sm.Update(func(st *settings.Settings) { st.LastLevel = lvl }); err != nil {
		log.Warn("save settings", zap.Error(err))
	}

	g.ui = NewPauseUI(g)
	g.levelLoaded()
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

// levelLoaded points the camera at a freshly built world.
func (g *Game) levelLoaded() {
	g.world = g.session.World()
	g.camera.SetBounds(g.session.Level().Bounds)
	if p := g.session.Player(); p != nil {
		g.camera.SnapTo(p.Center)
	}
}

func (g *Game) Update() error {
	g.applyChanges()

	g.in = g.poller.Poll()
	if g.in.JustPressed(input.ActionPause) {
		g.setPaused(!g.paused)
	}
	if g.paused {
		g.ui.Update()
		return nil
	}

	if g.in.JustPressed(input.ActionDebug) {
		g.toggleDebug()
	}
	if g.in.JustPressed(input.ActionReload) {
		g.reload()
	}

	if err := g.session.Tick(g.in); err != nil {
		g.log.Error("tick", zap.Error(err))
	}

	if p := g.session.Player(); p != nil {
		g.camera.Update(p.Center)
	}
	return nil
}

func (g *Game) applyChanges() {
	changes := g.watcher.Drain()
	if len(changes) == 0 {
		return
	}
	for _, c := range changes {
		if c.Name() == prefabs.SpritesFile {
			g.screen.Reload()
		}
	}
	g.session.Apply(changes)
	if err := g.log.SetLevel(g.session.Spec().Logging.Level); err != nil {
		g.log.Warn("logging level", zap.Error(err))
	}
	if g.world != g.session.World() {
		g.levelLoaded()
	}
}

func (g *Game) reload() {
	g.screen.Reload()
	if err := g.session.Reload(); err != nil {
		g.log.Error("reload", zap.Error(err))
		return
	}
	g.levelLoaded()
}

func (g *Game) setPaused(p bool) {
	g.paused = p
	g.poller.Reset()
}

func (g *Game) toggleDebug() {
	g.debug = !g.debug
	if err := g.settings.Update(func(st *settings.Settings) { st.DebugOverlay = g.debug }); err != nil {
		g.log.Warn("save settings", zap.Error(err))
	}
}

// copyState puts a YAML dump of the dynamic entities on the clipboard.
func (g *Game) copyState() {
	if !g.clipboard {
		g.log.Warn("copy state: clipboard unavailable")
		return
	}
	out, err := g.session.StateYAML(false)
	if err != nil {
		g.log.Error("copy state", zap.Error(err))
		return
	}
	clipboard.Write(clipboard.FmtText, out)
	g.log.Info("world state copied", zap.Int("bytes", len(out)))
}

func (g *Game) Draw(screen *ebiten.Image) {
	var bg color.Color = color.Black
	if c := g.session.Level().Background; c != nil {
		bg = c
	} else if c := g.session.Spec().Colors.Background; c != nil {
		bg = c.Color
	}
	screen.Fill(bg)

	top := g.camera.ViewTopLeft()
	g.screen.Begin(screen, top)
	g.session.World().Draw(g.screen)

	if g.debug {
		cursor := common.V(top.X+g.in.CursorX, top.Y+g.in.CursorY)
		render.DrawDebug(g.screen, g.session.World(), cursor)
	}

	if g.paused {
		g.ui.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return BaseWidth, BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
