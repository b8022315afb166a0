// Command termview plays a level in the terminal, one colored cell per
// block of world pixels.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/blockworld/logging"
	"github.com/milk9111/blockworld/prefabs"
	"github.com/milk9111/blockworld/session"
	"github.com/milk9111/blockworld/settings"
	"go.uber.org/zap"
)

func main() {
	levelName := flag.String("level", "", "level file in prefabs/ (basename, .yaml optional)")
	cell := flag.Float64("cell", 8, "world pixels per terminal column")
	fps := flag.Int("fps", 60, "frames per second")
	hold := flag.Int("hold", 12, "frames a key stays held after its last repeat")
	logPath := flag.String("log", "termview.log", "log file; the terminal is busy drawing")
	watch := flag.Bool("watch", true, "reload prefabs/ when files change")
	flag.Parse()

	if err := run(*levelName, *cell, *fps, *hold, *logPath, *watch); err != nil {
		fmt.Fprintf(os.Stderr, "termview: %v\n", err)
		os.Exit(1)
	}
}

func run(levelName string, cell float64, fps, hold int, logPath string, watch bool) error {
	spec, err := prefabs.LoadWorldSpec()
	if err != nil {
		return err
	}
	logger, err := logging.New(logging.Config{
		Level:       spec.Logging.Level,
		OutputPaths: []string{logPath},
	})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	sm := settings.Open(logger.Named("settings"))
	s, err := session.New(session.Options{Log: logger.Logger, Level: levelName, World: spec})
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	v := newViewer(s, screen, cell, hold, logger.Logger)
	v.sound = newSound(sm.Get().Sound, logger.Logger)
	defer v.sound.Close()

	if watch {
		w, err := prefabs.NewWatcher(logger.Named("watch"), prefabs.WatchDirs()...)
		if err != nil {
			logger.Info("prefab hot reload off", zap.Error(err))
		} else {
			v.watcher = w
			defer func() { _ = w.Close() }()
		}
	}

	logger.Info("termview started", zap.String("level", s.Level().Name), zap.Int("fps", fps))
	loop(v, screen, fps)
	return nil
}

func loop(v *viewer, screen tcell.Screen, fps int) {
	ticker := time.NewTicker(time.Second / time.Duration(max(fps, 1)))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				// screen finalized
				return
			}
			events <- ev
		}
	}()

	for !v.quit {
		select {
		case ev := <-events:
			v.handle(ev)
		case <-ticker.C:
			v.frame()
		}
	}
}
