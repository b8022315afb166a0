package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/blockworld/logging"
	"github.com/milk9111/blockworld/prefabs"
	"go.uber.org/zap"
)

func main() {
	debug := flag.Bool("debug", false, "start with the debug overlay on")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "level file in prefabs/ (basename, .yaml optional)")
	watch := flag.Bool("watch", true, "reload prefabs/ when files change")
	flag.Parse()

	spec, err := prefabs.LoadWorldSpec()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New(logging.Config{Level: spec.Logging.Level, Development: spec.Logging.Development})
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(BaseWidth, BaseHeight)
	ebiten.SetWindowTitle("blockworld")

	game, err := NewGame(Options{
		Log:   logger,
		World: spec,
		Level: *levelName,
		Debug: *debug,
		Watch: *watch,
	})
	if err != nil {
		logger.Fatal("start game", zap.Error(err))
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("run game", zap.Error(err))
	}
}
