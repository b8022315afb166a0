package session

import (
	"path/filepath"

	"github.com/milk9111/blockworld/prefabs"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Reload re-reads the world config and rebuilds the level from disk.
func (s *Session) Reload() error {
	var (
		spec   *prefabs.WorldSpec
		sheets *prefabs.SpriteSheetsSpec
		g      errgroup.Group
	)
	g.Go(func() (err error) {
		spec, err = prefabs.LoadWorldSpec()
		return err
	})
	g.Go(func() (err error) {
		sheets, err = prefabs.LoadSpriteSheetsSpec()
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	s.spec, s.sheets = spec, sheets
	s.spec.Colors.Apply()
	return s.build()
}

// Apply handles edited prefab files. world.yaml re-applies physics, player
// and color settings in place; level and sprite edits rebuild the level;
// script edits swap the script under the running entities. A failed reload
// is logged and the session keeps its previous state.
func (s *Session) Apply(changes []prefabs.Change) {
	rebuild := false
	for _, c := range changes {
		name := c.Name()
		switch {
		case c.Kind == prefabs.ChangeScript:
			if err := s.scripts.Reload(name); err != nil {
				s.log.Warn("script reload failed", zap.String("script", name), zap.Error(err))
			}
		case name == prefabs.WorldFile:
			s.applyWorldSpec()
		case name == prefabs.SpritesFile:
			sheets, err := prefabs.LoadSpriteSheetsSpec()
			if err != nil {
				s.log.Warn("sprite reload failed", zap.Error(err))
				continue
			}
			s.sheets = sheets
			rebuild = true
		case sameLevel(name, s.levelID):
			rebuild = true
		}
	}
	if rebuild {
		if err := s.build(); err != nil {
			s.log.Warn("level rebuild failed", zap.String("level", s.levelID), zap.Error(err))
		}
	}
}

func (s *Session) applyWorldSpec() {
	spec, err := prefabs.LoadWorldSpec()
	if err != nil {
		s.log.Warn("world config reload failed", zap.Error(err))
		return
	}
	s.spec = spec
	s.spec.Colors.Apply()
	s.world.SetConfig(spec.Physics.Config())
	s.player.SetConfig(playerConfig(spec.Player))
	s.log.Info("world config reloaded", zap.Float64("gravity", spec.Physics.Gravity))
}

func sameLevel(changed, levelID string) bool {
	if levelID == "" {
		levelID = prefabs.LevelFile
	}
	base := filepath.Base(levelID)
	return changed == base || changed == base+".yaml" || changed == base+".yml"
}
