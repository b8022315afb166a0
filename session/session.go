package session

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/milk9111/blockworld/common"
	"github.com/milk9111/blockworld/controller"
	"github.com/milk9111/blockworld/input"
	"github.com/milk9111/blockworld/level"
	"github.com/milk9111/blockworld/prefabs"
	"github.com/milk9111/blockworld/script"
	"github.com/milk9111/blockworld/world"
	"go.uber.org/zap"
)

// Session is one running level: the world, the player controller and the
// behaviour scripts, advanced together once per frame.
type Session struct {
	run     string
	log     *zap.Logger
	spec    *prefabs.WorldSpec
	sheets  *prefabs.SpriteSheetsSpec
	levelID string

	world   *world.World
	level   *level.Level
	player  *controller.Player
	scripts *script.Runtime

	wasGrounded bool
	landed      bool
}

// Options override the prefab files a session starts from.
type Options struct {
	Log *zap.Logger
	// Level names a level file; empty uses world.yaml's level.
	Level  string
	World  *prefabs.WorldSpec
	Sheets *prefabs.SpriteSheetsSpec
	// Scripts loads behaviour scripts; nil uses prefabs.LoadScript.
	Scripts script.Loader
}

func New(opts Options) (*Session, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	spec := opts.World
	if spec == nil {
		var err error
		if spec, err = prefabs.LoadWorldSpec(); err != nil {
			return nil, err
		}
	}
	sheets := opts.Sheets
	if sheets == nil {
		var err error
		if sheets, err = prefabs.LoadSpriteSheetsSpec(); err != nil {
			return nil, err
		}
	}
	loader := opts.Scripts
	if loader == nil {
		loader = prefabs.LoadScript
	}

	run := uuid.NewString()
	log = log.With(zap.String("run", run))
	s := &Session{
		run:     run,
		log:     log,
		spec:    spec,
		sheets:  sheets,
		levelID: opts.Level,
		scripts: script.New(loader, log.Named("script")),
	}
	if s.levelID == "" {
		s.levelID = spec.Level
	}
	spec.Colors.Apply()
	if err := s.build(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) build() error {
	lspec, err := prefabs.LoadLevelSpec(s.levelID)
	if err != nil {
		return err
	}

	w := world.New(s.spec.Physics.Config(),
		world.WithLogger(s.log.Named("world")),
		world.WithSpriteSheets(s.sheets),
	)
	lvl, err := level.Build(w, lspec)
	if err != nil {
		return err
	}

	ps := s.spec.Player
	name := ps.Name
	if name == "" {
		name = "player"
	}
	id, err := w.Spawn(world.Spec{
		Name:     name,
		Variant:  world.VariantSolidSprite,
		Sheet:    ps.Sheet,
		Position: common.V(ps.X, ps.Y),
		Width:    ps.Width,
		Height:   ps.Height,
		Dynamic:  true,
	})
	if err != nil {
		return fmt.Errorf("session: spawn player: %w", err)
	}

	s.scripts.Reset()
	for _, b := range lvl.Scripts {
		if err := s.scripts.Bind(b.ID, b.Script); err != nil {
			return err
		}
	}

	s.world = w
	s.level = lvl
	s.player = controller.NewPlayer(id, playerConfig(ps))
	s.wasGrounded, s.landed = false, false
	s.log.Info("level loaded",
		zap.String("level", lvl.Name),
		zap.Int("entities", w.Len()),
		zap.Int("scripts", s.scripts.Len()),
	)
	return nil
}

func playerConfig(ps prefabs.PlayerSpec) controller.Config {
	return controller.Config{
		MoveSpeed:    ps.MoveSpeed,
		JumpSpeed:    ps.JumpSpeed,
		Acceleration: ps.Acceleration,
	}
}

// Tick advances one frame: the player reacts to in, scripts run, then the
// world steps.
func (s *Session) Tick(in input.Snapshot) error {
	if err := s.player.Apply(s.world, in); err != nil {
		return err
	}
	s.scripts.Update(s.world)
	s.world.Step()

	grounded := s.Player().TouchingGround
	s.landed = grounded && !s.wasGrounded
	s.wasGrounded = grounded
	return nil
}

// RunID tags every log line of this session.
func (s *Session) RunID() string {
	return s.run
}

func (s *Session) World() *world.World {
	return s.world
}

func (s *Session) Level() *level.Level {
	return s.level
}

func (s *Session) Player() *world.Entity {
	return s.world.Entity(s.player.ID())
}

func (s *Session) Spec() *prefabs.WorldSpec {
	return s.spec
}

// Landed reports whether the player touched ground on the last Tick after
// being airborne.
func (s *Session) Landed() bool {
	return s.landed
}
