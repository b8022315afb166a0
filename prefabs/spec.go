package prefabs

import (
	"fmt"
	"image"
	"image/color"
	"path"
	"strconv"
	"strings"

	"github.com/milk9111/blockworld/world"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

const (
	WorldFile   = "world.yaml"
	SpritesFile = "sprites.yaml"
	LevelFile   = "level.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// WorldSpec is the game-wide configuration in world.yaml.
type WorldSpec struct {
	Physics PhysicsSpec `yaml:"physics"`
	Player  PlayerSpec  `yaml:"player"`
	Colors  ColorsSpec  `yaml:"colors"`
	Logging LoggingSpec `yaml:"logging"`
	Level   string      `yaml:"level"`
}

func LoadWorldSpec() (*WorldSpec, error) {
	spec, err := LoadSpec[WorldSpec](WorldFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type PhysicsSpec struct {
	Gravity              float64 `yaml:"gravity"`
	ResetGroundEachFrame *bool   `yaml:"reset_ground_each_frame"`
	IntegratePositions   *bool   `yaml:"integrate_positions"`
}

// Config converts the physics section to world settings. Unset switches keep the
// world defaults.
func (p PhysicsSpec) Config() world.Config {
	cfg := world.DefaultConfig()
	cfg.Gravity = p.Gravity
	if p.ResetGroundEachFrame != nil {
		cfg.ResetGround = *p.ResetGroundEachFrame
	}
	if p.IntegratePositions != nil {
		cfg.Integrate = *p.IntegratePositions
	}
	return cfg
}

type PlayerSpec struct {
	Name         string  `yaml:"name"`
	Sheet        string  `yaml:"sheet"`
	X            float64 `yaml:"x"`
	Y            float64 `yaml:"y"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	MoveSpeed    float64 `yaml:"move_speed"`
	JumpSpeed    float64 `yaml:"jump_speed"`
	Acceleration float64 `yaml:"acceleration"`
}

type ColorsSpec struct {
	Collision  *YAMLColor `yaml:"collision"`
	Overlay    *YAMLColor `yaml:"overlay"`
	Background *YAMLColor `yaml:"background"`
}

// Apply installs the configured collision and overlay colors.
func (c ColorsSpec) Apply() {
	if c.Collision != nil {
		world.CollisionColor = c.Collision.Color
	}
	if c.Overlay != nil {
		world.OverlayColor = c.Overlay.Color
	}
}

type LoggingSpec struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// SpriteSheetsSpec maps sheet and animation names to source rectangles.
// It satisfies world.SpriteSheets.
type SpriteSheetsSpec struct {
	Root   string               `yaml:"root"`
	Sheets map[string]SheetSpec `yaml:"sheets"`
}

type SheetSpec struct {
	Image      string               `yaml:"image"`
	Animations map[string]FrameSpec `yaml:"animations"`
}

type FrameSpec struct {
	SX      int `yaml:"sx"`
	SY      int `yaml:"sy"`
	SWidth  int `yaml:"s_width"`
	SHeight int `yaml:"s_height"`
}

func LoadSpriteSheetsSpec() (*SpriteSheetsSpec, error) {
	spec, err := LoadSpec[SpriteSheetsSpec](SpritesFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *SpriteSheetsSpec) Frame(sheet, animation string) (world.SpriteFrame, error) {
	if s == nil {
		return world.SpriteFrame{}, fmt.Errorf("prefabs: sheet %q: %w", sheet, world.ErrUnknownSprite)
	}
	sh, ok := s.Sheets[sheet]
	if !ok {
		return world.SpriteFrame{}, fmt.Errorf("prefabs: sheet %q: %w", sheet, world.ErrUnknownSprite)
	}
	f, ok := sh.Animations[animation]
	if !ok {
		return world.SpriteFrame{}, fmt.Errorf("prefabs: animation %s/%s: %w", sheet, animation, world.ErrUnknownSprite)
	}
	return world.SpriteFrame{
		Sheet:     sheet,
		Animation: animation,
		Image:     path.Join(s.Root, sh.Image),
		Src:       image.Rect(f.SX, f.SY, f.SX+f.SWidth, f.SY+f.SHeight),
	}, nil
}

// LevelSpec lists what a level spawns, in draw order.
type LevelSpec struct {
	Name       string            `yaml:"name"`
	Background *YAMLColor        `yaml:"background"`
	Grid       *GridSpec         `yaml:"grid"`
	Entities   []LevelEntitySpec `yaml:"entities"`
}

func LoadLevelSpec(name string) (*LevelSpec, error) {
	if name == "" {
		name = LevelFile
	}
	if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
		name += ".yaml"
	}
	spec, err := LoadSpec[LevelSpec](name)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// GridSpec is an ASCII tile map. Each rune in Rows is looked up in Legend;
// unknown runes and spaces are empty cells.
type GridSpec struct {
	TileSize float64                    `yaml:"tile_size"`
	OriginX  float64                    `yaml:"origin_x"`
	OriginY  float64                    `yaml:"origin_y"`
	Rows     []string                   `yaml:"rows"`
	Legend   map[string]LevelEntitySpec `yaml:"legend"`
}

// LevelEntitySpec is one entity of a level, or one grid legend entry. Merge
// only applies to grid cells and joins neighbouring cells into one box.
type LevelEntitySpec struct {
	Name    string     `yaml:"name"`
	Variant string     `yaml:"variant"`
	X       float64    `yaml:"x"`
	Y       float64    `yaml:"y"`
	Width   float64    `yaml:"width"`
	Height  float64    `yaml:"height"`
	VX      float64    `yaml:"vx"`
	VY      float64    `yaml:"vy"`
	Color   *YAMLColor `yaml:"color"`
	Sheet   string     `yaml:"sheet"`
	Dynamic bool       `yaml:"dynamic"`
	Hidden  bool       `yaml:"hidden"`
	Script  string     `yaml:"script"`
	Merge   bool       `yaml:"merge"`
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or a CSS color name.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// MarshalYAML writes the color back as "#rrggbbaa".
func (c YAMLColor) MarshalYAML() (any, error) {
	if c.Color == nil {
		return nil, nil
	}
	n := color.NRGBAModel.Convert(c.Color).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A), nil
}
