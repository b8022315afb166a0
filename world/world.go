package world

import (
	"github.com/milk9111/blockworld/common"
	"go.uber.org/zap"
)

// ID addresses an entity in a World. IDs are stable for the World's lifetime.
type ID int

// NoID is returned when nothing was added.
const NoID ID = -1

// Config holds the physics settings applied every Step.
type Config struct {
	// Gravity is added to the vertical velocity of dynamic entities each frame.
	Gravity float64
	// ResetGround clears TouchingGround on dynamic entities at the start of
	// every Step, so the flag reflects only the current frame's contacts.
	ResetGround bool
	// Integrate moves dynamic entities by their velocity each Step.
	Integrate bool
}

// DefaultConfig returns the settings used when world.yaml has none.
func DefaultConfig() Config {
	return Config{Gravity: 0.5, ResetGround: true, Integrate: true}
}

// Option configures a World.
type Option func(*World)

func WithLogger(log *zap.Logger) Option {
	return func(w *World) {
		if log != nil {
			w.log = log
		}
	}
}

func WithSpriteSheets(sheets SpriteSheets) Option {
	return func(w *World) { w.sheets = sheets }
}

// WithCanvas makes Spawn draw each new entity once, as soon as it exists.
func WithCanvas(canvas Canvas) Option {
	return func(w *World) { w.canvas = canvas }
}

// World owns every entity of a running level, in creation order. It is not
// safe for concurrent use; the frame loop is its only user.
type World struct {
	cfg      Config
	entities []*Entity
	names    map[string]ID

	sheets SpriteSheets
	canvas Canvas
	log    *zap.Logger

	frame    uint64
	contacts []Contact
}

// New creates an empty World.
func New(cfg Config, opts ...Option) *World {
	w := &World{
		cfg:   cfg,
		names: make(map[string]ID),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *World) Config() Config {
	return w.cfg
}

// SetConfig replaces the physics settings, e.g. after a config reload.
func (w *World) SetConfig(cfg Config) {
	w.cfg = cfg
}

func (w *World) SpriteSheets() SpriteSheets {
	return w.sheets
}

func (w *World) SetSpriteSheets(sheets SpriteSheets) {
	w.sheets = sheets
}

func (w *World) SetCanvas(canvas Canvas) {
	w.canvas = canvas
}

func (w *World) Logger() *zap.Logger {
	return w.log
}

// Spawn builds an entity from spec and adds it.
func (w *World) Spawn(spec Spec) (ID, error) {
	e, err := spec.build(w.sheets)
	if err != nil {
		return NoID, err
	}
	return w.Add(e), nil
}

// Add registers e and returns its ID. Adding the same entity twice is a
// caller error.
func (w *World) Add(e *Entity) ID {
	if e == nil {
		return NoID
	}
	id := ID(len(w.entities))
	w.entities = append(w.entities, e)
	if e.Name != "" {
		if _, dup := w.names[e.Name]; dup {
			w.log.Warn("duplicate entity name", zap.String("name", e.Name), zap.Int("id", int(id)))
		} else {
			w.names[e.Name] = id
		}
	}
	if w.canvas != nil {
		e.Render(w.canvas, w.log)
	}
	return id
}

// Entity returns the entity for id, or nil if id was never issued.
func (w *World) Entity(id ID) *Entity {
	if id < 0 || int(id) >= len(w.entities) {
		return nil
	}
	return w.entities[id]
}

// Lookup finds the first entity added under name.
func (w *World) Lookup(name string) (ID, bool) {
	id, ok := w.names[name]
	return id, ok
}

func (w *World) Len() int {
	return len(w.entities)
}

// Each visits entities in creation order.
func (w *World) Each(fn func(ID, *Entity)) {
	for i, e := range w.entities {
		fn(ID(i), e)
	}
}

// Frame returns the number of completed Steps.
func (w *World) Frame() uint64 {
	return w.frame
}

// Contacts returns the collisions resolved by the last Step. The slice is
// reused by the next Step.
func (w *World) Contacts() []Contact {
	return w.contacts
}

// Step advances the world one frame: ground flags are reset, dynamic entities
// move by the velocity left from the previous frame, every entity updates,
// then each fixed solid resolves against each dynamic non-background entity
// in creation order.
func (w *World) Step() {
	if w.cfg.ResetGround {
		for _, e := range w.entities {
			if !e.Fixed {
				e.TouchingGround = false
			}
		}
	}
	if w.cfg.Integrate {
		for _, e := range w.entities {
			e.Integrate()
		}
	}
	for _, e := range w.entities {
		e.Update(w.cfg.Gravity)
	}

	w.contacts = w.contacts[:0]
	for i, recv := range w.entities {
		if !recv.Fixed || recv.Kind != KindSolid {
			continue
		}
		for j, other := range w.entities {
			if i == j || other.Fixed || other.Kind == KindBackground {
				continue
			}
			if c, ok := recv.Collide(other); ok {
				w.contacts = append(w.contacts, c)
			}
		}
	}
	w.frame++
}

// Draw renders every entity in creation order, so earlier entities end up
// underneath later ones.
func (w *World) Draw(canvas Canvas) {
	for _, e := range w.entities {
		e.Render(canvas, w.log)
	}
}

// At returns the entities whose box contains p, in creation order.
func (w *World) At(p common.Vector2) []ID {
	var ids []ID
	for i, e := range w.entities {
		if e.Bounds().ContainsVect(p) {
			ids = append(ids, ID(i))
		}
	}
	return ids
}
