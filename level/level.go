package level

import (
	"fmt"
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/blockworld/common"
	"github.com/milk9111/blockworld/prefabs"
	"github.com/milk9111/blockworld/world"
)

// Binding pairs a spawned entity with the behaviour script it runs.
type Binding struct {
	ID     world.ID
	Script string
}

// Level is what Build spawned. Bounds covers every spawned entity.
type Level struct {
	Name       string
	Background color.Color
	Bounds     cp.BB
	Scripts    []Binding
	Spawned    int

	hasBound bool
}

// Build spawns a level into w: grid cells first, row by row, then the listed
// entities in file order.
func Build(w *world.World, spec *prefabs.LevelSpec) (*Level, error) {
	if spec == nil {
		return nil, fmt.Errorf("level: nil spec")
	}
	lvl := &Level{Name: spec.Name}
	if spec.Background != nil {
		lvl.Background = spec.Background.Color
	}

	if spec.Grid != nil {
		if err := buildGrid(w, lvl, spec.Grid); err != nil {
			return nil, err
		}
	}

	for i, es := range spec.Entities {
		if err := lvl.spawn(w, es); err != nil {
			return nil, fmt.Errorf("level %s: entity %d: %w", spec.Name, i, err)
		}
	}
	return lvl, nil
}

func (l *Level) spawn(w *world.World, es prefabs.LevelEntitySpec) error {
	s, err := ToSpec(es)
	if err != nil {
		return err
	}
	id, err := w.Spawn(s)
	if err != nil {
		return err
	}
	l.Spawned++
	if es.Script != "" {
		l.Scripts = append(l.Scripts, Binding{ID: id, Script: es.Script})
	}

	bb := w.Entity(id).Bounds()
	if l.hasBound {
		l.Bounds = l.Bounds.Merge(bb)
	} else {
		l.Bounds, l.hasBound = bb, true
	}
	return nil
}

// ToSpec converts a level file entry to a spawn spec.
func ToSpec(es prefabs.LevelEntitySpec) (world.Spec, error) {
	v, err := world.ParseVariant(es.Variant)
	if err != nil {
		return world.Spec{}, err
	}
	s := world.Spec{
		Name:     es.Name,
		Variant:  v,
		Position: common.V(es.X, es.Y),
		Width:    es.Width,
		Height:   es.Height,
		Velocity: common.V(es.VX, es.VY),
		Sheet:    es.Sheet,
		Dynamic:  es.Dynamic,
		Hidden:   es.Hidden,
	}
	if es.Color != nil {
		s.Color = es.Color.Color
	}
	return s, nil
}
