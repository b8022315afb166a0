package session

import (
	"fmt"

	"github.com/milk9111/blockworld/world"
	"gopkg.in/yaml.v3"
)

// State is a readable dump of the world, for bug reports.
type State struct {
	Level    string        `yaml:"level"`
	Frame    uint64        `yaml:"frame"`
	Checksum string        `yaml:"checksum"`
	Entities []EntityState `yaml:"entities"`
}

type EntityState struct {
	ID             int     `yaml:"id"`
	Name           string  `yaml:"name,omitempty"`
	Variant        string  `yaml:"variant"`
	X              float64 `yaml:"x"`
	Y              float64 `yaml:"y"`
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	VX             float64 `yaml:"vx"`
	VY             float64 `yaml:"vy"`
	Fixed          bool    `yaml:"fixed"`
	Colliding      bool    `yaml:"colliding,omitempty"`
	TouchingGround bool    `yaml:"touching_ground,omitempty"`
}

// State captures the current world. Only dynamic entities are listed unless
// all is set; level geometry is rarely interesting.
func (s *Session) State(all bool) State {
	st := State{
		Level:    s.level.Name,
		Frame:    s.world.Frame(),
		Checksum: fmt.Sprintf("%016x", s.world.Checksum()),
	}
	s.world.Each(func(id world.ID, e *world.Entity) {
		if e.Fixed && !all {
			return
		}
		st.Entities = append(st.Entities, EntityState{
			ID:             int(id),
			Name:           e.Name,
			Variant:        e.Variant.String(),
			X:              e.Position.X,
			Y:              e.Position.Y,
			Width:          e.Width,
			Height:         e.Height,
			VX:             e.Velocity.X,
			VY:             e.Velocity.Y,
			Fixed:          e.Fixed,
			Colliding:      e.Colliding,
			TouchingGround: e.TouchingGround,
		})
	})
	return st
}

func (s *Session) StateYAML(all bool) ([]byte, error) {
	out, err := yaml.Marshal(s.State(all))
	if err != nil {
		return nil, fmt.Errorf("session: marshal state: %w", err)
	}
	return out, nil
}
