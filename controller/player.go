package controller

import (
	"errors"
	"fmt"

	"github.com/milk9111/blockworld/input"
	"github.com/milk9111/blockworld/world"
)

// Player animation names in the player sprite sheet.
const (
	AnimIdleLeft  = "idleL"
	AnimIdleRight = "idleR"
	AnimRunLeft   = "runL"
	AnimRunRight  = "runR"
	AnimJump      = "jump"
)

var ErrNoPlayer = errors.New("player entity missing")

type Config struct {
	MoveSpeed float64
	JumpSpeed float64
	// Acceleration is the horizontal speed change per frame. Zero or less
	// snaps straight to the target speed.
	Acceleration float64
}

// Player turns input into velocity and animation changes on one entity.
type Player struct {
	id         world.ID
	cfg        Config
	facingLeft bool
}

func NewPlayer(id world.ID, cfg Config) *Player {
	return &Player{id: id, cfg: cfg}
}

// FacingLeft reports the last horizontal direction pressed.
func (p *Player) FacingLeft() bool {
	return p.facingLeft
}

func (p *Player) ID() world.ID {
	return p.id
}

func (p *Player) SetConfig(cfg Config) {
	p.cfg = cfg
}

// Apply runs before the world steps so it sees the ground contact resolved
// on the previous frame.
func (p *Player) Apply(w *world.World, in input.Snapshot) error {
	e := w.Entity(p.id)
	if e == nil {
		return fmt.Errorf("controller: id %d: %w", p.id, ErrNoPlayer)
	}

	left, right := in.Down(input.ActionLeft), in.Down(input.ActionRight)
	var target float64
	switch {
	case left && !right:
		target = -p.cfg.MoveSpeed
	case right && !left:
		target = p.cfg.MoveSpeed
	}
	e.Velocity.X = approach(e.Velocity.X, target, p.cfg.Acceleration)

	jumped := false
	if in.Down(input.ActionJump) && e.TouchingGround {
		e.Velocity.Y = -p.cfg.JumpSpeed
		e.TouchingGround = false
		jumped = true
	}

	if left != right {
		p.facingLeft = left
	}

	anim := p.animation(e, in, left, right, jumped)
	if anim == "" || anim == e.Sprite.Animation {
		return nil
	}
	if err := e.SetupSprite(w.SpriteSheets(), anim); err != nil {
		return fmt.Errorf("controller: %w", err)
	}
	return nil
}

func (p *Player) animation(e *world.Entity, in input.Snapshot, left, right, jumped bool) string {
	switch {
	case jumped:
		return AnimJump
	case !e.TouchingGround && e.Sprite.Animation == AnimJump:
		return ""
	case left && !right:
		return AnimRunLeft
	case right && !left:
		return AnimRunRight
	case in.JustReleased(input.ActionLeft):
		return AnimIdleLeft
	case in.JustReleased(input.ActionRight):
		return AnimIdleRight
	case e.Sprite.Animation == AnimJump,
		!left && !right && (e.Sprite.Animation == AnimRunLeft || e.Sprite.Animation == AnimRunRight):
		if p.facingLeft {
			return AnimIdleLeft
		}
		return AnimIdleRight
	}
	return ""
}

func approach(v, target, step float64) float64 {
	if step <= 0 {
		return target
	}
	if v < target {
		return min(v+step, target)
	}
	return max(v-step, target)
}
