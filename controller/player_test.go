package controller

import (
	"errors"
	"fmt"
	"image"
	"testing"

	"github.com/milk9111/blockworld/common"
	"github.com/milk9111/blockworld/input"
	"github.com/milk9111/blockworld/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sheets map[string]bool

func (s sheets) Frame(sheet, animation string) (world.SpriteFrame, error) {
	if !s[animation] {
		return world.SpriteFrame{}, fmt.Errorf("%s/%s: %w", sheet, animation, world.ErrUnknownSprite)
	}
	return world.SpriteFrame{Sheet: sheet, Animation: animation, Image: sheet + ".png", Src: image.Rect(0, 0, 16, 24)}, nil
}

func allAnims() sheets {
	return sheets{"idle": true, AnimIdleLeft: true, AnimIdleRight: true, AnimRunLeft: true, AnimRunRight: true, AnimJump: true}
}

func setup(t *testing.T, sh sheets, cfg Config) (*world.World, *Player, *world.Entity) {
	t.Helper()
	w := world.New(world.DefaultConfig(), world.WithSpriteSheets(sh))
	id, err := w.Spawn(world.Spec{
		Name:     "player",
		Variant:  world.VariantSolidSprite,
		Sheet:    "player",
		Position: common.V(40, 40),
		Width:    16,
		Height:   24,
		Dynamic:  true,
	})
	require.NoError(t, err)
	return w, NewPlayer(id, cfg), w.Entity(id)
}

func TestMoveAndReleaseSetsIdleFacing(t *testing.T) {
	w, p, e := setup(t, allAnims(), Config{MoveSpeed: 4, JumpSpeed: 10})
	var tr input.Tracker

	require.NoError(t, p.Apply(w, tr.Next(input.SetOf(input.ActionRight))))
	assert.Equal(t, 4.0, e.Velocity.X)
	assert.Equal(t, AnimRunRight, e.Sprite.Animation)
	assert.False(t, p.FacingLeft())

	require.NoError(t, p.Apply(w, tr.Next(0)))
	assert.Equal(t, 0.0, e.Velocity.X)
	assert.Equal(t, AnimIdleRight, e.Sprite.Animation)

	require.NoError(t, p.Apply(w, tr.Next(input.SetOf(input.ActionLeft))))
	assert.Equal(t, -4.0, e.Velocity.X)
	assert.Equal(t, AnimRunLeft, e.Sprite.Animation)
	assert.True(t, p.FacingLeft())

	require.NoError(t, p.Apply(w, tr.Next(0)))
	assert.Equal(t, AnimIdleLeft, e.Sprite.Animation)
}

func TestOpposingKeysCancel(t *testing.T) {
	w, p, e := setup(t, allAnims(), Config{MoveSpeed: 4})
	e.Velocity.X = 3
	var tr input.Tracker

	require.NoError(t, p.Apply(w, tr.Next(input.SetOf(input.ActionLeft, input.ActionRight))))
	assert.Equal(t, 0.0, e.Velocity.X)
	assert.Equal(t, world.IdleAnimation, e.Sprite.Animation)
}

func TestAcceleration(t *testing.T) {
	w, p, e := setup(t, allAnims(), Config{MoveSpeed: 4, Acceleration: 1.5})
	var tr input.Tracker

	want := []float64{1.5, 3, 4, 4}
	for i, v := range want {
		require.NoError(t, p.Apply(w, tr.Next(input.SetOf(input.ActionRight))))
		assert.Equal(t, v, e.Velocity.X, "frame %d", i)
	}
	require.NoError(t, p.Apply(w, tr.Next(0)))
	assert.Equal(t, 2.5, e.Velocity.X)
}

func TestJumpRequiresGround(t *testing.T) {
	w, p, e := setup(t, allAnims(), Config{MoveSpeed: 4, JumpSpeed: 10})
	var tr input.Tracker

	require.NoError(t, p.Apply(w, tr.Next(input.SetOf(input.ActionJump))))
	assert.Equal(t, 0.0, e.Velocity.Y)
	assert.Equal(t, world.IdleAnimation, e.Sprite.Animation)

	e.TouchingGround = true
	require.NoError(t, p.Apply(w, tr.Next(input.SetOf(input.ActionJump))))
	assert.Equal(t, -10.0, e.Velocity.Y)
	assert.False(t, e.TouchingGround)
	assert.Equal(t, AnimJump, e.Sprite.Animation)

	// Still airborne: steering keeps the jump frame.
	require.NoError(t, p.Apply(w, tr.Next(input.SetOf(input.ActionJump, input.ActionLeft))))
	assert.Equal(t, -10.0, e.Velocity.Y)
	assert.Equal(t, AnimJump, e.Sprite.Animation)

	// Landed with nothing held.
	e.TouchingGround = true
	require.NoError(t, p.Apply(w, tr.Next(0)))
	assert.Equal(t, AnimIdleLeft, e.Sprite.Animation)
}

func TestJumpAndLandInWorld(t *testing.T) {
	w, p, e := setup(t, allAnims(), Config{MoveSpeed: 4, JumpSpeed: 8})
	_, err := w.Spawn(world.Spec{Variant: world.VariantSolidRect, Position: common.V(0, 100), Width: 200, Height: 20})
	require.NoError(t, err)

	for i := 0; i < 60; i++ {
		w.Step()
	}
	require.True(t, e.TouchingGround)
	require.Equal(t, 76.0, e.Position.Y)

	var tr input.Tracker
	require.NoError(t, p.Apply(w, tr.Next(input.SetOf(input.ActionJump))))
	w.Step()
	assert.Less(t, e.Position.Y, 76.0)
	assert.False(t, e.TouchingGround)

	landed := false
	for i := 0; i < 120 && !landed; i++ {
		require.NoError(t, p.Apply(w, tr.Next(0)))
		w.Step()
		landed = e.TouchingGround
	}
	assert.True(t, landed)
	assert.Equal(t, 76.0, e.Position.Y)
}

func TestMissingPlayer(t *testing.T) {
	w := world.New(world.DefaultConfig())
	err := NewPlayer(world.ID(3), Config{}).Apply(w, input.Snapshot{})
	assert.True(t, errors.Is(err, ErrNoPlayer))
}

func TestMissingAnimation(t *testing.T) {
	w, p, e := setup(t, sheets{"idle": true}, Config{MoveSpeed: 2})
	var tr input.Tracker

	err := p.Apply(w, tr.Next(input.SetOf(input.ActionRight)))
	assert.True(t, errors.Is(err, world.ErrUnknownSprite))
	assert.Equal(t, 2.0, e.Velocity.X)
	assert.Equal(t, world.IdleAnimation, e.Sprite.Animation)
}

func TestApproach(t *testing.T) {
	assert.Equal(t, 5.0, approach(0, 5, 0))
	assert.Equal(t, 1.0, approach(0, 5, 1))
	assert.Equal(t, 5.0, approach(4.5, 5, 1))
	assert.Equal(t, -1.0, approach(0, -5, 1))
	assert.Equal(t, -5.0, approach(-4.5, -5, 1))
	assert.Equal(t, 2.0, approach(2, 2, 1))
}
