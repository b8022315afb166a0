package render

import (
	"testing"

	"github.com/milk9111/blockworld/common"
	"github.com/milk9111/blockworld/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugLines(t *testing.T) {
	w := world.New(world.DefaultConfig())
	_, err := w.Spawn(world.Spec{Name: "floor", Variant: world.VariantSolidRect, Position: common.V(0, 100), Width: 100, Height: 20})
	require.NoError(t, err)
	_, err = w.Spawn(world.Spec{Variant: world.VariantSolidRect, Position: common.V(40, 81), Width: 20, Height: 20, Dynamic: true})
	require.NoError(t, err)
	w.Step()

	lines := DebugLines(w, common.V(50, 100), 60)
	require.Len(t, lines, 4)
	assert.Equal(t, "TPS: 60.0  frame: 1", lines[0])
	assert.Equal(t, "entities: 2  contacts: 1", lines[1])
	assert.Len(t, lines[2], len("checksum: ")+16)
	assert.Equal(t, "cursor 50,100: floor (solid_rect), #1 (solid_rect)", lines[3])

	lines = DebugLines(w, common.V(-5, -5), 0)
	assert.Equal(t, "cursor -5,-5: -", lines[3])
}
