package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanAssetPath(t *testing.T) {
	cases := map[string]string{
		"":                       "",
		"stone.png":              "stone.png",
		"assets/stone.png":       "stone.png",
		"/srv/game/assets/a.png": "a.png",
		"/tmp/b.png":             "b.png",
	}
	for in, want := range cases {
		assert.Equal(t, want, cleanAssetPath(in), in)
	}
}

func TestDecodeEmbedded(t *testing.T) {
	img, err := Decode("assets/stone.png")
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())

	img, err = Decode("player.png")
	require.NoError(t, err)
	assert.Equal(t, 96, img.Bounds().Dx())
	assert.Equal(t, 24, img.Bounds().Dy())
}

func TestDecodeMissing(t *testing.T) {
	_, err := Decode("nope.png")
	assert.Error(t, err)

	_, err = LoadFile("")
	assert.Error(t, err)
}
