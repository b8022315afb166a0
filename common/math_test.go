package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLerp(t *testing.T) {
	cases := []struct {
		name    string
		a, b, t float64
		want    float64
	}{
		{"start", 2, 10, 0, 2},
		{"end", 2, 10, 1, 10},
		{"middle", 0, 8, 0.5, 4},
		{"negative", -4, 4, 0.25, -2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Lerp(c.a, c.b, c.t))
		})
	}
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-3))
	assert.Equal(t, 0.4, Clamp01(0.4))
	assert.Equal(t, 1.0, Clamp01(7))
}

func TestVectorAdd(t *testing.T) {
	got := V(1, 2).Add(V(0.5, -4))
	assert.Equal(t, V(1.5, -2), got)
}
