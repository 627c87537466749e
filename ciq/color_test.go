package ciq

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistSquaredProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		a := randColor(rng)
		b := randColor(rng)
		assert.Zero(t, a.DistSquared(a))
		assert.Equal(t, a.DistSquared(b), b.DistSquared(a))
		assert.GreaterOrEqual(t, a.DistSquared(b), int64(0))
	}
}

func TestDistSquaredKnown(t *testing.T) {
	assert.Equal(t, int64(3*255*255),
		Color{0, 0, 0}.DistSquared(Color{255, 255, 255}))
	assert.Equal(t, int64(1+4+9),
		Color{R: 10, G: 10, B: 10}.DistSquared(Color{R: 11, G: 12, B: 13}))
}

func randColor(rng *rand.Rand) Color {
	return Color{
		R: uint8(rng.Intn(256)),
		G: uint8(rng.Intn(256)),
		B: uint8(rng.Intn(256)),
	}
}

func randColors(rng *rand.Rand, n int) []Color {
	colors := make([]Color, n)
	for i := range colors {
		colors[i] = randColor(rng)
	}
	return colors
}
