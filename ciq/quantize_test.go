package ciq

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantizeTwoClusters(t *testing.T) {
	// A 2x2 image with two dark and two bright pixels.
	pixels := []Color{
		{R: 10, G: 10, B: 10},
		{R: 20, G: 20, B: 20},
		{R: 240, G: 240, B: 240},
		{R: 230, G: 230, B: 230},
	}
	res, err := Quantize(pixels, &Config{
		K:    2,
		Rand: rand.New(rand.NewSource(30)),
	})
	require.NoError(t, err)
	assert.True(t, res.Stable)
	assert.Len(t, res.Palette, 2)
	assert.Len(t, res.Pixels, len(pixels))
	for _, p := range res.Pixels {
		assert.Contains(t, res.Palette, p)
	}
}

func TestQuantizeUniformImage(t *testing.T) {
	pixels := make([]Color, 9)
	for i := range pixels {
		pixels[i] = Color{R: 42, G: 99, B: 7}
	}
	res, err := Quantize(pixels, &Config{
		K:    1,
		Rand: rand.New(rand.NewSource(31)),
	})
	require.NoError(t, err)
	assert.True(t, res.Stable)
	assert.Equal(t, 1, res.Iters)
	assert.Equal(t, pixels, res.Pixels)
	assert.Equal(t, []Color{{R: 42, G: 99, B: 7}}, res.Palette)
}

func TestQuantizeKEqualsSize(t *testing.T) {
	pixels := []Color{
		{0, 0, 0},
		{R: 255},
		{G: 255},
		{B: 255},
		{R: 255, G: 255, B: 255},
	}
	res, err := Quantize(pixels, &Config{
		K:         len(pixels),
		Canonical: true,
		Rand:      rand.New(rand.NewSource(32)),
	})
	require.NoError(t, err)
	assert.Equal(t, pixels, res.Pixels)
	assert.ElementsMatch(t, pixels, res.Palette)
}

func TestQuantizePaletteConsistency(t *testing.T) {
	pixels := randColors(rand.New(rand.NewSource(33)), 500)
	res, err := Quantize(pixels, &Config{
		K:    16,
		Rand: rand.New(rand.NewSource(34)),
	})
	require.NoError(t, err)
	require.Len(t, res.Palette, 16)
	palette := make(map[Color]bool, len(res.Palette))
	for _, p := range res.Palette {
		palette[p] = true
	}
	for _, p := range res.Pixels {
		assert.True(t, palette[p], "pixel %v not in palette", p)
	}
}

func TestQuantizeRejectsBadK(t *testing.T) {
	pixels := randColors(rand.New(rand.NewSource(35)), 10)
	for _, k := range []int{-1, 11} {
		_, err := Quantize(pixels, &Config{K: k})
		var kerr *InvalidKError
		assert.ErrorAs(t, err, &kerr, "k=%d", k)
	}
	// The K default exceeds a tiny image's pixel count.
	_, err := Quantize(pixels, nil)
	assert.Error(t, err)
}

func TestQuantizeProgress(t *testing.T) {
	pixels := randColors(rand.New(rand.NewSource(36)), 100)
	var seen []int
	res, err := Quantize(pixels, &Config{
		K:    4,
		Rand: rand.New(rand.NewSource(37)),
		Progress: func(iter int) {
			seen = append(seen, iter)
		},
	})
	require.NoError(t, err)
	require.Len(t, seen, res.Iters)
	for i, iter := range seen {
		assert.Equal(t, i+1, iter)
	}
}

func TestQuantizeFilePPM(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.ppm")
	outPath := filepath.Join(dir, "out.ppm")

	pixels := []Color{
		{R: 10, G: 10, B: 10},
		{R: 20, G: 20, B: 20},
		{R: 240, G: 240, B: 240},
		{R: 230, G: 230, B: 230},
	}
	writeTestPPM(t, inPath, 2, 2, pixels)

	res, err := QuantizeFile(inPath, outPath, &Config{
		K:    2,
		Rand: rand.New(rand.NewSource(40)),
	})
	require.NoError(t, err)

	width, height, out, err := ReadRaster(outPath)
	require.NoError(t, err)
	assert.Equal(t, 2, width)
	assert.Equal(t, 2, height)
	assert.Equal(t, res.Pixels, out)

	// Palette artifact lands next to the output by default.
	pal, err := os.ReadFile(filepath.Join(dir, "out.pal"))
	require.NoError(t, err)
	require.Len(t, pal, 3*len(res.Palette))
	for i, p := range res.Palette {
		assert.Equal(t, []byte{p.R, p.G, p.B}, pal[3*i:3*i+3])
	}
}

func TestQuantizeFilePalettePathOverride(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.ppm")
	palPath := filepath.Join(dir, "custom.pal")
	writeTestPPM(t, inPath, 2, 1, []Color{{R: 5, G: 5, B: 5}, {R: 5, G: 5, B: 5}})

	_, err := QuantizeFile(inPath, filepath.Join(dir, "out.ppm"), &Config{
		K:           1,
		PalettePath: palPath,
		Rand:        rand.New(rand.NewSource(41)),
	})
	require.NoError(t, err)

	pal, err := os.ReadFile(palPath)
	require.NoError(t, err)
	assert.Equal(t, []byte{5, 5, 5}, pal)
}

func TestQuantizeFileBadInput(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.ppm")
	require.NoError(t, os.WriteFile(inPath, []byte("not a raster"), 0644))

	_, err := QuantizeFile(inPath, filepath.Join(dir, "out.ppm"), &Config{K: 1})
	var ferr *FormatError
	assert.ErrorAs(t, err, &ferr)
	assert.NoFileExists(t, filepath.Join(dir, "out.ppm"))
}

func TestQuantizeFileMissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := QuantizeFile(filepath.Join(dir, "nope.ppm"), filepath.Join(dir, "out.ppm"), nil)
	assert.Error(t, err)
}

func writeTestPPM(t *testing.T, path string, width, height int, pixels []Color) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, WritePPM(f, width, height, pixels))
}
