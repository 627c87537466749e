package ciq

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"time"
)

// DefaultK is the default number of palette colors.
const DefaultK = 256

// DefaultMaxIters is the default cap on clustering iterations.
const DefaultMaxIters = 100

// Config configures a quantization run.
type Config struct {
	// K is the number of palette colors. Zero means DefaultK. K must
	// not exceed the pixel count of the image.
	K int

	// MaxIters caps the clustering iterations. Zero means
	// DefaultMaxIters.
	MaxIters int

	// Canonical switches seeding from SeedChain to SeedCanonical.
	Canonical bool

	// Rand is the randomness source for seeding. Nil means a
	// time-seeded generator, so results are only reproducible across
	// runs when a seeded generator is supplied.
	Rand *rand.Rand

	// PalettePath is where QuantizeFile writes the palette artifact.
	// Empty means the output path with its extension replaced by
	// ".pal".
	PalettePath string

	// Progress, if non-nil, is called with the 1-based iteration
	// number before every clustering iteration.
	Progress func(iter int)
}

// Result is the outcome of a quantization run.
type Result struct {
	// Pixels holds the remapped image in scan order: every entry is
	// the color of the centroid its input pixel was assigned to.
	Pixels []Color

	// Palette holds the K final centroid colors. Every color in Pixels
	// appears in Palette.
	Palette []Color

	// Iters is the number of clustering iterations performed.
	Iters int

	// Stable reports whether the centroids stopped moving before the
	// iteration cap. False still yields a usable result, just from an
	// unconverged clustering.
	Stable bool
}

// Quantize clusters pixels into cfg.K representative colors and remaps
// every pixel to its nearest one. The input slice is not modified.
func Quantize(pixels []Color, cfg *Config) (*Result, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	k := cfg.K
	if k == 0 {
		k = DefaultK
	}
	maxIters := cfg.MaxIters
	if maxIters == 0 {
		maxIters = DefaultMaxIters
	}

	c, err := NewClusterer(pixels, k)
	if err != nil {
		return nil, err
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	strategy := SeedChain
	if cfg.Canonical {
		strategy = SeedCanonical
	}
	c.Seed(rng, strategy)
	iters, stable := c.Run(maxIters, cfg.Progress)

	res := &Result{
		Pixels:  make([]Color, len(pixels)),
		Palette: append([]Color(nil), c.Centroids...),
		Iters:   iters,
		Stable:  stable,
	}
	for i, cl := range c.Clusters {
		res.Pixels[i] = c.Centroids[cl]
	}
	return res, nil
}

// QuantizeFile reads the raster at inPath, quantizes it, and writes the
// remapped raster to outPath plus the palette artifact next to it.
//
// The image and the palette are written independently, image first: a
// palette failure after the image was written is reported through the
// returned error but does not remove the image, and the Result is still
// returned.
func QuantizeFile(inPath, outPath string, cfg *Config) (*Result, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	width, height, pixels, err := ReadRaster(inPath)
	if err != nil {
		return nil, err
	}
	res, err := Quantize(pixels, cfg)
	if err != nil {
		return nil, err
	}
	if err := WriteRaster(outPath, width, height, res.Pixels, res.Palette); err != nil {
		return nil, err
	}

	palPath := cfg.PalettePath
	if palPath == "" {
		palPath = strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".pal"
	}
	if err := WritePaletteFile(palPath, res.Palette); err != nil {
		return res, fmt.Errorf("write palette: %w", err)
	}
	return res, nil
}
