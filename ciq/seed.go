package ciq

import "math/rand"

// SeedStrategy selects how the initial centroids are drawn from the
// sample population.
type SeedStrategy int

const (
	// SeedChain weights each draw by the squared distance to the most
	// recently chosen centroid only. It skips the per-sample running
	// minimum that canonical k-means++ maintains, trading some seed
	// diversity for a cheaper pass, and is the default.
	SeedChain SeedStrategy = iota

	// SeedCanonical weights each draw by the squared distance to the
	// nearest already-chosen centroid (textbook k-means++). The two
	// strategies produce different palettes for the same seed.
	SeedCanonical
)

// Seed picks the initial centroids from the sample population. The
// first centroid is drawn uniformly at random; each later centroid
// copies the color of a sample drawn with probability proportional to
// its squared distance weight under the strategy, so samples far from
// the existing centroids are favored.
func (c *Clusterer) Seed(rng *rand.Rand, strategy SeedStrategy) {
	c.Centroids[0] = c.Samples[rng.Intn(len(c.Samples))]
	if len(c.Centroids) == 1 {
		return
	}

	dists := make([]int64, len(c.Samples))
	var total int64
	for i, s := range c.Samples {
		dists[i] = s.DistSquared(c.Centroids[0])
		total += dists[i]
	}

	for i := 1; i < len(c.Centroids); i++ {
		c.Centroids[i] = c.Samples[sampleIndex(rng, dists, total)]
		if i == len(c.Centroids)-1 {
			break
		}
		// Reweight for the next draw.
		total = 0
		for j, s := range c.Samples {
			d := s.DistSquared(c.Centroids[i])
			if strategy == SeedChain || d < dists[j] {
				dists[j] = d
			}
			total += dists[j]
		}
	}
}

// sampleIndex draws an index with probability proportional to dists,
// selecting the first index at which the accumulated weight reaches the
// draw. When every weight is zero (all remaining samples coincide with
// the relevant centroids) the draw is zero and the walk resolves to the
// first sample, so selection still terminates deterministically.
func sampleIndex(rng *rand.Rand, dists []int64, total int64) int {
	draw := rng.Float64() * float64(total)
	for i, d := range dists {
		draw -= float64(d)
		if draw <= 0 {
			return i
		}
	}
	return len(dists) - 1
}
