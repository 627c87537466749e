package ciq

// stabilityThreshold is the squared centroid movement at or below which
// a centroid counts as stable between iterations. 8 corresponds to a
// combined RGB movement of roughly 2.8 units.
const stabilityThreshold = 8

// Clusterer holds the state of one quantization run: the pixel samples
// in scan order, their current cluster assignments, and the K centroids.
//
// A Clusterer is owned by a single run and is not safe for concurrent
// use.
type Clusterer struct {
	// Samples are the input pixels in row-major scan order.
	Samples []Color
	// Clusters holds one centroid index per sample, -1 before the
	// first assignment pass.
	Clusters []int
	// Centroids are the K representative colors, indexed stably across
	// iterations.
	Centroids []Color
}

// NewClusterer validates k against the sample population and allocates
// the assignment and centroid storage. The samples slice is retained,
// not copied.
func NewClusterer(samples []Color, k int) (*Clusterer, error) {
	if k <= 0 || k > len(samples) {
		return nil, &InvalidKError{K: k, Size: len(samples)}
	}
	clusters := make([]int, len(samples))
	for i := range clusters {
		clusters[i] = -1
	}
	return &Clusterer{
		Samples:   samples,
		Clusters:  clusters,
		Centroids: make([]Color, k),
	}, nil
}

// assign points every sample at its nearest centroid. Ties go to the
// lowest centroid index, so assignment is deterministic.
func (c *Clusterer) assign() {
	for i, s := range c.Samples {
		best := 0
		bestDist := s.DistSquared(c.Centroids[0])
		for j := 1; j < len(c.Centroids); j++ {
			if d := s.DistSquared(c.Centroids[j]); d < bestDist {
				bestDist = d
				best = j
			}
		}
		c.Clusters[i] = best
	}
}

// update recomputes every centroid as the componentwise mean of its
// members, truncated to integer channels. A centroid with no members
// keeps its previous color. Reports whether any centroid moved beyond
// the stability threshold.
func (c *Clusterer) update() bool {
	k := len(c.Centroids)
	sumR := make([]int64, k)
	sumG := make([]int64, k)
	sumB := make([]int64, k)
	count := make([]int64, k)
	for i, s := range c.Samples {
		j := c.Clusters[i]
		sumR[j] += int64(s.R)
		sumG[j] += int64(s.G)
		sumB[j] += int64(s.B)
		count[j]++
	}

	changed := false
	for j := 0; j < k; j++ {
		if count[j] == 0 {
			continue
		}
		next := Color{
			R: uint8(sumR[j] / count[j]),
			G: uint8(sumG[j] / count[j]),
			B: uint8(sumB[j] / count[j]),
		}
		if c.Centroids[j].DistSquared(next) > stabilityThreshold {
			changed = true
		}
		c.Centroids[j] = next
	}
	return changed
}

// Iterate runs one assignment pass followed by one centroid update and
// reports whether any centroid moved beyond the stability threshold.
func (c *Clusterer) Iterate() bool {
	c.assign()
	return c.update()
}

// Run iterates until the centroids are stable or maxIters is reached.
// progress, if non-nil, is called with the 1-based iteration number
// before each iteration. It returns the number of iterations performed
// and whether stability was reached within the cap; hitting the cap is
// a quality trade-off, not a failure.
func (c *Clusterer) Run(maxIters int, progress func(iter int)) (iters int, stable bool) {
	for i := 0; i < maxIters; i++ {
		if progress != nil {
			progress(i + 1)
		}
		if !c.Iterate() {
			return i + 1, true
		}
	}
	return maxIters, false
}
