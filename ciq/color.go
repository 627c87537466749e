package ciq

// Color is an 8-bit RGB color.
//
// It is used both for pixel samples and for cluster centroids; centroid
// channels always stay in range because they are means of sample channels.
type Color struct {
	R, G, B uint8
}

// DistSquared returns the squared Euclidean distance between c and o in
// RGB space.
//
// The square root is never taken: distances are only compared against
// each other and against the squared stability threshold, and the
// squared form keeps everything in integer arithmetic.
func (c Color) DistSquared(o Color) int64 {
	dr := int64(c.R) - int64(o.R)
	dg := int64(c.G) - int64(o.G)
	db := int64(c.B) - int64(o.B)
	return dr*dr + dg*dg + db*db
}
