package ciq

import "fmt"

// InvalidKError indicates a cluster count outside the valid range
// (0, size], where size is the number of pixel samples.
type InvalidKError struct {
	K    int
	Size int
}

func (e *InvalidKError) Error() string {
	return fmt.Sprintf("invalid cluster count %d for %d samples", e.K, e.Size)
}

// FormatError indicates input that is not a supported 8-bit raster.
//
// The underlying error (if any) can be accessed via errors.Unwrap.
type FormatError struct {
	Reason string
	cause  error
}

func (e *FormatError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("bad image format: %s: %v", e.Reason, e.cause)
	}
	return "bad image format: " + e.Reason
}

func (e *FormatError) Unwrap() error { return e.cause }
