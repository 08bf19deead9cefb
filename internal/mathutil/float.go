package mathutil

import (
	"cmp"
	"math"
)

// Clamp limits v to the closed range [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// AllFinite reports whether every value is finite.
func AllFinite(xs ...float64) bool {
	for _, x := range xs {
		if !IsFinite(x) {
			return false
		}
	}
	return true
}

// NearlyEqual compares two floats with an absolute tolerance.
func NearlyEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// ChunkSize splits total work across workers, never returning less than minChunk.
func ChunkSize(total, workers, minChunk int) int {
	if workers <= 0 {
		workers = 1
	}
	return max(minChunk, total/workers)
}
