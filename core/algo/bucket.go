// Package algo has the pure lookup and ranking routines used by core.
package algo

import (
	"math"

	"github.com/huangsam/scorecard/schema"
)

// LookupBucket returns the points of the first bucket that contains value.
// A bucket contains value when value < UpTo, or value == UpTo for an
// inclusive bucket. An unbounded bucket contains everything, +Inf included.
// The boolean is false when no bucket matches, which only happens for NaN or
// a table without an unbounded final bucket.
func LookupBucket(value float64, buckets []schema.Bucket) (float64, bool) {
	if math.IsNaN(value) {
		return 0, false
	}
	for _, b := range buckets {
		if value < b.UpTo || (b.Inclusive && value == b.UpTo) || math.IsInf(b.UpTo, 1) {
			return b.Points, true
		}
	}
	return 0, false
}

// Clamp constrains v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
