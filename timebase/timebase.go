// Package timebase maps between sample indices and timestamps of a
// uniformly sampled series.
//
// The timestamp of sample i is t0 + i*dt. It is never stored; Build and
// BuildInto materialize it on demand, and FirstIndexInside and
// LastIndexInside invert it in constant time, without scanning.
//
// Timebases are int64 (LONG) or float64 (DOUBLE). For int64 timebases the
// index bounds use exact floor and ceiling division, also for bounds before
// t0. For float64 timebases the same formulas use floating division, so a
// bound is only exact when (bound - t0) is an exact multiple of dt.
// All functions assume dt > 0.
package timebase

import (
	"math"
)

// Time is the set of Go types a timebase can use.
type Time interface {
	int64 | float64
}

// At returns the timestamp of sample i.
func At[T Time](t0, dt T, i int) T {
	return t0 + T(i)*dt
}

// Build returns the n timestamps t0, t0+dt, ..., t0+(n-1)*dt.
func Build[T Time](t0, dt T, n int) []T {
	if n <= 0 {
		return []T{}
	}

	out := make([]T, n)
	BuildInto(0, out, 0, n, t0, dt)

	return out
}

// BuildInto fills dst[destOffset+k] = t0 + (sourceOffset+k)*dt for k in [0, count).
//
// Panics if dst is too short, like a slice copy out of range.
func BuildInto[T Time](sourceOffset int, dst []T, destOffset, count int, t0, dt T) {
	window := dst[destOffset : destOffset+count]
	for k := range window {
		window[k] = t0 + T(sourceOffset+k)*dt
	}
}

// FirstIndexInside returns the smallest i >= 0 with t0 + i*dt >= lowerBound,
// computed as ceil((lowerBound - t0) / dt) clamped to 0.
//
// The result may be beyond the last sample of a record; callers compare it
// with the sample count. A NaN bound yields math.MaxInt.
func FirstIndexInside[T Time](t0, dt, lowerBound T) int {
	switch b := any(lowerBound).(type) {
	case int64:
		return firstIndexInt(any(t0).(int64), any(dt).(int64), b)
	default:
		return firstIndexFloat(any(t0).(float64), any(dt).(float64), any(lowerBound).(float64))
	}
}

// LastIndexInside returns the largest i with t0 + i*dt <= upperBound,
// computed as floor((upperBound - t0) / dt) clamped to numSamples-1.
//
// The result is negative when every sample lies after upperBound. A NaN
// bound yields -1.
func LastIndexInside[T Time](t0, dt, upperBound T, numSamples int) int {
	switch b := any(upperBound).(type) {
	case int64:
		return lastIndexInt(any(t0).(int64), any(dt).(int64), b, numSamples)
	default:
		return lastIndexFloat(any(t0).(float64), any(dt).(float64), any(upperBound).(float64), numSamples)
	}
}

func firstIndexInt(t0, dt, lower int64) int {
	if lower <= t0 {
		return 0
	}

	diff := lower - t0
	if diff < 0 {
		// lower - t0 overflowed int64; no representable sample reaches it
		return math.MaxInt
	}

	return clampInt(ceilDiv(diff, dt))
}

func lastIndexInt(t0, dt, upper int64, numSamples int) int {
	last := numSamples - 1
	if upper < t0 {
		diff := upper - t0
		if diff > 0 {
			// underflow
			return min(-1, last)
		}

		return min(clampInt(floorDiv(diff, dt)), last)
	}

	diff := upper - t0
	if diff < 0 {
		// overflow
		return last
	}

	return min(clampInt(floorDiv(diff, dt)), last)
}

func firstIndexFloat(t0, dt, lower float64) int {
	q := math.Ceil((lower - t0) / dt)
	switch {
	case math.IsNaN(q):
		return math.MaxInt
	case q <= 0:
		return 0
	case q >= math.MaxInt:
		return math.MaxInt
	default:
		return int(q)
	}
}

func lastIndexFloat(t0, dt, upper float64, numSamples int) int {
	last := numSamples - 1
	q := math.Floor((upper - t0) / dt)
	switch {
	case math.IsNaN(q):
		return min(-1, last)
	case q >= float64(last):
		return last
	case q < -1:
		return -1
	default:
		return int(q)
	}
}

// floorDiv divides rounding toward negative infinity; d must be positive.
func floorDiv(n, d int64) int64 {
	q := n / d
	if n%d != 0 && n < 0 {
		q--
	}

	return q
}

// ceilDiv divides rounding toward positive infinity; d must be positive.
func ceilDiv(n, d int64) int64 {
	q := n / d
	if n%d != 0 && n > 0 {
		q++
	}

	return q
}

func clampInt(v int64) int {
	switch {
	case v > math.MaxInt:
		return math.MaxInt
	case v < math.MinInt:
		return math.MinInt
	default:
		return int(v)
	}
}
