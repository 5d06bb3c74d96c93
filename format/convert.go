package format

import (
	"math"
	"strconv"
)

// Float-to-integer narrowing follows the JVM rules, which the format uses as
// its reference arithmetic: NaN becomes 0, values outside the target range
// saturate to the nearest bound, everything else truncates toward zero.
// Go leaves out-of-range float conversions implementation-defined, so the
// bounds are checked explicitly.

const (
	twoPow31 = 2147483648.0
	twoPow63 = 9223372036854775808.0
)

// FloatToInt32 narrows v to int32.
func FloatToInt32(v float64) int32 {
	switch {
	case v != v:
		return 0
	case v >= twoPow31:
		return math.MaxInt32
	case v <= -twoPow31:
		return math.MinInt32
	default:
		return int32(v)
	}
}

// FloatToInt64 narrows v to int64.
func FloatToInt64(v float64) int64 {
	switch {
	case v != v:
		return 0
	case v >= twoPow63:
		return math.MaxInt64
	case v <= -twoPow63:
		return math.MinInt64
	default:
		return int64(v)
	}
}

func formatFloat(v float64, bitSize int) string {
	return strconv.FormatFloat(v, 'g', -1, bitSize)
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
