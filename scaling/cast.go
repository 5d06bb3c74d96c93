package scaling

import "github.com/arloliu/bts/format"

// FromInt32 narrows or widens an int32 to T.
func FromInt32[T format.Sample](v int32) T {
	return T(v)
}

// FromInt64 narrows or widens an int64 to T. Integer targets truncate, float
// targets round to nearest.
func FromInt64[T format.Sample](v int64) T {
	return T(v)
}

// FromFloat64 converts a float64 to T with saturating float-to-int narrowing.
func FromFloat64[T format.Sample](v float64) T {
	var zero T
	switch any(zero).(type) {
	case int8:
		return T(int8(format.FloatToInt32(v)))
	case int16:
		return T(int16(format.FloatToInt32(v)))
	case int32:
		return T(format.FloatToInt32(v))
	case int64:
		return T(format.FloatToInt64(v))
	default:
		return T(v)
	}
}

// FromFloat32 converts a float32 to T with saturating float-to-int narrowing.
func FromFloat32[T format.Sample](v float32) T {
	var zero T
	switch any(zero).(type) {
	case float32, float64:
		return T(v)
	default:
		// float32 widens to float64 exactly, so the float64 rule applies unchanged
		return FromFloat64[T](float64(v))
	}
}

// Cast converts a typed Scalar to T as a plain cast with no arithmetic.
func Cast[T format.Sample](s format.Scalar) T {
	switch d := s.DType(); {
	case d.IsInteger():
		return FromInt64[T](s.Int64())
	case d == format.DTypeFloat:
		return FromFloat32[T](s.Float32())
	default:
		return FromFloat64[T](s.Float64())
	}
}
