package format

import "math"

// Scalar is a typed value as held by an 8-byte header slot.
//
// The bit pattern of the natural-width value is kept as-is, zero-extended to
// 64 bits, so a Scalar read from a header writes back bit-for-bit identical,
// NaN payloads included. The zero Scalar has type DTypeNone.
type Scalar struct {
	dtype DType
	bits  uint64
}

// ScalarFromBits builds a Scalar from a natural-width bit pattern.
// Bits above the width of d are discarded.
func ScalarFromBits(d DType, bits uint64) Scalar {
	switch d.Width() {
	case 0:
		return Scalar{dtype: d}
	case 1:
		bits &= 0xFF
	case 2:
		bits &= 0xFFFF
	case 4:
		bits &= 0xFFFF_FFFF
	}

	return Scalar{dtype: d, bits: bits}
}

// ValueOf builds a Scalar from a Go value, tagging it with DTypeOf[T].
func ValueOf[T Sample](v T) Scalar {
	switch x := any(v).(type) {
	case int8:
		return Byte(x)
	case int16:
		return Short(x)
	case int32:
		return Int(x)
	case int64:
		return Long(x)
	case float32:
		return Float(x)
	default:
		return Double(any(v).(float64))
	}
}

func Byte(v int8) Scalar      { return Scalar{dtype: DTypeByte, bits: uint64(uint8(v))} }
func Short(v int16) Scalar    { return Scalar{dtype: DTypeShort, bits: uint64(uint16(v))} }
func Int(v int32) Scalar      { return Scalar{dtype: DTypeInt, bits: uint64(uint32(v))} }
func Long(v int64) Scalar     { return Scalar{dtype: DTypeLong, bits: uint64(v)} }
func Float(v float32) Scalar  { return Scalar{dtype: DTypeFloat, bits: uint64(math.Float32bits(v))} }
func Double(v float64) Scalar { return Scalar{dtype: DTypeDouble, bits: math.Float64bits(v)} }

// DType returns the tag of the value.
func (s Scalar) DType() DType { return s.dtype }

// Bits returns the natural-width bit pattern, zero-extended.
func (s Scalar) Bits() uint64 { return s.bits }

// IsZero reports whether every bit of the value is zero.
func (s Scalar) IsZero() bool { return s.bits == 0 }

// Int32 returns the value promoted to int32.
//
// BYTE and SHORT sign-extend. Wider kinds are narrowed the same way a stored
// raw sample would be: LONG truncates, FLOAT and DOUBLE follow the saturating
// float-to-int rule of FloatToInt32.
func (s Scalar) Int32() int32 {
	switch s.dtype {
	case DTypeByte:
		return int32(int8(s.bits))
	case DTypeShort:
		return int32(int16(s.bits))
	case DTypeInt:
		return int32(uint32(s.bits))
	case DTypeLong:
		return int32(int64(s.bits))
	case DTypeFloat:
		return FloatToInt32(float64(math.Float32frombits(uint32(s.bits))))
	case DTypeDouble:
		return FloatToInt32(math.Float64frombits(s.bits))
	default:
		return 0
	}
}

// Int64 returns the value promoted to int64.
func (s Scalar) Int64() int64 {
	switch s.dtype {
	case DTypeByte, DTypeShort, DTypeInt:
		return int64(s.Int32())
	case DTypeLong:
		return int64(s.bits)
	case DTypeFloat:
		return FloatToInt64(float64(math.Float32frombits(uint32(s.bits))))
	case DTypeDouble:
		return FloatToInt64(math.Float64frombits(s.bits))
	default:
		return 0
	}
}

// Float32 returns the value promoted to float32, rounding to nearest for
// LONG, INT and DOUBLE values that are not exactly representable.
func (s Scalar) Float32() float32 {
	switch s.dtype {
	case DTypeByte, DTypeShort, DTypeInt:
		return float32(s.Int32())
	case DTypeLong:
		return float32(int64(s.bits))
	case DTypeFloat:
		return math.Float32frombits(uint32(s.bits))
	case DTypeDouble:
		return float32(math.Float64frombits(s.bits))
	default:
		return 0
	}
}

// Float64 returns the value promoted to float64.
func (s Scalar) Float64() float64 {
	switch s.dtype {
	case DTypeByte, DTypeShort, DTypeInt:
		return float64(s.Int32())
	case DTypeLong:
		return float64(int64(s.bits))
	case DTypeFloat:
		return float64(math.Float32frombits(uint32(s.bits)))
	case DTypeDouble:
		return math.Float64frombits(s.bits)
	default:
		return 0
	}
}

// String renders the value in its natural Go form.
func (s Scalar) String() string {
	switch s.dtype {
	case DTypeNone:
		return "none"
	case DTypeFloat:
		return formatFloat(float64(s.Float32()), 32)
	case DTypeDouble:
		return formatFloat(s.Float64(), 64)
	default:
		return formatInt(s.Int64())
	}
}
