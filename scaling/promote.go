package scaling

import "github.com/arloliu/bts/format"

// promoted applies unary promotion: BYTE and SHORT widen to INT.
func promoted(d format.DType) format.DType {
	if d == format.DTypeByte || d == format.DTypeShort {
		return format.DTypeInt
	}

	return d
}

// Promote returns the arithmetic type used to combine a scaling dtype s with
// a data dtype d: one of DTypeInt, DTypeLong, DTypeFloat or DTypeDouble.
//
// It returns DTypeNone when s is DTypeNone, since no arithmetic happens.
// The tag values of the four arithmetic types are ordered by rank, so the
// widest operand is the larger tag.
func Promote(s, d format.DType) format.DType {
	if s == format.DTypeNone {
		return format.DTypeNone
	}

	return max(promoted(s), promoted(d))
}
