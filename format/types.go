package format

import (
	"fmt"

	"github.com/arloliu/bts/errs"
)

// DType is the 1-byte type tag identifying a primitive storage kind.
type DType uint8

const (
	DTypeNone   DType = 0 // DTypeNone marks a disabled slot (scaling only).
	DTypeByte   DType = 1 // DTypeByte is a signed 8-bit integer.
	DTypeShort  DType = 2 // DTypeShort is a signed 16-bit integer.
	DTypeInt    DType = 3 // DTypeInt is a signed 32-bit integer.
	DTypeLong   DType = 4 // DTypeLong is a signed 64-bit integer.
	DTypeFloat  DType = 5 // DTypeFloat is an IEEE 754 binary32 value.
	DTypeDouble DType = 6 // DTypeDouble is an IEEE 754 binary64 value.

	maxDType = DTypeDouble
)

// Sample is the set of Go types a raw sample, a scaled value or a slot value can take.
//
// The mapping to type tags is fixed: int8=BYTE, int16=SHORT, int32=INT, int64=LONG,
// float32=FLOAT, float64=DOUBLE.
type Sample interface {
	int8 | int16 | int32 | int64 | float32 | float64
}

// AllDTypes lists every tag, including DTypeNone, in tag order.
var AllDTypes = []DType{DTypeNone, DTypeByte, DTypeShort, DTypeInt, DTypeLong, DTypeFloat, DTypeDouble}

// DataDTypes lists the tags valid for the raw sample array.
var DataDTypes = []DType{DTypeByte, DTypeShort, DTypeInt, DTypeLong, DTypeFloat, DTypeDouble}

// TimeDTypes lists the tags valid for t0 and dt.
var TimeDTypes = []DType{DTypeLong, DTypeDouble}

// Width returns the byte width of a value of the given type, 0 for DTypeNone
// and for unknown tags.
func (d DType) Width() int {
	switch d {
	case DTypeByte:
		return 1
	case DTypeShort:
		return 2
	case DTypeInt, DTypeFloat:
		return 4
	case DTypeLong, DTypeDouble:
		return 8
	default:
		return 0
	}
}

// IsValid reports whether d is one of the seven known tags.
func (d DType) IsValid() bool {
	return d <= maxDType
}

// IsInteger reports whether d is one of the signed integer kinds.
func (d DType) IsInteger() bool {
	return d >= DTypeByte && d <= DTypeLong
}

// IsFloat reports whether d is one of the floating-point kinds.
func (d DType) IsFloat() bool {
	return d == DTypeFloat || d == DTypeDouble
}

// IsValidTime reports whether d can be used for t0 and dt.
func (d DType) IsValidTime() bool {
	return d == DTypeLong || d == DTypeDouble
}

// IsValidData reports whether d can be used for the raw sample array.
func (d DType) IsValidData() bool {
	return d >= DTypeByte && d <= maxDType
}

func (d DType) String() string {
	switch d {
	case DTypeNone:
		return "NONE"
	case DTypeByte:
		return "BYTE"
	case DTypeShort:
		return "SHORT"
	case DTypeInt:
		return "INT"
	case DTypeLong:
		return "LONG"
	case DTypeFloat:
		return "FLOAT"
	case DTypeDouble:
		return "DOUBLE"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(d))
	}
}

// ParseDType converts a stored tag byte into a DType.
//
// Returns errs.ErrUnknownTypeTag if b is not one of the seven known tags.
func ParseDType(b byte) (DType, error) {
	d := DType(b)
	if !d.IsValid() {
		return d, fmt.Errorf("%w: %d", errs.ErrUnknownTypeTag, b)
	}

	return d, nil
}

// LookupDType returns the tag for a type name as produced by DType.String,
// case-sensitive. It is used by tooling that accepts tag names on input.
func LookupDType(name string) (DType, error) {
	for _, d := range AllDTypes {
		if d.String() == name {
			return d, nil
		}
	}

	return DTypeNone, fmt.Errorf("%w: %q", errs.ErrUnknownTypeTag, name)
}

// DTypeOf returns the tag corresponding to the Go type T.
func DTypeOf[T Sample]() DType {
	var zero T
	switch any(zero).(type) {
	case int8:
		return DTypeByte
	case int16:
		return DTypeShort
	case int32:
		return DTypeInt
	case int64:
		return DTypeLong
	case float32:
		return DTypeFloat
	default:
		return DTypeDouble
	}
}
