package scaling

import (
	"fmt"

	"github.com/arloliu/bts/cursor"
	"github.com/arloliu/bts/errs"
	"github.com/arloliu/bts/format"
)

// Kernel decodes raw samples of one data dtype into values of type T.
//
// The offset and factor are promoted to the arithmetic type once, when the
// kernel is built; Apply then costs one multiply-add and one cast per sample.
type Kernel[T format.Sample] struct {
	params Params
	data   format.DType
	arith  format.DType
	fn     func(bits uint64) T
}

// NewKernel builds a kernel for raw samples of dtype data.
//
// Parameters:
//   - params: Scaling parameters; the zero Params gives a plain cast
//   - data: Data dtype of the raw samples (DTypeNone is invalid)
//
// Returns:
//   - Kernel[T]: Immutable kernel
//   - error: ErrInvalidDataDtype, ErrUnknownTypeTag or ErrInvalidScaling for bad inputs
func NewKernel[T format.Sample](params Params, data format.DType) (Kernel[T], error) {
	if !data.IsValid() {
		return Kernel[T]{}, fmt.Errorf("%w: data dtype %d", errs.ErrUnknownTypeTag, uint8(data))
	}
	if !data.IsValidData() {
		return Kernel[T]{}, fmt.Errorf("%w: %s", errs.ErrInvalidDataDtype, data)
	}
	if err := params.Validate(); err != nil {
		return Kernel[T]{}, err
	}

	k := Kernel[T]{
		params: params,
		data:   data,
		arith:  Promote(params.DType, data),
	}

	switch k.arith {
	case format.DTypeNone:
		k.fn = func(bits uint64) T {
			return Cast[T](format.ScalarFromBits(data, bits))
		}
	case format.DTypeInt:
		o, f := params.Offset.Int32(), params.Factor.Int32()
		k.fn = func(bits uint64) T {
			r := format.ScalarFromBits(data, bits).Int32()
			return FromInt32[T](o + r*f)
		}
	case format.DTypeLong:
		o, f := params.Offset.Int64(), params.Factor.Int64()
		k.fn = func(bits uint64) T {
			r := format.ScalarFromBits(data, bits).Int64()
			return FromInt64[T](o + r*f)
		}
	case format.DTypeFloat:
		o, f := params.Offset.Float32(), params.Factor.Float32()
		k.fn = func(bits uint64) T {
			r := format.ScalarFromBits(data, bits).Float32()
			// the explicit conversion rounds the product and prevents fusion
			return FromFloat32[T](o + float32(r*f))
		}
	default:
		o, f := params.Offset.Float64(), params.Factor.Float64()
		k.fn = func(bits uint64) T {
			r := format.ScalarFromBits(data, bits).Float64()
			return FromFloat64[T](o + float64(r*f))
		}
	}

	return k, nil
}

// Params returns the scaling parameters of the kernel.
func (k Kernel[T]) Params() Params { return k.params }

// DataDType returns the raw sample dtype the kernel reads.
func (k Kernel[T]) DataDType() format.DType { return k.data }

// ArithmeticType returns the type the multiply-add is evaluated in, or
// DTypeNone for a plain cast.
func (k Kernel[T]) ArithmeticType() format.DType { return k.arith }

// Apply decodes a single raw sample given as its natural-width bit pattern.
func (k Kernel[T]) Apply(bits uint64) T {
	return k.fn(bits)
}

// ApplyScalar decodes a single raw sample given as a Scalar of the kernel's data dtype.
func (k Kernel[T]) ApplyScalar(raw format.Scalar) T {
	return k.fn(raw.Bits())
}

// Decode reads len(dst) raw samples from c, starting at its current
// position, and writes the decoded values into dst.
//
// Returns the cursor error if the region ends before len(dst) samples; dst
// is then partially filled.
func (k Kernel[T]) Decode(c *cursor.Cursor, dst []T) error {
	width := k.data.Width()
	for i := range dst {
		bits := c.Bits(width)
		if err := c.Err(); err != nil {
			return err
		}
		dst[i] = k.fn(bits)
	}

	return nil
}

// Decode is a convenience wrapper building a kernel and decoding len(dst)
// samples from c.
func Decode[T format.Sample](c *cursor.Cursor, dst []T, params Params, data format.DType) error {
	k, err := NewKernel[T](params, data)
	if err != nil {
		return err
	}

	return k.Decode(c, dst)
}
