package scaling

import (
	"fmt"

	"github.com/arloliu/bts/errs"
	"github.com/arloliu/bts/format"
)

// Params holds the affine dequantization parameters of a record.
//
// The zero value disables scaling.
type Params struct {
	// DType is the scaling dtype; DTypeNone disables scaling.
	DType format.DType
	// Offset is added after the multiplication.
	Offset format.Scalar
	// Factor multiplies every raw sample.
	Factor format.Scalar
}

// Disabled returns Params with scaling turned off.
func Disabled() Params {
	return Params{}
}

// New returns Params whose scaling dtype is inferred from S.
func New[S format.Sample](offset, factor S) Params {
	return Params{
		DType:  format.DTypeOf[S](),
		Offset: format.ValueOf(offset),
		Factor: format.ValueOf(factor),
	}
}

// Enabled reports whether decoding applies offset and factor.
func (p Params) Enabled() bool {
	return p.DType != format.DTypeNone
}

// Validate checks that offset and factor agree with the scaling dtype.
//
// With scaling disabled both values must be the zero Scalar so that the
// header slots are written as all-zero bytes.
func (p Params) Validate() error {
	if !p.DType.IsValid() {
		return fmt.Errorf("%w: scaling dtype %d", errs.ErrUnknownTypeTag, uint8(p.DType))
	}

	if !p.Enabled() {
		if p.Offset != (format.Scalar{}) || p.Factor != (format.Scalar{}) {
			return fmt.Errorf("%w: offset/factor set while scaling is disabled", errs.ErrInvalidScaling)
		}

		return nil
	}

	if p.Offset.DType() != p.DType || p.Factor.DType() != p.DType {
		return fmt.Errorf("%w: offset %s and factor %s must both be %s",
			errs.ErrInvalidScaling, p.Offset.DType(), p.Factor.DType(), p.DType)
	}

	return nil
}

func (p Params) String() string {
	if !p.Enabled() {
		return "scaling=NONE"
	}

	return fmt.Sprintf("scaling=%s offset=%s factor=%s", p.DType, p.Offset, p.Factor)
}
