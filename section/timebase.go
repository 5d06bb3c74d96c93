package section

import (
	"fmt"

	"github.com/arloliu/bts/errs"
	"github.com/arloliu/bts/format"
)

// Timebase holds t0 and dt of a record. Both share the time dtype, LONG or DOUBLE.
type Timebase struct {
	T0 format.Scalar
	Dt format.Scalar
}

// LongTimebase returns an integer timebase.
func LongTimebase(t0, dt int64) Timebase {
	return Timebase{T0: format.Long(t0), Dt: format.Long(dt)}
}

// DoubleTimebase returns a floating-point timebase.
func DoubleTimebase(t0, dt float64) Timebase {
	return Timebase{T0: format.Double(t0), Dt: format.Double(dt)}
}

// DType returns the time dtype.
func (tb Timebase) DType() format.DType {
	return tb.T0.DType()
}

// Validate checks that t0 and dt are both LONG or both DOUBLE.
func (tb Timebase) Validate() error {
	if !tb.T0.DType().IsValidTime() {
		return fmt.Errorf("%w: t0 is %s", errs.ErrInvalidTimeDtype, tb.T0.DType())
	}
	if tb.Dt.DType() != tb.T0.DType() {
		return fmt.Errorf("%w: t0 is %s but dt is %s", errs.ErrDTypeMismatch, tb.T0.DType(), tb.Dt.DType())
	}

	return nil
}

func (tb Timebase) String() string {
	return fmt.Sprintf("%s t0=%s dt=%s", tb.DType(), tb.T0, tb.Dt)
}
