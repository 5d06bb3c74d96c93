package scaling

import (
	"math"
	"math/big"
	"testing"

	"github.com/arloliu/bts/cursor"
	"github.com/arloliu/bts/endian"
	"github.com/arloliu/bts/errs"
	"github.com/arloliu/bts/format"
	"github.com/stretchr/testify/require"
)

// rawSamples holds representative raw values for every data dtype, extremes included.
var rawSamples = map[format.DType][]format.Scalar{
	format.DTypeByte: {
		format.Byte(math.MinInt8), format.Byte(-1), format.Byte(0), format.Byte(42), format.Byte(math.MaxInt8),
	},
	format.DTypeShort: {
		format.Short(math.MinInt16), format.Short(-1), format.Short(0), format.Short(300), format.Short(math.MaxInt16),
	},
	format.DTypeInt: {
		format.Int(math.MinInt32), format.Int(-7), format.Int(0), format.Int(100000), format.Int(math.MaxInt32),
	},
	format.DTypeLong: {
		format.Long(math.MinInt64), format.Long(-3), format.Long(0), format.Long(1 << 40), format.Long(math.MaxInt64),
	},
	format.DTypeFloat: {
		format.Float(-1.5), format.Float(0), format.Float(0.25), format.Float(1e10), format.Float(-3.3e9), format.Float(1e30),
	},
	format.DTypeDouble: {
		format.Double(-2.75), format.Double(0), format.Double(123456.5), format.Double(-1e19), format.Double(1e300),
	},
}

// scalingCases holds one parameter pair per scaling dtype.
var scalingCases = map[format.DType]Params{
	format.DTypeNone:   Disabled(),
	format.DTypeByte:   New[int8](-3, 2),
	format.DTypeShort:  New[int16](1000, -7),
	format.DTypeInt:    New[int32](-100000, 3),
	format.DTypeLong:   New[int64](1<<33, -5),
	format.DTypeFloat:  New[float32](0.5, -1.25),
	format.DTypeDouble: New(-10.0, 0.001),
}

// refValue is the exact result of the reference evaluation before the final cast.
type refValue struct {
	isFloat bool
	i       int64
	f       float64
}

func refRank(d format.DType) int {
	switch d {
	case format.DTypeByte, format.DTypeShort, format.DTypeInt:
		return 0
	case format.DTypeLong:
		return 1
	case format.DTypeFloat:
		return 2
	default:
		return 3
	}
}

// wrapSigned reduces v modulo 2^bits into the signed range.
func wrapSigned(v *big.Int, bits uint) int64 {
	mod := new(big.Int).Lsh(big.NewInt(1), bits)
	r := new(big.Int).Mod(v, mod)
	if r.Cmp(new(big.Int).Rsh(mod, 1)) >= 0 {
		r.Sub(r, mod)
	}

	return r.Int64()
}

// reference evaluates offset + raw*factor with arbitrary-precision arithmetic
// and explicit wrapping/rounding, independently of the kernel implementation.
func reference(raw format.Scalar, p Params) refValue {
	if !p.Enabled() {
		if raw.DType().IsInteger() {
			return refValue{i: raw.Int64()}
		}

		return refValue{isFloat: true, f: raw.Float64()}
	}

	rank := max(refRank(raw.DType()), refRank(p.DType))
	switch rank {
	case 0, 1:
		r := big.NewInt(raw.Int64())
		o := big.NewInt(p.Offset.Int64())
		f := big.NewInt(p.Factor.Int64())
		v := new(big.Int).Add(o, new(big.Int).Mul(r, f))
		bits := uint(32)
		if rank == 1 {
			bits = 64
		}

		return refValue{i: wrapSigned(v, bits)}
	case 2:
		// products and sums of two float32 values computed in float64 and
		// rounded once to float32 are correctly rounded
		prod := float32(float64(raw.Float32()) * float64(p.Factor.Float32()))
		sum := float32(float64(p.Offset.Float32()) + float64(prod))

		return refValue{isFloat: true, f: float64(sum)}
	default:
		r := new(big.Float).SetPrec(53).SetFloat64(raw.Float64())
		o := new(big.Float).SetPrec(53).SetFloat64(p.Offset.Float64())
		f := new(big.Float).SetPrec(53).SetFloat64(p.Factor.Float64())
		prod := new(big.Float).SetPrec(53).Mul(r, f)
		sum := new(big.Float).SetPrec(53).Add(o, prod)
		v, _ := sum.Float64()

		return refValue{isFloat: true, f: v}
	}
}

// refTruncInt32 is the JVM float-to-int rule spelled out with math.Trunc.
func refTruncInt32(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	default:
		return int64(math.Trunc(f))
	}
}

func refTruncInt64(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= 0x1p63:
		return math.MaxInt64
	case f < -0x1p63:
		return math.MinInt64
	default:
		return int64(math.Trunc(f))
	}
}

// refCast narrows a reference value to T.
func refCast[T format.Sample](v refValue) T {
	target := format.DTypeOf[T]()
	if target.IsFloat() {
		if v.isFloat {
			return T(v.f)
		}

		return T(v.i)
	}

	i := v.i
	if v.isFloat {
		if target == format.DTypeLong {
			i = refTruncInt64(v.f)
		} else {
			i = refTruncInt32(v.f)
		}
	}

	bits := uint(target.Width() * 8)

	return T(wrapSigned(big.NewInt(i), bits))
}

func checkScaledDecodeLaw[T format.Sample](t *testing.T) {
	t.Helper()

	for _, s := range format.AllDTypes {
		params := scalingCases[s]
		for _, d := range format.DataDTypes {
			kernel, err := NewKernel[T](params, d)
			require.NoError(t, err)

			for _, raw := range rawSamples[d] {
				want := refCast[T](reference(raw, params))
				got := kernel.ApplyScalar(raw)
				require.Equal(t, want, got, "S=%s D=%s T=%s raw=%s", s, d, format.DTypeOf[T](), raw)
			}
		}
	}
}

func TestKernel_ScaledDecodeLaw(t *testing.T) {
	t.Run("BYTE", checkScaledDecodeLaw[int8])
	t.Run("SHORT", checkScaledDecodeLaw[int16])
	t.Run("INT", checkScaledDecodeLaw[int32])
	t.Run("LONG", checkScaledDecodeLaw[int64])
	t.Run("FLOAT", checkScaledDecodeLaw[float32])
	t.Run("DOUBLE", checkScaledDecodeLaw[float64])
}

func TestKernel_KnownValues(t *testing.T) {
	t.Run("byte scaling wraps into int8 output", func(t *testing.T) {
		k, err := NewKernel[int8](New[int8](100, 2), format.DTypeByte)
		require.NoError(t, err)
		require.Equal(t, format.DTypeInt, k.ArithmeticType())
		// 100 + 100*2 = 300 in int32, truncated to int8 is 44
		require.Equal(t, int8(44), k.ApplyScalar(format.Byte(100)))
	})

	t.Run("int32 arithmetic overflow wraps", func(t *testing.T) {
		k, err := NewKernel[int64](New[int32](1, 2), format.DTypeInt)
		require.NoError(t, err)
		require.Equal(t, int64(-1), k.ApplyScalar(format.Int(math.MaxInt32)))
	})

	t.Run("adc counts to volts", func(t *testing.T) {
		k, err := NewKernel[float64](New(-10.0, 0.5), format.DTypeShort)
		require.NoError(t, err)
		require.Equal(t, 0.0, k.ApplyScalar(format.Short(20)))
		require.Equal(t, -26.0, k.ApplyScalar(format.Short(-32)))
	})

	t.Run("float arithmetic saturates into int32", func(t *testing.T) {
		k, err := NewKernel[int32](New[float32](0, 1e20), format.DTypeByte)
		require.NoError(t, err)
		require.Equal(t, int32(math.MaxInt32), k.ApplyScalar(format.Byte(1)))
		require.Equal(t, int32(math.MinInt32), k.ApplyScalar(format.Byte(-1)))
		require.Equal(t, int32(0), k.ApplyScalar(format.Byte(0)))
	})

	t.Run("nan decodes to zero for integer output", func(t *testing.T) {
		k, err := NewKernel[int16](Disabled(), format.DTypeDouble)
		require.NoError(t, err)
		require.Equal(t, int16(0), k.ApplyScalar(format.Double(math.NaN())))
	})

	t.Run("nan propagates for float output", func(t *testing.T) {
		k, err := NewKernel[float64](New(1.0, 2.0), format.DTypeFloat)
		require.NoError(t, err)
		require.True(t, math.IsNaN(k.ApplyScalar(format.Float(float32(math.NaN())))))
	})

	t.Run("long data with float scaling computes in float32", func(t *testing.T) {
		k, err := NewKernel[float64](New[float32](0, 1), format.DTypeLong)
		require.NoError(t, err)
		require.Equal(t, format.DTypeFloat, k.ArithmeticType())
		require.Equal(t, float64(float32(16777217)), k.ApplyScalar(format.Long(16777217)))
	})
}

func TestNewKernel_Invalid(t *testing.T) {
	_, err := NewKernel[float64](Disabled(), format.DTypeNone)
	require.ErrorIs(t, err, errs.ErrInvalidDataDtype)

	_, err = NewKernel[float64](Disabled(), format.DType(7))
	require.ErrorIs(t, err, errs.ErrUnknownTypeTag)

	_, err = NewKernel[float64](Params{DType: format.DTypeInt, Offset: format.Int(1)}, format.DTypeInt)
	require.ErrorIs(t, err, errs.ErrInvalidScaling)
}

func TestKernel_Decode(t *testing.T) {
	engine := endian.NativeEngine()
	buf := make([]byte, 5*2)
	w := cursor.New(buf, engine)
	for _, v := range []int16{-2, -1, 0, 1, 2} {
		w.PutUint16(uint16(v))
	}
	require.NoError(t, w.Err())

	t.Run("all samples", func(t *testing.T) {
		dst := make([]float32, 5)
		err := Decode(cursor.New(buf, engine), dst, New[int16](10, 3), format.DTypeShort)
		require.NoError(t, err)
		require.Equal(t, []float32{4, 7, 10, 13, 16}, dst)
	})

	t.Run("from seek position", func(t *testing.T) {
		c := cursor.New(buf, engine)
		require.NoError(t, c.Seek(2*2))
		dst := make([]int64, 3)
		require.NoError(t, Decode(c, dst, Disabled(), format.DTypeShort))
		require.Equal(t, []int64{0, 1, 2}, dst)
		require.Equal(t, len(buf), c.Position())
	})

	t.Run("truncated region", func(t *testing.T) {
		dst := make([]int16, 6)
		err := Decode(cursor.New(buf, engine), dst, Disabled(), format.DTypeShort)
		require.ErrorIs(t, err, errs.ErrTruncatedBuffer)
		require.Equal(t, []int16{-2, -1, 0, 1, 2, 0}, dst)
	})
}
