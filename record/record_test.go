package record

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bts/endian"
	"github.com/arloliu/bts/errs"
	"github.com/arloliu/bts/format"
	"github.com/arloliu/bts/scaling"
	"github.com/arloliu/bts/section"
)

// exampleRecord is t0=13, dt=37 (LONG), scaling disabled, ten BYTE samples 0..9.
func exampleRecord(t *testing.T) *Record {
	t.Helper()
	rec, err := Encode(section.LongTimebase(13, 37), []int8{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})
	require.NoError(t, err)

	return rec
}

func TestEncode_ExampleRecordBytes(t *testing.T) {
	engine := endian.NativeEngine()
	want := make([]byte, 0, 74)
	want = endian.AppendMarker(engine, want)
	want = append(want, byte(format.DTypeLong))
	want = engine.AppendUint64(want, 13)
	want = engine.AppendUint64(want, 37)
	want = append(want, byte(format.DTypeNone))
	want = append(want, make([]byte, 16+23)...)
	want = append(want, byte(format.DTypeByte))
	want = engine.AppendUint32(want, 10)
	want = append(want, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9)

	rec := exampleRecord(t)
	require.Equal(t, 74, rec.Size())
	require.Equal(t, 10, rec.Len())
	require.Equal(t, want, rec.Bytes())

	h := rec.Header()
	require.Equal(t, format.DTypeLong, h.Timebase.DType())
	require.Equal(t, format.DTypeNone, h.Scaling.DType)
	require.Equal(t, format.DTypeByte, h.DataDType)
	require.Equal(t, uint32(10), h.NumSamples)
}

func TestEncode_Empty(t *testing.T) {
	rec, err := Encode(section.DoubleTimebase(0, 1), []float32{})
	require.NoError(t, err)
	require.Equal(t, section.HeaderSize, rec.Size())
	require.Equal(t, 0, rec.Len())
	require.Equal(t, format.DTypeFloat, rec.Header().DataDType)
}

func TestEncode_Scaling(t *testing.T) {
	rec, err := Encode(section.LongTimebase(0, 1), []int16{1, 2},
		WithScaling(format.Double(0.5), format.Double(0.01)))
	require.NoError(t, err)

	p := rec.Header().Scaling
	require.Equal(t, format.DTypeDouble, p.DType)
	require.Equal(t, 0.5, p.Offset.Float64())
	require.Equal(t, 0.01, p.Factor.Float64())

	b := rec.Bytes()
	require.Equal(t, byte(format.DTypeDouble), b[section.OffsetScalingDType])
}

func TestEncode_Errors(t *testing.T) {
	tb := section.LongTimebase(0, 1)

	tests := []struct {
		name string
		tb   section.Timebase
		opts []EncoderOption
		err  error
	}{
		{"scaling dtypes differ", tb, []EncoderOption{WithScaling(format.Int(1), format.Long(2))}, errs.ErrInvalidScaling},
		{"scaling none", tb, []EncoderOption{WithScaling(format.Scalar{}, format.Scalar{})}, errs.ErrInvalidScaling},
		{"bad scaling params", tb, []EncoderOption{WithScalingParams(scaling.Params{DType: format.DTypeInt})}, errs.ErrInvalidScaling},
		{"int timebase", section.Timebase{T0: format.Int(0), Dt: format.Int(1)}, nil, errs.ErrInvalidTimeDtype},
		{"mixed timebase", section.Timebase{T0: format.Long(0), Dt: format.Double(1)}, nil, errs.ErrDTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.tb, []int32{1, 2, 3}, tt.opts...)
			require.ErrorIs(t, err, tt.err)

			var buf bytes.Buffer
			_, err = Write(&buf, tt.tb, []int32{1, 2, 3}, tt.opts...)
			require.ErrorIs(t, err, tt.err)
			require.Zero(t, buf.Len())
		})
	}
}

func TestWithScalingParams_Disabled(t *testing.T) {
	rec, err := Encode(section.LongTimebase(0, 1), []int8{1},
		WithScaling(format.Float(1), format.Float(2)),
		WithScalingParams(scaling.Disabled()))
	require.NoError(t, err)
	require.False(t, rec.Header().Scaling.Enabled())
}

func TestEncodeRaw(t *testing.T) {
	h := section.NewHeader(section.LongTimebase(13, 37), format.DTypeByte, 10)
	rec, err := EncodeRaw(h, []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})
	require.NoError(t, err)
	require.Equal(t, exampleRecord(t).Bytes(), rec.Bytes())

	_, err = EncodeRaw(h, []byte{0, 1, 2})
	require.ErrorIs(t, err, errs.ErrSampleCountMismatch)

	h.DataDType = format.DTypeNone
	_, err = EncodeRaw(h, nil)
	require.ErrorIs(t, err, errs.ErrInvalidDataDtype)
}

func TestWrite_MatchesEncode(t *testing.T) {
	samples := make([]float64, 5000)
	for i := range samples {
		samples[i] = math.Sin(float64(i))
	}
	tb := section.DoubleTimebase(1.5, 0.001)

	rec, err := Encode(tb, samples)
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := Write(&buf, tb, samples)
	require.NoError(t, err)
	require.Equal(t, int64(rec.Size()), n)
	require.Equal(t, rec.Bytes(), buf.Bytes())

	var out bytes.Buffer
	n, err = rec.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(rec.Size()), n)
	require.Equal(t, rec.Bytes(), out.Bytes())
}

func TestEncode_ByteOrder(t *testing.T) {
	samples := []int32{1, -2, 3}
	swapped := endian.Swapped(endian.NativeEngine())

	rec, err := Encode(section.LongTimebase(13, 37), samples, WithByteOrder(swapped))
	require.NoError(t, err)

	b := rec.Bytes()
	require.True(t, endian.MarkerMatches(swapped, b))
	require.Equal(t, uint32(3), swapped.Uint32(b[section.OffsetNumSamples:]))
	require.Equal(t, uint32(0xFFFFFFFE), swapped.Uint32(b[section.FileOffset(4, 1):]))

	_, err = rec.Reader()
	require.ErrorIs(t, err, errs.ErrEndiannessMismatch)
}

func TestRecord_Digest(t *testing.T) {
	a := exampleRecord(t)
	b := exampleRecord(t)
	require.Equal(t, a.Digest(), b.Digest())

	c, err := Encode(section.LongTimebase(13, 37), []int8{0, 1, 2, 3, 4, 5, 6, 7, 8, 8})
	require.NoError(t, err)
	require.NotEqual(t, a.Digest(), c.Digest())
}
