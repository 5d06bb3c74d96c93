package section

import (
	"testing"

	"github.com/arloliu/bts/cursor"
	"github.com/arloliu/bts/endian"
	"github.com/arloliu/bts/errs"
	"github.com/arloliu/bts/format"
	"github.com/arloliu/bts/scaling"
	"github.com/stretchr/testify/require"
)

func TestExplain_ValidHeader(t *testing.T) {
	h := Header{
		Timebase:   LongTimebase(13, 37),
		Scaling:    scaling.New(-1.5, 0.25),
		DataDType:  format.DTypeShort,
		NumSamples: 10,
	}
	b, err := h.Bytes()
	require.NoError(t, err)

	e, err := Explain(b)
	require.NoError(t, err)
	require.True(t, e.EndiannessOK)
	require.True(t, e.Valid())
	require.Equal(t, format.DTypeLong, e.TimeDType)
	require.Equal(t, int64(13), e.T0.Int64())
	require.Equal(t, int64(37), e.Dt.Int64())
	require.Equal(t, format.DTypeDouble, e.ScalingDType)
	require.Equal(t, -1.5, e.ScalingOffset.Float64())
	require.Equal(t, 0.25, e.ScalingFactor.Float64())
	require.Equal(t, format.DTypeShort, e.DataDType)
	require.Equal(t, uint32(10), e.NumSamples)
	require.Equal(t, 84, e.ExpectedSize())

	s := e.String()
	require.Contains(t, s, "endianness:     native")
	require.Contains(t, s, "time dtype:     LONG")
	require.Contains(t, s, "t0:             13")
	require.Contains(t, s, "dt:             37")
	require.Contains(t, s, "scaling dtype:  DOUBLE")
	require.Contains(t, s, "scaling offset: -1.5")
	require.Contains(t, s, "scaling factor: 0.25")
	require.Contains(t, s, "data dtype:     SHORT")
	require.Contains(t, s, "num samples:    10")
	require.NotContains(t, s, "invalid")
}

func TestExplain_ReportsEveryInvalidField(t *testing.T) {
	h := NewHeader(DoubleTimebase(0.5, 0.125), format.DTypeFloat, 3)
	b := make([]byte, HeaderSize)
	require.NoError(t, h.Encode(cursor.New(b, endian.Swapped(endian.NativeEngine()))))
	b[OffsetScalingDType] = 11
	b[OffsetDataDType] = byte(format.DTypeNone)

	e, err := Explain(b)
	require.NoError(t, err)
	require.False(t, e.EndiannessOK)
	require.False(t, e.Valid())
	require.False(t, e.ScalingDTypeOK())
	require.False(t, e.DataDTypeOK())
	require.True(t, e.TimeDTypeOK())
	require.Equal(t, 0, e.ExpectedSize())

	s := e.String()
	require.Contains(t, s, "MISMATCH")
	require.Contains(t, s, "UNKNOWN(11) (invalid)")
	require.Contains(t, s, "NONE (invalid)")
}

func TestExplain_Short(t *testing.T) {
	_, err := Explain(make([]byte, 10))
	require.ErrorIs(t, err, errs.ErrTruncatedBuffer)
}
