package section

import (
	"fmt"
	"strings"

	"github.com/arloliu/bts/cursor"
	"github.com/arloliu/bts/endian"
	"github.com/arloliu/bts/errs"
	"github.com/arloliu/bts/format"
)

// Explanation lists the logical fields of a raw header for inspection.
//
// Unlike DecodeHeader it does not stop at the first invalid field: every
// field is reported as found, and tags outside their valid sets show up as
// such in String.
type Explanation struct {
	EndiannessOK  bool
	Marker        [2]byte
	TimeDType     format.DType
	T0            format.Scalar
	Dt            format.Scalar
	ScalingDType  format.DType
	ScalingOffset format.Scalar
	ScalingFactor format.Scalar
	DataDType     format.DType
	NumSamples    uint32
}

// Explain reports the nine logical header fields of raw, interpreted in
// native byte order. Only the first HeaderSize bytes are examined.
//
// Returns ErrTruncatedBuffer if raw is shorter than HeaderSize.
func Explain(raw []byte) (Explanation, error) {
	if len(raw) < HeaderSize {
		return Explanation{}, fmt.Errorf("%w: header needs %d bytes, got %d",
			errs.ErrTruncatedBuffer, HeaderSize, len(raw))
	}

	var e Explanation
	c := cursor.New(raw[:HeaderSize], endian.NativeEngine())

	copy(e.Marker[:], raw[:endian.MarkerSize])
	e.EndiannessOK = c.Uint16() == endian.Marker

	e.TimeDType = format.DType(c.Uint8())
	e.T0 = explainSlot(c, e.TimeDType)
	e.Dt = explainSlot(c, e.TimeDType)

	e.ScalingDType = format.DType(c.Uint8())
	e.ScalingOffset = explainSlot(c, e.ScalingDType)
	e.ScalingFactor = explainSlot(c, e.ScalingDType)

	c.Skip(ReservedSize)
	e.DataDType = format.DType(c.Uint8())
	e.NumSamples = c.Uint32()

	return e, c.Err()
}

// explainSlot reads a slot leniently: unknown tags and NONE yield the zero Scalar.
func explainSlot(c *cursor.Cursor, d format.DType) format.Scalar {
	if !d.IsValid() {
		c.Skip(SlotSize)
		return format.Scalar{}
	}

	return getSlot(c, d)
}

// TimeDTypeOK reports whether the time dtype is LONG or DOUBLE.
func (e Explanation) TimeDTypeOK() bool { return e.TimeDType.IsValidTime() }

// ScalingDTypeOK reports whether the scaling dtype is a known tag.
func (e Explanation) ScalingDTypeOK() bool { return e.ScalingDType.IsValid() }

// DataDTypeOK reports whether the data dtype is a known tag other than NONE.
func (e Explanation) DataDTypeOK() bool { return e.DataDType.IsValidData() }

// Valid reports whether DecodeHeader would accept the header.
func (e Explanation) Valid() bool {
	return e.EndiannessOK && e.TimeDTypeOK() && e.ScalingDTypeOK() && e.DataDTypeOK()
}

// ExpectedSize returns the record size the header declares, or 0 if the
// data dtype is invalid.
func (e Explanation) ExpectedSize() int {
	if !e.DataDTypeOK() {
		return 0
	}

	return RecordSize(e.DataDType.Width(), e.NumSamples)
}

func (e Explanation) String() string {
	var sb strings.Builder

	order := "native"
	if !e.EndiannessOK {
		order = "MISMATCH"
	}
	fmt.Fprintf(&sb, "endianness:     %s (marker %#02x %#02x)\n", order, e.Marker[0], e.Marker[1])
	fmt.Fprintf(&sb, "time dtype:     %s%s\n", e.TimeDType, invalidSuffix(e.TimeDTypeOK()))
	fmt.Fprintf(&sb, "t0:             %s\n", e.T0)
	fmt.Fprintf(&sb, "dt:             %s\n", e.Dt)
	fmt.Fprintf(&sb, "scaling dtype:  %s%s\n", e.ScalingDType, invalidSuffix(e.ScalingDTypeOK()))
	fmt.Fprintf(&sb, "scaling offset: %s\n", e.ScalingOffset)
	fmt.Fprintf(&sb, "scaling factor: %s\n", e.ScalingFactor)
	fmt.Fprintf(&sb, "data dtype:     %s%s\n", e.DataDType, invalidSuffix(e.DataDTypeOK()))
	fmt.Fprintf(&sb, "num samples:    %d\n", e.NumSamples)

	return sb.String()
}

func invalidSuffix(ok bool) string {
	if ok {
		return ""
	}

	return " (invalid)"
}
