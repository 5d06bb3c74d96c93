package section

import (
	"fmt"

	"github.com/arloliu/bts/cursor"
	"github.com/arloliu/bts/endian"
	"github.com/arloliu/bts/errs"
	"github.com/arloliu/bts/format"
	"github.com/arloliu/bts/scaling"
)

// Header represents the fixed 64-byte header at the start of every record.
type Header struct {
	// Timebase holds t0 and dt; its dtype is the time dtype stored at byte 2.
	Timebase Timebase // byte offset 2-18
	// Scaling holds the dequantization pair; DTypeNone disables it.
	Scaling scaling.Params // byte offset 19-35
	// DataDType is the dtype of the raw sample array.
	DataDType format.DType // byte offset 59
	// NumSamples is the number of raw samples following the header.
	NumSamples uint32 // byte offset 60-63
}

// NewHeader creates a header for numSamples samples of dtype data, with scaling disabled.
func NewHeader(tb Timebase, data format.DType, numSamples uint32) Header {
	return Header{
		Timebase:   tb,
		DataDType:  data,
		NumSamples: numSamples,
	}
}

// Validate reports encode-time misuse: a time dtype other than LONG or
// DOUBLE, mismatched scaling values, or a NONE or unknown data dtype.
func (h Header) Validate() error {
	if err := h.Timebase.Validate(); err != nil {
		return err
	}
	if err := h.Scaling.Validate(); err != nil {
		return err
	}

	return validateDataDType(h.DataDType)
}

// SampleWidth returns the byte width of one raw sample.
func (h Header) SampleWidth() int {
	return h.DataDType.Width()
}

// PayloadSize returns the size of the raw sample array in bytes.
func (h Header) PayloadSize() int {
	return h.SampleWidth() * int(h.NumSamples)
}

// RecordSize returns HeaderSize plus the payload size.
func (h Header) RecordSize() int {
	return RecordSize(h.SampleWidth(), h.NumSamples)
}

// Encode writes the header at the cursor position using the cursor's byte order.
//
// The header is validated first and nothing is written if it is invalid.
// Narrow slot values are written left-aligned at their natural width; the
// rest of the slot and the reserved region are zero-filled.
func (h Header) Encode(c *cursor.Cursor) error {
	if err := h.Validate(); err != nil {
		return err
	}
	if c.Remaining() < HeaderSize {
		return fmt.Errorf("%w: header needs %d bytes, %d available",
			errs.ErrTruncatedBuffer, HeaderSize, c.Remaining())
	}

	c.PutUint16(endian.Marker)
	c.PutUint8(uint8(h.Timebase.DType()))
	putSlot(c, h.Timebase.T0)
	putSlot(c, h.Timebase.Dt)
	c.PutUint8(uint8(h.Scaling.DType))
	putSlot(c, h.Scaling.Offset)
	putSlot(c, h.Scaling.Factor)
	c.PutZeros(ReservedSize)
	c.PutUint8(uint8(h.DataDType))
	c.PutUint32(h.NumSamples)

	return c.Err()
}

// Bytes serializes the header in native byte order.
func (h Header) Bytes() ([]byte, error) {
	b := make([]byte, HeaderSize)
	if err := h.Encode(cursor.New(b, endian.NativeEngine())); err != nil {
		return nil, err
	}

	return b, nil
}

// DecodeHeader reads a header at the cursor position.
//
// The marker is decoded in the cursor's byte order; a value other than 1
// yields ErrEndiannessMismatch. Tag errors are reported in field order.
//
// Returns:
//   - Header: Decoded header
//   - error: ErrTruncatedBuffer, ErrEndiannessMismatch, ErrUnknownTypeTag,
//     ErrInvalidTimeDtype or ErrInvalidDataDtype
func DecodeHeader(c *cursor.Cursor) (Header, error) {
	if c.Remaining() < HeaderSize {
		return Header{}, fmt.Errorf("%w: header needs %d bytes, %d available",
			errs.ErrTruncatedBuffer, HeaderSize, c.Remaining())
	}

	if marker := c.Uint16(); marker != endian.Marker {
		return Header{}, fmt.Errorf("%w: marker reads %#04x", errs.ErrEndiannessMismatch, marker)
	}

	var h Header

	timeDType, err := format.ParseDType(c.Uint8())
	if err != nil {
		return Header{}, fmt.Errorf("time dtype: %w", err)
	}
	if !timeDType.IsValidTime() {
		return Header{}, fmt.Errorf("%w: %s", errs.ErrInvalidTimeDtype, timeDType)
	}
	h.Timebase.T0 = getSlot(c, timeDType)
	h.Timebase.Dt = getSlot(c, timeDType)

	scalingDType, err := format.ParseDType(c.Uint8())
	if err != nil {
		return Header{}, fmt.Errorf("scaling dtype: %w", err)
	}
	h.Scaling.DType = scalingDType
	if scalingDType != format.DTypeNone {
		h.Scaling.Offset = getSlot(c, scalingDType)
		h.Scaling.Factor = getSlot(c, scalingDType)
	} else {
		c.Skip(2 * SlotSize)
	}

	c.Skip(ReservedSize)

	dataDType := format.DType(c.Uint8())
	if err := validateDataDType(dataDType); err != nil {
		return Header{}, err
	}
	h.DataDType = dataDType
	h.NumSamples = c.Uint32()

	if err := c.Err(); err != nil {
		return Header{}, err
	}

	return h, nil
}

// ParseHeader decodes a header from the start of data in native byte order.
func ParseHeader(data []byte) (Header, error) {
	return DecodeHeader(cursor.New(data, endian.NativeEngine()))
}

func validateDataDType(d format.DType) error {
	if !d.IsValid() {
		return fmt.Errorf("data dtype: %w: %d", errs.ErrUnknownTypeTag, uint8(d))
	}
	if !d.IsValidData() {
		return fmt.Errorf("%w: %s", errs.ErrInvalidDataDtype, d)
	}

	return nil
}

func putSlot(c *cursor.Cursor, s format.Scalar) {
	width := s.DType().Width()
	c.PutBits(width, s.Bits())
	c.PutZeros(SlotSize - width)
}

// getSlot re-reads only the natural width of d and skips the padding.
func getSlot(c *cursor.Cursor, d format.DType) format.Scalar {
	width := d.Width()
	bits := c.Bits(width)
	c.Skip(SlotSize - width)

	return format.ScalarFromBits(d, bits)
}
