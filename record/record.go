package record

import (
	"fmt"
	"io"

	"github.com/arloliu/bts/cursor"
	"github.com/arloliu/bts/endian"
	"github.com/arloliu/bts/errs"
	"github.com/arloliu/bts/format"
	"github.com/arloliu/bts/internal/hash"
	"github.com/arloliu/bts/internal/options"
	"github.com/arloliu/bts/internal/pool"
	"github.com/arloliu/bts/section"
)

// Record is an encoded record: the header immediately followed by the raw
// sample array. A Record is immutable once returned.
type Record struct {
	data   []byte
	header section.Header
}

// Encode builds a record holding samples with the given timebase.
//
// The data dtype is derived from D. Samples are written as given; when
// scaling is configured they are the quantized raw values, and the scaling
// parameters only describe how readers reconstruct physical values.
//
// Parameters:
//   - tb: Timebase; t0 and dt must both be LONG or both DOUBLE
//   - samples: Raw samples, at most section.MaxSamples
//   - opts: Encoder options (WithScaling, WithByteOrder)
//
// Returns:
//   - *Record: Encoded record
//   - error: ErrTooManySamples, ErrInvalidScaling or a header validation error
func Encode[D format.Sample](tb section.Timebase, samples []D, opts ...EncoderOption) (*Record, error) {
	h, cfg, err := prepare(tb, samples, opts)
	if err != nil {
		return nil, err
	}

	data := make([]byte, h.RecordSize())
	if err := encodeInto(data, h, samples, cfg.engine); err != nil {
		return nil, err
	}

	return &Record{data: data, header: h}, nil
}

// EncodeRaw builds a record from a header and an already encoded raw
// sample array. raw must hold exactly h.NumSamples samples of h.DataDType
// in native byte order.
func EncodeRaw(h section.Header, raw []byte) (*Record, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	if len(raw) != h.PayloadSize() {
		return nil, fmt.Errorf("%w: header declares %d %s samples (%d bytes), payload has %d bytes",
			errs.ErrSampleCountMismatch, h.NumSamples, h.DataDType, h.PayloadSize(), len(raw))
	}

	data := make([]byte, h.RecordSize())
	c := cursor.New(data, endian.NativeEngine())
	if err := h.Encode(c); err != nil {
		return nil, err
	}
	c.PutBytes(raw)
	if err := c.Err(); err != nil {
		return nil, err
	}

	return &Record{data: data, header: h}, nil
}

// Write encodes samples like Encode and writes the record to w through a
// pooled buffer. It returns the number of bytes written.
func Write[D format.Sample](w io.Writer, tb section.Timebase, samples []D, opts ...EncoderOption) (int64, error) {
	h, cfg, err := prepare(tb, samples, opts)
	if err != nil {
		return 0, err
	}

	bb := pool.GetRecordBuffer()
	defer pool.PutRecordBuffer(bb)

	if err := encodeInto(bb.Extend(h.RecordSize()), h, samples, cfg.engine); err != nil {
		return 0, err
	}

	return bb.WriteTo(w)
}

func prepare[D format.Sample](tb section.Timebase, samples []D, opts []EncoderOption) (section.Header, *EncoderConfig, error) {
	cfg := newEncoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return section.Header{}, nil, err
	}

	if uint64(len(samples)) > section.MaxSamples {
		return section.Header{}, nil, fmt.Errorf("%w: %d samples, limit is %d",
			errs.ErrTooManySamples, len(samples), uint64(section.MaxSamples))
	}

	h := section.NewHeader(tb, format.DTypeOf[D](), uint32(len(samples)))
	h.Scaling = cfg.scaling
	if err := h.Validate(); err != nil {
		return section.Header{}, nil, err
	}

	return h, cfg, nil
}

// encodeInto writes the header and samples into dst, which must be exactly
// h.RecordSize() bytes.
func encodeInto[D format.Sample](dst []byte, h section.Header, samples []D, engine endian.EndianEngine) error {
	c := cursor.New(dst, engine)
	if err := h.Encode(c); err != nil {
		return err
	}

	width := h.SampleWidth()
	for _, s := range samples {
		c.PutBits(width, format.ValueOf(s).Bits())
	}

	return c.Err()
}

// Bytes returns the encoded record. The slice must not be modified.
func (r *Record) Bytes() []byte {
	return r.data
}

// Header returns the record header.
func (r *Record) Header() section.Header {
	return r.header
}

// Len returns the number of samples.
func (r *Record) Len() int {
	return int(r.header.NumSamples)
}

// Size returns the encoded size in bytes.
func (r *Record) Size() int {
	return len(r.data)
}

// Digest returns the xxHash64 digest of the encoded record.
func (r *Record) Digest() uint64 {
	return hash.Digest(r.data)
}

// WriteTo writes the encoded record to w.
func (r *Record) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.data)
	return int64(n), err
}

// Reader returns a Reader over the encoded record.
//
// It fails with ErrEndiannessMismatch if the record was written in
// non-native byte order.
func (r *Record) Reader() (*Reader, error) {
	return NewReader(r.data)
}
