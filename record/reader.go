package record

import (
	"fmt"
	"iter"

	"github.com/arloliu/bts/cursor"
	"github.com/arloliu/bts/endian"
	"github.com/arloliu/bts/errs"
	"github.com/arloliu/bts/format"
	"github.com/arloliu/bts/internal/hash"
	"github.com/arloliu/bts/scaling"
	"github.com/arloliu/bts/section"
	"github.com/arloliu/bts/timebase"
)

// Reader gives random access to the samples of a record.
//
// The header is decoded once by NewReader. Every read seeks to the first
// requested sample and reads only the requested ones. A Reader holds no
// mutable state and is safe for concurrent use.
type Reader struct {
	data   []byte
	header section.Header
	width  int
	n      int
}

// NewReader decodes the header at the start of region.
//
// Bytes after the declared record end are ignored.
//
// Parameters:
//   - region: Byte region holding a record in native byte order
//
// Returns:
//   - *Reader: Reader over the record
//   - error: Header decode error, or ErrTruncatedBuffer if region is shorter
//     than the header plus the declared raw array
func NewReader(region []byte) (*Reader, error) {
	h, err := section.ParseHeader(region)
	if err != nil {
		return nil, err
	}

	size := h.RecordSize()
	if len(region) < size {
		return nil, fmt.Errorf("%w: header declares %d %s samples (%d bytes), region has %d bytes",
			errs.ErrTruncatedBuffer, h.NumSamples, h.DataDType, size, len(region))
	}

	return &Reader{
		data:   region[:size:size],
		header: h,
		width:  h.SampleWidth(),
		n:      int(h.NumSamples),
	}, nil
}

// Header returns the decoded header.
func (r *Reader) Header() section.Header {
	return r.header
}

// Len returns the number of samples.
func (r *Reader) Len() int {
	return r.n
}

// Bytes returns the record bytes, header included, without any trailing
// bytes of the region.
func (r *Reader) Bytes() []byte {
	return r.data
}

// Digest returns the xxHash64 digest of the record bytes.
func (r *Reader) Digest() uint64 {
	return hash.Digest(r.data)
}

// checkRange validates the inclusive range [from, upto] and returns its length.
func (r *Reader) checkRange(from, upto int) (int, error) {
	if from < 0 || upto >= r.n || from > upto {
		return 0, fmt.Errorf("%w: [%d, %d] with %d samples", errs.ErrIndexOutOfRange, from, upto, r.n)
	}

	return upto - from + 1, nil
}

// cursorAt returns a fresh cursor positioned on sample index.
func (r *Reader) cursorAt(index int) (*cursor.Cursor, error) {
	c := cursor.New(r.data, endian.NativeEngine())
	if err := c.Seek(section.FileOffset(r.width, index)); err != nil {
		return nil, err
	}

	return c, nil
}

// ReadRawBytes returns the stored bytes of samples [from, upto].
//
// The returned slice aliases the region and must not be modified.
func (r *Reader) ReadRawBytes(from, upto int) ([]byte, error) {
	count, err := r.checkRange(from, upto)
	if err != nil {
		return nil, err
	}

	c, err := r.cursorAt(from)
	if err != nil {
		return nil, err
	}
	b := c.Bytes(count * r.width)

	return b, c.Err()
}

// ReadRaw returns the raw samples [from, upto] converted to T, ignoring scaling.
func ReadRaw[T format.Sample](r *Reader, from, upto int) ([]T, error) {
	return read[T](r, from, upto, scaling.Disabled())
}

// ReadRawInto is ReadRaw writing into dst, which must hold at least
// upto-from+1 elements. It returns the number of values written.
func ReadRawInto[T format.Sample](r *Reader, from, upto int, dst []T) (int, error) {
	return readInto(r, from, upto, scaling.Disabled(), dst)
}

// ReadScaled returns the samples [from, upto] dequantized with the scaling
// parameters of the header and narrowed to T.
//
// With scaling disabled it is equivalent to ReadRaw.
func ReadScaled[T format.Sample](r *Reader, from, upto int) ([]T, error) {
	return read[T](r, from, upto, r.header.Scaling)
}

// ReadScaledInto is ReadScaled writing into dst, which must hold at least
// upto-from+1 elements. It returns the number of values written.
func ReadScaledInto[T format.Sample](r *Reader, from, upto int, dst []T) (int, error) {
	return readInto(r, from, upto, r.header.Scaling, dst)
}

func read[T format.Sample](r *Reader, from, upto int, params scaling.Params) ([]T, error) {
	count, err := r.checkRange(from, upto)
	if err != nil {
		return nil, err
	}

	dst := make([]T, count)
	if _, err := readInto(r, from, upto, params, dst); err != nil {
		return nil, err
	}

	return dst, nil
}

func readInto[T format.Sample](r *Reader, from, upto int, params scaling.Params, dst []T) (int, error) {
	count, err := r.checkRange(from, upto)
	if err != nil {
		return 0, err
	}
	if len(dst) < count {
		return 0, fmt.Errorf("%w: destination holds %d values, range has %d",
			errs.ErrSampleCountMismatch, len(dst), count)
	}

	k, err := scaling.NewKernel[T](params, r.header.DataDType)
	if err != nil {
		return 0, err
	}

	c, err := r.cursorAt(from)
	if err != nil {
		return 0, err
	}
	if err := k.Decode(c, dst[:count]); err != nil {
		return 0, err
	}

	return count, nil
}

// Samples returns an iterator over the scaled samples [from, upto], yielding
// each sample index with its value.
func Samples[T format.Sample](r *Reader, from, upto int) (iter.Seq2[int, T], error) {
	if _, err := r.checkRange(from, upto); err != nil {
		return nil, err
	}

	k, err := scaling.NewKernel[T](r.header.Scaling, r.header.DataDType)
	if err != nil {
		return nil, err
	}

	return func(yield func(int, T) bool) {
		c, err := r.cursorAt(from)
		if err != nil {
			return
		}
		for i := from; i <= upto; i++ {
			bits := c.Bits(r.width)
			if c.Err() != nil {
				return
			}
			if !yield(i, k.Apply(bits)) {
				return
			}
		}
	}, nil
}

// timebaseOf returns t0 and dt as T, failing if T is not the time dtype.
func timebaseOf[T timebase.Time](r *Reader) (T, T, error) {
	tb := r.header.Timebase
	if want := format.DTypeOf[T](); tb.DType() != want {
		return 0, 0, fmt.Errorf("%w: timebase is %s, requested %s", errs.ErrDTypeMismatch, tb.DType(), want)
	}

	return scaling.Cast[T](tb.T0), scaling.Cast[T](tb.Dt), nil
}

// Timestamps returns the timestamps of samples [from, upto].
//
// T must match the time dtype: int64 for LONG, float64 for DOUBLE.
func Timestamps[T timebase.Time](r *Reader, from, upto int) ([]T, error) {
	count, err := r.checkRange(from, upto)
	if err != nil {
		return nil, err
	}

	t0, dt, err := timebaseOf[T](r)
	if err != nil {
		return nil, err
	}

	out := make([]T, count)
	timebase.BuildInto(from, out, 0, count, t0, dt)

	return out, nil
}

// IndexRange returns the inclusive index range of the samples whose
// timestamps lie in [lower, upper], without scanning.
//
// ok is false when no sample lies inside the bounds; from and upto are then
// meaningless. T must match the time dtype.
//
// Returns ErrInvalidBound for a NaN bound and ErrInvalidTimebase if dt is
// not positive.
func IndexRange[T timebase.Time](r *Reader, lower, upper T) (from, upto int, ok bool, err error) {
	t0, dt, err := timebaseOf[T](r)
	if err != nil {
		return 0, 0, false, err
	}
	// only NaN compares unequal to itself
	if lower != lower || upper != upper {
		return 0, 0, false, fmt.Errorf("%w: NaN", errs.ErrInvalidBound)
	}
	if !(dt > 0) {
		return 0, 0, false, fmt.Errorf("%w: dt is %v", errs.ErrInvalidTimebase, dt)
	}

	from = timebase.FirstIndexInside(t0, dt, lower)
	upto = timebase.LastIndexInside(t0, dt, upper, r.n)
	if from >= r.n || upto < 0 || from > upto {
		return 0, 0, false, nil
	}

	return from, upto, true, nil
}
