// Package bts reads and writes BinaryTimeseries (.bts) records.
//
// A record stores one uniformly sampled scalar series: a fixed 64-byte
// header followed by the raw samples at their natural width. Timestamps are
// implicit (t0 + i*dt) and an optional affine scaling pair turns quantized
// raw samples back into physical values. The layout is identical across
// implementations, so records written elsewhere decode bit for bit.
//
// # Core Features
//
//   - Fixed 64-byte self-describing header with an endianness marker
//   - Six sample types: int8, int16, int32, int64, float32, float64
//   - Optional offset + factor * raw dequantization with well-defined
//     promotion and narrowing for every type combination
//   - Partial reads of any contiguous sample range without scanning
//   - Constant-time mapping from a time interval to an index range
//
// # Basic Usage
//
// Encoding:
//
//	rec, _ := bts.Encode(bts.LongTimebase(13, 37), []int16{120, 121, 119},
//	    record.WithScaling(format.Double(-40), format.Double(0.1)))
//	_ = storage.Publish("temp.bts", rec.Bytes())
//
// Decoding:
//
//	r, _ := bts.Open("temp.bts")
//	defer r.Close()
//	from, upto, ok, _ := record.IndexRange(r.Reader, int64(40), int64(90))
//	if ok {
//	    celsius, _ := record.ReadScaled[float64](r.Reader, from, upto)
//	}
//
// # Package Structure
//
// This package provides top-level wrappers around the record and section
// packages for the common cases. The record package holds the full reader
// API; section exposes the header codec; scaling and timebase expose the
// decode arithmetic on its own.
package bts

import (
	"github.com/arloliu/bts/format"
	"github.com/arloliu/bts/internal/hash"
	"github.com/arloliu/bts/record"
	"github.com/arloliu/bts/section"
)

// HeaderSize is the size of the fixed record header in bytes.
const HeaderSize = section.HeaderSize

// LongTimebase returns an integer timebase, typically in epoch milliseconds
// or nanoseconds.
func LongTimebase(t0, dt int64) section.Timebase {
	return section.LongTimebase(t0, dt)
}

// DoubleTimebase returns a floating-point timebase, typically in seconds.
func DoubleTimebase(t0, dt float64) section.Timebase {
	return section.DoubleTimebase(t0, dt)
}

// Encode creates a record from samples.
//
// The data dtype follows D. Available options:
//   - record.WithScaling(offset, factor)
//   - record.WithScalingParams(params)
//   - record.WithByteOrder(engine)
//
// Example:
//
//	rec, err := bts.Encode(bts.DoubleTimebase(0, 0.01), values)
func Encode[D format.Sample](tb section.Timebase, samples []D, opts ...record.EncoderOption) (*record.Record, error) {
	return record.Encode(tb, samples, opts...)
}

// NewReader decodes the header of an in-memory record.
//
// Parameters:
//   - data: Record bytes in native byte order
//
// Returns:
//   - *record.Reader: Random access reader over data
//   - error: Header decode error or ErrTruncatedBuffer
func NewReader(data []byte) (*record.Reader, error) {
	return record.NewReader(data)
}

// Open memory-maps a record file and decodes its header.
// The caller must Close the returned reader.
func Open(path string) (*record.FileReader, error) {
	return record.Open(path)
}

// WriteFile encodes samples and atomically writes the record to path.
func WriteFile[D format.Sample](path string, tb section.Timebase, samples []D, opts ...record.EncoderOption) error {
	return record.WriteFile(path, tb, samples, opts...)
}

// ReadAll returns every sample of r dequantized to T.
//
// An empty record yields an empty slice.
func ReadAll[T format.Sample](r *record.Reader) ([]T, error) {
	if r.Len() == 0 {
		return []T{}, nil
	}

	return record.ReadScaled[T](r, 0, r.Len()-1)
}

// Explain describes the header fields of raw without requiring them to be valid.
func Explain(raw []byte) (section.Explanation, error) {
	return section.Explain(raw)
}

// Digest returns the xxHash64 digest of data, as reported by Record.Digest.
//
// Two implementations that agree on a record produce the same digest, which
// makes it a cheap cross-implementation comparison.
func Digest(data []byte) uint64 {
	return hash.Digest(data)
}
