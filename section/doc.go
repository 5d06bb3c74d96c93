// Package section defines the fixed binary header of a bts record.
//
// A record is a 64-byte header followed immediately by the raw sample
// array. All multi-byte values use the writer's native byte order, which the
// endianness marker at offset 0 lets a reader verify.
//
// # Header Format
//
//	Bytes  | Field           | Type   | Description
//	-------|-----------------|--------|----------------------------------------
//	0-1    | Marker          | int16  | 1 in the writer's byte order
//	2      | TimeDType       | uint8  | LONG (4) or DOUBLE (6)
//	3-10   | T0              | slot   | timestamp of sample 0
//	11-18  | Dt              | slot   | sampling interval, same dtype as T0
//	19     | ScalingDType    | uint8  | NONE (0) ... DOUBLE (6)
//	20-27  | ScalingOffset   | slot   | all zero when scaling is NONE
//	28-35  | ScalingFactor   | slot   | all zero when scaling is NONE
//	36-58  | Reserved        | -      | zero on write, skipped on read
//	59     | DataDType       | uint8  | BYTE (1) ... DOUBLE (6), never NONE
//	60-63  | NumSamples      | uint32 | number of raw samples
//	64-    | Samples         | -      | NumSamples x width(DataDType) bytes
//
// A slot is 8 bytes wide. A value narrower than 8 bytes is written
// left-aligned at its natural width and the remaining bytes are zero;
// readers only read the natural width of the declared dtype.
//
// # Sample Offsets
//
// The byte offset of sample i is FileOffset(width, i) = 64 + width*i, which
// lets a reader seek straight to any sample:
//
//	c.Seek(section.FileOffset(h.SampleWidth(), from))
//
// # Usage
//
// Encoding and decoding go through a cursor so that every field lands on its
// documented offset:
//
//	h := section.NewHeader(section.LongTimebase(13, 37), format.DTypeByte, 10)
//	buf := make([]byte, section.HeaderSize)
//	err := h.Encode(cursor.New(buf, endian.NativeEngine()))
//
//	parsed, err := section.ParseHeader(buf)
//
// Explain reports every field of a raw header without failing on the first
// invalid one, for debugging records produced by other implementations.
//
// # Thread Safety
//
// Header, Timebase and Explanation are immutable value types and are safe
// for concurrent use.
package section
