// Package record writes and reads complete .bts records.
//
// A record is a 64-byte header followed immediately by NumSamples raw
// samples of the data dtype, each stored at its natural width in the byte
// order of the writer. The timestamp of sample i is t0 + i*dt and is never
// stored.
//
// Writing:
//
//	rec, err := record.Encode(section.LongTimebase(13, 37), []int16{1, 2, 3},
//		record.WithScaling(format.Double(0.5), format.Double(0.01)))
//
// Reading: a Reader decodes the header once and then serves partial reads by
// seeking straight to FileOffset(width, from). Nothing before from is read.
//
//	r, err := record.NewReader(rec.Bytes())
//	from, upto, ok, err := record.IndexRange(r, int64(80), int64(300))
//	values, err := record.ReadScaled[float64](r, from, upto)
//
// Ranges are inclusive on both ends and must lie in [0, NumSamples).
// A Reader never mutates its region and is safe for concurrent use.
package record
