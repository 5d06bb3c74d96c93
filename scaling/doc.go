// Package scaling reconstructs physical values from raw stored samples.
//
// A record may carry an affine dequantization pair, an offset O and a factor
// F of a scaling dtype S. A raw sample r of data dtype D decodes to
//
//	decoded = cast_T(O + r*F)
//
// evaluated in the arithmetic type of S and D, then narrowed to the output
// type T. With S = NONE no arithmetic happens and decoded = cast_T(r).
//
// # Arithmetic Type
//
// Operands narrower than 32 bits promote to int32. The arithmetic type is the
// widest of the promoted operand types under the ranking
//
//	int32 < int64 < float32 < float64
//
// Integer arithmetic wraps in its width. float32 arithmetic rounds after every
// operation; the multiplication is never fused with the addition.
//
// # Narrowing
//
// The conversion to T follows the JVM casting rules, which make every
// combination of S, D and T deterministic across platforms:
//   - integer to narrower integer: two's-complement truncation
//   - integer to float, double to float: round to nearest even
//   - float to int64 or int32: NaN is 0, out-of-range values saturate, the
//     rest truncates toward zero
//   - float to int16 or int8: first to int32 as above, then truncation
//
// # Usage
//
//	params := scaling.New[float64](-10.0, 0.01)
//	kernel, err := scaling.NewKernel[float32](params, format.DTypeShort)
//	if err != nil {
//	    return err
//	}
//	err = kernel.Decode(cur, dst)
//
// Kernels are immutable and safe for concurrent use.
package scaling
