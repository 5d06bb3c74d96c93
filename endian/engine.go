// Package endian provides byte order utilities for the bts record layout.
//
// A bts record is written in the writer's native byte order. The first two
// bytes carry an endianness marker, the 16-bit integer 1, which a reader
// decodes in its own native order: reading back 1 means the orders agree.
// There is no byte-swapping fallback; a record written on a platform with
// the other byte order is rejected.
//
// # Basic Usage
//
//	engine := endian.NativeEngine()
//	buf = endian.AppendMarker(engine, buf)
//	ok := endian.MarkerMatches(endian.NativeEngine(), buf[:2])
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// Marker is the 16-bit value stored at offset 0 of every record.
const Marker uint16 = 1

// MarkerSize is the number of bytes the marker occupies.
const MarkerSize = 2

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() EndianEngine {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	// For a big-endian system, the MSB (0x01) is first.
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))

	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

var native = CheckEndianness()

// NativeEngine returns the engine matching the host byte order.
func NativeEngine() EndianEngine {
	return native
}

func IsNativeLittleEndian() bool {
	return native == EndianEngine(binary.LittleEndian)
}

func IsNativeBigEndian() bool {
	return native == EndianEngine(binary.BigEndian)
}

// CompareNativeEndian reports whether engine uses the host byte order.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == native
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// Swapped returns the engine with the opposite byte order of engine.
func Swapped(engine EndianEngine) EndianEngine {
	if engine == EndianEngine(binary.BigEndian) {
		return binary.LittleEndian
	}

	return binary.BigEndian
}

// AppendMarker appends the 2-byte encoding of Marker in the given byte order.
func AppendMarker(engine EndianEngine, b []byte) []byte {
	return engine.AppendUint16(b, Marker)
}

// MarkerMatches decodes the first two bytes of b with engine and reports
// whether they read back as Marker. It returns false if b is shorter than
// MarkerSize.
func MarkerMatches(engine EndianEngine, b []byte) bool {
	if len(b) < MarkerSize {
		return false
	}

	return engine.Uint16(b[:MarkerSize]) == Marker
}
