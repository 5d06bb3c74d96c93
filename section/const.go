package section

// Byte offsets of the header fields. A cursor that encodes or decodes the
// header sits exactly on each of these offsets after the preceding field.
const (
	OffsetEndianness    = 0  // 2 bytes, endianness marker
	OffsetTimeDType     = 2  // 1 byte, time dtype tag
	OffsetT0            = 3  // 8-byte slot
	OffsetDt            = 11 // 8-byte slot
	OffsetScalingDType  = 19 // 1 byte, scaling dtype tag
	OffsetScalingOffset = 20 // 8-byte slot
	OffsetScalingFactor = 28 // 8-byte slot
	OffsetReserved      = 36 // 23 bytes, zero on write, skipped on read
	OffsetDataDType     = 59 // 1 byte, data dtype tag
	OffsetNumSamples    = 60 // 4 bytes, unsigned sample count
	HeaderSize          = 64 // raw sample array starts here

	SlotSize     = 8
	ReservedSize = OffsetDataDType - OffsetReserved
)

// MaxSamples is the largest sample count the 32-bit count field can hold.
const MaxSamples = 1<<32 - 1

// FileOffset returns the byte offset of sample index within a record whose
// samples are width bytes wide: HeaderSize + width*index.
func FileOffset(width, index int) int {
	return HeaderSize + width*index
}

// RecordSize returns the total size of a record holding numSamples samples
// of the given width.
func RecordSize(width int, numSamples uint32) int {
	return FileOffset(width, int(numSamples))
}
