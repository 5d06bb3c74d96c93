// Package cursor implements the byte region the bts codec reads and writes.
//
// A Cursor wraps a fixed-capacity byte slice (a file mapping, a memory
// buffer, a network frame) with a monotonically advancing position. Every
// get and put consumes exactly the width of the primitive involved, so a
// sequence of field operations lands on the exact offsets of the record
// layout. Seek repositions the cursor for partial reads.
//
// Errors are sticky: the first out-of-bounds access records
// errs.ErrTruncatedBuffer, leaves the position unchanged and turns every
// later get or put into a no-op returning zero. Check Err once after a group
// of operations.
//
// A Cursor is not safe for concurrent use. Any number of cursors may read
// the same underlying slice concurrently.
package cursor

import (
	"fmt"

	"github.com/arloliu/bts/endian"
	"github.com/arloliu/bts/errs"
)

type Cursor struct {
	buf    []byte
	pos    int
	engine endian.EndianEngine
	err    error
}

// New creates a cursor at offset 0 of buf using the given byte order.
func New(buf []byte, engine endian.EndianEngine) *Cursor {
	return &Cursor{buf: buf, engine: engine}
}

// Engine returns the byte order used for multi-byte primitives.
func (c *Cursor) Engine() endian.EndianEngine { return c.engine }

// Len returns the capacity of the region in bytes.
func (c *Cursor) Len() int { return len(c.buf) }

// Position returns the current offset.
func (c *Cursor) Position() int { return c.pos }

// Remaining returns the number of bytes between the cursor and the end of the region.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// Err returns the first error encountered by a get or put, if any.
func (c *Cursor) Err() error { return c.err }

// Buffer returns the underlying region.
func (c *Cursor) Buffer() []byte { return c.buf }

// Seek moves the cursor to an absolute offset in [0, Len()].
//
// Seek does not clear a sticky error.
func (c *Cursor) Seek(offset int) error {
	if offset < 0 || offset > len(c.buf) {
		return fmt.Errorf("%w: %d not in [0, %d]", errs.ErrInvalidOffset, offset, len(c.buf))
	}
	c.pos = offset

	return nil
}

// Skip advances the cursor by n bytes without reading them.
func (c *Cursor) Skip(n int) {
	c.take(n)
}

// take returns the next n bytes and advances, or records a truncation error.
func (c *Cursor) take(n int) []byte {
	if c.err != nil {
		return nil
	}
	if n < 0 || n > len(c.buf)-c.pos {
		c.err = fmt.Errorf("%w: need %d bytes at offset %d, region has %d",
			errs.ErrTruncatedBuffer, n, c.pos, len(c.buf))

		return nil
	}
	b := c.buf[c.pos : c.pos+n : c.pos+n]
	c.pos += n

	return b
}

func (c *Cursor) Uint8() uint8 {
	b := c.take(1)
	if b == nil {
		return 0
	}

	return b[0]
}

func (c *Cursor) Uint16() uint16 {
	b := c.take(2)
	if b == nil {
		return 0
	}

	return c.engine.Uint16(b)
}

func (c *Cursor) Uint32() uint32 {
	b := c.take(4)
	if b == nil {
		return 0
	}

	return c.engine.Uint32(b)
}

func (c *Cursor) Uint64() uint64 {
	b := c.take(8)
	if b == nil {
		return 0
	}

	return c.engine.Uint64(b)
}

// Bits reads a width-byte primitive and returns its bit pattern zero-extended.
// Width must be 1, 2, 4 or 8; any other width reads nothing and returns 0.
func (c *Cursor) Bits(width int) uint64 {
	switch width {
	case 1:
		return uint64(c.Uint8())
	case 2:
		return uint64(c.Uint16())
	case 4:
		return uint64(c.Uint32())
	case 8:
		return c.Uint64()
	default:
		return 0
	}
}

// Bytes returns the next n bytes as a sub-slice of the region. The slice
// aliases the region and has its capacity capped at n.
func (c *Cursor) Bytes(n int) []byte {
	return c.take(n)
}

func (c *Cursor) PutUint8(v uint8) {
	if b := c.take(1); b != nil {
		b[0] = v
	}
}

func (c *Cursor) PutUint16(v uint16) {
	if b := c.take(2); b != nil {
		c.engine.PutUint16(b, v)
	}
}

func (c *Cursor) PutUint32(v uint32) {
	if b := c.take(4); b != nil {
		c.engine.PutUint32(b, v)
	}
}

func (c *Cursor) PutUint64(v uint64) {
	if b := c.take(8); b != nil {
		c.engine.PutUint64(b, v)
	}
}

// PutBits writes the low width bytes of bits as a width-byte primitive.
// Width must be 1, 2, 4 or 8; any other width writes nothing.
func (c *Cursor) PutBits(width int, bits uint64) {
	switch width {
	case 1:
		c.PutUint8(uint8(bits))
	case 2:
		c.PutUint16(uint16(bits))
	case 4:
		c.PutUint32(uint32(bits))
	case 8:
		c.PutUint64(bits)
	}
}

// PutBytes copies p into the region at the cursor.
func (c *Cursor) PutBytes(p []byte) {
	if b := c.take(len(p)); b != nil {
		copy(b, p)
	}
}

// PutZeros writes n zero bytes.
func (c *Cursor) PutZeros(n int) {
	if b := c.take(n); b != nil {
		clear(b)
	}
}
