package gamefile

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrUnexpectedEOF is returned when a read runs past the end of the buffer.
// There is no implicit zero-fill: a truncated record is a decode failure.
var ErrUnexpectedEOF = errors.New("unexpected end of file")

// Cursor is a forward-only reader over a byte buffer. All multi-byte reads
// are little-endian, matching the game server's on-disk formats.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor wraps buf in a cursor positioned at the start.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos returns the current byte offset.
func (c *Cursor) Pos() int {
	return c.pos
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

func (c *Cursor) take(n int) ([]byte, error) {
	if c.pos+n > len(c.buf) {
		return nil, fmt.Errorf("read %d bytes at offset %d of %d: %w", n, c.pos, len(c.buf), ErrUnexpectedEOF)
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// ReadUint8 reads one byte.
func (c *Cursor) ReadUint8() (uint8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUint16 reads a little-endian uint16.
func (c *Cursor) ReadUint16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadUint32 reads a little-endian uint32.
func (c *Cursor) ReadUint32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadUint64 reads a little-endian uint64.
func (c *Cursor) ReadUint64() (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadInt32 reads a little-endian int32.
func (c *Cursor) ReadInt32() (int32, error) {
	v, err := c.ReadUint32()
	return int32(v), err
}

// ReadString8 reads a string with a one-byte length prefix. The bytes are
// Windows-1252 and are transcoded to UTF-8.
func (c *Cursor) ReadString8() (string, error) {
	n, err := c.ReadUint8()
	if err != nil {
		return "", err
	}
	return c.readString(int(n))
}

// ReadString16 reads a string with a two-byte little-endian length prefix.
func (c *Cursor) ReadString16() (string, error) {
	n, err := c.ReadUint16()
	if err != nil {
		return "", err
	}
	return c.readString(int(n))
}

func (c *Cursor) readString(n int) (string, error) {
	b, err := c.take(n)
	if err != nil {
		return "", err
	}
	return DecodeLatin1(b), nil
}

// HasFlag reports whether bit is set in flags.
func HasFlag(flags uint32, bit uint32) bool {
	return flags&bit != 0
}
