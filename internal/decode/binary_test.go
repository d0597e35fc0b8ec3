package decode

import "encoding/binary"

// binBuilder assembles little-endian test fixtures for the binary decoders.
type binBuilder struct {
	buf []byte
}

func (b *binBuilder) u8(v uint8) *binBuilder {
	b.buf = append(b.buf, v)
	return b
}

func (b *binBuilder) u16(v uint16) *binBuilder {
	b.buf = binary.LittleEndian.AppendUint16(b.buf, v)
	return b
}

func (b *binBuilder) u32(v uint32) *binBuilder {
	b.buf = binary.LittleEndian.AppendUint32(b.buf, v)
	return b
}

func (b *binBuilder) u64(v uint64) *binBuilder {
	b.buf = binary.LittleEndian.AppendUint64(b.buf, v)
	return b
}

func (b *binBuilder) str8(s string) *binBuilder {
	b.u8(uint8(len(s)))
	b.buf = append(b.buf, s...)
	return b
}

func (b *binBuilder) str16(s string) *binBuilder {
	b.u16(uint16(len(s)))
	b.buf = append(b.buf, s...)
	return b
}

func (b *binBuilder) bytes() []byte { return b.buf }
