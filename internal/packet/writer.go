package packet

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Writer provides methods for writing bancho packet data.
// Uses Little-Endian byte order for all multi-byte values.
type Writer struct {
	buf *bytes.Buffer
}

// NewWriter creates a new packet writer.
func NewWriter() *Writer {
	return &Writer{buf: &bytes.Buffer{}}
}

// NewWriterSize creates a new packet writer with the given initial capacity.
func NewWriterSize(capacity int) *Writer {
	return &Writer{buf: bytes.NewBuffer(make([]byte, 0, capacity))}
}

// WriteUint8 writes a single unsigned byte.
func (w *Writer) WriteUint8(b uint8) {
	w.buf.WriteByte(b)
}

// WriteInt8 writes a signed byte.
func (w *Writer) WriteInt8(b int8) {
	w.buf.WriteByte(byte(b))
}

// WriteUint16 writes a uint16 (2 bytes, LE).
func (w *Writer) WriteUint16(val uint16) {
	w.buf.WriteByte(byte(val))
	w.buf.WriteByte(byte(val >> 8))
}

// WriteInt16 writes an int16 (2 bytes, LE).
func (w *Writer) WriteInt16(val int16) {
	w.WriteUint16(uint16(val))
}

// WriteUint24 writes a 3-byte little-endian unsigned integer.
func (w *Writer) WriteUint24(val uint32) {
	w.buf.WriteByte(byte(val))
	w.buf.WriteByte(byte(val >> 8))
	w.buf.WriteByte(byte(val >> 16))
}

// WriteUint32 writes a uint32 (4 bytes, LE).
func (w *Writer) WriteUint32(val uint32) {
	w.buf.WriteByte(byte(val))
	w.buf.WriteByte(byte(val >> 8))
	w.buf.WriteByte(byte(val >> 16))
	w.buf.WriteByte(byte(val >> 24))
}

// WriteInt32 writes an int32 (4 bytes, LE).
func (w *Writer) WriteInt32(val int32) {
	w.WriteUint32(uint32(val))
}

// WriteUint64 writes a uint64 (8 bytes, LE).
func (w *Writer) WriteUint64(val uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], val)
	w.buf.Write(tmp[:])
}

// WriteInt64 writes an int64 (8 bytes, LE).
func (w *Writer) WriteInt64(val int64) {
	w.WriteUint64(uint64(val))
}

// WriteFloat32 writes an IEEE 754 float32 (4 bytes, LE).
func (w *Writer) WriteFloat32(val float32) {
	w.WriteUint32(math.Float32bits(val))
}

// WriteFloat64 writes an IEEE 754 float64 (8 bytes, LE).
func (w *Writer) WriteFloat64(val float64) {
	w.WriteUint64(math.Float64bits(val))
}

// WriteBool writes one byte, 1 for true and 0 for false.
func (w *Writer) WriteBool(val bool) {
	if val {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}

// WriteUleb128 writes an unsigned LEB128-encoded integer.
func (w *Writer) WriteUleb128(val uint64) {
	if val == 0 {
		w.buf.WriteByte(0)
		return
	}
	for val != 0 {
		b := byte(val & 0x7F)
		val >>= 7
		if val != 0 {
			b |= 0x80
		}
		w.buf.WriteByte(b)
	}
}

// WriteString writes an osu string: a 0x00 lead byte for the empty string,
// otherwise 0x0B followed by the ULEB128 byte length and the UTF-8 bytes.
func (w *Writer) WriteString(s string) {
	if s == "" {
		w.buf.WriteByte(0x00)
		return
	}
	w.buf.WriteByte(0x0B)
	w.WriteUleb128(uint64(len(s)))
	w.buf.WriteString(s)
}

// WriteIntList writes an s16 count followed by the s32 values.
func (w *Writer) WriteIntList(list []int32) {
	w.WriteInt16(int16(len(list)))
	for _, v := range list {
		w.WriteInt32(v)
	}
}

// WriteBytes writes raw bytes.
func (w *Writer) WriteBytes(data []byte) {
	w.buf.Write(data)
}

// Bytes returns the accumulated packet data.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the current length of the packet.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Reset clears the buffer for reuse.
func (w *Writer) Reset() {
	w.buf.Reset()
}
