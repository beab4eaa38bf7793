package packet

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrMalformed is wrapped by every decode failure: short reads, bad string
// lead bytes and negative lengths. Callers drop the offending packet and
// continue with the next one in the stream.
var ErrMalformed = errors.New("malformed frame")

// Reader provides methods for reading bancho packet data.
// Uses Little-Endian byte order for all multi-byte values.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a new packet reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// EOF reports whether the cursor reached the end of the data.
func (r *Reader) EOF() bool {
	return r.pos >= len(r.data)
}

// Read returns the next n raw bytes.
func (r *Reader) Read(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative read length %d", ErrMalformed, n)
	}
	if r.pos+n > len(r.data) {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrMalformed, n, r.Remaining())
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadAll returns every remaining byte.
func (r *Reader) ReadAll() []byte {
	b := r.data[r.pos:]
	r.pos = len(r.data)
	return b
}

// ReadUint8 reads a single unsigned byte.
func (r *Reader) ReadUint8() (uint8, error) {
	if r.pos >= len(r.data) {
		return 0, fmt.Errorf("%w: ReadUint8 past end (pos=%d, len=%d)", ErrMalformed, r.pos, len(r.data))
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadInt8 reads a signed byte.
func (r *Reader) ReadInt8() (int8, error) {
	b, err := r.ReadUint8()
	return int8(b), err
}

// ReadUint16 reads a uint16 (2 bytes, LE).
func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.Read(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadInt16 reads an int16 (2 bytes, LE).
func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

// ReadUint24 reads a 3-byte little-endian unsigned integer.
func (r *Reader) ReadUint24() (uint32, error) {
	b, err := r.Read(3)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16, nil
}

// ReadUint32 reads a uint32 (4 bytes, LE).
func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.Read(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadInt32 reads an int32 (4 bytes, LE).
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadUint64 reads a uint64 (8 bytes, LE).
func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.Read(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadInt64 reads an int64 (8 bytes, LE).
func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadFloat32 reads an IEEE 754 float32 (4 bytes, LE).
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadFloat64 reads an IEEE 754 float64 (8 bytes, LE).
func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadBool reads one byte and interprets any non-zero value as true.
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadUint8()
	return b != 0, err
}

// ReadUleb128 reads an unsigned LEB128-encoded integer.
func (r *Reader) ReadUleb128() (uint64, error) {
	var value uint64
	var shift uint
	for {
		b, err := r.ReadUint8()
		if err != nil {
			return 0, err
		}
		value |= uint64(b&0x7F) << shift
		if b&0x80 == 0 {
			return value, nil
		}
		shift += 7
		if shift > 63 {
			return 0, fmt.Errorf("%w: uleb128 overflow", ErrMalformed)
		}
	}
}

// ReadString reads an osu string: 0x00 lead byte means empty, 0x0B means a
// ULEB128 length followed by UTF-8 bytes. Any other lead byte fails.
func (r *Reader) ReadString() (string, error) {
	lead, err := r.ReadUint8()
	if err != nil {
		return "", err
	}
	switch lead {
	case 0x00:
		return "", nil
	case 0x0B:
		size, err := r.ReadUleb128()
		if err != nil {
			return "", err
		}
		b, err := r.Read(int(size))
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("%w: invalid string lead byte 0x%02X", ErrMalformed, lead)
	}
}

// ReadIntList reads an s16 count followed by that many s32 values.
func (r *Reader) ReadIntList() ([]int32, error) {
	count, err := r.ReadInt16()
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: negative list length %d", ErrMalformed, count)
	}
	list := make([]int32, 0, count)
	for i := int16(0); i < count; i++ {
		v, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, nil
}
