package packet

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
)

// HeaderSize is the size of a bancho packet header:
// u16 packet id, u8 compression flag, u32 payload length.
const HeaderSize = 7

// Frame is one length-prefixed packet as it appears on the wire.
type Frame struct {
	ID         uint16
	Compressed bool
	Payload    []byte
}

// EncodeFrame serializes header + payload. The client never sets the
// compression bit, so the flag is always written as zero.
func EncodeFrame(id uint16, payload []byte) []byte {
	w := NewWriterSize(HeaderSize + len(payload))
	w.WriteUint16(id)
	w.WriteBool(false)
	w.WriteUint32(uint32(len(payload)))
	w.WriteBytes(payload)
	return w.Bytes()
}

// ReadFrame decodes the next frame from the reader. The payload is returned
// as-is; decompression is the transport's concern since HTTP uses zlib and
// TCP uses gzip.
func ReadFrame(r *Reader) (Frame, error) {
	id, err := r.ReadUint16()
	if err != nil {
		return Frame{}, fmt.Errorf("reading packet id: %w", err)
	}
	compressed, err := r.ReadBool()
	if err != nil {
		return Frame{}, fmt.Errorf("reading compression flag: %w", err)
	}
	length, err := r.ReadUint32()
	if err != nil {
		return Frame{}, fmt.Errorf("reading payload length: %w", err)
	}
	payload, err := r.Read(int(length))
	if err != nil {
		return Frame{}, fmt.Errorf("reading payload: %w", err)
	}
	return Frame{ID: id, Compressed: compressed, Payload: payload}, nil
}

// DecodeStream splits a response body into frames, in wire order, consuming
// the buffer until end-of-stream.
func DecodeStream(data []byte) ([]Frame, error) {
	r := NewReader(data)
	var frames []Frame
	for !r.EOF() {
		frame, err := ReadFrame(r)
		if err != nil {
			return frames, err
		}
		frames = append(frames, frame)
	}
	return frames, nil
}

// DecompressZlib inflates a zlib-compressed payload (HTTP transport).
func DecompressZlib(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening zlib payload: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("inflating zlib payload: %w", err)
	}
	return out, nil
}

// DecompressGzip inflates a gzip-compressed payload (TCP transport).
func DecompressGzip(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening gzip payload: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("inflating gzip payload: %w", err)
	}
	return out, nil
}
