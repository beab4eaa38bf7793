package bancho

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"

	"github.com/Lekuruu/gosu/internal/packet"
)

// TCPTransport speaks the persistent-socket variant used by old clients:
// packets are written as soon as they are produced and the read side blocks
// on one 7-byte header at a time. Compressed payloads on this stream use
// gzip rather than zlib.
type TCPTransport struct {
	addr   string
	logger *slog.Logger

	mu   sync.Mutex
	conn net.Conn
}

// NewTCPTransport creates a transport against ip:port.
func NewTCPTransport(ip string, port int, logger *slog.Logger) *TCPTransport {
	if logger == nil {
		logger = slog.Default()
	}
	return &TCPTransport{
		addr:   fmt.Sprintf("%s:%d", ip, port),
		logger: logger,
	}
}

// Login dials the server and writes the login payload. The reply arrives
// through subsequent Cycle reads, so the result carries no frames.
func (t *TCPTransport) Login(ctx context.Context, payload []byte) (*LoginResult, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", t.addr)
	if err != nil {
		return nil, fmt.Errorf("%w: dialing %s: %v", ErrTransport, t.addr, err)
	}

	if _, err := conn.Write(payload); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: writing login payload: %v", ErrTransport, err)
	}

	t.mu.Lock()
	t.conn = conn
	t.mu.Unlock()

	return &LoginResult{}, nil
}

// Cycle blocks until one full frame has been read. The outgoing buffer is
// normally empty because writes go through Send, but leftovers are flushed
// first.
func (t *TCPTransport) Cycle(ctx context.Context, outgoing []byte) (*CycleResult, error) {
	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()
	if conn == nil {
		return nil, fmt.Errorf("%w: connection closed", ErrTransport)
	}

	if len(outgoing) > 0 {
		if _, err := conn.Write(outgoing); err != nil {
			return nil, fmt.Errorf("%w: writing packets: %v", ErrTransport, err)
		}
	}
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetReadDeadline(deadline)
	}

	header := make([]byte, packet.HeaderSize)
	if _, err := io.ReadFull(conn, header); err != nil {
		return nil, fmt.Errorf("%w: reading packet header: %v", ErrTransport, err)
	}

	frame := packet.Frame{
		ID:         binary.LittleEndian.Uint16(header[0:2]),
		Compressed: header[2] != 0,
	}
	length := binary.LittleEndian.Uint32(header[3:7])
	if length > 0 {
		frame.Payload = make([]byte, length)
		if _, err := io.ReadFull(conn, frame.Payload); err != nil {
			return nil, fmt.Errorf("%w: reading packet payload: %v", ErrTransport, err)
		}
	}

	frames := []packet.Frame{frame}
	if err := decompressFrames(frames, packet.DecompressGzip); err != nil {
		return nil, err
	}
	return &CycleResult{Frames: frames, BodySize: packet.HeaderSize + int(length)}, nil
}

// Send writes one framed packet immediately.
func (t *TCPTransport) Send(frame []byte) error {
	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()
	if conn == nil {
		return fmt.Errorf("%w: connection closed", ErrTransport)
	}
	if _, err := conn.Write(frame); err != nil {
		return fmt.Errorf("%w: writing packet: %v", ErrTransport, err)
	}
	return nil
}

// Direct reports true: writes bypass per-cycle batching.
func (t *TCPTransport) Direct() bool { return true }

// Close shuts the socket down, unblocking any pending read.
func (t *TCPTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}
