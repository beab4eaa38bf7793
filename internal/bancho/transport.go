package bancho

import (
	"context"
	"errors"
	"fmt"

	"github.com/Lekuruu/gosu/internal/packet"
)

// ErrTransport marks non-recoverable connection failures: refused
// connections, non-2xx responses without a packet body, broken pipes and
// EOF during a read. The session reacts by disconnecting with retry=true.
var ErrTransport = errors.New("transport failure")

// LoginResult is the outcome of the initial login exchange.
type LoginResult struct {
	// Token is the cho-token returned by an HTTP login. Empty on the TCP
	// transport, and on HTTP when the server rejected the login (the reply
	// frames then carry a negative LoginReply).
	Token string

	// Frames are the decoded packets of the login response body.
	Frames []packet.Frame
}

// CycleResult is the outcome of one transport cycle.
type CycleResult struct {
	Frames []packet.Frame

	// BodySize is the raw response size; large responses hint that more
	// data is pending server-side.
	BodySize int
}

// Transport abstracts the two wire variants. The session runtime holds the
// interface, never a concrete transport.
type Transport interface {
	// Login sends the three-line login payload.
	Login(ctx context.Context, payload []byte) (*LoginResult, error)

	// Cycle flushes outgoing bytes and returns the next decoded frames.
	// On HTTP this is one POST carrying the batched queue; on TCP it is a
	// blocking read of a single frame.
	Cycle(ctx context.Context, outgoing []byte) (*CycleResult, error)

	// Send writes one framed packet immediately, bypassing per-cycle
	// batching. Only called when Direct reports true.
	Send(frame []byte) error

	// Direct reports whether writes bypass the per-cycle batching (TCP).
	Direct() bool

	// Close releases the underlying connection.
	Close() error
}

// decompressFrames inflates every compressed payload in place using the
// transport's scheme. HTTP bodies use zlib, the TCP stream uses gzip.
func decompressFrames(frames []packet.Frame, inflate func([]byte) ([]byte, error)) error {
	for i := range frames {
		if !frames[i].Compressed {
			continue
		}
		payload, err := inflate(frames[i].Payload)
		if err != nil {
			return fmt.Errorf("decompressing packet %d: %w", frames[i].ID, err)
		}
		frames[i].Payload = payload
		frames[i].Compressed = false
	}
	return nil
}
