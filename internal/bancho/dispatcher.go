package bancho

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/Lekuruu/gosu/internal/constants"
	"github.com/Lekuruu/gosu/internal/packet"
)

// HandlerFunc decodes one server packet and mutates session state. A
// returned error wrapping packet.ErrMalformed drops the packet; any other
// error is logged and the remaining handlers still run.
type HandlerFunc func(c *Client, r *packet.Reader) error

// Dispatcher routes decoded frames to their handlers. Built-in handlers
// are registered first, so user handlers for the same packet always run
// after the session state has been updated.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[constants.ServerPacket][]HandlerFunc
	logger   *slog.Logger
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		handlers: make(map[constants.ServerPacket][]HandlerFunc),
		logger:   logger,
	}
}

// Register appends a handler for the given packet.
func (d *Dispatcher) Register(p constants.ServerPacket, fn HandlerFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[p] = append(d.handlers[p], fn)
}

// Dispatch runs every handler registered for the packet, each against a
// fresh reader over the payload. Handlers run in registration order.
func (d *Dispatcher) Dispatch(c *Client, p constants.ServerPacket, payload []byte) {
	d.mu.RLock()
	handlers := d.handlers[p]
	d.mu.RUnlock()

	if len(handlers) == 0 {
		d.logger.Warn("no handler for packet", "packet", p.String())
		return
	}

	for _, fn := range handlers {
		err := d.invoke(c, fn, payload)
		if err == nil {
			continue
		}
		if errors.Is(err, packet.ErrMalformed) {
			d.logger.Error("dropping malformed packet", "packet", p.String(), "err", err)
			return
		}
		d.logger.Error("handler failed", "packet", p.String(), "err", err)
	}
}

func (d *Dispatcher) invoke(c *Client, fn HandlerFunc, payload []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("panic in packet handler", "panic", r)
		}
	}()
	return fn(c, packet.NewReader(payload))
}
