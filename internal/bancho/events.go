package bancho

import (
	"log/slog"
	"sync"

	"github.com/Lekuruu/gosu/internal/constants"
)

// EventFunc is a user callback fired after the built-in handler for the
// same packet has run. The arguments depend on the packet; see the built-in
// handlers for what each packet emits.
type EventFunc func(args ...any)

type eventEntry struct {
	fn       EventFunc
	threaded bool
}

// EventHandler maps server packets to user callbacks. Callbacks registered
// as threaded run on the worker pool with no ordering guarantee; the rest
// run synchronously on the driver in registration order.
type EventHandler struct {
	mu       sync.RWMutex
	handlers map[constants.ServerPacket][]eventEntry
	pool     *WorkerPool
	logger   *slog.Logger
}

// NewEventHandler creates an empty registry backed by the given pool.
func NewEventHandler(pool *WorkerPool, logger *slog.Logger) *EventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventHandler{
		handlers: make(map[constants.ServerPacket][]eventEntry),
		pool:     pool,
		logger:   logger,
	}
}

// Register adds a callback for the given packet.
func (e *EventHandler) Register(packet constants.ServerPacket, fn EventFunc) {
	e.register(packet, fn, false)
}

// RegisterThreaded adds a callback that runs on the worker pool.
func (e *EventHandler) RegisterThreaded(packet constants.ServerPacket, fn EventFunc) {
	e.register(packet, fn, true)
}

func (e *EventHandler) register(packet constants.ServerPacket, fn EventFunc, threaded bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers[packet] = append(e.handlers[packet], eventEntry{fn: fn, threaded: threaded})
}

// Emit calls every callback registered for the packet. Synchronous callback
// panics are logged and never abort the session.
func (e *EventHandler) Emit(packet constants.ServerPacket, args ...any) {
	e.mu.RLock()
	entries := e.handlers[packet]
	e.mu.RUnlock()

	for _, entry := range entries {
		if entry.threaded {
			fn := entry.fn
			e.pool.Submit(func() { fn(args...) })
			continue
		}
		e.call(packet, entry.fn, args)
	}
}

func (e *EventHandler) call(packet constants.ServerPacket, fn EventFunc, args []any) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("panic in event callback", "packet", packet.String(), "panic", r)
		}
	}()
	fn(args...)
}
