package bancho

import "sync"

// Queue is the outbound FIFO of already-framed packet buffers.
// Enqueue is safe to call from any goroutine; the driver drains it once per
// cycle into a single request body.
type Queue struct {
	mu      sync.Mutex
	pending [][]byte
	bytes   int
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends one framed packet.
func (q *Queue) Push(frame []byte) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, frame)
	q.bytes += len(frame)
}

// Drain removes every queued frame and returns them concatenated in
// enqueue order. Returns nil when the queue is empty.
func (q *Queue) Drain() []byte {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return nil
	}

	out := make([]byte, 0, q.bytes)
	for _, frame := range q.pending {
		out = append(out, frame...)
	}
	q.pending = q.pending[:0]
	q.bytes = 0
	return out
}

// Len returns the number of queued frames.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
