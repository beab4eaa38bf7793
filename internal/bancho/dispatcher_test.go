package bancho

import (
	"fmt"
	"testing"

	"github.com/Lekuruu/gosu/internal/constants"
	"github.com/Lekuruu/gosu/internal/packet"
)

func TestDispatcher_RegistrationOrder(t *testing.T) {
	d := NewDispatcher(discardLogger())
	c := newTestClient(&stubTransport{}, Options{})

	var order []int
	d.Register(constants.ServerPong, func(*Client, *packet.Reader) error {
		order = append(order, 1)
		return nil
	})
	d.Register(constants.ServerPong, func(*Client, *packet.Reader) error {
		order = append(order, 2)
		return nil
	})

	d.Dispatch(c, constants.ServerPong, nil)

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("handlers ran in order %v", order)
	}
}

func TestDispatcher_FreshReaderPerHandler(t *testing.T) {
	d := NewDispatcher(discardLogger())
	c := newTestClient(&stubTransport{}, Options{})

	var first, second int32
	d.Register(constants.ServerUserLogout, func(_ *Client, r *packet.Reader) error {
		first, _ = r.ReadInt32()
		return nil
	})
	d.Register(constants.ServerUserLogout, func(_ *Client, r *packet.Reader) error {
		second, _ = r.ReadInt32()
		return nil
	})

	w := packet.NewWriter()
	w.WriteInt32(7)
	d.Dispatch(c, constants.ServerUserLogout, w.Bytes())

	if first != 7 || second != 7 {
		t.Fatalf("readers shared a cursor: first=%d second=%d", first, second)
	}
}

func TestDispatcher_MalformedStopsChain(t *testing.T) {
	d := NewDispatcher(discardLogger())
	c := newTestClient(&stubTransport{}, Options{})

	ran := false
	d.Register(constants.ServerUserLogout, func(_ *Client, r *packet.Reader) error {
		_, err := r.ReadInt32()
		return fmt.Errorf("reading user id: %w", err)
	})
	d.Register(constants.ServerUserLogout, func(*Client, *packet.Reader) error {
		ran = true
		return nil
	})

	// Two bytes where an int32 is needed.
	d.Dispatch(c, constants.ServerUserLogout, []byte{0x01, 0x02})

	if ran {
		t.Fatal("handlers after a malformed packet must not run")
	}
}

func TestDispatcher_OtherErrorsContinueChain(t *testing.T) {
	d := NewDispatcher(discardLogger())
	c := newTestClient(&stubTransport{}, Options{})

	ran := false
	d.Register(constants.ServerPong, func(*Client, *packet.Reader) error {
		return fmt.Errorf("some handler trouble")
	})
	d.Register(constants.ServerPong, func(*Client, *packet.Reader) error {
		ran = true
		return nil
	})

	d.Dispatch(c, constants.ServerPong, nil)

	if !ran {
		t.Fatal("non-malformed errors must not stop the chain")
	}
}

func TestDispatcher_PanicRecovered(t *testing.T) {
	d := NewDispatcher(discardLogger())
	c := newTestClient(&stubTransport{}, Options{})

	ran := false
	d.Register(constants.ServerPong, func(*Client, *packet.Reader) error {
		panic("handler bug")
	})
	d.Register(constants.ServerPong, func(*Client, *packet.Reader) error {
		ran = true
		return nil
	})

	d.Dispatch(c, constants.ServerPong, nil)

	if !ran {
		t.Fatal("a panicking handler must not take the chain down")
	}
}

func TestQueue_FIFO(t *testing.T) {
	q := NewQueue()
	q.Push([]byte{0x01})
	q.Push([]byte{0x02, 0x03})
	q.Push([]byte{0x04})

	if q.Len() != 3 {
		t.Fatalf("len = %d, want 3", q.Len())
	}

	out := q.Drain()
	want := []byte{0x01, 0x02, 0x03, 0x04}
	if string(out) != string(want) {
		t.Fatalf("drained %x, want %x", out, want)
	}
	if q.Len() != 0 {
		t.Fatal("queue must be empty after drain")
	}
	if q.Drain() != nil {
		t.Fatal("draining an empty queue must return nil")
	}
}
