package bancho

import (
	"sync"
	"testing"

	"github.com/Lekuruu/gosu/internal/constants"
)

func TestEventHandler_SyncOrder(t *testing.T) {
	e := NewEventHandler(nil, discardLogger())

	var order []int
	e.Register(constants.ServerNotification, func(...any) { order = append(order, 1) })
	e.Register(constants.ServerNotification, func(...any) { order = append(order, 2) })

	e.Emit(constants.ServerNotification, "hello")

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("callbacks ran in order %v", order)
	}
}

func TestEventHandler_ArgsForwarded(t *testing.T) {
	e := NewEventHandler(nil, discardLogger())

	var got []any
	e.Register(constants.ServerUserID, func(args ...any) { got = args })

	e.Emit(constants.ServerUserID, int32(2), "peppy")

	if len(got) != 2 || got[0] != int32(2) || got[1] != "peppy" {
		t.Fatalf("args = %v", got)
	}
}

func TestEventHandler_PanicRecovered(t *testing.T) {
	e := NewEventHandler(nil, discardLogger())

	ran := false
	e.Register(constants.ServerPong, func(...any) { panic("callback bug") })
	e.Register(constants.ServerPong, func(...any) { ran = true })

	e.Emit(constants.ServerPong)

	if !ran {
		t.Fatal("a panicking callback must not stop the rest")
	}
}

func TestEventHandler_ThreadedRunsOnPool(t *testing.T) {
	pool := NewWorkerPool(2, discardLogger())
	e := NewEventHandler(pool, discardLogger())

	var wg sync.WaitGroup
	wg.Add(1)
	e.RegisterThreaded(constants.ServerPong, func(...any) { wg.Done() })

	e.Emit(constants.ServerPong)
	wg.Wait()
	pool.Close()
}

func TestEventHandler_NoCallbacksIsFine(t *testing.T) {
	e := NewEventHandler(nil, discardLogger())
	e.Emit(constants.ServerPong)
}
