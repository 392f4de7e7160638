package presence

import (
	"errors"
	"sync"
	"testing"
	"time"

	"taskhub/internal/ws"
)

type fakeHub struct {
	mu     sync.Mutex
	events []ws.Event
}

func (f *fakeHub) Broadcast(e ws.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
}

func (f *fakeHub) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

func (f *fakeHub) first() ws.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.events[0]
}

func TestTicker_Cadence(t *testing.T) {
	hub := &fakeHub{}
	snap := func() (any, error) { return []string{"alice"}, nil }
	ticker := NewTicker(20*time.Millisecond, snap, hub)
	go ticker.Run()
	defer ticker.Stop()

	time.Sleep(110 * time.Millisecond)
	ticker.Stop()

	got := hub.count()
	if got < 3 || got > 6 {
		t.Errorf("broadcasts over ~100ms at 20ms interval = %d, want ~5", got)
	}
	evt := hub.first()
	if evt.Type != ws.EventEmployeeStatus {
		t.Errorf("event type = %q, want %q", evt.Type, ws.EventEmployeeStatus)
	}
}

func TestTicker_SurvivesSnapshotError(t *testing.T) {
	hub := &fakeHub{}
	var mu sync.Mutex
	calls := 0
	snap := func() (any, error) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls == 1 {
			return nil, errors.New("db down")
		}
		return []string{"bob"}, nil
	}
	ticker := NewTicker(20*time.Millisecond, snap, hub)
	go ticker.Run()
	defer ticker.Stop()

	time.Sleep(110 * time.Millisecond)
	ticker.Stop()
	time.Sleep(30 * time.Millisecond) // 等进行中的 tick 收尾

	mu.Lock()
	gotCalls := calls
	mu.Unlock()
	if gotCalls < 2 {
		t.Fatalf("snapshot called %d times, ticker stopped after error", gotCalls)
	}
	// 失败的那次 tick 没有广播，后续 tick 正常
	if hub.count() != gotCalls-1 {
		t.Errorf("broadcasts = %d with %d snapshot calls, want one fewer (first errored)", hub.count(), gotCalls)
	}
}

func TestTicker_StopIdempotent(t *testing.T) {
	ticker := NewTicker(time.Second, func() (any, error) { return nil, nil }, &fakeHub{})
	go ticker.Run()
	ticker.Stop()
	ticker.Stop() // 重复 Stop 不应 panic
}
