package backend

import (
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestPumpFlushesRequests(t *testing.T) {
	var calls atomic.Int64
	p := NewPump(0, func() { calls.Add(1) })
	defer func() {
		p.Stop()
		p.Wait()
	}()

	p.Request()
	waitFor(t, func() bool { return calls.Load() == 1 })
	if p.Flushes() != 1 {
		t.Fatalf("expected 1 flush, got %d", p.Flushes())
	}
}

func TestPumpCoalescesBursts(t *testing.T) {
	var calls atomic.Int64
	release := make(chan struct{})
	p := NewPump(0, func() {
		calls.Add(1)
		<-release
	})
	defer func() {
		p.Stop()
		p.Wait()
	}()

	p.Request()
	waitFor(t, func() bool { return calls.Load() == 1 })

	// the first flush is blocked; these collapse into a single follow-up
	for i := 0; i < 10; i++ {
		p.Request()
	}
	close(release)
	waitFor(t, func() bool { return calls.Load() == 2 })

	time.Sleep(50 * time.Millisecond)
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected burst coalesced into 2 flushes, got %d", got)
	}
}

func TestPumpStopsWhileThrottled(t *testing.T) {
	p := NewPump(time.Hour, func() {})
	p.Request()
	waitFor(t, func() bool { return p.Flushes() == 1 })

	p.Request()
	p.Stop()
	done := make(chan struct{})
	go func() {
		p.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("pump did not exit while waiting on the throttle")
	}
}

func TestThrottleSpacesCalls(t *testing.T) {
	th := newThrottle(30 * time.Millisecond)
	start := time.Now()
	th.wait(nil)
	th.wait(nil)
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Fatalf("expected second wait to be delayed, elapsed %s", elapsed)
	}
	if !newThrottle(0).wait(nil) {
		t.Fatal("zero interval throttle should never block")
	}
}
