// Package backend runs the background work that keeps the host UI in step
// with remote actions.
package backend

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/atomicstack/widget-remote/internal/logging/events"
)

// Pump coalesces redraw requests and flushes them at most once per
// interval. Requests made while a flush is pending are merged into it.
type Pump struct {
	flush    func()
	throttle *throttle

	ctx    context.Context
	cancel context.CancelFunc

	requests chan struct{}
	pending  atomic.Int64
	flushes  atomic.Int64
	wg       sync.WaitGroup
}

// NewPump starts a pump calling flush from its own goroutine.
func NewPump(interval time.Duration, flush func()) *Pump {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pump{
		flush:    flush,
		throttle: newThrottle(interval),
		ctx:      ctx,
		cancel:   cancel,
		requests: make(chan struct{}, 1),
	}
	p.wg.Add(1)
	go p.run()
	return p
}

// Request schedules a redraw. It never blocks.
func (p *Pump) Request() {
	p.pending.Add(1)
	select {
	case p.requests <- struct{}{}:
	default:
	}
}

// Flushes reports how many times flush has run.
func (p *Pump) Flushes() int64 {
	return p.flushes.Load()
}

// Stop cancels the pump. A pending redraw is dropped.
func (p *Pump) Stop() {
	p.cancel()
}

// Wait blocks until the pump goroutine has exited.
func (p *Pump) Wait() {
	p.wg.Wait()
}

func (p *Pump) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case <-p.requests:
			if !p.throttle.wait(p.ctx.Done()) {
				return
			}
			coalesced := p.pending.Swap(0)
			if p.flush != nil {
				p.flush()
			}
			p.flushes.Add(1)
			events.Redraw.Flush(int(coalesced))
		}
	}
}
