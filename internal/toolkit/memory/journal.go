package memory

import (
	"strings"
	"sync"
)

// Event is one observable side effect on a widget.
type Event struct {
	Widget string
	Op     string
	Detail string
}

func (e Event) String() string {
	if e.Detail == "" {
		return e.Widget + ":" + e.Op
	}
	return e.Widget + ":" + e.Op + "(" + e.Detail + ")"
}

// Journal records widget side effects in order.
type Journal struct {
	mu     sync.Mutex
	events []Event
}

func (j *Journal) record(widget, op, detail string) {
	if j == nil {
		return
	}
	j.mu.Lock()
	j.events = append(j.events, Event{Widget: widget, Op: op, Detail: detail})
	j.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (j *Journal) Events() []Event {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]Event(nil), j.events...)
}

// Ops renders events as "widget:op(detail)" strings, which reads well in
// test failures.
func (j *Journal) Ops() []string {
	events := j.Events()
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.String()
	}
	return out
}

// Last returns the most recent event, if any.
func (j *Journal) Last() (Event, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if len(j.events) == 0 {
		return Event{}, false
	}
	return j.events[len(j.events)-1], true
}

// Reset discards recorded events.
func (j *Journal) Reset() {
	j.mu.Lock()
	j.events = nil
	j.mu.Unlock()
}

func (j *Journal) String() string {
	return strings.Join(j.Ops(), " ")
}
