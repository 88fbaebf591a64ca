// Package command runs dispatches on the host UI thread.
package command

import (
	"strings"
	"sync"

	"github.com/atomicstack/widget-remote/internal/dispatcher"
	"github.com/atomicstack/widget-remote/internal/logging/events"
	"github.com/atomicstack/widget-remote/internal/widget"
	"github.com/google/uuid"
)

// Runner executes fn on the thread owning the widgets and returns once fn
// has completed.
type Runner interface {
	Do(fn func())
}

// Host is a widget toolkit: it exposes the open dialog and a UI thread.
type Host interface {
	widget.Locator
	Runner
}

// Bus serialises requests: one dispatch at a time, each on the host thread.
type Bus struct {
	mu         sync.Mutex
	runner     Runner
	dispatcher *dispatcher.Dispatcher
	redraw     func()
}

// New creates a bus for host. redraw, when non-nil, is called after every
// request whose Result asks for one.
func New(host Host, redraw func()) *Bus {
	return &Bus{
		runner:     host,
		dispatcher: dispatcher.New(host),
		redraw:     redraw,
	}
}

// Execute performs req and returns its result. The returned id identifies
// the request in trace logs.
func (b *Bus) Execute(req dispatcher.Request) (string, dispatcher.Result) {
	id := uuid.NewString()
	label := describe(req)
	events.Command.Queue(id, label)

	b.mu.Lock()
	var res dispatcher.Result
	ran := false
	b.runner.Do(func() {
		res = b.dispatcher.Handle(req)
		ran = true
	})
	b.mu.Unlock()
	if !ran {
		res = dispatcher.Unavailable()
	}

	events.Command.Result(id, label, int(res.Status), res.Redraw)
	if res.Redraw && b.redraw != nil {
		b.redraw()
	}
	return id, res
}

// Describe dumps the widgets matching c without mutating anything.
func (b *Bus) Describe(c widget.Criteria) (string, dispatcher.Result) {
	id := uuid.NewString()
	label := "describe " + criteriaLabel(c)
	events.Command.Queue(id, label)

	b.mu.Lock()
	var res dispatcher.Result
	ran := false
	b.runner.Do(func() {
		res = b.dispatcher.Describe(c)
		ran = true
	})
	b.mu.Unlock()
	if !ran {
		res = dispatcher.Unavailable()
	}

	events.Command.Result(id, label, int(res.Status), false)
	return id, res
}

func describe(req dispatcher.Request) string {
	action := "<none>"
	if req.Action != nil {
		action = *req.Action
	}
	return action + " " + criteriaLabel(req.Criteria)
}

func criteriaLabel(c widget.Criteria) string {
	if c.IsZero() {
		return "*"
	}
	var parts []string
	if c.Label != nil {
		parts = append(parts, "label="+*c.Label)
	}
	if c.ID != nil {
		parts = append(parts, "id="+*c.ID)
	}
	if c.Type != nil {
		parts = append(parts, "type="+*c.Type)
	}
	return strings.Join(parts, ",")
}
