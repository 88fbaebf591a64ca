// Package tviewkit renders a dialog in the terminal with tview. Widget state
// lives in a memory host; every mutation and redraw is funnelled through the
// tview event loop so the screen and the widgets never race.
package tviewkit

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/atomicstack/widget-remote/internal/layout"
	"github.com/atomicstack/widget-remote/internal/logging"
	"github.com/atomicstack/widget-remote/internal/toolkit/memory"
)

// Host satisfies widget.Locator through the embedded memory host and
// command.Runner through the tview event loop.
type Host struct {
	*memory.Host

	app  *tview.Application
	view *view

	mu      sync.Mutex
	running bool
	stopped chan struct{}

	// direct serialises Do callers while the event loop is not running.
	direct sync.Mutex
}

// New wraps an already opened memory host.
func New(state *memory.Host) *Host {
	h := &Host{
		Host:    state,
		app:     tview.NewApplication(),
		view:    newView(" " + state.Title() + " "),
		stopped: make(chan struct{}),
	}
	h.app.SetRoot(h.view.root, true).
		SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
			if event.Key() == tcell.KeyEscape || event.Rune() == 'q' {
				h.app.Stop()
				return nil
			}
			return event
		})
	h.refresh()
	return h
}

// FromLayout opens a dialog built from d and wraps it.
func FromLayout(d layout.Dialog) (*Host, error) {
	state, err := memory.FromLayout(d)
	if err != nil {
		return nil, err
	}
	return New(state), nil
}

// SetScreen replaces the terminal screen. Call before Run.
func (h *Host) SetScreen(screen tcell.Screen) {
	h.app.SetScreen(screen)
}

// Run drives the event loop until ctx is done or the user quits.
func (h *Host) Run(ctx context.Context) error {
	h.mu.Lock()
	h.running = true
	h.mu.Unlock()

	log := logging.Logger("tview")
	log.Debug().Str("title", h.Title()).Msg("starting event loop")

	go func() {
		select {
		case <-ctx.Done():
			h.app.Stop()
		case <-h.stopped:
		}
	}()

	err := h.app.Run()

	h.mu.Lock()
	h.running = false
	h.mu.Unlock()
	close(h.stopped)

	log.Debug().Err(err).Msg("event loop finished")
	return err
}

// Stop ends Run.
func (h *Host) Stop() {
	h.app.Stop()
}

// Done is closed once Run has returned.
func (h *Host) Done() <-chan struct{} {
	return h.stopped
}

func (h *Host) isRunning() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.running
}

// Do executes fn on the event loop and waits for it. Before Run starts or
// after it returns fn runs on the caller's goroutine instead. If the loop
// stops while fn is still queued, fn is dropped.
func (h *Host) Do(fn func()) {
	if !h.isRunning() {
		h.direct.Lock()
		defer h.direct.Unlock()
		fn()
		return
	}
	done := make(chan struct{})
	go h.app.QueueUpdate(func() {
		fn()
		close(done)
	})
	select {
	case <-done:
	case <-h.stopped:
	}
}

// Redraw refreshes the mirrored widget table and repaints the screen.
func (h *Host) Redraw() {
	h.Host.Redraw()
	if !h.isRunning() {
		h.direct.Lock()
		defer h.direct.Unlock()
		h.refresh()
		return
	}
	done := make(chan struct{})
	go h.app.QueueUpdateDraw(func() {
		h.refresh()
		close(done)
	})
	select {
	case <-done:
	case <-h.stopped:
	}
}

func (h *Host) refresh() {
	last, ok := h.Journal().Last()
	h.view.render(h.All(), last, ok)
}

// Status returns the status line text without color tags.
func (h *Host) Status() string {
	var text string
	h.Do(func() { text = h.view.status.GetText(true) })
	return text
}

// Cell returns the text of a widget table cell; row 0 is the header.
func (h *Host) Cell(row, col int) string {
	var text string
	h.Do(func() { text = h.view.table.GetCell(row, col).Text })
	return text
}
