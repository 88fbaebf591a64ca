// Package dispatcher turns remote requests into widget actions. It locates
// the target widget in the open dialog, checks that the requested action is
// legal for the widget's kind, runs it and reports an HTTP-like status with a
// diagnostic body.
//
// The dispatcher does not synchronise with the UI. Callers must invoke
// Handle and Do on the thread that owns the widgets (see internal/command).
package dispatcher

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atomicstack/widget-remote/internal/logging"
	"github.com/atomicstack/widget-remote/internal/logging/events"
	"github.com/atomicstack/widget-remote/internal/widget"
	"github.com/rs/zerolog"
)

// Action names accepted on the wire. Matching is case-sensitive.
type Action string

const (
	ActionPress     Action = "press"
	ActionCheck     Action = "check"
	ActionUncheck   Action = "uncheck"
	ActionToggle    Action = "toggle"
	ActionEnterText Action = "enter_text"
	ActionSelect    Action = "select"
)

// Actions lists every known action in a stable order.
func Actions() []Action {
	return []Action{ActionPress, ActionCheck, ActionUncheck, ActionToggle, ActionEnterText, ActionSelect}
}

// Request is a single remote action invocation.
type Request struct {
	Criteria widget.Criteria
	// Action is nil when the client did not send one.
	Action *string
	Params Params
}

// Params are the per-action arguments. Value is empty when absent.
type Params struct {
	Value  string
	Column int
}

type Dispatcher struct {
	locator widget.Locator
	log     zerolog.Logger
}

func New(locator widget.Locator) *Dispatcher {
	return &Dispatcher{locator: locator, log: logging.Logger("dispatcher")}
}

// Handle resolves the request's target widget and performs its action.
func (d *Dispatcher) Handle(req Request) Result {
	if !d.locator.HasDialog() {
		return failure(ErrNoDialogOpen)
	}

	widgets := d.candidates(req.Criteria)
	if len(widgets) == 0 {
		return failure(ErrWidgetNotFound)
	}
	if req.Action == nil {
		return failure(ErrMissingAction)
	}
	if len(widgets) != 1 {
		d.log.Warn().Int("candidates", len(widgets)).Str("action", *req.Action).Msg("refusing ambiguous action")
		return failure(ErrAmbiguousSelection)
	}

	var body strings.Builder
	status, err := d.Do(widgets[0], *req.Action, req.Params, &body)
	return Result{
		Status: status,
		Body:   body.String(),
		Redraw: status == StatusOK,
		Err:    err,
	}
}

func (d *Dispatcher) candidates(c widget.Criteria) []widget.Widget {
	if c.IsZero() {
		return d.locator.All()
	}
	return d.locator.Find(c)
}

// Do performs action on w, writing diagnostics to body.
func (d *Dispatcher) Do(w widget.Widget, action string, params Params, body io.Writer) (Status, error) {
	d.log.Debug().Str("action", action).Str("class", w.Class()).Msg("starting action")

	var (
		status Status
		err    error
	)
	switch Action(action) {
	case ActionPress:
		status, err = d.press(w, params, body)
	case ActionCheck:
		status, err = d.check(w, params, body)
	case ActionUncheck:
		status, err = d.uncheck(w, params, body)
	case ActionToggle:
		status, err = d.toggle(w, params, body)
	case ActionEnterText:
		status, err = d.enterText(w, params, body)
	case ActionSelect:
		status, err = d.selectItem(w, params, body)
	default:
		writeJSONError(body, msgUnknownAction)
		status, err = StatusNotFound, ErrUnknownAction
	}
	if status == StatusNotFound && err == nil {
		// the widget reported a kind whose capability it does not implement
		status, err = unsupported(w, body)
	}
	if err != nil {
		events.Action.Error(action, err)
		d.log.Info().Err(err).Str("action", action).Str("class", w.Class()).Msg("action failed")
	}
	return status, err
}

// withWidgetAs runs op against w viewed as capability T. A widget that does
// not provide T yields StatusNotFound and a nil error; Do reports it as
// unsupported.
func withWidgetAs[T any](w widget.Widget, op func(T) error) (Status, error) {
	view, ok := w.(T)
	if !ok {
		return StatusNotFound, nil
	}
	if err := op(view); err != nil {
		return StatusNotFound, err
	}
	return StatusOK, nil
}

func unsupported(w widget.Widget, body io.Writer) (Status, error) {
	writeLine(body, fmt.Sprintf(msgUnsupported, w.Class()))
	return StatusNotFound, newError(CodeUnsupportedActionForType, msgUnsupported, w.Class()).
		WithDetail("class", w.Class())
}

// unhandledKind is reached only when an action's kind switch misses a case.
// The client sees the unsupported message and the error carries the
// unhandled_kind detail.
func unhandledKind(w widget.Widget, body io.Writer) (Status, error) {
	status, err := unsupported(w, body)
	var de *Error
	if errors.As(err, &de) {
		de.WithDetail(detailUnhandledKind, w.Kind().String())
	}
	return status, err
}

func (d *Dispatcher) performed(action Action, w widget.Widget, label string) {
	d.log.Info().Str("action", string(action)).Str("class", w.Class()).Str("label", label).Msg("performing action")
	events.Action.Performed(string(action), w.Class(), label)
}

func (d *Dispatcher) skipped(action Action, w widget.Widget) {
	d.log.Debug().Str("action", string(action)).Str("class", w.Class()).Str("label", w.Label()).Msg("widget already in requested state")
	events.Action.Skipped(string(action), w.Class(), w.Label())
}
