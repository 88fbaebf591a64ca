package events

import "github.com/atomicstack/widget-remote/internal/logging"

type CommandTracer struct{}

var Command = CommandTracer{}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label string, status int, redraw bool) {
	logging.Trace("command.result", map[string]interface{}{
		"id":     id,
		"label":  label,
		"status": status,
		"redraw": redraw,
	})
}
