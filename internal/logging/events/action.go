package events

import "github.com/atomicstack/widget-remote/internal/logging"

type ActionTracer struct{}

var Action = ActionTracer{}

func (ActionTracer) Performed(action, class, label string) {
	logging.Trace("action.performed", map[string]interface{}{
		"action": action,
		"class":  class,
		"label":  label,
	})
}

// Skipped records an action that left the widget untouched, e.g. checking
// an already checked box.
func (ActionTracer) Skipped(action, class, label string) {
	logging.Trace("action.skipped", map[string]interface{}{
		"action": action,
		"class":  class,
		"label":  label,
	})
}

func (ActionTracer) Error(action string, err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"action": action, "error": err.Error()})
}
