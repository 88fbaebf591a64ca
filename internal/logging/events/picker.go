package events

import "github.com/atomicstack/widget-remote/internal/logging"

type PickerTracer struct{}

var Picker = PickerTracer{}

func (PickerTracer) Filter(query string, matches int) {
	logging.Trace("picker.filter", map[string]interface{}{"query": query, "matches": matches})
}

func (PickerTracer) Choose(label, class string) {
	logging.Trace("picker.choose", map[string]interface{}{"label": label, "class": class})
}
