package events

import "github.com/atomicstack/widget-remote/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Listen(addr string, headless bool) {
	logging.Trace("app.listen", map[string]interface{}{"addr": addr, "headless": headless})
}

func (AppTracer) Stop(reason string) {
	logging.Trace("app.stop", map[string]interface{}{"reason": reason})
}
