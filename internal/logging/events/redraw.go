package events

import "github.com/atomicstack/widget-remote/internal/logging"

type RedrawTracer struct{}

var Redraw = RedrawTracer{}

func (RedrawTracer) Flush(pending int) {
	logging.Trace("redraw.flush", map[string]interface{}{"coalesced": pending})
}
