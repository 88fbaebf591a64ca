package events

import "github.com/atomicstack/widget-remote/internal/logging"

type RequestTracer struct{}

var Request = RequestTracer{}

func (RequestTracer) Received(id, method, path, query string) {
	logging.Trace("request.received", map[string]interface{}{
		"id":     id,
		"method": method,
		"path":   path,
		"query":  query,
	})
}

func (RequestTracer) Completed(id string, status int, bytes int) {
	logging.Trace("request.completed", map[string]interface{}{"id": id, "status": status, "bytes": bytes})
}
