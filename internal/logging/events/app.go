package events

import "github.com/atomicstack/nui-context-menu/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Transport(name, detail string) {
	logging.Trace("app.transport", map[string]interface{}{"transport": name, "detail": detail})
}
