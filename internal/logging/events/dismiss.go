package events

import "github.com/DanielMazurkiewicz/jezarch-sub006/internal/logging"

type DismissTracer struct{}

var Dismiss = DismissTracer{}

func (DismissTracer) Armed(id string) {
	logging.Trace("dismiss.armed", map[string]interface{}{"id": id})
}

func (DismissTracer) Outside(id, target string) {
	logging.Trace("dismiss.outside", map[string]interface{}{"id": id, "target": target})
}

func (DismissTracer) Ignored(id, target string) {
	logging.Trace("dismiss.ignored", map[string]interface{}{"id": id, "target": target})
}

func (DismissTracer) Detached(id string, pending bool) {
	logging.Trace("dismiss.detached", map[string]interface{}{"id": id, "pending": pending})
}
