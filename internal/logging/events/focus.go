package events

import "github.com/DanielMazurkiewicz/jezarch-sub006/internal/logging"

type FocusTracer struct{}

var Focus = FocusTracer{}

func (FocusTracer) Capture(content, previous string) {
	logging.Trace("focus.capture", map[string]interface{}{
		"content":  content,
		"previous": previous,
	})
}

func (FocusTracer) Initial(target string) {
	logging.Trace("focus.initial", map[string]interface{}{"target": target})
}

func (FocusTracer) TrapWrap(direction, target string) {
	logging.Trace("focus.trap-wrap", map[string]interface{}{
		"direction": direction,
		"target":    target,
	})
}

func (FocusTracer) ForceBack(target string) {
	logging.Trace("focus.force-back", map[string]interface{}{"target": target})
}

func (FocusTracer) Restore(target string, restored bool) {
	logging.Trace("focus.restore", map[string]interface{}{
		"target":   target,
		"restored": restored,
	})
}
