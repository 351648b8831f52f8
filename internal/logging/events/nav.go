package events

import "github.com/DanielMazurkiewicz/jezarch-sub006/internal/logging"

type NavTracer struct{}

var Nav = NavTracer{}

func (NavTracer) Move(container string, from, to int) {
	logging.Trace("nav.move", map[string]interface{}{
		"container": container,
		"from":      from,
		"to":        to,
	})
}

func (NavTracer) TypeAhead(container, char string, from, to int) {
	logging.Trace("nav.typeahead", map[string]interface{}{
		"container": container,
		"char":      char,
		"from":      from,
		"to":        to,
	})
}

func (NavTracer) Activate(container, value string, index int) {
	logging.Trace("nav.activate", map[string]interface{}{
		"container": container,
		"value":     value,
		"index":     index,
	})
}
