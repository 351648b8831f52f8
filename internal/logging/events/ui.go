package events

import "github.com/DanielMazurkiewicz/jezarch-sub006/internal/logging"

type UITracer struct{}

var UI = UITracer{}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (UITracer) WidgetFocus(widget string) {
	logging.Trace("ui.widget-focus", map[string]interface{}{"widget": widget})
}

func (UITracer) FieldChange(field, value string) {
	logging.Trace("ui.field-change", map[string]interface{}{"field": field, "value": value})
}

func (UITracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("ui.error", map[string]interface{}{"error": err.Error()})
}
