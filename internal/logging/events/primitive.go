package events

import "github.com/DanielMazurkiewicz/jezarch-sub006/internal/logging"

type PrimitiveTracer struct{}

type SelectTracer struct{}

type CommandTracer struct{}

type TabsTracer struct{}

var (
	Primitive = PrimitiveTracer{}
	Select    = SelectTracer{}
	Command   = CommandTracer{}
	Tabs      = TabsTracer{}
)

func (PrimitiveTracer) Phase(id, kind, from, to string) {
	logging.Trace("primitive.phase", map[string]interface{}{
		"id":   id,
		"kind": kind,
		"from": from,
		"to":   to,
	})
}

func (PrimitiveTracer) OpenChange(id string, open, controlled bool) {
	logging.Trace("primitive.open-change", map[string]interface{}{
		"id":         id,
		"open":       open,
		"controlled": controlled,
	})
}

func (SelectTracer) Selection(id, value string, selected bool) {
	logging.Trace("select.selection", map[string]interface{}{
		"id":       id,
		"value":    value,
		"selected": selected,
	})
}

func (SelectTracer) UnknownValue(id, value string) {
	logging.Trace("select.unknown-value", map[string]interface{}{"id": id, "value": value})
}

func (CommandTracer) Filter(id, query string, visible int) {
	logging.Trace("command.filter", map[string]interface{}{
		"id":      id,
		"query":   query,
		"visible": visible,
	})
}

func (CommandTracer) BestMatch(id string, index int) {
	logging.Trace("command.best-match", map[string]interface{}{"id": id, "index": index})
}

func (TabsTracer) Activate(id, value string) {
	logging.Trace("tabs.activate", map[string]interface{}{"id": id, "value": value})
}
