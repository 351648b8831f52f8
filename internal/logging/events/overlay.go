package events

import "github.com/DanielMazurkiewicz/jezarch-sub006/internal/logging"

type OverlayTracer struct{}

var Overlay = OverlayTracer{}

func (OverlayTracer) Register(id string, depth int, scrollLock bool) {
	logging.Trace("overlay.register", map[string]interface{}{
		"id":          id,
		"depth":       depth,
		"scroll_lock": scrollLock,
	})
}

func (OverlayTracer) RegisterDuplicate(id string) {
	logging.Trace("overlay.register.duplicate", map[string]interface{}{"id": id})
}

func (OverlayTracer) Unregister(id string, depth int) {
	logging.Trace("overlay.unregister", map[string]interface{}{"id": id, "depth": depth})
}

func (OverlayTracer) UnregisterMissing(id string) {
	logging.Trace("overlay.unregister.missing", map[string]interface{}{"id": id})
}

func (OverlayTracer) EscapeRouted(id string) {
	logging.Trace("overlay.escape", map[string]interface{}{"id": id})
}

func (OverlayTracer) ScrollLock(active bool) {
	logging.Trace("overlay.scroll-lock", map[string]interface{}{"active": active})
}
