// Package dismiss closes an open primitive when the user interacts
// outside of it. The document-level pointerdown listener is attached only
// after a zero-delay deferral, so the very click that opened the
// primitive can finish dispatching without being read as an outside
// interaction. Elements carrying the ignore marker (and their subtrees)
// never count as outside; a nested listbox portalled out of a dialog's
// body marks itself so clicks inside it keep the dialog open.
package dismiss

import (
	"github.com/DanielMazurkiewicz/jezarch-sub006/internal/logging/events"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/dom"
)

// IgnoreAttr marks an element whose subtree never counts as an outside
// interaction, regardless of which overlay is asking.
const IgnoreAttr = "data-ignore-outside-click"

// MarkIgnored sets the ignore marker on an element.
func MarkIgnored(el dom.Element) {
	if el != nil {
		el.SetAttr(IgnoreAttr, "")
	}
}

// Config describes what counts as "inside" for one open instance.
type Config struct {
	// ID identifies the owning instance in trace output.
	ID string
	// Anchor and Content are looked up per event; nil results are simply
	// not yet available.
	Anchor  func() dom.Element
	Content func() dom.Element
	// OnOutside runs for a qualifying outside interaction.
	OnOutside func()
}

// Detector is the armed outside-interaction watcher of one open
// instance. It owns exactly one pending deferral or one attached
// listener at a time, and Detach retires whichever exists.
type Detector struct {
	doc            dom.Document
	cfg            Config
	cancelArm      func()
	removeListener func()
	detached       bool
}

// Attach queues listener attachment for the next macrotask and returns
// the detector. Detach cancels the attachment if it is still pending.
func Attach(doc dom.Document, cfg Config) *Detector {
	d := &Detector{doc: doc, cfg: cfg}
	d.cancelArm = doc.QueueTask(func() {
		d.cancelArm = nil
		if d.detached {
			return
		}
		d.removeListener = doc.AddListener(dom.PointerDown, d.handlePointerDown)
		events.Dismiss.Armed(cfg.ID)
	})
	return d
}

func (d *Detector) handlePointerDown(e *dom.Event) {
	target := e.Target
	if target == nil {
		return
	}
	if anchor := lookup(d.cfg.Anchor); anchor != nil && anchor.Contains(target) {
		return
	}
	if content := lookup(d.cfg.Content); content != nil && content.Contains(target) {
		return
	}
	if hasIgnoredAncestor(target) {
		events.Dismiss.Ignored(d.cfg.ID, target.ID())
		return
	}
	events.Dismiss.Outside(d.cfg.ID, target.ID())
	if d.cfg.OnOutside != nil {
		d.cfg.OnOutside()
	}
}

// Detach synchronously retires the detector: a still-pending attachment
// is cancelled, an attached listener is removed. Nothing fires
// afterwards. Safe to call more than once.
func (d *Detector) Detach() {
	if d.detached {
		return
	}
	d.detached = true
	pending := d.cancelArm != nil
	if pending {
		d.cancelArm()
		d.cancelArm = nil
	}
	if d.removeListener != nil {
		d.removeListener()
		d.removeListener = nil
	}
	events.Dismiss.Detached(d.cfg.ID, pending)
}

func lookup(ref func() dom.Element) dom.Element {
	if ref == nil {
		return nil
	}
	return ref()
}

// hasIgnoredAncestor walks from target to the root looking for the
// ignore marker. The search is unbounded, so marked subtrees behave as
// inside at any nesting depth.
func hasIgnoredAncestor(target dom.Element) bool {
	for el := target; el != nil; el = el.Parent() {
		if _, ok := el.Attr(IgnoreAttr); ok {
			return true
		}
	}
	return false
}
