// Package focus captures and restores the document's focus around an
// overlay's lifetime, and optionally traps Tab cycling inside modal
// content. Initial focus placement is deferred to the next frame so it
// never fights the triggering click's own focus and paint cycle.
//
// Captures stack per document. Only the topmost capture enforces its
// trap, so a listbox opened inside a modal dialog can take focus without
// the dialog's trap snatching it back; releasing the inner capture
// resumes the outer one.
package focus

import (
	"github.com/DanielMazurkiewicz/jezarch-sub006/internal/logging/events"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/dom"
)

// scopes tracks the capture stack of each document. The topmost entry is
// the only one whose trap guards act.
var scopes = make(map[dom.Document][]*Trap)

func pushScope(doc dom.Document, t *Trap) {
	scopes[doc] = append(scopes[doc], t)
}

func popScope(doc dom.Document, t *Trap) {
	list := scopes[doc]
	for i, s := range list {
		if s == t {
			scopes[doc] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

func (t *Trap) topmost() bool {
	list := scopes[t.doc]
	return len(list) > 0 && list[len(list)-1] == t
}

// Collect returns the focusable descendants of root in document order.
func Collect(root dom.Element) []dom.Element {
	var out []dom.Element
	var walk func(el dom.Element)
	walk = func(el dom.Element) {
		for _, c := range el.Children() {
			if c.Focusable() {
				out = append(out, c)
			}
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return out
}

// Option configures a capture.
type Option func(*Trap)

// WithTrap confines Tab/Shift+Tab cycling to the content and forces focus
// back when it is observed outside entirely. Modal composites pass it.
func WithTrap() Option {
	return func(t *Trap) { t.cycle = true }
}

// WithInitial overrides where the deferred initial focus lands. The func
// is evaluated when the frame runs; a nil result falls back to the first
// focusable, then the content element.
func WithInitial(target func() dom.Element) Option {
	return func(t *Trap) { t.initial = target }
}

// Trap holds the focus bookkeeping of one open overlay: the previously
// focused element, the first/last trap boundaries, and the listeners and
// deferral that must be torn down on release.
type Trap struct {
	doc     dom.Document
	content dom.Element
	prev    dom.Element
	first   dom.Element
	last    dom.Element
	cycle   bool
	initial func() dom.Element

	cancelFrame   func()
	removeKeydown func()
	removeFocusIn func()
	released      bool
}

// Capture records the active element, derives the trap boundaries from
// the content's focusable descendants, and schedules initial focus for
// the next frame (first focusable, else the content element itself).
func Capture(doc dom.Document, content dom.Element, opts ...Option) *Trap {
	t := &Trap{doc: doc, content: content}
	for _, opt := range opts {
		opt(t)
	}
	t.prev = doc.ActiveElement()
	if focusables := Collect(content); len(focusables) > 0 {
		t.first = focusables[0]
		t.last = focusables[len(focusables)-1]
	}
	events.Focus.Capture(elID(content), elID(t.prev))

	t.cancelFrame = doc.RequestFrame(func() {
		var target dom.Element
		if t.initial != nil {
			target = t.initial()
		}
		if target == nil {
			target = t.first
		}
		if target == nil {
			target = t.content
		}
		if target != nil && target.Connected() {
			target.Focus()
			events.Focus.Initial(target.ID())
		}
	})

	if t.cycle {
		t.removeKeydown = doc.AddListener(dom.KeyDown, t.handleKeydown)
		t.removeFocusIn = doc.AddListener(dom.FocusIn, t.handleFocusIn)
	}
	pushScope(doc, t)
	return t
}

func (t *Trap) handleKeydown(e *dom.Event) {
	if e.Key != dom.KeyTab || !t.topmost() {
		return
	}
	active := t.doc.ActiveElement()
	if active == nil || t.content == nil || !t.content.Contains(active) {
		e.Consume()
		t.forceBack()
		return
	}
	if !e.Shift && active == t.last {
		e.Consume()
		t.focusBoundary(t.first, "forward")
	} else if e.Shift && active == t.first {
		e.Consume()
		t.focusBoundary(t.last, "backward")
	}
	// Between the boundaries the host's own Tab stepping applies.
}

func (t *Trap) handleFocusIn(e *dom.Event) {
	if !t.topmost() {
		return
	}
	if e.Target == nil || t.content == nil || t.content.Contains(e.Target) {
		return
	}
	t.forceBack()
}

func (t *Trap) focusBoundary(target dom.Element, direction string) {
	if target == nil || !target.Connected() {
		return
	}
	target.Focus()
	events.Focus.TrapWrap(direction, target.ID())
}

func (t *Trap) forceBack() {
	target := t.first
	if target == nil || !target.Connected() {
		target = t.content
	}
	if target == nil || !target.Connected() {
		return
	}
	target.Focus()
	events.Focus.ForceBack(target.ID())
}

// Release cancels the pending initial-focus frame, removes the trap
// listeners, pops the capture off the document's stack, and restores
// focus to the previously focused element iff it is still connected.
// Safe to call more than once.
func (t *Trap) Release() {
	if t.released {
		return
	}
	t.released = true
	if t.cancelFrame != nil {
		t.cancelFrame()
	}
	if t.removeKeydown != nil {
		t.removeKeydown()
	}
	if t.removeFocusIn != nil {
		t.removeFocusIn()
	}
	// Pop before restoring so the resumed capture sees the restore
	// target as its own.
	popScope(t.doc, t)
	restored := false
	if t.prev != nil && t.prev.Connected() {
		t.prev.Focus()
		restored = true
	}
	events.Focus.Restore(elID(t.prev), restored)
}

func elID(el dom.Element) string {
	if el == nil {
		return ""
	}
	return el.ID()
}
