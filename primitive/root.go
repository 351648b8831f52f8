package primitive

import (
	"github.com/DanielMazurkiewicz/jezarch-sub006/internal/logging/events"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/cell"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/dismiss"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/dom"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/focus"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/overlay"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/portal"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/position"
)

const (
	stateOpen   = "open"
	stateClosed = "closed"
)

// overlayCore is the lifecycle machinery shared by Dialog, Popover and
// Select: one open cell, one phase, and the portal/overlay/focus/dismiss
// bookkeeping that brackets the open window. Composites configure it and
// layer their own behavior through the onOpened/onClosed hooks.
type overlayCore struct {
	id   string
	kind string
	doc  dom.Document
	mgr  *overlay.Manager

	open  *cell.Cell[bool]
	phase Phase

	modal       bool
	markIgnored bool
	trapOpts    []focus.Option

	anchorRef  func() dom.Element
	contentRef func() dom.Element

	onOpened func()
	onClosed func()

	trap      *focus.Trap
	det       *dismiss.Detector
	unmountFn func()
}

// bind subscribes the core to its own open cell so accepted open-state
// changes reconcile immediately. Returns the unsubscribe func.
func (c *overlayCore) bind() func() {
	return c.open.Subscribe(func(v bool) {
		events.Primitive.OpenChange(c.id, v, c.open.Controlled())
		c.sync()
	})
}

// sync reconciles the phase with the open cell. Controlled hosts call it
// (via the composite's Sync) after mutating their external value, and
// after DefaultOpen construction once the refs resolve.
func (c *overlayCore) sync() {
	want := c.open.Get()
	switch {
	case want && c.phase == PhaseClosed:
		c.doOpen()
	case !want && c.phase == PhaseOpen:
		c.doClose()
	}
}

// requestClose asks the cell to close. In controlled mode this only
// reports through onChange; the phase follows once the host's value
// actually flips.
func (c *overlayCore) requestClose() {
	c.open.Set(false)
}

func (c *overlayCore) doOpen() {
	content := deref(c.contentRef)
	if content == nil {
		// Not yet available; a later sync retries once the host has
		// mounted the content element.
		return
	}
	c.transition(PhaseOpening)

	c.unmountFn = portal.Mount(c.doc, content)
	if c.markIgnored {
		dismiss.MarkIgnored(content)
	}

	var regOpts []overlay.Option
	if c.modal {
		regOpts = append(regOpts, overlay.WithScrollLock())
	}
	c.mgr.Register(c.id, c.requestClose, regOpts...)

	c.trap = focus.Capture(c.doc, content, c.trapOpts...)
	c.det = dismiss.Attach(c.doc, dismiss.Config{
		ID:        c.id,
		Anchor:    c.anchorRef,
		Content:   c.contentRef,
		OnOutside: c.requestClose,
	})

	c.applyState(stateOpen)
	c.transition(PhaseOpen)
	if c.onOpened != nil {
		c.onOpened()
	}
}

func (c *overlayCore) doClose() {
	c.transition(PhaseClosing)

	if c.det != nil {
		c.det.Detach()
		c.det = nil
	}
	if c.trap != nil {
		c.trap.Release()
		c.trap = nil
	}
	c.mgr.Unregister(c.id)
	if c.unmountFn != nil {
		c.unmountFn()
		c.unmountFn = nil
	}

	c.applyState(stateClosed)
	c.transition(PhaseClosed)
	if c.onClosed != nil {
		c.onClosed()
	}
}

// teardown force-closes without going through the cell, for Unmount.
// Everything pending (the initial-focus frame, the detector arming task)
// is cancelled synchronously inside doClose.
func (c *overlayCore) teardown() {
	if c.phase == PhaseOpen {
		c.doClose()
	}
}

func (c *overlayCore) transition(to Phase) {
	from := c.phase
	c.phase = to
	events.Primitive.Phase(c.id, c.kind, from.String(), to.String())
}

// reposition recomputes anchored placement while open and mirrors the
// resolved side/align into the content's data attributes.
func (c *overlayCore) reposition(spec position.Spec) (position.Placement, bool) {
	anchor := deref(c.anchorRef)
	if anchor == nil || c.phase != PhaseOpen {
		return position.Placement{}, false
	}
	pl := position.Compute(anchor.Rect(), c.doc.Viewport(), spec)
	if content := deref(c.contentRef); content != nil {
		content.SetAttr("data-side", string(pl.Side))
		content.SetAttr("data-align", string(pl.Align))
	}
	return pl, true
}

func (c *overlayCore) applyState(state string) {
	if anchor := deref(c.anchorRef); anchor != nil {
		anchor.SetAttr("data-state", state)
		anchor.SetAttr("aria-expanded", boolAttr(state == stateOpen))
	}
	if content := deref(c.contentRef); content != nil {
		content.SetAttr("data-state", state)
	}
}

func deref(ref func() dom.Element) dom.Element {
	if ref == nil {
		return nil
	}
	return ref()
}

func boolAttr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
