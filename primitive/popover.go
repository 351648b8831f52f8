package primitive

import (
	"fmt"

	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/cell"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/dom"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/overlay"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/position"
)

// PopoverConfig configures an anchored non-modal overlay.
type PopoverConfig struct {
	Doc     dom.Document
	Manager *overlay.Manager

	Open         func() bool
	DefaultOpen  bool
	OnOpenChange func(bool)
	Disabled     func() bool

	Anchor  func() dom.Element
	Content func() dom.Element

	// Position is resolved against the anchor on every open and
	// Reposition call. The zero value means below the anchor, start
	// aligned, intrinsic width.
	Position position.Spec
}

// Popover floats content next to its anchor. It captures and restores
// focus but does not trap Tab or lock scrolling; Escape and outside
// interaction dismiss it.
type Popover struct {
	// ContentID is the stable generated id the host assigns to the
	// content element for aria-controls wiring.
	ContentID string

	core      overlayCore
	spec      position.Spec
	placement position.Placement
	placed    bool
	unbind    func()
}

// NewPopover builds a popover. Like every composite it never opens
// during construction.
func NewPopover(cfg PopoverConfig) (*Popover, error) {
	if cfg.Doc == nil {
		return nil, fmt.Errorf("%w: popover requires a document", ErrConfiguration)
	}
	mgr := cfg.Manager
	if mgr == nil {
		mgr = overlay.For(cfg.Doc)
	}

	id := newID("popover")
	p := &Popover{ContentID: id + "-content", spec: cfg.Position}

	opts := []cell.Option[bool]{cell.WithGuard(cell.OpenGuard(cfg.Disabled))}
	if cfg.Open != nil {
		opts = append(opts, cell.WithExternal(cfg.Open))
	}
	if cfg.OnOpenChange != nil {
		opts = append(opts, cell.WithOnChange(cfg.OnOpenChange))
	}

	p.core = overlayCore{
		id:          id,
		kind:        "popover",
		doc:         cfg.Doc,
		mgr:         mgr,
		open:        cell.New(cfg.DefaultOpen, opts...),
		markIgnored: true,
		anchorRef:   cfg.Anchor,
		contentRef:  cfg.Content,
	}
	p.core.onOpened = p.opened
	p.core.onClosed = func() { p.placed = false }
	p.unbind = p.core.bind()
	return p, nil
}

// ID returns the stable instance id.
func (p *Popover) ID() string { return p.core.id }

// Open requests the open state. A no-op while Disabled reports true.
func (p *Popover) Open() { p.core.open.Set(true) }

// Close requests the closed state.
func (p *Popover) Close() { p.core.open.Set(false) }

// Toggle flips the open state.
func (p *Popover) Toggle() {
	p.core.open.Update(func(v bool) bool { return !v })
}

// IsOpen reports the requested open state.
func (p *Popover) IsOpen() bool { return p.core.open.Get() }

// Phase reports the lifecycle phase.
func (p *Popover) Phase() Phase { return p.core.phase }

// Sync reconciles the phase with the open state.
func (p *Popover) Sync() { p.core.sync() }

// Unmount force-closes and detaches from the open cell.
func (p *Popover) Unmount() {
	if p.unbind != nil {
		p.unbind()
		p.unbind = nil
	}
	p.core.teardown()
}

// Placement returns the placement computed by the last open or
// Reposition, and whether one is current.
func (p *Popover) Placement() (position.Placement, bool) {
	return p.placement, p.placed
}

// Reposition recomputes placement from the anchor's current rectangle,
// for hosts whose anchor moved while open. The result lands in
// Placement and in the content's data-side/data-align attributes.
func (p *Popover) Reposition() (position.Placement, bool) {
	pl, ok := p.core.reposition(p.spec)
	if !ok {
		return position.Placement{}, false
	}
	p.placement = pl
	p.placed = true
	return pl, true
}

func (p *Popover) opened() {
	p.Reposition()
	if content := deref(p.core.contentRef); content != nil {
		content.SetAttr("role", "dialog")
	}
	if anchor := deref(p.core.anchorRef); anchor != nil {
		anchor.SetAttr("aria-haspopup", "dialog")
		anchor.SetAttr("aria-controls", p.ContentID)
	}
}
