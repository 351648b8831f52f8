package primitive

import (
	"fmt"

	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/cell"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/dom"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/focus"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/overlay"
)

// DialogConfig configures a modal dialog.
type DialogConfig struct {
	Doc dom.Document
	// Manager defaults to the document's shared overlay manager.
	Manager *overlay.Manager

	// Open puts the dialog in controlled mode; DefaultOpen seeds
	// uncontrolled mode and is ignored when Open is set.
	Open         func() bool
	DefaultOpen  bool
	OnOpenChange func(bool)
	Disabled     func() bool

	// Trigger and Content are looked up per operation; nil results mean
	// "not mounted yet".
	Trigger func() dom.Element
	Content func() dom.Element
}

// Dialog is the modal overlay composite: scroll-locking, focus-trapping,
// dismissed by Escape, outside interaction or an explicit Close.
type Dialog struct {
	// ContentID, TitleID and DescriptionID are stable generated ids the
	// host assigns to its content, title and description elements so the
	// aria-controls/labelledby/describedby wiring resolves.
	ContentID     string
	TitleID       string
	DescriptionID string

	core   overlayCore
	unbind func()
}

// NewDialog builds a dialog. The dialog does not open during
// construction; call Sync once the refs resolve to honor DefaultOpen or
// an already-true controlled value.
func NewDialog(cfg DialogConfig) (*Dialog, error) {
	if cfg.Doc == nil {
		return nil, fmt.Errorf("%w: dialog requires a document", ErrConfiguration)
	}
	mgr := cfg.Manager
	if mgr == nil {
		mgr = overlay.For(cfg.Doc)
	}

	id := newID("dialog")
	d := &Dialog{
		ContentID:     id + "-content",
		TitleID:       id + "-title",
		DescriptionID: id + "-description",
	}

	opts := []cell.Option[bool]{cell.WithGuard(cell.OpenGuard(cfg.Disabled))}
	if cfg.Open != nil {
		opts = append(opts, cell.WithExternal(cfg.Open))
	}
	if cfg.OnOpenChange != nil {
		opts = append(opts, cell.WithOnChange(cfg.OnOpenChange))
	}

	d.core = overlayCore{
		id:         id,
		kind:       "dialog",
		doc:        cfg.Doc,
		mgr:        mgr,
		open:       cell.New(cfg.DefaultOpen, opts...),
		modal:      true,
		trapOpts:   []focus.Option{focus.WithTrap()},
		anchorRef:  cfg.Trigger,
		contentRef: cfg.Content,
	}
	d.core.onOpened = d.applyAria
	d.unbind = d.core.bind()
	return d, nil
}

// ID returns the stable instance id.
func (d *Dialog) ID() string { return d.core.id }

// Open requests the open state. A no-op while Disabled reports true.
func (d *Dialog) Open() { d.core.open.Set(true) }

// Close requests the closed state.
func (d *Dialog) Close() { d.core.open.Set(false) }

// Toggle flips the open state.
func (d *Dialog) Toggle() {
	d.core.open.Update(func(v bool) bool { return !v })
}

// IsOpen reports the requested open state, which in controlled mode may
// lead the phase until the host syncs.
func (d *Dialog) IsOpen() bool { return d.core.open.Get() }

// Phase reports the lifecycle phase.
func (d *Dialog) Phase() Phase { return d.core.phase }

// Sync reconciles the phase with the open state. Controlled hosts call
// it after changing their external value; uncontrolled hosts call it
// once after mounting refs when DefaultOpen is set.
func (d *Dialog) Sync() { d.core.sync() }

// Unmount force-closes and detaches from the open cell. Nothing fires
// afterwards.
func (d *Dialog) Unmount() {
	if d.unbind != nil {
		d.unbind()
		d.unbind = nil
	}
	d.core.teardown()
}

func (d *Dialog) applyAria() {
	if content := deref(d.core.contentRef); content != nil {
		content.SetAttr("role", "dialog")
		content.SetAttr("aria-modal", "true")
		content.SetAttr("aria-labelledby", d.TitleID)
		content.SetAttr("aria-describedby", d.DescriptionID)
	}
	if trigger := deref(d.core.anchorRef); trigger != nil {
		trigger.SetAttr("aria-haspopup", "dialog")
		trigger.SetAttr("aria-controls", d.ContentID)
	}
}
