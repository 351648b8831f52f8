package primitive

import (
	"fmt"
	"strings"

	"github.com/DanielMazurkiewicz/jezarch-sub006/internal/logging/events"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/cell"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/dom"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/focus"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/keynav"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/overlay"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/position"
)

// DefaultListboxMinWidth is the width floor applied to a select listbox
// when the config provides none.
const DefaultListboxMinWidth = 200

// maxInlineLabels is how many selections a multi-select trigger spells
// out before collapsing to a count.
const maxInlineLabels = 3

// SelectConfig configures a select.
type SelectConfig struct {
	Doc     dom.Document
	Manager *overlay.Manager

	Open         func() bool
	DefaultOpen  bool
	OnOpenChange func(bool)
	Disabled     func() bool

	// Single-value state. Value puts the selection in controlled mode.
	Value         func() string
	DefaultValue  string
	OnValueChange func(string)

	// Multiple switches to multi-select: activating an option toggles
	// its membership and the listbox stays open.
	Multiple       bool
	Values         func() []string
	DefaultValues  []string
	OnValuesChange func([]string)

	// Placeholder is rendered by TriggerLabel while nothing (or nothing
	// known) is selected.
	Placeholder string

	Trigger func() dom.Element
	Listbox func() dom.Element

	// Position defaults to below the trigger at the trigger's width,
	// floored at DefaultListboxMinWidth.
	Position position.Spec
}

// Select is the listbox composite: a floating option list anchored to
// its trigger, matched to the trigger's width, with roving keyboard
// navigation. The trigger reflects the selection's rendered label
// through the option registry, never the raw value.
type Select struct {
	// TriggerID and ListboxID are stable generated ids for the host's
	// trigger and listbox elements.
	TriggerID string
	ListboxID string

	core        overlayCore
	registry    *optionRegistry
	multiple    bool
	placeholder string

	single *cell.Cell[string]
	multi  *cell.Cell[[]string]

	nav        *keynav.Navigator
	removeKeys func()

	spec      position.Spec
	placement position.Placement
	placed    bool

	unbind      func()
	unbindValue func()
}

// NewSelect builds a select. Construction never opens; call Sync once
// the refs resolve when DefaultOpen or a true controlled value applies.
func NewSelect(cfg SelectConfig) (*Select, error) {
	if cfg.Doc == nil {
		return nil, fmt.Errorf("%w: select requires a document", ErrConfiguration)
	}
	if cfg.Multiple && (cfg.Value != nil || cfg.OnValueChange != nil) {
		return nil, fmt.Errorf("%w: multiple select takes Values/OnValuesChange", ErrConfiguration)
	}
	if !cfg.Multiple && (cfg.Values != nil || cfg.OnValuesChange != nil) {
		return nil, fmt.Errorf("%w: single select takes Value/OnValueChange", ErrConfiguration)
	}
	mgr := cfg.Manager
	if mgr == nil {
		mgr = overlay.For(cfg.Doc)
	}

	id := newID("select")
	spec := cfg.Position
	spec.MatchWidth = true
	if spec.MinWidth <= 0 {
		spec.MinWidth = DefaultListboxMinWidth
	}

	s := &Select{
		TriggerID:   id + "-trigger",
		ListboxID:   id + "-listbox",
		registry:    newOptionRegistry(),
		multiple:    cfg.Multiple,
		placeholder: cfg.Placeholder,
		spec:        spec,
	}

	if cfg.Multiple {
		valueOpts := []cell.Option[[]string]{}
		if cfg.Values != nil {
			valueOpts = append(valueOpts, cell.WithExternal(cfg.Values))
		}
		if cfg.OnValuesChange != nil {
			valueOpts = append(valueOpts, cell.WithOnChange(cfg.OnValuesChange))
		}
		initial := make([]string, len(cfg.DefaultValues))
		copy(initial, cfg.DefaultValues)
		s.multi = cell.New(initial, valueOpts...)
		s.unbindValue = s.multi.Subscribe(func([]string) { s.applySelectionAttrs() })
	} else {
		valueOpts := []cell.Option[string]{}
		if cfg.Value != nil {
			valueOpts = append(valueOpts, cell.WithExternal(cfg.Value))
		}
		if cfg.OnValueChange != nil {
			valueOpts = append(valueOpts, cell.WithOnChange(cfg.OnValueChange))
		}
		s.single = cell.New(cfg.DefaultValue, valueOpts...)
		s.unbindValue = s.single.Subscribe(func(string) { s.applySelectionAttrs() })
	}

	openOpts := []cell.Option[bool]{cell.WithGuard(cell.OpenGuard(cfg.Disabled))}
	if cfg.Open != nil {
		openOpts = append(openOpts, cell.WithExternal(cfg.Open))
	}
	if cfg.OnOpenChange != nil {
		openOpts = append(openOpts, cell.WithOnChange(cfg.OnOpenChange))
	}

	s.nav = keynav.New(cfg.Doc, keynav.Config{
		Container:  id,
		Items:      s.registry.navItems,
		OnActivate: s.activate,
	})

	s.core = overlayCore{
		id:          id,
		kind:        "select",
		doc:         cfg.Doc,
		mgr:         mgr,
		open:        cell.New(cfg.DefaultOpen, openOpts...),
		markIgnored: true,
		trapOpts:    []focus.Option{focus.WithInitial(s.selectedEl)},
		anchorRef:   cfg.Trigger,
		contentRef:  cfg.Listbox,
	}
	s.core.onOpened = s.opened
	s.core.onClosed = s.closed
	s.unbind = s.core.bind()
	return s, nil
}

// ID returns the stable instance id.
func (s *Select) ID() string { return s.core.id }

// Open requests the open state. A no-op while Disabled reports true.
func (s *Select) Open() { s.core.open.Set(true) }

// Close requests the closed state.
func (s *Select) Close() { s.core.open.Set(false) }

// Toggle flips the open state.
func (s *Select) Toggle() {
	s.core.open.Update(func(v bool) bool { return !v })
}

// IsOpen reports the requested open state.
func (s *Select) IsOpen() bool { return s.core.open.Get() }

// Phase reports the lifecycle phase.
func (s *Select) Phase() Phase { return s.core.phase }

// Sync reconciles the phase with the open state.
func (s *Select) Sync() { s.core.sync() }

// Unmount force-closes and detaches from both cells.
func (s *Select) Unmount() {
	if s.unbind != nil {
		s.unbind()
		s.unbind = nil
	}
	if s.unbindValue != nil {
		s.unbindValue()
		s.unbindValue = nil
	}
	s.core.teardown()
}

// RegisterOption reports an option to the registry. The returned func
// removes it again; re-registering a value updates it in place.
func (s *Select) RegisterOption(item SelectItem) (func(), error) {
	if s == nil {
		return nil, fmt.Errorf("%w: option registered without a select root", ErrConfiguration)
	}
	if item.El != nil {
		item.El.SetAttr("role", "option")
	}
	remove := s.registry.add(item)
	s.applyOptionAttrs(item)
	return remove, nil
}

// SelectValue commits a selection. Single mode sets the value and
// closes the listbox; multiple mode toggles membership and stays open.
func (s *Select) SelectValue(value string) {
	if s.multiple {
		s.ToggleValue(value)
		return
	}
	events.Select.Selection(s.core.id, value, true)
	s.single.Set(value)
	s.core.requestClose()
}

// ToggleValue flips membership of value in the selected set. In single
// mode it behaves like SelectValue.
func (s *Select) ToggleValue(value string) {
	if !s.multiple {
		s.SelectValue(value)
		return
	}
	selected := false
	s.multi.Update(func(cur []string) []string {
		next := make([]string, 0, len(cur)+1)
		for _, v := range cur {
			if v == value {
				continue
			}
			next = append(next, v)
		}
		if len(next) == len(cur) {
			next = append(next, value)
			selected = true
		}
		return next
	})
	events.Select.Selection(s.core.id, value, selected)
}

// Selected reports whether value is currently selected.
func (s *Select) Selected(value string) bool {
	if s.multiple {
		for _, v := range s.multi.Get() {
			if v == value {
				return true
			}
		}
		return false
	}
	return s.single.Get() == value
}

// Value returns the single-mode selection, empty when nothing is
// selected. Multi-mode selects report through Values.
func (s *Select) Value() string {
	if s.multiple {
		return ""
	}
	return s.single.Get()
}

// Values returns the multi-mode selection in selection order.
func (s *Select) Values() []string {
	if !s.multiple {
		if v := s.single.Get(); v != "" {
			return []string{v}
		}
		return nil
	}
	cur := s.multi.Get()
	out := make([]string, len(cur))
	copy(out, cur)
	return out
}

// FormValue returns the raw form-bindable value: the selected value, or
// the comma-joined selected values in multiple mode. Unknown values
// pass through untouched; only the rendered label degrades.
func (s *Select) FormValue() string {
	if s.multiple {
		return strings.Join(s.multi.Get(), ",")
	}
	return s.single.Get()
}

// TriggerLabel resolves what the trigger should display: the rendered
// label of the selection via the registry, the placeholder when nothing
// is selected or the value is unknown, and a count once a multi
// selection outgrows maxInlineLabels.
func (s *Select) TriggerLabel() string {
	if s.multiple {
		values := s.multi.Get()
		if len(values) == 0 {
			return s.placeholder
		}
		if len(values) > maxInlineLabels {
			return fmt.Sprintf("%d selected", len(values))
		}
		labels := make([]string, 0, len(values))
		for _, v := range values {
			if item, ok := s.registry.get(v); ok {
				labels = append(labels, item.Label)
			}
		}
		if len(labels) == 0 {
			return s.placeholder
		}
		return strings.Join(labels, ", ")
	}
	value := s.single.Get()
	if value == "" {
		return s.placeholder
	}
	item, ok := s.registry.get(value)
	if !ok {
		events.Select.UnknownValue(s.core.id, value)
		return s.placeholder
	}
	return item.Label
}

// Placement returns the placement computed by the last open or
// Reposition, and whether one is current.
func (s *Select) Placement() (position.Placement, bool) {
	return s.placement, s.placed
}

// Reposition recomputes listbox placement from the trigger's current
// rectangle.
func (s *Select) Reposition() (position.Placement, bool) {
	pl, ok := s.core.reposition(s.spec)
	if !ok {
		return position.Placement{}, false
	}
	s.placement = pl
	s.placed = true
	return pl, true
}

func (s *Select) activate(it keynav.Item) {
	if s.multiple {
		s.ToggleValue(it.Value)
		return
	}
	s.SelectValue(it.Value)
}

func (s *Select) opened() {
	if listbox := deref(s.core.contentRef); listbox != nil {
		listbox.SetAttr("role", "listbox")
		if s.multiple {
			listbox.SetAttr("aria-multiselectable", "true")
		}
	}
	if trigger := deref(s.core.anchorRef); trigger != nil {
		trigger.SetAttr("aria-haspopup", "listbox")
		trigger.SetAttr("aria-controls", s.ListboxID)
	}
	s.Reposition()
	s.applySelectionAttrs()
	s.roveInitial()
	s.removeKeys = s.core.doc.AddListener(dom.KeyDown, s.handleKeydown)
}

func (s *Select) closed() {
	if s.removeKeys != nil {
		s.removeKeys()
		s.removeKeys = nil
	}
	s.placed = false
}

// handleKeydown feeds list navigation while focus sits inside the
// listbox. The overlay manager's Escape handler registered first, so a
// consumed Escape never reaches the navigator.
func (s *Select) handleKeydown(e *dom.Event) {
	if e.Consumed() {
		return
	}
	listbox := deref(s.core.contentRef)
	active := s.core.doc.ActiveElement()
	if listbox == nil || active == nil || !listbox.Contains(active) {
		return
	}
	s.nav.Handle(e)
}

func (s *Select) selectedEl() dom.Element {
	value, ok := s.firstSelectedValue()
	if !ok {
		return nil
	}
	if item, found := s.registry.get(value); found {
		return item.El
	}
	return nil
}

func (s *Select) firstSelectedValue() (string, bool) {
	if s.multiple {
		values := s.multi.Get()
		if len(values) == 0 {
			return "", false
		}
		return values[0], true
	}
	v := s.single.Get()
	return v, v != ""
}

// roveInitial points the roving tabindex at the selected option, else
// the first enabled one, before any arrow key arrives.
func (s *Select) roveInitial() {
	items := s.registry.navItems()
	idx := -1
	if value, ok := s.firstSelectedValue(); ok {
		for i, it := range items {
			if it.Value == value && !it.Disabled {
				idx = i
				break
			}
		}
	}
	if idx < 0 {
		for i, it := range items {
			if !it.Disabled {
				idx = i
				break
			}
		}
	}
	if idx >= 0 {
		keynav.Rove(items, idx)
	}
}

func (s *Select) applySelectionAttrs() {
	for _, item := range s.registry.items() {
		s.applyOptionAttrs(item)
	}
	listbox := deref(s.core.contentRef)
	if listbox == nil {
		return
	}
	if el := s.selectedEl(); el != nil {
		listbox.SetAttr("aria-activedescendant", el.ID())
	} else {
		listbox.RemoveAttr("aria-activedescendant")
	}
}

func (s *Select) applyOptionAttrs(item SelectItem) {
	if item.El == nil {
		return
	}
	if s.Selected(item.Value) {
		item.El.SetAttr("aria-selected", "true")
		item.El.SetAttr("data-state", "checked")
	} else {
		item.El.SetAttr("aria-selected", "false")
		item.El.SetAttr("data-state", "unchecked")
	}
}
