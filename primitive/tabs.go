package primitive

import (
	"fmt"

	"github.com/DanielMazurkiewicz/jezarch-sub006/internal/logging/events"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/cell"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/dom"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/keynav"
)

// TabsConfig configures a tab strip.
type TabsConfig struct {
	Doc dom.Document

	// Value puts the active tab in controlled mode; DefaultValue seeds
	// uncontrolled mode. An empty value means no tab is active.
	Value         func() string
	DefaultValue  string
	OnValueChange func(string)

	// Orientation picks the arrow pair; defaults to horizontal.
	Orientation keynav.Orientation

	// List is the tab strip container; key handling is scoped to it.
	List func() dom.Element
}

// Tabs drives a tab strip with manual activation: arrows rove focus
// over the tab triggers, Enter or Space activates the focused one.
// Exactly one panel is active at a time; hosts render only that panel,
// inactive ones are not rendered at all.
type Tabs struct {
	id          string
	registry    *optionRegistry
	panels      map[string]dom.Element
	value       *cell.Cell[string]
	orientation keynav.Orientation
	nav         *keynav.Navigator
	doc         dom.Document
	listRef     func() dom.Element
	removeKeys  func()
	unbind      func()
}

// NewTabs builds a tab strip and attaches its keydown routing. Unmount
// removes the listener.
func NewTabs(cfg TabsConfig) (*Tabs, error) {
	if cfg.Doc == nil {
		return nil, fmt.Errorf("%w: tabs requires a document", ErrConfiguration)
	}
	orientation := cfg.Orientation
	if orientation == "" {
		orientation = keynav.Horizontal
	}

	t := &Tabs{
		id:          newID("tabs"),
		registry:    newOptionRegistry(),
		panels:      make(map[string]dom.Element),
		orientation: orientation,
		doc:         cfg.Doc,
		listRef:     cfg.List,
	}

	valueOpts := []cell.Option[string]{}
	if cfg.Value != nil {
		valueOpts = append(valueOpts, cell.WithExternal(cfg.Value))
	}
	if cfg.OnValueChange != nil {
		valueOpts = append(valueOpts, cell.WithOnChange(cfg.OnValueChange))
	}
	t.value = cell.New(cfg.DefaultValue, valueOpts...)
	t.unbind = t.value.Subscribe(func(v string) { t.applyValue(v) })

	t.nav = keynav.New(cfg.Doc, keynav.Config{
		Container:   t.id,
		Orientation: orientation,
		Items:       t.registry.navItems,
		OnActivate:  func(it keynav.Item) { t.Activate(it.Value) },
	})
	t.removeKeys = cfg.Doc.AddListener(dom.KeyDown, t.handleKeydown)
	return t, nil
}

// ID returns the stable instance id.
func (t *Tabs) ID() string { return t.id }

// TabID derives the stable id for a tab trigger element.
func (t *Tabs) TabID(value string) string { return t.id + "-tab-" + value }

// PanelID derives the stable id for a tab panel element.
func (t *Tabs) PanelID(value string) string { return t.id + "-panel-" + value }

// RegisterTab reports a tab trigger and its panel. The returned func
// removes both.
func (t *Tabs) RegisterTab(item SelectItem, panel dom.Element) (func(), error) {
	if t == nil {
		return nil, fmt.Errorf("%w: tab registered without a tabs root", ErrConfiguration)
	}
	if item.El != nil {
		item.El.SetAttr("role", "tab")
		item.El.SetAttr("aria-controls", t.PanelID(item.Value))
	}
	if panel != nil {
		panel.SetAttr("role", "tabpanel")
		panel.SetAttr("aria-labelledby", t.TabID(item.Value))
	}
	removeItem := t.registry.add(item)
	if panel != nil {
		t.panels[item.Value] = panel
	}
	t.applyValue(t.value.Get())
	value := item.Value
	return func() {
		removeItem()
		delete(t.panels, value)
	}, nil
}

// ActiveValue returns the active tab value, empty when none is active.
func (t *Tabs) ActiveValue() string { return t.value.Get() }

// Activate selects the tab with the given value. Activating a disabled
// tab is a no-op; an unknown value deactivates every panel.
func (t *Tabs) Activate(value string) {
	if item, ok := t.registry.get(value); ok && item.Disabled {
		return
	}
	events.Tabs.Activate(t.id, value)
	t.value.Set(value)
}

// Sync reapplies the active state, for controlled hosts that changed
// their external value without going through Activate.
func (t *Tabs) Sync() { t.applyValue(t.value.Get()) }

// Unmount removes the keydown routing and detaches from the value cell.
func (t *Tabs) Unmount() {
	if t.removeKeys != nil {
		t.removeKeys()
		t.removeKeys = nil
	}
	if t.unbind != nil {
		t.unbind()
		t.unbind = nil
	}
}

// handleKeydown feeds tab navigation while focus sits inside the list.
func (t *Tabs) handleKeydown(e *dom.Event) {
	if e.Consumed() {
		return
	}
	list := deref(t.listRef)
	active := t.doc.ActiveElement()
	if list == nil || active == nil || !list.Contains(active) {
		return
	}
	t.nav.Handle(e)
}

// applyValue mirrors the active value into tab and panel attributes and
// points the roving tabindex at the active tab, else the first enabled
// one. An unknown value leaves every tab and panel inactive.
func (t *Tabs) applyValue(v string) {
	if list := deref(t.listRef); list != nil {
		list.SetAttr("role", "tablist")
		list.SetAttr("aria-orientation", string(t.orientation))
	}
	items := t.registry.navItems()
	activeIdx := -1
	for i, it := range items {
		active := it.Value == v
		if active && !it.Disabled {
			activeIdx = i
		}
		if it.El != nil {
			it.El.SetAttr("aria-selected", boolAttr(active))
			it.El.SetAttr("data-state", stateWord(active))
		}
		if panel, ok := t.panels[it.Value]; ok && panel != nil {
			panel.SetAttr("data-state", stateWord(active))
		}
	}
	if activeIdx < 0 {
		for i, it := range items {
			if !it.Disabled {
				activeIdx = i
				break
			}
		}
	}
	if activeIdx >= 0 {
		keynav.Rove(items, activeIdx)
	}
}

func stateWord(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}
