package primitive

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/DanielMazurkiewicz/jezarch-sub006/internal/logging/events"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/dom"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/keynav"
)

// CommandConfig configures a command palette.
type CommandConfig struct {
	Doc dom.Document
	// List is the container of the rendered item elements. The host
	// scopes key routing with it.
	List func() dom.Element
	// OnSelect runs when an item is activated.
	OnSelect func(SelectItem)
}

// Command is the filterable item list composite. It owns no overlay of
// its own: hosts render it inline or inside a Dialog and feed it the
// query and key events. Filtering is a plain case-insensitive substring
// match over rendered labels; BestMatchIndex layers a ranked guess on
// top for pre-focusing.
type Command struct {
	// ListID is the stable generated id for the host's list element.
	ListID string

	id       string
	registry *optionRegistry
	query    string
	onSelect func(SelectItem)
	listRef  func() dom.Element
	nav      *keynav.Navigator
}

// NewCommand builds a command palette.
func NewCommand(cfg CommandConfig) (*Command, error) {
	if cfg.Doc == nil {
		return nil, fmt.Errorf("%w: command requires a document", ErrConfiguration)
	}
	id := newID("command")
	c := &Command{
		ListID:   id + "-list",
		id:       id,
		registry: newOptionRegistry(),
		onSelect: cfg.OnSelect,
		listRef:  cfg.List,
	}
	c.nav = keynav.New(cfg.Doc, keynav.Config{
		Container:  id,
		Items:      c.visibleNavItems,
		OnActivate: c.activate,
	})
	return c, nil
}

// ID returns the stable instance id.
func (c *Command) ID() string { return c.id }

// RegisterItem reports an item to the registry. The returned func
// removes it again.
func (c *Command) RegisterItem(item SelectItem) (func(), error) {
	if c == nil {
		return nil, fmt.Errorf("%w: item registered without a command root", ErrConfiguration)
	}
	if item.El != nil {
		item.El.SetAttr("role", "option")
	}
	remove := c.registry.add(item)
	c.applyVisibility(item)
	c.syncListAttrs()
	return remove, nil
}

// SetQuery replaces the filter query and reapplies item visibility.
func (c *Command) SetQuery(query string) {
	c.query = query
	visible := 0
	for _, item := range c.registry.items() {
		if c.applyVisibility(item) {
			visible++
		}
	}
	c.syncListAttrs()
	events.Command.Filter(c.id, query, visible)
}

// Query returns the current filter query.
func (c *Command) Query() string { return c.query }

// Reset clears the query, the open-time state of a palette embedded in
// a dialog.
func (c *Command) Reset() { c.SetQuery("") }

// VisibleItems returns the registered items matching the query, in
// registration order.
func (c *Command) VisibleItems() []SelectItem {
	items := c.registry.items()
	out := make([]SelectItem, 0, len(items))
	for _, item := range items {
		if c.matches(item) {
			out = append(out, item)
		}
	}
	return out
}

// Empty reports whether the query matches nothing, the cue for the
// host's empty-state slot.
func (c *Command) Empty() bool { return len(c.VisibleItems()) == 0 }

// HandleKey feeds a keydown to list navigation. The host routes key
// events here while the palette has focus; the palette owns no document
// listener itself.
func (c *Command) HandleKey(e *dom.Event) bool {
	if e.Consumed() {
		return false
	}
	return c.nav.Handle(e)
}

// Activate selects the item with the given value, if visible.
func (c *Command) Activate(value string) bool {
	for _, item := range c.VisibleItems() {
		if item.Value == value {
			c.fire(item)
			return true
		}
	}
	return false
}

// BestMatchIndex ranks the visible items against the query and returns
// the index of the strongest match, -1 when nothing is visible. Exact
// label or value matches win, then label prefixes, value prefixes,
// value substrings, label substrings, and finally the closest fuzzy
// rank (ties broken by list order).
func (c *Command) BestMatchIndex() int {
	items := c.VisibleItems()
	idx := bestMatchIndex(items, c.query)
	events.Command.BestMatch(c.id, idx)
	return idx
}

func (c *Command) activate(it keynav.Item) {
	if item, ok := c.registry.get(it.Value); ok {
		c.fire(item)
	}
}

func (c *Command) fire(item SelectItem) {
	events.Nav.Activate(c.id, item.Value, -1)
	if c.onSelect != nil {
		c.onSelect(item)
	}
}

func (c *Command) syncListAttrs() {
	if list := deref(c.listRef); list != nil {
		list.SetAttr("role", "listbox")
	}
}

func (c *Command) visibleNavItems() []keynav.Item {
	items := c.VisibleItems()
	out := make([]keynav.Item, 0, len(items))
	for _, item := range items {
		out = append(out, keynav.Item{
			Value:    item.Value,
			Label:    item.Label,
			El:       item.El,
			Disabled: item.Disabled,
		})
	}
	return out
}

func (c *Command) matches(item SelectItem) bool {
	trimmed := strings.TrimSpace(c.query)
	if trimmed == "" {
		return true
	}
	return strings.Contains(strings.ToLower(item.Label), strings.ToLower(trimmed))
}

// applyVisibility mirrors the match result into the element's hidden
// marker and reports it.
func (c *Command) applyVisibility(item SelectItem) bool {
	visible := c.matches(item)
	if item.El != nil {
		if visible {
			item.El.RemoveAttr("data-hidden")
		} else {
			item.El.SetAttr("data-hidden", "")
		}
	}
	return visible
}

func bestMatchIndex(items []SelectItem, query string) int {
	if len(items) == 0 {
		return -1
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	for i, item := range items {
		if strings.EqualFold(item.Label, trimmed) || strings.EqualFold(item.Value, trimmed) {
			return i
		}
	}
	for i, item := range items {
		if strings.HasPrefix(strings.ToLower(item.Label), lower) {
			return i
		}
	}
	for i, item := range items {
		if strings.HasPrefix(strings.ToLower(item.Value), lower) {
			return i
		}
	}
	for i, item := range items {
		if strings.Contains(strings.ToLower(item.Value), lower) {
			return i
		}
	}
	for i, item := range items {
		if strings.Contains(strings.ToLower(item.Label), lower) {
			return i
		}
	}
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) == 0 {
		return 0
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance {
			best = rank
			continue
		}
		if rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex {
			best = rank
		}
	}
	if best.OriginalIndex < 0 || best.OriginalIndex >= len(items) {
		return 0
	}
	return best.OriginalIndex
}
