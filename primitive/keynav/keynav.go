// Package keynav implements roving-tabindex keyboard navigation over an
// ordered list of option elements: arrow movement with cyclic wrap,
// Home/End jumps, Enter/Space activation, and single-character type-ahead
// against rendered labels.
package keynav

import (
	"strings"
	"unicode"

	"github.com/DanielMazurkiewicz/jezarch-sub006/internal/logging/events"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/dom"
)

// Orientation selects which arrow pair moves the focus.
type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// Item is one navigable option. El carries focus, Label feeds type-ahead,
// Value identifies the option to activation handlers.
type Item struct {
	Value    string
	Label    string
	El       dom.Element
	Disabled bool
}

// Config wires a navigator to its container.
type Config struct {
	// Container identifies the owning composite in trace output.
	Container string
	// Orientation defaults to Vertical.
	Orientation Orientation
	// Items returns the current options in order. Disabled entries are
	// skipped by every operation.
	Items func() []Item
	// OnActivate runs when Enter or Space lands on an option.
	OnActivate func(Item)
}

// Navigator routes keydown events over the configured items.
type Navigator struct {
	doc dom.Document
	cfg Config
}

// New builds a navigator. The navigator attaches no listeners itself; the
// owning composite feeds it events via Handle while its content is open.
func New(doc dom.Document, cfg Config) *Navigator {
	if cfg.Orientation == "" {
		cfg.Orientation = Vertical
	}
	return &Navigator{doc: doc, cfg: cfg}
}

// Handle processes a keydown. It returns true and consumes the event when
// the key drove navigation or activation; anything else is left alone.
func (n *Navigator) Handle(e *dom.Event) bool {
	items := n.enabled()
	if len(items) == 0 {
		return false
	}
	cur := n.currentIndex(items)

	next, prev := dom.KeyArrowDown, dom.KeyArrowUp
	if n.cfg.Orientation == Horizontal {
		next, prev = dom.KeyArrowRight, dom.KeyArrowLeft
	}

	switch e.Key {
	case next:
		e.Consume()
		n.move(items, cur, wrap(cur+1, len(items)))
		return true
	case prev:
		if cur < 0 {
			e.Consume()
			n.move(items, cur, len(items)-1)
			return true
		}
		e.Consume()
		n.move(items, cur, wrap(cur-1, len(items)))
		return true
	case dom.KeyHome:
		e.Consume()
		n.move(items, cur, 0)
		return true
	case dom.KeyEnd:
		e.Consume()
		n.move(items, cur, len(items)-1)
		return true
	case dom.KeyEnter, dom.KeySpace:
		if cur < 0 {
			return false
		}
		e.Consume()
		events.Nav.Activate(n.cfg.Container, items[cur].Value, cur)
		if n.cfg.OnActivate != nil {
			n.cfg.OnActivate(items[cur])
		}
		return true
	}

	if r, ok := dom.PrintableKey(e.Key); ok {
		if n.typeAhead(items, cur, r) {
			e.Consume()
			return true
		}
	}
	return false
}

// FocusFirst moves focus to the first enabled option.
func (n *Navigator) FocusFirst() bool {
	items := n.enabled()
	if len(items) == 0 {
		return false
	}
	n.move(items, n.currentIndex(items), 0)
	return true
}

// FocusValue moves focus to the option with the given value.
func (n *Navigator) FocusValue(value string) bool {
	items := n.enabled()
	for i, it := range items {
		if it.Value == value {
			n.move(items, n.currentIndex(items), i)
			return true
		}
	}
	return false
}

// Rove rewrites tabindex so exactly the active option is tab-reachable.
func Rove(items []Item, active int) {
	for i, it := range items {
		if it.El == nil {
			continue
		}
		if i == active {
			it.El.SetAttr("tabindex", "0")
		} else {
			it.El.SetAttr("tabindex", "-1")
		}
	}
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

func (n *Navigator) enabled() []Item {
	all := n.cfg.Items()
	out := make([]Item, 0, len(all))
	for _, it := range all {
		if !it.Disabled {
			out = append(out, it)
		}
	}
	return out
}

func (n *Navigator) currentIndex(items []Item) int {
	active := n.doc.ActiveElement()
	if active == nil {
		return -1
	}
	for i, it := range items {
		if it.El == nil {
			continue
		}
		if it.El == active || it.El.Contains(active) {
			return i
		}
	}
	return -1
}

func (n *Navigator) move(items []Item, from, to int) {
	if to < 0 || to >= len(items) {
		return
	}
	el := items[to].El
	if el == nil || !el.Connected() {
		return
	}
	Rove(items, to)
	el.Focus()
	events.Nav.Move(n.cfg.Container, from, to)
}

// typeAhead scans forward from the position after the current focus for
// the next label starting with r, wrapping once so the current option is
// considered last.
func (n *Navigator) typeAhead(items []Item, cur int, r rune) bool {
	start := cur + 1
	for k := 0; k < len(items); k++ {
		i := (start + k) % len(items)
		if labelStartsWith(items[i].Label, r) {
			n.move(items, cur, i)
			events.Nav.TypeAhead(n.cfg.Container, string(r), cur, i)
			return true
		}
	}
	return false
}

func labelStartsWith(label string, r rune) bool {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return false
	}
	first := []rune(trimmed)[0]
	return unicode.ToLower(first) == unicode.ToLower(r)
}
