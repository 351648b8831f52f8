package primitive

import (
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/dom"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/keynav"
)

// SelectItem is one option reported to its owning root: a raw value, the
// rendered label that represents it, and the element carrying focus for
// it.
type SelectItem struct {
	Value    string
	Label    string
	El       dom.Element
	Disabled bool
}

// optionRegistry maps option values to rendered labels and elements,
// built by each option registering itself. Resolving "what text
// represents value V" is a map lookup, never a tree walk.
type optionRegistry struct {
	order   []string
	byValue map[string]SelectItem
}

func newOptionRegistry() *optionRegistry {
	return &optionRegistry{byValue: make(map[string]SelectItem)}
}

// add registers an option. Re-registering a value updates it in place
// and keeps its original position. The returned func removes the option
// and is idempotent.
func (r *optionRegistry) add(item SelectItem) func() {
	if _, ok := r.byValue[item.Value]; !ok {
		r.order = append(r.order, item.Value)
	}
	r.byValue[item.Value] = item
	value := item.Value
	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		r.remove(value)
	}
}

func (r *optionRegistry) remove(value string) {
	if _, ok := r.byValue[value]; !ok {
		return
	}
	delete(r.byValue, value)
	for i, v := range r.order {
		if v == value {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}

func (r *optionRegistry) get(value string) (SelectItem, bool) {
	item, ok := r.byValue[value]
	return item, ok
}

func (r *optionRegistry) items() []SelectItem {
	out := make([]SelectItem, 0, len(r.order))
	for _, v := range r.order {
		out = append(out, r.byValue[v])
	}
	return out
}

func (r *optionRegistry) navItems() []keynav.Item {
	out := make([]keynav.Item, 0, len(r.order))
	for _, v := range r.order {
		item := r.byValue[v]
		out = append(out, keynav.Item{
			Value:    item.Value,
			Label:    item.Label,
			El:       item.El,
			Disabled: item.Disabled,
		})
	}
	return out
}

func (r *optionRegistry) size() int { return len(r.order) }
