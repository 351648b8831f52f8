package termdom

import (
	"fmt"

	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/dom"
)

// Node implements dom.Element. The layout pass owns rect and text; the
// primitives own attributes and focus.
type Node struct {
	screen    *Screen
	id        string
	parent    *Node
	children  []*Node
	rect      dom.Rect
	attrs     map[string]string
	focusable bool
	text      string
}

// NewNode returns a detached element owned by this screen.
func (s *Screen) NewNode(id string) *Node {
	return &Node{screen: s, id: id}
}

// NewButton returns a detached focusable element for triggers, options
// and tab stops.
func (s *Screen) NewButton(id, text string) *Node {
	n := s.NewNode(id)
	n.focusable = true
	n.text = text
	return n
}

func (n *Node) ID() string { return n.id }

func (n *Node) Parent() dom.Element {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *Node) Children() []dom.Element {
	out := make([]dom.Element, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (n *Node) Contains(other dom.Element) bool {
	for cur := other; cur != nil; cur = cur.Parent() {
		if cur == dom.Element(n) {
			return true
		}
	}
	return false
}

func (n *Node) Rect() dom.Rect { return n.rect }

// SetRect records the node's cell rectangle; the layout pass calls this
// every render so anchored placement tracks the live geometry.
func (n *Node) SetRect(r dom.Rect) { n.rect = r }

func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

func (n *Node) SetAttr(name, value string) {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
}

func (n *Node) RemoveAttr(name string) { delete(n.attrs, name) }

func (n *Node) Focus() {
	if !n.Connected() || n.screen.active == n {
		return
	}
	n.screen.active = n
	n.screen.Dispatch(&dom.Event{Type: dom.FocusIn, Target: n})
}

func (n *Node) Focusable() bool     { return n.focusable }
func (n *Node) SetFocusable(v bool) { n.focusable = v }
func (n *Node) Connected() bool     { return n.screen.root.Contains(n) }
func (n *Node) Text() string        { return n.text }
func (n *Node) SetText(text string) { n.text = text }

func (n *Node) AppendChild(child dom.Element) {
	c, ok := child.(*Node)
	if !ok {
		panic(fmt.Sprintf("termdom: foreign element %T", child))
	}
	if c.parent != nil {
		c.parent.RemoveChild(c)
	}
	c.parent = n
	n.children = append(n.children, c)
}

func (n *Node) RemoveChild(child dom.Element) {
	c, ok := child.(*Node)
	if !ok || c.parent != n {
		return
	}
	for i, cc := range n.children {
		if cc == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			break
		}
	}
	c.parent = nil
	if n.screen.active != nil && c.Contains(n.screen.active) {
		n.screen.active = nil
	}
}
