package termdom

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/dom"
)

// KeyEvent translates a Bubble Tea key message into a keydown event
// targeting the active element. The second result is false for keys the
// document vocabulary has no name for (control chords stay with the
// model's own bindings).
func (s *Screen) KeyEvent(msg tea.KeyMsg) (*dom.Event, bool) {
	key, shift, ok := translateKey(msg)
	if !ok {
		return nil, false
	}
	return &dom.Event{Type: dom.KeyDown, Target: s.ActiveElement(), Key: key, Shift: shift}, true
}

func translateKey(msg tea.KeyMsg) (key string, shift, ok bool) {
	switch msg.Type {
	case tea.KeyEsc:
		return dom.KeyEscape, false, true
	case tea.KeyTab:
		return dom.KeyTab, false, true
	case tea.KeyShiftTab:
		return dom.KeyTab, true, true
	case tea.KeyEnter:
		return dom.KeyEnter, false, true
	case tea.KeySpace:
		return dom.KeySpace, false, true
	case tea.KeyUp:
		return dom.KeyArrowUp, false, true
	case tea.KeyDown:
		return dom.KeyArrowDown, false, true
	case tea.KeyLeft:
		return dom.KeyArrowLeft, false, true
	case tea.KeyRight:
		return dom.KeyArrowRight, false, true
	case tea.KeyHome:
		return dom.KeyHome, false, true
	case tea.KeyEnd:
		return dom.KeyEnd, false, true
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) != 1 {
			return "", false, false
		}
		return string(msg.Runes), false, true
	}
	return "", false, false
}

// PointerEvent translates a left-button press into a pointerdown whose
// target is the topmost node under the cursor. Releases, drags and other
// buttons produce no document event.
func (s *Screen) PointerEvent(msg tea.MouseMsg) (*dom.Event, bool) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil, false
	}
	return &dom.Event{Type: dom.PointerDown, Target: s.HitTest(msg.X, msg.Y)}, true
}

// HitTest returns the deepest node whose rectangle contains the cell.
// Portal layers sit above the base tree and later layers above earlier
// ones, matching paint order. A press over bare background resolves to
// the root when its rectangle covers the viewport, so outside-
// interaction detectors still see a target.
func (s *Screen) HitTest(x, y int) dom.Element {
	px, py := float64(x), float64(y)
	for i := len(s.portal.children) - 1; i >= 0; i-- {
		if n := hit(s.portal.children[i], px, py); n != nil {
			return n
		}
	}
	for i := len(s.root.children) - 1; i >= 0; i-- {
		c := s.root.children[i]
		if c == s.portal {
			continue
		}
		if n := hit(c, px, py); n != nil {
			return n
		}
	}
	r := s.root.rect
	if !r.Empty() && px >= r.X && px < r.Right() && py >= r.Y && py < r.Bottom() {
		return s.root
	}
	return nil
}

func hit(n *Node, x, y float64) *Node {
	for i := len(n.children) - 1; i >= 0; i-- {
		if m := hit(n.children[i], x, y); m != nil {
			return m
		}
	}
	r := n.rect
	if r.Empty() {
		return nil
	}
	if x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom() {
		return n
	}
	return nil
}
