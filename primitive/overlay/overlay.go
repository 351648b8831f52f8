// Package overlay tracks the open overlays of a document: a single
// ordered stack that routes Escape to the topmost entry and holds the
// document scroll lock while any modal entry is registered. One manager
// exists per document; composites share it so nested overlays (a listbox
// inside a dialog) close in the right order without touching each other's
// listeners.
package overlay

import (
	"github.com/DanielMazurkiewicz/jezarch-sub006/internal/logging/events"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/dom"
)

type entry struct {
	id         string
	close      func()
	scrollLock bool
}

// Manager owns the overlay stack of one document. The zero value is not
// usable; construct with New or For.
type Manager struct {
	doc           dom.Document
	stack         []entry
	removeKeydown func()
	lockCount     int
	prevOverflow  string
}

// New builds a manager for doc. Most callers want For instead, which
// hands every composite on the same document the same stack.
func New(doc dom.Document) *Manager {
	return &Manager{doc: doc}
}

var shared = make(map[dom.Document]*Manager)

// For returns the shared manager of doc, creating it on first use.
func For(doc dom.Document) *Manager {
	if m, ok := shared[doc]; ok {
		return m
	}
	m := New(doc)
	shared[doc] = m
	return m
}

// Option configures a single registration.
type Option func(*entry)

// WithScrollLock makes the entry participate in the document scroll lock.
// Modal composites pass it; anchored overlays never lock scroll.
func WithScrollLock() Option {
	return func(e *entry) { e.scrollLock = true }
}

// Register pushes an open overlay onto the stack. close is invoked when
// Escape reaches the entry while it is topmost. Registering an id that is
// already on the stack is a no-op.
func (m *Manager) Register(id string, close func(), opts ...Option) {
	if m.find(id) >= 0 {
		events.Overlay.RegisterDuplicate(id)
		return
	}
	e := entry{id: id, close: close}
	for _, opt := range opts {
		opt(&e)
	}
	if len(m.stack) == 0 {
		m.removeKeydown = m.doc.AddListener(dom.KeyDown, m.handleKeydown)
	}
	m.stack = append(m.stack, e)
	if e.scrollLock {
		m.lockCount++
		if m.lockCount == 1 {
			m.prevOverflow = m.doc.Overflow()
			m.doc.SetOverflow(dom.OverflowHidden)
			events.Overlay.ScrollLock(true)
		}
	}
	events.Overlay.Register(id, len(m.stack), e.scrollLock)
}

// Unregister pops an overlay from the stack wherever it sits. Unknown ids
// are a no-op, so double cleanup after a fast open/close never fails.
func (m *Manager) Unregister(id string) {
	i := m.find(id)
	if i < 0 {
		events.Overlay.UnregisterMissing(id)
		return
	}
	e := m.stack[i]
	m.stack = append(m.stack[:i], m.stack[i+1:]...)
	if e.scrollLock {
		m.lockCount--
		if m.lockCount == 0 {
			m.doc.SetOverflow(m.prevOverflow)
			m.prevOverflow = ""
			events.Overlay.ScrollLock(false)
		}
	}
	if len(m.stack) == 0 && m.removeKeydown != nil {
		m.removeKeydown()
		m.removeKeydown = nil
	}
	events.Overlay.Unregister(id, len(m.stack))
}

func (m *Manager) handleKeydown(e *dom.Event) {
	if e.Key != dom.KeyEscape || len(m.stack) == 0 {
		return
	}
	top := m.stack[len(m.stack)-1]
	e.Consume()
	events.Overlay.EscapeRouted(top.id)
	top.close()
}

func (m *Manager) find(id string) int {
	for i, e := range m.stack {
		if e.id == id {
			return i
		}
	}
	return -1
}

// Depth returns how many overlays are open.
func (m *Manager) Depth() int { return len(m.stack) }

// Top returns the topmost overlay id, if any.
func (m *Manager) Top() (string, bool) {
	if len(m.stack) == 0 {
		return "", false
	}
	return m.stack[len(m.stack)-1].id, true
}

// Contains reports whether id is on the stack.
func (m *Manager) Contains(id string) bool { return m.find(id) >= 0 }

// ScrollLocked reports whether the manager currently holds the scroll
// lock.
func (m *Manager) ScrollLocked() bool { return m.lockCount > 0 }
