// Package termdom hosts the primitive layer in a terminal. A Screen
// implements dom.Document over a node tree whose rectangles are assigned
// during layout; Bubble Tea key and mouse messages translate into
// document events, and the deferral queues drain inside the update loop
// so deferred focus and listener arming land between messages, never
// inside one.
package termdom

import (
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/dom"
)

// Screen is the terminal dom.Document. All methods follow the UI-goroutine
// contract: the Bubble Tea update loop is the only caller.
type Screen struct {
	root     *Node
	portal   *Node
	active   *Node
	viewport dom.Rect
	overflow string

	listeners map[dom.EventType][]*listenerRec
	nextID    int

	frames []*deferred
	tasks  []*deferred
}

type listenerRec struct {
	id      int
	fn      dom.Listener
	removed bool
}

type deferred struct {
	fn        func()
	cancelled bool
	done      bool
}

// NewScreen builds a screen with a root element, the portal root attached
// beneath it, and the given viewport size in cells.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		viewport:  dom.Rect{Width: float64(width), Height: float64(height)},
		listeners: make(map[dom.EventType][]*listenerRec),
	}
	s.root = &Node{screen: s, id: "root"}
	s.portal = &Node{screen: s, id: "portal-root"}
	s.root.AppendChild(s.portal)
	return s
}

func (s *Screen) Root() dom.Element       { return s.root }
func (s *Screen) PortalRoot() dom.Element { return s.portal }

func (s *Screen) ActiveElement() dom.Element {
	if s.active == nil {
		return nil
	}
	return s.active
}

func (s *Screen) Viewport() dom.Rect { return s.viewport }

// SetSize resizes the viewport, normally from a tea.WindowSizeMsg.
func (s *Screen) SetSize(width, height int) {
	s.viewport = dom.Rect{Width: float64(width), Height: float64(height)}
}

func (s *Screen) Overflow() string         { return s.overflow }
func (s *Screen) SetOverflow(value string) { s.overflow = value }

// AddListener subscribes to a document-level stream. Removal mid-dispatch
// is honoured: a removed listener is never called afterwards.
func (s *Screen) AddListener(t dom.EventType, fn dom.Listener) (remove func()) {
	rec := &listenerRec{id: s.nextID, fn: fn}
	s.nextID++
	s.listeners[t] = append(s.listeners[t], rec)
	return func() {
		if rec.removed {
			return
		}
		rec.removed = true
		list := s.listeners[t]
		for i, r := range list {
			if r == rec {
				s.listeners[t] = append(list[:i], list[i+1:]...)
				return
			}
		}
	}
}

// Dispatch delivers an event to the document-level listeners in
// registration order and reports whether one consumed it. The model
// applies its own default behaviour (widget focus stepping, text entry)
// only for unconsumed events.
func (s *Screen) Dispatch(ev *dom.Event) bool {
	list := s.listeners[ev.Type]
	snapshot := make([]*listenerRec, len(list))
	copy(snapshot, list)
	for _, rec := range snapshot {
		if rec.removed {
			continue
		}
		rec.fn(ev)
	}
	return ev.Consumed()
}

// RequestFrame schedules fn for the next Flush, in the frame phase.
func (s *Screen) RequestFrame(fn func()) (cancel func()) {
	d := &deferred{fn: fn}
	s.frames = append(s.frames, d)
	return d.cancel
}

// QueueTask schedules fn for the next Flush, ahead of frames.
func (s *Screen) QueueTask(fn func()) (cancel func()) {
	d := &deferred{fn: fn}
	s.tasks = append(s.tasks, d)
	return d.cancel
}

func (d *deferred) cancel() {
	if d.done {
		return
	}
	d.cancelled = true
}

// Flush drains the task and frame queues, including work they queue in
// turn. The model calls it once per handled message, after dispatch, so
// deferred callbacks observe the fully settled state of the event that
// scheduled them. Leftover work past the round cap rolls over to the
// next Flush.
func (s *Screen) Flush() {
	for i := 0; i < 64; i++ {
		if s.runTasks()+s.runFrames() == 0 {
			return
		}
	}
}

func (s *Screen) runTasks() int {
	ran := 0
	for len(s.tasks) > 0 {
		d := s.tasks[0]
		s.tasks = s.tasks[1:]
		if d.cancelled {
			continue
		}
		d.done = true
		d.fn()
		ran++
	}
	return ran
}

// runFrames runs one frame batch; callbacks queued while running wait for
// the next round.
func (s *Screen) runFrames() int {
	batch := s.frames
	s.frames = nil
	ran := 0
	for _, d := range batch {
		if d.cancelled {
			continue
		}
		d.done = true
		d.fn()
		ran++
	}
	return ran
}
