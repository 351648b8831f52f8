// Package domtest provides an in-memory dom.Document implementation for
// exercising the primitive layer without a real host. Frame and task
// queues are pumped explicitly, so tests control exactly when deferred
// work runs and can observe the windows in between.
package domtest

import (
	"fmt"

	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/dom"
)

// Env is a fake hosting environment. The zero value is not usable; call
// New. All methods are plain single-goroutine code, mirroring the UI-loop
// contract real hosts follow.
type Env struct {
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

// New builds an environment with a root element, a portal root attached
// as the root's last child, and a browser-ish default viewport.
func New() *Env {
	e := &Env{
		viewport:  dom.Rect{Width: 800, Height: 600},
		listeners: make(map[dom.EventType][]*listenerRec),
	}
	e.root = &Node{env: e, id: "root"}
	e.portal = &Node{env: e, id: "portal-root"}
	e.root.AppendChild(e.portal)
	return e
}

// NewNode returns a detached element owned by this environment.
func (e *Env) NewNode(id string) *Node {
	return &Node{env: e, id: id}
}

// NewButton returns a detached focusable element, the usual stand-in for
// triggers and option rows.
func (e *Env) NewButton(id, text string) *Node {
	n := e.NewNode(id)
	n.focusable = true
	n.text = text
	return n
}

func (e *Env) Root() dom.Element       { return e.root }
func (e *Env) PortalRoot() dom.Element { return e.portal }

func (e *Env) ActiveElement() dom.Element {
	if e.active == nil {
		return nil
	}
	return e.active
}

func (e *Env) Viewport() dom.Rect       { return e.viewport }
func (e *Env) SetViewport(r dom.Rect)   { e.viewport = r }
func (e *Env) Overflow() string         { return e.overflow }
func (e *Env) SetOverflow(value string) { e.overflow = value }

// AddListener subscribes to a document-level stream. Removal mid-dispatch
// is honoured: a removed listener is never called afterwards.
func (e *Env) AddListener(t dom.EventType, fn dom.Listener) (remove func()) {
	rec := &listenerRec{id: e.nextID, fn: fn}
	e.nextID++
	e.listeners[t] = append(e.listeners[t], rec)
	return func() {
		if rec.removed {
			return
		}
		rec.removed = true
		list := e.listeners[t]
		for i, r := range list {
			if r == rec {
				e.listeners[t] = append(list[:i], list[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount reports the live listeners on a stream.
func (e *Env) ListenerCount(t dom.EventType) int {
	return len(e.listeners[t])
}

// Dispatch delivers an event to the document-level listeners in
// registration order.
func (e *Env) Dispatch(ev *dom.Event) {
	list := e.listeners[ev.Type]
	snapshot := make([]*listenerRec, len(list))
	copy(snapshot, list)
	for _, rec := range snapshot {
		if rec.removed {
			continue
		}
		rec.fn(ev)
	}
}

// Click dispatches a pointerdown targeting the given element.
func (e *Env) Click(target dom.Element) {
	e.Dispatch(&dom.Event{Type: dom.PointerDown, Target: target})
}

// PressKey dispatches a keydown targeting the active element. Unconsumed
// Tab keydowns fall through to the environment's default focus stepping,
// like a browser's.
func (e *Env) PressKey(key string) { e.pressKey(key, false) }

// PressShiftKey dispatches a shifted keydown targeting the active element.
func (e *Env) PressShiftKey(key string) { e.pressKey(key, true) }

func (e *Env) pressKey(key string, shift bool) {
	ev := &dom.Event{Type: dom.KeyDown, Target: e.ActiveElement(), Key: key, Shift: shift}
	e.Dispatch(ev)
	if ev.Consumed() || key != dom.KeyTab {
		return
	}
	e.stepFocus(shift)
}

func (e *Env) stepFocus(backward bool) {
	var foci []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, c := range n.children {
			if c.focusable {
				foci = append(foci, c)
			}
			walk(c)
		}
	}
	walk(e.root)
	if len(foci) == 0 {
		return
	}
	idx := -1
	for i, c := range foci {
		if c == e.active {
			idx = i
			break
		}
	}
	if backward {
		idx--
		if idx < 0 {
			idx = len(foci) - 1
		}
	} else {
		idx++
		if idx >= len(foci) {
			idx = 0
		}
	}
	foci[idx].Focus()
}

// RequestFrame queues fn for the next frame pump.
func (e *Env) RequestFrame(fn func()) (cancel func()) {
	d := &deferred{fn: fn}
	e.frames = append(e.frames, d)
	return d.cancel
}

// QueueTask queues fn for the next task pump.
func (e *Env) QueueTask(fn func()) (cancel func()) {
	d := &deferred{fn: fn}
	e.tasks = append(e.tasks, d)
	return d.cancel
}

func (d *deferred) cancel() {
	if d.done {
		return
	}
	d.cancelled = true
}

// RunFrames runs the currently queued frame callbacks (one frame).
// Callbacks queued while running wait for the next pump. Returns how many
// ran.
func (e *Env) RunFrames() int {
	batch := e.frames
	e.frames = nil
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

// RunTasks drains the task queue, including tasks queued by tasks, and
// returns how many ran.
func (e *Env) RunTasks() int {
	ran := 0
	for guard := 0; len(e.tasks) > 0; guard++ {
		if guard > 1000 {
			panic("domtest: task queue does not settle")
		}
		d := e.tasks[0]
		e.tasks = e.tasks[1:]
		if d.cancelled {
			continue
		}
		d.done = true
		d.fn()
		ran++
	}
	return ran
}

// Settle pumps tasks and frames until both queues are empty.
func (e *Env) Settle() {
	for i := 0; ; i++ {
		if i > 1000 {
			panic("domtest: queues do not settle")
		}
		n := e.RunTasks() + e.RunFrames()
		if n == 0 && len(e.tasks) == 0 && len(e.frames) == 0 {
			return
		}
	}
}

// PendingFrames reports queued, uncancelled frame callbacks.
func (e *Env) PendingFrames() int { return pending(e.frames) }

// PendingTasks reports queued, uncancelled tasks.
func (e *Env) PendingTasks() int { return pending(e.tasks) }

func pending(ds []*deferred) int {
	n := 0
	for _, d := range ds {
		if !d.cancelled {
			n++
		}
	}
	return n
}

// Node implements dom.Element over a plain tree. Setters are exported so
// tests can shape geometry and content directly.
type Node struct {
	env       *Env
	id        string
	parent    *Node
	children  []*Node
	rect      dom.Rect
	attrs     map[string]string
	focusable bool
	text      string
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

func (n *Node) Rect() dom.Rect     { return n.rect }
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
	if !n.Connected() || n.env.active == n {
		return
	}
	n.env.active = n
	n.env.Dispatch(&dom.Event{Type: dom.FocusIn, Target: n})
}

func (n *Node) Focusable() bool     { return n.focusable }
func (n *Node) SetFocusable(v bool) { n.focusable = v }
func (n *Node) Connected() bool     { return n.env.root.Contains(n) }
func (n *Node) Text() string        { return n.text }
func (n *Node) SetText(text string) { n.text = text }

func (n *Node) AppendChild(child dom.Element) {
	c, ok := child.(*Node)
	if !ok {
		panic(fmt.Sprintf("domtest: foreign element %T", child))
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
	// Detaching the focused subtree clears focus, like a browser falling
	// back to the body.
	if n.env.active != nil && c.Contains(n.env.active) {
		n.env.active = nil
	}
}
