// Package dom defines the hosting environment contract for the headless
// primitive layer. A host supplies a Document (event dispatch, deferral
// queues, portal root, scroll state) and a tree of Elements; the
// primitives never reach past these interfaces, so the same core drives a
// browser-style tree, the in-memory test environment, and the terminal
// host unchanged.
//
// Hosts must call into the primitives from a single goroutine (their UI
// loop). Nothing in this layer locks; ordering guarantees come from the
// host's own serialized dispatch.
package dom

// Rect is an axis-aligned box in host coordinates. Units are whatever the
// host renders in (pixels in a browser-like host, cells in the terminal
// host); the primitives only compare and add them.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// MidX returns the x coordinate of the horizontal midpoint.
func (r Rect) MidX() float64 { return r.X + r.Width/2 }

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// EventType identifies a document-level event stream.
type EventType string

const (
	PointerDown EventType = "pointerdown"
	KeyDown     EventType = "keydown"
	FocusIn     EventType = "focusin"
)

// Key names follow the browser convention so host adapters translate
// their native input into a single vocabulary.
const (
	KeyEscape     = "Escape"
	KeyTab        = "Tab"
	KeyEnter      = "Enter"
	KeySpace      = " "
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyHome       = "Home"
	KeyEnd        = "End"
)

// Event is a dispatched document event. Listeners receive a pointer so a
// handler can consume the event and stop the host from applying its own
// default behaviour (a focused widget swallowing Tab, for example).
type Event struct {
	Type   EventType
	Target Element
	Key    string
	Shift  bool

	consumed bool
}

// Consume marks the event as handled.
func (e *Event) Consume() { e.consumed = true }

// Consumed reports whether a listener claimed the event.
func (e *Event) Consumed() bool { return e.consumed }

// Listener handles a dispatched event.
type Listener func(*Event)

// Element is a node in the host tree. References held by primitives are
// weak: an element may detach at any time, and callers re-check
// Connected before trusting one.
type Element interface {
	// ID returns the host-assigned identifier, unique within the document.
	ID() string
	// Parent returns the parent element, or nil at the root.
	Parent() Element
	// Children returns the child elements in document order.
	Children() []Element
	// Contains reports whether other is the receiver or a descendant of it.
	Contains(other Element) bool
	// Rect returns the element's current bounding box.
	Rect() Rect
	// Attr returns the named attribute and whether it is set.
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	RemoveAttr(name string)
	// Focus makes the element the document's active element. Hosts ignore
	// the call for disconnected elements; programmatic focus works on any
	// connected element, tabbable or not.
	Focus()
	// Focusable reports whether the element participates in tab order
	// (buttons, links, inputs, anything the host marked tabbable).
	Focusable() bool
	// Connected reports whether the element is still attached to the
	// document tree.
	Connected() bool
	// Text returns the rendered text content, used for option labels and
	// type-ahead matching.
	Text() string
	AppendChild(child Element)
	RemoveChild(child Element)
}

// OverflowHidden is the scroll state the overlay manager writes while a
// modal is open.
const OverflowHidden = "hidden"

// Document is the host environment. All methods are UI-goroutine only.
type Document interface {
	// Root returns the document root element.
	Root() Element
	// PortalRoot returns the top-layer mount point for overlay content.
	// Children render above normal layout in insertion order.
	PortalRoot() Element
	// ActiveElement returns the currently focused element, or nil.
	ActiveElement() Element
	// AddListener subscribes to a document-level event stream and returns
	// a removal func. Removal is idempotent.
	AddListener(t EventType, fn Listener) (remove func())
	// RequestFrame schedules fn before the next paint and returns a
	// cancel func. Cancel after the frame ran is a no-op.
	RequestFrame(fn func()) (cancel func())
	// QueueTask schedules fn as a zero-delay macrotask: it runs after the
	// currently dispatching event has fully finished, and never sooner.
	QueueTask(fn func()) (cancel func())
	// Viewport returns the visible document area.
	Viewport() Rect
	// Overflow returns the scroll state of the document's scroll
	// container. The empty string means default scrolling.
	Overflow() string
	SetOverflow(value string)
}

// PrintableKey reports whether key names a single printable character and
// returns it. Named keys ("Escape", "ArrowDown") and whitespace are not
// printable for type-ahead purposes.
func PrintableKey(key string) (rune, bool) {
	runes := []rune(key)
	if len(runes) != 1 {
		return 0, false
	}
	r := runes[0]
	if r <= ' ' || r == 0x7f {
		return 0, false
	}
	return r, true
}
