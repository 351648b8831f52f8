// Package cell provides the controlled/uncontrolled value store the
// composite primitives keep their open and value state in. A cell in
// controlled mode mirrors a host-owned value and only reports requested
// changes; in uncontrolled mode it owns the value itself.
package cell

// Option configures a Cell at construction.
type Option[T any] func(*Cell[T])

// WithExternal puts the cell in controlled mode: Get always mirrors the
// supplied getter and Set never touches local storage.
func WithExternal[T any](get func() T) Option[T] {
	return func(c *Cell[T]) { c.external = get }
}

// WithOnChange registers the change callback invoked with every accepted
// requested value.
func WithOnChange[T any](fn func(T)) Option[T] {
	return func(c *Cell[T]) { c.onChange = fn }
}

// WithGuard installs a transition veto. A guard returning false makes the
// requested change a silent no-op.
func WithGuard[T any](guard func(current, next T) bool) Option[T] {
	return func(c *Cell[T]) { c.guard = guard }
}

// OpenGuard is the canonical bool guard: requests to open are vetoed
// while disabled reports true, requests to close always pass.
func OpenGuard(disabled func() bool) func(current, next bool) bool {
	return func(current, next bool) bool {
		if next && disabled != nil && disabled() {
			return false
		}
		return true
	}
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// Cell is a single reactive value. Not safe for concurrent use; hosts
// call it from their UI goroutine like everything else in this layer.
type Cell[T any] struct {
	value    T
	external func() T
	onChange func(T)
	guard    func(current, next T) bool
	subs     []subscriber[T]
	nextID   int
}

// New builds a cell holding initial, or mirroring an external value when
// WithExternal is given (initial is then ignored).
func New[T any](initial T, opts ...Option[T]) *Cell[T] {
	c := &Cell[T]{value: initial}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Controlled reports whether the cell mirrors an external value.
func (c *Cell[T]) Controlled() bool { return c.external != nil }

// Get returns the current value.
func (c *Cell[T]) Get() T {
	if c.external != nil {
		return c.external()
	}
	return c.value
}

// Set requests the given value.
func (c *Cell[T]) Set(v T) {
	c.apply(func(T) T { return v })
}

// Update requests the value produced by fn applied to the current value.
func (c *Cell[T]) Update(fn func(T) T) {
	c.apply(fn)
}

func (c *Cell[T]) apply(fn func(T) T) {
	current := c.Get()
	next := fn(current)
	if c.guard != nil && !c.guard(current, next) {
		return
	}
	if c.external == nil {
		c.value = next
	}
	if c.onChange != nil {
		c.onChange(next)
	}
	c.notify()
}

// Subscribe registers fn to run with Get() after every accepted change
// request. The returned func removes the subscription; calling it twice
// is harmless.
func (c *Cell[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	id := c.nextID
	c.nextID++
	c.subs = append(c.subs, subscriber[T]{id: id, fn: fn})
	return func() {
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

func (c *Cell[T]) notify() {
	// Snapshot so a subscriber can unsubscribe (or subscribe) mid-notify.
	subs := make([]subscriber[T], len(c.subs))
	copy(subs, c.subs)
	v := c.Get()
	for _, s := range subs {
		s.fn(v)
	}
}
