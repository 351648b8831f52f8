package ui

import (
	"fmt"
	"reflect"

	"github.com/DanielMazurkiewicz/jezarch-sub006/internal/logging/events"
	"github.com/DanielMazurkiewicz/jezarch-sub006/internal/termdom"
	"github.com/DanielMazurkiewicz/jezarch-sub006/internal/theme"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// traceCapacity bounds the action trace shown on the tracing tab.
	traceCapacity = 100
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Model implements the Bubble Tea model for the document intake console.
type Model struct {
	screen *termdom.Screen
	form   *form

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	errMsg   string
	trace    traceLog
	quitting bool

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI state with the intake form and configuration.
func NewModel(width, height int, showFooter, verbose bool, startTab string) *Model {
	m := &Model{
		width:      defaultWidth,
		height:     defaultHeight,
		showFooter: showFooter,
		verbose:    verbose,
	}
	if width > 0 {
		m.width = width
		m.fixedWidth = true
	}
	if height > 0 {
		m.height = height
		m.fixedHeight = true
	}
	m.screen = termdom.NewScreen(m.width, m.height)
	m.form = newForm(m, startTab)
	m.registerHandlers()
	m.screen.Flush()
	m.layout()
	m.form.focusRingStart()
	return m
}

// Screen exposes the element tree the model renders into.
func (m *Model) Screen() *termdom.Screen { return m.screen }

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// finishUpdate settles the element tree and recomputes layout so the
// next View call renders against current rectangles.
func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	m.screen.Flush()
	m.layout()
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth && size.Width > 0 {
		m.width = size.Width
	}
	if !m.fixedHeight && size.Height > 0 {
		m.height = size.Height
	}
	m.screen.SetSize(m.width, m.height)
	events.UI.Resize(m.width, m.height)
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	return tea.Quit
}

// tracef records a user-visible action in the bounded trace ring.
func (m *Model) tracef(format string, args ...interface{}) {
	m.trace.add(format, args...)
}

// traceLog keeps the most recent user actions for the tracing tab.
// Sequence numbers survive a clear so the history stays ordered.
type traceLog struct {
	seq     int
	entries []string
}

func (t *traceLog) add(format string, args ...interface{}) {
	t.seq++
	entry := fmt.Sprintf("#%d %s", t.seq, fmt.Sprintf(format, args...))
	t.entries = append(t.entries, entry)
	if len(t.entries) > traceCapacity {
		t.entries = t.entries[len(t.entries)-traceCapacity:]
	}
}

// tail returns the newest n entries, oldest first.
func (t *traceLog) tail(n int) []string {
	if n <= 0 || len(t.entries) == 0 {
		return nil
	}
	if n > len(t.entries) {
		n = len(t.entries)
	}
	return t.entries[len(t.entries)-n:]
}

func (t *traceLog) clear() {
	t.entries = nil
}
