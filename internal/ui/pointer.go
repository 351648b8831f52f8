package ui

import (
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/dom"
	tea "github.com/charmbracelet/bubbletea"
)

// handleMouseMsg routes a left press: the screen's listener chain first
// (outside-interaction detectors dismiss there), then focus-follows-
// pointer and widget activation. A press outside an open dialog only
// dismisses it; the element underneath does not also activate.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	ev, ok := m.screen.PointerEvent(mouse)
	if !ok {
		return nil
	}
	modalWasOpen := m.form.modalOpen()
	m.screen.Dispatch(ev)
	if ev.Target == nil {
		return nil
	}
	if modalWasOpen && !m.insideModalContent(ev.Target) {
		return nil
	}
	if ev.Target.Focusable() {
		ev.Target.Focus()
		m.form.syncInputFocus()
	}
	m.form.activate(ev.Target)
	return nil
}

func (m *Model) insideModalContent(target dom.Element) bool {
	if m.form.sigDialog.IsOpen() && m.form.sigContent.Contains(target) {
		return true
	}
	if m.form.preview.IsOpen() && m.form.previewContent.Contains(target) {
		return true
	}
	return false
}
