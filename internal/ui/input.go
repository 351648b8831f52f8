package ui

import (
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/dom"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg routes a key press: global chords first, then the
// screen's listener chain where open primitives consume what they own,
// and only then the application fallbacks.
func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "ctrl+c":
		return m.quit()
	case "q":
		if m.chordsAvailable() {
			return m.quit()
		}
	case "?":
		// The same chord puts the help popover away again.
		if m.chordsAvailable() || (m.form.help.IsOpen() && m.form.typingTarget() == nil) {
			m.form.help.Toggle()
			return nil
		}
	case "p":
		if m.chordsAvailable() {
			m.form.openPreview()
			return nil
		}
	}

	ev, ok := m.screen.KeyEvent(key)
	if !ok {
		// Editing keys with no primitive meaning still reach the
		// focused text input.
		if target := m.form.typingTarget(); target != nil && typedKey(key) {
			return m.feedInput(target, key)
		}
		return nil
	}
	// The tags listbox carries a filter input, so printable keys feed
	// it ahead of the listbox's own type-ahead.
	if m.form.tags.IsOpen() {
		if _, printable := dom.PrintableKey(ev.Key); printable {
			if target := m.form.typingTarget(); target != nil && typedKey(key) {
				return m.feedInput(target, key)
			}
		}
	}
	if m.screen.Dispatch(ev) {
		return nil
	}
	return m.routeUnconsumedKey(key, ev)
}

// chordsAvailable reports whether single-letter chords may fire: never
// while an overlay is up or a text input would swallow the letter.
func (m *Model) chordsAvailable() bool {
	return !m.form.anyOverlayOpen() && m.form.typingTarget() == nil
}

func (m *Model) routeUnconsumedKey(key tea.KeyMsg, ev *dom.Event) tea.Cmd {
	// Palette navigation gets the nav keys; printable ones belong to
	// its search input below.
	if m.form.sigDialog.IsOpen() {
		if _, printable := dom.PrintableKey(ev.Key); !printable {
			if m.form.sig.HandleKey(ev) {
				return nil
			}
		}
	}
	if target := m.form.typingTarget(); target != nil && typedKey(key) {
		return m.feedInput(target, key)
	}
	switch ev.Key {
	case dom.KeyTab:
		if m.form.modalOpen() {
			m.form.stepDialogFocus(ev.Shift)
			return nil
		}
		// Tabbing away from a dropdown or popover puts it away first,
		// then the step lands relative to the restored focus.
		m.form.closeAnchoredOverlays()
		m.form.stepFocus(ev.Shift)
	case dom.KeyEnter, dom.KeySpace:
		if active := m.screen.ActiveElement(); active != nil && m.form.activate(active) {
			return nil
		}
		if m.form.sigDialog.IsOpen() {
			m.form.commitBestSignature()
		}
	}
	return nil
}

// typedKey reports whether the key edits text when an input is focused.
func typedKey(key tea.KeyMsg) bool {
	switch key.Type {
	case tea.KeyRunes, tea.KeySpace, tea.KeyBackspace, tea.KeyDelete,
		tea.KeyLeft, tea.KeyRight, tea.KeyCtrlA, tea.KeyCtrlE,
		tea.KeyCtrlK, tea.KeyCtrlU, tea.KeyCtrlW:
		return true
	}
	return false
}

func (m *Model) feedInput(target *textinput.Model, key tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	*target, cmd = target.Update(key)
	m.form.afterTyping(target)
	return cmd
}
