package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/dom"
)

func newTestHarness(t *testing.T) *Harness {
	t.Helper()
	return NewHarness(NewModel(80, 24, true, false, ""))
}

func pressKey(h *Harness, kt tea.KeyType) {
	h.Send(tea.KeyMsg{Type: kt})
}

func pressRune(h *Harness, r rune) {
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func pressSpace(h *Harness) {
	h.Send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
}

func typeText(h *Harness, text string) {
	for _, r := range text {
		if r == ' ' {
			pressSpace(h)
			continue
		}
		pressRune(h, r)
	}
}

func click(h *Harness, x, y int) {
	h.Send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func activeID(h *Harness) string {
	if el := h.Model().Screen().ActiveElement(); el != nil {
		return el.ID()
	}
	return ""
}

func plain(h *Harness) string {
	return ansi.Strip(h.View())
}

func traceContains(h *Harness, want string) bool {
	for _, entry := range h.Model().trace.entries {
		if strings.Contains(entry, want) {
			return true
		}
	}
	return false
}

func TestNewModelFocusesActiveTab(t *testing.T) {
	h := newTestHarness(t)
	if got := h.Model().form.tabs.ActiveValue(); got != "metadata" {
		t.Fatalf("expected metadata active, got %q", got)
	}
	if got := activeID(h); got != "tab-metadata" {
		t.Fatalf("expected focus on tab-metadata, got %q", got)
	}
	view := plain(h)
	if !strings.Contains(view, "[>Metadata<]") {
		t.Fatalf("expected the focused active tab in view:\n%s", view)
	}
	for _, label := range []string{"Unit:", "Signature:", "Tags:"} {
		if !strings.Contains(view, label) {
			t.Fatalf("expected %q in the metadata panel:\n%s", label, view)
		}
	}
}

func TestStartTabHonored(t *testing.T) {
	h := NewHarness(NewModel(80, 24, true, false, "description"))
	if got := h.Model().form.tabs.ActiveValue(); got != "description" {
		t.Fatalf("expected description active, got %q", got)
	}
	if got := activeID(h); got != "tab-description" {
		t.Fatalf("expected focus on tab-description, got %q", got)
	}
	view := plain(h)
	if !strings.Contains(view, "Title:") || !strings.Contains(view, "Abstract:") {
		t.Fatalf("expected description fields in view:\n%s", view)
	}
	if strings.Contains(view, "Unit:") {
		t.Fatalf("expected the metadata panel hidden:\n%s", view)
	}
}

func TestTabStepsThroughFocusRing(t *testing.T) {
	h := newTestHarness(t)
	want := []string{
		"unit-trigger", "sig-trigger", "tags-trigger",
		"preview-trigger", "help-anchor", "tab-metadata",
	}
	for _, id := range want {
		pressKey(h, tea.KeyTab)
		if got := activeID(h); got != id {
			t.Fatalf("expected focus on %s, got %q", id, got)
		}
	}
	pressKey(h, tea.KeyShiftTab)
	if got := activeID(h); got != "help-anchor" {
		t.Fatalf("expected shift+tab to step back to help-anchor, got %q", got)
	}
}

func TestHiddenFooterLeavesPreviewOutOfRing(t *testing.T) {
	h := NewHarness(NewModel(80, 24, false, false, ""))
	for _, id := range []string{"unit-trigger", "sig-trigger", "tags-trigger", "help-anchor", "tab-metadata"} {
		pressKey(h, tea.KeyTab)
		if got := activeID(h); got != id {
			t.Fatalf("expected focus on %s, got %q", id, got)
		}
	}
	if strings.Contains(plain(h), "[ preview ]") {
		t.Fatalf("expected no footer rendered:\n%s", plain(h))
	}
}

func TestArrowsRoveTabsWithoutActivating(t *testing.T) {
	h := newTestHarness(t)
	pressKey(h, tea.KeyRight)
	if got := activeID(h); got != "tab-description" {
		t.Fatalf("expected arrow to focus tab-description, got %q", got)
	}
	if got := h.Model().form.tabs.ActiveValue(); got != "metadata" {
		t.Fatalf("expected metadata still active before enter, got %q", got)
	}
	pressKey(h, tea.KeyDown)
	if got := activeID(h); got != "tab-description" {
		t.Fatalf("expected vertical arrows ignored on the strip, got %q", got)
	}
	pressKey(h, tea.KeyEnter)
	if got := h.Model().form.tabs.ActiveValue(); got != "description" {
		t.Fatalf("expected enter to activate the focused tab, got %q", got)
	}
	if !strings.Contains(plain(h), "Title:") {
		t.Fatalf("expected the description panel after activation:\n%s", plain(h))
	}
	if !traceContains(h, "switched to description tab") {
		t.Fatalf("expected the switch traced, got %#v", h.Model().trace.entries)
	}
}

func TestTabStripTypeAhead(t *testing.T) {
	h := newTestHarness(t)
	pressRune(h, 't')
	if got := activeID(h); got != "tab-tracing" {
		t.Fatalf("expected type-ahead to focus tab-tracing, got %q", got)
	}
	pressRune(h, 'm')
	if got := activeID(h); got != "tab-metadata" {
		t.Fatalf("expected type-ahead to wrap to tab-metadata, got %q", got)
	}
}

func TestQuitChord(t *testing.T) {
	h := newTestHarness(t)
	pressRune(h, 'q')
	if !h.Model().quitting {
		t.Fatalf("expected q to quit from the base form")
	}
	if got := h.View(); got != "" {
		t.Fatalf("expected empty view after quit, got %q", got)
	}
}

func TestCtrlCQuitsEvenWithOverlayOpen(t *testing.T) {
	h := newTestHarness(t)
	pressKey(h, tea.KeyTab)
	pressKey(h, tea.KeyEnter)
	if !h.Model().form.unit.IsOpen() {
		t.Fatalf("expected the unit listbox open")
	}
	pressKey(h, tea.KeyCtrlC)
	if !h.Model().quitting {
		t.Fatalf("expected ctrl+c to quit regardless of overlays")
	}
}

func TestQuitChordSuspendedWhileTyping(t *testing.T) {
	h := NewHarness(NewModel(80, 24, true, false, "description"))
	pressKey(h, tea.KeyTab)
	if got := activeID(h); got != "title-input" {
		t.Fatalf("expected focus on the title field, got %q", got)
	}
	pressRune(h, 'q')
	m := h.Model()
	if m.quitting {
		t.Fatalf("expected q to type into the title, not quit")
	}
	if got := m.form.titleInput.Value(); got != "q" {
		t.Fatalf("expected title %q, got %q", "q", got)
	}
}

func TestQuitChordSuspendedWhileListboxOpen(t *testing.T) {
	h := newTestHarness(t)
	pressKey(h, tea.KeyTab)
	pressKey(h, tea.KeyEnter)
	pressRune(h, 'q')
	m := h.Model()
	if m.quitting {
		t.Fatalf("expected q swallowed while the listbox is open")
	}
	if !m.form.unit.IsOpen() {
		t.Fatalf("expected the listbox still open")
	}
}

func TestUnitSelectKeyboardFlow(t *testing.T) {
	h := newTestHarness(t)
	pressKey(h, tea.KeyTab)
	pressKey(h, tea.KeyEnter)
	m := h.Model()
	if !m.form.unit.IsOpen() {
		t.Fatalf("expected enter on the trigger to open the listbox")
	}
	if got := activeID(h); got != "unit-opt-court" {
		t.Fatalf("expected initial focus on the first option, got %q", got)
	}
	pressKey(h, tea.KeyDown)
	if got := activeID(h); got != "unit-opt-parish" {
		t.Fatalf("expected arrow down to focus the second option, got %q", got)
	}
	pressKey(h, tea.KeyEnter)
	if m.form.unit.IsOpen() {
		t.Fatalf("expected the selection to close the listbox")
	}
	if got := m.form.unit.Value(); got != "parish" {
		t.Fatalf("expected value parish, got %q", got)
	}
	if got := activeID(h); got != "unit-trigger" {
		t.Fatalf("expected focus restored to the trigger, got %q", got)
	}
	if !strings.Contains(plain(h), "[ Parish registers") {
		t.Fatalf("expected the trigger to show the selected label:\n%s", plain(h))
	}
	if !traceContains(h, "unit set to Parish registers") {
		t.Fatalf("expected the selection traced, got %#v", m.trace.entries)
	}
}

func TestListboxWrapAndJumps(t *testing.T) {
	h := newTestHarness(t)
	pressKey(h, tea.KeyTab)
	pressKey(h, tea.KeyEnter)
	pressKey(h, tea.KeyUp)
	if got := activeID(h); got != "unit-opt-maps" {
		t.Fatalf("expected arrow up from the top to wrap to the last option, got %q", got)
	}
	pressKey(h, tea.KeyHome)
	if got := activeID(h); got != "unit-opt-court" {
		t.Fatalf("expected home to focus the first option, got %q", got)
	}
	pressKey(h, tea.KeyEnd)
	if got := activeID(h); got != "unit-opt-maps" {
		t.Fatalf("expected end to focus the last option, got %q", got)
	}
}

func TestListboxTypeAhead(t *testing.T) {
	h := newTestHarness(t)
	pressKey(h, tea.KeyTab)
	pressKey(h, tea.KeyEnter)
	pressRune(h, 'g')
	if got := activeID(h); got != "unit-opt-guild" {
		t.Fatalf("expected type-ahead to focus the guild option, got %q", got)
	}
	pressRune(h, 'c')
	if got := activeID(h); got != "unit-opt-court" {
		t.Fatalf("expected type-ahead to wrap back to court, got %q", got)
	}
	pressKey(h, tea.KeyEnter)
	if got := h.Model().form.unit.Value(); got != "court" {
		t.Fatalf("expected value court, got %q", got)
	}
}

func TestSelectedOptionGetsInitialFocusOnReopen(t *testing.T) {
	h := newTestHarness(t)
	pressKey(h, tea.KeyTab)
	pressKey(h, tea.KeyEnter)
	pressKey(h, tea.KeyDown)
	pressKey(h, tea.KeyDown)
	pressKey(h, tea.KeyEnter) // guild selected
	pressKey(h, tea.KeyEnter) // reopen
	if got := activeID(h); got != "unit-opt-guild" {
		t.Fatalf("expected initial focus on the selected option, got %q", got)
	}
}

func TestEscapeClosesTopOverlay(t *testing.T) {
	h := newTestHarness(t)
	pressKey(h, tea.KeyTab)
	pressKey(h, tea.KeyEnter)
	pressKey(h, tea.KeyEsc)
	m := h.Model()
	if m.form.unit.IsOpen() {
		t.Fatalf("expected escape to close the listbox")
	}
	if got := activeID(h); got != "unit-trigger" {
		t.Fatalf("expected focus back on the trigger, got %q", got)
	}
	pressKey(h, tea.KeyEsc)
	if m.quitting {
		t.Fatalf("expected a bare escape to do nothing")
	}
}

func TestTagsToggleStaysOpen(t *testing.T) {
	h := newTestHarness(t)
	for i := 0; i < 3; i++ {
		pressKey(h, tea.KeyTab)
	}
	pressKey(h, tea.KeyEnter)
	m := h.Model()
	if !m.form.tags.IsOpen() {
		t.Fatalf("expected the tags listbox open")
	}
	if got := activeID(h); got != "tag-opt-legal" {
		t.Fatalf("expected initial focus on the first tag, got %q", got)
	}
	pressSpace(h)
	if !m.form.tags.IsOpen() {
		t.Fatalf("expected a multi select to stay open after a toggle")
	}
	pressKey(h, tea.KeyDown)
	pressKey(h, tea.KeyDown)
	pressSpace(h)
	got := m.form.tags.Values()
	want := []string{"legal", "fragile"}
	if len(got) != len(want) {
		t.Fatalf("expected values %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected values %v in selection order, got %v", want, got)
		}
	}
	if label := m.form.tags.TriggerLabel(); label != "Legal, Fragile" {
		t.Fatalf("expected trigger label %q, got %q", "Legal, Fragile", label)
	}
	pressSpace(h)
	if m.form.tags.Selected("fragile") {
		t.Fatalf("expected a second space to untoggle the tag")
	}
	pressKey(h, tea.KeyEsc)
	if m.form.tags.IsOpen() {
		t.Fatalf("expected escape to close the listbox")
	}
	if got := m.form.tags.FormValue(); got != "legal" {
		t.Fatalf("expected form value %q, got %q", "legal", got)
	}
}

func TestTagsTriggerCollapsesToCount(t *testing.T) {
	h := newTestHarness(t)
	for i := 0; i < 3; i++ {
		pressKey(h, tea.KeyTab)
	}
	pressKey(h, tea.KeyEnter)
	for i := 0; i < 4; i++ {
		pressSpace(h)
		pressKey(h, tea.KeyDown)
	}
	m := h.Model()
	if got := len(m.form.tags.Values()); got != 4 {
		t.Fatalf("expected 4 selections, got %d", got)
	}
	if label := m.form.tags.TriggerLabel(); label != "4 selected" {
		t.Fatalf("expected the trigger to collapse to a count, got %q", label)
	}
}

func TestTagsFilterNarrowsAndRefocuses(t *testing.T) {
	h := newTestHarness(t)
	for i := 0; i < 3; i++ {
		pressKey(h, tea.KeyTab)
	}
	pressKey(h, tea.KeyEnter)
	m := h.Model()
	typeText(h, "se")
	if got := m.form.tagsSearch.Value(); got != "se" {
		t.Fatalf("expected filter text %q, got %q", "se", got)
	}
	visible := m.form.visibleTagChoices()
	if len(visible) != 1 || visible[0].value != "sealed" {
		t.Fatalf("expected only the sealed tag visible, got %#v", visible)
	}
	if got := activeID(h); got != "tag-opt-sealed" {
		t.Fatalf("expected focus moved onto the surviving option, got %q", got)
	}
	pressSpace(h)
	if !m.form.tags.Selected("sealed") {
		t.Fatalf("expected space to toggle the filtered option")
	}
	pressKey(h, tea.KeyBackspace)
	if got := m.form.tagsSearch.Value(); got != "s" {
		t.Fatalf("expected backspace to shorten the filter, got %q", got)
	}
	if got := len(m.form.visibleTagChoices()); got != 2 {
		t.Fatalf("expected sealed and restricted visible, got %d", got)
	}
	pressKey(h, tea.KeyEsc)
	pressKey(h, tea.KeyEnter)
	if got := m.form.tagsSearch.Value(); got != "" {
		t.Fatalf("expected the filter reset on reopen, got %q", got)
	}
	if got := len(m.form.visibleTagChoices()); got != len(tagChoices) {
		t.Fatalf("expected every tag visible after reopen, got %d", got)
	}
	if got := activeID(h); got != "tag-opt-sealed" {
		t.Fatalf("expected initial focus on the selected tag, got %q", got)
	}
}

func TestSignaturePaletteSearchAndCommit(t *testing.T) {
	h := newTestHarness(t)
	pressKey(h, tea.KeyTab)
	pressKey(h, tea.KeyTab)
	pressKey(h, tea.KeyEnter)
	m := h.Model()
	if !m.form.sigDialog.IsOpen() {
		t.Fatalf("expected the palette open")
	}
	if got := activeID(h); got != "sig-item-50/1/0/3" {
		t.Fatalf("expected initial focus on the first entry, got %q", got)
	}
	typeText(h, "court")
	if got := len(m.form.sig.VisibleItems()); got != 2 {
		t.Fatalf("expected two court entries, got %d", got)
	}
	if got := activeID(h); got != "sig-item-50/2/1/1" {
		t.Fatalf("expected the best match focused, got %q", got)
	}
	pressKey(h, tea.KeyDown)
	if got := activeID(h); got != "sig-item-50/2/1/2" {
		t.Fatalf("expected arrow down to step the filtered list, got %q", got)
	}
	pressKey(h, tea.KeyEnter)
	if m.form.sigDialog.IsOpen() {
		t.Fatalf("expected the selection to close the palette")
	}
	if got := m.form.signature; got != "50/2/1/2" {
		t.Fatalf("expected signature %q, got %q", "50/2/1/2", got)
	}
	if got := activeID(h); got != "sig-trigger" {
		t.Fatalf("expected focus restored to the trigger, got %q", got)
	}
	if !strings.Contains(plain(h), "[ 50/2/1/2") {
		t.Fatalf("expected the trigger to show the signature:\n%s", plain(h))
	}
}

func TestSignaturePaletteEmptyState(t *testing.T) {
	h := newTestHarness(t)
	pressKey(h, tea.KeyTab)
	pressKey(h, tea.KeyTab)
	pressKey(h, tea.KeyEnter)
	typeText(h, "zz")
	m := h.Model()
	if got := len(m.form.sig.VisibleItems()); got != 0 {
		t.Fatalf("expected no matches, got %d", got)
	}
	if !strings.Contains(plain(h), "no matching signatures") {
		t.Fatalf("expected the empty state rendered:\n%s", plain(h))
	}
	pressKey(h, tea.KeyEnter)
	if got := m.form.signature; got != "" {
		t.Fatalf("expected no commit from an empty list, got %q", got)
	}
	if !m.form.sigDialog.IsOpen() {
		t.Fatalf("expected the palette still open")
	}
	pressKey(h, tea.KeyEsc)
	if m.form.sigDialog.IsOpen() {
		t.Fatalf("expected escape to close the palette")
	}
}

func TestModalLocksScroll(t *testing.T) {
	h := newTestHarness(t)
	pressKey(h, tea.KeyTab)
	pressKey(h, tea.KeyTab)
	pressKey(h, tea.KeyEnter)
	if got := h.Model().Screen().Overflow(); got != dom.OverflowHidden {
		t.Fatalf("expected scroll locked while the palette is open, got %q", got)
	}
	pressKey(h, tea.KeyEsc)
	if got := h.Model().Screen().Overflow(); got != "" {
		t.Fatalf("expected scroll unlocked after close, got %q", got)
	}
}

func TestCommitBestSignatureUsesRanking(t *testing.T) {
	m := NewModel(80, 24, true, false, "")
	m.form.sigDialog.Open()
	m.screen.Flush()
	m.form.sigSearch.SetValue("cadastral")
	m.form.applySigQuery()
	m.form.commitBestSignature()
	m.screen.Flush()
	if got := m.form.signature; got != "50/4/2/7" {
		t.Fatalf("expected the ranked best match committed, got %q", got)
	}
	if m.form.sigDialog.IsOpen() {
		t.Fatalf("expected the palette closed after the commit")
	}
}

func TestDialogTabCycling(t *testing.T) {
	h := newTestHarness(t)
	pressKey(h, tea.KeyTab)
	pressKey(h, tea.KeyTab)
	pressKey(h, tea.KeyEnter)
	pressKey(h, tea.KeyTab)
	if got := activeID(h); got != "sig-item-50/1/0/4" {
		t.Fatalf("expected tab to step to the next entry, got %q", got)
	}
	pressKey(h, tea.KeyShiftTab)
	if got := activeID(h); got != "sig-item-50/1/0/3" {
		t.Fatalf("expected shift+tab to step back, got %q", got)
	}
	pressKey(h, tea.KeyShiftTab)
	if got := activeID(h); got != "sig-close" {
		t.Fatalf("expected shift+tab at the top to wrap to the close button, got %q", got)
	}
	pressKey(h, tea.KeyTab)
	if got := activeID(h); got != "sig-item-50/1/0/3" {
		t.Fatalf("expected tab on the close button to wrap forward, got %q", got)
	}
}

func TestTabClosesAnchoredOverlayFirst(t *testing.T) {
	h := newTestHarness(t)
	pressKey(h, tea.KeyTab)
	pressKey(h, tea.KeyEnter)
	if !h.Model().form.unit.IsOpen() {
		t.Fatalf("expected the listbox open")
	}
	pressKey(h, tea.KeyTab)
	m := h.Model()
	if m.form.unit.IsOpen() {
		t.Fatalf("expected tab to dismiss the listbox")
	}
	if got := activeID(h); got != "sig-trigger" {
		t.Fatalf("expected the step to land past the restored trigger, got %q", got)
	}
}

func TestPreviewBlockedWithoutTitle(t *testing.T) {
	h := newTestHarness(t)
	pressRune(h, 'p')
	m := h.Model()
	if m.form.preview.IsOpen() {
		t.Fatalf("expected the preview refused without a title")
	}
	if got := m.errMsg; got != "title is required before preview" {
		t.Fatalf("expected the validation message, got %q", got)
	}
	if !strings.Contains(plain(h), "! title is required before preview") {
		t.Fatalf("expected the message rendered:\n%s", plain(h))
	}
	if !traceContains(h, "preview blocked: missing title") {
		t.Fatalf("expected the refusal traced, got %#v", m.trace.entries)
	}
}

func TestTypingTitleClearsError(t *testing.T) {
	h := NewHarness(NewModel(80, 24, true, false, "description"))
	pressRune(h, 'p')
	m := h.Model()
	if m.errMsg == "" {
		t.Fatalf("expected the validation message set")
	}
	pressKey(h, tea.KeyTab)
	typeText(h, "Deed register")
	if m.errMsg != "" {
		t.Fatalf("expected the message cleared after typing, got %q", m.errMsg)
	}
	if got := m.form.titleInput.Value(); got != "Deed register" {
		t.Fatalf("expected title %q, got %q", "Deed register", got)
	}
}

func TestPreviewChordShowsRecord(t *testing.T) {
	h := newTestHarness(t)
	m := h.Model()
	m.form.titleInput.SetValue("Deed register 1850")
	pressRune(h, 'p')
	if !m.form.preview.IsOpen() {
		t.Fatalf("expected the preview open")
	}
	view := plain(h)
	if !strings.Contains(view, "Document preview") {
		t.Fatalf("expected the dialog title:\n%s", view)
	}
	if !strings.Contains(view, "Deed register 1850") {
		t.Fatalf("expected the record title:\n%s", view)
	}
	if got := activeID(h); got != "preview-close" {
		t.Fatalf("expected focus on the close button, got %q", got)
	}
	pressKey(h, tea.KeyEnter)
	if m.form.preview.IsOpen() {
		t.Fatalf("expected enter on the close button to dismiss")
	}
	if got := activeID(h); got != "tab-metadata" {
		t.Fatalf("expected focus restored after close, got %q", got)
	}
}

func TestHelpChordToggles(t *testing.T) {
	h := newTestHarness(t)
	pressRune(h, '?')
	m := h.Model()
	if !m.form.help.IsOpen() {
		t.Fatalf("expected the help popover open")
	}
	if !strings.Contains(plain(h), "navigate options") {
		t.Fatalf("expected the key reference rendered:\n%s", plain(h))
	}
	pressRune(h, '?')
	if m.form.help.IsOpen() {
		t.Fatalf("expected the same chord to close the popover")
	}
	if got := activeID(h); got != "tab-metadata" {
		t.Fatalf("expected focus restored after close, got %q", got)
	}
}

func TestWindowResizeTracksWhenNotFixed(t *testing.T) {
	h := NewHarness(NewModel(0, 0, true, false, ""))
	m := h.Model()
	if m.width != defaultWidth || m.height != defaultHeight {
		t.Fatalf("expected default dimensions, got %dx%d", m.width, m.height)
	}
	h.Send(tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.width != 100 || m.height != 30 {
		t.Fatalf("expected 100x30 after resize, got %dx%d", m.width, m.height)
	}
	fixed := NewHarness(NewModel(80, 24, true, false, ""))
	fixed.Send(tea.WindowSizeMsg{Width: 100, Height: 30})
	if fm := fixed.Model(); fm.width != 80 || fm.height != 24 {
		t.Fatalf("expected fixed dimensions kept, got %dx%d", fm.width, fm.height)
	}
}

func TestTagsPopoverFlipsAboveOnShortViewport(t *testing.T) {
	h := NewHarness(NewModel(0, 0, true, false, ""))
	h.Send(tea.WindowSizeMsg{Width: 80, Height: 15})
	for i := 0; i < 3; i++ {
		pressKey(h, tea.KeyTab)
	}
	pressKey(h, tea.KeyEnter)

	m := h.Model()
	trigger := m.form.tagsTrigger.Rect()
	box := m.form.tagsListbox.Rect()
	if box.Y >= trigger.Y {
		t.Fatalf("listbox at y=%v, want it above the trigger at y=%v", box.Y, trigger.Y)
	}

	typeText(h, "se")
	box = m.form.tagsListbox.Rect()
	if box.Y != 4 || box.Height != 4 {
		t.Fatalf("filtered listbox = %+v, want a four-row box ending above the trigger", box)
	}
	if got := activeID(h); got != "tag-opt-sealed" {
		t.Fatalf("focus = %q after filtering", got)
	}
}

func TestTracingTabShowsAndClearsEntries(t *testing.T) {
	h := newTestHarness(t)
	pressRune(h, '?')
	pressRune(h, '?')
	pressRune(h, 't')
	pressKey(h, tea.KeyEnter)
	view := plain(h)
	if !strings.Contains(view, "#1 opened help") || !strings.Contains(view, "#2 closed help") {
		t.Fatalf("expected the recorded actions listed:\n%s", view)
	}
	pressKey(h, tea.KeyTab) // clear button
	pressKey(h, tea.KeyEnter)
	m := h.Model()
	if got := len(m.trace.entries); got != 1 {
		t.Fatalf("expected only the clear marker left, got %#v", m.trace.entries)
	}
	if !strings.Contains(m.trace.entries[0], "trace cleared") {
		t.Fatalf("expected the clear traced, got %q", m.trace.entries[0])
	}
	if !strings.Contains(plain(h), "#4 trace cleared") {
		t.Fatalf("expected sequence numbers to survive the clear:\n%s", plain(h))
	}
}

func TestTraceLogBoundsAndTail(t *testing.T) {
	var log traceLog
	for i := 0; i < traceCapacity+5; i++ {
		log.add("entry %d", i)
	}
	if got := len(log.entries); got != traceCapacity {
		t.Fatalf("expected the ring capped at %d, got %d", traceCapacity, got)
	}
	tail := log.tail(2)
	if len(tail) != 2 || !strings.Contains(tail[1], "entry 104") {
		t.Fatalf("expected the newest entries last, got %#v", tail)
	}
	log.clear()
	log.add("after clear")
	if !strings.HasPrefix(log.entries[0], "#106 ") {
		t.Fatalf("expected the sequence to continue past a clear, got %q", log.entries[0])
	}
}

func TestTinyViewportDoesNotPanic(t *testing.T) {
	h := NewHarness(NewModel(20, 6, true, false, ""))
	pressKey(h, tea.KeyTab)
	pressKey(h, tea.KeyEnter)
	view := h.View()
	if got := len(strings.Split(view, "\n")); got != 6 {
		t.Fatalf("expected 6 rows, got %d", got)
	}
}
