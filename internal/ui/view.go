package ui

import (
	"strings"

	"github.com/DanielMazurkiewicz/jezarch-sub006/internal/format/table"
	"github.com/DanielMazurkiewicz/jezarch-sub006/internal/termdom"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/dom"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/position"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/x/ansi"
)

// Layout constants, in terminal cells. The field rows double as render
// rows and hit-test rectangles, so renderers and layout share them.
const (
	listboxMinCells = 24
	triggerCells    = 32
	inputCells      = 44
	labelCol        = 2
	fieldCol        = 13
	sigDialogCells  = 48
	previewCells    = 50

	// Preview body width left for a value line once the border, lead
	// and the widest field label are paid for.
	previewTextCells = 35

	rowTabs       = 1
	rowSeparator  = 2
	rowFirstField = 4
	rowGap        = 2
)

var helpEntries = [][]string{
	{"tab", "move focus"},
	{"enter", "activate"},
	{"arrows", "navigate options"},
	{"esc", "close overlay"},
	{"p", "preview record"},
	{"q", "quit"},
}

// layout assigns every visible element its rectangle for the current
// frame. It runs after each message so hit-testing and overlay anchors
// always match what View renders next.
func (m *Model) layout() {
	f := m.form
	w, h := m.width, m.height

	root, ok := m.screen.Root().(*termdom.Node)
	if ok {
		root.SetRect(cellRect(0, 0, w, h))
	}

	f.header.SetRect(cellRect(0, 0, w, 1))
	f.helpAnchor.SetRect(cellRect(w-9, 0, 9, 1))

	f.tabStrip.SetRect(cellRect(0, rowTabs, w, 1))
	x := labelCol
	for _, c := range tabChoices {
		btn := f.tabButtons[c.value]
		bw := len(c.label) + 4
		btn.SetRect(cellRect(x, rowTabs, bw, 1))
		x += bw + 1
	}

	active := f.tabs.ActiveValue()
	for _, c := range tabChoices {
		panel := f.panels[c.value]
		if c.value != active {
			clearRects(panel)
			continue
		}
		panel.SetRect(cellRect(0, rowSeparator+1, w, h-rowSeparator-3))
	}
	switch active {
	case tabMetadata:
		f.unitTrigger.SetRect(cellRect(fieldCol, rowFirstField, triggerCells, 1))
		f.sigTrigger.SetRect(cellRect(fieldCol, rowFirstField+rowGap, triggerCells, 1))
		f.tagsTrigger.SetRect(cellRect(fieldCol, rowFirstField+2*rowGap, triggerCells, 1))
	case tabDescription:
		f.titleNode.SetRect(cellRect(fieldCol, rowFirstField, inputCells, 1))
		f.abstractNode.SetRect(cellRect(fieldCol, rowFirstField+rowGap, inputCells, 1))
	case tabTracing:
		f.traceClear.SetRect(cellRect(labelCol, rowFirstField, 9, 1))
	}

	f.footer.SetRect(cellRect(0, h-1, w, 1))
	if m.showFooter {
		// One cell wider than the label so the focused render with its
		// leading marker stays inside the hit rectangle.
		f.previewTrigger.SetRect(cellRect(w-13, h-1, 12, 1))
	} else {
		f.previewTrigger.SetRect(dom.Rect{})
	}

	m.layoutOverlays()
}

func (m *Model) layoutOverlays() {
	f := m.form
	w, h := m.width, m.height

	if f.unit.IsOpen() {
		if p, ok := f.unit.Reposition(); ok {
			bw := int(p.Width)
			bh := len(unitChoices) + 2
			bx, by := placeBox(p, bw, bh, w, h)
			f.unitListbox.SetRect(cellRect(bx, by, bw, bh))
			for i, c := range unitChoices {
				f.unitOptions[c.value].SetRect(cellRect(bx+1, by+1+i, bw-2, 1))
			}
		}
	}

	if f.tags.IsOpen() {
		if p, ok := f.tags.Reposition(); ok {
			visible := f.visibleTagChoices()
			bw := int(p.Width)
			bh := len(visible) + 3
			bx, by := placeBox(p, bw, bh, w, h)
			f.tagsListbox.SetRect(cellRect(bx, by, bw, bh))
			for _, c := range tagChoices {
				f.tagOptions[c.value].SetRect(dom.Rect{})
			}
			for i, c := range visible {
				f.tagOptions[c.value].SetRect(cellRect(bx+1, by+2+i, bw-2, 1))
			}
		}
	}

	if f.sigDialog.IsOpen() {
		visible := f.sig.VisibleItems()
		n := len(visible)
		if n == 0 {
			n = 1
		}
		bw := sigDialogCells
		bh := n + 5
		bx, by := centerBox(bw, bh, w, h)
		f.sigContent.SetRect(cellRect(bx, by, bw, bh))
		f.sigList.SetRect(cellRect(bx+1, by+3, bw-2, n))
		for _, c := range signatureChoices {
			f.sigItems[c.value].SetRect(dom.Rect{})
		}
		for i, item := range visible {
			f.sigItems[item.Value].SetRect(cellRect(bx+1, by+3+i, bw-2, 1))
		}
		f.sigClose.SetRect(cellRect(bx+bw-11, by+3+n, 9, 1))
	}

	if f.preview.IsOpen() {
		rows := f.record()
		bw := previewCells
		bh := len(rows) + 5
		bx, by := centerBox(bw, bh, w, h)
		f.previewContent.SetRect(cellRect(bx, by, bw, bh))
		f.previewBody.SetRect(cellRect(bx+1, by+3, bw-2, len(rows)))
		f.previewClose.SetRect(cellRect(bx+bw-11, by+3+len(rows), 9, 1))
	}

	if f.help.IsOpen() {
		if p, ok := f.help.Reposition(); ok {
			lines := table.Format(helpEntries, nil)
			bw := maxWidth(lines) + 4
			bh := len(lines) + 2
			bx, by := placeBox(p, bw, bh, w, h)
			f.helpContent.SetRect(cellRect(bx, by, bw, bh))
		}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	base := strings.Join(m.renderBase(), "\n")
	return termdom.Compose(base, m.overlayLayers(), m.width, m.height)
}

func (m *Model) renderBase() []string {
	w, h := m.width, m.height
	rows := make([]string, h)

	rows[0] = m.renderHeader()
	rows[rowTabs] = m.renderTabStrip()
	rows[rowSeparator] = styles.OverlayBorder.Render(strings.Repeat("-", w))

	switch m.form.tabs.ActiveValue() {
	case tabMetadata:
		m.renderMetadata(rows)
	case tabDescription:
		m.renderDescription(rows)
	case tabTracing:
		m.renderTracing(rows)
	}

	if m.errMsg != "" && h >= 2 {
		rows[h-2] = "  " + styles.Error.Render("! "+m.errMsg)
	}
	if m.showFooter {
		rows[h-1] = m.renderFooter()
	}
	return rows
}

func (m *Model) renderHeader() string {
	left := styles.Header.Render("jezarch console - document intake")
	right := "[?] help"
	if m.isFocused(m.form.helpAnchor) {
		right = styles.FieldFocused.Render(">[?] help")
	} else {
		right = styles.Label.Render(right)
	}
	gap := m.width - 1 - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		gap = 1
	}
	return " " + left + strings.Repeat(" ", gap) + right
}

func (m *Model) renderTabStrip() string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", labelCol))
	active := m.form.tabs.ActiveValue()
	for i, c := range tabChoices {
		if i > 0 {
			b.WriteString(" ")
		}
		focused := m.isFocused(m.form.tabButtons[c.value])
		open, close := " ", " "
		if focused {
			open, close = ">", "<"
		}
		var seg string
		if c.value == active {
			seg = styles.TabActive.Render("[" + open + c.label + close + "]")
		} else {
			seg = styles.TabInactive.Render(" " + open + c.label + close + " ")
		}
		b.WriteString(seg)
	}
	return b.String()
}

func (m *Model) renderMetadata(rows []string) {
	f := m.form
	unitText := f.unit.TriggerLabel()
	sigText := f.signature
	if sigText == "" {
		sigText = "pick signature"
	}
	tagsText := f.tags.TriggerLabel()

	setRow(rows, rowFirstField, m.fieldRow(f.unitTrigger, "Unit:", m.triggerBox(unitText, f.unit.Value() == "", " v ]")))
	setRow(rows, rowFirstField+rowGap, m.fieldRow(f.sigTrigger, "Signature:", m.triggerBox(sigText, f.signature == "", "...]")))
	setRow(rows, rowFirstField+2*rowGap, m.fieldRow(f.tagsTrigger, "Tags:", m.triggerBox(tagsText, len(f.tags.Values()) == 0, " v ]")))
}

func (m *Model) renderDescription(rows []string) {
	f := m.form
	setRow(rows, rowFirstField, m.fieldRow(f.titleNode, "Title:", m.inputBox(f.titleInput)))
	setRow(rows, rowFirstField+rowGap, m.fieldRow(f.abstractNode, "Abstract:", m.inputBox(f.abstractInput)))
}

func (m *Model) renderTracing(rows []string) {
	f := m.form
	marker := "  "
	style := styles.Field
	if m.isFocused(f.traceClear) {
		marker = "> "
		style = styles.FieldFocused
	}
	setRow(rows, rowFirstField, marker+style.Render("[ clear ]"))

	first := rowFirstField + 2
	last := m.height - 3
	if first > last {
		return
	}
	entries := m.trace.tail(last - first + 1)
	if len(entries) == 0 {
		setRow(rows, first, "  "+styles.Info.Render("(no actions recorded)"))
		return
	}
	for i, entry := range entries {
		setRow(rows, first+i, "  "+styles.Trace.Render(padCell(entry, m.width-4)))
	}
}

func (m *Model) renderFooter() string {
	hints := styles.Footer.Render("tab move   enter activate   esc close   p preview   q quit")
	right := "[ preview ]"
	if m.isFocused(m.form.previewTrigger) {
		right = styles.FieldFocused.Render(">[ preview ]")
	} else {
		right = styles.Footer.Render(right)
	}
	gap := m.width - 1 - ansi.StringWidth(hints) - ansi.StringWidth(right) - 2
	if gap < 1 {
		gap = 1
	}
	return "  " + hints + strings.Repeat(" ", gap) + right
}

// fieldRow renders one labelled field line, with the focus marker in
// the left gutter when the trigger owns element focus.
func (m *Model) fieldRow(n *termdom.Node, label, box string) string {
	marker := "  "
	if m.isFocused(n) {
		marker = "> "
	}
	return marker + styles.Label.Render(padCell(label, fieldCol-labelCol-1)) + " " + box
}

func setRow(rows []string, idx int, content string) {
	if idx >= 0 && idx < len(rows) {
		rows[idx] = content
	}
}

// triggerBox renders a closed trigger. The suffix distinguishes
// dropdown triggers from dialog openers.
func (m *Model) triggerBox(text string, placeholder bool, suffix string) string {
	style := styles.Field
	if placeholder {
		style = styles.Placeholder
	}
	inner := triggerCells - 2 - len(suffix)
	return styles.Label.Render("[ ") + style.Render(padCell(text, inner)) + styles.Label.Render(suffix)
}

// inputBox renders a free-text field from its state. The trailing
// underscore stands in for the cursor while the input has focus.
func (m *Model) inputBox(ti textinput.Model) string {
	inner := inputCells - 4
	text := ti.Value()
	style := styles.Field
	if text == "" && !ti.Focused() {
		text = ti.Placeholder
		style = styles.Placeholder
	} else if ti.Focused() {
		text += "_"
	}
	return styles.Label.Render("[ ") + style.Render(padCell(text, inner)) + styles.Label.Render(" ]")
}

func (m *Model) overlayLayers() []termdom.Layer {
	f := m.form
	layers := make([]termdom.Layer, 0, 3)
	if f.unit.IsOpen() {
		layers = append(layers, m.unitLayer())
	}
	if f.tags.IsOpen() {
		layers = append(layers, m.tagsLayer())
	}
	if f.help.IsOpen() {
		layers = append(layers, m.helpLayer())
	}
	if f.preview.IsOpen() {
		layers = append(layers, m.previewLayer())
	}
	if f.sigDialog.IsOpen() {
		layers = append(layers, m.sigLayer())
	}
	return layers
}

func (m *Model) unitLayer() termdom.Layer {
	f := m.form
	r := f.unitListbox.Rect()
	inner := int(r.Width) - 2
	lines := make([]string, 0, int(r.Height))
	lines = append(lines, borderLine(inner))
	for _, c := range unitChoices {
		focused := m.isFocused(f.unitOptions[c.value])
		selected := f.unit.Selected(c.value)
		lines = append(lines, boxLine(optionText(c.label, focused, selected, false), inner))
	}
	lines = append(lines, borderLine(inner))
	return termdom.Layer{X: int(r.X), Y: int(r.Y), Lines: lines}
}

func (m *Model) tagsLayer() termdom.Layer {
	f := m.form
	r := f.tagsListbox.Rect()
	inner := int(r.Width) - 2
	lines := make([]string, 0, int(r.Height))
	lines = append(lines, borderLine(inner))
	lines = append(lines, boxLine(searchText(f.tagsSearch), inner))
	for _, c := range f.visibleTagChoices() {
		focused := m.isFocused(f.tagOptions[c.value])
		selected := f.tags.Selected(c.value)
		lines = append(lines, boxLine(optionText(c.label, focused, selected, true), inner))
	}
	lines = append(lines, borderLine(inner))
	return termdom.Layer{X: int(r.X), Y: int(r.Y), Lines: lines}
}

func (m *Model) sigLayer() termdom.Layer {
	f := m.form
	r := f.sigContent.Rect()
	inner := int(r.Width) - 2
	lines := make([]string, 0, int(r.Height))
	lines = append(lines, borderLine(inner))
	lines = append(lines, boxLine(" "+styles.DialogTitle.Render("Signature palette"), inner))
	lines = append(lines, boxLine(searchText(f.sigSearch), inner))

	visible := f.sig.VisibleItems()
	if len(visible) == 0 {
		lines = append(lines, boxLine("  "+styles.Info.Render("no matching signatures"), inner))
	} else {
		cells := make([][]string, len(visible))
		for i, item := range visible {
			cells[i] = []string{item.Value, item.Label}
		}
		aligned := table.Format(cells, nil)
		for i, item := range visible {
			focused := m.isFocused(f.sigItems[item.Value])
			marker := "  "
			style := styles.Option
			if focused {
				marker = "> "
				style = styles.OptionFocused
			}
			lines = append(lines, boxLine(marker+style.Render(aligned[i]), inner))
		}
	}

	closeText := "[ close ]"
	if m.isFocused(f.sigClose) {
		closeText = styles.FieldFocused.Render(">[ close ]")
	} else {
		closeText = styles.Field.Render(closeText)
	}
	pad := inner - 1 - ansi.StringWidth(closeText)
	if pad < 0 {
		pad = 0
	}
	lines = append(lines, boxLine(strings.Repeat(" ", pad)+closeText, inner))
	lines = append(lines, borderLine(inner))
	return termdom.Layer{X: int(r.X), Y: int(r.Y), Lines: lines}
}

func (m *Model) previewLayer() termdom.Layer {
	f := m.form
	r := f.previewContent.Rect()
	inner := int(r.Width) - 2
	lines := make([]string, 0, int(r.Height))
	lines = append(lines, borderLine(inner))
	lines = append(lines, boxLine(" "+styles.DialogTitle.Render("Document preview"), inner))
	lines = append(lines, boxLine("", inner))
	for _, row := range table.Format(f.record(), nil) {
		lines = append(lines, boxLine("  "+styles.DialogBody.Render(row), inner))
	}

	closeText := "[ close ]"
	if m.isFocused(f.previewClose) {
		closeText = styles.FieldFocused.Render(">[ close ]")
	} else {
		closeText = styles.Field.Render(closeText)
	}
	pad := inner - 1 - ansi.StringWidth(closeText)
	if pad < 0 {
		pad = 0
	}
	lines = append(lines, boxLine(strings.Repeat(" ", pad)+closeText, inner))
	lines = append(lines, borderLine(inner))
	return termdom.Layer{X: int(r.X), Y: int(r.Y), Lines: lines}
}

func (m *Model) helpLayer() termdom.Layer {
	f := m.form
	r := f.helpContent.Rect()
	inner := int(r.Width) - 2
	lines := make([]string, 0, int(r.Height))
	lines = append(lines, borderLine(inner))
	for _, row := range table.Format(helpEntries, nil) {
		lines = append(lines, boxLine(" "+styles.Info.Render(row), inner))
	}
	lines = append(lines, borderLine(inner))
	return termdom.Layer{X: int(r.X), Y: int(r.Y), Lines: lines}
}

func optionText(label string, focused, selected, checkbox bool) string {
	marker := "  "
	if focused {
		marker = "> "
	}
	var sel string
	if checkbox {
		sel = "[ ] "
		if selected {
			sel = "[x] "
		}
	} else {
		sel = "  "
		if selected {
			sel = "* "
		}
	}
	style := styles.Option
	switch {
	case focused:
		style = styles.OptionFocused
	case selected:
		style = styles.OptionSelected
	}
	return marker + style.Render(sel+label)
}

func searchText(ti textinput.Model) string {
	text := ti.Value()
	if text == "" {
		return " " + styles.SearchPrompt.Render("> ") + styles.SearchPlaceholder.Render(ti.Placeholder)
	}
	return " " + styles.SearchPrompt.Render("> ") + styles.Field.Render(text+"_")
}

func borderLine(inner int) string {
	return styles.OverlayBorder.Render("+" + strings.Repeat("-", inner) + "+")
}

func boxLine(content string, inner int) string {
	return styles.OverlayBorder.Render("|") + padCell(content, inner) + styles.OverlayBorder.Render("|")
}

// padCell truncates or pads styled text to the given display width.
func padCell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) > width {
		s = ansi.Truncate(s, width, "")
	}
	if gap := width - ansi.StringWidth(s); gap > 0 {
		s += strings.Repeat(" ", gap)
	}
	return s
}

func cellRect(x, y, w, h int) dom.Rect {
	return dom.Rect{X: float64(x), Y: float64(y), Width: float64(w), Height: float64(h)}
}

func clearRects(n *termdom.Node) {
	n.SetRect(dom.Rect{})
	for _, c := range n.Children() {
		if child, ok := c.(*termdom.Node); ok {
			clearRects(child)
		}
	}
}

// placeBox turns a placement into the box's top-left corner, applying
// the side and alignment corrections for the rendered size and keeping
// the box inside the viewport.
func placeBox(p position.Placement, bw, bh, vw, vh int) (int, int) {
	x := int(p.X)
	switch p.Align {
	case position.AlignEnd:
		x -= bw
	case position.AlignCenter:
		x -= bw / 2
	}
	y := int(p.Y)
	if p.Side == position.SideTop {
		y -= bh
	}
	if x > vw-bw {
		x = vw - bw
	}
	if x < 0 {
		x = 0
	}
	if y > vh-bh {
		y = vh - bh
	}
	if y < 0 {
		y = 0
	}
	return x, y
}

func centerBox(bw, bh, vw, vh int) (int, int) {
	x := (vw - bw) / 2
	if x < 0 {
		x = 0
	}
	y := (vh - bh) / 2
	if y < 0 {
		y = 0
	}
	return x, y
}

func maxWidth(lines []string) int {
	max := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > max {
			max = w
		}
	}
	return max
}

func (m *Model) isFocused(n *termdom.Node) bool {
	active := m.screen.ActiveElement()
	return active != nil && active.ID() == n.ID()
}
