package ui

import (
	"strings"

	"github.com/DanielMazurkiewicz/jezarch-sub006/internal/logging/events"
	"github.com/DanielMazurkiewicz/jezarch-sub006/internal/termdom"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/dom"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/focus"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/position"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/muesli/reflow/wordwrap"
)

const (
	tabMetadata    = "metadata"
	tabDescription = "description"
	tabTracing     = "tracing"
)

type choice struct {
	value string
	label string
}

var tabChoices = []choice{
	{tabMetadata, "Metadata"},
	{tabDescription, "Description"},
	{tabTracing, "Tracing"},
}

var unitChoices = []choice{
	{"court", "Court records"},
	{"parish", "Parish registers"},
	{"guild", "Guild files"},
	{"maps", "Map collection"},
}

var tagChoices = []choice{
	{"legal", "Legal"},
	{"urgent", "Urgent"},
	{"fragile", "Fragile"},
	{"sealed", "Sealed"},
	{"microfilm", "Microfilm"},
	{"restricted", "Restricted"},
}

var signatureChoices = []choice{
	{"50/1/0/3", "Parish registers 1820-1851"},
	{"50/1/0/4", "Parish registers 1852-1890"},
	{"50/2/1/1", "Court records, civil cases"},
	{"50/2/1/2", "Court records, criminal cases"},
	{"50/3/0/1", "Guild charters"},
	{"50/4/2/7", "Cadastral maps, city centre"},
}

// form owns the intake widgets: the terminal nodes they render into and
// the primitive composites that drive their behaviour. Field values are
// read back out of the composites; only the signature and the free-text
// inputs are stored here directly.
type form struct {
	model  *Model
	screen *termdom.Screen

	header     *termdom.Node
	helpAnchor *termdom.Node
	footer     *termdom.Node

	tabStrip   *termdom.Node
	tabButtons map[string]*termdom.Node
	panels     map[string]*termdom.Node
	tabs       *primitive.Tabs

	unitTrigger *termdom.Node
	unitListbox *termdom.Node
	unitOptions map[string]*termdom.Node
	unit        *primitive.Select

	tagsTrigger *termdom.Node
	tagsListbox *termdom.Node
	tagOptions  map[string]*termdom.Node
	tags        *primitive.Select
	tagsSearch  textinput.Model

	sigTrigger *termdom.Node
	sigContent *termdom.Node
	sigList    *termdom.Node
	sigItems   map[string]*termdom.Node
	sigClose   *termdom.Node
	sigDialog  *primitive.Dialog
	sig        *primitive.Command
	sigSearch  textinput.Model
	signature  string

	titleNode     *termdom.Node
	titleInput    textinput.Model
	abstractNode  *termdom.Node
	abstractInput textinput.Model

	previewTrigger *termdom.Node
	previewContent *termdom.Node
	previewBody    *termdom.Node
	previewClose   *termdom.Node
	preview        *primitive.Dialog

	helpContent *termdom.Node
	help        *primitive.Popover

	traceClear *termdom.Node

	// actions maps node ids to what activating that node does, shared
	// by pointer clicks and Enter/Space on the focused element.
	actions map[string]func()
}

func newForm(m *Model, startTab string) *form {
	f := &form{
		model:       m,
		screen:      m.screen,
		tabButtons:  make(map[string]*termdom.Node),
		panels:      make(map[string]*termdom.Node),
		unitOptions: make(map[string]*termdom.Node),
		tagOptions:  make(map[string]*termdom.Node),
		sigItems:    make(map[string]*termdom.Node),
	}
	if startTab == "" {
		startTab = tabMetadata
	}
	f.buildTree()
	f.buildComposites(startTab)
	f.buildInputs()
	f.buildActions()
	return f
}

func (f *form) buildTree() {
	s := f.screen
	root := s.Root().(*termdom.Node)

	f.header = s.NewNode("header")
	f.helpAnchor = s.NewButton("help-anchor", "[?] help")
	f.header.AppendChild(f.helpAnchor)
	root.AppendChild(f.header)

	f.tabStrip = s.NewNode("tab-strip")
	for _, c := range tabChoices {
		btn := s.NewButton("tab-"+c.value, c.label)
		f.tabButtons[c.value] = btn
		f.tabStrip.AppendChild(btn)
	}
	root.AppendChild(f.tabStrip)

	meta := s.NewNode("panel-metadata")
	f.unitTrigger = s.NewButton("unit-trigger", "")
	f.sigTrigger = s.NewButton("sig-trigger", "")
	f.tagsTrigger = s.NewButton("tags-trigger", "")
	meta.AppendChild(f.unitTrigger)
	meta.AppendChild(f.sigTrigger)
	meta.AppendChild(f.tagsTrigger)
	f.panels[tabMetadata] = meta
	root.AppendChild(meta)

	desc := s.NewNode("panel-description")
	f.titleNode = s.NewButton("title-input", "")
	f.abstractNode = s.NewButton("abstract-input", "")
	desc.AppendChild(f.titleNode)
	desc.AppendChild(f.abstractNode)
	f.panels[tabDescription] = desc
	root.AppendChild(desc)

	tracing := s.NewNode("panel-tracing")
	f.traceClear = s.NewButton("trace-clear", "[ clear ]")
	tracing.AppendChild(f.traceClear)
	f.panels[tabTracing] = tracing
	root.AppendChild(tracing)

	f.footer = s.NewNode("footer")
	f.previewTrigger = s.NewButton("preview-trigger", "[ preview ]")
	f.footer.AppendChild(f.previewTrigger)
	root.AppendChild(f.footer)

	// Overlay contents stay detached until their composite portals
	// them in on open.
	f.unitListbox = s.NewNode("unit-listbox")
	for _, c := range unitChoices {
		opt := s.NewButton("unit-opt-"+c.value, c.label)
		f.unitOptions[c.value] = opt
		f.unitListbox.AppendChild(opt)
	}

	f.tagsListbox = s.NewNode("tags-listbox")
	for _, c := range tagChoices {
		opt := s.NewButton("tag-opt-"+c.value, c.label)
		f.tagOptions[c.value] = opt
		f.tagsListbox.AppendChild(opt)
	}

	f.sigContent = s.NewNode("sig-dialog")
	f.sigList = s.NewNode("sig-list")
	for _, c := range signatureChoices {
		item := s.NewButton("sig-item-"+c.value, c.label)
		f.sigItems[c.value] = item
		f.sigList.AppendChild(item)
	}
	f.sigClose = s.NewButton("sig-close", "[ close ]")

	f.previewContent = s.NewNode("preview-dialog")
	f.previewBody = s.NewNode("preview-body")
	f.previewClose = s.NewButton("preview-close", "[ close ]")

	f.helpContent = s.NewNode("help-popover")
}

func (f *form) buildComposites(startTab string) {
	doc := f.screen

	var err error
	f.tabs, err = primitive.NewTabs(primitive.TabsConfig{
		Doc:           doc,
		DefaultValue:  startTab,
		OnValueChange: f.tabChanged,
		List:          f.ref(f.tabStrip),
	})
	if err != nil {
		panic(err)
	}
	for _, c := range tabChoices {
		_, _ = f.tabs.RegisterTab(primitive.SelectItem{
			Value: c.value,
			Label: c.label,
			El:    f.tabButtons[c.value],
		}, f.panels[c.value])
	}

	f.unit, err = primitive.NewSelect(primitive.SelectConfig{
		Doc:           doc,
		OnValueChange: f.unitChanged,
		Placeholder:   "choose unit",
		Trigger:       f.ref(f.unitTrigger),
		Listbox:       f.ref(f.unitListbox),
		Position: position.Spec{
			EstimatedHeight: float64(len(unitChoices) + 2),
			MinWidth:        listboxMinCells,
		},
	})
	if err != nil {
		panic(err)
	}
	for _, c := range unitChoices {
		_, _ = f.unit.RegisterOption(primitive.SelectItem{
			Value: c.value,
			Label: c.label,
			El:    f.unitOptions[c.value],
		})
	}

	f.tags, err = primitive.NewSelect(primitive.SelectConfig{
		Doc:            doc,
		Multiple:       true,
		OnOpenChange:   f.tagsToggled,
		OnValuesChange: f.tagsChanged,
		Placeholder:    "add tags",
		Trigger:        f.ref(f.tagsTrigger),
		Listbox:        f.ref(f.tagsListbox),
		Position: position.Spec{
			EstimatedHeight: float64(len(tagChoices) + 3),
			MinWidth:        listboxMinCells,
		},
	})
	if err != nil {
		panic(err)
	}
	for _, c := range tagChoices {
		_, _ = f.tags.RegisterOption(primitive.SelectItem{
			Value: c.value,
			Label: c.label,
			El:    f.tagOptions[c.value],
		})
	}

	f.sigDialog, err = primitive.NewDialog(primitive.DialogConfig{
		Doc:          doc,
		OnOpenChange: f.sigDialogToggled,
		Trigger:      f.ref(f.sigTrigger),
		Content:      f.ref(f.sigContent),
	})
	if err != nil {
		panic(err)
	}
	f.sigContent.AppendChild(f.screen.NewNode(f.sigDialog.TitleID))
	f.sigContent.AppendChild(f.sigList)
	f.sigContent.AppendChild(f.sigClose)

	f.sig, err = primitive.NewCommand(primitive.CommandConfig{
		Doc:      doc,
		List:     f.ref(f.sigList),
		OnSelect: f.signatureChosen,
	})
	if err != nil {
		panic(err)
	}
	for _, c := range signatureChoices {
		_, _ = f.sig.RegisterItem(primitive.SelectItem{
			Value: c.value,
			Label: c.label,
			El:    f.sigItems[c.value],
		})
	}

	f.preview, err = primitive.NewDialog(primitive.DialogConfig{
		Doc:          doc,
		OnOpenChange: f.previewToggled,
		Trigger:      f.ref(f.previewTrigger),
		Content:      f.ref(f.previewContent),
	})
	if err != nil {
		panic(err)
	}
	f.previewContent.AppendChild(f.screen.NewNode(f.preview.TitleID))
	f.previewContent.AppendChild(f.previewBody)
	f.previewContent.AppendChild(f.previewClose)

	f.help, err = primitive.NewPopover(primitive.PopoverConfig{
		Doc:          doc,
		OnOpenChange: f.helpToggled,
		Anchor:       f.ref(f.helpAnchor),
		Content:      f.ref(f.helpContent),
		Position: position.Spec{
			Align:           position.AlignEnd,
			EstimatedHeight: float64(len(helpEntries) + 2),
		},
	})
	if err != nil {
		panic(err)
	}
}

// buildInputs sets up the editable text fields. Rendering reads their
// state directly, so only editing behaviour is configured here.
func (f *form) buildInputs() {
	newInput := func(placeholder string, limit int) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.Prompt = ""
		ti.CharLimit = limit
		ti.Cursor.SetMode(cursor.CursorStatic)
		return ti
	}
	f.sigSearch = newInput("search signatures", 64)
	f.tagsSearch = newInput("filter tags", 64)
	f.titleInput = newInput("document title", 80)
	f.abstractInput = newInput("short abstract", 160)
}

func (f *form) buildActions() {
	f.actions = map[string]func(){
		f.unitTrigger.ID():    func() { f.unit.Toggle() },
		f.tagsTrigger.ID():    func() { f.tags.Toggle() },
		f.sigTrigger.ID():     func() { f.sigDialog.Open() },
		f.previewTrigger.ID(): f.openPreview,
		f.helpAnchor.ID():     func() { f.help.Toggle() },
		f.traceClear.ID():     f.clearTrace,
		f.sigClose.ID():       func() { f.sigDialog.Close() },
		f.previewClose.ID():   func() { f.preview.Close() },
		f.titleNode.ID():      func() { f.titleNode.Focus(); f.syncInputFocus() },
		f.abstractNode.ID():   func() { f.abstractNode.Focus(); f.syncInputFocus() },
	}
	for _, c := range tabChoices {
		value := c.value
		btn := f.tabButtons[value]
		f.actions[btn.ID()] = func() {
			f.tabs.Activate(value)
			btn.Focus()
		}
	}
	for _, c := range unitChoices {
		value := c.value
		f.actions[f.unitOptions[value].ID()] = func() {
			f.unit.SelectValue(value)
			f.unit.Close()
		}
	}
	for _, c := range tagChoices {
		value := c.value
		f.actions[f.tagOptions[value].ID()] = func() {
			f.tags.ToggleValue(value)
		}
	}
	for _, c := range signatureChoices {
		value := c.value
		f.actions[f.sigItems[value].ID()] = func() {
			f.sig.Activate(value)
		}
	}
}

func (f *form) ref(n *termdom.Node) func() dom.Element {
	return func() dom.Element { return n }
}

// activate runs the action bound to the given element, if any, walking
// up from the target so clicks inside a composite row still resolve.
func (f *form) activate(el dom.Element) bool {
	for cur := el; cur != nil; cur = cur.Parent() {
		if act, ok := f.actions[cur.ID()]; ok {
			act()
			return true
		}
	}
	return false
}

func (f *form) tabChanged(value string) {
	f.model.tracef("switched to %s tab", value)
	events.UI.WidgetFocus("tab:" + value)
}

func (f *form) unitChanged(value string) {
	f.model.tracef("unit set to %s", f.unitLabel(value))
	events.UI.FieldChange("unit", value)
}

func (f *form) tagsChanged(values []string) {
	label := "none"
	if len(values) > 0 {
		label = f.tags.TriggerLabel()
	}
	f.model.tracef("tags: %s", label)
	events.UI.FieldChange("tags", strings.Join(values, ","))
}

// tagsToggled resets the filter on every open so the full list greets
// the user, and releases the search input's key claim on close.
func (f *form) tagsToggled(open bool) {
	if open {
		f.tagsSearch.SetValue("")
		f.tagsSearch.Focus()
		f.applyTagFilter()
	} else {
		f.tagsSearch.Blur()
	}
}

func (f *form) signatureChosen(item primitive.SelectItem) {
	f.signature = item.Value
	f.sigDialog.Close()
	f.model.tracef("signature set to %s", item.Value)
	events.UI.FieldChange("signature", item.Value)
}

func (f *form) sigDialogToggled(open bool) {
	if open {
		f.sigSearch.SetValue("")
		f.sigSearch.Focus()
		f.sig.Reset()
		f.model.tracef("opened signature palette")
	} else {
		f.sigSearch.Blur()
		f.model.tracef("closed signature palette")
	}
}

func (f *form) previewToggled(open bool) {
	if open {
		f.model.tracef("opened preview")
	} else {
		f.model.tracef("closed preview")
	}
}

func (f *form) helpToggled(open bool) {
	if open {
		f.model.tracef("opened help")
	} else {
		f.model.tracef("closed help")
	}
}

func (f *form) openPreview() {
	if strings.TrimSpace(f.titleInput.Value()) == "" {
		f.model.errMsg = "title is required before preview"
		f.model.tracef("preview blocked: missing title")
		return
	}
	f.model.errMsg = ""
	f.preview.Open()
}

func (f *form) clearTrace() {
	f.model.trace.clear()
	f.model.tracef("trace cleared")
}

func (f *form) unitLabel(value string) string {
	for _, c := range unitChoices {
		if c.value == value {
			return c.label
		}
	}
	return value
}

// applyTagFilter re-registers every tag option with its visibility
// derived from the search text. Hidden options are disabled so roving
// skips them; re-registration keeps the original option order.
func (f *form) applyTagFilter() {
	query := strings.ToLower(strings.TrimSpace(f.tagsSearch.Value()))
	for _, c := range tagChoices {
		hidden := query != "" && !strings.Contains(strings.ToLower(c.label), query)
		_, _ = f.tags.RegisterOption(primitive.SelectItem{
			Value:    c.value,
			Label:    c.label,
			El:       f.tagOptions[c.value],
			Disabled: hidden,
		})
	}
	f.refocusVisibleTag(query)
}

func (f *form) visibleTagChoices() []choice {
	query := strings.ToLower(strings.TrimSpace(f.tagsSearch.Value()))
	if query == "" {
		return tagChoices
	}
	out := make([]choice, 0, len(tagChoices))
	for _, c := range tagChoices {
		if strings.Contains(strings.ToLower(c.label), query) {
			out = append(out, c)
		}
	}
	return out
}

// refocusVisibleTag moves focus off an option the filter just hid.
func (f *form) refocusVisibleTag(query string) {
	if !f.tags.IsOpen() {
		return
	}
	visible := f.visibleTagChoices()
	if len(visible) == 0 {
		return
	}
	active := f.screen.ActiveElement()
	if active != nil {
		for _, c := range visible {
			if f.tagOptions[c.value].ID() == active.ID() {
				return
			}
		}
	}
	f.tagOptions[visible[0].value].Focus()
}

func (f *form) applySigQuery() {
	f.sig.SetQuery(f.sigSearch.Value())
	f.focusBestSignature()
}

// focusBestSignature pre-focuses the ranked best match so Enter commits
// it without an arrow press first.
func (f *form) focusBestSignature() {
	items := f.sig.VisibleItems()
	if len(items) == 0 {
		return
	}
	idx := f.sig.BestMatchIndex()
	if idx < 0 || idx >= len(items) {
		idx = 0
	}
	if items[idx].El != nil {
		items[idx].El.Focus()
	}
}

// commitBestSignature activates the ranked best match directly, for an
// Enter that reaches the application with no item focused.
func (f *form) commitBestSignature() {
	items := f.sig.VisibleItems()
	if len(items) == 0 {
		return
	}
	idx := f.sig.BestMatchIndex()
	if idx < 0 || idx >= len(items) {
		idx = 0
	}
	f.sig.Activate(items[idx].Value)
}

// record flattens the current field values into label/value rows for
// the preview dialog. Long abstracts wrap onto continuation rows with
// an empty label cell.
func (f *form) record() [][]string {
	title := strings.TrimSpace(f.titleInput.Value())
	if title == "" {
		title = "(untitled)"
	}
	abstract := strings.TrimSpace(f.abstractInput.Value())
	if abstract == "" {
		abstract = "-"
	}
	unit := "-"
	if v := f.unit.Value(); v != "" {
		unit = f.unitLabel(v)
	}
	sig := f.signature
	if sig == "" {
		sig = "-"
	}
	tags := "-"
	if len(f.tags.Values()) > 0 {
		tags = f.tags.TriggerLabel()
	}
	rows := [][]string{{"Title", title}}
	abstractLines := strings.Split(wordwrap.String(abstract, previewTextCells), "\n")
	rows = append(rows, []string{"Abstract", abstractLines[0]})
	for _, line := range abstractLines[1:] {
		rows = append(rows, []string{"", line})
	}
	return append(rows,
		[]string{"Unit", unit},
		[]string{"Signature", sig},
		[]string{"Tags", tags},
	)
}

// focusRing lists the tab stops of the base layer for the active tab,
// in visual order.
func (f *form) focusRing() []*termdom.Node {
	ring := make([]*termdom.Node, 0, 6)
	active := f.tabs.ActiveValue()
	if btn, ok := f.tabButtons[active]; ok {
		ring = append(ring, btn)
	}
	switch active {
	case tabMetadata:
		ring = append(ring, f.unitTrigger, f.sigTrigger, f.tagsTrigger)
	case tabDescription:
		ring = append(ring, f.titleNode, f.abstractNode)
	case tabTracing:
		ring = append(ring, f.traceClear)
	}
	if f.model.showFooter {
		ring = append(ring, f.previewTrigger)
	}
	ring = append(ring, f.helpAnchor)
	return ring
}

func (f *form) focusRingStart() {
	ring := f.focusRing()
	if len(ring) > 0 {
		ring[0].Focus()
	}
	f.syncInputFocus()
}

// stepFocus advances the base focus ring. Focus parked on a tab button
// other than the active one still counts as the strip position.
func (f *form) stepFocus(back bool) {
	ring := f.focusRing()
	if len(ring) == 0 {
		return
	}
	cur := -1
	if active := f.screen.ActiveElement(); active != nil {
		for i, n := range ring {
			if n.ID() == active.ID() {
				cur = i
				break
			}
		}
		if cur < 0 && f.isTabButton(active) {
			cur = 0
		}
	}
	var next int
	if back {
		next = cur - 1
		if next < 0 {
			next = len(ring) - 1
		}
	} else {
		next = cur + 1
		if next >= len(ring) {
			next = 0
		}
	}
	ring[next].Focus()
	events.UI.WidgetFocus(ring[next].ID())
	f.syncInputFocus()
}

// stepDialogFocus advances focus through the open dialog's focusable
// elements. The dialog's own trap handles the boundary wraps; interior
// steps are the host's to make.
func (f *form) stepDialogFocus(back bool) {
	var content *termdom.Node
	switch {
	case f.sigDialog.IsOpen():
		content = f.sigContent
	case f.preview.IsOpen():
		content = f.previewContent
	default:
		return
	}
	els := make([]dom.Element, 0, 8)
	for _, el := range focus.Collect(content) {
		if _, hidden := el.Attr("data-hidden"); hidden {
			continue
		}
		els = append(els, el)
	}
	if len(els) == 0 {
		return
	}
	cur := -1
	if active := f.screen.ActiveElement(); active != nil {
		for i, el := range els {
			if el.ID() == active.ID() {
				cur = i
				break
			}
		}
	}
	var next int
	if back {
		next = cur - 1
		if next < 0 {
			next = len(els) - 1
		}
	} else {
		next = cur + 1
		if next >= len(els) {
			next = 0
		}
	}
	els[next].Focus()
	events.UI.WidgetFocus(els[next].ID())
}

// closeAnchoredOverlays dismisses the non-modal overlays.
func (f *form) closeAnchoredOverlays() {
	if f.unit.IsOpen() {
		f.unit.Close()
	}
	if f.tags.IsOpen() {
		f.tags.Close()
	}
	if f.help.IsOpen() {
		f.help.Close()
	}
}

func (f *form) isTabButton(el dom.Element) bool {
	for _, btn := range f.tabButtons {
		if btn.ID() == el.ID() {
			return true
		}
	}
	return false
}

// syncInputFocus mirrors element focus into the free-text inputs so
// exactly the focused one shows its cursor and accepts keystrokes.
func (f *form) syncInputFocus() {
	activeID := ""
	if active := f.screen.ActiveElement(); active != nil {
		activeID = active.ID()
	}
	if activeID == f.titleNode.ID() {
		f.titleInput.Focus()
	} else {
		f.titleInput.Blur()
	}
	if activeID == f.abstractNode.ID() {
		f.abstractInput.Focus()
	} else {
		f.abstractInput.Blur()
	}
}

// typingTarget picks the text input that should receive printable keys:
// an open palette or listbox search first, otherwise the focused
// description field.
func (f *form) typingTarget() *textinput.Model {
	if f.sigDialog.IsOpen() {
		return &f.sigSearch
	}
	if f.tags.IsOpen() {
		return &f.tagsSearch
	}
	active := f.screen.ActiveElement()
	if active == nil {
		return nil
	}
	switch active.ID() {
	case f.titleNode.ID():
		return &f.titleInput
	case f.abstractNode.ID():
		return &f.abstractInput
	}
	return nil
}

// afterTyping re-applies whatever the edited input feeds.
func (f *form) afterTyping(target *textinput.Model) {
	switch target {
	case &f.sigSearch:
		f.applySigQuery()
	case &f.tagsSearch:
		f.applyTagFilter()
	case &f.titleInput:
		if strings.TrimSpace(f.titleInput.Value()) != "" {
			f.model.errMsg = ""
		}
	}
}

// modalOpen reports whether a focus-trapping dialog is up.
func (f *form) modalOpen() bool {
	return f.sigDialog.IsOpen() || f.preview.IsOpen()
}

// anyOverlayOpen reports whether any overlay at all is up.
func (f *form) anyOverlayOpen() bool {
	return f.modalOpen() || f.unit.IsOpen() || f.tags.IsOpen() || f.help.IsOpen()
}
