package primitive

import (
	"errors"
	"testing"

	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/dom"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/domtest"
)

type commandFixture struct {
	env      *domtest.Env
	list     *domtest.Node
	items    map[string]*domtest.Node
	removes  map[string]func()
	selected []string
	cmd      *Command
}

// newCommandFixture wires a signature picker list with three archive
// paths, the shape the palette filters in the forms that embed it.
func newCommandFixture(t *testing.T) *commandFixture {
	t.Helper()
	env := domtest.New()
	f := &commandFixture{
		env:     env,
		items:   make(map[string]*domtest.Node),
		removes: make(map[string]func()),
	}
	f.list = env.NewNode("sig-list")
	env.Root().AppendChild(f.list)

	var err error
	f.cmd, err = NewCommand(CommandConfig{
		Doc:      env,
		List:     func() dom.Element { return f.list },
		OnSelect: func(item SelectItem) { f.selected = append(f.selected, item.Value) },
	})
	if err != nil {
		t.Fatalf("NewCommand: %v", err)
	}

	f.addItem(t, "sig-a1", "Archive/Box 12")
	f.addItem(t, "sig-b2", "Archive/Folder 3")
	f.addItem(t, "sig-c3", "Court records")
	return f
}

func (f *commandFixture) addItem(t *testing.T, value, label string) {
	t.Helper()
	el := f.env.NewButton("item-"+value, label)
	f.list.AppendChild(el)
	remove, err := f.cmd.RegisterItem(SelectItem{Value: value, Label: label, El: el})
	if err != nil {
		t.Fatalf("RegisterItem(%s): %v", value, err)
	}
	f.items[value] = el
	f.removes[value] = remove
}

func (f *commandFixture) hidden(value string) bool {
	_, ok := f.items[value].Attr("data-hidden")
	return ok
}

func (f *commandFixture) visibleValues() []string {
	items := f.cmd.VisibleItems()
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Value
	}
	return out
}

func keydown(key string) *dom.Event {
	return &dom.Event{Type: dom.KeyDown, Key: key}
}

func TestCommandFilterHidesNonMatches(t *testing.T) {
	f := newCommandFixture(t)
	if got, _ := f.list.Attr("role"); got != "listbox" {
		t.Fatalf("list role = %q", got)
	}
	if got, _ := f.items["sig-a1"].Attr("role"); got != "option" {
		t.Fatalf("item role = %q", got)
	}

	f.cmd.SetQuery("ARCHIVE")
	if got := f.visibleValues(); len(got) != 2 || got[0] != "sig-a1" || got[1] != "sig-b2" {
		t.Fatalf("visible = %v, the match must be case-insensitive", got)
	}
	if !f.hidden("sig-c3") {
		t.Fatalf("non-matching item not marked hidden")
	}
	if f.hidden("sig-a1") || f.hidden("sig-b2") {
		t.Fatalf("matching items marked hidden")
	}

	f.cmd.SetQuery("box 12")
	if got := f.visibleValues(); len(got) != 1 || got[0] != "sig-a1" {
		t.Fatalf("visible = %v for a mid-label query", got)
	}
	if f.cmd.Empty() {
		t.Fatalf("Empty with a match visible")
	}
}

func TestCommandEmptyStateAndReset(t *testing.T) {
	f := newCommandFixture(t)
	f.cmd.SetQuery("microfiche")
	if !f.cmd.Empty() {
		t.Fatalf("Empty = false with nothing matching")
	}
	for value := range f.items {
		if !f.hidden(value) {
			t.Fatalf("%s visible under a non-matching query", value)
		}
	}

	f.cmd.Reset()
	if f.cmd.Query() != "" {
		t.Fatalf("query = %q after reset", f.cmd.Query())
	}
	if f.cmd.Empty() {
		t.Fatalf("Empty after reset")
	}
	for value := range f.items {
		if f.hidden(value) {
			t.Fatalf("%s still hidden after reset", value)
		}
	}
}

func TestCommandKeyboardDrivesSelection(t *testing.T) {
	f := newCommandFixture(t)

	if handled := f.cmd.HandleKey(keydown(dom.KeyArrowDown)); !handled {
		t.Fatalf("arrow down not handled")
	}
	if f.env.ActiveElement() != dom.Element(f.items["sig-a1"]) {
		t.Fatalf("active = %v, want the first item", f.env.ActiveElement())
	}
	f.cmd.HandleKey(keydown(dom.KeyArrowDown))
	if f.env.ActiveElement() != dom.Element(f.items["sig-b2"]) {
		t.Fatalf("active = %v, want the second item", f.env.ActiveElement())
	}

	f.cmd.HandleKey(keydown(dom.KeyEnter))
	if len(f.selected) != 1 || f.selected[0] != "sig-b2" {
		t.Fatalf("selected = %v after enter", f.selected)
	}

	// Single-character type-ahead jumps by label initial.
	if handled := f.cmd.HandleKey(keydown("c")); !handled {
		t.Fatalf("type-ahead not handled")
	}
	if f.env.ActiveElement() != dom.Element(f.items["sig-c3"]) {
		t.Fatalf("active = %v after type-ahead", f.env.ActiveElement())
	}

	consumed := keydown(dom.KeyEnter)
	consumed.Consume()
	if f.cmd.HandleKey(consumed) {
		t.Fatalf("a consumed event drove activation")
	}
	if len(f.selected) != 1 {
		t.Fatalf("selected = %v, the consumed enter must not fire", f.selected)
	}
}

func TestCommandFilteredNavigationSkipsHidden(t *testing.T) {
	f := newCommandFixture(t)
	f.cmd.SetQuery("archive")

	f.cmd.HandleKey(keydown(dom.KeyArrowDown))
	f.cmd.HandleKey(keydown(dom.KeyArrowDown))
	if f.env.ActiveElement() != dom.Element(f.items["sig-b2"]) {
		t.Fatalf("active = %v, want the last visible item", f.env.ActiveElement())
	}

	// The wrap must cycle over the two visible items, never the hidden one.
	f.cmd.HandleKey(keydown(dom.KeyArrowDown))
	if f.env.ActiveElement() != dom.Element(f.items["sig-a1"]) {
		t.Fatalf("active = %v after wrapping", f.env.ActiveElement())
	}

	f.cmd.HandleKey(keydown(dom.KeyEnter))
	if len(f.selected) != 1 || f.selected[0] != "sig-a1" {
		t.Fatalf("selected = %v", f.selected)
	}
}

func TestCommandActivateByValue(t *testing.T) {
	f := newCommandFixture(t)
	if !f.cmd.Activate("sig-c3") {
		t.Fatalf("visible item not activatable")
	}
	if len(f.selected) != 1 || f.selected[0] != "sig-c3" {
		t.Fatalf("selected = %v", f.selected)
	}

	f.cmd.SetQuery("archive")
	if f.cmd.Activate("sig-c3") {
		t.Fatalf("hidden item activated")
	}
	if len(f.selected) != 1 {
		t.Fatalf("selected = %v after a refused activation", f.selected)
	}
	if !f.cmd.Activate("sig-b2") {
		t.Fatalf("visible item refused under a filter")
	}
}

func TestCommandItemRemovalAndReRegistration(t *testing.T) {
	f := newCommandFixture(t)

	f.removes["sig-b2"]()
	if got := f.visibleValues(); len(got) != 2 || got[0] != "sig-a1" || got[1] != "sig-c3" {
		t.Fatalf("visible = %v after removal", got)
	}
	f.removes["sig-b2"]()
	if got := len(f.cmd.VisibleItems()); got != 2 {
		t.Fatalf("%d items, the remove func must be idempotent", got)
	}

	// Re-registering a live value updates the label in place.
	if _, err := f.cmd.RegisterItem(SelectItem{
		Value: "sig-a1",
		Label: "Archive/Box 12 (sealed)",
		El:    f.items["sig-a1"],
	}); err != nil {
		t.Fatalf("RegisterItem: %v", err)
	}
	items := f.cmd.VisibleItems()
	if items[0].Value != "sig-a1" || items[0].Label != "Archive/Box 12 (sealed)" {
		t.Fatalf("items[0] = %+v, want the updated label in the original position", items[0])
	}
}

func TestCommandBestMatchIndexOverVisible(t *testing.T) {
	f := newCommandFixture(t)

	f.cmd.SetQuery("court")
	if got := f.cmd.BestMatchIndex(); got != 0 {
		t.Fatalf("index = %d with one visible match", got)
	}

	f.cmd.SetQuery("archive")
	if got := f.cmd.BestMatchIndex(); got != 0 {
		t.Fatalf("index = %d, want the first of the visible matches", got)
	}

	f.cmd.SetQuery("microfiche")
	if got := f.cmd.BestMatchIndex(); got != -1 {
		t.Fatalf("index = %d with nothing visible", got)
	}
}

func TestBestMatchRanking(t *testing.T) {
	items := []SelectItem{
		{Value: "sig-a1", Label: "Archive/Box 12"},
		{Value: "box", Label: "Crate"},
		{Value: "sig-c3", Label: "Box"},
	}
	cases := []struct {
		name  string
		query string
		want  int
	}{
		{"empty query falls to first", "   ", 0},
		{"exact value match", "Box", 1},
		{"label prefix", "arch", 0},
		{"value prefix", "sig", 0},
		{"value substring", "c3", 2},
		{"value substring beats later label", "x", 1},
		{"label substring when values miss", "x 1", 0},
		{"fuzzy fallback picks closest", "ae", 1},
		{"no match at all falls to first", "zzz", 0},
	}
	for _, tc := range cases {
		if got := bestMatchIndex(items, tc.query); got != tc.want {
			t.Fatalf("%s: bestMatchIndex(%q) = %d, want %d", tc.name, tc.query, got, tc.want)
		}
	}
	if got := bestMatchIndex(nil, "box"); got != -1 {
		t.Fatalf("bestMatchIndex over nothing = %d", got)
	}
}

func TestRegisterItemWithoutRoot(t *testing.T) {
	var missing *Command
	if _, err := missing.RegisterItem(SelectItem{Value: "sig-a1"}); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("err = %v, want configuration error", err)
	}
}
