package keynav

import (
	"testing"

	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/dom"
	"github.com/DanielMazurkiewicz/jezarch-sub006/primitive/domtest"
)

type fixture struct {
	env   *domtest.Env
	nodes []*domtest.Node
	items []Item
	nav   *Navigator
	acts  []string
}

func newFixture(t *testing.T, labels ...string) *fixture {
	t.Helper()
	f := &fixture{env: domtest.New()}
	list := f.env.NewNode("list")
	f.env.Root().AppendChild(list)
	for _, label := range labels {
		n := f.env.NewButton("opt-"+label, label)
		list.AppendChild(n)
		f.nodes = append(f.nodes, n)
		f.items = append(f.items, Item{Value: label, Label: label, El: n})
	}
	f.nav = New(f.env, Config{
		Container: "list",
		Items:     func() []Item { return f.items },
		OnActivate: func(it Item) {
			f.acts = append(f.acts, it.Value)
		},
	})
	return f
}

func (f *fixture) press(key string) bool {
	ev := &dom.Event{Type: dom.KeyDown, Target: f.env.ActiveElement(), Key: key}
	return f.nav.Handle(ev)
}

func (f *fixture) activeID() string {
	if el := f.env.ActiveElement(); el != nil {
		return el.ID()
	}
	return ""
}

func TestArrowCycleReturnsToStart(t *testing.T) {
	f := newFixture(t, "alpha", "beta", "gamma", "delta")
	f.nodes[1].Focus() // start at beta

	for i := 0; i < len(f.items); i++ {
		if !f.press(dom.KeyArrowDown) {
			t.Fatalf("arrow %d not handled", i+1)
		}
	}
	if got := f.activeID(); got != "opt-beta" {
		t.Fatalf("after N next presses active = %s, want the starting option", got)
	}
}

func TestArrowUpWrapsToLast(t *testing.T) {
	f := newFixture(t, "alpha", "beta", "gamma")
	f.nodes[0].Focus()
	f.press(dom.KeyArrowUp)
	if got := f.activeID(); got != "opt-gamma" {
		t.Fatalf("active = %s, want wrap to last", got)
	}
}

func TestHomeAndEnd(t *testing.T) {
	f := newFixture(t, "alpha", "beta", "gamma")
	f.nodes[1].Focus()
	f.press(dom.KeyEnd)
	if got := f.activeID(); got != "opt-gamma" {
		t.Fatalf("End moved to %s", got)
	}
	f.press(dom.KeyHome)
	if got := f.activeID(); got != "opt-alpha" {
		t.Fatalf("Home moved to %s", got)
	}
}

func TestArrowWithNoFocusEntersList(t *testing.T) {
	f := newFixture(t, "alpha", "beta", "gamma")
	f.press(dom.KeyArrowDown)
	if got := f.activeID(); got != "opt-alpha" {
		t.Fatalf("ArrowDown from nowhere moved to %s, want first", got)
	}

	g := newFixture(t, "alpha", "beta", "gamma")
	g.press(dom.KeyArrowUp)
	if got := g.activeID(); got != "opt-gamma" {
		t.Fatalf("ArrowUp from nowhere moved to %s, want last", got)
	}
}

func TestHorizontalOrientation(t *testing.T) {
	f := newFixture(t, "alpha", "beta")
	f.nav = New(f.env, Config{
		Container:   "list",
		Orientation: Horizontal,
		Items:       func() []Item { return f.items },
	})
	f.nodes[0].Focus()
	if f.press(dom.KeyArrowDown) {
		t.Fatalf("vertical arrow handled by a horizontal navigator")
	}
	f.press(dom.KeyArrowRight)
	if got := f.activeID(); got != "opt-beta" {
		t.Fatalf("ArrowRight moved to %s", got)
	}
	f.press(dom.KeyArrowLeft)
	if got := f.activeID(); got != "opt-alpha" {
		t.Fatalf("ArrowLeft moved to %s", got)
	}
}

func TestEnterAndSpaceActivate(t *testing.T) {
	f := newFixture(t, "alpha", "beta")
	f.nodes[1].Focus()
	f.press(dom.KeyEnter)
	f.press(dom.KeySpace)
	if len(f.acts) != 2 || f.acts[0] != "beta" || f.acts[1] != "beta" {
		t.Fatalf("activations = %v, want [beta beta]", f.acts)
	}
}

func TestTypeAheadScansForwardWithWrap(t *testing.T) {
	f := newFixture(t, "Archive", "Box", "binder", "Atlas")
	f.nodes[1].Focus() // at Box

	if !f.press("b") {
		t.Fatalf("type-ahead not handled")
	}
	if got := f.activeID(); got != "opt-binder" {
		t.Fatalf("active = %s, want the next b-label after the focus (case-insensitive)", got)
	}

	f.press("a") // wraps past the end to Atlas
	if got := f.activeID(); got != "opt-Atlas" {
		t.Fatalf("active = %s, want wrap to Atlas", got)
	}
	f.press("a") // forward from Atlas wraps to Archive
	if got := f.activeID(); got != "opt-Archive" {
		t.Fatalf("active = %s, want Archive", got)
	}
}

func TestTypeAheadNoMatchLeavesFocus(t *testing.T) {
	f := newFixture(t, "alpha", "beta")
	f.nodes[0].Focus()
	if f.press("z") {
		t.Fatalf("unmatched type-ahead reported handled")
	}
	if got := f.activeID(); got != "opt-alpha" {
		t.Fatalf("unmatched type-ahead moved focus to %s", got)
	}
}

func TestDisabledItemsSkipped(t *testing.T) {
	f := newFixture(t, "alpha", "beta", "gamma")
	f.items[1].Disabled = true
	f.nodes[0].Focus()
	f.press(dom.KeyArrowDown)
	if got := f.activeID(); got != "opt-gamma" {
		t.Fatalf("active = %s, want disabled beta skipped", got)
	}
}

func TestRoveMarksSingleTabStop(t *testing.T) {
	f := newFixture(t, "alpha", "beta", "gamma")
	Rove(f.items, 1)
	for i, n := range f.nodes {
		want := "-1"
		if i == 1 {
			want = "0"
		}
		if got, _ := n.Attr("tabindex"); got != want {
			t.Fatalf("tabindex[%d] = %q, want %q", i, got, want)
		}
	}
}
