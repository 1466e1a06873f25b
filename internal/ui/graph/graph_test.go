package graph

import (
	"slices"
	"testing"
	"unicode/utf8"

	"github.com/zhubert/loom/internal/keys"
	"github.com/zhubert/loom/internal/ui"
	"github.com/zhubert/loom/internal/ui/uitest"
	"github.com/zhubert/loom/internal/workitem"
)

func relates(targets ...string) []workitem.Link {
	var out []workitem.Link
	for _, t := range targets {
		out = append(out, workitem.Link{Type: workitem.RelatesTo, Target: t})
	}
	return out
}

// chain is F -> A -> B -> C over RELATES_TO links.
func chain(t *testing.T) *workitem.MemorySource {
	t.Helper()
	s, err := workitem.NewMemorySource([]workitem.Item{
		{ID: "F", Title: "focus", Links: relates("A")},
		{ID: "A", Title: "first", Links: relates("B")},
		{ID: "B", Title: "second", Links: relates("C")},
		{ID: "C", Title: "third"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// star is F with four neighbours.
func star(t *testing.T) *workitem.MemorySource {
	t.Helper()
	s, err := workitem.NewMemorySource([]workitem.Item{
		{ID: "F", Title: "focus", Links: relates("E", "S", "W", "N")},
		{ID: "E", Title: "east"},
		{ID: "S", Title: "south"},
		{ID: "W", Title: "west"},
		{ID: "N", Title: "north"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func newView(t *testing.T, src *workitem.MemorySource) *DependencyGraphView {
	t.Helper()
	g := NewDependencyGraphView("graph", src)
	focus, err := src.Get("F")
	if err != nil {
		t.Fatal(err)
	}
	g.SetFocus(focus)
	g.SetFocused(true)
	return g
}

func nodeIDs(g *DependencyGraphView) []string {
	var out []string
	for _, n := range g.Nodes() {
		out = append(out, n.Item.ID)
	}
	return out
}

func TestWalk_DepthAndExpansion(t *testing.T) {
	g := newView(t, chain(t))

	if got := nodeIDs(g); !slices.Equal(got, []string{"F", "A"}) {
		t.Fatalf("depth 1 nodes = %v, want [F A]", got)
	}
	if d, _ := g.Depth("A"); d != 1 {
		t.Errorf("Depth(A) = %d, want 1", d)
	}

	uitest.Press(g, keys.Rune('+'))
	if g.NavigationDepth() != 2 {
		t.Fatalf("NavigationDepth() = %d, want 2", g.NavigationDepth())
	}
	if got := nodeIDs(g); !slices.Equal(got, []string{"F", "A", "B"}) {
		t.Errorf("depth 2 nodes = %v, want [F A B]", got)
	}

	uitest.Press(g, keys.Rune('-'), keys.Rune('-'))
	if g.NavigationDepth() != 1 {
		t.Errorf("depth went below 1: %d", g.NavigationDepth())
	}

	// Expanding A walks one ring past it.
	g.SetExpanded("A", true)
	if got := nodeIDs(g); !slices.Equal(got, []string{"F", "A", "B"}) {
		t.Errorf("expanded nodes = %v, want [F A B]", got)
	}
	if d, _ := g.Depth("B"); d != 2 {
		t.Errorf("Depth(B) = %d, want 2", d)
	}
	if _, ok := g.Depth("C"); ok {
		t.Error("C reached without expanding B")
	}
}

func TestWalk_FocusIsExpanded(t *testing.T) {
	g := newView(t, chain(t))
	if !g.IsExpanded("F") {
		t.Error("focus should be expanded")
	}
	if sel, ok := g.Selected(); !ok || sel.ID != "F" {
		t.Errorf("Selected() = %v, %v; want F", sel.ID, ok)
	}
	if g.Status() != "Selected: F - focus" {
		t.Errorf("Status() = %q", g.Status())
	}
}

func TestTypeFilter(t *testing.T) {
	g := newView(t, chain(t))

	// RELATES_TO is the fifth relationship type.
	if !g.HandleKey(keys.Rune('5')) {
		t.Fatal("digit for a relationship type not handled")
	}
	if g.IsTypeVisible(workitem.RelatesTo) {
		t.Error("RELATES_TO still visible")
	}
	if got := nodeIDs(g); !slices.Equal(got, []string{"F"}) {
		t.Errorf("nodes = %v, want only the focus", got)
	}
	if len(g.Edges()) != 0 {
		t.Errorf("Edges() = %v, want none", g.Edges())
	}

	if g.HandleKey(keys.Rune('7')) {
		t.Error("digit past the last type was handled")
	}

	g.ToggleType(workitem.RelatesTo)
	if got := nodeIDs(g); !slices.Equal(got, []string{"F", "A"}) {
		t.Errorf("nodes after re-enabling = %v", got)
	}
}

func TestPlacement(t *testing.T) {
	g := newView(t, star(t))
	g.SetSize(ui.Dim(100, 40))

	// Area is 98x35 at (1,2); centre (49,17); ring radius 40.
	tests := []struct {
		id   string
		want ui.Point
	}{
		{"F", ui.Pt(40, 18)},
		{"E", ui.Pt(80, 18)},
		{"S", ui.Pt(40, 38)},
		{"W", ui.Pt(0, 18)},
		{"N", ui.Pt(40, -2)},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, ok := g.NodePosition(tt.id)
			if !ok {
				t.Fatal("node not placed")
			}
			if got != tt.want {
				t.Errorf("NodePosition(%s) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestRingRadius(t *testing.T) {
	tests := []struct {
		depth int
		want  float64
	}{
		{0, 0},
		{1, 40},
		{2, 70},
		{3, 100},
	}
	for _, tt := range tests {
		if got := RingRadius(tt.depth, 20); got != tt.want {
			t.Errorf("RingRadius(%d) = %v, want %v", tt.depth, got, tt.want)
		}
	}
}

func TestArrowNavigation(t *testing.T) {
	tests := []struct {
		key  keys.Code
		want string
	}{
		{keys.CodeUp, "N"},
		{keys.CodeDown, "S"},
		{keys.CodeLeft, "W"},
		{keys.CodeRight, "E"},
	}
	for _, tt := range tests {
		t.Run(keys.Of(tt.key).String(), func(t *testing.T) {
			g := newView(t, star(t))
			if !g.HandleKey(keys.Of(tt.key)) {
				t.Fatal("arrow not handled")
			}
			if sel, _ := g.Selected(); sel.ID != tt.want {
				t.Errorf("selected %s, want %s", sel.ID, tt.want)
			}
		})
	}

	g := newView(t, star(t))
	uitest.Press(g, keys.Of(keys.CodeRight), keys.Of(keys.CodeRight))
	if sel, _ := g.Selected(); sel.ID != "E" {
		t.Errorf("moving past the edge changed selection to %s", sel.ID)
	}
}

func TestEnterSelectsNode(t *testing.T) {
	g := newView(t, star(t))
	var picked []string
	g.AddNodeSelectionHandler(NodeSelectionFunc(func(item workitem.Item) {
		picked = append(picked, item.ID)
	}))

	uitest.Press(g, keys.Of(keys.CodeLeft), keys.Of(keys.CodeEnter))
	if !slices.Equal(picked, []string{"W"}) {
		t.Errorf("picked = %v, want [W]", picked)
	}
}

func TestSpaceTogglesExpansion(t *testing.T) {
	g := newView(t, chain(t))
	uitest.Press(g, keys.Of(keys.CodeRight))
	if sel, _ := g.Selected(); sel.ID != "A" {
		t.Fatalf("selected %s, want A", sel.ID)
	}

	uitest.Press(g, keys.Of(keys.CodeSpace))
	if !g.IsExpanded("A") {
		t.Fatal("Space did not expand A")
	}
	if _, ok := g.Depth("B"); !ok {
		t.Error("B not reached after expanding A")
	}

	uitest.Press(g, keys.Of(keys.CodeSpace))
	if _, ok := g.Depth("B"); ok {
		t.Error("B still shown after collapsing A")
	}
}

func TestNoFocus(t *testing.T) {
	g := NewDependencyGraphView("graph", chain(t))
	g.SetFocused(true)
	if len(g.Nodes()) != 0 {
		t.Errorf("Nodes() = %v without a focus", g.Nodes())
	}
	if !g.HandleKey(keys.Of(keys.CodeUp)) {
		t.Error("arrow should be consumed")
	}
	if _, ok := g.Selected(); ok {
		t.Error("Selected() reported a node without a focus")
	}
}

func TestRender(t *testing.T) {
	ctx := ui.NewContext()
	RegisterRenderers(ctx.Registry())
	g := newView(t, star(t))

	rec := uitest.NewRecorder(100, 40)
	ctx.Paint(g, rec)

	for _, want := range []string{"Dependencies", "Selected: F - focus", "F:focus", "E:east", "1:PARENT", "depth 1"} {
		if !rec.Contains(want) {
			t.Errorf("%q not drawn", want)
		}
	}
	for _, r := range rec.Rects {
		if r.Pos.Y < 0 || r.Pos.X < 0 || r.Pos.X+r.Size.Width > 100 || r.Pos.Y+r.Size.Height > 40 {
			t.Errorf("rect %v %v drawn outside the view", r.Pos, r.Size)
		}
	}
}

func TestNodeLabel(t *testing.T) {
	tests := []struct {
		name string
		item workitem.Item
		want string
	}{
		{name: "short", item: workitem.Item{ID: "F", Title: "focus"}, want: "F:focus"},
		{name: "eight cells", item: workitem.Item{ID: "ABCD1234", Title: "x"}, want: "ABCD1234:x"},
		{name: "long id", item: workitem.Item{ID: "ABCD12345", Title: "x"}, want: "ABCD123…:x"},
		{name: "wide id", item: workitem.Item{ID: "課題課題課題", Title: "x"}, want: "課題課…:x"},
		{name: "accented id", item: workitem.Item{ID: "éééééééééé", Title: "x"}, want: "ééééééé…:x"},
	}

	g := NewDependencyGraphView("graph", star(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.NodeLabel(tt.item)
			if got != tt.want {
				t.Errorf("NodeLabel() = %q, want %q", got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("NodeLabel() = %q is not valid UTF-8", got)
			}
		})
	}
}
