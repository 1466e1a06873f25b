// Package graph implements DependencyGraphView, a radial view of the
// relationships around one work item.
//
// Nodes are found by a breadth-first walk from the focus item over the
// relationship types currently visible. The walk continues through a node
// while its depth is below the navigation depth, or when the node has been
// expanded. The focus sits at the centre of the view and every further depth
// is placed on a wider ring around it.
package graph

import (
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/zhubert/loom/internal/keys"
	"github.com/zhubert/loom/internal/logger"
	"github.com/zhubert/loom/internal/ui"
	"github.com/zhubert/loom/internal/workitem"
)

// Default node geometry
const (
	DefaultNodeWidth  = 20
	DefaultNodeHeight = 3
)

// Rows used by the frame around the graph area: border and status above,
// two legend lines and the border below.
const (
	areaTop    = 2
	areaBottom = 3
)

const helpText = "Arrows move, Space expands, +/- depth, Enter selects"

// NodeSelectionHandler is told when Enter is pressed on a node.
type NodeSelectionHandler interface {
	NodeSelected(item workitem.Item)
}

// NodeSelectionFunc adapts a function to NodeSelectionHandler.
type NodeSelectionFunc func(item workitem.Item)

func (f NodeSelectionFunc) NodeSelected(item workitem.Item) { f(item) }

// Node is a placed work item.
type Node struct {
	Item  workitem.Item
	Depth int
	Pos   ui.Point // top-left, relative to the view
}

// Edge is a traversed relationship.
type Edge struct {
	From, To string
	Type     workitem.RelationshipType
	LabelPos ui.Point // relative to the view
}

// DependencyGraphView shows the work items related to a focus item.
type DependencyGraphView struct {
	ui.Base
	source   workitem.Source
	log      *slog.Logger
	focus    *workitem.Item
	selected string
	depth    int
	visible  map[workitem.RelationshipType]bool
	expanded map[string]bool
	nodeSize ui.Dimension
	labeler  func(workitem.Item) string

	nodes    []Node
	index    map[string]int
	edges    []Edge
	status   string
	handlers []NodeSelectionHandler
}

// NewDependencyGraphView creates a view reading relationships from source.
// Every relationship type starts visible.
func NewDependencyGraphView(id string, source workitem.Source) *DependencyGraphView {
	g := &DependencyGraphView{
		Base:     ui.NewBase(ui.KindGraph, id),
		source:   source,
		log:      logger.WithComponent("graph"),
		depth:    ui.DefaultNavigationDepth,
		visible:  make(map[workitem.RelationshipType]bool),
		expanded: make(map[string]bool),
		nodeSize: ui.Dim(DefaultNodeWidth, DefaultNodeHeight),
		index:    make(map[string]int),
		status:   "No work item selected",
	}
	for _, t := range workitem.RelationshipTypes() {
		g.visible[t] = true
	}
	g.Base.SetSize(ui.Dim(100, 40))
	return g
}

func (g *DependencyGraphView) Focusable() bool { return true }

// SetSource replaces the data source and rebuilds the graph.
func (g *DependencyGraphView) SetSource(source workitem.Source) {
	g.source = source
	g.Refresh()
}

// SetFocus centres the graph on item. The focus is expanded and selected.
func (g *DependencyGraphView) SetFocus(item workitem.Item) {
	g.focus = &item
	g.selected = item.ID
	clear(g.expanded)
	g.expanded[item.ID] = true
	g.Refresh()
}

// Focus returns the item at the centre of the graph.
func (g *DependencyGraphView) Focus() (workitem.Item, bool) {
	if g.focus == nil {
		return workitem.Item{}, false
	}
	return *g.focus, true
}

// SetSize resizes the view and places the nodes again.
func (g *DependencyGraphView) SetSize(d ui.Dimension) {
	g.Base.SetSize(d)
	g.place()
}

// Area is the rectangle nodes are drawn in, relative to the view.
func (g *DependencyGraphView) Area() ui.Rect {
	size := g.Size()
	return ui.Rect{
		Pos:  ui.Pt(1, areaTop),
		Size: ui.Dim(max(0, size.Width-2), max(0, size.Height-areaTop-areaBottom)),
	}
}

// NavigationDepth is how many rings are walked without expansion.
func (g *DependencyGraphView) NavigationDepth() int {
	return g.depth
}

// SetNavigationDepth sets the walk depth, at least 1.
func (g *DependencyGraphView) SetNavigationDepth(d int) {
	g.depth = max(1, d)
	g.Refresh()
}

// NodeSize returns the size of a node box.
func (g *DependencyGraphView) NodeSize() ui.Dimension {
	return g.nodeSize
}

// SetNodeSize changes the node box size and places the nodes again.
func (g *DependencyGraphView) SetNodeSize(d ui.Dimension) {
	g.nodeSize = d
	g.place()
}

// SetNodeLabeler overrides the text inside node boxes. nil restores the
// default "id:title" form.
func (g *DependencyGraphView) SetNodeLabeler(f func(workitem.Item) string) {
	g.labeler = f
}

// NodeLabel returns the text drawn inside the node for item.
func (g *DependencyGraphView) NodeLabel(item workitem.Item) string {
	if g.labeler != nil {
		return g.labeler(item)
	}
	return ui.Truncate(item.ID, 8) + ":" + ui.Truncate(item.Title, g.nodeSize.Width-4)
}

// IsTypeVisible reports whether edges of type t are followed.
func (g *DependencyGraphView) IsTypeVisible(t workitem.RelationshipType) bool {
	return g.visible[t]
}

// SetTypeVisible shows or hides a relationship type and rebuilds the graph.
func (g *DependencyGraphView) SetTypeVisible(t workitem.RelationshipType, on bool) {
	g.visible[t] = on
	g.Refresh()
}

// ToggleType flips the visibility of t and reports the new state.
func (g *DependencyGraphView) ToggleType(t workitem.RelationshipType) bool {
	g.SetTypeVisible(t, !g.visible[t])
	return g.visible[t]
}

// VisibleTypes returns the visible relationship types in declaration order.
func (g *DependencyGraphView) VisibleTypes() []workitem.RelationshipType {
	var out []workitem.RelationshipType
	for _, t := range workitem.RelationshipTypes() {
		if g.visible[t] {
			out = append(out, t)
		}
	}
	return out
}

// IsExpanded reports whether the walk continues through id regardless of
// depth.
func (g *DependencyGraphView) IsExpanded(id string) bool {
	return g.expanded[id]
}

// SetExpanded expands or collapses a node and rebuilds the graph.
func (g *DependencyGraphView) SetExpanded(id string, on bool) {
	if on {
		g.expanded[id] = true
	} else {
		delete(g.expanded, id)
	}
	g.Refresh()
}

// AddNodeSelectionHandler registers h. Handlers run in registration order.
func (g *DependencyGraphView) AddNodeSelectionHandler(h NodeSelectionHandler) {
	g.handlers = append(g.handlers, h)
}

// Status is the line shown above the graph.
func (g *DependencyGraphView) Status() string {
	return g.status
}

// Nodes returns the placed nodes in walk order, focus first.
func (g *DependencyGraphView) Nodes() []Node {
	return slices.Clone(g.nodes)
}

// Edges returns the traversed edges in walk order.
func (g *DependencyGraphView) Edges() []Edge {
	return slices.Clone(g.edges)
}

// Depth returns the ring a node was placed on.
func (g *DependencyGraphView) Depth(id string) (int, bool) {
	i, ok := g.index[id]
	if !ok {
		return 0, false
	}
	return g.nodes[i].Depth, true
}

// NodePosition returns the top-left corner of a node relative to the view.
func (g *DependencyGraphView) NodePosition(id string) (ui.Point, bool) {
	i, ok := g.index[id]
	if !ok {
		return ui.Point{}, false
	}
	return g.nodes[i].Pos, true
}

// Selected returns the highlighted node.
func (g *DependencyGraphView) Selected() (workitem.Item, bool) {
	i, ok := g.index[g.selected]
	if !ok {
		return workitem.Item{}, false
	}
	return g.nodes[i].Item, true
}

// Refresh walks the relationships again from the focus item.
func (g *DependencyGraphView) Refresh() {
	g.nodes = g.nodes[:0]
	g.edges = g.edges[:0]
	clear(g.index)

	if g.focus == nil || g.source == nil {
		g.status = "No work item selected"
		return
	}
	g.walk()
	g.place()

	if _, ok := g.index[g.selected]; !ok {
		g.selected = g.focus.ID
	}
	g.updateStatus()
	g.log.Debug("graph refreshed",
		"focus", g.focus.ID,
		"nodes", len(g.nodes),
		"edges", len(g.edges),
		"depth", g.depth,
	)
}

// walk assigns every reachable node its breadth-first distance from the
// focus.
func (g *DependencyGraphView) walk() {
	g.addNode(*g.focus, 0)
	for head := 0; head < len(g.nodes); head++ {
		cur := g.nodes[head]
		if cur.Depth >= g.depth && !g.expanded[cur.Item.ID] {
			continue
		}
		rels, err := g.source.RelationshipsOf(cur.Item)
		if err != nil {
			g.log.Warn("relationships unavailable", "item", cur.Item.ID, "error", err)
			continue
		}
		for _, rel := range rels {
			if !g.visible[rel.Type] {
				continue
			}
			if _, seen := g.index[rel.Target.ID]; !seen {
				g.addNode(rel.Target, cur.Depth+1)
			}
			g.edges = append(g.edges, Edge{From: cur.Item.ID, To: rel.Target.ID, Type: rel.Type})
		}
	}
}

func (g *DependencyGraphView) addNode(item workitem.Item, depth int) {
	g.index[item.ID] = len(g.nodes)
	g.nodes = append(g.nodes, Node{Item: item, Depth: depth})
}

// RingRadius is the distance from the centre to the ring for depth d.
func RingRadius(d, nodeWidth int) float64 {
	if d <= 0 {
		return 0
	}
	return float64(2*nodeWidth) + float64(d-1)*1.5*float64(nodeWidth)
}

// place computes node positions: the focus at the centre of the area, each
// depth evenly spaced around its ring. Rows are halved to account for the
// height of terminal cells.
func (g *DependencyGraphView) place() {
	if len(g.nodes) == 0 {
		return
	}
	area := g.Area()
	cx := float64(area.Size.Width / 2)
	cy := float64(area.Size.Height / 2)
	nw, nh := g.nodeSize.Width, g.nodeSize.Height

	byDepth := make(map[int][]int)
	for i, n := range g.nodes {
		byDepth[n.Depth] = append(byDepth[n.Depth], i)
	}
	for d, members := range byDepth {
		r := RingRadius(d, nw)
		for k, i := range members {
			angle := 2 * math.Pi * float64(k) / float64(len(members))
			x := math.Round(cx + r*math.Cos(angle) - float64(nw/2))
			y := math.Round(cy + r*math.Sin(angle)*0.5 - float64(nh/2))
			g.nodes[i].Pos = area.Pos.Offset(int(x), int(y))
		}
	}

	half := ui.Pt(nw/2, nh/2)
	for i, e := range g.edges {
		a, b := g.nodes[g.index[e.From]].Pos, g.nodes[g.index[e.To]].Pos
		g.edges[i].LabelPos = ui.Pt((a.X+b.X)/2, (a.Y+b.Y)/2).Add(half)
	}
}

func (g *DependencyGraphView) updateStatus() {
	if item, ok := g.Selected(); ok {
		g.status = fmt.Sprintf("Selected: %s - %s", item.ID, item.Title)
		return
	}
	g.status = helpText
}

// HandleKey navigates the graph.
func (g *DependencyGraphView) HandleKey(ev keys.Event) bool {
	if !g.Receiving() {
		return false
	}

	switch {
	case ev.Is(keys.CodeUp), ev.Is(keys.CodeDown), ev.Is(keys.CodeLeft), ev.Is(keys.CodeRight):
		g.move(ev.Code)
		return true
	case ev.Is(keys.CodeSpace):
		if g.selected != "" && g.focus != nil {
			g.SetExpanded(g.selected, !g.expanded[g.selected])
		}
		return true
	case ev.Is(keys.CodeEnter):
		if item, ok := g.Selected(); ok {
			for _, h := range g.handlers {
				h.NodeSelected(item)
			}
		}
		return true
	}

	r, ok := ev.Printable()
	if !ok {
		return false
	}
	switch r {
	case '+', '=':
		g.SetNavigationDepth(g.depth + 1)
		return true
	case '-', '_':
		g.SetNavigationDepth(g.depth - 1)
		return true
	}
	if r >= '1' && r <= '9' {
		types := workitem.RelationshipTypes()
		if i := int(r - '1'); i < len(types) {
			g.ToggleType(types[i])
			return true
		}
	}
	return false
}

// move selects the nearest node strictly on the side of the selection the
// arrow points to. Distance favours the arrow's axis.
func (g *DependencyGraphView) move(code keys.Code) {
	i, ok := g.index[g.selected]
	if !ok {
		if g.focus != nil {
			g.selected = g.focus.ID
			g.updateStatus()
		}
		return
	}
	from := g.nodes[i].Pos

	best, bestDist := -1, math.MaxFloat64
	for j, n := range g.nodes {
		if j == i {
			continue
		}
		dx, dy := float64(n.Pos.X-from.X), float64(n.Pos.Y-from.Y)
		var primary, cross float64
		switch code {
		case keys.CodeUp:
			primary, cross = -dy, dx
		case keys.CodeDown:
			primary, cross = dy, dx
		case keys.CodeLeft:
			primary, cross = -dx, dy
		case keys.CodeRight:
			primary, cross = dx, dy
		}
		if primary <= 0 {
			continue
		}
		if d := primary + 0.5*math.Abs(cross); d < bestDist {
			best, bestDist = j, d
		}
	}
	if best >= 0 {
		g.selected = g.nodes[best].Item.ID
		g.updateStatus()
	}
}
