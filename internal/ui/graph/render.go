package graph

import (
	"fmt"
	"strings"

	"github.com/zhubert/loom/internal/ui"
	"github.com/zhubert/loom/internal/workitem"
)

// RegisterRenderers installs the graph renderer.
func RegisterRenderers(reg *ui.Registry) {
	reg.Register(ui.KindGraph, ui.RendererFunc(Render))
}

// Render draws the frame, status line, edge tags, node boxes and legend.
// Nodes whose ring falls outside the area are pulled back inside it.
func Render(c ui.Component, s ui.Surface, th *ui.Theme) {
	g, ok := c.(*DependencyGraphView)
	if !ok {
		return
	}
	bounds := g.Bounds()
	ui.DrawBox(s, bounds, th.ResolveFor(g), "Dependencies")
	if bounds.Size.Width < 3 || bounds.Size.Height < areaTop+areaBottom {
		return
	}
	inner := bounds.Size.Width - 2
	origin := bounds.Pos

	s.DrawString(ui.Align(g.Status(), inner, ui.AlignCenter), origin.Offset(1, 1), th.Part(ui.KindGraph, "legend"))

	area := g.Area()
	area.Pos = origin.Add(area.Pos)

	edge := th.Part(ui.KindGraph, "edge")
	for _, e := range g.Edges() {
		s.DrawString(e.Type.Abbrev(), clampPoint(origin.Add(e.LabelPos), area), edge)
	}

	size := g.NodeSize()
	sel, _ := g.Selected()
	focus, _ := g.Focus()
	for _, n := range g.Nodes() {
		st := th.Part(ui.KindGraph, "node")
		switch {
		case n.Item.ID == sel.ID:
			st = th.Part(ui.KindGraph, string(ui.StateSelected))
		case n.Item.ID == focus.ID:
			st = th.Part(ui.KindGraph, "focus")
		case g.IsExpanded(n.Item.ID):
			st = th.Part(ui.KindGraph, "expanded")
		}
		at := clampRect(origin.Add(n.Pos), size, area)
		s.DrawRect(at, size, st, true)
		s.DrawString(ui.Fit(g.NodeLabel(n.Item), size.Width-2), at.Offset(1, size.Height/2), st)
	}

	legend := th.Part(ui.KindGraph, "legend")
	hidden := th.Part(ui.KindGraph, "edge")
	at := origin.Offset(1, bounds.Size.Height-3)
	for i, t := range workitem.RelationshipTypes() {
		text := fmt.Sprintf("%d:%s ", i+1, t)
		st := legend
		if !g.IsTypeVisible(t) {
			st = hidden
			text = fmt.Sprintf("%d:%s ", i+1, strings.ToLower(t.String()))
		}
		if at.X+ui.StringWidth(text) > origin.X+inner+1 {
			break
		}
		s.DrawString(text, at, st)
		at = at.Offset(ui.StringWidth(text), 0)
	}
	help := fmt.Sprintf("depth %d | %s", g.NavigationDepth(), helpText)
	s.DrawString(ui.Fit(help, inner), origin.Offset(1, bounds.Size.Height-2), hidden)
}

func clampPoint(p ui.Point, area ui.Rect) ui.Point {
	return ui.Pt(
		max(area.Pos.X, min(p.X, area.Pos.X+area.Size.Width-1)),
		max(area.Pos.Y, min(p.Y, area.Pos.Y+area.Size.Height-1)),
	)
}

func clampRect(p ui.Point, size ui.Dimension, area ui.Rect) ui.Point {
	return ui.Pt(
		max(area.Pos.X, min(p.X, area.Pos.X+area.Size.Width-size.Width)),
		max(area.Pos.Y, min(p.Y, area.Pos.Y+area.Size.Height-size.Height)),
	)
}
