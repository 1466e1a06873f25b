package ui

import (
	"maps"
	"slices"
)

// Surface is the abstract terminal grid renderers draw on. Positions are
// absolute cell coordinates; drawing outside the surface is clipped.
type Surface interface {
	DrawRect(pos Point, size Dimension, style Style, filled bool)
	DrawString(text string, pos Point, style Style)
	MoveCursor(pos Point)
	ClearArea(pos Point, size Dimension)
	Size() Dimension
}

// Renderer draws one kind of component. Renderers are pure: they read the
// component and theme and never mutate widget state.
type Renderer interface {
	Render(c Component, s Surface, th *Theme)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(c Component, s Surface, th *Theme)

func (f RendererFunc) Render(c Component, s Surface, th *Theme) { f(c, s, th) }

// Registry maps component kinds to renderers.
type Registry struct {
	renderers map[Kind]Renderer
}

// NewRegistry returns a registry with the container renderer installed.
func NewRegistry() *Registry {
	r := &Registry{renderers: make(map[Kind]Renderer)}
	r.Register(KindContainer, RendererFunc(renderContainer))
	return r
}

// Register installs or replaces the renderer for kind.
func (r *Registry) Register(kind Kind, renderer Renderer) {
	r.renderers[kind] = renderer
}

// Lookup returns the renderer for kind.
func (r *Registry) Lookup(kind Kind) (Renderer, bool) {
	renderer, ok := r.renderers[kind]
	return renderer, ok
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []Kind {
	return slices.Sorted(maps.Keys(r.renderers))
}

// renderContainer draws the outline of containers whose style has a border.
func renderContainer(c Component, s Surface, th *Theme) {
	local := c.Style()
	if local == nil || local.Border == BorderNone {
		return
	}
	st := th.ResolveFor(c)
	st.Border = local.Border
	s.DrawRect(c.Position(), c.Size(), st, false)
}

// DrawBox draws a bordered box with an optional title on the top edge.
func DrawBox(s Surface, r Rect, st Style, title string) {
	if r.Size.Empty() {
		return
	}
	s.DrawRect(r.Pos, r.Size, st, true)
	if title != "" && r.Size.Width > 4 {
		title = Truncate(" "+title+" ", r.Size.Width-2)
		s.DrawString(title, r.Pos.Offset(1, 0), st)
	}
}
