package miller

import "github.com/zhubert/loom/internal/ui"

// RegisterRenderers installs the renderers for Miller views and detail
// panes. The columns themselves are lists drawn by the widgets renderers.
func RegisterRenderers(reg *ui.Registry) {
	reg.Register(ui.KindMiller, ui.RendererFunc(func(ui.Component, ui.Surface, *ui.Theme) {}))
	reg.Register(ui.KindDetail, ui.RendererFunc(renderDetail))
}

func renderDetail(c ui.Component, s ui.Surface, th *ui.Theme) {
	d, ok := c.(*DetailPane)
	if !ok {
		return
	}
	bounds := d.Bounds()
	ui.DrawBox(s, bounds, th.ResolveFor(d), d.Title())

	inner := bounds.Size.Inset(1)
	lines := d.Lines()
	text := th.Part(ui.KindLabel, "")
	for row := 0; row < inner.Height; row++ {
		i := d.ScrollOffset() + row
		if i >= len(lines) {
			break
		}
		s.DrawString(ui.Fit(lines[i], inner.Width), bounds.Pos.Offset(1, 1+row), text)
	}
}
