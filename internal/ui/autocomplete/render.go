package autocomplete

import (
	"github.com/zhubert/loom/internal/ui"
	"github.com/zhubert/loom/internal/ui/widgets"
)

// RegisterRenderers installs the autocomplete renderer.
func RegisterRenderers(reg *ui.Registry) {
	reg.Register(ui.KindAutoComplete, ui.RendererFunc(Render))
}

// Render draws the input line and, when open, the dropdown beneath it.
func Render(c ui.Component, s ui.Surface, th *ui.Theme) {
	tb, ok := c.(*TextBox)
	if !ok {
		return
	}
	widgets.RenderTextBox(tb, s, th)

	r := tb.DropdownRect()
	if r.Size.Empty() {
		return
	}
	ui.DrawBox(s, r, th.Part(ui.KindAutoComplete, "dropdown"), "")
	row := th.Part(ui.KindAutoComplete, "dropdown")
	row.Border = ui.BorderNone
	selected := th.Part(ui.KindAutoComplete, string(ui.StateSelected))
	width := r.Size.Width - 2
	for i, text := range tb.filtered[:tb.DropdownHeight()] {
		st := row
		if i == tb.highlight {
			st = selected
		}
		s.DrawString(ui.Fit(text, width), r.Pos.Offset(1, 1+i), st)
	}
}
