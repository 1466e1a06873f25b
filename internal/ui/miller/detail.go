package miller

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/loom/internal/keys"
	"github.com/zhubert/loom/internal/ui"
)

// DetailPane is the last column of a Miller view: a titled, scrollable block
// of wrapped text.
type DetailPane struct {
	ui.Base
	title  string
	text   string
	scroll int
}

// NewDetailPane creates a pane showing text under title.
func NewDetailPane(id, title, text string) *DetailPane {
	return &DetailPane{Base: ui.NewBase(ui.KindDetail, id), title: title, text: text}
}

func (d *DetailPane) Title() string { return d.title }
func (d *DetailPane) Text() string  { return d.text }

// SetText replaces the text and scrolls back to the top.
func (d *DetailPane) SetText(text string) {
	d.text = text
	d.scroll = 0
}

func (d *DetailPane) Focusable() bool { return true }

// Lines returns the text wrapped to the inner width of the pane.
func (d *DetailPane) Lines() []string {
	width := d.Size().Width - 2
	if width <= 0 {
		return nil
	}
	return strings.Split(ansi.Wordwrap(d.text, width, ""), "\n")
}

// ScrollOffset is the first visible line.
func (d *DetailPane) ScrollOffset() int {
	return d.scroll
}

func (d *DetailPane) maxScroll() int {
	return max(0, len(d.Lines())-(d.Size().Height-2))
}

// HandleKey scrolls the text.
func (d *DetailPane) HandleKey(ev keys.Event) bool {
	if !d.Receiving() {
		return false
	}
	switch {
	case ev.Is(keys.CodeUp):
		d.scroll = max(0, d.scroll-1)
	case ev.Is(keys.CodeDown):
		d.scroll = min(d.maxScroll(), d.scroll+1)
	case ev.Is(keys.CodeHome):
		d.scroll = 0
	case ev.Is(keys.CodeEnd):
		d.scroll = d.maxScroll()
	default:
		return false
	}
	return true
}
