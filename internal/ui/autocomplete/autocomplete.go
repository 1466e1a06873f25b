// Package autocomplete provides a text box with a suggestion dropdown.
package autocomplete

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"

	"github.com/zhubert/loom/internal/keys"
	"github.com/zhubert/loom/internal/ui"
	"github.com/zhubert/loom/internal/ui/widgets"
)

// inputHeight is the height of the bordered input line.
const inputHeight = 3

// SelectionListener is called when a suggestion is committed with Enter.
type SelectionListener interface {
	SuggestionSelected(tb *TextBox, suggestion string)
}

// SelectionFunc adapts a function to SelectionListener.
type SelectionFunc func(tb *TextBox, suggestion string)

func (f SelectionFunc) SuggestionSelected(tb *TextBox, s string) { f(tb, s) }

// Provider computes candidates for the current text.
type Provider func(text string) []string

// Comparator orders candidates. A nil comparator keeps provider order.
type Comparator func(a, b string) int

// CaseInsensitive orders strings alphabetically ignoring case.
func CaseInsensitive(a, b string) int {
	return cmp.Or(
		cmp.Compare(strings.ToLower(a), strings.ToLower(b)),
		cmp.Compare(a, b),
	)
}

// FuzzyProvider ranks candidates by fuzzy match score. Use it with a nil
// comparator to keep the ranking.
func FuzzyProvider(candidates []string) Provider {
	data := slices.Clone(candidates)
	return func(text string) []string {
		matches := fuzzy.Find(text, data)
		out := make([]string, len(matches))
		for i, m := range matches {
			out[i] = m.Str
		}
		return out
	}
}

// TextBox is a text input that offers suggestions in a dropdown below it.
// The component grows to include the dropdown while it is shown and asks
// its parent to lay out again.
type TextBox struct {
	ui.Base
	input *widgets.TextBox

	suggestions    []string
	provider       Provider
	comparator     Comparator
	maxSuggestions int
	minCharacters  int

	filtered  []string
	highlight int
	showing   bool
	listeners []SelectionListener
}

// New creates an autocomplete box of the given width.
func New(id string, width int) *TextBox {
	tb := &TextBox{
		Base:           ui.NewBase(ui.KindAutoComplete, id),
		input:          widgets.NewTextBox(id+"-input", width),
		comparator:     CaseInsensitive,
		maxSuggestions: ui.DefaultMaxSuggestions,
		minCharacters:  ui.DefaultMinCharacters,
		highlight:      -1,
	}
	tb.Base.SetSize(ui.Dim(width, inputHeight))
	tb.input.AddTextChangeListener(widgets.TextChangeFunc(func(_ *widgets.TextBox, _, text string) {
		tb.textChanged(text)
	}))
	return tb
}

// TextBox returns the inner input line.
func (tb *TextBox) TextBox() *widgets.TextBox { return tb.input }

func (tb *TextBox) Text() string { return tb.input.Text() }
func (tb *TextBox) SetText(s string) { tb.input.SetText(s) }
func (tb *TextBox) SetPlaceholder(s string) { tb.input.SetPlaceholder(s) }

// Suggestions returns the static candidate set.
func (tb *TextBox) Suggestions() []string {
	return slices.Clone(tb.suggestions)
}

// SetSuggestions replaces the static candidate set.
func (tb *TextBox) SetSuggestions(s []string) {
	tb.suggestions = slices.Clone(s)
}

// AddSuggestion appends one candidate.
func (tb *TextBox) AddSuggestion(s string) {
	tb.suggestions = append(tb.suggestions, s)
}

// SetProvider installs a dynamic candidate source. A nil provider restores
// substring filtering of the static set.
func (tb *TextBox) SetProvider(p Provider) {
	tb.provider = p
}

// SetComparator sets the candidate order.
func (tb *TextBox) SetComparator(c Comparator) {
	tb.comparator = c
}

func (tb *TextBox) MaxSuggestions() int { return tb.maxSuggestions }

// SetMaxSuggestions caps the dropdown. Values below 1 are raised to 1.
func (tb *TextBox) SetMaxSuggestions(n int) {
	tb.maxSuggestions = max(1, n)
}

func (tb *TextBox) MinCharacters() int { return tb.minCharacters }

// SetMinCharacters sets how many runes must be typed before suggestions
// appear. Negative values become 0.
func (tb *TextBox) SetMinCharacters(n int) {
	tb.minCharacters = max(0, n)
}

// AddSelectionListener registers l.
func (tb *TextBox) AddSelectionListener(l SelectionListener) {
	tb.listeners = append(tb.listeners, l)
}

// Filtered returns the candidates currently in the dropdown.
func (tb *TextBox) Filtered() []string {
	return slices.Clone(tb.filtered)
}

// Highlight returns the highlighted dropdown row, or -1.
func (tb *TextBox) Highlight() int { return tb.highlight }

// ShowingSuggestions reports whether the dropdown is open.
func (tb *TextBox) ShowingSuggestions() bool { return tb.showing }

func (tb *TextBox) textChanged(text string) {
	if utf8.RuneCountInString(text) < tb.minCharacters {
		tb.HideSuggestions()
		return
	}
	tb.UpdateSuggestions()
}

// UpdateSuggestions recomputes the dropdown for the current text.
func (tb *TextBox) UpdateSuggestions() {
	tb.filtered = tb.candidates(tb.input.Text())
	if len(tb.filtered) == 0 {
		tb.HideSuggestions()
		return
	}
	tb.highlight = -1
	tb.showing = true
	tb.resize()
}

func (tb *TextBox) candidates(text string) []string {
	var out []string
	switch {
	case tb.provider != nil:
		out = slices.Clone(tb.provider(text))
	case text == "":
		return nil
	default:
		needle := strings.ToLower(text)
		for _, s := range tb.suggestions {
			if strings.Contains(strings.ToLower(s), needle) {
				out = append(out, s)
			}
		}
	}
	if tb.comparator != nil {
		slices.SortStableFunc(out, tb.comparator)
	}
	if len(out) > tb.maxSuggestions {
		out = out[:tb.maxSuggestions]
	}
	return out
}

// HideSuggestions closes the dropdown.
func (tb *TextBox) HideSuggestions() {
	if !tb.showing {
		return
	}
	tb.showing = false
	tb.highlight = -1
	tb.filtered = nil
	tb.resize()
}

// DropdownHeight is the number of suggestion rows shown.
func (tb *TextBox) DropdownHeight() int {
	if !tb.showing {
		return 0
	}
	return min(len(tb.filtered), tb.maxSuggestions)
}

func (tb *TextBox) resize() {
	h := inputHeight
	if n := tb.DropdownHeight(); n > 0 {
		h += n + 2
	}
	if tb.Size().Height == h {
		return
	}
	tb.Base.SetSize(ui.Dim(tb.Size().Width, h))
	if p := tb.Parent(); p != nil {
		p.Relayout()
	}
}

// SetSize resizes the input line to the given width. The height is owned
// by the box and tracks the dropdown.
func (tb *TextBox) SetSize(d ui.Dimension) {
	tb.Base.SetSize(d)
	tb.input.SetSize(ui.Dim(d.Width, inputHeight))
}

func (tb *TextBox) SetPosition(p ui.Point) {
	tb.Base.SetPosition(p)
	tb.input.SetPosition(p)
}

// DropdownRect is the area of the open dropdown, below the input line.
func (tb *TextBox) DropdownRect() ui.Rect {
	n := tb.DropdownHeight()
	if n == 0 {
		return ui.Rect{}
	}
	return ui.Rect{
		Pos:  tb.Position().Offset(0, inputHeight),
		Size: ui.Dim(tb.Size().Width, n+2),
	}
}

func (tb *TextBox) Focusable() bool { return true }

func (tb *TextBox) SetFocused(f bool) {
	tb.Base.SetFocused(f)
	tb.input.SetActive(f)
	if !f {
		tb.HideSuggestions()
	}
}

func (tb *TextBox) SetActive(a bool) {
	tb.Base.SetActive(a)
	tb.input.SetActive(a)
}

// HandleKey offers the key to the input line first, then drives the
// dropdown.
func (tb *TextBox) HandleKey(ev keys.Event) bool {
	if !tb.Receiving() {
		return false
	}
	if tb.input.HandleKey(ev) {
		return true
	}
	if !tb.showing {
		return false
	}

	n := tb.DropdownHeight()
	switch {
	case ev.Is(keys.CodeDown):
		tb.highlight = (tb.highlight + 1) % n
	case ev.Is(keys.CodeUp):
		if tb.highlight <= 0 {
			tb.highlight = n - 1
		} else {
			tb.highlight--
		}
	case ev.Is(keys.CodeEnter):
		if tb.highlight < 0 {
			return false
		}
		tb.commit(tb.filtered[tb.highlight])
	case ev.Is(keys.CodeEscape):
		tb.HideSuggestions()
	default:
		return false
	}
	return true
}

func (tb *TextBox) commit(s string) {
	tb.input.SetText(s)
	tb.HideSuggestions()
	for _, l := range tb.listeners {
		l.SuggestionSelected(tb, s)
	}
}
