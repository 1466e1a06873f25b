package widgets

import (
	"strings"
	"unicode/utf8"

	"github.com/zhubert/loom/internal/keys"
	"github.com/zhubert/loom/internal/ui"
)

// TextChangeListener is called with the old and new text after an edit.
type TextChangeListener interface {
	TextChanged(tb *TextBox, oldText, newText string)
}

// TextChangeFunc adapts a function to TextChangeListener.
type TextChangeFunc func(tb *TextBox, oldText, newText string)

func (f TextChangeFunc) TextChanged(tb *TextBox, oldText, newText string) { f(tb, oldText, newText) }

// TextBox is a single-line editable field. Text wider than the box scrolls
// horizontally so the caret stays ScrollMargin columns from either edge.
//
// The text is kept byte for byte. Caret and scroll count characters as
// utf8.DecodeRuneInString sees them, so an invalid byte is one character.
type TextBox struct {
	ui.Base
	text         string
	caret        int
	scroll       int
	placeholder  string
	password     bool
	passwordChar rune
	listeners    []TextChangeListener
}

// NewTextBox creates a bordered text box of the given width.
func NewTextBox(id string, width int) *TextBox {
	tb := &TextBox{
		Base:         ui.NewBase(ui.KindTextBox, id),
		passwordChar: ui.PasswordChar,
	}
	tb.Base.SetSize(ui.Dim(width, 3))
	return tb
}

// Text returns the current contents
func (tb *TextBox) Text() string {
	return tb.text
}

// SetText replaces the contents and moves the caret to the end.
func (tb *TextBox) SetText(s string) {
	old := tb.text
	tb.text = s
	tb.caret = tb.length()
	tb.adjustScroll()
	tb.notify(old)
}

// length is the number of characters in the text.
func (tb *TextBox) length() int {
	return utf8.RuneCountInString(tb.text)
}

// offset returns the byte index of character n.
func (tb *TextBox) offset(n int) int {
	i := 0
	for ; n > 0 && i < len(tb.text); n-- {
		_, size := utf8.DecodeRuneInString(tb.text[i:])
		i += size
	}
	return i
}

// splice replaces characters [from, to) with s.
func (tb *TextBox) splice(from, to int, s string) {
	i, j := tb.offset(from), tb.offset(to)
	tb.text = tb.text[:i] + s + tb.text[j:]
}

// InsertText inserts s at the caret, as a paste does. Newlines become spaces.
func (tb *TextBox) InsertText(s string) {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(s)
	if s == "" {
		return
	}
	old := tb.text
	tb.splice(tb.caret, tb.caret, s)
	tb.caret += utf8.RuneCountInString(s)
	tb.adjustScroll()
	tb.notify(old)
}

// Caret returns the caret offset in characters
func (tb *TextBox) Caret() int {
	return tb.caret
}

// SetCaret moves the caret, clamped to the text.
func (tb *TextBox) SetCaret(pos int) {
	tb.caret = max(0, min(tb.length(), pos))
	tb.adjustScroll()
}

// Placeholder returns the text shown while the box is empty
func (tb *TextBox) Placeholder() string {
	return tb.placeholder
}

// SetPlaceholder sets the text shown while the box is empty
func (tb *TextBox) SetPlaceholder(s string) {
	tb.placeholder = s
}

// Password reports whether contents are masked
func (tb *TextBox) Password() bool {
	return tb.password
}

// SetPassword enables or disables masking
func (tb *TextBox) SetPassword(on bool) {
	tb.password = on
}

// PasswordChar returns the mask character
func (tb *TextBox) PasswordChar() rune {
	return tb.passwordChar
}

// SetPasswordChar sets the mask character
func (tb *TextBox) SetPasswordChar(r rune) {
	tb.passwordChar = r
}

// AddTextChangeListener registers l. Listeners fire in registration order.
func (tb *TextBox) AddTextChangeListener(l TextChangeListener) {
	tb.listeners = append(tb.listeners, l)
}

func (tb *TextBox) notify(old string) {
	cur := tb.text
	if cur == old {
		return
	}
	for _, l := range tb.listeners {
		l.TextChanged(tb, old, cur)
	}
}

// SetSize resizes the box and keeps the caret in view.
func (tb *TextBox) SetSize(d ui.Dimension) {
	tb.Base.SetSize(d)
	tb.adjustScroll()
}

// VisibleWidth is the number of text columns inside the border.
func (tb *TextBox) VisibleWidth() int {
	return max(0, tb.Size().Width-2)
}

// ScrollOffset returns the index of the first visible character.
func (tb *TextBox) ScrollOffset() int {
	return tb.scroll
}

// adjustScroll keeps the caret inside the window. A caret after the last
// character needs a cell of its own.
func (tb *TextBox) adjustScroll() {
	visible := tb.VisibleWidth()
	n := tb.length()
	if tb.caret == n {
		n++
	}
	if visible <= 0 || n <= visible {
		tb.scroll = 0
		return
	}

	margin := min(ui.ScrollMargin, (visible-1)/2)
	if tb.caret < tb.scroll+margin {
		tb.scroll = tb.caret - margin
	} else if tb.caret > tb.scroll+visible-1-margin {
		tb.scroll = tb.caret - visible + 1 + margin
	}
	tb.scroll = max(0, min(tb.scroll, n-visible))
}

// VisibleText returns the part of the text inside the scroll window, masked
// in password mode.
func (tb *TextBox) VisibleText() string {
	end := min(tb.length(), tb.scroll+tb.VisibleWidth())
	if tb.scroll >= end {
		return ""
	}
	if tb.password {
		return strings.Repeat(string(tb.passwordChar), end-tb.scroll)
	}
	return tb.text[tb.offset(tb.scroll):tb.offset(end)]
}

// CaretColumn is the caret position relative to the scroll window.
func (tb *TextBox) CaretColumn() int {
	return tb.caret - tb.scroll
}

func (tb *TextBox) Focusable() bool { return true }

// HandleKey edits the text. Enter is left for the owner of the box.
func (tb *TextBox) HandleKey(ev keys.Event) bool {
	if !tb.Receiving() {
		return false
	}

	old := tb.text
	switch {
	case ev.Is(keys.CodeLeft):
		if tb.caret > 0 {
			tb.caret--
		}
	case ev.Is(keys.CodeRight):
		if tb.caret < tb.length() {
			tb.caret++
		}
	case ev.Is(keys.CodeHome), ev.IsCtrl('a'):
		tb.caret = 0
	case ev.Is(keys.CodeEnd), ev.IsCtrl('e'):
		tb.caret = tb.length()
	case ev.Is(keys.CodeBackspace):
		if tb.caret > 0 {
			tb.splice(tb.caret-1, tb.caret, "")
			tb.caret--
		}
	case ev.Is(keys.CodeDelete):
		if tb.caret < tb.length() {
			tb.splice(tb.caret, tb.caret+1, "")
		}
	default:
		r, ok := ev.Printable()
		if !ok {
			return false
		}
		tb.splice(tb.caret, tb.caret, string(r))
		tb.caret++
	}

	tb.adjustScroll()
	tb.notify(old)
	return true
}
