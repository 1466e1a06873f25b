package widgets

import (
	"testing"

	"github.com/zhubert/loom/internal/keys"
	"github.com/zhubert/loom/internal/ui/uitest"
)

func focusedTextBox(width int) *TextBox {
	tb := NewTextBox("input", width)
	tb.SetFocused(true)
	return tb
}

func TestTextBox_Editing(t *testing.T) {
	tests := []struct {
		name      string
		initial   string
		keys      []keys.Event
		want      string
		wantCaret int
	}{
		{
			name: "typing appends",
			keys: []keys.Event{keys.Rune('h'), keys.Rune('i')},
			want: "hi", wantCaret: 2,
		},
		{
			name:    "insert in the middle",
			initial: "ac",
			keys:    []keys.Event{keys.Of(keys.CodeLeft), keys.Rune('b')},
			want:    "abc", wantCaret: 2,
		},
		{
			name:    "backspace",
			initial: "abc",
			keys:    []keys.Event{keys.Of(keys.CodeBackspace)},
			want:    "ab", wantCaret: 2,
		},
		{
			name:    "backspace at start does nothing",
			initial: "abc",
			keys:    []keys.Event{keys.Of(keys.CodeHome), keys.Of(keys.CodeBackspace)},
			want:    "abc", wantCaret: 0,
		},
		{
			name:    "delete",
			initial: "abc",
			keys:    []keys.Event{keys.Ctrl('a'), keys.Of(keys.CodeDelete)},
			want:    "bc", wantCaret: 0,
		},
		{
			name:    "end and right",
			initial: "abc",
			keys:    []keys.Event{keys.Of(keys.CodeHome), keys.Ctrl('e'), keys.Of(keys.CodeRight)},
			want:    "abc", wantCaret: 3,
		},
		{
			name: "space",
			keys: []keys.Event{keys.Rune('a'), keys.Of(keys.CodeSpace), keys.Rune('b')},
			want: "a b", wantCaret: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := focusedTextBox(20)
			tb.SetText(tt.initial)
			uitest.Press(tb, tt.keys...)

			if tb.Text() != tt.want {
				t.Errorf("Text() = %q, want %q", tb.Text(), tt.want)
			}
			if tb.Caret() != tt.wantCaret {
				t.Errorf("Caret() = %d, want %d", tb.Caret(), tt.wantCaret)
			}
		})
	}
}

func TestTextBox_LeavesNavigationKeys(t *testing.T) {
	tb := focusedTextBox(20)
	for _, k := range []keys.Code{keys.CodeEnter, keys.CodeTab, keys.CodeUp, keys.CodeEscape} {
		if tb.HandleKey(keys.Of(k)) {
			t.Errorf("HandleKey(%v) = true, want false", keys.Of(k))
		}
	}

	tb.SetFocused(false)
	if tb.HandleKey(keys.Rune('x')) {
		t.Error("unfocused text box accepted input")
	}
}

func TestTextBox_Scrolling(t *testing.T) {
	tb := focusedTextBox(12)
	uitest.Type(tb, "abcdefghijklmnop")

	if tb.VisibleWidth() != 10 {
		t.Fatalf("VisibleWidth() = %d, want 10", tb.VisibleWidth())
	}
	// The caret after the last character takes a cell of its own.
	if tb.ScrollOffset() != 7 {
		t.Errorf("ScrollOffset() = %d, want 7", tb.ScrollOffset())
	}
	if got := tb.VisibleText(); got != "hijklmnop" {
		t.Errorf("VisibleText() = %q, want %q", got, "hijklmnop")
	}
	if col := tb.CaretColumn(); col != 9 {
		t.Errorf("CaretColumn() = %d, want 9", col)
	}

	uitest.Press(tb, keys.Of(keys.CodeHome))
	if tb.ScrollOffset() != 0 {
		t.Errorf("after Home ScrollOffset() = %d, want 0", tb.ScrollOffset())
	}
	if got := tb.VisibleText(); got != "abcdefghij" {
		t.Errorf("after Home VisibleText() = %q", got)
	}

	// The caret always stays inside the window.
	for range 16 {
		uitest.Press(tb, keys.Of(keys.CodeRight))
		col := tb.CaretColumn()
		if col < 0 || col >= tb.VisibleWidth() {
			t.Fatalf("caret column %d outside window at caret %d", col, tb.Caret())
		}
	}
}

func TestTextBox_Password(t *testing.T) {
	tb := focusedTextBox(20)
	tb.SetPassword(true)
	tb.SetText("secret")

	if got := tb.VisibleText(); got != "******" {
		t.Errorf("VisibleText() = %q, want masked", got)
	}
	if tb.Text() != "secret" {
		t.Errorf("Text() = %q, want the clear text", tb.Text())
	}

	tb.SetPasswordChar('•')
	if got := tb.VisibleText(); got != "••••••" {
		t.Errorf("VisibleText() = %q with custom mask", got)
	}
}

func TestTextBox_ChangeListener(t *testing.T) {
	tb := focusedTextBox(20)

	type change struct{ old, new string }
	var changes []change
	tb.AddTextChangeListener(TextChangeFunc(func(_ *TextBox, oldText, newText string) {
		changes = append(changes, change{oldText, newText})
	}))

	tb.SetText("ab")
	tb.SetText("ab")
	uitest.Press(tb, keys.Of(keys.CodeLeft), keys.Of(keys.CodeBackspace))
	tb.InsertText("x\ny")

	want := []change{{"", "ab"}, {"ab", "b"}, {"b", "x yb"}}
	if len(changes) != len(want) {
		t.Fatalf("got %d changes %v, want %v", len(changes), changes, want)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("change %d = %v, want %v", i, changes[i], want[i])
		}
	}
}

func TestTextBox_SetCaretClamps(t *testing.T) {
	tb := NewTextBox("input", 20)
	tb.SetText("abc")

	tb.SetCaret(-4)
	if tb.Caret() != 0 {
		t.Errorf("Caret() = %d, want 0", tb.Caret())
	}
	tb.SetCaret(99)
	if tb.Caret() != 3 {
		t.Errorf("Caret() = %d, want 3", tb.Caret())
	}
}

func TestTextBox_CaretAtEndStaysInWindow(t *testing.T) {
	tests := []struct {
		name  string
		width int
		text  string
	}{
		{name: "fits exactly", width: 7, text: "abcde"},
		{name: "one over", width: 7, text: "abcdef"},
		{name: "long", width: 12, text: "the quick brown fox jumps"},
		{name: "narrow", width: 4, text: "abcdef"},
		{name: "wide characters count once", width: 8, text: "日本語テキスト"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := focusedTextBox(tt.width)
			tb.SetText(tt.text)
			if col := tb.CaretColumn(); col < 0 || col >= tb.VisibleWidth() {
				t.Errorf("CaretColumn() = %d, want within [0, %d)", col, tb.VisibleWidth())
			}
		})
	}
}

func TestTextBox_TextRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty", text: ""},
		{name: "ascii", text: "hello"},
		{name: "accented", text: "héllo"},
		{name: "cjk", text: "日本語"},
		{name: "emoji", text: "ok 👍🏽"},
		{name: "invalid byte", text: "ab\xffcd"},
		{name: "only invalid bytes", text: "\xff\xfe"},
		{name: "truncated sequence", text: "x\xe6\x97"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := focusedTextBox(6)
			tb.SetText(tt.text)
			if got := tb.Text(); got != tt.text {
				t.Errorf("Text() = %q, want %q", got, tt.text)
			}

			// Walking the caret across the text must not rewrite it.
			uitest.Press(tb, keys.Of(keys.CodeHome))
			for range len(tt.text) {
				uitest.Press(tb, keys.Of(keys.CodeRight))
			}
			if got := tb.Text(); got != tt.text {
				t.Errorf("after caret moves Text() = %q, want %q", got, tt.text)
			}
		})
	}
}

func TestTextBox_EditingKeepsBytes(t *testing.T) {
	tests := []struct {
		name      string
		initial   string
		keys      []keys.Event
		want      string
		wantCaret int
	}{
		{
			name:    "backspace removes one multi-byte character",
			initial: "aé日",
			keys:    []keys.Event{keys.Of(keys.CodeBackspace)},
			want:    "aé", wantCaret: 2,
		},
		{
			name:    "backspace removes one invalid byte",
			initial: "ab\xff",
			keys:    []keys.Event{keys.Of(keys.CodeBackspace)},
			want:    "ab", wantCaret: 2,
		},
		{
			name:    "delete around an invalid byte",
			initial: "a\xffb",
			keys:    []keys.Event{keys.Of(keys.CodeHome), keys.Of(keys.CodeDelete)},
			want:    "\xffb", wantCaret: 0,
		},
		{
			name:    "insert after an invalid byte",
			initial: "\xfez",
			keys:    []keys.Event{keys.Of(keys.CodeHome), keys.Of(keys.CodeRight), keys.Rune('é')},
			want:    "\xfeéz", wantCaret: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := focusedTextBox(20)
			tb.SetText(tt.initial)
			uitest.Press(tb, tt.keys...)
			if got := tb.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
			if tb.Caret() != tt.wantCaret {
				t.Errorf("Caret() = %d, want %d", tb.Caret(), tt.wantCaret)
			}
		})
	}
}
