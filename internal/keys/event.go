package keys

import (
	"fmt"
	"unicode"

	tea "charm.land/bubbletea/v2"
)

// Code identifies a key. Printable characters use CodeRune and carry the
// character in Event.Char; everything else uses one of the named codes.
type Code int

// Key codes. The numeric values match the historical curses-style codes the
// widgets were designed around, so recorded key scripts stay stable.
const (
	CodeNone      Code = 0
	CodeTab       Code = 9
	CodeEnter     Code = 13
	CodeEscape    Code = 27
	CodeSpace     Code = 32
	CodeBackspace Code = 127
	CodePgUp      Code = 309
	CodePgDown    Code = 310
	CodeUp        Code = 321
	CodeDown      Code = 322
	CodeRight     Code = 323
	CodeLeft      Code = 324
	CodeEnd       Code = 326
	CodeHome      Code = 328
	CodeDelete    Code = 330
	CodeF1        Code = 336
	CodeF2        Code = 337
	CodeF3        Code = 338
	CodeF4        Code = 339
	CodeRune      Code = 1000
)

var codeNames = map[Code]string{
	CodeTab:       "tab",
	CodeEnter:     "enter",
	CodeEscape:    "esc",
	CodeSpace:     "space",
	CodeBackspace: "backspace",
	CodePgUp:      "pgup",
	CodePgDown:    "pgdown",
	CodeUp:        "up",
	CodeDown:      "down",
	CodeRight:     "right",
	CodeLeft:      "left",
	CodeEnd:       "end",
	CodeHome:      "home",
	CodeDelete:    "delete",
	CodeF1:        "f1",
	CodeF2:        "f2",
	CodeF3:        "f3",
	CodeF4:        "f4",
}

// Mod is a bit set of modifier keys.
type Mod int

const (
	ModShift Mod = 1 << iota
	ModCtrl
	ModAlt
)

// Event is a single key press delivered to the component tree.
type Event struct {
	Code Code
	Char rune
	Mod  Mod
}

// Of returns an event for a named key with no modifiers.
func Of(code Code) Event {
	if code == CodeSpace {
		return Event{Code: CodeSpace, Char: ' '}
	}
	return Event{Code: code}
}

// Rune returns the event for typing r.
func Rune(r rune) Event {
	if r == ' ' {
		return Of(CodeSpace)
	}
	return Event{Code: CodeRune, Char: r}
}

// Ctrl returns the event for ctrl+r.
func Ctrl(r rune) Event {
	return Event{Code: CodeRune, Char: unicode.ToLower(r), Mod: ModCtrl}
}

// Shift returns code with the shift modifier applied.
func Shift(code Code) Event {
	return Event{Code: code, Mod: ModShift}
}

// Is reports whether the event is the unmodified named key.
func (e Event) Is(code Code) bool {
	return e.Code == code && e.Mod&(ModCtrl|ModAlt) == 0
}

// IsCtrl reports whether the event is ctrl+r.
func (e Event) IsCtrl(r rune) bool {
	return e.Code == CodeRune && e.Mod&ModCtrl != 0 && unicode.ToLower(e.Char) == unicode.ToLower(r)
}

// Printable returns the character to insert for this event, if any.
func (e Event) Printable() (rune, bool) {
	if e.Mod&(ModCtrl|ModAlt) != 0 {
		return 0, false
	}
	switch e.Code {
	case CodeSpace:
		return ' ', true
	case CodeRune:
		if unicode.IsPrint(e.Char) {
			return e.Char, true
		}
	}
	return 0, false
}

func (e Event) String() string {
	var prefix string
	if e.Mod&ModCtrl != 0 {
		prefix += "ctrl+"
	}
	if e.Mod&ModAlt != 0 {
		prefix += "alt+"
	}
	if e.Mod&ModShift != 0 {
		prefix += "shift+"
	}
	if e.Code == CodeRune {
		return prefix + string(e.Char)
	}
	if name, ok := codeNames[e.Code]; ok {
		return prefix + name
	}
	return fmt.Sprintf("%skey(%d)", prefix, int(e.Code))
}

var teaCodes = map[rune]Code{
	tea.KeyTab:       CodeTab,
	tea.KeyEnter:     CodeEnter,
	tea.KeyEscape:    CodeEscape,
	tea.KeySpace:     CodeSpace,
	tea.KeyBackspace: CodeBackspace,
	tea.KeyPgUp:      CodePgUp,
	tea.KeyPgDown:    CodePgDown,
	tea.KeyUp:        CodeUp,
	tea.KeyDown:      CodeDown,
	tea.KeyRight:     CodeRight,
	tea.KeyLeft:      CodeLeft,
	tea.KeyEnd:       CodeEnd,
	tea.KeyHome:      CodeHome,
	tea.KeyDelete:    CodeDelete,
	tea.KeyF1:        CodeF1,
	tea.KeyF2:        CodeF2,
	tea.KeyF3:        CodeF3,
	tea.KeyF4:        CodeF4,
}

// FromTea converts a Bubble Tea key press into an Event. Terminal escape
// decoding has already happened by the time a KeyPressMsg exists.
func FromTea(msg tea.KeyPressMsg) Event {
	var mod Mod
	if msg.Mod&tea.ModShift != 0 {
		mod |= ModShift
	}
	if msg.Mod&tea.ModCtrl != 0 {
		mod |= ModCtrl
	}
	if msg.Mod&tea.ModAlt != 0 {
		mod |= ModAlt
	}

	if code, ok := teaCodes[msg.Code]; ok {
		ev := Event{Code: code, Mod: mod}
		if code == CodeSpace {
			ev.Char = ' '
		}
		return ev
	}

	if msg.Text != "" && mod&(ModCtrl|ModAlt) == 0 {
		r := []rune(msg.Text)[0]
		if r == ' ' {
			return Of(CodeSpace)
		}
		// Shift is already folded into the text.
		return Event{Code: CodeRune, Char: r}
	}
	if msg.Code != 0 {
		return Event{Code: CodeRune, Char: msg.Code, Mod: mod}
	}
	return Event{}
}
