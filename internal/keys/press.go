package keys

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

var namedPresses = map[string]tea.KeyPressMsg{
	Enter:     {Code: tea.KeyEnter},
	Tab:       {Code: tea.KeyTab},
	ShiftTab:  {Code: tea.KeyTab, Mod: tea.ModShift},
	Escape:    {Code: tea.KeyEscape},
	"escape":  {Code: tea.KeyEscape},
	Backspace: {Code: tea.KeyBackspace},
	Delete:    {Code: tea.KeyDelete},
	Space:     {Code: tea.KeySpace, Text: " "},
	Up:        {Code: tea.KeyUp},
	Down:      {Code: tea.KeyDown},
	Left:      {Code: tea.KeyLeft},
	Right:     {Code: tea.KeyRight},
	Home:      {Code: tea.KeyHome},
	End:       {Code: tea.KeyEnd},
	PgUp:      {Code: tea.KeyPgUp},
	PgDown:    {Code: tea.KeyPgDown},
	F1:        {Code: tea.KeyF1},
	F2:        {Code: tea.KeyF2},
	F3:        {Code: tea.KeyF3},
	F4:        {Code: tea.KeyF4},
	F5:        {Code: tea.KeyF5},
	F6:        {Code: tea.KeyF6},
}

// Press returns the key press for a name such as "enter", "ctrl+n" or a
// single character. Scripted input (demos and tests) is written with these
// names.
func Press(name string) tea.KeyPressMsg {
	if msg, ok := namedPresses[name]; ok {
		return msg
	}
	if rest, ok := strings.CutPrefix(name, "ctrl+"); ok && len([]rune(rest)) == 1 {
		return tea.KeyPressMsg{Code: []rune(rest)[0], Mod: tea.ModCtrl}
	}
	if rest, ok := strings.CutPrefix(name, "alt+"); ok && len([]rune(rest)) == 1 {
		return tea.KeyPressMsg{Code: []rune(rest)[0], Mod: tea.ModAlt}
	}
	if r := []rune(name); len(r) == 1 {
		return tea.KeyPressMsg{Code: r[0], Text: name}
	}
	return tea.KeyPressMsg{Text: name}
}
