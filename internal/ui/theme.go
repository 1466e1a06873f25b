package ui

import (
	"maps"
	"slices"
)

// Palette defines the colors a theme is derived from. Each palette provides
// colors for all component kinds, ensuring visual consistency.
type Palette struct {
	// Name is the display name of the palette
	Name string

	// Primary is the main accent color (used for focus, highlights, headers)
	Primary Color
	// Secondary is the secondary accent color (used for info, links)
	Secondary Color

	// Background colors
	Bg         Color // Main background
	BgSelected Color // Selected item background (defaults to Primary if empty)

	// Text colors
	Text        Color // Primary text
	TextMuted   Color // Secondary/muted text
	TextInverse Color // Text on colored backgrounds

	// Semantic colors
	Success Color // Current workflow state, completed progress
	Warning Color // Available transitions, partial progress
	Error   Color // Errors, stalled progress
	Info    Color // Information, prompts

	// Border colors
	Border      Color // Default borders
	BorderFocus Color // Focused element borders (defaults to Primary if empty)
}

// GetBgSelected returns the selected background color, defaulting to Primary
func (p Palette) GetBgSelected() Color {
	if p.BgSelected != "" {
		return p.BgSelected
	}
	return p.Primary
}

// GetBorderFocus returns the focused border color, defaulting to Primary
func (p Palette) GetBorderFocus() Color {
	if p.BorderFocus != "" {
		return p.BorderFocus
	}
	return p.Primary
}

// ThemeName is a type for theme identifiers
type ThemeName string

// Available theme names
const (
	ThemeDarkPurple     ThemeName = "dark-purple"
	ThemeNord           ThemeName = "nord"
	ThemeDracula        ThemeName = "dracula"
	ThemeGruvbox        ThemeName = "gruvbox"
	ThemeTokyoNight     ThemeName = "tokyo-night"
	ThemeCatppuccin     ThemeName = "catppuccin"
	ThemeScienceFiction ThemeName = "science-fiction"
	ThemeLight          ThemeName = "light"
)

// DefaultThemeName is the theme used when none is configured
const DefaultThemeName = ThemeDarkPurple

// BuiltinPalettes contains all built-in palettes
var BuiltinPalettes = map[ThemeName]Palette{
	ThemeDarkPurple: {
		Name:        "Dark Purple",
		Primary:     "#7C3AED",
		Secondary:   "#06B6D4",
		Bg:          "#1F2937",
		Text:        "#F9FAFB",
		TextMuted:   "#9CA3AF",
		TextInverse: "#1F2937",
		Success:     "#4ADE80",
		Warning:     "#F59E0B",
		Error:       "#EF4444",
		Info:        "#06B6D4",
		Border:      "#374151",
	},
	ThemeNord: {
		Name:        "Nord",
		Primary:     "#88C0D0",
		Secondary:   "#81A1C1",
		Bg:          "#2E3440",
		Text:        "#ECEFF4",
		TextMuted:   "#D8DEE9",
		TextInverse: "#2E3440",
		Success:     "#A3BE8C",
		Warning:     "#EBCB8B",
		Error:       "#BF616A",
		Info:        "#81A1C1",
		Border:      "#4C566A",
	},
	ThemeDracula: {
		Name:        "Dracula",
		Primary:     "#BD93F9",
		Secondary:   "#8BE9FD",
		Bg:          "#282A36",
		Text:        "#F8F8F2",
		TextMuted:   "#6272A4",
		TextInverse: "#282A36",
		Success:     "#50FA7B",
		Warning:     "#FFB86C",
		Error:       "#FF5555",
		Info:        "#8BE9FD",
		Border:      "#44475A",
	},
	ThemeGruvbox: {
		Name:        "Gruvbox Dark",
		Primary:     "#FE8019",
		Secondary:   "#83A598",
		Bg:          "#282828",
		Text:        "#EBDBB2",
		TextMuted:   "#A89984",
		TextInverse: "#282828",
		Success:     "#B8BB26",
		Warning:     "#FABD2F",
		Error:       "#FB4934",
		Info:        "#83A598",
		Border:      "#504945",
	},
	ThemeTokyoNight: {
		Name:        "Tokyo Night",
		Primary:     "#7AA2F7",
		Secondary:   "#BB9AF7",
		Bg:          "#1A1B26",
		Text:        "#C0CAF5",
		TextMuted:   "#565F89",
		TextInverse: "#1A1B26",
		Success:     "#9ECE6A",
		Warning:     "#E0AF68",
		Error:       "#F7768E",
		Info:        "#7DCFFF",
		Border:      "#3B4261",
	},
	ThemeCatppuccin: {
		Name:        "Catppuccin Mocha",
		Primary:     "#CBA6F7",
		Secondary:   "#89DCEB",
		Bg:          "#1E1E2E",
		Text:        "#CDD6F4",
		TextMuted:   "#6C7086",
		TextInverse: "#1E1E2E",
		Success:     "#A6E3A1",
		Warning:     "#FAB387",
		Error:       "#F38BA8",
		Info:        "#89DCEB",
		Border:      "#313244",
	},
	ThemeScienceFiction: {
		Name:        "Science Fiction",
		Primary:     "#E50914",
		Secondary:   "#8B0000",
		Bg:          "#0A0A0A",
		BgSelected:  "#2D0A0A",
		Text:        "#E8E8E8",
		TextMuted:   "#666666",
		TextInverse: "#0A0A0A",
		Success:     "#00AA00",
		Warning:     "#FF6600",
		Error:       "#FF0000",
		Info:        "#AA0000",
		Border:      "#330000",
		BorderFocus: "#E50914",
	},
	ThemeLight: {
		Name:        "Light",
		Primary:     "#6366F1",
		Secondary:   "#0891B2",
		Bg:          "#FFFFFF",
		BgSelected:  "#E0E7FF",
		Text:        "#1F2937",
		TextMuted:   "#6B7280",
		TextInverse: "#FFFFFF",
		Success:     "#16A34A",
		Warning:     "#D97706",
		Error:       "#DC2626",
		Info:        "#0891B2",
		Border:      "#D1D5DB",
		BorderFocus: "#6366F1",
	},
}

// DefaultKey is the theme entry consulted after kind and local styles.
const DefaultKey = "default"

// Theme is a cascading style table keyed by "<kind>" or "<kind>.<state>".
type Theme struct {
	Name    ThemeName
	Palette Palette
	styles  map[string]Style
}

// NewTheme returns an empty theme. Every lookup falls through to Fallback
// until entries are added with Set.
func NewTheme(name ThemeName) *Theme {
	return &Theme{Name: name, styles: make(map[string]Style)}
}

// Set stores the style for a key such as "button" or "button.focused".
func (t *Theme) Set(key string, s Style) {
	t.styles[key] = s
}

// Lookup returns the style stored under key, if any.
func (t *Theme) Lookup(key string) (Style, bool) {
	if t == nil {
		return Style{}, false
	}
	s, ok := t.styles[key]
	return s, ok
}

// Keys returns the defined keys in sorted order.
func (t *Theme) Keys() []string {
	return slices.Sorted(maps.Keys(t.styles))
}

// Resolve finds the style for a component kind in a given state. The lookup
// order is "<kind>.<state>", then "<kind>", then the component-local style,
// then the theme default. The first match is merged over Fallback so every
// field of the result is defined. A nil theme resolves to local or Fallback.
func (t *Theme) Resolve(kind Kind, state State, local *Style) Style {
	if state != StateNormal {
		if s, ok := t.Lookup(string(kind) + "." + string(state)); ok {
			return Fallback.Merge(s)
		}
	}
	if s, ok := t.Lookup(string(kind)); ok {
		return Fallback.Merge(s)
	}
	if local != nil {
		return Fallback.Merge(*local)
	}
	if s, ok := t.Lookup(DefaultKey); ok {
		return Fallback.Merge(s)
	}
	return Fallback
}

// ResolveFor resolves the style of c in its current state.
func (t *Theme) ResolveFor(c Component) Style {
	return t.Resolve(c.Kind(), StateOf(c), c.Style())
}

// Part resolves a named piece of a kind, such as "list.header". A missing
// entry resolves like the bare kind.
func (t *Theme) Part(kind Kind, part string) Style {
	if s, ok := t.Lookup(string(kind) + "." + part); ok {
		return Fallback.Merge(s)
	}
	return t.Resolve(kind, StateNormal, nil)
}

// ThemeFromPalette derives the full cascade table for every component kind.
func ThemeFromPalette(name ThemeName, p Palette) *Theme {
	t := NewTheme(name)
	t.Palette = p

	text := Style{Foreground: p.Text}
	muted := Style{Foreground: p.TextMuted}
	border := Style{Foreground: p.Border, Border: BorderRounded}
	focusBorder := Style{Foreground: p.GetBorderFocus(), Border: BorderRounded}
	selected := Style{Foreground: p.TextInverse, Background: p.GetBgSelected(), Bold: true}
	disabled := Style{Foreground: p.TextMuted, Italic: true}

	t.Set(DefaultKey, text)

	t.Set(string(KindContainer), Style{Foreground: p.Border})
	t.Set(string(KindLabel), text)
	t.Set(string(KindLabel)+".title", Style{Foreground: p.Primary, Bold: true})

	t.Set(string(KindButton), Style{Foreground: p.Text, Border: BorderRounded})
	t.Set(string(KindButton)+"."+string(StateFocused), Style{Foreground: p.TextInverse, Background: p.Primary, Bold: true, Border: BorderRounded})
	t.Set(string(KindButton)+"."+string(StateDisabled), disabled)

	t.Set(string(KindTextBox), border)
	t.Set(string(KindTextBox)+"."+string(StateFocused), focusBorder)
	t.Set(string(KindTextBox)+"."+string(StateDisabled), disabled)
	t.Set(string(KindTextBox)+".placeholder", muted)
	t.Set(string(KindTextBox)+".text", text)

	t.Set(string(KindList), border)
	t.Set(string(KindList)+"."+string(StateFocused), focusBorder)
	t.Set(string(KindList)+"."+string(StateSelected), selected)
	t.Set(string(KindList)+".item", text)
	t.Set(string(KindList)+".header", Style{Foreground: p.Secondary, Bold: true})

	t.Set(string(KindProgress), border)
	t.Set(string(KindProgress)+".title", Style{Foreground: p.Primary, Bold: true})
	t.Set(string(KindProgress)+".bar", Style{Foreground: p.Success})
	t.Set(string(KindProgress)+".track", muted)

	t.Set(string(KindHistory), border)
	t.Set(string(KindHistory)+"."+string(StateFocused), focusBorder)

	t.Set(string(KindWorkflow), Style{Foreground: p.TextMuted, Border: BorderSingle})
	t.Set(string(KindWorkflow)+"."+string(StateCurrent), Style{Foreground: p.Success, Bold: true, Border: BorderDouble})
	t.Set(string(KindWorkflow)+"."+string(StateAvailable), Style{Foreground: p.Warning, Border: BorderSingle})
	t.Set(string(KindWorkflow)+".status", Style{Foreground: p.Info})

	t.Set(string(KindGraph), border)
	t.Set(string(KindGraph)+".node", Style{Foreground: p.Text, Border: BorderSingle})
	t.Set(string(KindGraph)+".focus", Style{Foreground: p.Primary, Bold: true, Border: BorderDouble})
	t.Set(string(KindGraph)+"."+string(StateSelected), Style{Foreground: p.Warning, Bold: true, Border: BorderThick})
	t.Set(string(KindGraph)+".expanded", Style{Foreground: p.Secondary, Border: BorderSingle})
	t.Set(string(KindGraph)+".edge", muted)
	t.Set(string(KindGraph)+".legend", Style{Foreground: p.Secondary})

	t.Set(string(KindMiller), Style{Foreground: p.Border})
	t.Set(string(KindDetail), border)
	t.Set(string(KindDetail)+"."+string(StateFocused), focusBorder)

	t.Set(string(KindAutoComplete), border)
	t.Set(string(KindAutoComplete)+"."+string(StateFocused), focusBorder)
	t.Set(string(KindAutoComplete)+".dropdown", Style{Foreground: p.Text, Background: p.Bg, Border: BorderSingle})
	t.Set(string(KindAutoComplete)+"."+string(StateSelected), selected)

	t.Set(string(KindConsole), border)
	t.Set(string(KindConsole)+"."+string(StateFocused), focusBorder)
	t.Set(string(KindConsole)+".prompt", Style{Foreground: p.Primary, Bold: true})
	t.Set(string(KindConsole)+".output", text)
	t.Set(string(KindConsole)+".error", Style{Foreground: p.Error})
	t.Set(string(KindConsole)+".keyword", Style{Foreground: p.Secondary, Bold: true})
	t.Set(string(KindConsole)+".builtin", Style{Foreground: p.Info})
	t.Set(string(KindConsole)+".string", Style{Foreground: p.Success})
	t.Set(string(KindConsole)+".spinner", Style{Foreground: p.Warning})
	t.Set(string(KindConsole)+"."+string(StateSelected), selected)

	return t
}

// BuiltinTheme returns the theme derived from a built-in palette. Unknown
// names fall back to the default theme.
func BuiltinTheme(name ThemeName) *Theme {
	p, ok := BuiltinPalettes[name]
	if !ok {
		name = DefaultThemeName
		p = BuiltinPalettes[name]
	}
	return ThemeFromPalette(name, p)
}

// DefaultTheme returns the default built-in theme.
func DefaultTheme() *Theme {
	return BuiltinTheme(DefaultThemeName)
}

// ThemeNames returns all built-in theme names in sorted order.
func ThemeNames() []ThemeName {
	return slices.Sorted(maps.Keys(BuiltinPalettes))
}
