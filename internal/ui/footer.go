package ui

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// FlashType selects the color of a footer flash message.
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

// FlashDuration is how long a flash message stays up.
const FlashDuration = 4 * time.Second

// FlashMessage is a short-lived status message shown in place of the key
// help.
type FlashMessage struct {
	Text    string
	Type    FlashType
	Expires time.Time
}

// Footer is the bottom bar: short key help, or a flash message while one is
// current.
type Footer struct {
	width int
	help  help.Model
	flash *FlashMessage
	now   func() time.Time
}

// NewFooter creates an empty footer
func NewFooter() *Footer {
	return &Footer{help: help.New(), now: time.Now}
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
	f.help.SetWidth(width)
}

// SetFlash shows text until FlashDuration has passed.
func (f *Footer) SetFlash(text string, t FlashType) {
	f.flash = &FlashMessage{Text: text, Type: t, Expires: f.now().Add(FlashDuration)}
}

// Flash returns the current flash message, or nil.
func (f *Footer) Flash() *FlashMessage {
	return f.flash
}

// ClearExpiredFlash drops the flash message once it has expired and reports
// whether it did.
func (f *Footer) ClearExpiredFlash() bool {
	if f.flash != nil && !f.now().Before(f.flash.Expires) {
		f.flash = nil
		return true
	}
	return false
}

// ClearFlash drops the flash message
func (f *Footer) ClearFlash() {
	f.flash = nil
}

// View renders the footer using the bindings of km.
func (f *Footer) View(km help.KeyMap, p Palette) string {
	base := lipgloss.NewStyle().Foreground(lipgloss.Color(string(p.TextMuted))).Padding(0, 1)

	if f.flash != nil {
		color := p.Info
		switch f.flash.Type {
		case FlashSuccess:
			color = p.Success
		case FlashWarning:
			color = p.Warning
		case FlashError:
			color = p.Error
		}
		text := ansi.Truncate(f.flash.Text, max(0, f.width-2), "…")
		return base.Foreground(lipgloss.Color(string(color))).Bold(true).Width(f.width).Render(text)
	}

	f.help.Styles.ShortKey = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(string(p.Secondary)))
	f.help.Styles.ShortDesc = lipgloss.NewStyle().Foreground(lipgloss.Color(string(p.TextMuted)))
	f.help.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(lipgloss.Color(string(p.Border)))
	f.help.SetWidth(max(0, f.width-2))
	content := f.help.ShortHelpView(km.ShortHelp())
	if strings.TrimSpace(ansi.Strip(content)) == "" {
		content = ""
	}
	return base.Width(f.width).Render(content)
}
