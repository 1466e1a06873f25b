package ui

// Layout constants for the application frame
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// MinTerminalWidth is the narrowest terminal the frame is laid out for
	MinTerminalWidth = 40

	// MinTerminalHeight is the shortest terminal the frame is laid out for
	MinTerminalHeight = 10

	// DefaultWidth and DefaultHeight are used before the first resize
	DefaultWidth  = 120
	DefaultHeight = 40
)

// Widget defaults
const (
	// ScrollMargin is how close the caret may get to a text box edge before
	// the visible window scrolls
	ScrollMargin = 2

	// PasswordChar masks text box contents in password mode
	PasswordChar = '*'

	// DefaultPrompt is the shell console prompt
	DefaultPrompt = "$ "

	// DefaultHistoryLimit caps the command history list
	DefaultHistoryLimit = 100

	// DefaultMaxSuggestions caps the autocomplete dropdown
	DefaultMaxSuggestions = 8

	// DefaultMinCharacters is the input length that triggers suggestions
	DefaultMinCharacters = 1

	// DefaultMaxColumns is the number of Miller columns including the detail pane
	DefaultMaxColumns = 4

	// DefaultNavigationDepth is how many hops the dependency graph shows
	DefaultNavigationDepth = 1
)
