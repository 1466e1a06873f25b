package widgets

import (
	"strings"

	"github.com/zhubert/loom/internal/ui"
)

// CommandSelectedListener is notified when a history entry is activated.
type CommandSelectedListener interface {
	CommandSelected(cmd string)
}

// CommandSelectedFunc adapts a function to CommandSelectedListener.
type CommandSelectedFunc func(cmd string)

func (f CommandSelectedFunc) CommandSelected(cmd string) { f(cmd) }

// CommandHistory is a list of previously run commands, most recent last.
type CommandHistory struct {
	List[string]
	limit     int
	listeners []CommandSelectedListener
}

// NewCommandHistory creates a history keeping at most limit commands.
func NewCommandHistory(id string, visibleItems, limit int) *CommandHistory {
	h := &CommandHistory{limit: limit}
	if h.limit <= 0 {
		h.limit = ui.DefaultHistoryLimit
	}
	h.init(ui.KindHistory, id, visibleItems)
	h.SetHeader("History")
	h.AddItemActivatedListener(ActivateFunc[string](func(_ *List[string], _ int, cmd string) {
		for _, l := range h.listeners {
			l.CommandSelected(cmd)
		}
	}))
	return h
}

// Limit returns the maximum number of commands kept
func (h *CommandHistory) Limit() int {
	return h.limit
}

// AddCommand appends cmd, dropping the oldest entries beyond the limit.
// Blank commands are ignored.
func (h *CommandHistory) AddCommand(cmd string) {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return
	}

	if len(h.items)+1 > h.limit {
		items := append(h.Items(), cmd)
		h.SetItems(items[len(items)-h.limit:])
	} else {
		h.AddItem(cmd)
	}

	// Follow the newest entry unless the user is browsing.
	if h.selected < 0 {
		h.top = max(0, len(h.items)-h.VisibleItems())
	}
}

// Commands returns the commands, oldest first.
func (h *CommandHistory) Commands() []string {
	return h.Items()
}

// Clear removes every command.
func (h *CommandHistory) Clear() {
	h.SetItems(nil)
}

// AddCommandSelectedListener registers l. Listeners fire in registration order.
func (h *CommandHistory) AddCommandSelectedListener(l CommandSelectedListener) {
	h.listeners = append(h.listeners, l)
}
