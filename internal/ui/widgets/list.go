package widgets

import (
	"fmt"
	"slices"

	"github.com/zhubert/loom/internal/errors"
	"github.com/zhubert/loom/internal/keys"
	"github.com/zhubert/loom/internal/ui"
)

// SelectionListener is notified after the selected index of a list changes.
// index is -1 and item the zero value when the selection is cleared.
type SelectionListener[T any] interface {
	SelectionChanged(l *List[T], index int, item T)
}

// SelectionFunc adapts a function to SelectionListener.
type SelectionFunc[T any] func(l *List[T], index int, item T)

func (f SelectionFunc[T]) SelectionChanged(l *List[T], index int, item T) { f(l, index, item) }

// ItemActivatedListener is notified when Enter is pressed on a selection.
type ItemActivatedListener[T any] interface {
	ItemActivated(l *List[T], index int, item T)
}

// ActivateFunc adapts a function to ItemActivatedListener.
type ActivateFunc[T any] func(l *List[T], index int, item T)

func (f ActivateFunc[T]) ItemActivated(l *List[T], index int, item T) { f(l, index, item) }

// List is a scrolling, single-selection list. Only VisibleItems rows are
// shown; TopIndex is the first of them. Whenever an item is selected it lies
// inside the visible window.
type List[T any] struct {
	ui.Base
	items     []T
	selected  int
	top       int
	header    string
	format    func(T) string
	selection []SelectionListener[T]
	activated []ItemActivatedListener[T]
}

// NewList creates an empty list showing visibleItems rows inside a border.
func NewList[T any](id string, visibleItems int) *List[T] {
	l := &List[T]{}
	l.init(ui.KindList, id, visibleItems)
	return l
}

func (l *List[T]) init(kind ui.Kind, id string, visibleItems int) {
	l.Base = ui.NewBase(kind, id)
	l.selected = -1
	l.SetVisibleItems(visibleItems)
}

// Items returns a copy of the items
func (l *List[T]) Items() []T {
	return slices.Clone(l.items)
}

// Len returns the number of items
func (l *List[T]) Len() int {
	return len(l.items)
}

// Item returns the item at index i.
func (l *List[T]) Item(i int) (T, error) {
	if i < 0 || i >= len(l.items) {
		var zero T
		return zero, errors.OutOfRange(errors.Op("widgets.List.Item"), i, len(l.items))
	}
	return l.items[i], nil
}

// SetItems replaces the items. The selection is clamped to the new length.
// Listeners fire only when the selected index moved or the selected item
// now formats differently.
func (l *List[T]) SetItems(items []T) {
	prev := l.selected
	var prevText string
	if item, ok := l.SelectedItem(); ok {
		prevText = l.Format(item)
	}

	l.items = slices.Clone(items)
	if l.selected >= len(l.items) {
		l.selected = len(l.items) - 1
	}
	l.ensureVisible()

	if l.selected != prev {
		l.notifySelection()
		return
	}
	if item, ok := l.SelectedItem(); ok && l.Format(item) != prevText {
		l.notifySelection()
	}
}

// AddItem appends an item without changing the selection.
func (l *List[T]) AddItem(item T) {
	l.items = append(l.items, item)
}

// RemoveAt removes the item at index i. Removing the selected item clears
// the selection.
func (l *List[T]) RemoveAt(i int) error {
	if i < 0 || i >= len(l.items) {
		return errors.OutOfRange(errors.Op("widgets.List.RemoveAt"), i, len(l.items))
	}
	l.items = slices.Delete(l.items, i, i+1)
	switch {
	case i == l.selected:
		l.selected = -1
		l.ensureVisible()
		l.notifySelection()
	case i < l.selected:
		l.selected--
		l.ensureVisible()
	default:
		l.ensureVisible()
	}
	return nil
}

// SelectedIndex returns the selection, or -1
func (l *List[T]) SelectedIndex() int {
	return l.selected
}

// SelectedItem returns the selected item and whether there is one.
func (l *List[T]) SelectedItem() (T, bool) {
	if l.selected < 0 || l.selected >= len(l.items) {
		var zero T
		return zero, false
	}
	return l.items[l.selected], true
}

// SetSelectedIndex selects item i, or clears the selection for -1.
func (l *List[T]) SetSelectedIndex(i int) error {
	if i < -1 || i >= len(l.items) {
		return errors.OutOfRange(errors.Op("widgets.List.SetSelectedIndex"), i, len(l.items))
	}
	l.selectIndex(i)
	return nil
}

func (l *List[T]) selectIndex(i int) {
	if i == l.selected {
		return
	}
	l.selected = i
	l.ensureVisible()
	l.notifySelection()
}

// TopIndex returns the first visible row
func (l *List[T]) TopIndex() int {
	return l.top
}

// SetTopIndex scrolls the window to start at row i. Zero is always
// accepted. A selection left outside the window moves to its nearest edge.
func (l *List[T]) SetTopIndex(i int) error {
	if i < 0 || (i > 0 && i >= len(l.items)) {
		return errors.OutOfRange(errors.Op("widgets.List.SetTopIndex"), i, len(l.items))
	}
	l.top = i
	if l.selected < 0 {
		return nil
	}
	switch vis := l.VisibleItems(); {
	case l.selected < l.top:
		l.selectIndex(l.top)
	case l.selected >= l.top+vis:
		l.selectIndex(min(len(l.items)-1, l.top+vis-1))
	}
	return nil
}

// VisibleItems is the number of rows inside the border.
func (l *List[T]) VisibleItems() int {
	return max(1, l.Size().Height-2)
}

// SetVisibleItems resizes the list to show n rows.
func (l *List[T]) SetVisibleItems(n int) {
	w := l.Size().Width
	if w == 0 {
		w = 20
	}
	l.SetSize(ui.Dim(w, max(1, n)+2))
}

// SetSize resizes the list and keeps the selection visible.
func (l *List[T]) SetSize(d ui.Dimension) {
	l.Base.SetSize(d)
	l.ensureVisible()
}

// ensureVisible scrolls so the selection is inside the window and the
// window does not start past the last item.
func (l *List[T]) ensureVisible() {
	vis := l.VisibleItems()
	if l.selected >= 0 {
		if l.selected < l.top {
			l.top = l.selected
		} else if l.selected >= l.top+vis {
			l.top = l.selected - vis + 1
		}
	}
	l.top = max(0, min(l.top, len(l.items)-1))
}

// Header returns the title drawn on the top border
func (l *List[T]) Header() string {
	return l.header
}

// SetHeader sets the title drawn on the top border
func (l *List[T]) SetHeader(h string) {
	l.header = h
}

// SetFormatter sets how items are displayed. nil restores fmt.Sprint.
func (l *List[T]) SetFormatter(f func(T) string) {
	l.format = f
}

// Format returns the display string for item.
func (l *List[T]) Format(item T) string {
	if l.format == nil {
		return fmt.Sprint(item)
	}
	return l.format(item)
}

// VisibleRows returns the items in the window with their indices.
func (l *List[T]) VisibleRows() (first int, rows []T) {
	end := min(len(l.items), l.top+l.VisibleItems())
	if l.top >= end {
		return l.top, nil
	}
	return l.top, l.items[l.top:end]
}

// AddSelectionListener registers s. Listeners fire in registration order.
func (l *List[T]) AddSelectionListener(s SelectionListener[T]) {
	l.selection = append(l.selection, s)
}

// AddItemActivatedListener registers a. Listeners fire in registration order.
func (l *List[T]) AddItemActivatedListener(a ItemActivatedListener[T]) {
	l.activated = append(l.activated, a)
}

func (l *List[T]) notifySelection() {
	item, _ := l.SelectedItem()
	for _, s := range l.selection {
		s.SelectionChanged(l, l.selected, item)
	}
}

func (l *List[T]) Focusable() bool { return true }

// HandleKey moves the selection. Down with nothing selected selects the
// first item.
func (l *List[T]) HandleKey(ev keys.Event) bool {
	if !l.Receiving() || len(l.items) == 0 {
		return false
	}

	last := len(l.items) - 1
	page := l.VisibleItems()
	switch {
	case ev.Is(keys.CodeUp):
		if l.selected > 0 {
			l.selectIndex(l.selected - 1)
		}
	case ev.Is(keys.CodeDown):
		if l.selected < last {
			l.selectIndex(l.selected + 1)
		}
	case ev.Is(keys.CodePgUp):
		if l.selected > 0 {
			l.selectIndex(max(0, l.selected-page))
		}
	case ev.Is(keys.CodePgDown):
		if l.selected < last {
			l.selectIndex(min(last, l.selected+page))
		}
	case ev.Is(keys.CodeHome):
		l.selectIndex(0)
	case ev.Is(keys.CodeEnd):
		l.selectIndex(last)
	case ev.Is(keys.CodeEnter):
		item, ok := l.SelectedItem()
		if !ok {
			return false
		}
		for _, a := range l.activated {
			a.ItemActivated(l, l.selected, item)
		}
	default:
		return false
	}
	return true
}

// DisplayRows returns the formatted rows in the window and the index of the
// first one.
func (l *List[T]) DisplayRows() (first int, rows []string) {
	first, items := l.VisibleRows()
	rows = make([]string, len(items))
	for i, item := range items {
		rows[i] = l.Format(item)
	}
	return first, rows
}
