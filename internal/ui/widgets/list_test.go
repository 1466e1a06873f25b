package widgets

import (
	"fmt"
	"testing"

	"github.com/zhubert/loom/internal/errors"
	"github.com/zhubert/loom/internal/keys"
	"github.com/zhubert/loom/internal/ui/uitest"
)

func numbered(n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf("item %d", i)
	}
	return items
}

func focusedList(n, visible int) *List[string] {
	l := NewList[string]("list", visible)
	l.SetItems(numbered(n))
	l.SetFocused(true)
	return l
}

func TestList_ScrollsWithSelection(t *testing.T) {
	l := focusedList(20, 5)

	down := make([]keys.Event, 19)
	for i := range down {
		down[i] = keys.Of(keys.CodeDown)
	}
	if n := uitest.Press(l, down...); n != 19 {
		t.Fatalf("handled %d keys, want 19", n)
	}

	if l.SelectedIndex() != 18 {
		t.Errorf("SelectedIndex() = %d, want 18", l.SelectedIndex())
	}
	if l.TopIndex() != 14 {
		t.Errorf("TopIndex() = %d, want 14", l.TopIndex())
	}
}

func TestList_Navigation(t *testing.T) {
	tests := []struct {
		name    string
		start   int
		key     keys.Event
		want    int
		wantTop int
		handled bool
	}{
		{"down from nothing selects first", -1, keys.Of(keys.CodeDown), 0, 0, true},
		{"up at top stays", 0, keys.Of(keys.CodeUp), 0, 0, true},
		{"down at bottom stays", 19, keys.Of(keys.CodeDown), 19, 15, true},
		{"page down", 2, keys.Of(keys.CodePgDown), 7, 3, true},
		{"page down clamps", 17, keys.Of(keys.CodePgDown), 19, 15, true},
		{"page up clamps", 3, keys.Of(keys.CodePgUp), 0, 0, true},
		{"home", 12, keys.Of(keys.CodeHome), 0, 0, true},
		{"end", 0, keys.Of(keys.CodeEnd), 19, 15, true},
		{"tab is not handled", 4, keys.Of(keys.CodeTab), 4, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := focusedList(20, 5)
			if err := l.SetSelectedIndex(tt.start); err != nil {
				t.Fatalf("SetSelectedIndex(%d): %v", tt.start, err)
			}

			if got := l.HandleKey(tt.key); got != tt.handled {
				t.Errorf("HandleKey() = %v, want %v", got, tt.handled)
			}
			if l.SelectedIndex() != tt.want {
				t.Errorf("SelectedIndex() = %d, want %d", l.SelectedIndex(), tt.want)
			}
			if l.TopIndex() != tt.wantTop {
				t.Errorf("TopIndex() = %d, want %d", l.TopIndex(), tt.wantTop)
			}
		})
	}
}

func TestList_IgnoresKeysWithoutFocus(t *testing.T) {
	l := NewList[string]("list", 5)
	l.SetItems(numbered(3))

	if l.HandleKey(keys.Of(keys.CodeDown)) {
		t.Error("unfocused list handled a key")
	}

	l.SetActive(true)
	if !l.HandleKey(keys.Of(keys.CodeDown)) {
		t.Error("active list should handle keys")
	}

	empty := NewList[string]("empty", 5)
	empty.SetFocused(true)
	if empty.HandleKey(keys.Of(keys.CodeDown)) {
		t.Error("empty list handled a key")
	}
}

func TestList_SelectionInvariants(t *testing.T) {
	l := focusedList(10, 3)

	if err := l.SetSelectedIndex(10); !errors.Is(err, errors.KindOutOfRange) {
		t.Errorf("SetSelectedIndex(10) error = %v, want out of range", err)
	}
	if err := l.SetSelectedIndex(-2); err == nil {
		t.Error("SetSelectedIndex(-2) should fail")
	}

	if err := l.SetSelectedIndex(8); err != nil {
		t.Fatal(err)
	}
	if l.TopIndex() != 6 {
		t.Errorf("TopIndex() = %d, want 6", l.TopIndex())
	}

	// Shrinking the items clamps the selection.
	l.SetItems(numbered(4))
	if l.SelectedIndex() != 3 {
		t.Errorf("after shrink SelectedIndex() = %d, want 3", l.SelectedIndex())
	}
	if top := l.TopIndex(); l.SelectedIndex() < top || l.SelectedIndex() >= top+l.VisibleItems() {
		t.Errorf("selection %d outside window starting at %d", l.SelectedIndex(), top)
	}

	l.SetItems(nil)
	if l.SelectedIndex() != -1 {
		t.Errorf("after clear SelectedIndex() = %d, want -1", l.SelectedIndex())
	}
	if _, ok := l.SelectedItem(); ok {
		t.Error("SelectedItem() reported an item on an empty list")
	}
}

func TestList_SetTopIndex(t *testing.T) {
	l := focusedList(10, 3)
	if err := l.SetSelectedIndex(1); err != nil {
		t.Fatal(err)
	}

	if err := l.SetTopIndex(5); err != nil {
		t.Fatalf("SetTopIndex(5): %v", err)
	}
	if l.SelectedIndex() != 5 {
		t.Errorf("selection should follow the window, got %d", l.SelectedIndex())
	}

	if err := l.SetTopIndex(0); err != nil {
		t.Fatalf("SetTopIndex(0): %v", err)
	}
	if l.SelectedIndex() != 2 {
		t.Errorf("SelectedIndex() = %d, want 2", l.SelectedIndex())
	}

	for _, bad := range []int{-1, 10, 11} {
		if err := l.SetTopIndex(bad); !errors.Is(err, errors.KindOutOfRange) {
			t.Errorf("SetTopIndex(%d) error = %v, want out of range", bad, err)
		}
	}

	empty := NewList[int]("empty", 3)
	if err := empty.SetTopIndex(0); err != nil {
		t.Errorf("SetTopIndex(0) on empty list: %v", err)
	}
}

func TestList_RemoveAt(t *testing.T) {
	l := focusedList(5, 3)
	if err := l.SetSelectedIndex(3); err != nil {
		t.Fatal(err)
	}

	if err := l.RemoveAt(1); err != nil {
		t.Fatal(err)
	}
	if l.SelectedIndex() != 2 {
		t.Errorf("removing before the selection: SelectedIndex() = %d, want 2", l.SelectedIndex())
	}
	if item, _ := l.SelectedItem(); item != "item 3" {
		t.Errorf("SelectedItem() = %q, want %q", item, "item 3")
	}

	if err := l.RemoveAt(2); err != nil {
		t.Fatal(err)
	}
	if l.SelectedIndex() != -1 {
		t.Errorf("removing the selection: SelectedIndex() = %d, want -1", l.SelectedIndex())
	}

	if err := l.RemoveAt(9); !errors.Is(err, errors.KindOutOfRange) {
		t.Errorf("RemoveAt(9) error = %v, want out of range", err)
	}
}

func TestList_Listeners(t *testing.T) {
	l := focusedList(3, 3)

	var changes []int
	l.AddSelectionListener(SelectionFunc[string](func(_ *List[string], index int, _ string) {
		changes = append(changes, index)
	}))
	var activated []string
	l.AddItemActivatedListener(ActivateFunc[string](func(_ *List[string], _ int, item string) {
		activated = append(activated, item)
	}))

	if l.HandleKey(keys.Of(keys.CodeEnter)) {
		t.Error("Enter without a selection should not be handled")
	}

	uitest.Press(l, keys.Of(keys.CodeDown), keys.Of(keys.CodeDown), keys.Of(keys.CodeUp), keys.Of(keys.CodeUp))
	uitest.Press(l, keys.Of(keys.CodeEnter))

	wantChanges := []int{0, 1, 0}
	if fmt.Sprint(changes) != fmt.Sprint(wantChanges) {
		t.Errorf("selection changes = %v, want %v", changes, wantChanges)
	}
	if len(activated) != 1 || activated[0] != "item 0" {
		t.Errorf("activated = %v, want [item 0]", activated)
	}
}

func TestList_DisplayRows(t *testing.T) {
	type task struct {
		id    int
		title string
	}
	l := NewList[task]("tasks", 2)
	l.SetItems([]task{{1, "write"}, {2, "review"}, {3, "ship"}})
	l.SetFormatter(func(t task) string { return fmt.Sprintf("#%d %s", t.id, t.title) })
	if err := l.SetSelectedIndex(2); err != nil {
		t.Fatal(err)
	}

	first, rows := l.DisplayRows()
	if first != 1 {
		t.Errorf("first = %d, want 1", first)
	}
	want := []string{"#2 review", "#3 ship"}
	if fmt.Sprint(rows) != fmt.Sprint(want) {
		t.Errorf("rows = %q, want %q", rows, want)
	}
}

func TestList_SetItemsNotifiesOnChange(t *testing.T) {
	tests := []struct {
		name     string
		selected int
		items    []string
		want     []int
	}{
		{name: "same items", selected: 1, items: numbered(4), want: nil},
		{name: "more items", selected: 1, items: numbered(8), want: nil},
		{name: "selected item replaced", selected: 1, items: []string{"item 0", "other", "item 2"}, want: []int{1}},
		{name: "selection clamped", selected: 3, items: numbered(2), want: []int{1}},
		{name: "selection cleared", selected: 1, items: nil, want: []int{-1}},
		{name: "nothing selected", selected: -1, items: []string{"x"}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := focusedList(4, 4)
			if tt.selected >= 0 {
				if err := l.SetSelectedIndex(tt.selected); err != nil {
					t.Fatal(err)
				}
			}

			var changes []int
			l.AddSelectionListener(SelectionFunc[string](func(_ *List[string], index int, _ string) {
				changes = append(changes, index)
			}))

			l.SetItems(tt.items)
			if fmt.Sprint(changes) != fmt.Sprint(tt.want) {
				t.Errorf("selection changes = %v, want %v", changes, tt.want)
			}
		})
	}
}
