package workflow

import (
	"slices"
	"testing"
)

func TestParseState(t *testing.T) {
	tests := []struct {
		in   string
		want State
	}{
		{"IN_PROGRESS", InProgress},
		{"in progress", InProgress},
		{"in-progress", InProgress},
		{"  done ", Done},
		{"to_do", ToDo},
	}
	for _, tt := range tests {
		if got := ParseState(tt.in); got != tt.want {
			t.Errorf("ParseState(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestState_Label(t *testing.T) {
	if got := InProgress.Label(); got != "IN PROGRESS" {
		t.Errorf("Label() = %q", got)
	}
}

func TestTable_Available(t *testing.T) {
	tbl := DefaultTable()

	tests := []struct {
		from State
		want []State
	}{
		{Created, []State{Ready}},
		{Ready, []State{InProgress, Blocked}},
		{InProgress, []State{Review, InTest, Blocked}},
		{"UNKNOWN", nil},
	}
	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			got := tbl.Available(tt.from)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Available(%s) = %v, want %v", tt.from, got, tt.want)
			}
		})
	}
}

func TestTable_AvailableIsCopy(t *testing.T) {
	tbl := DefaultTable()
	got := tbl.Available(Ready)
	got[0] = Done
	if tbl.Available(Ready)[0] != InProgress {
		t.Error("mutating Available() result should not change the table")
	}
}

func TestTable_CanTransition(t *testing.T) {
	tbl := DefaultTable()
	if !tbl.CanTransition(Found, Triaged) {
		t.Error("FOUND -> TRIAGED should be allowed")
	}
	if tbl.CanTransition(Found, Done) {
		t.Error("FOUND -> DONE should not be allowed")
	}
	if !tbl.Has(InTest) || tbl.Has("NOPE") {
		t.Error("Has() mismatch")
	}
	if tbl.Index(Ready) != 1 || tbl.Index("NOPE") != -1 {
		t.Error("Index() mismatch")
	}
}
