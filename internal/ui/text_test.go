package ui

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		w    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 6, "hello…"},
		{"hello", 0, ""},
		{"日本語テキスト", 5, "日本…"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.w); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.w, got, tt.want)
		}
	}
}

func TestAlign(t *testing.T) {
	tests := []struct {
		a    Alignment
		want string
	}{
		{AlignStart, "ab    "},
		{AlignCenter, "  ab  "},
		{AlignEnd, "    ab"},
	}
	for _, tt := range tests {
		if got := Align("ab", 6, tt.a); got != tt.want {
			t.Errorf("Align(%d) = %q, want %q", tt.a, got, tt.want)
		}
	}
}

func TestFit(t *testing.T) {
	if got := Fit("abc", 5); got != "abc  " {
		t.Errorf("Fit pad = %q", got)
	}
	if got := Fit("abcdef", 4); got != "abc…" {
		t.Errorf("Fit truncate = %q", got)
	}
}
