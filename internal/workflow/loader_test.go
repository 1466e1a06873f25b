package workflow

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeWorkflow(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	loomDir := filepath.Join(dir, ".loom")
	if err := os.MkdirAll(loomDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(loomDir, "workflow.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoad_FileNotExists(t *testing.T) {
	tbl, err := Load("/nonexistent/path")
	if err != nil {
		t.Fatalf("expected nil error for missing file, got: %v", err)
	}
	if tbl != nil {
		t.Error("expected nil table for missing file")
	}
}

func TestLoad_ValidFile(t *testing.T) {
	dir := writeWorkflow(t, `
initial: open
states: [open, in progress, closed]
transitions:
  open: [in-progress]
  in progress: [closed, open]
`)

	tbl, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl == nil {
		t.Fatal("expected non-nil table")
	}
	if tbl.Initial != "OPEN" {
		t.Errorf("initial: got %q, want OPEN", tbl.Initial)
	}
	if !slices.Equal(tbl.States, []State{"OPEN", "IN_PROGRESS", "CLOSED"}) {
		t.Errorf("states: got %v", tbl.States)
	}
	if !slices.Equal(tbl.Available("IN_PROGRESS"), []State{"CLOSED", "OPEN"}) {
		t.Errorf("IN_PROGRESS transitions: got %v", tbl.Available("IN_PROGRESS"))
	}
	if errs := Validate(tbl); len(errs) != 0 {
		t.Errorf("loaded table should be valid, got %v", errs)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := writeWorkflow(t, "{{invalid yaml")

	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoadAndMerge_NoFile(t *testing.T) {
	tbl, err := LoadAndMerge(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tbl.States) != len(DefaultTable().States) {
		t.Errorf("expected default states, got %v", tbl.States)
	}
}

func TestLoadAndMerge_PartialFile(t *testing.T) {
	dir := writeWorkflow(t, `
transitions:
  DONE: [READY, FOUND]
`)

	tbl, err := LoadAndMerge(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(tbl.Available(Done), []State{Ready, Found}) {
		t.Errorf("DONE transitions: got %v", tbl.Available(Done))
	}
	if tbl.Initial != Created {
		t.Errorf("initial: got %q, want CREATED", tbl.Initial)
	}
}
