package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestSelectColumn_EmptySchema(t *testing.T) {
	result, err := SelectColumn("input.csv", nil)
	if err != nil {
		t.Fatalf("SelectColumn failed: %v", err)
	}
	if result.Action != ActionStopped {
		t.Errorf("Action = %v, want ActionStopped", result.Action)
	}
}

func TestSelectColumn_SelectsHighlightedColumn(t *testing.T) {
	orig := runProgram
	runProgram = func(m tea.Model) (tea.Model, error) {
		// Simulate the user moving down once and confirming
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		updated, _ = updated.Update(tea.KeyMsg{Type: tea.KeyEnter})
		return updated, nil
	}
	t.Cleanup(func() { runProgram = orig })

	result, err := SelectColumn("input.csv", []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("SelectColumn failed: %v", err)
	}
	if result.Action != ActionSelected {
		t.Fatalf("Action = %v, want ActionSelected", result.Action)
	}
	if result.Column != "b" {
		t.Errorf("Column = %q, want %q", result.Column, "b")
	}
}

func TestSelectColumn_Cancel(t *testing.T) {
	orig := runProgram
	runProgram = func(m tea.Model) (tea.Model, error) {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		return updated, nil
	}
	t.Cleanup(func() { runProgram = orig })

	result, err := SelectColumn("input.csv", []string{"a"})
	if err != nil {
		t.Fatalf("SelectColumn failed: %v", err)
	}
	if result.Action != ActionStopped {
		t.Errorf("Action = %v, want ActionStopped", result.Action)
	}
}
