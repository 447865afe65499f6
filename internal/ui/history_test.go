package ui

import (
	"testing"

	"github.com/variantly/configstudio/internal/model"
)

func optionsNamed(names ...string) []model.Option {
	var opts []model.Option
	for _, n := range names {
		opts = append(opts, model.NewOption(n, model.ManipulationVisibility))
	}
	return opts
}

func TestNewHistory(t *testing.T) {
	h := NewHistory()
	if h.maxDepth != defaultMaxDepth {
		t.Errorf("expected maxDepth %d, got %d", defaultMaxDepth, h.maxDepth)
	}
	if h.CanUndo() {
		t.Error("new history should not be undoable")
	}
	if h.CanRedo() {
		t.Error("new history should not be redoable")
	}
}

func TestPushAndUndo(t *testing.T) {
	h := NewHistory()

	// Push initial state (before adding an option)
	snap0 := MakeSnapshot(nil, nil, "initial")
	h.Push(snap0)

	if !h.CanUndo() {
		t.Fatal("should be able to undo after push")
	}

	// Current state has one option
	current := MakeSnapshot(optionsNamed("Color"), nil, "current")

	restored, ok := h.Undo(current)
	if !ok {
		t.Fatal("undo should succeed")
	}
	if len(restored.Options) != 0 {
		t.Errorf("expected 0 options after undo, got %d", len(restored.Options))
	}
	if restored.Label != "initial" {
		t.Errorf("expected label 'initial', got %q", restored.Label)
	}
}

func TestUndoRedo(t *testing.T) {
	h := NewHistory()

	h.Push(MakeSnapshot(nil, nil, "empty"))
	h.Push(MakeSnapshot(optionsNamed("Color"), nil, "one option"))

	current := MakeSnapshot(optionsNamed("Color", "Trim"), nil, "two options")

	// Undo to one option
	restored, ok := h.Undo(current)
	if !ok {
		t.Fatal("first undo should succeed")
	}
	if len(restored.Options) != 1 {
		t.Errorf("expected 1 option, got %d", len(restored.Options))
	}

	// Redo back to two options
	if !h.CanRedo() {
		t.Fatal("should be able to redo")
	}
	redone, ok := h.Redo(restored)
	if !ok {
		t.Fatal("redo should succeed")
	}
	if len(redone.Options) != 2 {
		t.Errorf("expected 2 options after redo, got %d", len(redone.Options))
	}
}

func TestPushClearsRedo(t *testing.T) {
	h := NewHistory()

	h.Push(MakeSnapshot(nil, nil, "empty"))

	current := MakeSnapshot(optionsNamed("Color"), nil, "one option")

	// Undo
	_, ok := h.Undo(current)
	if !ok {
		t.Fatal("undo should succeed")
	}
	if !h.CanRedo() {
		t.Fatal("should be able to redo after undo")
	}

	// Push new state - should clear redo
	h.Push(MakeSnapshot(nil, nil, "new action"))
	if h.CanRedo() {
		t.Error("redo stack should be cleared after push")
	}
}

func TestMaxDepth(t *testing.T) {
	h := &History{maxDepth: 3}

	for i := 0; i < 5; i++ {
		h.Push(MakeSnapshot(nil, nil, ""))
	}

	if len(h.undoStack) != 3 {
		t.Errorf("expected undo stack length 3, got %d", len(h.undoStack))
	}
}

func TestUndoEmpty(t *testing.T) {
	h := NewHistory()
	current := MakeSnapshot(nil, nil, "current")
	_, ok := h.Undo(current)
	if ok {
		t.Error("undo on empty history should return false")
	}
}

func TestRedoEmpty(t *testing.T) {
	h := NewHistory()
	current := MakeSnapshot(nil, nil, "current")
	_, ok := h.Redo(current)
	if ok {
		t.Error("redo on empty history should return false")
	}
}

func TestClear(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(nil, nil, "a"))
	h.Push(MakeSnapshot(nil, nil, "b"))

	// Create a redo entry
	current := MakeSnapshot(nil, nil, "current")
	h.Undo(current)

	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("after clear, should not be able to undo or redo")
	}
}

func TestDeepCopyOptions(t *testing.T) {
	original := optionsNamed("Color")
	original[0].Values = []model.OptionValue{model.NewOptionValue("Red")}
	snap := MakeSnapshot(original, nil, "test")

	// Mutate original, including a nested value
	original[0].Name = "Modified"
	original[0].Values[0].Name = "Crimson"

	if snap.Options[0].Name != "Color" {
		t.Error("snapshot should be independent of original slice")
	}
	if snap.Options[0].Values[0].Name != "Red" {
		t.Error("snapshot values should be independent of original")
	}
}

func TestDeepCopySelections(t *testing.T) {
	original := model.SelectionState{"opt-1": "val-1"}
	snap := MakeSnapshot(nil, original, "test")

	original["opt-1"] = "val-2"

	if snap.Selections["opt-1"] != "val-1" {
		t.Error("snapshot selections should be independent of original")
	}
}

func TestCopyNilSlices(t *testing.T) {
	snap := MakeSnapshot(nil, nil, "nil test")
	if snap.Options != nil {
		t.Error("nil options should stay nil")
	}
	if len(snap.Selections) != 0 {
		t.Error("nil selections should stay empty")
	}
}

func TestMultipleUndoRedo(t *testing.T) {
	h := NewHistory()

	// Build up 3 states: empty -> 1 option -> 2 options -> 3 options
	h.Push(MakeSnapshot(nil, nil, "empty"))
	h.Push(MakeSnapshot(optionsNamed("Color"), nil, "1 option"))
	h.Push(MakeSnapshot(optionsNamed("Color", "Trim"), nil, "2 options"))

	current := MakeSnapshot(optionsNamed("Color", "Trim", "Base"), nil, "3 options")

	// Undo 3 times to get back to empty
	s, ok := h.Undo(current)
	if !ok || len(s.Options) != 2 {
		t.Fatalf("first undo: expected 2 options, got %d", len(s.Options))
	}

	s, ok = h.Undo(s)
	if !ok || len(s.Options) != 1 {
		t.Fatalf("second undo: expected 1 option, got %d", len(s.Options))
	}

	s, ok = h.Undo(s)
	if !ok || len(s.Options) != 0 {
		t.Fatalf("third undo: expected 0 options, got %d", len(s.Options))
	}

	// No more undos
	if h.CanUndo() {
		t.Error("should not be able to undo further")
	}

	// Redo all the way forward
	s, ok = h.Redo(s)
	if !ok || len(s.Options) != 1 {
		t.Fatalf("first redo: expected 1 option, got %d", len(s.Options))
	}

	s, ok = h.Redo(s)
	if !ok || len(s.Options) != 2 {
		t.Fatalf("second redo: expected 2 options, got %d", len(s.Options))
	}

	s, ok = h.Redo(s)
	if !ok || len(s.Options) != 3 {
		t.Fatalf("third redo: expected 3 options, got %d", len(s.Options))
	}

	if h.CanRedo() {
		t.Error("should not be able to redo further")
	}
}
