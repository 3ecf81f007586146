package workflow

import (
	"testing"

	"fulfillment-backend/internal/models"
)

func TestSelectionActivationTracksCardinality(t *testing.T) {
	s := NewSelectionSet("receiving")
	if s.Active() {
		t.Fatal("empty selection should be inactive")
	}

	if active := s.Toggle("u1"); !active {
		t.Error("post-toggle size 1 should activate")
	}
	if active := s.Toggle("u1"); active {
		t.Error("post-toggle size 0 should deactivate")
	}

	s.Toggle("u1")
	s.Toggle("u2")
	s.Toggle("u1")
	if !s.Active() || s.Size() != 1 {
		t.Errorf("expected active with 1 member, got active=%v size=%d", s.Active(), s.Size())
	}
	s.Toggle("u2")
	if s.Active() {
		t.Error("selection emptied by toggles should be inactive")
	}
}

func TestSelectionOrderIsStable(t *testing.T) {
	s := NewSelectionSet("packing")
	s.Toggle("u3")
	s.Toggle("u1")
	s.Toggle("u2")

	ids := s.IDs()
	want := []string{"u3", "u1", "u2"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("IDs() = %v, want %v", ids, want)
		}
	}
}

func TestSelectAllSkipsGroupedUnits(t *testing.T) {
	box := "BX-100"
	visible := []*models.Unit{
		{ID: "u1"},
		{ID: "u2", BoxNumber: &box},
		{ID: "u3"},
	}

	s := NewSelectionSet("packing")
	s.SelectAll(visible)

	if s.Size() != 2 {
		t.Fatalf("Size() = %d, want 2 (boxed unit is not eligible)", s.Size())
	}
	if s.Contains("u2") {
		t.Error("unit already grouped for this stage must not be selected")
	}
}

func TestSelectAllOnReceivingHasNoGroupingFilter(t *testing.T) {
	tray := "TR-1"
	visible := []*models.Unit{
		{ID: "u1", TrayNumber: &tray},
		{ID: "u2"},
	}

	// Receiving has no container kind; earlier-stage refs never exclude.
	s := NewSelectionSet("receiving")
	s.SelectAll(visible)
	if s.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", s.Size())
	}
}

func TestDeselectAll(t *testing.T) {
	s := NewSelectionSet("sorting")
	s.Toggle("u1")
	s.Toggle("u2")
	s.DeselectAll()
	if s.Active() || s.Size() != 0 || len(s.IDs()) != 0 {
		t.Error("DeselectAll should empty the set")
	}
}

func TestSwitchingStageClearsSelection(t *testing.T) {
	s := NewSelectionSet("receiving")
	s.Toggle("u1")

	s.SetStage("sorting")
	if s.Active() {
		t.Error("selection is stage-scoped; switching stage must clear it")
	}

	s.Toggle("u2")
	s.SetStage("sorting") // same stage, no-op
	if !s.Contains("u2") {
		t.Error("re-setting the same stage must not clear the selection")
	}
}
