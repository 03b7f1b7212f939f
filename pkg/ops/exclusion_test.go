package ops

import (
	"errors"
	"testing"

	"trialflow/pkg/engine"
	"trialflow/pkg/model"
)

// excludeFixture builds start -> child with a parent count of 100 and
// returns the graph plus the connecting interval id.
func excludeFixture(t *testing.T) (*model.Graph, string) {
	t.Helper()
	g, err := NewGraph()
	if err != nil {
		t.Fatalf("NewGraph error: %v", err)
	}
	g, err = UpdateNodeCount(g, g.StartID, intp(100), model.DefaultSettings())
	if err != nil {
		t.Fatalf("UpdateNodeCount error: %v", err)
	}
	g, child := mustAdd(t, g, g.StartID)
	iv := g.IntervalBetween(g.StartID, child)
	if iv == nil {
		t.Fatalf("expected interval between start and child")
	}
	return g, iv.ID
}

func TestUpdateExclusionLabel(t *testing.T) {
	g, ivID := excludeFixture(t)

	out, err := UpdateExclusionLabel(g, ivID, "Poissuljettu")
	if err != nil {
		t.Fatalf("UpdateExclusionLabel error: %v", err)
	}

	if got := out.Intervals[ivID].Exclusion.Label; got != "Poissuljettu" {
		t.Errorf("expected relabeled box, got %q", got)
	}
	if got := g.Intervals[ivID].Exclusion.Label; got != model.DefaultExclusionLabel {
		t.Errorf("expected input graph untouched, got %q", got)
	}
}

func TestUpdateExclusionLabel_UnknownInterval(t *testing.T) {
	g, _ := excludeFixture(t)

	_, err := UpdateExclusionLabel(g, "iv-missing", "x")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateExclusionCount_FeedsInference(t *testing.T) {
	g, ivID := excludeFixture(t)

	out, err := UpdateExclusionCount(g, ivID, intp(30))
	if err != nil {
		t.Fatalf("UpdateExclusionCount error: %v", err)
	}
	out = engine.Recompute(out, model.DefaultSettings())

	iv := out.Intervals[ivID]
	if child := out.Nodes[iv.ChildID]; child.N == nil || *child.N != 70 {
		t.Errorf("expected child inferred as 70, got %v", child.N)
	}
}

func TestUpdateExclusionCountFree(t *testing.T) {
	g, ivID := excludeFixture(t)

	out, err := UpdateExclusionCountFree(g, ivID, "(n = 30)")
	if err != nil {
		t.Fatalf("UpdateExclusionCountFree error: %v", err)
	}

	box := out.Intervals[ivID].Exclusion
	if box.TotalOverride != "(n = 30)" {
		t.Errorf("expected override stored, got %q", box.TotalOverride)
	}
	if box.Total == nil || *box.Total != 30 {
		t.Errorf("expected total parsed as 30, got %v", box.Total)
	}
}

func TestAddExclusionReason(t *testing.T) {
	g, ivID := excludeFixture(t)

	out, err := AddExclusionReason(g, ivID)
	if err != nil {
		t.Fatalf("AddExclusionReason error: %v", err)
	}

	reasons := out.Intervals[ivID].Exclusion.Reasons
	if len(reasons) != 1 {
		t.Fatalf("expected 1 reason, got %d", len(reasons))
	}
	r := reasons[0]
	if r.Label != "Reason" || r.Kind != model.ReasonUser || r.N != nil {
		t.Errorf("unexpected new reason: %+v", r)
	}
	if len(g.Intervals[ivID].Exclusion.Reasons) != 0 {
		t.Errorf("expected input graph untouched")
	}
}

func TestUpdateExclusionReason_UserFields(t *testing.T) {
	g, ivID := excludeFixture(t)
	g, err := AddExclusionReason(g, ivID)
	if err != nil {
		t.Fatalf("AddExclusionReason error: %v", err)
	}
	rID := g.Intervals[ivID].Exclusion.Reasons[0].ID

	g, err = UpdateExclusionReasonLabel(g, ivID, rID, "Declined to participate")
	if err != nil {
		t.Fatalf("UpdateExclusionReasonLabel error: %v", err)
	}
	g, err = UpdateExclusionReasonCount(g, ivID, rID, intp(12))
	if err != nil {
		t.Fatalf("UpdateExclusionReasonCount error: %v", err)
	}

	r := g.Intervals[ivID].Exclusion.Reasons[0]
	if r.Label != "Declined to participate" {
		t.Errorf("expected relabeled reason, got %q", r.Label)
	}
	if r.N == nil || *r.N != 12 {
		t.Errorf("expected count 12, got %v", r.N)
	}
}

func TestUpdateExclusionReason_UnknownReason(t *testing.T) {
	g, ivID := excludeFixture(t)

	_, err := UpdateExclusionReasonCount(g, ivID, "r-missing", intp(1))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// autoFixture produces an interval whose exclusion box carries a derived
// remainder reason: total 30 with a single user reason of 20 leaves 10.
func autoFixture(t *testing.T) (*model.Graph, string, string) {
	t.Helper()
	g, ivID := excludeFixture(t)
	g, err := UpdateExclusionCount(g, ivID, intp(30))
	if err != nil {
		t.Fatalf("UpdateExclusionCount error: %v", err)
	}
	g, err = AddExclusionReason(g, ivID)
	if err != nil {
		t.Fatalf("AddExclusionReason error: %v", err)
	}
	rID := g.Intervals[ivID].Exclusion.Reasons[0].ID
	g, err = UpdateExclusionReasonCount(g, ivID, rID, intp(20))
	if err != nil {
		t.Fatalf("UpdateExclusionReasonCount error: %v", err)
	}
	g = engine.Recompute(g, model.DefaultSettings())

	box := g.Intervals[ivID].Exclusion
	auto := box.AutoReason()
	if auto == nil || auto.N == nil || *auto.N != 10 {
		t.Fatalf("expected derived remainder of 10, got %+v", auto)
	}
	return g, ivID, auto.ID
}

func TestAutoReason_EditsSilentlyIgnored(t *testing.T) {
	g, ivID, autoID := autoFixture(t)

	out, err := UpdateExclusionReasonLabel(g, ivID, autoID, "hand edited")
	if err != nil {
		t.Fatalf("UpdateExclusionReasonLabel error: %v", err)
	}
	if out != g {
		t.Errorf("expected the same graph back for a derived-reason label edit")
	}

	out, err = UpdateExclusionReasonCount(g, ivID, autoID, intp(99))
	if err != nil {
		t.Fatalf("UpdateExclusionReasonCount error: %v", err)
	}
	if out != g {
		t.Errorf("expected the same graph back for a derived-reason count edit")
	}

	out, err = RemoveExclusionReason(g, ivID, autoID)
	if err != nil {
		t.Fatalf("RemoveExclusionReason error: %v", err)
	}
	if out != g {
		t.Errorf("expected the same graph back for a derived-reason removal")
	}
}

func TestAutoReason_FreeOverrideAllowed(t *testing.T) {
	g, ivID, autoID := autoFixture(t)

	out, err := UpdateExclusionReasonCountFree(g, ivID, autoID, "~10")
	if err != nil {
		t.Fatalf("UpdateExclusionReasonCountFree error: %v", err)
	}

	auto := out.Intervals[ivID].Exclusion.AutoReason()
	if auto.CountOverride != "~10" {
		t.Errorf("expected override stored on derived reason, got %q", auto.CountOverride)
	}
	if auto.N == nil || *auto.N != 10 {
		t.Errorf("expected derived value left alone, got %v", auto.N)
	}
}

func TestRemoveExclusionReason_User(t *testing.T) {
	g, ivID := excludeFixture(t)
	g, _ = AddExclusionReason(g, ivID)
	g, _ = AddExclusionReason(g, ivID)
	reasons := g.Intervals[ivID].Exclusion.Reasons
	first := reasons[0].ID

	out, err := RemoveExclusionReason(g, ivID, first)
	if err != nil {
		t.Fatalf("RemoveExclusionReason error: %v", err)
	}

	kept := out.Intervals[ivID].Exclusion.Reasons
	if len(kept) != 1 || kept[0].ID == first {
		t.Errorf("expected only the second reason left, got %+v", kept)
	}
}

func TestRemoveExclusionReason_Unknown(t *testing.T) {
	g, ivID := excludeFixture(t)

	_, err := RemoveExclusionReason(g, ivID, "r-missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
