package ops

import (
	"errors"
	"testing"

	"trialflow/pkg/engine"
	"trialflow/pkg/model"
)

func intp(v int) *int { return &v }

func mustAdd(t *testing.T, g *model.Graph, parentID string) (*model.Graph, string) {
	t.Helper()
	out, err := AddNodeBelow(g, parentID)
	if err != nil {
		t.Fatalf("AddNodeBelow(%s) error: %v", parentID, err)
	}
	return out, out.SelectedID
}

func TestNewGraph(t *testing.T) {
	g, err := NewGraph()
	if err != nil {
		t.Fatalf("NewGraph error: %v", err)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("fresh graph should validate, got: %v", err)
	}
	if g.SelectedID != g.StartID {
		t.Errorf("expected start selected, got %q", g.SelectedID)
	}
}

func TestAddNodeBelow_Basics(t *testing.T) {
	g, err := NewGraph()
	if err != nil {
		t.Fatalf("NewGraph error: %v", err)
	}

	out, childID := mustAdd(t, g, g.StartID)

	child := out.Nodes[childID]
	if child == nil {
		t.Fatalf("expected new node in graph")
	}
	if len(child.Lines) != 1 || child.Lines[0] != DefaultNodeText {
		t.Errorf("expected placeholder text %q, got %v", DefaultNodeText, child.Lines)
	}
	if child.N != nil {
		t.Errorf("expected no count on a new node, got %d", *child.N)
	}

	iv := out.IntervalBetween(g.StartID, childID)
	if iv == nil {
		t.Fatalf("expected interval from parent to new node")
	}
	if iv.Exclusion == nil || iv.Exclusion.Label != model.DefaultExclusionLabel {
		t.Errorf("expected fresh default exclusion box, got %v", iv.Exclusion)
	}
	if iv.Exclusion.Total != nil {
		t.Errorf("expected nil exclusion total, got %d", *iv.Exclusion.Total)
	}

	if out.SelectedID != childID {
		t.Errorf("expected selection on the new node, got %q", out.SelectedID)
	}
	if err := out.Validate(); err != nil {
		t.Errorf("graph invalid after add: %v", err)
	}
}

func TestAddNodeBelow_UnknownParent(t *testing.T) {
	g, _ := NewGraph()

	_, err := AddNodeBelow(g, "ghost")
	if err == nil {
		t.Fatalf("expected error for unknown parent")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAddNodeBelow_InputUntouched(t *testing.T) {
	g, _ := NewGraph()

	out, _ := mustAdd(t, g, g.StartID)

	if len(g.Nodes) != 1 {
		t.Errorf("expected input graph untouched, has %d nodes", len(g.Nodes))
	}
	if len(out.Nodes) != 2 {
		t.Errorf("expected new graph with 2 nodes, got %d", len(out.Nodes))
	}
}

func TestAddBranch_TwoArms(t *testing.T) {
	g, _ := NewGraph()

	out, err := AddBranch(g, g.StartID, 2)
	if err != nil {
		t.Fatalf("AddBranch error: %v", err)
	}

	start := out.Nodes[out.StartID]
	if len(start.ChildIDs) != 2 {
		t.Fatalf("expected 2 children, got %d", len(start.ChildIDs))
	}
	if out.SelectedID != start.ChildIDs[0] {
		t.Errorf("expected first arm selected, got %q", out.SelectedID)
	}
	if err := out.Validate(); err != nil {
		t.Errorf("graph invalid after branch: %v", err)
	}
}

func TestAddBranch_RejectsSingleArm(t *testing.T) {
	g, _ := NewGraph()

	if _, err := AddBranch(g, g.StartID, 1); err == nil {
		t.Errorf("expected error for a one-arm branch")
	}
}

func TestRemoveNode_Subtree(t *testing.T) {
	g, _ := NewGraph()
	g, child := mustAdd(t, g, g.StartID)
	g, grand := mustAdd(t, g, child)

	out, err := RemoveNode(g, child)
	if err != nil {
		t.Fatalf("RemoveNode error: %v", err)
	}

	for _, id := range []string{child, grand} {
		if _, ok := out.Nodes[id]; ok {
			t.Errorf("expected node %s removed", id)
		}
	}
	for ivID, iv := range out.Intervals {
		if iv.ParentID == child || iv.ChildID == child || iv.ParentID == grand || iv.ChildID == grand {
			t.Errorf("expected interval %s removed with the subtree", ivID)
		}
	}
	if got := len(out.Nodes[out.StartID].ChildIDs); got != 0 {
		t.Errorf("expected parent child list emptied, got %d entries", got)
	}
	if out.SelectedID != out.StartID {
		t.Errorf("expected selection back on the former parent, got %q", out.SelectedID)
	}
	if err := out.Validate(); err != nil {
		t.Errorf("graph invalid after remove: %v", err)
	}
}

func TestRemoveNode_StartIsPermanent(t *testing.T) {
	g, _ := NewGraph()
	g, _ = mustAdd(t, g, g.StartID)

	out, err := RemoveNode(g, g.StartID)
	if err != nil {
		t.Fatalf("RemoveNode error: %v", err)
	}
	if out != g {
		t.Errorf("expected the same graph back for a start-node removal")
	}
	if len(out.Nodes) != 2 {
		t.Errorf("expected nothing removed, got %d nodes", len(out.Nodes))
	}
}

func TestRemoveNode_KeepsSiblingArm(t *testing.T) {
	g, _ := NewGraph()
	g, err := AddBranch(g, g.StartID, 2)
	if err != nil {
		t.Fatalf("AddBranch error: %v", err)
	}
	arms := g.Nodes[g.StartID].ChildIDs

	out, err := RemoveNode(g, arms[0])
	if err != nil {
		t.Fatalf("RemoveNode error: %v", err)
	}

	if _, ok := out.Nodes[arms[1]]; !ok {
		t.Errorf("expected the sibling arm to survive")
	}
	kept := out.Nodes[out.StartID].ChildIDs
	if len(kept) != 1 || kept[0] != arms[1] {
		t.Errorf("expected child list [%s], got %v", arms[1], kept)
	}
}

func TestRemoveNode_RepointsPhases(t *testing.T) {
	g, _ := NewGraph()
	g, child := mustAdd(t, g, g.StartID)
	g, grand := mustAdd(t, g, child)
	g, err := AddPhase(g, "Follow-up", child, grand)
	if err != nil {
		t.Fatalf("AddPhase error: %v", err)
	}

	out, err := RemoveNode(g, child)
	if err != nil {
		t.Fatalf("RemoveNode error: %v", err)
	}

	p := out.Phases[0]
	if p.StartNodeID != out.StartID || p.EndNodeID != out.StartID {
		t.Errorf("expected phase repointed at the surviving parent, got %s..%s", p.StartNodeID, p.EndNodeID)
	}
	if err := out.Validate(); err != nil {
		t.Errorf("graph invalid after remove: %v", err)
	}
}

func TestUpdateNodeText(t *testing.T) {
	g, _ := NewGraph()
	g, child := mustAdd(t, g, g.StartID)

	out, err := UpdateNodeText(g, child, []string{"Assessed for eligibility", "(screening)"})
	if err != nil {
		t.Fatalf("UpdateNodeText error: %v", err)
	}

	if len(out.Nodes[child].Lines) != 2 {
		t.Fatalf("expected 2 lines, got %v", out.Nodes[child].Lines)
	}
	if g.Nodes[child].Lines[0] != DefaultNodeText {
		t.Errorf("expected input graph untouched, got %q", g.Nodes[child].Lines[0])
	}
}

func TestUpdateNodeCount_RebalancesBinarySplit(t *testing.T) {
	g, _ := NewGraph()
	g, err := UpdateNodeCount(g, g.StartID, intp(100), model.DefaultSettings())
	if err != nil {
		t.Fatalf("UpdateNodeCount error: %v", err)
	}
	g, err = AddBranch(g, g.StartID, 2)
	if err != nil {
		t.Fatalf("AddBranch error: %v", err)
	}
	g = engine.Recompute(g, model.DefaultSettings())
	arms := g.Nodes[g.StartID].ChildIDs

	out, err := UpdateNodeCount(g, arms[0], intp(70), model.DefaultSettings())
	if err != nil {
		t.Fatalf("UpdateNodeCount error: %v", err)
	}

	if n := out.Nodes[arms[1]].N; n == nil || *n != 30 {
		t.Errorf("expected sibling rebalanced to 30, got %v", n)
	}
}

func TestUpdateNodeCountFree_ParsesWhenPossible(t *testing.T) {
	g, _ := NewGraph()
	g, child := mustAdd(t, g, g.StartID)

	out, err := UpdateNodeCountFree(g, child, "1 234")
	if err != nil {
		t.Fatalf("UpdateNodeCountFree error: %v", err)
	}
	if out.Nodes[child].CountOverride != "1 234" {
		t.Errorf("expected override stored, got %q", out.Nodes[child].CountOverride)
	}
	if n := out.Nodes[child].N; n == nil || *n != 1234 {
		t.Errorf("expected numeric count 1234 parsed from override, got %v", n)
	}

	out, err = UpdateNodeCountFree(out, child, "noin sata")
	if err != nil {
		t.Fatalf("UpdateNodeCountFree error: %v", err)
	}
	if n := out.Nodes[child].N; n != nil {
		t.Errorf("expected numeric count cleared for unparseable text, got %d", *n)
	}
}

func TestUpdateNodeCountFree_NoRebalance(t *testing.T) {
	g, _ := NewGraph()
	g, _ = UpdateNodeCount(g, g.StartID, intp(100), model.DefaultSettings())
	g, _ = AddBranch(g, g.StartID, 2)
	g = engine.Recompute(g, model.DefaultSettings())
	arms := g.Nodes[g.StartID].ChildIDs

	out, err := UpdateNodeCountFree(g, arms[0], "70")
	if err != nil {
		t.Fatalf("UpdateNodeCountFree error: %v", err)
	}

	if n := out.Nodes[arms[1]].N; n == nil || *n != 50 {
		t.Errorf("expected sibling untouched by a free edit, got %v", n)
	}
}
