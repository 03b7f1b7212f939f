package main

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"trialflow/pkg/engine"
	"trialflow/pkg/model"
	"trialflow/pkg/ops"
)

// linearFixture builds a two-step flow with an exclusion box and a phase:
// Assessed for eligibility (100) -> Randomized, excluding 30 (20 declined,
// 10 remainder).
func linearFixture(t *testing.T) (*model.Graph, model.Settings) {
	t.Helper()
	s := model.DefaultSettings()

	g := newTestGraph(t)
	var err error
	if g, err = ops.UpdateNodeText(g, g.StartID, []string{"Assessed for eligibility"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g, err = ops.UpdateNodeCount(g, g.StartID, intp(100), s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g, err = ops.AddNodeBelow(g, g.StartID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	child := g.SelectedID
	if g, err = ops.UpdateNodeText(g, child, []string{"Randomized"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	iv := g.IntervalBetween(g.StartID, child)
	if g, err = ops.UpdateExclusionCount(g, iv.ID, intp(30)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g, err = ops.AddExclusionReason(g, iv.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reasons := g.Intervals[iv.ID].Exclusion.Reasons
	rid := reasons[len(reasons)-1].ID
	if g, err = ops.UpdateExclusionReasonLabel(g, iv.ID, rid, "Declined"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g, err = ops.UpdateExclusionReasonCount(g, iv.ID, rid, intp(20)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g, err = ops.AddPhase(g, "Enrollment", g.StartID, g.StartID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g, err = ops.SetSelected(g, g.StartID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return engine.Recompute(g, s), s
}

func TestRenderTree_LinearFlow(t *testing.T) {
	g, s := linearFixture(t)

	var buf bytes.Buffer
	renderTree(&buf, g, s, treeStyles{}, 0)
	out := buf.String()

	for _, want := range []string{
		"[Enrollment]\n",
		"▶ Assessed for eligibility  N = 100\n",
		"│ Excluded\n",
		"│   N = 30\n",
		"│   Declined: 20\n",
		"│   Other: 10\n",
		"Randomized  N = 70\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRenderTree_BranchConnectors(t *testing.T) {
	g, s := linearFixture(t)

	randomized := g.MainFlow()[1]
	g, err := ops.AddBranch(g, randomized, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	arms := g.Nodes[randomized].ChildIDs
	for i, label := range []string{"Intervention", "Control"} {
		if g, err = ops.UpdateNodeText(g, arms[i], []string{label}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	g = engine.Recompute(g, s)

	var buf bytes.Buffer
	renderTree(&buf, g, s, treeStyles{}, 0)
	out := buf.String()

	if !strings.Contains(out, "├─ Intervention  N = 35\n") {
		t.Errorf("expected first arm connector, got:\n%s", out)
	}
	if !strings.Contains(out, "└─ Control  N = 35\n") {
		t.Errorf("expected last arm connector, got:\n%s", out)
	}
}

func TestRenderTree_ShowsDelta(t *testing.T) {
	s := model.DefaultSettings()
	s.AutoCalc = false

	g := newTestGraph(t)
	var err error
	if g, err = ops.UpdateNodeCount(g, g.StartID, intp(100), s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g, err = ops.AddNodeBelow(g, g.StartID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g, err = ops.UpdateNodeCount(g, g.SelectedID, intp(80), s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g = engine.Recompute(g, s)

	var buf bytes.Buffer
	renderTree(&buf, g, s, treeStyles{}, 0)

	if !strings.Contains(buf.String(), "+20") {
		t.Errorf("expected +20 delta marker, got:\n%s", buf.String())
	}
}

func TestRenderTree_TruncatesToWidth(t *testing.T) {
	g, s := linearFixture(t)

	var buf bytes.Buffer
	renderTree(&buf, g, s, treeStyles{}, 12)

	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		if utf8.RuneCountInString(line) > 12 {
			t.Errorf("expected lines of at most 12 runes, got %q", line)
		}
	}
}
