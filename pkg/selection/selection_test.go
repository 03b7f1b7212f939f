package selection

import (
	"testing"

	"trialflow/pkg/model"
	"trialflow/pkg/ops"
)

// branchFixture builds start -> {a, b, c} plus a -> leaf, and returns the
// graph with ids for the named entities.
func branchFixture(t *testing.T) (*model.Graph, map[string]string) {
	t.Helper()
	g, err := ops.NewGraph()
	if err != nil {
		t.Fatalf("NewGraph error: %v", err)
	}
	ids := map[string]string{"start": g.StartID}
	for _, name := range []string{"a", "b", "c"} {
		g, err = ops.AddNodeBelow(g, g.StartID)
		if err != nil {
			t.Fatalf("AddNodeBelow error: %v", err)
		}
		ids[name] = g.SelectedID
	}
	g, err = ops.AddNodeBelow(g, ids["a"])
	if err != nil {
		t.Fatalf("AddNodeBelow error: %v", err)
	}
	ids["leaf"] = g.SelectedID
	for _, pair := range [][2]string{{"start", "a"}, {"start", "b"}, {"start", "c"}, {"a", "leaf"}} {
		iv := g.IntervalBetween(ids[pair[0]], ids[pair[1]])
		if iv == nil {
			t.Fatalf("missing interval %s -> %s", pair[0], pair[1])
		}
		ids["iv-"+pair[0]+"-"+pair[1]] = iv.ID
	}
	return g, ids
}

func selectAt(t *testing.T, g *model.Graph, id string) *model.Graph {
	t.Helper()
	out, err := ops.SetSelected(g, id)
	if err != nil {
		t.Fatalf("SetSelected(%s) error: %v", id, err)
	}
	return out
}

func TestNavigate_VerticalAlternatesNodesAndIntervals(t *testing.T) {
	g, ids := branchFixture(t)

	g = selectAt(t, g, ids["a"])
	if got := Navigate(g, Up); got != ids["iv-start-a"] {
		t.Errorf("node up: expected inbound interval, got %q", got)
	}
	if got := Navigate(g, Down); got != ids["iv-a-leaf"] {
		t.Errorf("node down: expected first-child interval, got %q", got)
	}

	g = selectAt(t, g, ids["iv-start-a"])
	if got := Navigate(g, Up); got != ids["start"] {
		t.Errorf("interval up: expected parent node, got %q", got)
	}
	if got := Navigate(g, Down); got != ids["a"] {
		t.Errorf("interval down: expected child node, got %q", got)
	}
}

func TestNavigate_HorizontalWalksSiblings(t *testing.T) {
	g, ids := branchFixture(t)

	g = selectAt(t, g, ids["b"])
	if got := Navigate(g, Left); got != ids["a"] {
		t.Errorf("expected left sibling a, got %q", got)
	}
	if got := Navigate(g, Right); got != ids["c"] {
		t.Errorf("expected right sibling c, got %q", got)
	}

	g = selectAt(t, g, ids["a"])
	if got := Navigate(g, Left); got != ids["a"] {
		t.Errorf("expected leftmost sibling to stay put, got %q", got)
	}
	g = selectAt(t, g, ids["c"])
	if got := Navigate(g, Right); got != ids["c"] {
		t.Errorf("expected rightmost sibling to stay put, got %q", got)
	}
}

func TestNavigate_IntervalSiblings(t *testing.T) {
	g, ids := branchFixture(t)

	g = selectAt(t, g, ids["iv-start-b"])
	if got := Navigate(g, Left); got != ids["iv-start-a"] {
		t.Errorf("expected left sibling interval, got %q", got)
	}
	if got := Navigate(g, Right); got != ids["iv-start-c"] {
		t.Errorf("expected right sibling interval, got %q", got)
	}
}

func TestNavigate_BoundaryStays(t *testing.T) {
	g, ids := branchFixture(t)

	g = selectAt(t, g, ids["start"])
	if got := Navigate(g, Up); got != ids["start"] {
		t.Errorf("expected start to stay on up, got %q", got)
	}
	if got := Navigate(g, Left); got != ids["start"] {
		t.Errorf("expected start to stay on left, got %q", got)
	}

	g = selectAt(t, g, ids["leaf"])
	if got := Navigate(g, Down); got != ids["leaf"] {
		t.Errorf("expected leaf to stay on down, got %q", got)
	}
}

func TestNavigate_Phases(t *testing.T) {
	g, ids := branchFixture(t)
	var err error
	g, err = ops.AddPhase(g, "Enrollment", ids["start"], ids["start"])
	if err != nil {
		t.Fatalf("AddPhase error: %v", err)
	}
	g, err = ops.AddPhase(g, "Allocation", ids["a"], ids["leaf"])
	if err != nil {
		t.Fatalf("AddPhase error: %v", err)
	}
	first, second := g.Phases[0].ID, g.Phases[1].ID

	g = selectAt(t, g, second)
	if got := Navigate(g, Up); got != first {
		t.Errorf("expected previous phase, got %q", got)
	}
	if got := Navigate(g, Left); got != second {
		t.Errorf("expected horizontal no-op on a phase, got %q", got)
	}
	g = selectAt(t, g, first)
	if got := Navigate(g, Down); got != second {
		t.Errorf("expected next phase, got %q", got)
	}
	if got := Navigate(g, Up); got != first {
		t.Errorf("expected first phase to stay on up, got %q", got)
	}
}

func TestKindOf(t *testing.T) {
	g, ids := branchFixture(t)
	var err error
	g, err = ops.AddPhase(g, "Enrollment", ids["start"], ids["a"])
	if err != nil {
		t.Fatalf("AddPhase error: %v", err)
	}

	cases := []struct {
		id   string
		want EntityKind
	}{
		{ids["start"], KindNode},
		{ids["iv-start-a"], KindInterval},
		{g.Phases[0].ID, KindPhase},
		{"ghost", KindUnknown},
	}
	for _, tc := range cases {
		if got := KindOf(g, tc.id); got != tc.want {
			t.Errorf("KindOf(%s): expected %s, got %s", tc.id, tc.want, got)
		}
	}
}

func TestDirection_IsValid(t *testing.T) {
	for _, d := range []Direction{Up, Down, Left, Right} {
		if !d.IsValid() {
			t.Errorf("expected %q valid", d)
		}
	}
	if Direction("diagonal").IsValid() {
		t.Errorf("expected unknown direction invalid")
	}
}
