package history

import (
	"testing"

	"trialflow/pkg/model"
)

func snapshots(n int) []*model.Graph {
	out := make([]*model.Graph, n)
	for i := range out {
		out[i] = model.NewGraph("start")
	}
	return out
}

func TestUndoRedo_Swap(t *testing.T) {
	gs := snapshots(3)
	l := New()

	l.Push(gs[0])
	l.Push(gs[1])
	current := gs[2]

	got, ok := l.Undo(current)
	if !ok || got != gs[1] {
		t.Fatalf("expected undo to return the latest snapshot")
	}
	got, ok = l.Redo(got)
	if !ok || got != current {
		t.Fatalf("expected redo to restore the pre-undo state")
	}
}

func TestUndo_Empty(t *testing.T) {
	l := New()
	if _, ok := l.Undo(model.NewGraph("start")); ok {
		t.Errorf("expected no undo target on an empty log")
	}
	if l.CanUndo() || l.CanRedo() {
		t.Errorf("expected empty log to report no targets")
	}
}

func TestPush_ClearsRedo(t *testing.T) {
	gs := snapshots(4)
	l := New()

	l.Push(gs[0])
	current, ok := l.Undo(gs[1])
	if !ok || current != gs[0] {
		t.Fatalf("expected undo to return first snapshot")
	}
	if !l.CanRedo() {
		t.Fatalf("expected a redo target after undo")
	}

	l.Push(gs[2])
	if l.CanRedo() {
		t.Errorf("expected redo history cleared by a new edit")
	}
	if _, ok := l.Redo(gs[3]); ok {
		t.Errorf("expected redo to fail after a new edit")
	}
}

func TestPush_EvictsOldest(t *testing.T) {
	gs := snapshots(5)
	l := NewWithLimit(3)

	for _, g := range gs[:4] {
		l.Push(g)
	}
	if l.Len() != 3 {
		t.Fatalf("expected depth capped at 3, got %d", l.Len())
	}

	current := gs[4]
	want := []*model.Graph{gs[3], gs[2], gs[1]}
	for i, expected := range want {
		got, ok := l.Undo(current)
		if !ok || got != expected {
			t.Fatalf("undo %d: expected snapshot %d back", i, 3-i)
		}
		current = got
	}
	if _, ok := l.Undo(current); ok {
		t.Errorf("expected the evicted snapshot to be unreachable")
	}
}

func TestNewWithLimit_Floor(t *testing.T) {
	l := NewWithLimit(0)
	if l.limit != DefaultLimit {
		t.Errorf("expected fallback to DefaultLimit, got %d", l.limit)
	}
}

func TestUndoDepth_Sequence(t *testing.T) {
	gs := snapshots(3)
	l := New()

	l.Push(gs[0])
	l.Push(gs[1])
	if l.Len() != 2 {
		t.Fatalf("expected 2 undoable snapshots, got %d", l.Len())
	}

	_, _ = l.Undo(gs[2])
	if l.Len() != 1 {
		t.Errorf("expected 1 undoable snapshot after undo, got %d", l.Len())
	}
	_, _ = l.Redo(gs[1])
	if l.Len() != 2 {
		t.Errorf("expected 2 undoable snapshots after redo, got %d", l.Len())
	}
}
