// Package history keeps a linear undo/redo stack of graph snapshots. Graph
// values are independent snapshots (operations clone before mutating), so
// the log stores them directly without copying.
package history

import "trialflow/pkg/model"

// DefaultLimit bounds the undo stack; the oldest snapshot is evicted first.
const DefaultLimit = 100

// Log is a bounded linear history. Zero value is not usable; construct with
// New.
type Log struct {
	limit  int
	past   []*model.Graph
	future []*model.Graph
}

// New returns an empty log bounded to DefaultLimit snapshots.
func New() *Log {
	return &Log{limit: DefaultLimit}
}

// NewWithLimit returns an empty log bounded to the given depth. Depths
// below 1 fall back to DefaultLimit.
func NewWithLimit(limit int) *Log {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &Log{limit: limit}
}

// Push records the state that a mutation is about to replace. Any redo
// history is discarded: after a new edit the future is gone.
func (l *Log) Push(g *model.Graph) {
	l.past = append(l.past, g)
	if len(l.past) > l.limit {
		l.past = append(l.past[:0], l.past[len(l.past)-l.limit:]...)
	}
	l.future = l.future[:0]
}

// Undo swaps the current state for the most recent snapshot. It returns
// false when there is nothing to undo.
func (l *Log) Undo(current *model.Graph) (*model.Graph, bool) {
	if len(l.past) == 0 {
		return nil, false
	}
	prev := l.past[len(l.past)-1]
	l.past = l.past[:len(l.past)-1]
	l.future = append(l.future, current)
	return prev, true
}

// Redo swaps the current state for the most recently undone snapshot. It
// returns false when there is nothing to redo.
func (l *Log) Redo(current *model.Graph) (*model.Graph, bool) {
	if len(l.future) == 0 {
		return nil, false
	}
	next := l.future[len(l.future)-1]
	l.future = l.future[:len(l.future)-1]
	l.past = append(l.past, current)
	return next, true
}

// CanUndo reports whether an undo target exists.
func (l *Log) CanUndo() bool { return len(l.past) > 0 }

// CanRedo reports whether a redo target exists.
func (l *Log) CanRedo() bool { return len(l.future) > 0 }

// Len returns the number of undoable snapshots currently held.
func (l *Log) Len() int { return len(l.past) }
