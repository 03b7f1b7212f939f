// Package selection maps a selected diagram entity and a direction to the
// next entity id. Moves follow tree adjacency: vertical moves alternate
// between nodes and the intervals joining them, horizontal moves walk
// siblings. A move with no target leaves the selection where it is.
package selection

import "trialflow/pkg/model"

// Direction is one of the four cursor moves.
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// IsValid reports whether d is a known direction.
func (d Direction) IsValid() bool {
	switch d {
	case Up, Down, Left, Right:
		return true
	}
	return false
}

// EntityKind classifies what a selection id points at.
type EntityKind string

const (
	KindNode     EntityKind = "node"
	KindInterval EntityKind = "interval"
	KindPhase    EntityKind = "phase"
	KindUnknown  EntityKind = "unknown"
)

// KindOf resolves id against the graph's entity tables.
func KindOf(g *model.Graph, id string) EntityKind {
	switch {
	case g.Node(id) != nil:
		return KindNode
	case g.Interval(id) != nil:
		return KindInterval
	case g.Phase(id) != nil:
		return KindPhase
	}
	return KindUnknown
}

// Navigate returns the id the selection moves to from the graph's current
// selection, or the current id when no move exists in that direction.
func Navigate(g *model.Graph, dir Direction) string {
	cur := g.SelectedID
	switch KindOf(g, cur) {
	case KindNode:
		return fromNode(g, cur, dir)
	case KindInterval:
		return fromInterval(g, cur, dir)
	case KindPhase:
		return fromPhase(g, cur, dir)
	}
	return cur
}

func fromNode(g *model.Graph, id string, dir Direction) string {
	switch dir {
	case Up:
		if iv := g.IntervalTo(id); iv != nil {
			return iv.ID
		}
	case Down:
		node := g.Node(id)
		if len(node.ChildIDs) > 0 {
			if iv := g.IntervalBetween(id, node.ChildIDs[0]); iv != nil {
				return iv.ID
			}
		}
	case Left, Right:
		siblings, idx := g.SiblingIDs(id)
		if next := step(idx, len(siblings), dir); next != idx {
			return siblings[next]
		}
	}
	return id
}

func fromInterval(g *model.Graph, id string, dir Direction) string {
	iv := g.Interval(id)
	switch dir {
	case Up:
		return iv.ParentID
	case Down:
		return iv.ChildID
	case Left, Right:
		siblings := g.ChildIntervals(iv.ParentID)
		idx := -1
		for i, sib := range siblings {
			if sib.ID == id {
				idx = i
				break
			}
		}
		if idx >= 0 {
			if next := step(idx, len(siblings), dir); next != idx {
				return siblings[next].ID
			}
		}
	}
	return id
}

func fromPhase(g *model.Graph, id string, dir Direction) string {
	idx := -1
	for i := range g.Phases {
		if g.Phases[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return id
	}
	switch dir {
	case Up:
		if idx > 0 {
			return g.Phases[idx-1].ID
		}
	case Down:
		if idx < len(g.Phases)-1 {
			return g.Phases[idx+1].ID
		}
	}
	return id
}

// step moves an index one slot left or right within [0, n), returning the
// same index when the move would leave the range.
func step(idx, n int, dir Direction) int {
	if idx < 0 {
		return idx
	}
	switch dir {
	case Left:
		if idx > 0 {
			return idx - 1
		}
	case Right:
		if idx < n-1 {
			return idx + 1
		}
	}
	return idx
}
