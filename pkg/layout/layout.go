// Package layout computes the deterministic geometry of a flow diagram: box
// sizes from wrapped text, a centered top-down tree placement, branch side
// tags for exclusion boxes, and normalized phase bracket spans. It is a pure
// geometry pass; it never touches counts or exclusions.
package layout

import (
	"trialflow/pkg/model"
)

// Config holds the fixed geometry constants of the diagram.
type Config struct {
	MainBoxWidth      float64 // box width of a flow node
	ExclusionBoxWidth float64 // box width of an exclusion side box
	MainColumns       int     // wrap budget inside a flow node
	ExclusionColumns  int     // wrap budget inside an exclusion box
	LineHeight        float64
	VerticalPadding   float64
	MinBoxHeight      float64
	SiblingGap        float64 // horizontal gap between sibling subtrees
	LevelGap          float64 // vertical gap between parent and child boxes
	PhaseGutter       float64 // distance from the main column to phase brackets
}

// DefaultConfig returns the geometry every diagram is laid out with.
func DefaultConfig() Config {
	return Config{
		MainBoxWidth:      220,
		ExclusionBoxWidth: 180,
		MainColumns:       26,
		ExclusionColumns:  22,
		LineHeight:        16,
		VerticalPadding:   16,
		MinBoxHeight:      40,
		SiblingGap:        40,
		LevelGap:          60,
		PhaseGutter:       48,
	}
}

// Apply lays the graph out with the default geometry. The graph is mutated
// in place; callers hand in their own working copy (the recompute engine
// always passes a clone).
func Apply(g *model.Graph, s model.Settings) {
	DefaultConfig().Apply(g, s)
}

// Apply assigns every node its box size, subtree width, canvas position and
// branch side, then normalizes phase spans and bracket geometry. It is total:
// incomplete data lays out as placeholders, never as an error.
func (c Config) Apply(g *model.Graph, s model.Settings) {
	for _, n := range g.Nodes {
		n.Width, n.Height = c.NodeSize(n, s)
	}

	c.sizeSubtree(g, g.StartID, map[string]bool{})

	start := g.Nodes[g.StartID]
	if start == nil {
		return
	}
	start.Position = model.Point{X: 0, Y: 0}
	start.Side = model.SideRight
	c.placeChildren(g, g.StartID, map[string]bool{g.StartID: true})

	c.normalizePhases(g)
}

// NodeSize computes a node's box size from its wrapped display lines. The
// trailing count line is part of the height.
func (c Config) NodeSize(n *model.BoxNode, s model.Settings) (w, h float64) {
	lines := len(c.NodeDisplayLines(n, s))
	return c.MainBoxWidth, c.boxHeight(lines)
}

// ExclusionSize computes an exclusion box's size from its display lines.
func (c Config) ExclusionSize(e *model.ExclusionBox, s model.Settings) (w, h float64) {
	lines, _ := c.ExclusionDisplayLines(e, s)
	return c.ExclusionBoxWidth, c.boxHeight(len(lines))
}

func (c Config) boxHeight(lines int) float64 {
	h := float64(lines)*c.LineHeight + c.VerticalPadding
	if h < c.MinBoxHeight {
		return c.MinBoxHeight
	}
	return h
}

// sizeSubtree computes subtree widths post-order: a leaf occupies its own box
// width, an internal node the wider of its box and its children's combined
// slots.
func (c Config) sizeSubtree(g *model.Graph, id string, visiting map[string]bool) float64 {
	n := g.Nodes[id]
	if n == nil || visiting[id] {
		return 0
	}
	visiting[id] = true

	childrenWidth := 0.0
	counted := 0
	for _, childID := range n.ChildIDs {
		w := c.sizeSubtree(g, childID, visiting)
		if w > 0 {
			if counted > 0 {
				childrenWidth += c.SiblingGap
			}
			childrenWidth += w
			counted++
		}
	}

	n.SubtreeWidth = n.Width
	if childrenWidth > n.SubtreeWidth {
		n.SubtreeWidth = childrenWidth
	}
	return n.SubtreeWidth
}

// placeChildren positions a node's children pre-order: laid out left to right
// by subtree width, horizontally centered under the parent, one level down.
// Side tags propagate from the first branching ancestor.
func (c Config) placeChildren(g *model.Graph, id string, placed map[string]bool) {
	n := g.Nodes[id]
	if n == nil {
		return
	}

	children := make([]*model.BoxNode, 0, len(n.ChildIDs))
	total := 0.0
	for _, childID := range n.ChildIDs {
		child := g.Nodes[childID]
		if child == nil || placed[childID] {
			continue
		}
		if len(children) > 0 {
			total += c.SiblingGap
		}
		total += child.SubtreeWidth
		children = append(children, child)
	}
	if len(children) == 0 {
		return
	}

	y := n.Position.Y + n.Height + c.LevelGap
	cursor := n.Position.X - total/2

	for i, child := range children {
		child.Position = model.Point{X: cursor + child.SubtreeWidth/2, Y: y}
		cursor += child.SubtreeWidth + c.SiblingGap

		if len(children) == 1 {
			child.Side = n.Side
		} else if i*2 < len(children) {
			child.Side = model.SideLeft
		} else {
			child.Side = model.SideRight
		}

		placed[child.ID] = true
	}

	for _, child := range children {
		c.placeChildren(g, child.ID, placed)
	}
}

// ExclusionSide decides which side of the flow line an interval's exclusion
// box renders on: the child's branch side, falling back to an x comparison
// when the graph has not been placed yet.
func ExclusionSide(g *model.Graph, iv *model.Interval) model.Side {
	child := g.Nodes[iv.ChildID]
	parent := g.Nodes[iv.ParentID]
	if child == nil || parent == nil {
		return model.SideRight
	}
	if child.Side != "" {
		return child.Side
	}
	if child.Position.X >= parent.Position.X {
		return model.SideRight
	}
	return model.SideLeft
}
