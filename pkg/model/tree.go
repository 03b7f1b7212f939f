package model

// Tree queries over the id-indexed node and interval maps. All of these are
// read-only; they never modify the graph.

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *BoxNode {
	return g.Nodes[id]
}

// Interval returns the interval with the given id, or nil.
func (g *Graph) Interval(id string) *Interval {
	return g.Intervals[id]
}

// Phase returns the phase with the given id, or nil.
func (g *Graph) Phase(id string) *PhaseBox {
	for i := range g.Phases {
		if g.Phases[i].ID == id {
			return &g.Phases[i]
		}
	}
	return nil
}

// ParentOf returns the parent node id of the given node, or "" for the start
// node (and for unknown ids).
func (g *Graph) ParentOf(nodeID string) string {
	for id, n := range g.Nodes {
		if containsID(n.ChildIDs, nodeID) {
			return id
		}
	}
	return ""
}

// IntervalBetween returns the interval connecting parent to child, or nil.
func (g *Graph) IntervalBetween(parentID, childID string) *Interval {
	for _, iv := range g.Intervals {
		if iv.ParentID == parentID && iv.ChildID == childID {
			return iv
		}
	}
	return nil
}

// IntervalTo returns the interval whose child end is the given node, or nil
// for the start node.
func (g *Graph) IntervalTo(childID string) *Interval {
	for _, iv := range g.Intervals {
		if iv.ChildID == childID {
			return iv
		}
	}
	return nil
}

// ChildIntervals returns the parent's outgoing intervals in child-list order.
func (g *Graph) ChildIntervals(parentID string) []*Interval {
	parent := g.Nodes[parentID]
	if parent == nil {
		return nil
	}
	out := make([]*Interval, 0, len(parent.ChildIDs))
	for _, childID := range parent.ChildIDs {
		if iv := g.IntervalBetween(parentID, childID); iv != nil {
			out = append(out, iv)
		}
	}
	return out
}

// IsBranchParent reports whether the node has more than one child.
func (g *Graph) IsBranchParent(nodeID string) bool {
	n := g.Nodes[nodeID]
	return n != nil && len(n.ChildIDs) > 1
}

// IsBranchInterval reports whether the interval's parent has more than one
// child.
func (g *Graph) IsBranchInterval(iv *Interval) bool {
	return iv != nil && g.IsBranchParent(iv.ParentID)
}

// Descendants returns the ids of the node and its entire subtree, BFS order
// starting at the node itself. Unknown ids yield nil.
func (g *Graph) Descendants(nodeID string) []string {
	if _, ok := g.Nodes[nodeID]; !ok {
		return nil
	}

	collected := []string{nodeID}
	seen := map[string]bool{nodeID: true}

	queue := []string{nodeID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		n := g.Nodes[current]
		if n == nil {
			continue
		}
		for _, childID := range n.ChildIDs {
			if !seen[childID] {
				seen[childID] = true
				collected = append(collected, childID)
				queue = append(queue, childID)
			}
		}
	}

	return collected
}

// MainFlow returns the chain of main-flow node ids from the start node,
// following the first child at each step.
func (g *Graph) MainFlow() []string {
	flow := []string{}
	seen := map[string]bool{}

	current := g.StartID
	for current != "" && !seen[current] {
		n := g.Nodes[current]
		if n == nil {
			break
		}
		flow = append(flow, current)
		seen[current] = true
		if len(n.ChildIDs) == 0 {
			break
		}
		current = n.ChildIDs[0]
	}

	return flow
}

// MainFlowIndex returns the node's position along the main flow, or -1 when
// the node is not on it.
func (g *Graph) MainFlowIndex(nodeID string) int {
	for i, id := range g.MainFlow() {
		if id == nodeID {
			return i
		}
	}
	return -1
}

// SiblingIDs returns the child list the node belongs to (its siblings,
// itself included) together with the node's index in it. The start node has
// no siblings: it returns (nil, -1).
func (g *Graph) SiblingIDs(nodeID string) ([]string, int) {
	parentID := g.ParentOf(nodeID)
	if parentID == "" {
		return nil, -1
	}
	siblings := g.Nodes[parentID].ChildIDs
	for i, id := range siblings {
		if id == nodeID {
			return siblings, i
		}
	}
	return nil, -1
}
