package ops

import (
	"fmt"

	"trialflow/pkg/count"
	"trialflow/pkg/engine"
	"trialflow/pkg/idgen"
	"trialflow/pkg/model"
)

// AddNodeBelow creates a new node under the given parent: placeholder text,
// no count, a linear interval with a fresh exclusion box, and selection moved
// to the new node. Adding below a parent that already has children grows a
// branch; the primitive is the same.
func AddNodeBelow(g *model.Graph, parentID string) (*model.Graph, error) {
	if _, ok := g.Nodes[parentID]; !ok {
		return nil, nodeNotFound(parentID)
	}

	nodeID, err := idgen.Node()
	if err != nil {
		return nil, err
	}
	intervalID, err := idgen.Interval()
	if err != nil {
		return nil, err
	}

	out := g.Clone()
	out.Nodes[nodeID] = &model.BoxNode{
		ID:       nodeID,
		Lines:    []string{DefaultNodeText},
		Column:   0,
		ChildIDs: []string{},
	}
	out.Intervals[intervalID] = &model.Interval{
		ID:        intervalID,
		ParentID:  parentID,
		ChildID:   nodeID,
		Exclusion: model.NewExclusionBox(),
	}
	parent := out.Nodes[parentID]
	parent.ChildIDs = append(parent.ChildIDs, nodeID)
	out.SelectedID = nodeID

	return out, nil
}

// AddBranch adds the given number of arms under a parent by repeated
// AddNodeBelow and selects the first arm added. At least two arms make a
// branch.
func AddBranch(g *model.Graph, parentID string, arms int) (*model.Graph, error) {
	if arms < 2 {
		return nil, fmt.Errorf("branch needs at least 2 arms, got %d", arms)
	}
	if _, ok := g.Nodes[parentID]; !ok {
		return nil, nodeNotFound(parentID)
	}

	out := g
	firstID := ""
	for i := 0; i < arms; i++ {
		next, err := AddNodeBelow(out, parentID)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			firstID = next.SelectedID
		}
		out = next
	}
	out.SelectedID = firstID

	return out, nil
}

// RemoveNode deletes a node and its entire subtree, along with every
// interval touching a deleted node. The start node is permanent: removing it
// is a no-op that returns the input graph. Selection falls back to the
// removed node's former parent. Phases pointing into the deleted subtree are
// repointed at that parent.
func RemoveNode(g *model.Graph, nodeID string) (*model.Graph, error) {
	if nodeID == g.StartID {
		return g, nil
	}
	if _, ok := g.Nodes[nodeID]; !ok {
		return nil, nodeNotFound(nodeID)
	}

	out := g.Clone()
	parentID := out.ParentOf(nodeID)

	doomed := map[string]bool{}
	for _, id := range out.Descendants(nodeID) {
		doomed[id] = true
	}

	for id, iv := range out.Intervals {
		if doomed[iv.ParentID] || doomed[iv.ChildID] {
			delete(out.Intervals, id)
		}
	}
	for id := range doomed {
		delete(out.Nodes, id)
	}

	if parentID != "" {
		parent := out.Nodes[parentID]
		kept := parent.ChildIDs[:0]
		for _, childID := range parent.ChildIDs {
			if childID != nodeID {
				kept = append(kept, childID)
			}
		}
		parent.ChildIDs = kept
	}

	anchor := parentID
	if anchor == "" {
		anchor = out.StartID
	}
	for i := range out.Phases {
		if doomed[out.Phases[i].StartNodeID] {
			out.Phases[i].StartNodeID = anchor
		}
		if doomed[out.Phases[i].EndNodeID] {
			out.Phases[i].EndNodeID = anchor
		}
	}
	out.SelectedID = anchor

	return out, nil
}

// UpdateNodeText replaces a node's text lines.
func UpdateNodeText(g *model.Graph, nodeID string, lines []string) (*model.Graph, error) {
	if _, ok := g.Nodes[nodeID]; !ok {
		return nil, nodeNotFound(nodeID)
	}

	out := g.Clone()
	n := out.Nodes[nodeID]
	n.Lines = make([]string, len(lines))
	copy(n.Lines, lines)

	return out, nil
}

// UpdateNodeCount sets a node's count and, outside free edit, forces the
// strict binary split on its sibling.
func UpdateNodeCount(g *model.Graph, nodeID string, n *int, s model.Settings) (*model.Graph, error) {
	if _, ok := g.Nodes[nodeID]; !ok {
		return nil, nodeNotFound(nodeID)
	}

	out := g.Clone()
	out.Nodes[nodeID].N = copyInt(n)
	engine.RebalanceAfterCountEdit(out, nodeID, s)

	return out, nil
}

// UpdateNodeCountFree stores free-form count text on a node. The text is the
// displayed value in free edit; the numeric count follows it when the text
// parses, and clears otherwise so deltas stay honest. No rebalancing.
func UpdateNodeCountFree(g *model.Graph, nodeID string, raw string) (*model.Graph, error) {
	if _, ok := g.Nodes[nodeID]; !ok {
		return nil, nodeNotFound(nodeID)
	}

	out := g.Clone()
	node := out.Nodes[nodeID]
	node.CountOverride = raw
	node.N = count.Parse(raw)

	return out, nil
}
