package ops

import (
	"trialflow/pkg/idgen"
	"trialflow/pkg/model"
)

// orderBounds swaps a phase span into main-flow order when both ends sit on
// the flow. Full clamping against sibling phases happens on layout.
func orderBounds(g *model.Graph, startID, endID string) (string, string) {
	si := g.MainFlowIndex(startID)
	ei := g.MainFlowIndex(endID)
	if si >= 0 && ei >= 0 && si > ei {
		return endID, startID
	}
	return startID, endID
}

// AddPhase appends a new phase bracket spanning the given nodes and selects
// it. Bounds are stored in main-flow order.
func AddPhase(g *model.Graph, label, startNodeID, endNodeID string) (*model.Graph, error) {
	if _, ok := g.Nodes[startNodeID]; !ok {
		return nil, nodeNotFound(startNodeID)
	}
	if _, ok := g.Nodes[endNodeID]; !ok {
		return nil, nodeNotFound(endNodeID)
	}

	phaseID, err := idgen.Phase()
	if err != nil {
		return nil, err
	}

	out := g.Clone()
	startNodeID, endNodeID = orderBounds(out, startNodeID, endNodeID)
	out.Phases = append(out.Phases, model.PhaseBox{
		ID:          phaseID,
		Label:       label,
		StartNodeID: startNodeID,
		EndNodeID:   endNodeID,
	})
	out.SelectedID = phaseID

	return out, nil
}

// UpdatePhaseLabel sets a phase's label.
func UpdatePhaseLabel(g *model.Graph, phaseID, label string) (*model.Graph, error) {
	if g.Phase(phaseID) == nil {
		return nil, phaseNotFound(phaseID)
	}

	out := g.Clone()
	out.Phase(phaseID).Label = label

	return out, nil
}

// UpdatePhaseBounds repoints a phase at a new node span, stored in main-flow
// order.
func UpdatePhaseBounds(g *model.Graph, phaseID, startNodeID, endNodeID string) (*model.Graph, error) {
	if g.Phase(phaseID) == nil {
		return nil, phaseNotFound(phaseID)
	}
	if _, ok := g.Nodes[startNodeID]; !ok {
		return nil, nodeNotFound(startNodeID)
	}
	if _, ok := g.Nodes[endNodeID]; !ok {
		return nil, nodeNotFound(endNodeID)
	}

	out := g.Clone()
	startNodeID, endNodeID = orderBounds(out, startNodeID, endNodeID)
	p := out.Phase(phaseID)
	p.StartNodeID = startNodeID
	p.EndNodeID = endNodeID

	return out, nil
}

// RemovePhase deletes a phase bracket. Selection falls back to the phase's
// start node when the phase itself was selected.
func RemovePhase(g *model.Graph, phaseID string) (*model.Graph, error) {
	p := g.Phase(phaseID)
	if p == nil {
		return nil, phaseNotFound(phaseID)
	}

	out := g.Clone()
	kept := out.Phases[:0]
	for _, ph := range out.Phases {
		if ph.ID != phaseID {
			kept = append(kept, ph)
		}
	}
	out.Phases = kept
	if out.SelectedID == phaseID {
		out.SelectedID = p.StartNodeID
	}

	return out, nil
}
