package ops

import (
	"trialflow/pkg/model"
)

// ToggleArrow flips one interval between line and arrow head. An interval
// without its own flag currently follows the global connector style; the
// flip pins it to the opposite of what it shows now.
func ToggleArrow(g *model.Graph, intervalID string, s model.Settings) (*model.Graph, error) {
	iv, ok := g.Intervals[intervalID]
	if !ok {
		return nil, intervalNotFound(intervalID)
	}

	current := s.ArrowsGlobal
	if iv.Arrow != nil {
		current = *iv.Arrow
	}
	flipped := !current

	out := g.Clone()
	out.Intervals[intervalID].Arrow = &flipped

	return out, nil
}

// SetSelected moves selection to the given node, interval or phase id.
func SetSelected(g *model.Graph, id string) (*model.Graph, error) {
	_, isNode := g.Nodes[id]
	_, isInterval := g.Intervals[id]
	if !isNode && !isInterval && g.Phase(id) == nil {
		return nil, entityNotFound(id)
	}

	out := g.Clone()
	out.SelectedID = id

	return out, nil
}
