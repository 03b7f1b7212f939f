package layout

import (
	"trialflow/pkg/model"
)

// normalizePhases reflows every phase span along the main flow so that spans
// are ordered and non-overlapping. Creation order is precedence: each phase
// starts no earlier than the previous phase's end + 1 and no later than the
// last index that leaves one node for every phase after it. Bracket geometry
// is derived from the spanned nodes afterwards.
func (c Config) normalizePhases(g *model.Graph) {
	flow := g.MainFlow()
	if len(flow) == 0 || len(g.Phases) == 0 {
		return
	}

	index := make(map[string]int, len(flow))
	for i, id := range flow {
		index[id] = i
	}
	lastIdx := len(flow) - 1

	cursor := 0
	for i := range g.Phases {
		p := &g.Phases[i]
		remaining := len(g.Phases) - i - 1

		start, ok := index[p.StartNodeID]
		if !ok {
			start = cursor
		}
		end, ok := index[p.EndNodeID]
		if !ok {
			end = start
		}
		if start > end {
			start, end = end, start
		}

		if start < cursor {
			start = cursor
		}
		maxStart := lastIdx - remaining
		if start > maxStart {
			start = maxStart
		}
		if start < 0 {
			start = 0
		}

		if end < start {
			end = start
		}
		maxEnd := lastIdx - remaining
		if end > maxEnd {
			end = maxEnd
		}
		if end < start {
			end = start
		}

		p.StartNodeID = flow[start]
		p.EndNodeID = flow[end]
		cursor = end + 1

		first := g.Nodes[p.StartNodeID]
		last := g.Nodes[p.EndNodeID]
		p.X = -(c.MainBoxWidth/2 + c.PhaseGutter)
		p.TopY = first.Position.Y
		p.BottomY = last.Position.Y + last.Height
	}
}
