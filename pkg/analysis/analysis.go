// Package analysis derives descriptive statistics from a flow diagram:
// enrollment and completion counts, per-step retention along the main flow,
// exclusion volume and count imbalances. All functions are pure and return
// results in deterministic order.
package analysis

import (
	"gonum.org/v1/gonum/stat"

	"trialflow/pkg/model"
)

// StepStat describes one main-flow step.
type StepStat struct {
	NodeID    string  `json:"nodeId"`
	Label     string  `json:"label"`     // first text line
	N         *int    `json:"n"`         // nil when the count is unset
	Retention float64 `json:"retention"` // n / previous step's n; -1 when not measurable
	Attrition float64 `json:"attrition"` // 1 - retention; -1 when not measurable
}

// IntervalStat describes one edge of the diagram.
type IntervalStat struct {
	IntervalID string `json:"intervalId"`
	ParentID   string `json:"parentId"`
	ChildID    string `json:"childId"`
	Excluded   int    `json:"excluded"` // exclusion total, 0 when unset
	Delta      int    `json:"delta"`    // count imbalance after recompute
}

// BranchStat describes one branching parent.
type BranchStat struct {
	ParentID string `json:"parentId"`
	Arms     int    `json:"arms"`
	Delta    int    `json:"delta"` // aggregate imbalance shared by the arms
}

// Summary aggregates everything the stats report shows.
type Summary struct {
	Enrollment *int `json:"enrollment"` // start node count
	Completion *int `json:"completion"` // last main-flow node count

	OverallRetention float64 `json:"overallRetention"` // completion / enrollment; -1 when not measurable

	Steps     []StepStat     `json:"steps"`
	Intervals []IntervalStat `json:"intervals"`
	Branches  []BranchStat   `json:"branches"`

	TotalExcluded int      `json:"totalExcluded"`
	Imbalanced    []string `json:"imbalanced"` // interval ids with delta != 0

	MeanAttrition   float64 `json:"meanAttrition"`   // over measurable main-flow transitions
	StddevAttrition float64 `json:"stddevAttrition"` // 0 with fewer than two samples
}

// NotMeasurable marks a ratio whose inputs are missing or zero.
const NotMeasurable = -1

// Summarize walks the graph and collects the full summary. The graph is
// expected to be recomputed; deltas are read as-is.
func Summarize(g *model.Graph) Summary {
	s := Summary{
		OverallRetention: NotMeasurable,
		Imbalanced:       []string{},
	}

	flow := g.MainFlow()
	if len(flow) == 0 {
		return s
	}

	s.Enrollment = g.Nodes[flow[0]].N
	s.Completion = g.Nodes[flow[len(flow)-1]].N
	s.OverallRetention = ratio(s.Completion, s.Enrollment)

	s.Steps = mainFlowSteps(g, flow)
	s.Intervals, s.Branches = intervalStats(g)

	attritions := make([]float64, 0, len(s.Steps))
	for _, step := range s.Steps {
		if step.Attrition != NotMeasurable {
			attritions = append(attritions, step.Attrition)
		}
	}
	if len(attritions) > 0 {
		s.MeanAttrition = stat.Mean(attritions, nil)
	}
	if len(attritions) > 1 {
		s.StddevAttrition = stat.StdDev(attritions, nil)
	}

	for _, iv := range s.Intervals {
		s.TotalExcluded += iv.Excluded
		if iv.Delta != 0 {
			s.Imbalanced = append(s.Imbalanced, iv.IntervalID)
		}
	}

	return s
}

func mainFlowSteps(g *model.Graph, flow []string) []StepStat {
	steps := make([]StepStat, 0, len(flow))
	for i, id := range flow {
		node := g.Nodes[id]
		step := StepStat{
			NodeID:    id,
			N:         node.N,
			Retention: NotMeasurable,
			Attrition: NotMeasurable,
		}
		if len(node.Lines) > 0 {
			step.Label = node.Lines[0]
		}
		if i > 0 {
			step.Retention = ratio(node.N, g.Nodes[flow[i-1]].N)
			if step.Retention != NotMeasurable {
				step.Attrition = 1 - step.Retention
			}
		}
		steps = append(steps, step)
	}
	return steps
}

// intervalStats visits every edge in stable tree order: parents top-down
// from the start node, children in child-list order.
func intervalStats(g *model.Graph) ([]IntervalStat, []BranchStat) {
	var intervals []IntervalStat
	var branches []BranchStat

	for _, parentID := range g.Descendants(g.StartID) {
		children := g.ChildIntervals(parentID)
		if len(children) == 0 {
			continue
		}
		for _, iv := range children {
			entry := IntervalStat{
				IntervalID: iv.ID,
				ParentID:   iv.ParentID,
				ChildID:    iv.ChildID,
				Delta:      iv.Delta,
			}
			if iv.Exclusion != nil && iv.Exclusion.Total != nil {
				entry.Excluded = *iv.Exclusion.Total
			}
			intervals = append(intervals, entry)
		}
		if len(children) >= 2 {
			branches = append(branches, BranchStat{
				ParentID: parentID,
				Arms:     len(children),
				Delta:    children[0].Delta,
			})
		}
	}

	return intervals, branches
}

// ratio divides two optional counts, returning NotMeasurable when either is
// missing or the denominator is zero.
func ratio(num, den *int) float64 {
	if num == nil || den == nil || *den == 0 {
		return NotMeasurable
	}
	return float64(*num) / float64(*den)
}
