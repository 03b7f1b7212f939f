package analysis

import (
	"fmt"
	"strings"

	"trialflow/pkg/count"
	"trialflow/pkg/model"
)

// Report renders a markdown attrition report for the graph. Numbers use the
// configured count format; ratios render as percentages.
func Report(g *model.Graph, s model.Settings) string {
	sum := Summarize(g)
	var b strings.Builder

	b.WriteString("# Patient flow report\n\n")
	fmt.Fprintf(&b, "- Enrollment: %s\n", count.Line(sum.Enrollment, "", s.CountFormat))
	fmt.Fprintf(&b, "- Completion: %s\n", count.Line(sum.Completion, "", s.CountFormat))
	fmt.Fprintf(&b, "- Overall retention: %s\n", percent(sum.OverallRetention))
	fmt.Fprintf(&b, "- Total excluded: %s\n", count.Format(&sum.TotalExcluded))

	b.WriteString("\n## Main flow\n\n")
	b.WriteString("| Step | n | Retention |\n")
	b.WriteString("| --- | ---: | ---: |\n")
	for _, step := range sum.Steps {
		fmt.Fprintf(&b, "| %s | %s | %s |\n",
			step.Label, count.Format(step.N), percent(step.Retention))
	}

	if section := exclusionSection(g); section != "" {
		b.WriteString("\n## Exclusions\n\n")
		b.WriteString(section)
	}

	b.WriteString("\n## Consistency\n\n")
	if len(sum.Imbalanced) == 0 {
		b.WriteString("All interval deltas are zero.\n")
	} else {
		fmt.Fprintf(&b, "%d interval(s) out of balance:\n\n", len(sum.Imbalanced))
		for _, id := range sum.Imbalanced {
			iv := g.Interval(id)
			fmt.Fprintf(&b, "- %s → %s: delta %+d\n",
				nodeLabel(g, iv.ParentID), nodeLabel(g, iv.ChildID), iv.Delta)
		}
	}

	return b.String()
}

// exclusionSection lists every visible exclusion box with its reasons, in
// stable tree order.
func exclusionSection(g *model.Graph) string {
	var b strings.Builder
	for _, parentID := range g.Descendants(g.StartID) {
		for _, iv := range g.ChildIntervals(parentID) {
			excl := iv.Exclusion
			if excl == nil || (excl.Total == nil && len(excl.Reasons) == 0) {
				continue
			}
			fmt.Fprintf(&b, "- %s, before %s: %s\n",
				excl.Label, nodeLabel(g, iv.ChildID), count.Format(excl.Total))
			for _, r := range excl.Reasons {
				fmt.Fprintf(&b, "  - %s: %s\n", r.Label, count.Format(r.N))
			}
		}
	}
	return b.String()
}

func nodeLabel(g *model.Graph, id string) string {
	node := g.Node(id)
	if node == nil || len(node.Lines) == 0 || node.Lines[0] == "" {
		return id
	}
	return node.Lines[0]
}

func percent(r float64) string {
	if r == NotMeasurable {
		return count.Placeholder
	}
	return fmt.Sprintf("%.1f%%", r*100)
}
