package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"trialflow/pkg/analysis"
	"trialflow/pkg/count"
	"trialflow/pkg/engine"
	"trialflow/pkg/snapshot"
)

var statsCmd = &cobra.Command{
	Use:     "stats <file>",
	Short:   "Summarize retention and exclusions",
	GroupID: "inspection",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, s, err := snapshot.Load(args[0])
		if err != nil {
			return err
		}
		g = engine.Recompute(g, s)
		summary := analysis.Summarize(g)

		if jsonOutput {
			data, err := json.MarshalIndent(summary, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode summary: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		printSummaryTable(summary)
		return nil
	},
}

func printSummaryTable(sum analysis.Summary) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tN\tRETENTION\tATTRITION")
	for _, step := range sum.Steps {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			step.Label,
			count.Format(step.N),
			percent(step.Retention),
			percent(step.Attrition),
		)
	}
	w.Flush()

	fmt.Println()
	fmt.Printf("Enrollment:        %s\n", count.Format(sum.Enrollment))
	fmt.Printf("Completion:        %s\n", count.Format(sum.Completion))
	fmt.Printf("Overall retention: %s\n", percent(sum.OverallRetention))
	fmt.Printf("Mean attrition:    %s (stddev %s)\n", percent(sum.MeanAttrition), percent(sum.StddevAttrition))
	fmt.Printf("Total excluded:    %s\n", count.Format(&sum.TotalExcluded))

	if len(sum.Imbalanced) > 0 {
		fmt.Printf("Imbalanced:        %s\n", strings.Join(sum.Imbalanced, ", "))
	}
	for _, b := range sum.Branches {
		delta := ""
		if b.Delta != 0 {
			delta = fmt.Sprintf(", %+d", b.Delta)
		}
		fmt.Printf("Branch at %s:      %d arms%s\n", b.ParentID, b.Arms, delta)
	}
}

// percent renders a ratio as a percentage, or the placeholder when the
// ratio is not measurable.
func percent(v float64) string {
	if v == analysis.NotMeasurable {
		return count.Placeholder
	}
	return fmt.Sprintf("%.1f%%", v*100)
}
