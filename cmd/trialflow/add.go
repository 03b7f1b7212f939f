package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"trialflow/pkg/model"
	"trialflow/pkg/ops"
)

var addCmd = &cobra.Command{
	Use:     "add <entity>",
	Short:   "Add a step, branch, exclusion reason, or phase",
	GroupID: "authoring",
}

var (
	addNodeTextFlag  string
	addNodeCountFlag string
	addBranchArms    int
	addReasonLabel   string
	addReasonCount   string
	addPhaseFrom     string
	addPhaseTo       string
)

var addNodeCmd = &cobra.Command{
	Use:   "node <file> [parent-id]",
	Short: "Add a step below a node (default: the selection)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var newID string
		err := mutateGraph(args[0], func(g *model.Graph, s model.Settings) (*model.Graph, error) {
			parent := g.SelectedID
			if len(args) == 2 {
				parent = args[1]
			}
			out, err := ops.AddNodeBelow(g, parent)
			if err != nil {
				return nil, err
			}
			newID = out.SelectedID
			if addNodeTextFlag != "" {
				if out, err = ops.UpdateNodeText(out, newID, splitLines(addNodeTextFlag)); err != nil {
					return nil, err
				}
			}
			if addNodeCountFlag != "" {
				n, err := parseCountValue(addNodeCountFlag)
				if err != nil {
					return nil, err
				}
				if out, err = ops.UpdateNodeCount(out, newID, n, s); err != nil {
					return nil, err
				}
			}
			return out, nil
		})
		if err != nil {
			return err
		}
		fmt.Println(newID)
		return nil
	},
}

var addBranchCmd = &cobra.Command{
	Use:   "branch <file> [parent-id]",
	Short: "Split a node into parallel arms (default: the selection)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var armIDs []string
		err := mutateGraph(args[0], func(g *model.Graph, s model.Settings) (*model.Graph, error) {
			parent := g.SelectedID
			if len(args) == 2 {
				parent = args[1]
			}
			out, err := ops.AddBranch(g, parent, addBranchArms)
			if err != nil {
				return nil, err
			}
			kids := out.Nodes[parent].ChildIDs
			armIDs = append(armIDs, kids[len(kids)-addBranchArms:]...)
			return out, nil
		})
		if err != nil {
			return err
		}
		for _, id := range armIDs {
			fmt.Println(id)
		}
		return nil
	},
}

var addReasonCmd = &cobra.Command{
	Use:   "reason <file> [interval-id]",
	Short: "Add an exclusion reason on an interval (default: the selection)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var newID string
		err := mutateGraph(args[0], func(g *model.Graph, s model.Settings) (*model.Graph, error) {
			ivID := g.SelectedID
			if len(args) == 2 {
				ivID = args[1]
			}
			out, err := ops.AddExclusionReason(g, ivID)
			if err != nil {
				return nil, err
			}
			reasons := out.Intervals[ivID].Exclusion.Reasons
			newID = reasons[len(reasons)-1].ID
			if addReasonLabel != "" {
				if out, err = ops.UpdateExclusionReasonLabel(out, ivID, newID, addReasonLabel); err != nil {
					return nil, err
				}
			}
			if addReasonCount != "" {
				n, err := parseCountValue(addReasonCount)
				if err != nil {
					return nil, err
				}
				if out, err = ops.UpdateExclusionReasonCount(out, ivID, newID, n); err != nil {
					return nil, err
				}
			}
			return out, nil
		})
		if err != nil {
			return err
		}
		fmt.Println(newID)
		return nil
	},
}

var addPhaseCmd = &cobra.Command{
	Use:   "phase <file> <label>",
	Short: "Bracket a run of main-flow steps with a phase label",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var newID string
		err := mutateGraph(args[0], func(g *model.Graph, s model.Settings) (*model.Graph, error) {
			from, to := addPhaseFrom, addPhaseTo
			if from == "" {
				from = g.StartID
			}
			if to == "" {
				to = from
			}
			out, err := ops.AddPhase(g, args[1], from, to)
			if err != nil {
				return nil, err
			}
			newID = out.SelectedID
			return out, nil
		})
		if err != nil {
			return err
		}
		fmt.Println(newID)
		return nil
	},
}

func init() {
	addNodeCmd.Flags().StringVar(&addNodeTextFlag, "text", "", "text for the new step (\\n breaks lines)")
	addNodeCmd.Flags().StringVar(&addNodeCountFlag, "count", "", "count for the new step")
	addBranchCmd.Flags().IntVar(&addBranchArms, "arms", 2, "number of arms")
	addReasonCmd.Flags().StringVar(&addReasonLabel, "label", "", "reason text")
	addReasonCmd.Flags().StringVar(&addReasonCount, "count", "", "reason count")
	addPhaseCmd.Flags().StringVar(&addPhaseFrom, "from", "", "first main-flow node of the phase (default: start)")
	addPhaseCmd.Flags().StringVar(&addPhaseTo, "to", "", "last main-flow node of the phase (default: same as --from)")

	addCmd.AddCommand(addNodeCmd)
	addCmd.AddCommand(addBranchCmd)
	addCmd.AddCommand(addReasonCmd)
	addCmd.AddCommand(addPhaseCmd)
}
