package main

import (
	"github.com/spf13/cobra"

	"trialflow/pkg/model"
	"trialflow/pkg/ops"
)

var removeCmd = &cobra.Command{
	Use:     "remove <entity>",
	Short:   "Remove a step, exclusion reason, or phase",
	GroupID: "authoring",
}

var removeNodeCmd = &cobra.Command{
	Use:   "node <file> [node-id]",
	Short: "Remove a step and its whole subtree (default: the selection)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateGraph(args[0], func(g *model.Graph, s model.Settings) (*model.Graph, error) {
			id := g.SelectedID
			if len(args) == 2 {
				id = args[1]
			}
			return ops.RemoveNode(g, id)
		})
	},
}

var removeReasonCmd = &cobra.Command{
	Use:   "reason <file> <interval-id> <reason-id>",
	Short: "Remove one exclusion reason",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateGraph(args[0], func(g *model.Graph, s model.Settings) (*model.Graph, error) {
			return ops.RemoveExclusionReason(g, args[1], args[2])
		})
	},
}

var removePhaseCmd = &cobra.Command{
	Use:   "phase <file> [phase-id]",
	Short: "Remove a phase bracket (default: the selection)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateGraph(args[0], func(g *model.Graph, s model.Settings) (*model.Graph, error) {
			id := g.SelectedID
			if len(args) == 2 {
				id = args[1]
			}
			return ops.RemovePhase(g, id)
		})
	},
}

func init() {
	removeCmd.AddCommand(removeNodeCmd)
	removeCmd.AddCommand(removeReasonCmd)
	removeCmd.AddCommand(removePhaseCmd)
}
