package main

import (
	"github.com/spf13/cobra"

	"trialflow/pkg/model"
	"trialflow/pkg/ops"
)

var setCmd = &cobra.Command{
	Use:     "set <field>",
	Short:   "Edit texts, counts, and labels",
	GroupID: "authoring",
}

var (
	setIDFlag     string
	setReasonFlag string
	setFromFlag   string
	setToFlag     string
)

var setTextCmd = &cobra.Command{
	Use:   "text <file> <text>",
	Short: "Set a step's text (\\n breaks lines)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateGraph(args[0], func(g *model.Graph, s model.Settings) (*model.Graph, error) {
			return ops.UpdateNodeText(g, targetID(g, setIDFlag), splitLines(args[1]))
		})
	},
}

var setCountCmd = &cobra.Command{
	Use:   "count <file> <value>",
	Short: "Set a step's count (- clears it)",
	Long: `Set a step's count. In free edit mode the raw text is kept verbatim and
shown in place of the formatted count; otherwise the value must be a
number and the surrounding counts rebalance.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateGraph(args[0], func(g *model.Graph, s model.Settings) (*model.Graph, error) {
			id := targetID(g, setIDFlag)
			if s.FreeEdit {
				return ops.UpdateNodeCountFree(g, id, args[1])
			}
			n, err := parseCountValue(args[1])
			if err != nil {
				return nil, err
			}
			return ops.UpdateNodeCount(g, id, n, s)
		})
	},
}

var setExclusionTotalCmd = &cobra.Command{
	Use:   "exclusion-total <file> <value>",
	Short: "Set the excluded total on an interval (- clears it)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateGraph(args[0], func(g *model.Graph, s model.Settings) (*model.Graph, error) {
			id := targetID(g, setIDFlag)
			if s.FreeEdit {
				return ops.UpdateExclusionCountFree(g, id, args[1])
			}
			n, err := parseCountValue(args[1])
			if err != nil {
				return nil, err
			}
			return ops.UpdateExclusionCount(g, id, n)
		})
	},
}

var setExclusionLabelCmd = &cobra.Command{
	Use:   "exclusion-label <file> <label>",
	Short: "Set the exclusion box heading on an interval",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateGraph(args[0], func(g *model.Graph, s model.Settings) (*model.Graph, error) {
			return ops.UpdateExclusionLabel(g, targetID(g, setIDFlag), args[1])
		})
	},
}

var setReasonCountCmd = &cobra.Command{
	Use:   "reason-count <file> <value>",
	Short: "Set one exclusion reason's count (- clears it)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateGraph(args[0], func(g *model.Graph, s model.Settings) (*model.Graph, error) {
			id := targetID(g, setIDFlag)
			if s.FreeEdit {
				return ops.UpdateExclusionReasonCountFree(g, id, setReasonFlag, args[1])
			}
			n, err := parseCountValue(args[1])
			if err != nil {
				return nil, err
			}
			return ops.UpdateExclusionReasonCount(g, id, setReasonFlag, n)
		})
	},
}

var setReasonLabelCmd = &cobra.Command{
	Use:   "reason-label <file> <label>",
	Short: "Set one exclusion reason's text",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateGraph(args[0], func(g *model.Graph, s model.Settings) (*model.Graph, error) {
			return ops.UpdateExclusionReasonLabel(g, targetID(g, setIDFlag), setReasonFlag, args[1])
		})
	},
}

var setLabelCmd = &cobra.Command{
	Use:   "label <file> <label>",
	Short: "Set a phase's label",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateGraph(args[0], func(g *model.Graph, s model.Settings) (*model.Graph, error) {
			return ops.UpdatePhaseLabel(g, targetID(g, setIDFlag), args[1])
		})
	},
}

var setPhaseBoundsCmd = &cobra.Command{
	Use:   "phase-bounds <file>",
	Short: "Move a phase's start and end nodes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateGraph(args[0], func(g *model.Graph, s model.Settings) (*model.Graph, error) {
			return ops.UpdatePhaseBounds(g, targetID(g, setIDFlag), setFromFlag, setToFlag)
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{
		setTextCmd, setCountCmd, setExclusionTotalCmd, setExclusionLabelCmd,
		setReasonCountCmd, setReasonLabelCmd, setLabelCmd, setPhaseBoundsCmd,
	} {
		c.Flags().StringVar(&setIDFlag, "id", "", "entity to edit (default: the selection)")
		setCmd.AddCommand(c)
	}
	setReasonCountCmd.Flags().StringVar(&setReasonFlag, "reason", "", "reason id")
	setReasonCountCmd.MarkFlagRequired("reason")
	setReasonLabelCmd.Flags().StringVar(&setReasonFlag, "reason", "", "reason id")
	setReasonLabelCmd.MarkFlagRequired("reason")
	setPhaseBoundsCmd.Flags().StringVar(&setFromFlag, "from", "", "first main-flow node")
	setPhaseBoundsCmd.Flags().StringVar(&setToFlag, "to", "", "last main-flow node")
	setPhaseBoundsCmd.MarkFlagRequired("from")
	setPhaseBoundsCmd.MarkFlagRequired("to")
}
