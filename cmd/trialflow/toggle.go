package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"trialflow/pkg/model"
	"trialflow/pkg/ops"
)

var toggleCmd = &cobra.Command{
	Use:     "toggle <switch>",
	Short:   "Flip arrows, calculation mode, or count style",
	GroupID: "authoring",
}

var toggleArrowCmd = &cobra.Command{
	Use:   "arrow <file> [interval-id]",
	Short: "Flip one interval's arrow (default: the selection)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateGraph(args[0], func(g *model.Graph, s model.Settings) (*model.Graph, error) {
			id := g.SelectedID
			if len(args) == 2 {
				id = args[1]
			}
			return ops.ToggleArrow(g, id, s)
		})
	},
}

var toggleArrowsCmd = &cobra.Command{
	Use:   "arrows <file>",
	Short: "Flip the global arrow default",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleSetting(args[0], func(s *model.Settings) string {
			s.ArrowsGlobal = !s.ArrowsGlobal
			return fmt.Sprintf("arrows: %s", onOff(s.ArrowsGlobal))
		})
	},
}

var toggleAutoCalcCmd = &cobra.Command{
	Use:   "autocalc <file>",
	Short: "Flip automatic count inference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleSetting(args[0], func(s *model.Settings) string {
			s.AutoCalc = !s.AutoCalc
			return fmt.Sprintf("autocalc: %s", onOff(s.AutoCalc))
		})
	},
}

var toggleFreeEditCmd = &cobra.Command{
	Use:   "freeedit <file>",
	Short: "Flip free-form count editing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleSetting(args[0], func(s *model.Settings) string {
			s.FreeEdit = !s.FreeEdit
			return fmt.Sprintf("freeedit: %s", onOff(s.FreeEdit))
		})
	},
}

var toggleFormatCmd = &cobra.Command{
	Use:   "format <file>",
	Short: "Switch between N = 1 234 and (n = 1 234)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleSetting(args[0], func(s *model.Settings) string {
			if s.CountFormat == model.FormatUpper {
				s.CountFormat = model.FormatParenthetical
			} else {
				s.CountFormat = model.FormatUpper
			}
			return fmt.Sprintf("format: %s", s.CountFormat)
		})
	},
}

// toggleSetting flips one settings field in a diagram file and prints the
// resulting state.
func toggleSetting(path string, flip func(s *model.Settings) string) error {
	var state string
	err := mutateProject(path, func(g *model.Graph, s model.Settings) (*model.Graph, model.Settings, error) {
		state = flip(&s)
		return g, s, nil
	})
	if err != nil {
		return err
	}
	fmt.Println(state)
	return nil
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func init() {
	toggleCmd.AddCommand(toggleArrowCmd)
	toggleCmd.AddCommand(toggleArrowsCmd)
	toggleCmd.AddCommand(toggleAutoCalcCmd)
	toggleCmd.AddCommand(toggleFreeEditCmd)
	toggleCmd.AddCommand(toggleFormatCmd)
}
