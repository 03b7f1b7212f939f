package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"trialflow/pkg/model"
	"trialflow/pkg/ops"
	"trialflow/pkg/selection"
)

var selectCmd = &cobra.Command{
	Use:     "select <file> <id | up | down | left | right>",
	Short:   "Move the selection by id or direction",
	GroupID: "authoring",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var selected string
		var kind selection.EntityKind
		err := mutateGraph(args[0], func(g *model.Graph, s model.Settings) (*model.Graph, error) {
			target := args[1]
			if dir := selection.Direction(target); dir.IsValid() {
				target = selection.Navigate(g, dir)
			}
			out, err := ops.SetSelected(g, target)
			if err != nil {
				return nil, err
			}
			selected = out.SelectedID
			kind = selection.KindOf(out, selected)
			return out, nil
		})
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s)\n", selected, kind)
		return nil
	},
}
