package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"trialflow/pkg/analysis"
	"trialflow/pkg/engine"
	"trialflow/pkg/snapshot"
)

var (
	reportRenderFlag bool
	reportOutputFlag string
)

var reportCmd = &cobra.Command{
	Use:     "report <file>",
	Short:   "Write a markdown attrition report",
	GroupID: "inspection",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, s, err := snapshot.Load(args[0])
		if err != nil {
			return err
		}
		g = engine.Recompute(g, s)
		md := analysis.Report(g, s)

		if reportOutputFlag != "" {
			if err := os.WriteFile(reportOutputFlag, []byte(md), 0o644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			return nil
		}

		if !reportRenderFlag {
			fmt.Print(md)
			return nil
		}

		style := glamour.WithAutoStyle()
		if !shouldUseColor() {
			style = glamour.WithStandardStyle("notty")
		}
		r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(terminalWidth()))
		if err != nil {
			return fmt.Errorf("failed to build renderer: %w", err)
		}
		out, err := r.Render(md)
		if err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	reportCmd.Flags().BoolVar(&reportRenderFlag, "render", false, "render the markdown for the terminal")
	reportCmd.Flags().StringVarP(&reportOutputFlag, "output", "o", "", "write the report to a file instead of stdout")
}
