package main

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"trialflow/pkg/engine"
	"trialflow/pkg/snapshot"
)

var (
	fmtWriteFlag bool
	fmtCopyFlag  bool
)

var fmtCmd = &cobra.Command{
	Use:     "fmt <file>",
	Short:   "Normalize a diagram file",
	GroupID: "maintenance",
	Long: `Fmt loads a diagram file, recomputes every derived count, and emits the
canonical JSON form. By default the result goes to stdout; -w rewrites the
file in place and --copy puts it on the system clipboard.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, s, err := snapshot.Load(args[0])
		if err != nil {
			return err
		}
		g = engine.Recompute(g, s)

		data, err := snapshot.Encode(g, s)
		if err != nil {
			return err
		}

		if fmtCopyFlag {
			if err := clipboard.WriteAll(string(data)); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}
		}
		if fmtWriteFlag {
			if err := os.WriteFile(args[0], data, 0o644); err != nil {
				return fmt.Errorf("failed to write snapshot file: %w", err)
			}
			return nil
		}
		if !fmtCopyFlag {
			fmt.Print(string(data))
		}
		return nil
	},
}

func init() {
	fmtCmd.Flags().BoolVarP(&fmtWriteFlag, "write", "w", false, "rewrite the file in place")
	fmtCmd.Flags().BoolVar(&fmtCopyFlag, "copy", false, "copy the normalized JSON to the clipboard")
}
