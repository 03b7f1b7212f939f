package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	jsonOutput bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "trialflow <command>",
	Short: "CONSORT-style patient flow diagrams from the command line",
	Long: `trialflow builds and checks participant flow diagrams for clinical
trial reports. A diagram lives in a single JSON file; every command loads
the file, applies one change or inspection, recomputes the counts, and
writes the result back.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug detail to stderr")

	rootCmd.AddGroup(
		&cobra.Group{ID: "authoring", Title: "Authoring:"},
		&cobra.Group{ID: "inspection", Title: "Inspection:"},
		&cobra.Group{ID: "maintenance", Title: "Maintenance:"},
	)

	cobra.EnableCommandSorting = false

	// Authoring
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(applyCmd)

	// Inspection
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(watchCmd)

	// Maintenance
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
