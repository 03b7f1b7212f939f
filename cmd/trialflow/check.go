package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"trialflow/pkg/analysis"
	"trialflow/pkg/engine"
	"trialflow/pkg/snapshot"
)

// checkResult is the outcome of validating one diagram file.
type checkResult struct {
	Path       string   `json:"path"`
	Error      string   `json:"error,omitempty"`
	Nodes      int      `json:"nodes"`
	Imbalanced []string `json:"imbalanced,omitempty"`
}

func (r checkResult) ok(strict bool) bool {
	if r.Error != "" {
		return false
	}
	return !strict || len(r.Imbalanced) == 0
}

var checkStrictFlag bool

var checkCmd = &cobra.Command{
	Use:     "check <file>...",
	Short:   "Validate diagram files and report count imbalances",
	GroupID: "inspection",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results := make([]checkResult, len(args))
		var eg errgroup.Group
		for i, path := range args {
			eg.Go(func() error {
				results[i] = checkFile(path)
				return nil
			})
		}
		eg.Wait()

		if jsonOutput {
			data, err := json.MarshalIndent(results, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode results: %w", err)
			}
			fmt.Println(string(data))
		} else {
			printCheckResults(results)
		}

		failed := 0
		for _, r := range results {
			if !r.ok(checkStrictFlag) {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, len(results))
		}
		return nil
	},
}

// checkFile loads, validates, and recomputes one file, collecting the
// intervals whose counts still disagree afterwards.
func checkFile(path string) checkResult {
	r := checkResult{Path: path}

	g, s, err := snapshot.Load(path)
	if err != nil {
		r.Error = err.Error()
		return r
	}

	g = engine.Recompute(g, s)
	r.Nodes = len(g.Nodes)
	r.Imbalanced = analysis.Summarize(g).Imbalanced
	return r
}

func printCheckResults(results []checkResult) {
	for _, r := range results {
		switch {
		case r.Error != "":
			fmt.Fprintf(os.Stderr, "%s: %s\n", r.Path, r.Error)
		case len(r.Imbalanced) > 0:
			fmt.Printf("%s: %d nodes, %d imbalanced intervals\n", r.Path, r.Nodes, len(r.Imbalanced))
			for _, id := range r.Imbalanced {
				fmt.Printf("  %s\n", id)
			}
		default:
			fmt.Printf("%s: ok (%d nodes)\n", r.Path, r.Nodes)
		}
	}
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrictFlag, "strict", false, "treat count imbalances as failures")
}
