package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"trialflow/pkg/engine"
	"trialflow/pkg/snapshot"
)

// findEntry is one searchable item: a node's text or a phase's label.
type findEntry struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Text  string `json:"text"`
	Score int    `json:"score,omitempty"`
}

var findCmd = &cobra.Command{
	Use:     "find <file> <query>",
	Short:   "Fuzzy-search step texts and phase labels",
	GroupID: "inspection",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, s, err := snapshot.Load(args[0])
		if err != nil {
			return err
		}
		g = engine.Recompute(g, s)

		var entries []findEntry
		for _, id := range g.Descendants(g.StartID) {
			entries = append(entries, findEntry{
				ID:   id,
				Kind: "node",
				Text: strings.Join(g.Nodes[id].Lines, " / "),
			})
		}
		for _, ph := range g.Phases {
			entries = append(entries, findEntry{ID: ph.ID, Kind: "phase", Text: ph.Label})
		}

		targets := make([]string, len(entries))
		for i, e := range entries {
			targets[i] = e.Text
		}
		matches := fuzzy.Find(args[1], targets)

		if jsonOutput {
			hits := make([]findEntry, 0, len(matches))
			for _, m := range matches {
				e := entries[m.Index]
				e.Score = m.Score
				hits = append(hits, e)
			}
			data, err := json.MarshalIndent(hits, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode matches: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		if len(matches) == 0 {
			return fmt.Errorf("no match for %q", args[1])
		}

		hl := lipgloss.NewStyle()
		if shouldUseColor() {
			hl = hl.Bold(true).Underline(true)
		}
		for _, m := range matches {
			e := entries[m.Index]
			fmt.Printf("%s  %-8s  %s\n", e.ID, e.Kind, highlight(e.Text, m.MatchedIndexes, hl))
		}
		return nil
	},
}

// highlight styles the matched characters of a result line.
func highlight(text string, indexes []int, st lipgloss.Style) string {
	set := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		set[i] = true
	}
	var b strings.Builder
	for i, r := range text {
		if set[i] {
			b.WriteString(st.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
