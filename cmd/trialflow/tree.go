package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/spf13/cobra"

	"trialflow/pkg/count"
	"trialflow/pkg/engine"
	"trialflow/pkg/layout"
	"trialflow/pkg/model"
	"trialflow/pkg/snapshot"
)

var treeCmd = &cobra.Command{
	Use:     "tree <file>",
	Short:   "Show the flow as a tree with counts and deltas",
	GroupID: "inspection",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, s, err := snapshot.Load(args[0])
		if err != nil {
			return err
		}
		g = engine.Recompute(g, s)
		renderTree(os.Stdout, g, s, newTreeStyles(shouldUseColor()), terminalWidth())
		return nil
	},
}

// treeStyles holds the lipgloss styles of the tree view. The zero value
// renders plain text.
type treeStyles struct {
	node      lipgloss.Style
	count     lipgloss.Style
	phase     lipgloss.Style
	exclusion lipgloss.Style
	delta     lipgloss.Style
	marker    lipgloss.Style
}

func newTreeStyles(color bool) treeStyles {
	if !color {
		return treeStyles{}
	}
	return treeStyles{
		node:      lipgloss.NewStyle().Bold(true),
		count:     lipgloss.NewStyle().Faint(true),
		phase:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		exclusion: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		delta:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		marker:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
}

// renderTree writes the diagram as an indented tree. The main flow runs
// straight down; branches indent with connectors; exclusion boxes hang off
// the interval they sit on. Lines are truncated to the given width.
func renderTree(w io.Writer, g *model.Graph, s model.Settings, st treeStyles, width int) {
	phaseStarts := make(map[string][]model.PhaseBox)
	for _, ph := range g.Phases {
		phaseStarts[ph.StartNodeID] = append(phaseStarts[ph.StartNodeID], ph)
	}

	var walk func(id, linePrefix, childIndent string)
	walk = func(id, linePrefix, childIndent string) {
		node := g.Nodes[id]
		if node == nil {
			return
		}

		for _, ph := range phaseStarts[id] {
			line := childIndent + marker(st, g, ph.ID) + st.phase.Render("["+ph.Label+"]")
			writeLine(w, line, width)
		}

		line := linePrefix + marker(st, g, id) + st.node.Render(strings.Join(node.Lines, " / "))
		line += "  " + st.count.Render(count.Line(node.N, displayOverride(node, s), s.CountFormat))
		if iv := g.IntervalTo(id); iv != nil && iv.Delta != 0 {
			line += " " + st.delta.Render(fmt.Sprintf("%+d", iv.Delta))
		}
		writeLine(w, line, width)

		kids := node.ChildIDs
		switch {
		case len(kids) == 1:
			if iv := g.IntervalBetween(id, kids[0]); iv != nil {
				writeExclusion(w, g, s, st, iv, childIndent+"│ ", width)
			}
			walk(kids[0], childIndent, childIndent)
		case len(kids) > 1:
			for i, child := range kids {
				conn, cont := "├─ ", "│  "
				if i == len(kids)-1 {
					conn, cont = "└─ ", "   "
				}
				walk(child, childIndent+conn, childIndent+cont)
			}
		}
	}
	walk(g.StartID, "", "")
}

// writeExclusion prints an interval's exclusion box under a gutter prefix,
// reusing the renderer's display lines.
func writeExclusion(w io.Writer, g *model.Graph, s model.Settings, st treeStyles, iv *model.Interval, prefix string, width int) {
	if !layout.VisibleExclusion(iv.Exclusion) {
		return
	}
	lines, countIdx := layout.ExclusionDisplayLines(iv.Exclusion, s)
	for i, line := range lines {
		out := prefix
		if i == 0 {
			out += marker(st, g, iv.ID)
		} else {
			out += "  "
		}
		if i <= countIdx {
			out += st.exclusion.Render(line)
		} else {
			out += line
		}
		writeLine(w, out, width)
	}
}

func marker(st treeStyles, g *model.Graph, id string) string {
	if id == g.SelectedID {
		return st.marker.Render("▶ ")
	}
	return ""
}

// displayOverride returns the free-edit override to show for a node, empty
// outside free edit mode.
func displayOverride(n *model.BoxNode, s model.Settings) string {
	if s.FreeEdit {
		return n.CountOverride
	}
	return ""
}

func writeLine(w io.Writer, line string, width int) {
	if width > 0 {
		line = truncate.String(line, uint(width))
	}
	fmt.Fprintln(w, line)
}
