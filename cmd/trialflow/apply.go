package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"trialflow/pkg/engine"
	"trialflow/pkg/history"
	"trialflow/pkg/model"
	"trialflow/pkg/ops"
	"trialflow/pkg/selection"
	"trialflow/pkg/snapshot"
)

// scriptOp is one step of an apply script. Op selects the operation; the
// remaining fields carry its arguments. An empty ID means the current
// selection.
type scriptOp struct {
	Op     string `json:"op"`
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason,omitempty"`
	Text   string `json:"text,omitempty"`
	Label  string `json:"label,omitempty"`
	Value  string `json:"value,omitempty"`
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
	Dir    string `json:"dir,omitempty"`
	Arms   int    `json:"arms,omitempty"`
}

var applyKeepGoing bool

var applyCmd = &cobra.Command{
	Use:     "apply <file> <script.json>",
	Short:   "Run a batch of edits from a script file",
	GroupID: "authoring",
	Long: `Apply reads a JSON array of operations and runs them in order against
the diagram file. Each step is recomputed before the next one runs, and
undo/redo steps walk the in-script edit history. The file is written only
when the whole script succeeds; a failing step aborts it untouched unless
--keep-going is set.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("failed to read script: %w", err)
		}
		var script []scriptOp
		if err := json.Unmarshal(data, &script); err != nil {
			return fmt.Errorf("failed to parse script: %w", err)
		}

		g, s, err := snapshot.Load(args[0])
		if err != nil {
			return err
		}

		g, s, applied, err := runScript(g, s, script, applyKeepGoing)
		if err != nil {
			return err
		}

		if err := snapshot.Save(args[0], g, s); err != nil {
			return err
		}
		fmt.Printf("Applied %d of %d steps to %s\n", applied, len(script), args[0])
		return nil
	},
}

// runScript plays a script against a graph. Every mutating step pushes the
// prior state, so in-script undo and redo walk real history. Returns the
// final state and the number of steps that took effect.
func runScript(g *model.Graph, s model.Settings, script []scriptOp, keepGoing bool) (*model.Graph, model.Settings, int, error) {
	log := history.New()
	applied := 0

	for i, op := range script {
		switch op.Op {
		case "undo":
			if prev, ok := log.Undo(g); ok {
				g = prev
				applied++
			}
			continue
		case "redo":
			if next, ok := log.Redo(g); ok {
				g = next
				applied++
			}
			continue
		}

		next, ns, err := applyOp(g, s, op)
		if err != nil {
			if keepGoing {
				slog.Warn("script step failed", "step", i+1, "op", op.Op, "error", err)
				continue
			}
			return nil, s, 0, fmt.Errorf("step %d (%s): %w", i+1, op.Op, err)
		}

		log.Push(g)
		g = engine.Recompute(next, ns)
		s = ns
		applied++
	}

	return g, s, applied, nil
}

// applyOp dispatches one script operation. It returns the replacement graph
// and settings without recomputing.
func applyOp(g *model.Graph, s model.Settings, op scriptOp) (*model.Graph, model.Settings, error) {
	id := targetID(g, op.ID)

	var (
		out *model.Graph
		err error
	)

	switch op.Op {
	case "select":
		out, err = ops.SetSelected(g, op.ID)
	case "navigate":
		dir := selection.Direction(op.Dir)
		if !dir.IsValid() {
			return nil, s, fmt.Errorf("unknown direction %q", op.Dir)
		}
		out, err = ops.SetSelected(g, selection.Navigate(g, dir))
	case "add-node":
		out, err = ops.AddNodeBelow(g, id)
	case "add-branch":
		arms := op.Arms
		if arms == 0 {
			arms = 2
		}
		out, err = ops.AddBranch(g, id, arms)
	case "add-reason":
		out, err = ops.AddExclusionReason(g, id)
	case "add-phase":
		from, to := op.From, op.To
		if from == "" {
			from = g.StartID
		}
		if to == "" {
			to = from
		}
		out, err = ops.AddPhase(g, op.Label, from, to)
	case "remove-node":
		out, err = ops.RemoveNode(g, id)
	case "remove-reason":
		out, err = ops.RemoveExclusionReason(g, id, op.Reason)
	case "remove-phase":
		out, err = ops.RemovePhase(g, id)
	case "set-text":
		out, err = ops.UpdateNodeText(g, id, splitLines(op.Text))
	case "set-count":
		if s.FreeEdit {
			out, err = ops.UpdateNodeCountFree(g, id, op.Value)
			break
		}
		var n *int
		if n, err = parseCountValue(op.Value); err == nil {
			out, err = ops.UpdateNodeCount(g, id, n, s)
		}
	case "set-exclusion-total":
		if s.FreeEdit {
			out, err = ops.UpdateExclusionCountFree(g, id, op.Value)
			break
		}
		var n *int
		if n, err = parseCountValue(op.Value); err == nil {
			out, err = ops.UpdateExclusionCount(g, id, n)
		}
	case "set-exclusion-label":
		out, err = ops.UpdateExclusionLabel(g, id, op.Label)
	case "set-reason-count":
		if s.FreeEdit {
			out, err = ops.UpdateExclusionReasonCountFree(g, id, op.Reason, op.Value)
			break
		}
		var n *int
		if n, err = parseCountValue(op.Value); err == nil {
			out, err = ops.UpdateExclusionReasonCount(g, id, op.Reason, n)
		}
	case "set-reason-label":
		out, err = ops.UpdateExclusionReasonLabel(g, id, op.Reason, op.Label)
	case "set-label":
		out, err = ops.UpdatePhaseLabel(g, id, op.Label)
	case "set-phase-bounds":
		out, err = ops.UpdatePhaseBounds(g, id, op.From, op.To)
	case "toggle-arrow":
		out, err = ops.ToggleArrow(g, id, s)
	case "toggle-arrows":
		s.ArrowsGlobal = !s.ArrowsGlobal
		out = g
	case "toggle-autocalc":
		s.AutoCalc = !s.AutoCalc
		out = g
	case "toggle-freeedit":
		s.FreeEdit = !s.FreeEdit
		out = g
	case "toggle-format":
		if s.CountFormat == model.FormatUpper {
			s.CountFormat = model.FormatParenthetical
		} else {
			s.CountFormat = model.FormatUpper
		}
		out = g
	default:
		return nil, s, fmt.Errorf("unknown op %q", op.Op)
	}

	if err != nil {
		return nil, s, err
	}
	return out, s, nil
}

func init() {
	applyCmd.Flags().BoolVar(&applyKeepGoing, "keep-going", false, "skip failing steps instead of aborting")
}
