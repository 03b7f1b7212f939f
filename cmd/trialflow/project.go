package main

import (
	"fmt"
	"log/slog"
	"strings"

	"trialflow/pkg/count"
	"trialflow/pkg/engine"
	"trialflow/pkg/model"
	"trialflow/pkg/snapshot"
)

// mutateProject loads a diagram file, applies one change, recomputes the
// counts, and writes the file back. The callback receives the loaded graph
// and settings and returns the replacement pair.
func mutateProject(path string, fn func(g *model.Graph, s model.Settings) (*model.Graph, model.Settings, error)) error {
	g, s, err := snapshot.Load(path)
	if err != nil {
		return err
	}
	slog.Debug("loaded project", "path", path, "nodes", len(g.Nodes))

	next, ns, err := fn(g, s)
	if err != nil {
		return err
	}
	next = engine.Recompute(next, ns)

	if err := snapshot.Save(path, next, ns); err != nil {
		return err
	}
	slog.Debug("saved project", "path", path, "nodes", len(next.Nodes))
	return nil
}

// mutateGraph is mutateProject for changes that leave the settings alone.
func mutateGraph(path string, fn func(g *model.Graph, s model.Settings) (*model.Graph, error)) error {
	return mutateProject(path, func(g *model.Graph, s model.Settings) (*model.Graph, model.Settings, error) {
		next, err := fn(g, s)
		return next, s, err
	})
}

// parseCountValue turns a command-line count argument into the engine's
// nil-able count. "-" and the empty string clear the count; anything else
// must parse as a non-negative number, group separators allowed.
func parseCountValue(raw string) (*int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "-" {
		return nil, nil
	}
	n := count.Parse(trimmed)
	if n == nil {
		return nil, fmt.Errorf("invalid count %q (use digits, or - to clear)", raw)
	}
	return n, nil
}

// splitLines converts a flag value into node text lines. Literal newlines
// and the two-character sequence \n both break lines.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, `\n`, "\n")
	return strings.Split(text, "\n")
}

// targetID resolves the entity a command operates on: the --id flag when
// given, the current selection otherwise.
func targetID(g *model.Graph, flagID string) string {
	if flagID != "" {
		return flagID
	}
	return g.SelectedID
}
