// Package ops contains the atomic mutation operations of the flow editor.
// Every operation is a pure transition: it validates its ids against the
// input graph, clones, applies the raw edit and returns the new graph. No
// operation recomputes derived fields; callers run engine.Recompute on the
// result before treating it as current.
package ops

import (
	"errors"
	"fmt"

	"trialflow/pkg/idgen"
	"trialflow/pkg/model"
)

// ErrNotFound reports an operation aimed at an id that does not resolve.
// It indicates a caller bug; the prior graph is left untouched.
var ErrNotFound = errors.New("not found")

// DefaultNodeText is the placeholder text of a freshly added node.
const DefaultNodeText = "New step"

// NewGraph creates a fresh single-node document with a generated start id.
func NewGraph() (*model.Graph, error) {
	id, err := idgen.Node()
	if err != nil {
		return nil, err
	}
	return model.NewGraph(id), nil
}

func nodeNotFound(id string) error {
	return fmt.Errorf("node %s: %w", id, ErrNotFound)
}

func intervalNotFound(id string) error {
	return fmt.Errorf("interval %s: %w", id, ErrNotFound)
}

func reasonNotFound(id string) error {
	return fmt.Errorf("reason %s: %w", id, ErrNotFound)
}

func phaseNotFound(id string) error {
	return fmt.Errorf("phase %s: %w", id, ErrNotFound)
}

func entityNotFound(id string) error {
	return fmt.Errorf("entity %s: %w", id, ErrNotFound)
}

func copyInt(n *int) *int {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}
