// Package engine is the consistency core: it takes a graph with raw user
// edits applied and derives every computed field so that parent, child and
// exclusion counts agree. Mutation operations are not complete until a
// recompute has run.
//
// The engine is pure and total. It clones its input, never fails, and
// degrades to nil counts and zero deltas when data is incomplete.
package engine

import (
	"trialflow/pkg/layout"
	"trialflow/pkg/model"
)

// Recompute derives exclusion boxes, remainder reasons, branch auto-fill,
// linear inference and per-interval deltas, then lays the graph out. The
// input graph is never modified.
//
// Free edit suspends every rule that writes counts; exclusion upkeep, the
// remainder rule and delta computation still run so the numbers stay honest
// underneath the overrides.
func Recompute(g *model.Graph, s model.Settings) *model.Graph {
	out := g.Clone()

	// Parents top-down from the start node: a count inferred on a child is
	// visible when that child's own interval is processed.
	for _, parentID := range out.Descendants(out.StartID) {
		parent := out.Nodes[parentID]
		if parent == nil || len(parent.ChildIDs) == 0 {
			continue
		}
		if len(parent.ChildIDs) == 1 {
			recomputeLinear(out, parent, s)
		} else {
			recomputeBranch(out, parent, s)
		}
	}

	layout.Apply(out, s)
	return out
}

// recomputeLinear handles a single-child parent: the interval always owns an
// exclusion box, missing counts are inferred two-way, the remainder reason is
// maintained, and the delta balances parent against child plus exclusion.
func recomputeLinear(g *model.Graph, parent *model.BoxNode, s model.Settings) {
	iv := g.IntervalBetween(parent.ID, parent.ChildIDs[0])
	if iv == nil {
		return
	}
	child := g.Nodes[iv.ChildID]
	if child == nil {
		return
	}

	if iv.Exclusion == nil {
		iv.Exclusion = model.NewExclusionBox()
	}
	excl := iv.Exclusion

	if s.AutoCalc && !s.FreeEdit && parent.N != nil {
		switch {
		case excl.Total == nil && child.N != nil:
			// Only a positive difference is worth an exclusion row.
			if diff := *parent.N - *child.N; diff > 0 {
				excl.Total = &diff
			}
		case excl.Total != nil && child.N == nil:
			diff := *parent.N - *excl.Total
			child.N = &diff
		}
	}

	ensureOtherReason(excl)

	iv.Delta = orZero(parent.N) - (orZero(child.N) + orZero(excl.Total))
}

// recomputeBranch handles a multi-child parent: branch intervals carry no
// exclusions, an untouched group is split evenly, a single missing child is
// filled from the remainder, and the parent imbalance is broadcast to every
// sibling interval.
func recomputeBranch(g *model.Graph, parent *model.BoxNode, s model.Settings) {
	intervals := g.ChildIntervals(parent.ID)
	for _, iv := range intervals {
		iv.Exclusion = nil
	}

	if !s.FreeEdit {
		initializeBranchChildren(g, parent)
		if s.AutoCalc {
			fillMissingChild(g, parent)
		}
	}

	sum := 0
	for _, childID := range parent.ChildIDs {
		if child := g.Nodes[childID]; child != nil {
			sum += orZero(child.N)
		}
	}
	delta := orZero(parent.N) - sum
	for _, iv := range intervals {
		iv.Delta = delta
	}
}

// initializeBranchChildren distributes the parent count evenly the moment a
// branch exists and no child has a count yet: floor shares for everyone, one
// extra unit to the first n mod k children so the shares sum exactly to the
// parent. Any assigned child count disarms the rule for good.
func initializeBranchChildren(g *model.Graph, parent *model.BoxNode) {
	if parent.N == nil {
		return
	}

	children := make([]*model.BoxNode, 0, len(parent.ChildIDs))
	for _, childID := range parent.ChildIDs {
		child := g.Nodes[childID]
		if child == nil {
			return
		}
		if child.N != nil {
			return
		}
		children = append(children, child)
	}
	if len(children) < 2 {
		return
	}

	share := *parent.N / len(children)
	extra := *parent.N % len(children)
	for i, child := range children {
		v := share
		if i < extra {
			v++
		}
		child.N = &v
	}
}

// fillMissingChild assigns the remaining amount to the one child of a branch
// still without a count: parent minus the sum of every sibling's count plus
// the exclusion total on that sibling's interval. Negative remainders are
// not assigned.
func fillMissingChild(g *model.Graph, parent *model.BoxNode) {
	if parent.N == nil {
		return
	}

	var missing *model.BoxNode
	sum := 0
	for _, childID := range parent.ChildIDs {
		child := g.Nodes[childID]
		if child == nil {
			continue
		}
		if child.N == nil {
			if missing != nil {
				return
			}
			missing = child
			continue
		}
		sum += *child.N
		if iv := g.IntervalBetween(parent.ID, childID); iv != nil && iv.Exclusion != nil {
			sum += orZero(iv.Exclusion.Total)
		}
	}
	if missing == nil {
		return
	}

	if remainder := *parent.N - sum; remainder >= 0 {
		missing.N = &remainder
	}
}

// ensureOtherReason maintains the synthesized remainder row: present exactly
// when at least one user reason exists, the total is known, and the user
// reasons do not add up to it. The row keeps a customized label and always
// sits last.
func ensureOtherReason(excl *model.ExclusionBox) {
	label := model.AutoReasonLabel
	users := make([]model.ExclusionReason, 0, len(excl.Reasons))
	for _, r := range excl.Reasons {
		if r.Kind == model.ReasonAuto {
			label = r.Label
			continue
		}
		users = append(users, r)
	}
	excl.Reasons = users

	if len(users) == 0 || excl.Total == nil {
		return
	}
	remainder := *excl.Total - excl.UserSum()
	if remainder == 0 {
		return
	}

	excl.Reasons = append(excl.Reasons, model.ExclusionReason{
		ID:    model.AutoReasonID,
		Label: label,
		N:     &remainder,
		Kind:  model.ReasonAuto,
	})
}

// RebalanceAfterCountEdit forces the strict binary split after a direct count
// edit: with exactly two children under a counted parent, the sibling of the
// edited node becomes parent minus the edited value, floored at zero, and
// loses any free-edit override. Free edit bypasses it; groups of three or
// more fall back to the missing-child fill instead.
func RebalanceAfterCountEdit(g *model.Graph, editedID string, s model.Settings) {
	if s.FreeEdit {
		return
	}

	edited := g.Nodes[editedID]
	if edited == nil || edited.N == nil {
		return
	}
	parentID := g.ParentOf(editedID)
	if parentID == "" {
		return
	}
	parent := g.Nodes[parentID]
	if parent.N == nil || len(parent.ChildIDs) != 2 {
		return
	}

	for _, siblingID := range parent.ChildIDs {
		if siblingID == editedID {
			continue
		}
		sibling := g.Nodes[siblingID]
		if sibling == nil {
			continue
		}
		v := *parent.N - *edited.N
		if v < 0 {
			v = 0
		}
		sibling.N = &v
		sibling.CountOverride = ""
	}
}

func orZero(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
