package ops

import (
	"trialflow/pkg/count"
	"trialflow/pkg/idgen"
	"trialflow/pkg/model"
)

// exclusionOn returns the interval's exclusion box, creating a default one
// when absent. Raw edits may target an interval that has not been through a
// recompute yet; the engine later clears boxes that branches cannot keep.
func exclusionOn(iv *model.Interval) *model.ExclusionBox {
	if iv.Exclusion == nil {
		iv.Exclusion = model.NewExclusionBox()
	}
	return iv.Exclusion
}

// UpdateExclusionLabel sets the label of an interval's exclusion box.
func UpdateExclusionLabel(g *model.Graph, intervalID, label string) (*model.Graph, error) {
	if _, ok := g.Intervals[intervalID]; !ok {
		return nil, intervalNotFound(intervalID)
	}

	out := g.Clone()
	exclusionOn(out.Intervals[intervalID]).Label = label

	return out, nil
}

// UpdateExclusionCount sets the total of an interval's exclusion box.
func UpdateExclusionCount(g *model.Graph, intervalID string, n *int) (*model.Graph, error) {
	if _, ok := g.Intervals[intervalID]; !ok {
		return nil, intervalNotFound(intervalID)
	}

	out := g.Clone()
	exclusionOn(out.Intervals[intervalID]).Total = copyInt(n)

	return out, nil
}

// UpdateExclusionCountFree stores free-form total text on an exclusion box,
// with the numeric total following the text when it parses.
func UpdateExclusionCountFree(g *model.Graph, intervalID, raw string) (*model.Graph, error) {
	if _, ok := g.Intervals[intervalID]; !ok {
		return nil, intervalNotFound(intervalID)
	}

	out := g.Clone()
	excl := exclusionOn(out.Intervals[intervalID])
	excl.TotalOverride = raw
	excl.Total = count.Parse(raw)

	return out, nil
}

// AddExclusionReason appends a new user reason with placeholder text to an
// interval's exclusion box.
func AddExclusionReason(g *model.Graph, intervalID string) (*model.Graph, error) {
	if _, ok := g.Intervals[intervalID]; !ok {
		return nil, intervalNotFound(intervalID)
	}

	reasonID, err := idgen.Reason()
	if err != nil {
		return nil, err
	}

	out := g.Clone()
	excl := exclusionOn(out.Intervals[intervalID])
	excl.Reasons = append(excl.Reasons, model.ExclusionReason{
		ID:    reasonID,
		Label: "Reason",
		Kind:  model.ReasonUser,
	})

	return out, nil
}

// findReason returns the index of a reason in the box, or -1.
func findReason(excl *model.ExclusionBox, reasonID string) int {
	for i := range excl.Reasons {
		if excl.Reasons[i].ID == reasonID {
			return i
		}
	}
	return -1
}

// UpdateExclusionReasonLabel sets a user reason's label. The synthesized
// remainder reason is not directly editable; edits to it return the input
// graph unchanged.
func UpdateExclusionReasonLabel(g *model.Graph, intervalID, reasonID, label string) (*model.Graph, error) {
	iv, ok := g.Intervals[intervalID]
	if !ok {
		return nil, intervalNotFound(intervalID)
	}
	if iv.Exclusion == nil {
		return nil, reasonNotFound(reasonID)
	}
	idx := findReason(iv.Exclusion, reasonID)
	if idx < 0 {
		return nil, reasonNotFound(reasonID)
	}
	if iv.Exclusion.Reasons[idx].Kind == model.ReasonAuto {
		return g, nil
	}

	out := g.Clone()
	out.Intervals[intervalID].Exclusion.Reasons[idx].Label = label

	return out, nil
}

// UpdateExclusionReasonCount sets a user reason's count. Edits aimed at the
// synthesized remainder reason return the input graph unchanged.
func UpdateExclusionReasonCount(g *model.Graph, intervalID, reasonID string, n *int) (*model.Graph, error) {
	iv, ok := g.Intervals[intervalID]
	if !ok {
		return nil, intervalNotFound(intervalID)
	}
	if iv.Exclusion == nil {
		return nil, reasonNotFound(reasonID)
	}
	idx := findReason(iv.Exclusion, reasonID)
	if idx < 0 {
		return nil, reasonNotFound(reasonID)
	}
	if iv.Exclusion.Reasons[idx].Kind == model.ReasonAuto {
		return g, nil
	}

	out := g.Clone()
	out.Intervals[intervalID].Exclusion.Reasons[idx].N = copyInt(n)

	return out, nil
}

// UpdateExclusionReasonCountFree stores free-form count text on a reason.
// This is the one edit the remainder reason accepts: its override text is
// settable while its numeric value stays derived.
func UpdateExclusionReasonCountFree(g *model.Graph, intervalID, reasonID, raw string) (*model.Graph, error) {
	iv, ok := g.Intervals[intervalID]
	if !ok {
		return nil, intervalNotFound(intervalID)
	}
	if iv.Exclusion == nil {
		return nil, reasonNotFound(reasonID)
	}
	idx := findReason(iv.Exclusion, reasonID)
	if idx < 0 {
		return nil, reasonNotFound(reasonID)
	}

	out := g.Clone()
	reason := &out.Intervals[intervalID].Exclusion.Reasons[idx]
	reason.CountOverride = raw
	if reason.Kind == model.ReasonUser {
		reason.N = count.Parse(raw)
	}

	return out, nil
}

// RemoveExclusionReason deletes a user reason from an interval's exclusion
// box. The synthesized remainder reason cannot be removed; attempts return
// the input graph unchanged.
func RemoveExclusionReason(g *model.Graph, intervalID, reasonID string) (*model.Graph, error) {
	iv, ok := g.Intervals[intervalID]
	if !ok {
		return nil, intervalNotFound(intervalID)
	}
	if iv.Exclusion == nil {
		return nil, reasonNotFound(reasonID)
	}
	idx := findReason(iv.Exclusion, reasonID)
	if idx < 0 {
		return nil, reasonNotFound(reasonID)
	}
	if iv.Exclusion.Reasons[idx].Kind == model.ReasonAuto {
		return g, nil
	}

	out := g.Clone()
	excl := out.Intervals[intervalID].Exclusion
	excl.Reasons = append(excl.Reasons[:idx], excl.Reasons[idx+1:]...)

	return out, nil
}
