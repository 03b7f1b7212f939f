package layout

import (
	"trialflow/pkg/count"
	"trialflow/pkg/model"
)

// Display helpers produce the final text a renderer draws inside a box:
// wrapped body lines plus the formatted count line. Free-edit overrides are
// shown only while free edit is on; the stored numbers are untouched either
// way.

// NodeDisplayLines returns a node's wrapped text followed by its count line.
func (c Config) NodeDisplayLines(n *model.BoxNode, s model.Settings) []string {
	lines := WrapAll(n.Lines, c.MainColumns)
	override := ""
	if s.FreeEdit {
		override = n.CountOverride
	}
	return append(lines, count.Line(n.N, override, s.CountFormat))
}

// NodeDisplayLines renders with the default geometry.
func NodeDisplayLines(n *model.BoxNode, s model.Settings) []string {
	return DefaultConfig().NodeDisplayLines(n, s)
}

// ExclusionDisplayLines returns an exclusion box's display lines and the
// index of the emphasized count line, or -1 when the box has no count line.
// The count line appears whenever the box carries a total, a visible
// override, or any reasons; a bare labeled box stays label-only.
func (c Config) ExclusionDisplayLines(e *model.ExclusionBox, s model.Settings) ([]string, int) {
	lines := Wrap(e.Label, c.ExclusionColumns)

	totalOverride := ""
	if s.FreeEdit {
		totalOverride = e.TotalOverride
	}

	countIdx := -1
	if e.Total != nil || totalOverride != "" || len(e.Reasons) > 0 {
		countIdx = len(lines)
		lines = append(lines, count.Line(e.Total, totalOverride, s.CountFormat))
	}

	for _, r := range e.Reasons {
		override := ""
		if s.FreeEdit {
			override = r.CountOverride
		}
		value := count.Format(r.N)
		if override != "" {
			value = override
		}
		lines = append(lines, Wrap(r.Label+": "+value, c.ExclusionColumns)...)
	}

	return lines, countIdx
}

// ExclusionDisplayLines renders with the default geometry.
func ExclusionDisplayLines(e *model.ExclusionBox, s model.Settings) ([]string, int) {
	return DefaultConfig().ExclusionDisplayLines(e, s)
}

// VisibleExclusion reports whether an exclusion box carries anything worth
// rendering: a customized label, a total, an override, or any reason.
func VisibleExclusion(e *model.ExclusionBox) bool {
	if e == nil {
		return false
	}
	return e.Label != model.DefaultExclusionLabel ||
		e.Total != nil ||
		e.TotalOverride != "" ||
		len(e.Reasons) > 0
}
