// Package count implements the display contract for patient counts: thousands
// grouping with a single separator, a dash placeholder for missing values,
// and the two count-line styles.
package count

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"trialflow/pkg/model"
)

// GroupSeparator sits between three-digit groups.
const GroupSeparator = " "

// Placeholder is rendered for a missing count.
const Placeholder = "—"

// Format renders a nullable count as a grouped number, or the placeholder.
func Format(n *int) string {
	if n == nil {
		return Placeholder
	}
	return strings.ReplaceAll(humanize.Comma(int64(*n)), ",", GroupSeparator)
}

// Line renders the full count line of a box. A non-empty override replaces
// the formatted number verbatim; the style prefix stays.
func Line(n *int, override string, format model.CountFormat) string {
	body := Format(n)
	if override != "" {
		body = override
	}
	if format == model.FormatParenthetical {
		return "(n = " + body + ")"
	}
	return "N = " + body
}

// Parse recovers a count from display text. The style prefix, parentheses and
// group separators are stripped first. The placeholder, empty input, and
// non-numeric text all yield nil.
func Parse(s string) *int {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	if i := strings.Index(s, "="); i >= 0 {
		s = s[i+1:]
	}
	s = strings.ReplaceAll(s, GroupSeparator, "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" || s == Placeholder {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}
