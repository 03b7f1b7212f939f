package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Text measurement works in display cells, not bytes, so wide characters
// (CJK, emoji) occupy two columns and combining marks occupy none.

// lineWidth returns the display width of a string.
func lineWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Wrap greedily word-wraps one input line to the given column budget. A word
// wider than the budget is hard-split into budget-sized chunks. Empty input
// yields exactly one empty line, never zero lines.
func Wrap(line string, columns int) []string {
	if columns <= 0 {
		return []string{line}
	}

	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{""}
	}

	out := []string{}
	current := ""

	for _, word := range words {
		if lineWidth(word) > columns {
			if current != "" {
				out = append(out, current)
				current = ""
			}
			chunks := hardSplit(word, columns)
			out = append(out, chunks[:len(chunks)-1]...)
			current = chunks[len(chunks)-1]
			continue
		}

		switch {
		case current == "":
			current = word
		case lineWidth(current)+1+lineWidth(word) <= columns:
			current += " " + word
		default:
			out = append(out, current)
			current = word
		}
	}

	if current != "" {
		out = append(out, current)
	}
	if len(out) == 0 {
		return []string{""}
	}
	return out
}

// WrapAll wraps every input line in order and concatenates the results.
// An empty input slice yields one empty line.
func WrapAll(lines []string, columns int) []string {
	if len(lines) == 0 {
		return []string{""}
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, Wrap(line, columns)...)
	}
	return out
}

// hardSplit cuts a single oversized word into chunks no wider than columns.
func hardSplit(word string, columns int) []string {
	chunks := []string{}
	current := strings.Builder{}
	width := 0

	for _, r := range word {
		rw := runewidth.RuneWidth(r)
		if rw < 0 {
			rw = 0
		}
		if width+rw > columns && current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			width = 0
		}
		current.WriteRune(r)
		width += rw
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	if len(chunks) == 0 {
		return []string{""}
	}
	return chunks
}
