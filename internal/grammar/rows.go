package grammar

import "strings"

// SplitRows splits text into rows at every newline that is not inside a
// quoted span. The newline itself is not part of either row. Blank rows,
// including the position after a trailing newline, are skipped.
//
// Field counts are not checked. A quoted span that is never closed runs to
// the end of text and becomes the last row.
func (g *Grammar) SplitRows(text string) []string {
	rows := make([]string, 0, strings.Count(text, "\n")+1)
	start := 0
	g.scanRows(text, func(end int) bool {
		if end > start {
			rows = append(rows, text[start:end])
		}
		start = end + 1
		return true
	})
	if start < len(text) {
		rows = append(rows, text[start:])
	}
	return rows
}

// FirstRowEnd returns the byte offset of the first newline outside a quoted
// span, or len(text) if the whole text is a single row.
func (g *Grammar) FirstRowEnd(text string) int {
	end := len(text)
	g.scanRows(text, func(i int) bool {
		end = i
		return false
	})
	return end
}

// scanRows runs the row rule over text and calls boundary with the offset
// of each row-ending newline until it returns false.
func (g *Grammar) scanRows(text string, boundary func(end int) bool) {
	state := rowUnquoted
	for i, r := range text {
		t := g.rows[state][g.classify(r)]
		state = t.next
		if t.action == rowEnd && !boundary(i) {
			return
		}
	}
}
