package grammar

import (
	"strings"
	"unicode/utf8"
)

// ExtractFields decodes one row into its fields, in order.
//
// Unquoted fields are returned verbatim. Quoted fields lose their enclosing
// quotes and every doubled quote inside them becomes a single quote. A row
// without delimiters yields one field; an empty row yields none.
//
// Quote balance is not validated: the row is assumed to come from SplitRows.
func (g *Grammar) ExtractFields(row string) []string {
	if row == "" {
		return []string{}
	}

	fields := make([]string, 0, strings.Count(row, string(g.policy.Delimiter))+1)
	buf := getBuffer()

	state := fieldStart
	for i := 0; i < len(row); {
		r, size := utf8.DecodeRuneInString(row[i:])
		t := g.fields[state][g.classify(r)]
		switch t.action {
		case actionAddChar:
			buf = append(buf, row[i:i+size]...)
		case actionEscapedQuote:
			buf = utf8.AppendRune(buf, g.policy.Quote)
		case actionEndField:
			fields = append(fields, string(buf))
			buf = buf[:0]
		}
		state = t.next
		i += size
	}
	fields = append(fields, string(buf))

	putBuffer(buf)
	return fields
}
