package csvjson

// AddHeadings prepends an encoded heading row to text.
func (c *Converter) AddHeadings(text string, headings []string) string {
	return c.load().grammar.JoinFields(headings) + "\n" + text
}

// ReplaceHeadings replaces the first row of text with an encoded heading
// row. The first row ends at the first newline outside a quoted field; when
// there is none, all of text is replaced and the result is the heading row
// followed by "\n".
func (c *Converter) ReplaceHeadings(text string, headings []string) string {
	g := c.load().grammar
	rest := ""
	if end := g.FirstRowEnd(text); end < len(text) {
		rest = text[end+1:]
	}
	return g.JoinFields(headings) + "\n" + rest
}
