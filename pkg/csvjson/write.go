package csvjson

import (
	"strings"
)

// RecordsToTable converts records to a text table: the heading row, then
// one row per record, joined by "\n" with no trailing newline. Headings are
// the included columns when set, otherwise the keys of the first record.
// Absent and nil values become empty fields.
//
// Invalid input returns a *ShapeError and no output.
func (c *Converter) RecordsToTable(records []*Record) (string, error) {
	return c.RecordsToTableFrom(records)
}

// RecordsToTableFrom is RecordsToTable for any sequence Validate accepts.
func (c *Converter) RecordsToTableFrom(v any) (string, error) {
	s := c.load()
	records, headings, err := c.prepare(s, v)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(s.grammar.JoinFields(headings))

	values := make([]string, len(headings))
	for _, r := range records {
		for i, h := range headings {
			v, _ := r.Get(h)
			values[i] = Stringify(v)
		}
		sb.WriteByte('\n')
		sb.WriteString(s.grammar.JoinFields(values))
	}
	return sb.String(), nil
}

// FormatRecord encodes the values of r, in key order, as one row.
func (c *Converter) FormatRecord(r *Record) string {
	values := r.Values()
	fields := make([]string, len(values))
	for i, v := range values {
		fields[i] = Stringify(v)
	}
	return c.load().grammar.JoinFields(fields)
}

// FormatRow encodes already textual fields as one row.
func (c *Converter) FormatRow(fields []string) string {
	return c.load().grammar.JoinFields(fields)
}
