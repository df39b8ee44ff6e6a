package csvjson

import (
	"fmt"
	"io"
)

// TableToRecords converts a text table into records. The first row holds
// the headings; every further row becomes one record holding, in heading
// order, each heading that passes the column filter. Short rows yield ""
// for the missing fields. A heading that occurs twice keeps its first
// position and the value of its last occurrence.
//
// Text without data rows yields an empty slice. Rows longer than the
// heading row are dropped or rejected according to Options.ExtraFields.
func (c *Converter) TableToRecords(text string) ([]*Record, error) {
	s := c.load()
	rows := s.grammar.SplitRows(text)
	if len(rows) < 2 {
		return []*Record{}, nil
	}

	headings := s.grammar.ExtractFields(rows[0])
	used := make([]bool, len(headings))
	for i, h := range headings {
		used[i] = s.included(h)
	}

	records := make([]*Record, 0, len(rows)-1)
	for n, row := range rows[1:] {
		fields := s.grammar.ExtractFields(row)
		if len(fields) > len(headings) && c.extra == ExtraFieldsError {
			err := &FieldCountError{Row: n + 1, Got: len(fields), Want: len(headings)}
			c.log.V(1).Info("rejected table", "row", err.Row, "got", err.Got, "want", err.Want)
			return nil, err
		}

		r := &Record{
			keys:   make([]string, 0, len(headings)),
			values: make(map[string]any, len(headings)),
		}
		for i, h := range headings {
			if !used[i] {
				continue
			}
			value := ""
			if i < len(fields) {
				value = fields[i]
			}
			r.Set(h, value)
		}
		records = append(records, r)
	}
	return records, nil
}

// TableToRecordsFrom is TableToRecords for input that may not be a string:
// []byte, io.Reader (read to the end) and fmt.Stringer are accepted; any
// other type is reported as a *TypeError.
func (c *Converter) TableToRecordsFrom(input any) ([]*Record, error) {
	text, err := textOf(input)
	if err != nil {
		c.log.V(1).Info("rejected input", "type", fmt.Sprintf("%T", input))
		return nil, err
	}
	return c.TableToRecords(text)
}

// ParseRow decodes the fields of a single row.
func (c *Converter) ParseRow(row string) []string {
	return c.load().grammar.ExtractFields(row)
}

// Rows splits text into rows of decoded fields, headings included, without
// building records or applying the column filter.
func (c *Converter) Rows(text string) [][]string {
	g := c.load().grammar
	raw := g.SplitRows(text)
	rows := make([][]string, len(raw))
	for i, row := range raw {
		rows[i] = g.ExtractFields(row)
	}
	return rows
}

func textOf(input any) (string, error) {
	switch v := input.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case io.Reader:
		data, err := io.ReadAll(v)
		if err != nil {
			return "", fmt.Errorf("csvjson: read input: %w", err)
		}
		return string(data), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return "", &TypeError{Type: fmt.Sprintf("%T", input)}
	}
}
