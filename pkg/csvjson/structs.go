package csvjson

import (
	"github.com/shapestone/shape-csvjson/internal/binding"
)

// RecordsFromStructs converts a slice of structs (or struct pointers) to
// records. Columns are the exported fields in declaration order, named by
// their "csv" tag:
//
//	type Person struct {
//	    Name  string `csv:"name"`
//	    Email string `csv:"email,omitempty"` // zero value written as ""
//	    Notes string `csv:"-"`               // skipped
//	}
//
// Nil pointers and zero omitempty fields become "". Nil elements are
// skipped.
func RecordsFromStructs(v any) ([]*Record, error) {
	headings, rows, err := binding.Encode(v)
	if err != nil {
		return nil, err
	}

	records := make([]*Record, 0, len(rows))
	for _, row := range rows {
		r := &Record{
			keys:   make([]string, 0, len(headings)),
			values: make(map[string]any, len(headings)),
		}
		for i, h := range headings {
			value := row[i]
			if value == nil {
				value = ""
			}
			r.Set(h, value)
		}
		records = append(records, r)
	}
	return records, nil
}

// RecordsToStructs fills the slice pointed to by v with one struct per
// record. Keys match columns case-insensitively by tag name, then field
// name. Values are converted with Stringify and parsed into string, integer,
// float and bool fields or pointers to them; an empty value leaves a
// pointer nil.
//
// Headings are taken from the first record's keys, followed by keys first
// seen in later records.
func RecordsToStructs(records []*Record, v any) error {
	var headings []string
	index := make(map[string]int)
	for _, r := range records {
		for _, k := range r.Keys() {
			if _, ok := index[k]; !ok {
				index[k] = len(headings)
				headings = append(headings, k)
			}
		}
	}

	rows := make([][]string, len(records))
	for i, r := range records {
		row := make([]string, len(headings))
		for _, k := range r.Keys() {
			value, _ := r.Get(k)
			row[index[k]] = Stringify(value)
		}
		rows[i] = row
	}
	return binding.Decode(headings, rows, v)
}

// TableToStructs converts text to records and then to structs.
func (c *Converter) TableToStructs(text string, v any) error {
	records, err := c.TableToRecords(text)
	if err != nil {
		return err
	}
	return RecordsToStructs(records, v)
}

// TableFromStructs converts a slice of structs to text.
func (c *Converter) TableFromStructs(v any) (string, error) {
	records, err := RecordsFromStructs(v)
	if err != nil {
		return "", err
	}
	return c.RecordsToTable(records)
}
