package csvjson

import (
	"reflect"
	"sort"
)

// Validate checks that v is a sequence of records that all carry every
// presumed heading: the included columns when set, otherwise the keys of
// the first record. Problems are reported together in a *ShapeError.
//
// Accepted sequences are []*Record, []Record, []map[string]any and any
// other slice or array whose items are *Record, Record or map[string]any.
// Maps are read in sorted key order.
func (c *Converter) Validate(v any) error {
	_, _, err := c.prepare(c.load(), v)
	return err
}

// prepare normalizes v to records and validates it against s.
func (c *Converter) prepare(s *snapshot, v any) ([]*Record, []string, error) {
	records, notRecords, ok := toRecords(v)
	if !ok {
		err := &ShapeError{NotSequence: true}
		c.log.V(1).Info("rejected records", "notSequence", true)
		return nil, nil, err
	}

	headings := s.columns
	if len(headings) == 0 && len(records) > 0 && records[0] != nil {
		headings = records[0].Keys()
	}

	var missing []int
	for i, r := range records {
		if r == nil {
			continue
		}
		for _, h := range headings {
			if !r.Has(h) {
				missing = append(missing, i)
				break
			}
		}
	}

	if len(notRecords) > 0 || len(missing) > 0 {
		err := &ShapeError{
			NotRecords:      notRecords,
			MissingHeadings: missing,
			Headings:        append([]string(nil), headings...),
		}
		c.log.V(1).Info("rejected records", "notRecords", notRecords, "missingHeadings", missing, "headings", headings)
		return nil, nil, err
	}
	return records, headings, nil
}

// toRecords converts a supported sequence to records. Items that are not
// records are left nil and their indices returned. ok is false when v is
// not a sequence.
func toRecords(v any) (records []*Record, notRecords []int, ok bool) {
	switch seq := v.(type) {
	case nil, string, []byte:
		return nil, nil, false
	case []*Record:
		records = make([]*Record, len(seq))
		for i, r := range seq {
			if r == nil {
				notRecords = append(notRecords, i)
			}
			records[i] = r
		}
		return records, notRecords, true
	case []Record:
		records = make([]*Record, len(seq))
		for i := range seq {
			records[i] = &seq[i]
		}
		return records, nil, true
	case []map[string]any:
		records = make([]*Record, len(seq))
		for i, m := range seq {
			if m == nil {
				notRecords = append(notRecords, i)
				continue
			}
			records[i] = recordFromMap(m)
		}
		return records, notRecords, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, nil, false
	}
	records = make([]*Record, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		r, isRecord := asRecord(rv.Index(i).Interface())
		if !isRecord {
			notRecords = append(notRecords, i)
			continue
		}
		records[i] = r
	}
	return records, notRecords, true
}

func asRecord(item any) (*Record, bool) {
	switch r := item.(type) {
	case *Record:
		return r, r != nil
	case Record:
		return &r, true
	case map[string]any:
		if r == nil {
			return nil, false
		}
		return recordFromMap(r), true
	default:
		return nil, false
	}
}

// recordFromMap builds a record with the map's keys in sorted order.
func recordFromMap(m map[string]any) *Record {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	r := &Record{keys: keys, values: make(map[string]any, len(m))}
	for k, v := range m {
		r.values[k] = v
	}
	return r
}
