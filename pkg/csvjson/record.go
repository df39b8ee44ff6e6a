package csvjson

import "fmt"

// Record is an ordered key/value record. Keys keep the order in which they
// were first set; setting an existing key replaces its value in place.
//
// Records produced by the read path hold only string values. Records built
// by callers or decoded from JSON may hold any scalar, nil, []any or nested
// *Record.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]any)}
}

// RecordOf builds a record from alternating keys and values:
//
//	csvjson.RecordOf("name", "Ada", "age", 36)
//
// Non-string keys are converted with Stringify. A trailing key without a
// value is set to nil.
func RecordOf(kv ...any) *Record {
	r := &Record{
		keys:   make([]string, 0, (len(kv)+1)/2),
		values: make(map[string]any, (len(kv)+1)/2),
	}
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = Stringify(kv[i])
		}
		var value any
		if i+1 < len(kv) {
			value = kv[i+1]
		}
		r.Set(key, value)
	}
	return r
}

// Set assigns value to key.
func (r *Record) Set(key string, value any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value for key and whether it is present.
func (r *Record) Get(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether key is present.
func (r *Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Delete removes key.
func (r *Record) Delete(key string) {
	if r == nil {
		return
	}
	if _, ok := r.values[key]; !ok {
		return
	}
	delete(r.values, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of keys.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Keys returns the keys in order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Values returns the values in key order.
func (r *Record) Values() []any {
	if r == nil {
		return nil
	}
	values := make([]any, len(r.keys))
	for i, k := range r.keys {
		values[i] = r.values[k]
	}
	return values
}

// Map returns the record as an unordered map.
func (r *Record) Map() map[string]any {
	m := make(map[string]any, r.Len())
	for _, k := range r.Keys() {
		m[k] = r.values[k]
	}
	return m
}

// MarshalJSON encodes the record as a JSON object in key order.
func (r *Record) MarshalJSON() ([]byte, error) {
	return marshalCompact(r)
}

// UnmarshalJSON decodes a JSON object, keeping its key order.
func (r *Record) UnmarshalJSON(data []byte) error {
	v, err := decodeJSON(data)
	if err != nil {
		return err
	}
	decoded, ok := v.(*Record)
	if !ok {
		return fmt.Errorf("csvjson: %w: expected a JSON object", ErrShape)
	}
	*r = *decoded
	return nil
}
