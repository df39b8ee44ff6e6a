package csvjson

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Stringify returns the text form a value takes in a table field:
//
//   - nil becomes ""
//   - strings, []byte and json.Number are used as they are
//   - integers, floats and bools are formatted with strconv
//   - fmt.Stringer values use String
//   - anything else (records, slices, maps) becomes compact JSON
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.FormatInt(int64(x), 10)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case fmt.Stringer:
		return x.String()
	}

	data, err := marshalCompact(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

// isScalar reports whether v can identify a column.
func isScalar(v any) bool {
	switch v.(type) {
	case string, json.Number, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

// ColumnsFromValues converts scalar column identifiers to their text form.
// nil and non-scalar values (maps, slices, records, structs) are rejected
// with an error wrapping ErrInvalidColumns.
func ColumnsFromValues(values []any) ([]string, error) {
	columns := make([]string, 0, len(values))
	for i, v := range values {
		if !isScalar(v) {
			return nil, fmt.Errorf("csvjson: %w: item %d is %T", ErrInvalidColumns, i, v)
		}
		columns = append(columns, Stringify(v))
	}
	return columns, nil
}
