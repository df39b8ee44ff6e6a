package binding

import (
	"fmt"
	"reflect"
)

// Encode converts a slice of structs (or struct pointers) into headings and
// rows of field values. Values keep their Go type; nil pointers and zero
// omitempty fields become nil. Nil elements are skipped.
func Encode(v any) (headings []string, rows [][]any, err error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, nil, fmt.Errorf("%w: Encode(nil)", ErrInvalidTarget)
	}
	if rv.Kind() == reflect.Ptr && !rv.IsNil() {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, nil, fmt.Errorf("%w: expected slice of structs, got %s", ErrInvalidTarget, rv.Type())
	}

	structType, _, err := structElem(rv.Type())
	if err != nil {
		return nil, nil, err
	}

	info := getTypeInfo(structType)
	headings = make([]string, len(info.columns))
	for i, col := range info.columns {
		headings[i] = col.name
	}

	rows = make([][]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i)
		if elem.Kind() == reflect.Ptr {
			if elem.IsNil() {
				continue
			}
			elem = elem.Elem()
		}

		row := make([]any, len(info.columns))
		for j, col := range info.columns {
			field := elem.Field(col.index)
			if col.omitEmpty && field.IsZero() {
				continue
			}
			value, err := fieldValue(field)
			if err != nil {
				return nil, nil, fmt.Errorf("binding: column %q: %w", col.name, err)
			}
			row[j] = value
		}
		rows = append(rows, row)
	}
	return headings, rows, nil
}

// fieldValue dereferences pointers and interfaces and checks that the value
// is a scalar.
func fieldValue(rv reflect.Value) (any, error) {
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Bool:
		return rv.Interface(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, rv.Type())
	}
}
