package binding

import (
	"fmt"
	"reflect"
)

// Decode fills the slice pointed to by v with one element per row, matching
// headings to struct columns case-insensitively by tag name, then field name.
// Unmatched headings are ignored and unmatched fields keep their zero value.
// v must be a non-nil pointer to a slice of structs or struct pointers.
func Decode(headings []string, rows [][]string, v any) error {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("%w: Decode needs a non-nil pointer to a slice, got %T", ErrInvalidTarget, v)
	}

	slice := rv.Elem()
	if slice.Kind() != reflect.Slice {
		return fmt.Errorf("%w: Decode needs a pointer to a slice, got %s", ErrInvalidTarget, rv.Type())
	}

	structType, isPtr, err := structElem(slice.Type())
	if err != nil {
		return err
	}

	info := getSetterInfo(structType, headings)
	result := reflect.MakeSlice(slice.Type(), 0, len(rows))

	for rowIdx, row := range rows {
		ptr := reflect.New(structType)
		structVal := ptr.Elem()

		for col, value := range row {
			if col >= len(headings) {
				break
			}
			fieldIdx, ok := info.fieldMap[col]
			if !ok {
				continue
			}
			field := structVal.Field(fieldIdx)
			if err := info.setters[col](field, value); err != nil {
				return &FieldError{
					Row:    rowIdx,
					Column: headings[col],
					Type:   field.Type(),
					Value:  value,
					Err:    err,
				}
			}
		}

		if isPtr {
			result = reflect.Append(result, ptr)
		} else {
			result = reflect.Append(result, structVal)
		}
	}

	slice.Set(result)
	return nil
}
