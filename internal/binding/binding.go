// Package binding maps Go structs to heading-aligned rows and back.
//
// Columns come from exported fields in declaration order. The "csv" struct
// tag renames a column, "-" skips the field and the "omitempty" option
// writes an empty value for a zero field:
//
//	Name  string `csv:"name"`
//	Notes string `csv:"notes,omitempty"`
//	Skip  int    `csv:"-"`
//
// Struct metadata is computed once per type and cached.
package binding

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrInvalidTarget is returned when the value to bind is not a slice of
	// structs (or, for Decode, a non-nil pointer to one).
	ErrInvalidTarget = errors.New("binding: invalid target")
	// ErrUnsupportedType is returned for struct fields of a kind that has no
	// text form.
	ErrUnsupportedType = errors.New("binding: unsupported field type")
)

// FieldError reports a value that could not be converted for a field.
type FieldError struct {
	Row    int    // 0-based index into the rows
	Column string // heading of the column
	Type   reflect.Type
	Value  string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("binding: cannot set %q into %s (row %d, column %q): %v",
		e.Value, e.Type, e.Row, e.Column, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// structElem returns the struct type of a slice element, accepting pointers
// to structs.
func structElem(sliceType reflect.Type) (reflect.Type, bool, error) {
	elem := sliceType.Elem()
	isPtr := false
	if elem.Kind() == reflect.Ptr {
		elem = elem.Elem()
		isPtr = true
	}
	if elem.Kind() != reflect.Struct {
		return nil, false, fmt.Errorf("%w: expected slice of structs, got %s", ErrInvalidTarget, sliceType)
	}
	return elem, isPtr, nil
}
