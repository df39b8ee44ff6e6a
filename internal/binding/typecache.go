package binding

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// column describes one exported struct field.
type column struct {
	name      string
	index     int
	omitEmpty bool
}

// typeInfo holds cached metadata about a struct type.
type typeInfo struct {
	columns []column
	// byName maps lowercased column and field names to field indices.
	byName map[string]int
}

// setterKey identifies a struct type and heading layout.
type setterKey struct {
	typ      reflect.Type
	headings string
}

// setterInfo maps heading positions to field indices and setters.
type setterInfo struct {
	fieldMap map[int]int
	setters  map[int]fieldSetter
}

// fieldSetter sets a field value from its text form.
type fieldSetter func(field reflect.Value, value string) error

var (
	typeCache   sync.Map // map[reflect.Type]*typeInfo
	setterCache sync.Map // map[setterKey]*setterInfo
)

// getTypeInfo retrieves or computes the columns of structType.
func getTypeInfo(structType reflect.Type) *typeInfo {
	if cached, ok := typeCache.Load(structType); ok {
		return cached.(*typeInfo)
	}
	info := computeTypeInfo(structType)
	actual, _ := typeCache.LoadOrStore(structType, info)
	return actual.(*typeInfo)
}

func computeTypeInfo(structType reflect.Type) *typeInfo {
	info := &typeInfo{byName: make(map[string]int)}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.PkgPath != "" || field.Anonymous {
			continue
		}

		name, omitEmpty, skip := parseTag(field)
		if skip {
			continue
		}

		info.columns = append(info.columns, column{name: name, index: i, omitEmpty: omitEmpty})
		if _, taken := info.byName[strings.ToLower(name)]; !taken {
			info.byName[strings.ToLower(name)] = i
		}
	}

	// Field names match only where no column name claimed them.
	for _, col := range info.columns {
		key := strings.ToLower(structType.Field(col.index).Name)
		if _, taken := info.byName[key]; !taken {
			info.byName[key] = col.index
		}
	}
	return info
}

// parseTag reads the csv tag of field.
func parseTag(field reflect.StructField) (name string, omitEmpty, skip bool) {
	tag := field.Tag.Get("csv")
	if tag == "-" {
		return "", false, true
	}

	name = tag
	if idx := strings.IndexByte(tag, ','); idx >= 0 {
		name = tag[:idx]
		for _, opt := range strings.Split(tag[idx+1:], ",") {
			if opt == "omitempty" {
				omitEmpty = true
			}
		}
	}
	if name == "" {
		name = field.Name
	}
	return name, omitEmpty, false
}

// getSetterInfo retrieves or computes the heading-to-field mapping for
// structType.
func getSetterInfo(structType reflect.Type, headings []string) *setterInfo {
	key := setterKey{
		typ:      structType,
		headings: strings.Join(headings, "\x00"),
	}
	if cached, ok := setterCache.Load(key); ok {
		return cached.(*setterInfo)
	}

	types := getTypeInfo(structType)
	info := &setterInfo{
		fieldMap: make(map[int]int),
		setters:  make(map[int]fieldSetter),
	}
	for col, heading := range headings {
		fieldIdx, ok := types.byName[strings.ToLower(heading)]
		if !ok {
			continue
		}
		info.fieldMap[col] = fieldIdx
		info.setters[col] = createSetter(structType.Field(fieldIdx).Type)
	}

	actual, _ := setterCache.LoadOrStore(key, info)
	return actual.(*setterInfo)
}

// createSetter returns a setter for fieldType. Pointer fields are left nil
// for empty values.
func createSetter(fieldType reflect.Type) fieldSetter {
	if fieldType.Kind() == reflect.Ptr {
		inner := createSetter(fieldType.Elem())
		return func(field reflect.Value, value string) error {
			if value == "" {
				field.Set(reflect.Zero(field.Type()))
				return nil
			}
			ptr := reflect.New(field.Type().Elem())
			if err := inner(ptr.Elem(), value); err != nil {
				return err
			}
			field.Set(ptr)
			return nil
		}
	}

	switch fieldType.Kind() {
	case reflect.String:
		return func(field reflect.Value, value string) error {
			field.SetString(value)
			return nil
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(field reflect.Value, value string) error {
			if value == "" {
				field.SetInt(0)
				return nil
			}
			i, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return err
			}
			if field.OverflowInt(i) {
				return fmt.Errorf("value %d overflows %s", i, field.Type())
			}
			field.SetInt(i)
			return nil
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return func(field reflect.Value, value string) error {
			if value == "" {
				field.SetUint(0)
				return nil
			}
			u, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				return err
			}
			if field.OverflowUint(u) {
				return fmt.Errorf("value %d overflows %s", u, field.Type())
			}
			field.SetUint(u)
			return nil
		}

	case reflect.Float32, reflect.Float64:
		return func(field reflect.Value, value string) error {
			if value == "" {
				field.SetFloat(0)
				return nil
			}
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return err
			}
			if field.OverflowFloat(f) {
				return fmt.Errorf("value %v overflows %s", f, field.Type())
			}
			field.SetFloat(f)
			return nil
		}

	case reflect.Bool:
		return func(field reflect.Value, value string) error {
			if value == "" {
				field.SetBool(false)
				return nil
			}
			b, err := parseBool(value)
			if err != nil {
				return err
			}
			field.SetBool(b)
			return nil
		}

	default:
		return func(field reflect.Value, value string) error {
			return fmt.Errorf("%w: %s", ErrUnsupportedType, field.Type())
		}
	}
}

// parseBool accepts true/false, 1/0 and t/f in any case.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "1", "t":
		return true, nil
	case "false", "0", "f":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value: %q", s)
	}
}

// clearCaches empties both caches.
func clearCaches() {
	typeCache.Range(func(key, _ any) bool {
		typeCache.Delete(key)
		return true
	})
	setterCache.Range(func(key, _ any) bool {
		setterCache.Delete(key)
		return true
	})
}
