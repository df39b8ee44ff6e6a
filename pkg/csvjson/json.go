package csvjson

import (
	"encoding/json"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// DecodeJSON decodes a JSON array. Objects become *Record with their key
// order kept, strings become string, numbers json.Number, booleans bool,
// null nil and arrays []any. A top-level value that is not an array is
// reported as a *ShapeError with NotSequence set.
func DecodeJSON(data []byte) ([]any, error) {
	v, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}
	items, ok := v.([]any)
	if !ok {
		return nil, &ShapeError{NotSequence: true}
	}
	return items, nil
}

// EncodeJSON writes records as a JSON array of objects in key order.
// indent is the number of spaces per nesting level; 0 writes compact JSON.
func EncodeJSON(w io.Writer, records []*Record, indent int) error {
	api := jsonAPI
	if indent > 0 {
		api = jsoniter.Config{
			EscapeHTML:             true,
			SortMapKeys:            true,
			ValidateJsonRawMessage: true,
			IndentionStep:          indent,
		}.Froze()
	}

	stream := jsoniter.NewStream(api, w, 4096)
	if len(records) == 0 {
		stream.WriteEmptyArray()
	} else {
		stream.WriteArrayStart()
		for i, r := range records {
			if i > 0 {
				stream.WriteMore()
			}
			writeValue(stream, r)
		}
		stream.WriteArrayEnd()
	}
	if indent > 0 {
		stream.WriteRaw("\n")
	}
	if stream.Error != nil {
		return stream.Error
	}
	return stream.Flush()
}

// decodeJSON validates data, then decodes it in document order.
func decodeJSON(data []byte) (any, error) {
	// The iterator reports truncated input as io.EOF, so syntax is checked
	// up front.
	if !json.Valid(data) {
		var probe any
		err := json.Unmarshal(data, &probe)
		return nil, fmt.Errorf("csvjson: decode JSON: %w", err)
	}

	iter := jsonAPI.BorrowIterator(data)
	defer jsonAPI.ReturnIterator(iter)

	v := readValue(iter)
	if iter.Error != nil && iter.Error != io.EOF {
		return nil, fmt.Errorf("csvjson: decode JSON: %w", iter.Error)
	}
	return v, nil
}

func readValue(iter *jsoniter.Iterator) any {
	switch iter.WhatIsNext() {
	case jsoniter.ObjectValue:
		r := NewRecord()
		iter.ReadMapCB(func(it *jsoniter.Iterator, key string) bool {
			r.Set(key, readValue(it))
			return it.Error == nil
		})
		return r
	case jsoniter.ArrayValue:
		values := make([]any, 0)
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			values = append(values, readValue(it))
			return it.Error == nil
		})
		return values
	case jsoniter.StringValue:
		return iter.ReadString()
	case jsoniter.NumberValue:
		return iter.ReadNumber()
	case jsoniter.BoolValue:
		return iter.ReadBool()
	default:
		iter.Skip()
		return nil
	}
}

// writeValue writes v, keeping the key order of records.
func writeValue(stream *jsoniter.Stream, v any) {
	switch x := v.(type) {
	case *Record:
		if x == nil {
			stream.WriteNil()
			return
		}
		if x.Len() == 0 {
			stream.WriteEmptyObject()
			return
		}
		stream.WriteObjectStart()
		for i, k := range x.keys {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(k)
			writeValue(stream, x.values[k])
		}
		stream.WriteObjectEnd()
	case Record:
		writeValue(stream, &x)
	case []*Record:
		items := make([]any, len(x))
		for i, r := range x {
			items[i] = r
		}
		writeValue(stream, items)
	case []any:
		if len(x) == 0 {
			stream.WriteEmptyArray()
			return
		}
		stream.WriteArrayStart()
		for i, item := range x {
			if i > 0 {
				stream.WriteMore()
			}
			writeValue(stream, item)
		}
		stream.WriteArrayEnd()
	default:
		stream.WriteVal(x)
	}
}

// marshalCompact encodes v as compact JSON.
func marshalCompact(v any) ([]byte, error) {
	stream := jsonAPI.BorrowStream(nil)
	defer jsonAPI.ReturnStream(stream)

	writeValue(stream, v)
	if stream.Error != nil {
		return nil, stream.Error
	}
	out := make([]byte, len(stream.Buffer()))
	copy(out, stream.Buffer())
	return out, nil
}

// TableToJSON converts text to a JSON array of objects.
func (c *Converter) TableToJSON(text string) ([]byte, error) {
	records, err := c.TableToRecords(text)
	if err != nil {
		return nil, err
	}
	return marshalCompact(records)
}

// TableFromJSON converts a JSON array of objects to text.
func (c *Converter) TableFromJSON(data []byte) (string, error) {
	items, err := DecodeJSON(data)
	if err != nil {
		return "", err
	}
	return c.RecordsToTableFrom(items)
}
