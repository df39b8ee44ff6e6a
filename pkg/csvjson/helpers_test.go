package csvjson_test

import (
	"github.com/shapestone/shape-csvjson/pkg/csvjson"
)

// pairs flattens records to "key=value" strings in key order.
func pairs(records []*csvjson.Record) [][]string {
	out := make([][]string, len(records))
	for i, r := range records {
		row := make([]string, 0, r.Len())
		for _, k := range r.Keys() {
			v, _ := r.Get(k)
			row = append(row, k+"="+csvjson.Stringify(v))
		}
		out[i] = row
	}
	return out
}

func mustNew(opts csvjson.Options) *csvjson.Converter {
	c, err := csvjson.NewWithOptions(opts)
	if err != nil {
		panic(err)
	}
	return c
}
