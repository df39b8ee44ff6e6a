package csvjson

import (
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"

	"github.com/shapestone/shape-csvjson/internal/parser"
)

// ValidateTable checks text with the strict parser for the current
// delimiter and quote. Unlike the conversions, which accept any text, it
// reports unterminated quoted fields and stray quotes as a *ParseError.
func (c *Converter) ValidateTable(text string) error {
	_, err := c.ParseAST(text)
	return err
}

// ParseAST parses text strictly into an *ast.ArrayDataNode of rows, each an
// *ast.ArrayDataNode of *ast.LiteralNode string fields. Blank lines produce
// no row.
func (c *Converter) ParseAST(text string) (ast.SchemaNode, error) {
	p := c.load().grammar.Policy()
	node, err := parser.NewParserWithOptions(text, parser.Options{
		Delimiter: p.Delimiter,
		Quote:     p.Quote,
	}).Parse()
	if err != nil {
		c.log.V(1).Info("invalid table", "error", err.Error())
		return nil, err
	}
	return node, nil
}

// RecordsToNode converts records to an *ast.ArrayDataNode of
// *ast.ObjectNode, one per record, with string literal values.
func RecordsToNode(records []*Record) ast.SchemaNode {
	elements := make([]ast.SchemaNode, 0, len(records))
	for _, r := range records {
		props := make(map[string]ast.SchemaNode, r.Len())
		for _, k := range r.Keys() {
			v, _ := r.Get(k)
			props[k] = ast.NewLiteralNode(Stringify(v), ast.ZeroPosition())
		}
		elements = append(elements, ast.NewObjectNode(props, ast.ZeroPosition()))
	}
	return ast.NewArrayDataNode(elements, ast.ZeroPosition())
}

// NodeToRows converts a table node, as returned by ParseAST, to rows of
// fields. Literal values that are not strings are formatted with
// Stringify; any other node shape yields an error.
func NodeToRows(node ast.SchemaNode) ([][]string, error) {
	table, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return nil, fmt.Errorf("csvjson: expected *ast.ArrayDataNode table, got %T", node)
	}

	rows := make([][]string, 0, table.Len())
	for i, elem := range table.Elements() {
		row, ok := elem.(*ast.ArrayDataNode)
		if !ok {
			return nil, fmt.Errorf("csvjson: row %d: expected *ast.ArrayDataNode, got %T", i, elem)
		}
		fields := make([]string, 0, row.Len())
		for j, f := range row.Elements() {
			lit, ok := f.(*ast.LiteralNode)
			if !ok {
				return nil, fmt.Errorf("csvjson: row %d field %d: expected *ast.LiteralNode, got %T", i, j, f)
			}
			fields = append(fields, Stringify(lit.Value()))
		}
		rows = append(rows, fields)
	}
	return rows, nil
}
