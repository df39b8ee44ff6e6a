// Package parser implements a strict LL(1) recursive descent parser for
// delimited tables. Where the lenient grammar package accepts any input, this
// parser rejects malformed quoting and reports where it happened.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shapestone/shape-core/pkg/ast"
	shapetokenizer "github.com/shapestone/shape-core/pkg/tokenizer"
	"github.com/shapestone/shape-csvjson/internal/tokenizer"
)

var (
	// ErrUnterminatedQuote is reported when input ends inside a quoted field.
	ErrUnterminatedQuote = errors.New("unterminated quoted field")
	// ErrBareQuote is reported for a quote inside an unquoted field or for
	// text between a closing quote and the next delimiter.
	ErrBareQuote = errors.New("bare quote in field")
)

// ParseError locates a strict parsing failure.
type ParseError struct {
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error on line %d, column %d: %v", e.Line, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Options configures the parser.
type Options struct {
	// Delimiter separates fields. Default: ','
	Delimiter rune
	// Quote encloses fields. Default: '"'
	Quote rune
}

// DefaultOptions returns comma and double-quote options.
func DefaultOptions() Options {
	return Options{
		Delimiter: ',',
		Quote:     '"',
	}
}

// Parser maintains a single token lookahead for predictive parsing.
type Parser struct {
	tokenizer *shapetokenizer.Tokenizer
	current   *shapetokenizer.Token
	hasToken  bool
	opts      Options
}

// NewParser creates a parser for input with the default options.
func NewParser(input string) *Parser {
	return NewParserWithOptions(input, DefaultOptions())
}

// NewParserWithOptions creates a parser for input.
func NewParserWithOptions(input string, opts Options) *Parser {
	return NewParserFromStreamWithOptions(shapetokenizer.NewStream(input), opts)
}

// NewParserFromStream creates a parser over a pre-configured stream.
func NewParserFromStream(stream shapetokenizer.Stream) *Parser {
	return NewParserFromStreamWithOptions(stream, DefaultOptions())
}

// NewParserFromStreamWithOptions creates a parser over a pre-configured stream.
func NewParserFromStreamWithOptions(stream shapetokenizer.Stream, opts Options) *Parser {
	tok := tokenizer.NewTokenizerWithStreamAndOptions(stream, tokenizer.Options{
		Delimiter: opts.Delimiter,
		Quote:     opts.Quote,
	})

	p := &Parser{
		tokenizer: &tok,
		opts:      opts,
	}
	p.advance()
	return p
}

// Parse parses the whole input.
//
// Grammar:
//
//	Table = { Newline } [ Row { Newline { Newline } Row } ] { Newline } ;
//
// Returns an *ast.ArrayDataNode of rows; each row is an *ast.ArrayDataNode of
// *ast.LiteralNode string fields. Blank lines produce no row.
func (p *Parser) Parse() (ast.SchemaNode, error) {
	rows := make([]ast.SchemaNode, 0, 16)

	for p.hasToken {
		if p.peek().Kind() == tokenizer.TokenNewline {
			p.advance()
			continue
		}

		row, err := p.parseRow()
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return ast.NewArrayDataNode(rows, ast.ZeroPosition()), nil
}

// parseRow parses one row.
//
// Grammar:
//
//	Row = Field { Delimiter Field } ( Newline | EOF ) ;
func (p *Parser) parseRow() (*ast.ArrayDataNode, error) {
	startPos := p.position()
	fields := make([]ast.SchemaNode, 0, 8)

	field, err := p.parseField()
	if err != nil {
		return nil, err
	}
	fields = append(fields, field)

	for p.is(tokenizer.TokenDelimiter) {
		p.advance()

		field, err := p.parseField()
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}

	if p.is(tokenizer.TokenNewline) {
		p.advance()
	}

	return ast.NewArrayDataNode(fields, startPos), nil
}

// parseField parses a single field.
//
// Grammar:
//
//	Field = QuotedField | UnquotedField ;
func (p *Parser) parseField() (*ast.LiteralNode, error) {
	if p.is(tokenizer.TokenQuote) {
		return p.parseQuotedField()
	}
	return p.parseUnquotedField()
}

// parseQuotedField parses a quoted field.
//
// Grammar:
//
//	QuotedField = Quote { Character | Delimiter | Newline | Quote Quote } Quote ;
//
// The delimiter and newlines inside the quotes are literal; a doubled quote
// stands for one quote.
func (p *Parser) parseQuotedField() (*ast.LiteralNode, error) {
	startPos := p.position()
	startErr := p.errorHere(ErrUnterminatedQuote)
	p.advance()

	var value strings.Builder
	for {
		if !p.hasToken {
			return nil, startErr
		}

		token := p.peek()
		if token.Kind() != tokenizer.TokenQuote {
			value.WriteString(token.ValueString())
			p.advance()
			continue
		}

		p.advance()
		if p.is(tokenizer.TokenQuote) {
			value.WriteRune(p.opts.Quote)
			p.advance()
			continue
		}

		// Closing quote: only a delimiter, newline or the end may follow.
		if p.hasToken && !p.is(tokenizer.TokenDelimiter) && !p.is(tokenizer.TokenNewline) {
			return nil, p.errorHere(ErrBareQuote)
		}
		return ast.NewLiteralNode(value.String(), startPos), nil
	}
}

// parseUnquotedField parses an unquoted, possibly empty, field.
//
// Grammar:
//
//	UnquotedField = { Character } ;
func (p *Parser) parseUnquotedField() (*ast.LiteralNode, error) {
	startPos := p.position()

	if !p.is(tokenizer.TokenField) {
		return ast.NewLiteralNode("", startPos), nil
	}

	value := p.peek().ValueString()
	p.advance()

	if p.is(tokenizer.TokenQuote) {
		return nil, p.errorHere(ErrBareQuote)
	}
	return ast.NewLiteralNode(value, startPos), nil
}

func (p *Parser) peek() *shapetokenizer.Token {
	return p.current
}

// is reports whether the lookahead token has the given kind.
func (p *Parser) is(kind string) bool {
	return p.hasToken && p.current != nil && p.current.Kind() == kind
}

func (p *Parser) advance() {
	token, ok := p.tokenizer.NextToken()
	if ok {
		p.current = token
		p.hasToken = true
	} else {
		p.hasToken = false
		p.current = nil
	}
}

// position returns the current position for AST nodes and errors.
func (p *Parser) position() ast.Position {
	if p.hasToken && p.current != nil {
		return ast.NewPosition(
			p.current.Offset(),
			p.current.Row(),
			p.current.Column(),
		)
	}
	return ast.ZeroPosition()
}

// errorHere builds a ParseError at the lookahead token.
func (p *Parser) errorHere(err error) *ParseError {
	if !p.hasToken || p.current == nil {
		return &ParseError{Err: err}
	}
	return &ParseError{Line: p.current.Row(), Column: p.current.Column(), Err: err}
}
