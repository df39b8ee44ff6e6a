package csvjson

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shapestone/shape-csvjson/internal/binding"
	"github.com/shapestone/shape-csvjson/internal/grammar"
	"github.com/shapestone/shape-csvjson/internal/parser"
)

// Kind names one of the two configurable structural characters.
type Kind = grammar.Kind

const (
	KindDelimiter = grammar.KindDelimiter
	KindQuote     = grammar.KindQuote
)

// Rule identifies the constraint a rejected character violated.
type Rule = grammar.Rule

const (
	RuleNotSingleCharacter = grammar.RuleNotSingleCharacter
	RuleReserved           = grammar.RuleReserved
	RuleCollision          = grammar.RuleCollision
)

// PolicyError reports a rejected delimiter or quote change. The converter's
// configuration is left unchanged.
type PolicyError = grammar.PolicyError

// ParseError locates a strict validation failure.
type ParseError = parser.ParseError

// Configuration errors. Every *PolicyError unwraps to one of the specific
// sentinels, each of which wraps ErrConfiguration.
var (
	ErrConfiguration      = grammar.ErrConfiguration
	ErrNotSingleCharacter = grammar.ErrNotSingleCharacter
	ErrReservedCharacter  = grammar.ErrReservedCharacter
	ErrCharacterCollision = grammar.ErrCharacterCollision
)

// FieldError reports a record value that could not be converted into a
// struct field.
type FieldError = binding.FieldError

// Struct binding errors.
var (
	ErrInvalidTarget   = binding.ErrInvalidTarget
	ErrUnsupportedType = binding.ErrUnsupportedType
)

// Strict validation errors, reported inside a *ParseError.
var (
	ErrUnterminatedQuote = parser.ErrUnterminatedQuote
	ErrBareQuote         = parser.ErrBareQuote
)

var (
	// ErrShape indicates write-path input that is not a sequence of uniform
	// records.
	ErrShape = errors.New("input is not a sequence of uniform records")

	// ErrNotText indicates read-path input that is not text.
	ErrNotText = errors.New("input is not text")

	// ErrFieldCount indicates a row with more fields than headings.
	ErrFieldCount = errors.New("wrong number of fields")

	// ErrInvalidColumns indicates an included column that is not a scalar.
	ErrInvalidColumns = errors.New("included columns must be non-nil scalars")
)

// ShapeError reports every problem found while validating write-path input.
// Each offending index appears once.
type ShapeError struct {
	// NotSequence is set when the input is not a sequence at all.
	NotSequence bool
	// NotRecords lists indices of entries that are not records.
	NotRecords []int
	// MissingHeadings lists indices of records lacking at least one heading.
	MissingHeadings []int
	// Headings are the presumed headings records were checked against.
	Headings []string
}

func (e *ShapeError) Error() string {
	var parts []string
	if e.NotSequence {
		parts = append(parts, "input is not a sequence")
	}
	if len(e.NotRecords) > 0 {
		parts = append(parts, fmt.Sprintf("items at index [%s] are not records", joinInts(e.NotRecords)))
	}
	if len(e.MissingHeadings) > 0 {
		parts = append(parts, fmt.Sprintf("items at index [%s] are missing at least one presumed heading (from headings [%s])",
			joinInts(e.MissingHeadings), strings.Join(e.Headings, ", ")))
	}
	if len(parts) == 0 {
		return "csvjson: " + ErrShape.Error()
	}
	return "csvjson: " + strings.Join(parts, "; ")
}

func (e *ShapeError) Unwrap() error {
	return ErrShape
}

// TypeError reports read-path input of a type that is not text.
type TypeError struct {
	Type string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("csvjson: input must be text, not %s", e.Type)
}

func (e *TypeError) Unwrap() error {
	return ErrNotText
}

// FieldCountError reports a row with more fields than there are headings.
type FieldCountError struct {
	// Row is the 1-based data row index (the heading row is row 0).
	Row  int
	Got  int
	Want int
}

func (e *FieldCountError) Error() string {
	return fmt.Sprintf("csvjson: row %d: %v (got %d, want at most %d)", e.Row, ErrFieldCount, e.Got, e.Want)
}

func (e *FieldCountError) Unwrap() error {
	return ErrFieldCount
}

// OptionsError represents an invalid option value.
type OptionsError struct {
	Field   string
	Message string
	Err     error
}

func (e *OptionsError) Error() string {
	if e.Err != nil {
		return "csvjson: invalid " + e.Field + ": " + e.Message + ": " + e.Err.Error()
	}
	return "csvjson: invalid " + e.Field + ": " + e.Message
}

func (e *OptionsError) Unwrap() error {
	return e.Err
}

func joinInts(ints []int) string {
	s := make([]string, len(ints))
	for i, n := range ints {
		s[i] = strconv.Itoa(n)
	}
	return strings.Join(s, ", ")
}
