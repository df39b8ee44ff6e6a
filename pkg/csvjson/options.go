package csvjson

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"

	"github.com/shapestone/shape-csvjson/internal/grammar"
)

// ExtraFieldsMode decides what happens to row fields beyond the headings.
type ExtraFieldsMode int

const (
	// ExtraFieldsDrop silently drops extra trailing fields (default).
	ExtraFieldsDrop ExtraFieldsMode = iota
	// ExtraFieldsError rejects the table with a *FieldCountError.
	ExtraFieldsError
)

// String returns the mode name.
func (m ExtraFieldsMode) String() string {
	switch m {
	case ExtraFieldsDrop:
		return "drop"
	case ExtraFieldsError:
		return "error"
	default:
		return fmt.Sprintf("ExtraFieldsMode(%d)", int(m))
	}
}

// ParseExtraFieldsMode parses "drop" or "error".
func ParseExtraFieldsMode(s string) (ExtraFieldsMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "drop":
		return ExtraFieldsDrop, nil
	case "error":
		return ExtraFieldsError, nil
	default:
		return 0, &OptionsError{Field: "ExtraFields", Message: fmt.Sprintf("unknown mode %q", s)}
	}
}

// Options configures a Converter.
type Options struct {
	// Delimiter separates fields. It must be a single valid rune other than
	// newline, carriage return, ']' and '\'. Default: ','
	Delimiter rune

	// Quote wraps fields that contain the delimiter, the quote or a newline.
	// Same restrictions as Delimiter, and the two must differ. Default: '"'
	Quote rune

	// IncludedColumns restricts which columns are read and written.
	// Empty means all columns.
	IncludedColumns []string

	// ExtraFields decides how rows longer than the heading row are handled.
	// Default: ExtraFieldsDrop
	ExtraFields ExtraFieldsMode

	// Logger receives V(1) diagnostics for rejected configuration and input.
	// A zero Logger discards everything.
	Logger logr.Logger
}

// DefaultOptions returns the comma/double-quote configuration with no column
// filter.
func DefaultOptions() Options {
	p := grammar.DefaultPolicy()
	return Options{
		Delimiter:   p.Delimiter,
		Quote:       p.Quote,
		ExtraFields: ExtraFieldsDrop,
		Logger:      logr.Discard(),
	}
}

// Validate checks the options.
func (o Options) Validate() error {
	if err := (grammar.Policy{Delimiter: o.Delimiter, Quote: o.Quote}).Validate(); err != nil {
		return err
	}
	if o.ExtraFields != ExtraFieldsDrop && o.ExtraFields != ExtraFieldsError {
		return &OptionsError{Field: "ExtraFields", Message: o.ExtraFields.String()}
	}
	return nil
}

// ParseCharacter converts the text form of a delimiter or quote to a rune.
// kind accepts the names SetCharacter accepts; s must be exactly one
// character that is allowed for a structural role.
func ParseCharacter(kind, s string) (rune, error) {
	k, err := grammar.ParseKind(kind)
	if err != nil {
		return 0, err
	}
	r, err := grammar.ParseCharacter(k, s)
	if err != nil {
		return 0, err
	}
	if grammar.IsReserved(r) {
		return 0, &PolicyError{Kind: k, Candidate: s, Rule: RuleReserved}
	}
	return r, nil
}
