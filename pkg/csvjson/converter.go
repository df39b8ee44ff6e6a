package csvjson

import (
	"sync"
	"sync/atomic"

	"github.com/go-logr/logr"

	"github.com/shapestone/shape-csvjson/internal/grammar"
)

// snapshot is one immutable configuration. A grammar is only ever paired
// with the policy it was compiled for.
type snapshot struct {
	grammar *grammar.Grammar
	columns []string
	filter  map[string]struct{}
}

func newSnapshot(g *grammar.Grammar, columns []string) *snapshot {
	s := &snapshot{grammar: g}
	if len(columns) > 0 {
		s.columns = append([]string(nil), columns...)
		s.filter = make(map[string]struct{}, len(columns))
		for _, col := range columns {
			s.filter[col] = struct{}{}
		}
	}
	return s
}

// included reports whether heading passes the column filter.
func (s *snapshot) included(heading string) bool {
	if s.filter == nil {
		return true
	}
	_, ok := s.filter[heading]
	return ok
}

// Converter converts between delimited text tables and ordered records.
//
// A Converter is safe for concurrent use. Every operation reads a single
// configuration snapshot, so a conversion running while the delimiter or
// quote changes uses either the old or the new configuration, never a mix.
type Converter struct {
	mu    sync.Mutex // serializes configuration changes
	state atomic.Pointer[snapshot]
	extra ExtraFieldsMode
	log   logr.Logger
}

// New returns a Converter with DefaultOptions.
func New() *Converter {
	c, err := NewWithOptions(DefaultOptions())
	if err != nil {
		panic(err)
	}
	return c
}

// NewWithOptions returns a Converter for opts, or the error from
// opts.Validate.
func NewWithOptions(opts Options) (*Converter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	c := &Converter{
		extra: opts.ExtraFields,
		log:   log,
	}
	p := grammar.Policy{Delimiter: opts.Delimiter, Quote: opts.Quote}
	c.state.Store(newSnapshot(grammar.Compile(p), opts.IncludedColumns))
	return c, nil
}

func (c *Converter) load() *snapshot {
	return c.state.Load()
}

// Delimiter returns the current field delimiter.
func (c *Converter) Delimiter() rune {
	return c.load().grammar.Policy().Delimiter
}

// Quote returns the current quote character.
func (c *Converter) Quote() rune {
	return c.load().grammar.Policy().Quote
}

// SetDelimiter changes the delimiter. A rejected change returns a
// *PolicyError and leaves the converter unchanged.
func (c *Converter) SetDelimiter(r rune) error {
	return c.setCharacter(grammar.KindDelimiter, r)
}

// SetQuote changes the quote character. A rejected change returns a
// *PolicyError and leaves the converter unchanged.
func (c *Converter) SetQuote(r rune) error {
	return c.setCharacter(grammar.KindQuote, r)
}

// SetCharacter changes the character of the named kind: "delimiter" (alias
// "separator") or "quote" (alias "escaper"). candidate must be exactly one
// character.
func (c *Converter) SetCharacter(kind, candidate string) error {
	k, err := grammar.ParseKind(kind)
	if err != nil {
		c.log.V(1).Info("rejected character change", "kind", kind, "candidate", candidate, "error", err.Error())
		return err
	}
	r, err := grammar.ParseCharacter(k, candidate)
	if err != nil {
		c.logRejected(err)
		return err
	}
	return c.setCharacter(k, r)
}

func (c *Converter) setCharacter(kind grammar.Kind, r rune) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur := c.load()
	policy := cur.grammar.Policy()
	next, err := policy.With(kind, r)
	if err != nil {
		c.logRejected(err)
		return err
	}
	if next == policy {
		return nil
	}

	s := &snapshot{grammar: grammar.Compile(next), columns: cur.columns, filter: cur.filter}
	c.state.Store(s)
	c.log.V(1).Info("character changed", "kind", kind.String(), "value", string(r))
	return nil
}

func (c *Converter) logRejected(err error) {
	if pe, ok := err.(*PolicyError); ok {
		c.log.V(1).Info("rejected character change",
			"kind", pe.Kind.String(), "candidate", pe.Candidate, "rule", pe.Rule.String())
		return
	}
	c.log.V(1).Info("rejected character change", "error", err.Error())
}

// IncludedColumns returns a copy of the column filter. Empty means all
// columns.
func (c *Converter) IncludedColumns() []string {
	cols := c.load().columns
	out := make([]string, len(cols))
	copy(out, cols)
	return out
}

// SetIncludedColumns replaces the column filter. nil or empty removes it.
func (c *Converter) SetIncludedColumns(columns []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Store(newSnapshot(c.load().grammar, columns))
}

// SetIncludedColumnValues replaces the column filter with scalar
// identifiers, converted with Stringify. A nil or non-scalar item is
// rejected with an error wrapping ErrInvalidColumns and the filter is left
// unchanged.
func (c *Converter) SetIncludedColumnValues(values []any) error {
	columns, err := ColumnsFromValues(values)
	if err != nil {
		c.log.V(1).Info("rejected included columns", "error", err.Error())
		return err
	}
	c.SetIncludedColumns(columns)
	return nil
}
