// Package grammar compiles the row, field and escape rules for a delimiter
// and quote policy, and applies them to split text into rows, rows into
// decoded fields, and to escape values for output.
//
// The rules are table-driven state machines over four character classes
// (other, delimiter, quote, newline). A Grammar is immutable once compiled;
// changing the policy means compiling a new one.
package grammar

import "unicode/utf8"

// charClass is the class of a character under a policy.
type charClass uint8

const (
	classOther charClass = iota
	classDelimiter
	classQuote
	classNewline
	numClasses
)

// rowState tracks quoting while looking for row boundaries.
type rowState uint8

const (
	rowUnquoted rowState = iota
	rowQuoted
	rowQuoteSeen // a quote inside a quoted span: closing, or the first half of ""
	numRowStates
)

type rowAction uint8

const (
	rowKeep rowAction = iota // character belongs to the current row
	rowEnd                   // unescaped newline: the row ends before it
)

type rowTransition struct {
	next   rowState
	action rowAction
}

// fieldState tracks quoting while decoding one row.
type fieldState uint8

const (
	fieldStart fieldState = iota
	fieldUnquoted
	fieldQuoted
	fieldQuoteSeen
	numFieldStates
)

type fieldAction uint8

const (
	actionNone fieldAction = iota
	actionAddChar
	actionEndField
	actionOpenQuote
	actionEscapedQuote
)

type fieldTransition struct {
	next   fieldState
	action fieldAction
}

// Grammar is the compiled rule set for one Policy.
//
// Compiling equal policies yields equal Grammar values, so a Grammar can be
// compared with == to check it matches a policy.
type Grammar struct {
	policy Policy

	// ascii classifies characters below utf8.RuneSelf. Non-ASCII runes are
	// compared with the policy directly.
	ascii [utf8.RuneSelf]charClass

	rows   [numRowStates][numClasses]rowTransition
	fields [numFieldStates][numClasses]fieldTransition

	// escape holds every character whose presence forces quoting.
	escape string
}

// Compile builds the grammar for p. It does not validate p; callers check
// p.Validate first.
func Compile(p Policy) *Grammar {
	g := &Grammar{policy: p}
	g.compileClasses()
	g.compileRowRule()
	g.compileFieldRule()
	g.escape = "\n" + string(p.Delimiter) + string(p.Quote)
	return g
}

// Policy returns the policy the grammar was compiled for.
func (g *Grammar) Policy() Policy {
	return g.policy
}

func (g *Grammar) compileClasses() {
	for i := range g.ascii {
		g.ascii[i] = classOther
	}
	g.ascii['\n'] = classNewline
	if d := g.policy.Delimiter; d >= 0 && d < utf8.RuneSelf {
		g.ascii[d] = classDelimiter
	}
	if q := g.policy.Quote; q >= 0 && q < utf8.RuneSelf {
		g.ascii[q] = classQuote
	}
}

// compileRowRule fills the row table. A row is any run of unquoted spans,
// quoted spans and delimiters; only a newline outside quotes ends it.
func (g *Grammar) compileRowRule() {
	t := &g.rows

	t[rowUnquoted][classOther] = rowTransition{rowUnquoted, rowKeep}
	t[rowUnquoted][classDelimiter] = rowTransition{rowUnquoted, rowKeep}
	t[rowUnquoted][classQuote] = rowTransition{rowQuoted, rowKeep}
	t[rowUnquoted][classNewline] = rowTransition{rowUnquoted, rowEnd}

	t[rowQuoted][classOther] = rowTransition{rowQuoted, rowKeep}
	t[rowQuoted][classDelimiter] = rowTransition{rowQuoted, rowKeep}
	t[rowQuoted][classQuote] = rowTransition{rowQuoteSeen, rowKeep}
	t[rowQuoted][classNewline] = rowTransition{rowQuoted, rowKeep}

	t[rowQuoteSeen][classOther] = rowTransition{rowUnquoted, rowKeep}
	t[rowQuoteSeen][classDelimiter] = rowTransition{rowUnquoted, rowKeep}
	t[rowQuoteSeen][classQuote] = rowTransition{rowQuoted, rowKeep}
	t[rowQuoteSeen][classNewline] = rowTransition{rowUnquoted, rowEnd}
}

// compileFieldRule fills the field table. A field is either an unquoted span
// or a quoted span whose delimiting quotes are dropped and whose doubled
// quotes collapse. Malformed input never errors: stray quotes in unquoted
// spans and text after a closing quote are kept literally.
func (g *Grammar) compileFieldRule() {
	t := &g.fields

	t[fieldStart][classOther] = fieldTransition{fieldUnquoted, actionAddChar}
	t[fieldStart][classDelimiter] = fieldTransition{fieldStart, actionEndField}
	t[fieldStart][classQuote] = fieldTransition{fieldQuoted, actionOpenQuote}
	t[fieldStart][classNewline] = fieldTransition{fieldUnquoted, actionAddChar}

	t[fieldUnquoted][classOther] = fieldTransition{fieldUnquoted, actionAddChar}
	t[fieldUnquoted][classDelimiter] = fieldTransition{fieldStart, actionEndField}
	t[fieldUnquoted][classQuote] = fieldTransition{fieldUnquoted, actionAddChar}
	t[fieldUnquoted][classNewline] = fieldTransition{fieldUnquoted, actionAddChar}

	t[fieldQuoted][classOther] = fieldTransition{fieldQuoted, actionAddChar}
	t[fieldQuoted][classDelimiter] = fieldTransition{fieldQuoted, actionAddChar}
	t[fieldQuoted][classQuote] = fieldTransition{fieldQuoteSeen, actionNone}
	t[fieldQuoted][classNewline] = fieldTransition{fieldQuoted, actionAddChar}

	t[fieldQuoteSeen][classOther] = fieldTransition{fieldUnquoted, actionAddChar}
	t[fieldQuoteSeen][classDelimiter] = fieldTransition{fieldStart, actionEndField}
	t[fieldQuoteSeen][classQuote] = fieldTransition{fieldQuoted, actionEscapedQuote}
	t[fieldQuoteSeen][classNewline] = fieldTransition{fieldUnquoted, actionAddChar}
}

// classify returns the class of r under the compiled policy.
func (g *Grammar) classify(r rune) charClass {
	if r >= 0 && r < utf8.RuneSelf {
		return g.ascii[r]
	}
	switch r {
	case g.policy.Delimiter:
		return classDelimiter
	case g.policy.Quote:
		return classQuote
	}
	return classOther
}
