package grammar

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Kind names one of the two configurable structural characters.
type Kind int

const (
	// KindDelimiter is the field separator (default ',').
	KindDelimiter Kind = iota
	// KindQuote is the character that wraps escaped fields (default '"').
	KindQuote
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindDelimiter:
		return "delimiter"
	case KindQuote:
		return "quote"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) other() Kind {
	if k == KindDelimiter {
		return KindQuote
	}
	return KindDelimiter
}

// ParseKind parses a kind name. "separator" and "escaper" are accepted as
// aliases of "delimiter" and "quote".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "delimiter", "separator":
		return KindDelimiter, nil
	case "quote", "escaper":
		return KindQuote, nil
	default:
		return 0, fmt.Errorf("%w: unknown character kind %q", ErrConfiguration, s)
	}
}

// Rule identifies the constraint a rejected character violated.
type Rule int

const (
	// RuleNotSingleCharacter means the candidate was not exactly one character.
	RuleNotSingleCharacter Rule = iota + 1
	// RuleReserved means the candidate is newline, carriage return, ']' or '\'.
	RuleReserved
	// RuleCollision means the candidate equals the other structural character.
	RuleCollision
)

// String returns the rule name.
func (r Rule) String() string {
	switch r {
	case RuleNotSingleCharacter:
		return "not-single-character"
	case RuleReserved:
		return "reserved-character"
	case RuleCollision:
		return "collision"
	default:
		return fmt.Sprintf("Rule(%d)", int(r))
	}
}

// Configuration errors.
var (
	// ErrConfiguration is the root of every rejected character change.
	ErrConfiguration = errors.New("invalid character configuration")

	// ErrNotSingleCharacter indicates a candidate that is not exactly one character.
	ErrNotSingleCharacter = fmt.Errorf("%w: must be exactly one character", ErrConfiguration)

	// ErrReservedCharacter indicates newline, carriage return, ']' or '\'.
	ErrReservedCharacter = fmt.Errorf("%w: newline, carriage return, ']' and '\\' are reserved", ErrConfiguration)

	// ErrCharacterCollision indicates the delimiter and quote would be equal.
	ErrCharacterCollision = fmt.Errorf("%w: delimiter and quote must differ", ErrConfiguration)
)

// PolicyError reports a rejected character change. The policy it was
// checked against is left unchanged.
type PolicyError struct {
	Kind      Kind
	Candidate string
	Rule      Rule
}

// Error returns a message naming the kind, the candidate and the violated rule.
func (e *PolicyError) Error() string {
	return fmt.Sprintf("csvjson: invalid %s %q: %v", e.Kind, e.Candidate, e.Unwrap())
}

// Unwrap returns the sentinel for the violated rule.
func (e *PolicyError) Unwrap() error {
	switch e.Rule {
	case RuleNotSingleCharacter:
		return ErrNotSingleCharacter
	case RuleReserved:
		return ErrReservedCharacter
	case RuleCollision:
		return ErrCharacterCollision
	default:
		return ErrConfiguration
	}
}

// Policy holds the delimiter and quote characters.
type Policy struct {
	Delimiter rune
	Quote     rune
}

// DefaultPolicy returns the comma/double-quote policy.
func DefaultPolicy() Policy {
	return Policy{Delimiter: ',', Quote: '"'}
}

// Get returns the character assigned to kind.
func (p Policy) Get(kind Kind) rune {
	if kind == KindQuote {
		return p.Quote
	}
	return p.Delimiter
}

// With returns p with kind set to candidate. Assigning the current value is
// a no-op. A rejected candidate returns p unchanged and a *PolicyError.
func (p Policy) With(kind Kind, candidate rune) (Policy, error) {
	if p.Get(kind) == candidate {
		return p, nil
	}
	if IsReserved(candidate) {
		return p, &PolicyError{Kind: kind, Candidate: string(candidate), Rule: RuleReserved}
	}
	if p.Get(kind.other()) == candidate {
		return p, &PolicyError{Kind: kind, Candidate: string(candidate), Rule: RuleCollision}
	}
	if kind == KindQuote {
		p.Quote = candidate
	} else {
		p.Delimiter = candidate
	}
	return p, nil
}

// Validate checks both characters and their uniqueness.
func (p Policy) Validate() error {
	if IsReserved(p.Delimiter) {
		return &PolicyError{Kind: KindDelimiter, Candidate: string(p.Delimiter), Rule: RuleReserved}
	}
	if IsReserved(p.Quote) {
		return &PolicyError{Kind: KindQuote, Candidate: string(p.Quote), Rule: RuleReserved}
	}
	if p.Delimiter == p.Quote {
		return &PolicyError{Kind: KindQuote, Candidate: string(p.Quote), Rule: RuleCollision}
	}
	return nil
}

// ParseCharacter converts s to a rune, requiring exactly one character.
func ParseCharacter(kind Kind, s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, &PolicyError{Kind: kind, Candidate: s, Rule: RuleNotSingleCharacter}
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// IsReserved reports whether r can never be a delimiter or quote: line
// terminators, ']' and '\', NUL and anything that is not a valid rune.
func IsReserved(r rune) bool {
	switch r {
	case 0, '\n', '\r', ']', '\\', utf8.RuneError:
		return true
	}
	return !utf8.ValidRune(r)
}
