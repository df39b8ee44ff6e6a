package grammar

import (
	"errors"
	"testing"
)

func TestPolicy_With(t *testing.T) {
	tests := []struct {
		name      string
		kind      Kind
		candidate rune
		want      Policy
		wantRule  Rule
	}{
		{"semicolon delimiter", KindDelimiter, ';', Policy{';', '"'}, 0},
		{"tab delimiter", KindDelimiter, '\t', Policy{'\t', '"'}, 0},
		{"single quote", KindQuote, '\'', Policy{',', '\''}, 0},
		{"non-ascii delimiter", KindDelimiter, '¦', Policy{'¦', '"'}, 0},
		{"same delimiter is no-op", KindDelimiter, ',', Policy{',', '"'}, 0},
		{"same quote is no-op", KindQuote, '"', Policy{',', '"'}, 0},
		{"newline", KindDelimiter, '\n', Policy{',', '"'}, RuleReserved},
		{"carriage return", KindQuote, '\r', Policy{',', '"'}, RuleReserved},
		{"right bracket", KindDelimiter, ']', Policy{',', '"'}, RuleReserved},
		{"backslash", KindQuote, '\\', Policy{',', '"'}, RuleReserved},
		{"nul", KindDelimiter, 0, Policy{',', '"'}, RuleReserved},
		{"invalid rune", KindDelimiter, 0x110000, Policy{',', '"'}, RuleReserved},
		{"delimiter equals quote", KindDelimiter, '"', Policy{',', '"'}, RuleCollision},
		{"quote equals delimiter", KindQuote, ',', Policy{',', '"'}, RuleCollision},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DefaultPolicy().With(tt.kind, tt.candidate)
			if got != tt.want {
				t.Errorf("With() policy = %+v, want %+v", got, tt.want)
			}
			if tt.wantRule == 0 {
				if err != nil {
					t.Fatalf("With() unexpected error: %v", err)
				}
				return
			}
			var pe *PolicyError
			if !errors.As(err, &pe) {
				t.Fatalf("With() error = %v, want *PolicyError", err)
			}
			if pe.Rule != tt.wantRule {
				t.Errorf("Rule = %v, want %v", pe.Rule, tt.wantRule)
			}
			if pe.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", pe.Kind, tt.kind)
			}
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("error %v does not wrap ErrConfiguration", err)
			}
		})
	}
}

func TestPolicy_Validate(t *testing.T) {
	if err := DefaultPolicy().Validate(); err != nil {
		t.Fatalf("default policy invalid: %v", err)
	}
	if err := (Policy{Delimiter: '|', Quote: '\''}).Validate(); err != nil {
		t.Fatalf("custom policy invalid: %v", err)
	}

	tests := []struct {
		name   string
		policy Policy
		want   error
	}{
		{"reserved delimiter", Policy{']', '"'}, ErrReservedCharacter},
		{"reserved quote", Policy{',', '\n'}, ErrReservedCharacter},
		{"collision", Policy{'x', 'x'}, ErrCharacterCollision},
		{"zero value", Policy{}, ErrReservedCharacter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.policy.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseCharacter(t *testing.T) {
	tests := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{",", ',', false},
		{"é", 'é', false},
		{"\t", '\t', false},
		{"", 0, true},
		{";;", 0, true},
		{"ab", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCharacter(KindDelimiter, tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrNotSingleCharacter) {
					t.Fatalf("ParseCharacter(%q) error = %v, want ErrNotSingleCharacter", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCharacter(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseCharacter(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"delimiter", KindDelimiter},
		{"separator", KindDelimiter},
		{"Quote", KindQuote},
		{" escaper ", KindQuote},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if err != nil {
			t.Fatalf("ParseKind(%q) unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseKind("comment"); !errors.Is(err, ErrConfiguration) {
		t.Errorf("ParseKind(comment) = %v, want ErrConfiguration", err)
	}
}

func TestPolicyError_Error(t *testing.T) {
	err := &PolicyError{Kind: KindDelimiter, Candidate: `\`, Rule: RuleReserved}
	want := `csvjson: invalid delimiter "\\": invalid character configuration: newline, carriage return, ']' and '\' are reserved`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestRule_String(t *testing.T) {
	tests := []struct {
		rule Rule
		want string
	}{
		{RuleNotSingleCharacter, "not-single-character"},
		{RuleReserved, "reserved-character"},
		{RuleCollision, "collision"},
		{Rule(42), "Rule(42)"},
	}
	for _, tt := range tests {
		if got := tt.rule.String(); got != tt.want {
			t.Errorf("Rule.String() = %q, want %q", got, tt.want)
		}
	}
}
