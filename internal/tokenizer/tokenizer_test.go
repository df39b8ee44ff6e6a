package tokenizer

import (
	"strings"
	"testing"

	"github.com/shapestone/shape-core/pkg/tokenizer"
)

type expectedToken struct {
	kind  string
	value string
}

func TestTokenKinds(t *testing.T) {
	kinds := map[string]string{
		"delimiter": TokenDelimiter,
		"quote":     TokenQuote,
		"newline":   TokenNewline,
		"field":     TokenField,
		"EOF":       TokenEOF,
	}
	seen := make(map[string]string)
	for name, kind := range kinds {
		if kind == "" {
			t.Errorf("%s token kind is empty", name)
		}
		if other, ok := seen[kind]; ok {
			t.Errorf("%s and %s share token kind %q", name, other, kind)
		}
		seen[kind] = name
	}
}

func TestNewTokenizer_BasicTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []expectedToken
	}{
		{
			name:     "single delimiter",
			input:    ",",
			expected: []expectedToken{{TokenDelimiter, ","}},
		},
		{
			name:     "single field",
			input:    "abc",
			expected: []expectedToken{{TokenField, "abc"}},
		},
		{
			name:     "newline",
			input:    "\n",
			expected: []expectedToken{{TokenNewline, "\n"}},
		},
		{
			name:  "carriage return is field content",
			input: "a\r\nb",
			expected: []expectedToken{
				{TokenField, "a\r"},
				{TokenNewline, "\n"},
				{TokenField, "b"},
			},
		},
		{
			name:  "simple row",
			input: "a,b,c",
			expected: []expectedToken{
				{TokenField, "a"},
				{TokenDelimiter, ","},
				{TokenField, "b"},
				{TokenDelimiter, ","},
				{TokenField, "c"},
			},
		},
		{
			name:  "quoted field with delimiter",
			input: `"a,b"`,
			expected: []expectedToken{
				{TokenQuote, `"`},
				{TokenField, "a"},
				{TokenDelimiter, ","},
				{TokenField, "b"},
				{TokenQuote, `"`},
			},
		},
		{
			name:  "escaped quote",
			input: `"say ""hi"""`,
			expected: []expectedToken{
				{TokenQuote, `"`},
				{TokenField, "say "},
				{TokenQuote, `"`},
				{TokenQuote, `"`},
				{TokenField, "hi"},
				{TokenQuote, `"`},
				{TokenQuote, `"`},
				{TokenQuote, `"`},
			},
		},
		{
			name:  "empty fields",
			input: "a,,",
			expected: []expectedToken{
				{TokenField, "a"},
				{TokenDelimiter, ","},
				{TokenDelimiter, ","},
			},
		},
		{
			name:  "quoted newline",
			input: "\"line1\nline2\"",
			expected: []expectedToken{
				{TokenQuote, `"`},
				{TokenField, "line1"},
				{TokenNewline, "\n"},
				{TokenField, "line2"},
				{TokenQuote, `"`},
			},
		},
		{
			name:  "multiple rows",
			input: "a,b\nx,y\n",
			expected: []expectedToken{
				{TokenField, "a"},
				{TokenDelimiter, ","},
				{TokenField, "b"},
				{TokenNewline, "\n"},
				{TokenField, "x"},
				{TokenDelimiter, ","},
				{TokenField, "y"},
				{TokenNewline, "\n"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := NewTokenizer()
			tok.Initialize(tt.input)
			assertTokens(t, tok, tt.expected)
		})
	}
}

func TestNewTokenizerWithOptions(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		input    string
		expected []expectedToken
	}{
		{
			name:  "semicolon and apostrophe",
			opts:  Options{Delimiter: ';', Quote: '\''},
			input: `'a;b';"c",d`,
			expected: []expectedToken{
				{TokenQuote, "'"},
				{TokenField, "a"},
				{TokenDelimiter, ";"},
				{TokenField, "b"},
				{TokenQuote, "'"},
				{TokenDelimiter, ";"},
				{TokenField, `"c",d`},
			},
		},
		{
			name:  "tab delimiter",
			opts:  Options{Delimiter: '\t', Quote: '"'},
			input: "a\tb,c",
			expected: []expectedToken{
				{TokenField, "a"},
				{TokenDelimiter, "\t"},
				{TokenField, "b,c"},
			},
		},
		{
			name:  "non-ascii characters",
			opts:  Options{Delimiter: '¦', Quote: '«'},
			input: "é¦«x¦y«",
			expected: []expectedToken{
				{TokenField, "é"},
				{TokenDelimiter, "¦"},
				{TokenQuote, "«"},
				{TokenField, "x"},
				{TokenDelimiter, "¦"},
				{TokenField, "y"},
				{TokenQuote, "«"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := NewTokenizerWithOptions(tt.opts)
			tok.Initialize(tt.input)
			assertTokens(t, tok, tt.expected)
		})
	}
}

func TestTokenizer_LargeTableFromReader(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 100; i++ {
		sb.WriteString(`"field1";"field2";"field3"`)
		sb.WriteString("\n")
	}

	stream := tokenizer.NewStreamFromReader(strings.NewReader(sb.String()))
	tok := NewTokenizerWithStreamAndOptions(stream, Options{Delimiter: ';', Quote: '"'})

	count := 0
	for {
		_, ok := tok.NextToken()
		if !ok {
			if !stream.IsEos() {
				t.Fatalf("tokenization stopped after %d tokens before end of stream", count)
			}
			break
		}
		count++
	}

	// Per row: three quoted fields (3 tokens each), two delimiters, one newline.
	if want := 100 * 12; count != want {
		t.Errorf("got %d tokens, want %d", count, want)
	}
}

func assertTokens(t *testing.T, tok tokenizer.Tokenizer, expected []expectedToken) {
	t.Helper()
	for i, exp := range expected {
		token, ok := tok.NextToken()
		if !ok {
			t.Fatalf("token %d: expected %s %q, got none", i, exp.kind, exp.value)
		}
		if token.Kind() != exp.kind {
			t.Errorf("token %d: kind = %s, want %s (value %q)", i, token.Kind(), exp.kind, token.ValueString())
		}
		if token.ValueString() != exp.value {
			t.Errorf("token %d: value = %q, want %q", i, token.ValueString(), exp.value)
		}
	}
	if token, ok := tok.NextToken(); ok {
		t.Errorf("unexpected extra token %s %q", token.Kind(), token.ValueString())
	}
}
