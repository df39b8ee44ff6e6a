package tokenizer

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// FuzzTokenizer checks that tokenizing never panics and that the token values
// reassemble the input.
func FuzzTokenizer(f *testing.F) {
	seeds := []string{
		"",
		"a",
		",",
		"\n",
		"\r\n",
		"\"",
		"\"\"",
		"a,b,c",
		"\"with,comma\"",
		"\"with\"\"quote\"",
		"a\nb\nc",
		"é¦x",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			t.Skip("token values are rune based")
		}
		for _, opts := range []Options{DefaultOptions(), {Delimiter: '¦', Quote: '\''}} {
			tok := NewTokenizerWithOptions(opts)
			tok.Initialize(input)

			var sb strings.Builder
			for {
				token, ok := tok.NextToken()
				if !ok {
					break
				}
				sb.WriteString(token.ValueString())
			}
			if sb.String() != input {
				t.Fatalf("tokens reassemble to %q, want %q", sb.String(), input)
			}
		}
	})
}
