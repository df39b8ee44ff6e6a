package grammar

import (
	"strings"
	"unicode/utf8"
)

// NeedsQuoting reports whether s contains a newline, the delimiter or the
// quote, in which case it must be written as a quoted field.
func (g *Grammar) NeedsQuoting(s string) bool {
	return strings.ContainsAny(s, g.escape)
}

// EncodeField returns s escaped for output: wrapped in quotes with every
// quote doubled when NeedsQuoting(s), otherwise s unchanged.
func (g *Grammar) EncodeField(s string) string {
	if !g.NeedsQuoting(s) {
		return s
	}
	buf := g.appendField(getBuffer(), s)
	out := string(buf)
	putBuffer(buf)
	return out
}

// JoinFields encodes each value and joins them with the delimiter.
//
// A row holding one empty value is written as an empty quoted field, since
// an empty line is not a row.
func (g *Grammar) JoinFields(values []string) string {
	if len(values) == 1 && values[0] == "" {
		q := string(g.policy.Quote)
		return q + q
	}
	buf := getBuffer()
	for i, v := range values {
		if i > 0 {
			buf = utf8.AppendRune(buf, g.policy.Delimiter)
		}
		buf = g.appendField(buf, v)
	}
	out := string(buf)
	putBuffer(buf)
	return out
}

// appendField appends the encoded form of s to dst.
func (g *Grammar) appendField(dst []byte, s string) []byte {
	if !g.NeedsQuoting(s) {
		return append(dst, s...)
	}
	q := g.policy.Quote
	dst = utf8.AppendRune(dst, q)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == q {
			dst = utf8.AppendRune(dst, q)
		}
		dst = append(dst, s[i:i+size]...)
		i += size
	}
	return utf8.AppendRune(dst, q)
}
