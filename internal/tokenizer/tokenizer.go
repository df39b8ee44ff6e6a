package tokenizer

import (
	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// Options configures the characters the tokenizer treats as structural.
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

// NewTokenizer creates a tokenizer with the default delimiter and quote.
func NewTokenizer() tokenizer.Tokenizer {
	return NewTokenizerWithOptions(DefaultOptions())
}

// NewTokenizerWithOptions creates a tokenizer for the given characters.
//
// Matchers are tried in order:
// 1. Newline
// 2. Delimiter
// 3. Quote
// 4. Field content
func NewTokenizerWithOptions(opts Options) tokenizer.Tokenizer {
	return tokenizer.NewTokenizerWithoutWhitespace(
		tokenizer.StringMatcherFunc(TokenNewline, "\n"),
		tokenizer.StringMatcherFunc(TokenDelimiter, string(opts.Delimiter)),
		tokenizer.StringMatcherFunc(TokenQuote, string(opts.Quote)),
		FieldContentMatcher(opts),
	)
}

// NewTokenizerWithStream creates a default tokenizer reading from stream.
func NewTokenizerWithStream(stream tokenizer.Stream) tokenizer.Tokenizer {
	return NewTokenizerWithStreamAndOptions(stream, DefaultOptions())
}

// NewTokenizerWithStreamAndOptions creates a tokenizer reading from stream.
func NewTokenizerWithStreamAndOptions(stream tokenizer.Stream, opts Options) tokenizer.Tokenizer {
	tok := NewTokenizerWithOptions(opts)
	tok.InitializeFromStream(stream)
	return tok
}

// FieldContentMatcher matches runs of characters that are not the delimiter,
// the quote or LF.
//
// Grammar:
//
//	Field = Character+ ;
//	Character = <any character except delimiter, quote, LF> ;
//
// Uses ByteStream when both characters are ASCII.
func FieldContentMatcher(opts Options) tokenizer.Matcher {
	delim, quote := opts.Delimiter, opts.Quote
	ascii := delim >= 0 && delim < 128 && quote >= 0 && quote < 128
	return func(stream tokenizer.Stream) *tokenizer.Token {
		if ascii {
			if byteStream, ok := stream.(tokenizer.ByteStream); ok {
				return fieldContentByte(byteStream, byte(delim), byte(quote))
			}
		}
		return fieldContentRune(stream, delim, quote)
	}
}

func fieldContentByte(stream tokenizer.ByteStream, delim, quote byte) *tokenizer.Token {
	startPos := stream.BytePosition()

	for {
		b, ok := stream.PeekByte()
		if !ok {
			break
		}
		if b == delim || b == quote || b == '\n' {
			break
		}
		stream.NextByte()
	}

	if stream.BytePosition() == startPos {
		return nil
	}

	value := stream.SliceFrom(startPos)
	return tokenizer.NewToken(TokenField, []rune(string(value)))
}

func fieldContentRune(stream tokenizer.Stream, delim, quote rune) *tokenizer.Token {
	var value []rune

	for {
		r, ok := stream.PeekChar()
		if !ok {
			break
		}
		if r == delim || r == quote || r == '\n' {
			break
		}
		stream.NextChar()
		value = append(value, r)
	}

	if len(value) == 0 {
		return nil
	}

	return tokenizer.NewToken(TokenField, value)
}
