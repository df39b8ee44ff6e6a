// Package tokenizer provides delimiter-aware CSV tokenization using Shape's
// tokenizer framework.
package tokenizer

// Token kinds emitted for a CSV table. The tokenizer works at the character
// level; the parser decides where quoted fields begin and end.
const (
	TokenDelimiter = "Delimiter" // configured field separator
	TokenQuote     = "Quote"     // configured quote character
	TokenNewline   = "Newline"   // \n (a carriage return is field data)

	// TokenField is a run of characters that are none of the above.
	TokenField = "Field"

	TokenEOF = "EOF"
)
