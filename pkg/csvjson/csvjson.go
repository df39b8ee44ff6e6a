// Package csvjson converts between delimited text tables and ordered
// key/value records.
//
// A table is newline-separated rows of delimiter-separated fields. A field
// containing the delimiter, the quote character or a newline is wrapped in
// quotes, with each quote inside doubled. The first row holds the headings.
// Both the delimiter and the quote are configurable single characters.
//
// # Reading
//
//	c := csvjson.New()
//	records, err := c.TableToRecords("name,note\nAda,\"says \"\"hi\"\"\"")
//	// records[0]: name=Ada note=says "hi"
//
// Reading never fails on malformed quoting; use ValidateTable for strict
// checking with line and column information.
//
// # Writing
//
//	table, err := c.RecordsToTable([]*csvjson.Record{
//	    csvjson.RecordOf("a", 1, "b", "x,y"),
//	})
//	// a,b
//	// 1,"x,y"
//
// # Configuration
//
// Delimiter, quote and the included-columns filter are per Converter.
// SetDelimiter, SetQuote and SetCharacter reject characters that would make
// tables ambiguous with a *PolicyError and leave the configuration as it
// was:
//
//	err := c.SetCharacter("separator", `\`) // errors.Is(err, csvjson.ErrReservedCharacter)
//
// # Thread Safety
//
// A Converter is safe for concurrent use, including configuration changes
// concurrent with conversions. Each conversion uses one consistent
// configuration snapshot.
package csvjson

var defaultConverter = New()

// TableToRecords converts text with the default configuration.
func TableToRecords(text string) ([]*Record, error) {
	return defaultConverter.TableToRecords(text)
}

// RecordsToTable converts records with the default configuration.
func RecordsToTable(records []*Record) (string, error) {
	return defaultConverter.RecordsToTable(records)
}

// ValidateTable strictly checks text with the default configuration.
func ValidateTable(text string) error {
	return defaultConverter.ValidateTable(text)
}
