package csvjson

import (
	"strings"

	"github.com/shapestone/shape-csvjson/internal/grammar"
)

// sniffCandidates are the delimiters SniffDelimiter chooses from.
var sniffCandidates = []rune{',', '\t', ';', '|'}

// SniffDelimiter guesses the delimiter of a sample table. Candidates are
// comma, tab, semicolon and pipe. Each is counted outside quoted fields on
// every row; a candidate with the same count on every row scores ten times
// that count, otherwise its count on the first row. A candidate equal to
// quote is never chosen. The default is ',', or ';' when quote is ','.
func SniffDelimiter(sample string, quote rune) rune {
	fallback := ','
	if quote == ',' {
		fallback = ';'
	}
	if sample == "" {
		return fallback
	}

	best := fallback
	bestScore := 0
	for _, delim := range sniffCandidates {
		if delim == quote {
			continue
		}

		rows := sampleRows(sample, delim, quote)
		counts := make([]int, 0, len(rows))
		for _, row := range rows {
			counts = append(counts, countDelimiter(row, delim, quote))
		}
		if len(counts) == 0 || counts[0] == 0 {
			continue
		}

		score := counts[0] * 10
		for _, n := range counts[1:] {
			if n != counts[0] {
				score = counts[0]
				break
			}
		}
		// Candidates are visited in preference order, so ties keep the earlier one.
		if score > bestScore {
			best = delim
			bestScore = score
		}
	}
	return best
}

// countDelimiter counts delim outside quoted sections of line.
func countDelimiter(line string, delim, quote rune) int {
	count := 0
	inQuotes := false

	for _, ch := range line {
		if ch == quote {
			inQuotes = !inQuotes
		} else if ch == delim && !inQuotes {
			count++
		}
	}
	return count
}

// sampleRows splits sample into rows, keeping quoted newlines inside their
// row when delim and quote form a valid policy.
func sampleRows(sample string, delim, quote rune) []string {
	p := grammar.Policy{Delimiter: delim, Quote: quote}
	if p.Validate() != nil {
		var rows []string
		for _, line := range strings.Split(sample, "\n") {
			if line != "" {
				rows = append(rows, line)
			}
		}
		return rows
	}
	return grammar.Compile(p).SplitRows(sample)
}
