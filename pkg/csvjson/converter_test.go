package csvjson_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/google/go-cmp/cmp"

	"github.com/shapestone/shape-csvjson/pkg/csvjson"
)

func TestNew_Defaults(t *testing.T) {
	c := csvjson.New()
	if c.Delimiter() != ',' {
		t.Errorf("Delimiter() = %q, want ','", c.Delimiter())
	}
	if c.Quote() != '"' {
		t.Errorf("Quote() = %q, want '\"'", c.Quote())
	}
	if cols := c.IncludedColumns(); len(cols) != 0 {
		t.Errorf("IncludedColumns() = %q, want empty", cols)
	}
}

func TestNewWithOptions_Invalid(t *testing.T) {
	tests := []struct {
		name string
		opts csvjson.Options
		want error
	}{
		{"reserved delimiter", csvjson.Options{Delimiter: '\n', Quote: '"'}, csvjson.ErrReservedCharacter},
		{"reserved quote", csvjson.Options{Delimiter: ',', Quote: ']'}, csvjson.ErrReservedCharacter},
		{"collision", csvjson.Options{Delimiter: ';', Quote: ';'}, csvjson.ErrCharacterCollision},
		{"zero value", csvjson.Options{}, csvjson.ErrReservedCharacter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := csvjson.NewWithOptions(tt.opts)
			if !errors.Is(err, tt.want) {
				t.Fatalf("NewWithOptions() error = %v, want %v", err, tt.want)
			}
			if c != nil {
				t.Error("NewWithOptions() returned a converter with an error")
			}
		})
	}

	opts := csvjson.DefaultOptions()
	opts.ExtraFields = csvjson.ExtraFieldsMode(7)
	var oerr *csvjson.OptionsError
	if _, err := csvjson.NewWithOptions(opts); !errors.As(err, &oerr) {
		t.Errorf("unknown ExtraFields mode: error = %v, want *OptionsError", err)
	}
}

func TestConverter_SetCharacter(t *testing.T) {
	tests := []struct {
		name      string
		kind      string
		candidate string
		wantDelim rune
		wantQuote rune
		wantErr   error
		wantRule  csvjson.Rule
	}{
		{name: "separator alias", kind: "separator", candidate: ";", wantDelim: ';', wantQuote: '"'},
		{name: "escaper alias", kind: "escaper", candidate: "'", wantDelim: ',', wantQuote: '\''},
		{name: "canonical name", kind: "Delimiter", candidate: "\t", wantDelim: '\t', wantQuote: '"'},
		{name: "same value is a no-op", kind: "separator", candidate: ",", wantDelim: ',', wantQuote: '"'},
		{name: "non-ascii", kind: "quote", candidate: "«", wantDelim: ',', wantQuote: '«'},
		{
			name: "backslash", kind: "separator", candidate: `\`,
			wantDelim: ',', wantQuote: '"', wantErr: csvjson.ErrReservedCharacter, wantRule: csvjson.RuleReserved,
		},
		{
			name: "right bracket", kind: "escaper", candidate: "]",
			wantDelim: ',', wantQuote: '"', wantErr: csvjson.ErrReservedCharacter, wantRule: csvjson.RuleReserved,
		},
		{
			name: "newline", kind: "separator", candidate: "\n",
			wantDelim: ',', wantQuote: '"', wantErr: csvjson.ErrReservedCharacter, wantRule: csvjson.RuleReserved,
		},
		{
			name: "carriage return", kind: "separator", candidate: "\r",
			wantDelim: ',', wantQuote: '"', wantErr: csvjson.ErrReservedCharacter, wantRule: csvjson.RuleReserved,
		},
		{
			name: "separator equal to quote", kind: "separator", candidate: `"`,
			wantDelim: ',', wantQuote: '"', wantErr: csvjson.ErrCharacterCollision, wantRule: csvjson.RuleCollision,
		},
		{
			name: "two characters", kind: "separator", candidate: ";;",
			wantDelim: ',', wantQuote: '"', wantErr: csvjson.ErrNotSingleCharacter, wantRule: csvjson.RuleNotSingleCharacter,
		},
		{
			name: "empty", kind: "quote", candidate: "",
			wantDelim: ',', wantQuote: '"', wantErr: csvjson.ErrNotSingleCharacter, wantRule: csvjson.RuleNotSingleCharacter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := csvjson.New()
			err := c.SetCharacter(tt.kind, tt.candidate)

			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("SetCharacter() unexpected error: %v", err)
				}
			} else {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("SetCharacter() error = %v, want %v", err, tt.wantErr)
				}
				if !errors.Is(err, csvjson.ErrConfiguration) {
					t.Errorf("error %v does not wrap ErrConfiguration", err)
				}
				var pe *csvjson.PolicyError
				if !errors.As(err, &pe) {
					t.Fatalf("error %T is not a *PolicyError", err)
				}
				if pe.Rule != tt.wantRule {
					t.Errorf("Rule = %v, want %v", pe.Rule, tt.wantRule)
				}
			}

			if c.Delimiter() != tt.wantDelim || c.Quote() != tt.wantQuote {
				t.Errorf("policy = (%q, %q), want (%q, %q)", c.Delimiter(), c.Quote(), tt.wantDelim, tt.wantQuote)
			}
		})
	}
}

func TestConverter_SetCharacter_UnknownKind(t *testing.T) {
	c := csvjson.New()
	err := c.SetCharacter("comment", "#")
	if !errors.Is(err, csvjson.ErrConfiguration) {
		t.Fatalf("SetCharacter() error = %v, want ErrConfiguration", err)
	}
}

func TestConverter_SetDelimiterAndQuote(t *testing.T) {
	c := csvjson.New()
	if err := c.SetQuote('\''); err != nil {
		t.Fatalf("SetQuote() error: %v", err)
	}
	// The old quote is free once the quote moved.
	if err := c.SetDelimiter('"'); err != nil {
		t.Fatalf("SetDelimiter() error: %v", err)
	}
	if err := c.SetQuote('"'); !errors.Is(err, csvjson.ErrCharacterCollision) {
		t.Errorf("SetQuote() error = %v, want collision", err)
	}

	got := c.FormatRow([]string{`a"b`, "it's"})
	if want := `'a"b'"'it''s'`; got != want {
		t.Errorf("FormatRow() = %q, want %q", got, want)
	}
}

func TestConverter_IncludedColumns(t *testing.T) {
	c := csvjson.New()
	cols := []string{"b", "a"}
	c.SetIncludedColumns(cols)
	cols[0] = "changed"

	got := c.IncludedColumns()
	if diff := cmp.Diff([]string{"b", "a"}, got); diff != "" {
		t.Errorf("IncludedColumns() mismatch (-want +got):\n%s", diff)
	}
	got[0] = "mutated"
	if c.IncludedColumns()[0] != "b" {
		t.Error("IncludedColumns() exposes internal state")
	}

	c.SetIncludedColumns(nil)
	if len(c.IncludedColumns()) != 0 {
		t.Errorf("IncludedColumns() after reset = %q", c.IncludedColumns())
	}
}

func TestConverter_SetIncludedColumnValues(t *testing.T) {
	c := csvjson.New()
	if err := c.SetIncludedColumnValues([]any{"name", 2, 1.5, true}); err != nil {
		t.Fatalf("SetIncludedColumnValues() error: %v", err)
	}
	if diff := cmp.Diff([]string{"name", "2", "1.5", "true"}, c.IncludedColumns()); diff != "" {
		t.Errorf("IncludedColumns() mismatch (-want +got):\n%s", diff)
	}

	for _, bad := range [][]any{
		{"ok", nil},
		{map[string]any{"a": 1}},
		{[]string{"a"}},
		{csvjson.NewRecord()},
	} {
		err := c.SetIncludedColumnValues(bad)
		if !errors.Is(err, csvjson.ErrInvalidColumns) {
			t.Errorf("SetIncludedColumnValues(%v) error = %v, want ErrInvalidColumns", bad, err)
		}
	}
	if len(c.IncludedColumns()) != 4 {
		t.Errorf("rejected values changed the filter to %q", c.IncludedColumns())
	}
}

func TestConverter_LogsRejectedChanges(t *testing.T) {
	var lines []string
	opts := csvjson.DefaultOptions()
	opts.Logger = funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{Verbosity: 1})

	c := mustNew(opts)
	_ = c.SetCharacter("separator", `\`)

	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1: %q", len(lines), lines)
	}
	for _, want := range []string{`"kind"="delimiter"`, `"rule"="reserved-character"`} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("log line %q does not contain %s", lines[0], want)
		}
	}
}

func TestConverter_ZeroLoggerIsSafe(t *testing.T) {
	opts := csvjson.DefaultOptions()
	opts.Logger = logr.Logger{}

	c := mustNew(opts)
	if err := c.SetCharacter("separator", "]"); err == nil {
		t.Fatal("expected rejection")
	}
}

// Concurrent configuration changes never expose a grammar paired with the
// wrong characters: a table is written with a single delimiter throughout.
func TestConverter_ConcurrentPolicySwap(t *testing.T) {
	c := csvjson.New()
	values := []string{"a,b", "c;d", `"q"`, "it's", "multi\nline"}

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		policies := [][2]rune{{',', '"'}, {';', '\''}, {'\t', '"'}, {'|', '\''}}
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			p := policies[i%len(policies)]
			// Move the quote out of the way first so the pair never collides.
			_ = c.SetQuote('~')
			_ = c.SetDelimiter(p[0])
			_ = c.SetQuote(p[1])
		}
	}()

	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				records := []*csvjson.Record{csvjson.RecordOf("v0", values[0], "v1", values[1], "v2", values[2], "v3", values[3], "v4", values[4])}
				table, err := c.RecordsToTable(records)
				if err != nil {
					t.Errorf("RecordsToTable() error: %v", err)
					return
				}
				heading := strings.SplitN(table, "\n", 2)[0]
				want := strings.Join([]string{"v0", "v1", "v2", "v3", "v4"}, heading[2:3])
				if heading != want {
					t.Errorf("heading row %q mixes delimiters", heading)
					return
				}
			}
		}()
	}

	for i := 0; i < 200; i++ {
		_, _ = c.TableToRecords("a,b\n1,2")
	}
	close(stop)
	wg.Wait()
}
