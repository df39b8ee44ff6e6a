// Package config loads csvjson CLI settings from an optional YAML file and
// CSVJSON_* environment variables.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/shapestone/shape-csvjson/pkg/csvjson"
)

// AutoDelimiter asks the CLI to guess the delimiter from its input.
const AutoDelimiter = "auto"

// Config is the on-disk configuration.
type Config struct {
	Delimiter string `yaml:"delimiter"`
	Quote     string `yaml:"quote"`
	// IncludedColumns may mix strings and numbers; numbers name columns by
	// their text form.
	IncludedColumns []any  `yaml:"included_columns"`
	ExtraFields     string `yaml:"extra_fields"`
	JSONIndent      int    `yaml:"json_indent"`
}

// Override adjusts a loaded configuration, typically from command-line
// flags.
type Override func(*Config)

// Load reads path, applies environment overrides, then overrides, then
// defaults, and validates the result. An empty path skips the file.
func Load(path string, overrides ...Override) (*Config, error) {
	var cfg Config
	if path != "" {
		// #nosec G304 -- path is provided by the user.
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	for _, o := range overrides {
		o(&cfg)
	}
	applyDefaults(&cfg)
	if _, err := cfg.Options(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Delimiter == "" {
		cfg.Delimiter = ","
	}
	if cfg.Quote == "" {
		cfg.Quote = `"`
	}
	if strings.TrimSpace(cfg.ExtraFields) == "" {
		cfg.ExtraFields = csvjson.ExtraFieldsDrop.String()
	}
	if cfg.JSONIndent < 0 {
		cfg.JSONIndent = 0
	}
}

func applyEnvOverrides(cfg *Config) error {
	if v, ok := os.LookupEnv("CSVJSON_DELIMITER"); ok && v != "" {
		cfg.Delimiter = v
	}
	if v, ok := os.LookupEnv("CSVJSON_QUOTE"); ok && v != "" {
		cfg.Quote = v
	}
	if v := strings.TrimSpace(os.Getenv("CSVJSON_COLUMNS")); v != "" {
		cfg.IncludedColumns = SplitColumns(v)
	}
	if v := strings.TrimSpace(os.Getenv("CSVJSON_EXTRA_FIELDS")); v != "" {
		cfg.ExtraFields = v
	}
	if v := strings.TrimSpace(os.Getenv("CSVJSON_JSON_INDENT")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return errors.Errorf("CSVJSON_JSON_INDENT: %q is not a non-negative integer", v)
		}
		cfg.JSONIndent = n
	}
	return nil
}

// SplitColumns splits a comma-separated column list, trimming spaces and
// dropping empty names.
func SplitColumns(s string) []any {
	var cols []any
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			cols = append(cols, name)
		}
	}
	return cols
}

// Character expands the names accepted for a delimiter or quote on the
// command line and in the environment: "tab", `\t`, "space", "comma",
// "semicolon" and "pipe". Anything else is returned unchanged.
func Character(s string) string {
	switch strings.ToLower(s) {
	case "tab", `\t`:
		return "\t"
	case "space":
		return " "
	case "comma":
		return ","
	case "semicolon":
		return ";"
	case "pipe":
		return "|"
	}
	return s
}

// SniffDelimiter reports whether the delimiter should be guessed from input.
func (c *Config) SniffDelimiter() bool {
	return strings.EqualFold(c.Delimiter, AutoDelimiter)
}

// Options converts the configuration to converter options. With an
// automatic delimiter the default delimiter is used, or ';' when the quote
// is ','.
func (c *Config) Options() (csvjson.Options, error) {
	opts := csvjson.DefaultOptions()

	q, err := csvjson.ParseCharacter("quote", Character(c.Quote))
	if err != nil {
		return opts, errors.Wrap(err, "quote")
	}
	opts.Quote = q

	if c.SniffDelimiter() {
		opts.Delimiter = csvjson.SniffDelimiter("", q)
	} else {
		d, err := csvjson.ParseCharacter("delimiter", Character(c.Delimiter))
		if err != nil {
			return opts, errors.Wrap(err, "delimiter")
		}
		opts.Delimiter = d
	}

	if len(c.IncludedColumns) > 0 {
		cols, err := csvjson.ColumnsFromValues(c.IncludedColumns)
		if err != nil {
			return opts, errors.Wrap(err, "included_columns")
		}
		opts.IncludedColumns = cols
	}

	mode, err := csvjson.ParseExtraFieldsMode(c.ExtraFields)
	if err != nil {
		return opts, errors.Wrap(err, "extra_fields")
	}
	opts.ExtraFields = mode

	if err := opts.Validate(); err != nil {
		return opts, errors.Wrap(err, "config")
	}
	return opts, nil
}
