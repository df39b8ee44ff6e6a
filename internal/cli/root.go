// Package cli implements the csvjson command.
package cli

import (
	goflag "flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/shapestone/shape-csvjson/internal/config"
	"github.com/shapestone/shape-csvjson/pkg/csvjson"
)

// sniffSampleSize bounds how much input the delimiter guess looks at.
const sniffSampleSize = 64 * 1024

type rootOptions struct {
	configPath  string
	delimiter   string
	quote       string
	columns     string
	extraFields string

	logger logr.Logger
}

// NewRootCmd builds the csvjson command tree.
func NewRootCmd() *cobra.Command {
	o := &rootOptions{logger: klog.NewKlogr().WithName("csvjson")}

	cmd := &cobra.Command{
		Use:   "csvjson",
		Short: "Convert between delimited text tables and JSON records",
		Long: `csvjson converts delimited, quote-escaped text tables to JSON (or YAML)
records and back. The first row of a table holds the headings.

Settings come from --config (YAML), then CSVJSON_* environment variables,
then flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	o.addFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newToJSONCmd(o),
		newFromJSONCmd(o),
		newValidateCmd(o),
		newHeadingsCmd(o),
		newSniffCmd(o),
		newShowCmd(o),
	)
	return cmd
}

func (o *rootOptions) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.configPath, "config", "", "YAML configuration file")
	fs.StringVarP(&o.delimiter, "delimiter", "d", "", `field delimiter; "tab", "space" or "auto" to guess from input`)
	fs.StringVarP(&o.quote, "quote", "q", "", "quote character")
	fs.StringVarP(&o.columns, "columns", "c", "", "comma-separated columns to include")
	fs.StringVar(&o.extraFields, "extra-fields", "", `fields beyond the headings: "drop" or "error"`)

	local := goflag.NewFlagSet("klog", goflag.ContinueOnError)
	klog.InitFlags(local)
	local.VisitAll(func(fl *goflag.Flag) {
		fl.Name = strings.ReplaceAll(fl.Name, "_", "-")
	})
	fs.AddGoFlagSet(local)
}

// load resolves the configuration with flags taking precedence.
func (o *rootOptions) load() (*config.Config, error) {
	return config.Load(o.configPath, func(c *config.Config) {
		if o.delimiter != "" {
			c.Delimiter = o.delimiter
		}
		if o.quote != "" {
			c.Quote = o.quote
		}
		if o.columns != "" {
			c.IncludedColumns = config.SplitColumns(o.columns)
		}
		if o.extraFields != "" {
			c.ExtraFields = o.extraFields
		}
	})
}

// converter builds a Converter for input. An automatic delimiter is guessed
// from the start of sample.
func (o *rootOptions) converter(sample string) (*csvjson.Converter, *config.Config, error) {
	cfg, err := o.load()
	if err != nil {
		return nil, nil, err
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, nil, err
	}
	if cfg.SniffDelimiter() {
		if len(sample) > sniffSampleSize {
			sample = sample[:sniffSampleSize]
		}
		opts.Delimiter = csvjson.SniffDelimiter(sample, opts.Quote)
		o.logger.V(2).Info("guessed delimiter", "delimiter", string(opts.Delimiter))
	}
	opts.Logger = o.logger

	c, err := csvjson.NewWithOptions(opts)
	if err != nil {
		return nil, nil, err
	}
	return c, cfg, nil
}

// readInput reads the file named by args, or standard input when there is
// none or it is "-".
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	// #nosec G304 -- path is provided by the user.
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, err
	}
	return data, nil
}

// characterName renders a delimiter or quote for display.
func characterName(r rune) string {
	switch r {
	case '\t':
		return "tab"
	case ' ':
		return "space"
	}
	return string(r)
}
