package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shapestone/shape-csvjson/pkg/csvjson"
)

func newToJSONCmd(o *rootOptions) *cobra.Command {
	var (
		indent int
		format string
	)
	cmd := &cobra.Command{
		Use:   "to-json [file]",
		Short: "Convert a table to a JSON array of records",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			text := string(data)
			c, cfg, err := o.converter(text)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("indent") {
				indent = cfg.JSONIndent
			}

			records, err := c.TableToRecords(text)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				if err := csvjson.EncodeJSON(out, records, indent); err != nil {
					return err
				}
				if indent == 0 {
					_, err = fmt.Fprintln(out)
				}
				return err
			case "yaml":
				return csvjson.EncodeYAML(out, records, indent)
			default:
				return fmt.Errorf("unknown format %q: want json or yaml", format)
			}
		},
	}
	cmd.Flags().IntVar(&indent, "indent", 0, "spaces per indentation level; 0 writes compact JSON")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	return cmd
}

func newFromJSONCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "from-json [file]",
		Short: "Convert a JSON array of records to a table",
		Long: `Convert a JSON array of objects to a table. Headings are the included
columns when set, otherwise the keys of the first object; every object must
carry all of them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			c, _, err := o.converter("")
			if err != nil {
				return err
			}
			text, err := c.TableFromJSON(data)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
}
