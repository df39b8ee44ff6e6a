package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shapestone/shape-csvjson/pkg/csvjson"
)

func newHeadingsCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "headings",
		Short: "Add or replace the heading row of a table",
	}
	cmd.AddCommand(
		newHeadingsSubCmd(o, "add", "Prepend a heading row", (*csvjson.Converter).AddHeadings),
		newHeadingsSubCmd(o, "replace", "Replace the first row with a heading row", (*csvjson.Converter).ReplaceHeadings),
	)
	return cmd
}

func newHeadingsSubCmd(o *rootOptions, use, short string, apply func(*csvjson.Converter, string, []string) string) *cobra.Command {
	var names []string
	cmd := &cobra.Command{
		Use:   use + " [file]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			text := string(data)
			c, _, err := o.converter(text)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), apply(c, text, names))
			return err
		},
	}
	cmd.Flags().StringSliceVarP(&names, "names", "n", nil, "comma-separated heading names")
	_ = cmd.MarkFlagRequired("names")
	return cmd
}
