package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Strictly check a table's quoting",
		Long: `Check a table with the strict parser. Unterminated quoted fields and
quotes inside unquoted fields are reported with their line and column.
Conversions accept such tables leniently.`,
		Args: cobra.MaximumNArgs(1),
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
			if err := c.ValidateTable(text); err != nil {
				return err
			}

			rows := c.Rows(text)
			columns := 0
			if len(rows) > 0 {
				columns = len(rows[0])
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %d rows, %d columns\n", len(rows), columns)
			return err
		},
	}
}
