package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shapestone/shape-csvjson/internal/config"
	"github.com/shapestone/shape-csvjson/pkg/csvjson"
)

func newSniffCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sniff [file]",
		Short: "Guess the delimiter of a table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			if len(data) > sniffSampleSize {
				data = data[:sniffSampleSize]
			}

			cfg, err := o.load()
			if err != nil {
				return err
			}
			quote, err := csvjson.ParseCharacter("quote", config.Character(cfg.Quote))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), characterName(csvjson.SniffDelimiter(string(data), quote)))
			return err
		},
	}
}
