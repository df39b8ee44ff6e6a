package cli

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

func newShowCmd(o *rootOptions) *cobra.Command {
	var maxWidth int
	cmd := &cobra.Command{
		Use:   "show [file]",
		Short: "Print a table with aligned columns",
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
			rows := project(c.Rows(text), c.IncludedColumns())
			return writeGrid(cmd.OutOrStdout(), rows, maxWidth)
		},
	}
	cmd.Flags().IntVarP(&maxWidth, "max-width", "w", 40, "truncate cells wider than this; 0 disables")
	return cmd
}

// project keeps the columns of rows whose heading is in columns, in heading
// order. Empty columns keeps everything.
func project(rows [][]string, columns []string) [][]string {
	if len(columns) == 0 || len(rows) == 0 {
		return rows
	}
	want := make(map[string]bool, len(columns))
	for _, c := range columns {
		want[c] = true
	}
	var keep []int
	for i, h := range rows[0] {
		if want[h] {
			keep = append(keep, i)
		}
	}

	out := make([][]string, len(rows))
	for r, row := range rows {
		projected := make([]string, len(keep))
		for j, i := range keep {
			if i < len(row) {
				projected[j] = row[i]
			}
		}
		out[r] = projected
	}
	return out
}

// writeGrid renders rows as an ASCII grid with the first row as heading.
// Newlines inside cells are shown as "\n".
func writeGrid(w io.Writer, rows [][]string, maxWidth int) error {
	if len(rows) == 0 {
		return nil
	}

	numCols := 0
	for _, row := range rows {
		if len(row) > numCols {
			numCols = len(row)
		}
	}

	cells := make([][]string, len(rows))
	widths := make([]int, numCols)
	for r, row := range rows {
		cells[r] = make([]string, numCols)
		for i, cell := range row {
			cell = strings.ReplaceAll(cell, "\n", `\n`)
			if maxWidth > 0 && runewidth.StringWidth(cell) > maxWidth {
				cell = runewidth.Truncate(cell, maxWidth, "…")
			}
			cells[r][i] = cell
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	var sb strings.Builder
	border := func() {
		sb.WriteByte('+')
		for _, cw := range widths {
			sb.WriteString(strings.Repeat("-", cw+2))
			sb.WriteByte('+')
		}
		sb.WriteByte('\n')
	}
	line := func(row []string) {
		sb.WriteByte('|')
		for i, cell := range row {
			sb.WriteByte(' ')
			sb.WriteString(runewidth.FillRight(cell, widths[i]))
			sb.WriteString(" |")
		}
		sb.WriteByte('\n')
	}

	border()
	line(cells[0])
	border()
	if len(cells) > 1 {
		for _, row := range cells[1:] {
			line(row)
		}
		border()
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
