package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/fingerchart/file"
	"github.com/jsphweid/fingerchart/layout"
	"github.com/jsphweid/fingerchart/model"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <input>",
	Short: "Shows where every entry lands on the chart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := chartOptions()
		if err != nil {
			return err
		}
		entries, err := file.Load(args[0])
		if err != nil {
			return fmt.Errorf("error reading input: %w", err)
		}
		return Inspect(cmd.OutOrStdout(), entries, opt.Layout)
	},
}

// Inspect lays the entries out without producing a document and prints
// page, row and column of each one, followed by the drawing operations
// per page.
func Inspect(w io.Writer, entries []model.Entry, cfg layout.Config) error {
	rec := layout.NewRecorder()
	plan, err := layout.Render(entries, rec, cfg)
	if err != nil {
		return err
	}

	for i, cell := range plan.Cells {
		e := entries[i]
		fmt.Fprintf(w, "%3d  page %d  row %d  col %d  %-10s offset %3d  %s\n",
			i+1, cell.Page+1, cell.Row+1, cell.Col+1, e.Note, e.StaffOffset, patterns(e))
	}
	for i, ops := range rec.Pages {
		fmt.Fprintf(w, "page %d: %d drawing operations\n", i+1, len(ops))
	}
	return nil
}

func patterns(e model.Entry) string {
	var res string
	for i, p := range e.Fingerings {
		if i > 0 {
			res += " "
		}
		res += p.String()
	}
	return res
}
