package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/fingerchart/file"
	"github.com/jsphweid/fingerchart/layout"
	"github.com/jsphweid/fingerchart/model"
	"github.com/jsphweid/fingerchart/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report <input>",
	Short: "Prints totals for a chart",
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
		report(cmd.OutOrStdout(), analyze(entries, opt.Layout.Grid()))
		return nil
	},
}

type chartReport struct {
	numEntries    int
	numFingerings uint64
	numAlternates uint64
	closedKeys    uint64
	pages         int
	cellsPerPage  int
	lowestOffset  int
	highestOffset int
}

func analyze(entries []model.Entry, g layout.Grid) chartReport {
	r := chartReport{
		numEntries:   len(entries),
		pages:        g.Pages(len(entries)),
		cellsPerPage: g.CellsPerPage,
	}

	var fingerings, closed []int
	for i, e := range entries {
		fingerings = append(fingerings, len(e.Fingerings))
		for _, p := range e.Fingerings {
			closed = append(closed, p.Closed())
		}
		if i == 0 {
			r.lowestOffset, r.highestOffset = e.StaffOffset, e.StaffOffset
			continue
		}
		r.lowestOffset = util.Min(r.lowestOffset, e.StaffOffset)
		r.highestOffset = util.Max(r.highestOffset, e.StaffOffset)
	}

	r.numFingerings = util.Sum(fingerings)
	r.numAlternates = r.numFingerings - uint64(len(entries))
	r.closedKeys = util.Sum(closed)
	return r
}

func report(w io.Writer, r chartReport) {
	fmt.Fprintf(w, "entries: %v\n", r.numEntries)
	fmt.Fprintf(w, "fingerings: %v (%v alternates)\n", r.numFingerings, r.numAlternates)
	fmt.Fprintf(w, "closed keys: %v\n", r.closedKeys)
	fmt.Fprintf(w, "pages: %v (%v cells per page)\n", r.pages, r.cellsPerPage)
	if r.numEntries > 0 {
		fmt.Fprintf(w, "staff offsets: %v to %v\n", r.lowestOffset, r.highestOffset)
	}
}
