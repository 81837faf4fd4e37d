package layout

import (
	"fmt"

	"github.com/jsphweid/fingerchart/model"
)

// Plan summarizes a rendering pass.
type Plan struct {
	Grid    Grid
	Entries int
	Pages   int
	Breaks  int
	Cells   []Cell // one per entry, in input order
}

// Render places the entries on the grid in input order and draws their
// diagrams on c. A page break is issued before the first cell of every
// page but the first. Zero entries draw nothing and break no pages.
//
// The entries are expected to be validated already.
func Render(entries []model.Entry, c Canvas, cfg Config) (*Plan, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := cfg.Grid()
	plan := &Plan{
		Grid:    g,
		Entries: len(entries),
		Pages:   g.Pages(len(entries)),
		Cells:   make([]Cell, 0, len(entries)),
	}

	log := Logger()
	for i, e := range entries {
		if i > 0 && i%g.CellsPerPage == 0 {
			if err := c.ShowPage(); err != nil {
				return nil, fmt.Errorf("page %d: %w", i/g.CellsPerPage, err)
			}
			plan.Breaks++
			log.Debug("page break", "page", i/g.CellsPerPage+1)
		}

		cell := g.Place(i)
		for _, op := range Diagram(e, g.Bounds(cell), cfg) {
			op.Draw(c)
		}
		plan.Cells = append(plan.Cells, cell)
		log.Debug("placed entry", "note", e.Note, "page", cell.Page+1, "row", cell.Row, "col", cell.Col)
	}

	return plan, nil
}
