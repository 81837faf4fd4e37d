package layout

import (
	"math"

	"github.com/jsphweid/fingerchart/util"
	"seehuhn.de/go/geom/rect"
)

// Grid is the cell arrangement derived from a Config.
type Grid struct {
	Page         PageSize
	Margin       float64
	Columns      int
	RowsPerPage  int
	CellsPerPage int
	CellWidth    float64
	RowHeight    float64
}

// Cell addresses one grid slot. All indices are zero-based.
type Cell struct {
	Page int
	Row  int
	Col  int
}

// Grid computes the page grid. At least one row fits on every page,
// even when the row height exceeds the usable page height.
func (c Config) Grid() Grid {
	usableWidth := c.Page.Width - 2*c.Margin
	usableHeight := c.Page.Height - 2*c.Margin

	rows := int(math.Floor(usableHeight / c.RowHeight))
	rows = util.Max(rows, 1)

	return Grid{
		Page:         c.Page,
		Margin:       c.Margin,
		Columns:      c.Columns,
		RowsPerPage:  rows,
		CellsPerPage: rows * c.Columns,
		CellWidth:    usableWidth / float64(c.Columns),
		RowHeight:    c.RowHeight,
	}
}

// Place returns the cell of the entry with the given zero-based index.
func (g Grid) Place(i int) Cell {
	pos := i % g.CellsPerPage
	return Cell{
		Page: i / g.CellsPerPage,
		Row:  pos / g.Columns,
		Col:  pos % g.Columns,
	}
}

// Bounds returns the rectangle of a cell on its page. The origin is the
// bottom-left page corner; rows fill downward from the top margin.
func (g Grid) Bounds(cell Cell) rect.Rect {
	x := g.Margin + float64(cell.Col)*g.CellWidth
	y := g.Page.Height - g.Margin - float64(cell.Row+1)*g.RowHeight
	return rect.Rect{
		LLx: x,
		LLy: y,
		URx: x + g.CellWidth,
		URy: y + g.RowHeight,
	}
}

// Pages returns the number of pages n entries occupy.
func (g Grid) Pages(n int) int {
	return util.CeilDiv(n, g.CellsPerPage)
}

// Breaks returns the number of explicit page breaks for n entries.
func (g Grid) Breaks(n int) int {
	return util.Max(g.Pages(n)-1, 0)
}
