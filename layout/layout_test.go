package layout

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jsphweid/fingerchart/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"
)

func makeEntries(n int) []model.Entry {
	res := make([]model.Entry, n)
	for i := range res {
		res[i] = model.Entry{
			Note:        fmt.Sprintf("N%d", i),
			StaffOffset: i%12 - 6,
			Fingerings:  []model.Pattern{model.NewPattern(0, 1, 1, 0, 0, 0, 0, 1)},
		}
	}
	return res
}

func TestDefaultGrid(t *testing.T) {
	g := DefaultConfig().Grid()

	assert := assert.New(t)
	assert.Equal(3, g.RowsPerPage)
	assert.Equal(12, g.CellsPerPage)
	assert.InDelta((A4.Width-2*g.Margin)/4, g.CellWidth, 1e-9)
}

func TestAtLeastOneRowPerPage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RowHeight = 2 * cfg.Page.Height
	g := cfg.Grid()

	assert.Equal(t, 1, g.RowsPerPage)
	assert.Equal(t, cfg.Columns, g.CellsPerPage)
}

func TestPlace(t *testing.T) {
	g := DefaultConfig().Grid()
	cases := []struct {
		index int
		want  Cell
	}{
		{0, Cell{0, 0, 0}},
		{3, Cell{0, 0, 3}},
		{4, Cell{0, 1, 0}},
		{11, Cell{0, 2, 3}},
		{12, Cell{1, 0, 0}},
		{13, Cell{1, 0, 1}},
		{30, Cell{2, 1, 2}},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("index %d", c.index), func(t *testing.T) {
			assert.Equal(t, c.want, g.Place(c.index))
		})
	}
}

func TestBoundsFillDownwardFromTopMargin(t *testing.T) {
	cfg := DefaultConfig()
	g := cfg.Grid()

	first := g.Bounds(Cell{Row: 0, Col: 0})
	assert := assert.New(t)
	assert.InDelta(cfg.Margin, first.LLx, 1e-9)
	assert.InDelta(cfg.Page.Height-cfg.Margin-cfg.RowHeight, first.LLy, 1e-9)
	assert.InDelta(cfg.Page.Height-cfg.Margin, first.URy, 1e-9)

	other := g.Bounds(Cell{Page: 4, Row: 2, Col: 3})
	assert.InDelta(cfg.Margin+3*g.CellWidth, other.LLx, 1e-9)
	assert.InDelta(cfg.Page.Height-cfg.Margin-3*cfg.RowHeight, other.LLy, 1e-9)
}

func TestPagesAndBreaks(t *testing.T) {
	g := DefaultConfig().Grid()
	cases := []struct{ n, pages, breaks int }{
		{0, 0, 0},
		{1, 1, 0},
		{12, 1, 0},
		{13, 2, 1},
		{24, 2, 1},
		{25, 3, 2},
	}

	for _, c := range cases {
		assert.Equal(t, c.pages, g.Pages(c.n), "pages for %d entries", c.n)
		assert.Equal(t, c.breaks, g.Breaks(c.n), "breaks for %d entries", c.n)
	}
}

func TestRenderPaginates(t *testing.T) {
	for _, columns := range []int{1, 3, 4} {
		cfg := DefaultConfig()
		cfg.Columns = columns
		g := cfg.Grid()

		for n := 0; n <= 40; n++ {
			rec := NewRecorder()
			plan, err := Render(makeEntries(n), rec, cfg)
			require.NoError(t, err)

			wantPages := int(math.Ceil(float64(n) / float64(g.CellsPerPage)))
			assert := assert.New(t)
			assert.Equal(wantPages, plan.Pages)
			assert.Equal(g.Breaks(n), plan.Breaks)
			assert.Equal(max(wantPages, 1), len(rec.Pages))

			for i, cell := range plan.Cells {
				pos := i % g.CellsPerPage
				assert.Equal(Cell{i / g.CellsPerPage, pos / columns, pos % columns}, cell)
			}
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	rec := NewRecorder()
	plan, err := Render(nil, rec, DefaultConfig())
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(0, plan.Pages)
	assert.Equal(0, plan.Breaks)
	assert.Empty(rec.Ops())
}

func TestRenderRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Columns = 0
	_, err := Render(makeEntries(1), NewRecorder(), cfg)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestConfigValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"no columns":      func(c *Config) { c.Columns = 0 },
		"zero row height": func(c *Config) { c.RowHeight = 0 },
		"huge margin":     func(c *Config) { c.Margin = c.Page.Width },
		"negative margin": func(c *Config) { c.Margin = -1 },
		"empty page":      func(c *Config) { c.Page = PageSize{} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrConfig)
		})
	}
	assert.NoError(t, DefaultConfig().Validate())
}

func TestPageSizeByName(t *testing.T) {
	size, err := PageSizeByName("letter")
	require.NoError(t, err)
	assert.Equal(t, Letter, size)

	_, err = PageSizeByName("B5")
	assert.ErrorIs(t, err, ErrConfig)
}

func TestNoteHeadMovesHalfSpacingPerStep(t *testing.T) {
	cfg := DefaultConfig()
	for offset := -10; offset < 10; offset++ {
		step := cfg.NoteY(100, offset+1) - cfg.NoteY(100, offset)
		assert.InDelta(t, cfg.StaffSpacing/2, step, 1e-9)
	}
	assert.InDelta(t, cfg.StaffLine(100, 0), cfg.NoteY(100, 0), 1e-9)
	assert.InDelta(t, cfg.StaffLine(100, 2), cfg.NoteY(100, 4), 1e-9)
}

func TestNoteHeadGeometry(t *testing.T) {
	center := vec.Vec2{X: 10, Y: 20}
	head := NoteHead(center, -20, 4, 2)

	assert := assert.New(t)
	assert.True(head.Fill)
	require.Len(t, head.Segments, 4)
	assert.InDelta(2, head.Start.Sub(center).Length(), 1e-9)
	assert.InDelta(1, head.Segments[0].End.Sub(center).Length(), 1e-9)
	assert.InDelta(2, head.Segments[1].End.Sub(center).Length(), 1e-9)
	assert.InDelta(1, head.Segments[2].End.Sub(center).Length(), 1e-9)
	assert.InDelta(0, head.Segments[3].End.Sub(head.Start).Length(), 1e-9)

	flat := NoteHead(center, 0, 4, 2)
	assert.InDelta(12, flat.Start.X, 1e-9)
	assert.InDelta(20, flat.Start.Y, 1e-9)
	assert.InDelta(8, flat.Segments[1].End.X, 1e-9)
}

func TestSingleEntryChart(t *testing.T) {
	cfg := DefaultConfig()
	entries := []model.Entry{{
		Note:        "A",
		StaffOffset: 0,
		Fingerings:  []model.Pattern{model.NewPattern(0, 1, 1, 0, 0, 0, 0, 0)},
	}}

	rec := NewRecorder()
	plan, err := Render(entries, rec, cfg)
	require.NoError(t, err)
	require.Len(t, rec.Pages, 1)
	assert.Equal(t, 1, plan.Pages)

	cell := cfg.Grid().Bounds(Cell{})
	cx := cell.LLx + cell.Dx()/2
	cy := cell.LLy + cell.Dy()/2

	ops := rec.Pages[0]
	require.Len(t, ops, 1+5+1+8)

	title, ok := ops[0].(Text)
	require.True(t, ok)
	assert.Equal(t, "A", title.S)
	assert.Equal(t, cfg.TitleFontSize, title.Size)

	var wantLines []Op
	for k := 0; k < 5; k++ {
		y := cy + float64(k-2)*cfg.StaffSpacing
		wantLines = append(wantLines, Line{
			From: vec.Vec2{X: cx - cfg.StaffWidth/2, Y: y},
			To:   vec.Vec2{X: cx + cfg.StaffWidth/2, Y: y},
		})
	}
	if d := cmp.Diff(wantLines, ops[1:6], cmpopts.EquateApprox(0, 1e-9)); d != "" {
		t.Errorf("staff lines (-want +got):\n%s", d)
	}

	head, ok := ops[6].(Curve)
	require.True(t, ok)
	mid := head.Start.Add(head.Segments[1].End).Mul(0.5)
	assert.InDelta(t, cx, mid.X, 1e-9)
	assert.InDelta(t, cy-2*cfg.StaffSpacing, mid.Y, 1e-9)

	wantFill := []bool{false, true, true, false, false, false, false, false}
	for k, op := range ops[7:] {
		c, ok := op.(Circle)
		require.True(t, ok)
		assert.Equal(t, wantFill[k], c.Fill, "key %d", k)
		assert.InDelta(t, cell.URx-cfg.CircleRadius-cfg.RightInset, c.Center.X, 1e-9)
		assert.InDelta(t, cy+cfg.TopCircleOffset-float64(k)*cfg.CircleGap, c.Center.Y, 1e-9)
	}
}

func TestAlternateFingeringsAreRightAligned(t *testing.T) {
	cfg := DefaultConfig()
	cell := cfg.Grid().Bounds(Cell{})
	e := model.Entry{
		Note: "E",
		Fingerings: []model.Pattern{
			model.NewPattern(1, 1, 1, 1, 1, 1, 1, 0),
			model.NewPattern(1, 1, 1, 1, 1, 1, 1, 1),
		},
	}

	var xs []float64
	for _, op := range Diagram(e, cell, cfg) {
		if c, ok := op.(Circle); ok {
			xs = append(xs, c.Center.X)
		}
	}
	require.Len(t, xs, 16)

	right := cell.URx - cfg.CircleRadius - cfg.RightInset
	assert.InDelta(t, right-cfg.FingeringSpacing, xs[0], 1e-9)
	assert.InDelta(t, right-cfg.FingeringSpacing, xs[7], 1e-9)
	assert.InDelta(t, right, xs[8], 1e-9)
	assert.InDelta(t, right, xs[15], 1e-9)
}
