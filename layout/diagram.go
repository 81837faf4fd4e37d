package layout

import (
	"github.com/jsphweid/fingerchart/model"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Op is a single drawing instruction of a diagram.
type Op interface {
	Draw(c Canvas)
}

// Text is a bold label centered horizontally on Pos, with Pos.Y as
// baseline.
type Text struct {
	Pos  vec.Vec2
	Size float64
	S    string
}

// Line is a stroked straight segment.
type Line struct {
	From, To vec.Vec2
}

// Bezier is one cubic segment continuing from the previous end point.
type Bezier struct {
	C1, C2, End vec.Vec2
}

// Curve is a closed path of cubic segments. It is always stroked and,
// if Fill is set, filled.
type Curve struct {
	Start    vec.Vec2
	Segments []Bezier
	Fill     bool
}

// Circle is always stroked and, if Fill is set, filled.
type Circle struct {
	Center vec.Vec2
	Radius float64
	Fill   bool
}

func (t Text) Draw(c Canvas)   { c.Text(t) }
func (l Line) Draw(c Canvas)   { c.Line(l) }
func (k Curve) Draw(c Canvas)  { c.Curve(k) }
func (k Circle) Draw(c Canvas) { c.Circle(k) }

// kappa places Bézier control points for a quarter ellipse.
const kappa = 0.5522847498307936

// NoteHead returns a filled ellipse of the given width and height,
// rotated by angle degrees around its center.
func NoteHead(center vec.Vec2, angle, width, height float64) Curve {
	rx, ry := width/2, height/2
	ox, oy := rx*kappa, ry*kappa

	M := matrix.RotateDeg(angle).Mul(matrix.Translate(center.X, center.Y))
	pt := func(x, y float64) vec.Vec2 {
		ax, ay := M.Apply(x, y)
		return vec.Vec2{X: ax, Y: ay}
	}

	return Curve{
		Start: pt(rx, 0),
		Segments: []Bezier{
			{pt(rx, oy), pt(ox, ry), pt(0, ry)},
			{pt(-ox, ry), pt(-rx, oy), pt(-rx, 0)},
			{pt(-rx, -oy), pt(-ox, -ry), pt(0, -ry)},
			{pt(ox, -ry), pt(rx, -oy), pt(rx, 0)},
		},
		Fill: true,
	}
}

// StaffLine returns the y coordinate of staff line k (0 = bottom) for a
// staff centered on cy.
func (c Config) StaffLine(cy float64, k int) float64 {
	return cy + float64(k-2)*c.StaffSpacing
}

// NoteY returns the y coordinate of the note head for a staff centered
// on cy. Each offset step is half a line spacing.
func (c Config) NoteY(cy float64, staffOffset int) float64 {
	bottom := c.StaffLine(cy, 0)
	return bottom + float64(staffOffset)*(c.StaffSpacing/2)
}

// FingeringX returns the x coordinate of fingering column p out of n,
// right-aligned in a cell whose right edge is at right.
func (c Config) FingeringX(right float64, p, n int) float64 {
	start := right - c.CircleRadius - c.RightInset - float64(n-1)*c.FingeringSpacing
	return start + float64(p)*c.FingeringSpacing
}

// KeyY returns the y coordinate of key k, counted from the top.
func (c Config) KeyY(cy float64, k int) float64 {
	return cy + c.TopCircleOffset - float64(k)*c.CircleGap
}

// Diagram computes the drawing instructions for one entry in the given
// cell. The result does not depend on any canvas state.
func Diagram(e model.Entry, cell rect.Rect, cfg Config) []Op {
	cx := cell.LLx + cell.Dx()/2
	cy := cell.LLy + cell.Dy()/2

	ops := make([]Op, 0, 7+len(e.Fingerings)*len(model.Pattern{}))

	ops = append(ops, Text{
		Pos:  vec.Vec2{X: cx, Y: cy + 2*cfg.StaffSpacing + cfg.TitleOffset},
		Size: cfg.TitleFontSize,
		S:    e.Note,
	})

	left := cx - cfg.StaffWidth/2
	for k := 0; k < 5; k++ {
		y := cfg.StaffLine(cy, k)
		ops = append(ops, Line{
			From: vec.Vec2{X: left, Y: y},
			To:   vec.Vec2{X: left + cfg.StaffWidth, Y: y},
		})
	}

	head := vec.Vec2{X: cx, Y: cfg.NoteY(cy, e.StaffOffset)}
	ops = append(ops, NoteHead(head, cfg.NoteTilt, cfg.NoteWidth, cfg.NoteHeight))

	for p, pattern := range e.Fingerings {
		x := cfg.FingeringX(cell.URx, p, len(e.Fingerings))
		for k, closed := range pattern {
			ops = append(ops, Circle{
				Center: vec.Vec2{X: x, Y: cfg.KeyY(cy, k)},
				Radius: cfg.CircleRadius,
				Fill:   closed,
			})
		}
	}

	return ops
}
