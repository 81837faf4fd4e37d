package render

import (
	"image"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/jsphweid/fingerchart/layout"
	"golang.org/x/image/font/gofont/gobold"
)

// PageSink receives every finished raster page, numbered from 1.
type PageSink func(page int, img image.Image) error

// PNG rasterizes chart pages with gg. Coordinates arrive in PDF points
// with the origin at the bottom left and are flipped onto the pixel grid.
type PNG struct {
	size  layout.PageSize
	scale float64
	sink  PageSink

	bold *text.FontSource

	ctx       *gg.Context
	lineWidth float64
	pages     int
	err       error
}

// NewPNG prepares a raster canvas with the first page open.
func NewPNG(size layout.PageSize, dpi, lineWidth float64, sink PageSink) (*PNG, error) {
	bold, err := text.NewFontSource(gobold.TTF)
	if err != nil {
		return nil, err
	}

	p := &PNG{
		size:      size,
		scale:     dpi / 72,
		sink:      sink,
		bold:      bold,
		lineWidth: lineWidth,
	}
	p.openPage()
	return p, nil
}

func (p *PNG) openPage() {
	w := int(math.Ceil(p.size.Width * p.scale))
	h := int(math.Ceil(p.size.Height * p.scale))
	p.ctx = gg.NewContext(w, h)
	p.ctx.ClearWithColor(gg.White)
	p.ctx.SetRGB(0, 0, 0)
	p.ctx.SetLineWidth(p.lineWidth * p.scale)
	p.pages++
}

func (p *PNG) pt(x, y float64) (float64, float64) {
	return x * p.scale, (p.size.Height - y) * p.scale
}

func (p *PNG) keep(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *PNG) Text(t layout.Text) {
	p.ctx.SetFont(p.bold.Face(t.Size * p.scale))
	x, y := p.pt(t.Pos.X, t.Pos.Y)
	p.ctx.DrawStringAnchored(t.S, x, y, 0.5, 0)
}

func (p *PNG) Line(l layout.Line) {
	p.ctx.MoveTo(p.pt(l.From.X, l.From.Y))
	p.ctx.LineTo(p.pt(l.To.X, l.To.Y))
	p.keep(p.ctx.Stroke())
}

func (p *PNG) Curve(c layout.Curve) {
	p.ctx.MoveTo(p.pt(c.Start.X, c.Start.Y))
	for _, s := range c.Segments {
		c1x, c1y := p.pt(s.C1.X, s.C1.Y)
		c2x, c2y := p.pt(s.C2.X, s.C2.Y)
		x, y := p.pt(s.End.X, s.End.Y)
		p.ctx.CubicTo(c1x, c1y, c2x, c2y, x, y)
	}
	p.ctx.ClosePath()
	p.paint(c.Fill)
}

func (p *PNG) Circle(c layout.Circle) {
	x, y := p.pt(c.Center.X, c.Center.Y)
	p.ctx.DrawCircle(x, y, c.Radius*p.scale)
	p.paint(c.Fill)
}

func (p *PNG) paint(fill bool) {
	if fill {
		p.keep(p.ctx.FillPreserve())
	}
	p.keep(p.ctx.Stroke())
}

func (p *PNG) flush() error {
	if p.err != nil {
		return p.err
	}
	err := p.sink(p.pages, p.ctx.Image())
	p.keep(p.ctx.Close())
	p.keep(err)
	return p.err
}

func (p *PNG) ShowPage() error {
	if err := p.flush(); err != nil {
		return err
	}
	p.openPage()
	return nil
}

// Pages returns the number of pages started so far.
func (p *PNG) Pages() int {
	return p.pages
}

// Close hands the last page to the sink.
func (p *PNG) Close() error {
	return p.flush()
}
