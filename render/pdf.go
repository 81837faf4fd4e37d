package render

import (
	"io"

	"github.com/jsphweid/fingerchart/layout"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/font/standard"
	"seehuhn.de/go/pdf/font/type1"
)

// PDF draws chart pages into a PDF document.
type PDF struct {
	doc  *document.MultiPage
	page *document.Page

	bold *type1.Instance

	lineWidth float64
	pages     int
	err       error
}

// NewPDF starts a document on w with the first page open.
func NewPDF(w io.Writer, size layout.PageSize, lineWidth float64) (*PDF, error) {
	paper := &pdf.Rectangle{URx: size.Width, URy: size.Height}
	doc, err := document.WriteMultiPage(w, paper, pdf.V1_7, nil)
	if err != nil {
		return nil, err
	}

	p := &PDF{
		doc:       doc,
		bold:      standard.HelveticaBold.New(),
		lineWidth: lineWidth,
	}
	p.openPage()
	return p, nil
}

func (p *PDF) openPage() {
	p.page = p.doc.AddPage()
	p.page.SetLineWidth(p.lineWidth)
	p.pages++
}

func (p *PDF) Text(t layout.Text) {
	p.page.TextBegin()
	p.page.TextSetFont(p.bold, t.Size)
	p.page.TextFirstLine(t.Pos.X, t.Pos.Y)
	p.page.TextShowAligned(t.S, 0, 0.5)
	p.page.TextEnd()
}

func (p *PDF) Line(l layout.Line) {
	p.page.MoveTo(l.From.X, l.From.Y)
	p.page.LineTo(l.To.X, l.To.Y)
	p.page.Stroke()
}

func (p *PDF) Curve(c layout.Curve) {
	p.page.MoveTo(c.Start.X, c.Start.Y)
	for _, s := range c.Segments {
		p.page.CurveTo(s.C1.X, s.C1.Y, s.C2.X, s.C2.Y, s.End.X, s.End.Y)
	}
	p.page.ClosePath()
	if c.Fill {
		p.page.FillAndStroke()
	} else {
		p.page.Stroke()
	}
}

func (p *PDF) Circle(c layout.Circle) {
	p.page.Circle(c.Center.X, c.Center.Y, c.Radius)
	if c.Fill {
		p.page.FillAndStroke()
	} else {
		p.page.Stroke()
	}
}

func (p *PDF) ShowPage() error {
	if p.err != nil {
		return p.err
	}
	if err := p.page.Close(); err != nil {
		p.err = err
		return err
	}
	p.openPage()
	return nil
}

// Pages returns the number of pages started so far.
func (p *PDF) Pages() int {
	return p.pages
}

// Close finishes the last page and the document. It does not close the
// underlying writer.
func (p *PDF) Close() error {
	if p.err != nil {
		return p.err
	}
	if err := p.page.Close(); err != nil {
		p.err = err
		return err
	}
	p.err = p.doc.Close()
	return p.err
}
