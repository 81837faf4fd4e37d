package layout

// Canvas is a paginated drawing surface. The first page is open when
// drawing starts; ShowPage finishes the current page and opens the next.
//
// Drawing methods do not report errors. Implementations keep the first
// failure and return it from ShowPage or from their own Close method.
type Canvas interface {
	Text(t Text)
	Line(l Line)
	Curve(c Curve)
	Circle(c Circle)
	ShowPage() error
}

// Recorder is a Canvas that keeps the instructions, grouped by page.
type Recorder struct {
	Pages [][]Op
}

func NewRecorder() *Recorder {
	return &Recorder{Pages: [][]Op{nil}}
}

func (r *Recorder) add(op Op) {
	last := len(r.Pages) - 1
	r.Pages[last] = append(r.Pages[last], op)
}

func (r *Recorder) Text(t Text)     { r.add(t) }
func (r *Recorder) Line(l Line)     { r.add(l) }
func (r *Recorder) Curve(c Curve)   { r.add(c) }
func (r *Recorder) Circle(c Circle) { r.add(c) }

func (r *Recorder) ShowPage() error {
	r.Pages = append(r.Pages, nil)
	return nil
}

// Ops returns all recorded instructions in drawing order.
func (r *Recorder) Ops() []Op {
	var res []Op
	for _, page := range r.Pages {
		res = append(res, page...)
	}
	return res
}
