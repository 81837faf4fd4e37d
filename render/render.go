// Package render turns chart entries into documents.
//
// The layout package decides where everything goes; this package
// provides the canvases that put it on paper: PDF through
// seehuhn.de/go/pdf and PNG previews through gogpu/gg.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/jsphweid/fingerchart/constants"
	"github.com/jsphweid/fingerchart/file"
	"github.com/jsphweid/fingerchart/layout"
	"github.com/jsphweid/fingerchart/model"
)

var ErrRender = errors.New("rendering failed")

// RenderError reports a failure while producing an output document.
type RenderError struct {
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Path, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

func (e *RenderError) Is(target error) bool { return target == ErrRender }

// Options configures Generate.
type Options struct {
	Layout layout.Config
	DPI    float64 // PNG output only
}

func DefaultOptions() Options {
	return Options{Layout: layout.DefaultConfig(), DPI: constants.DefaultDPI}
}

// Generate renders entries to outPath. Files ending in .png are rendered
// as one PNG per page, everything else as PDF. Output only appears once
// it is complete; on failure nothing is left behind and the error is a
// *RenderError.
func Generate(entries []model.Entry, outPath string, opt Options) (*layout.Plan, error) {
	var plan *layout.Plan
	var err error
	switch strings.ToLower(filepath.Ext(outPath)) {
	case ".png":
		plan, err = generatePNG(entries, outPath, opt)
	default:
		plan, err = generatePDF(entries, outPath, opt)
	}
	if err != nil {
		return nil, &RenderError{Path: outPath, Err: err}
	}
	layout.Logger().Info("chart written", "path", outPath, "entries", plan.Entries, "pages", max(plan.Pages, 1))
	return plan, nil
}

func generatePDF(entries []model.Entry, outPath string, opt Options) (*layout.Plan, error) {
	if err := opt.Layout.Validate(); err != nil {
		return nil, err
	}
	out, err := file.CreateAtomic(outPath)
	if err != nil {
		return nil, err
	}
	defer out.Abort()

	plan, err := Write(out, entries, opt.Layout)
	if err != nil {
		return nil, err
	}
	return plan, out.Commit()
}

// Write renders entries as a PDF document to w. The document always has
// at least one page, so zero entries give a single blank page.
func Write(w io.Writer, entries []model.Entry, cfg layout.Config) (*layout.Plan, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c, err := NewPDF(w, cfg.Page, cfg.LineWidth)
	if err != nil {
		return nil, err
	}
	plan, err := layout.Render(entries, c, cfg)
	if err != nil {
		return nil, err
	}
	return plan, c.Close()
}

// PagePath returns the file name of raster page n: the base name for the
// first page, base-N for the following ones.
func PagePath(outPath string, n int) string {
	if n <= 1 {
		return outPath
	}
	ext := filepath.Ext(outPath)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(outPath, ext), n, ext)
}

func generatePNG(entries []model.Entry, outPath string, opt Options) (*layout.Plan, error) {
	if err := opt.Layout.Validate(); err != nil {
		return nil, err
	}
	if opt.DPI <= 0 {
		return nil, fmt.Errorf("resolution must be positive, got %g dpi", opt.DPI)
	}

	var pending []*file.AtomicFile
	defer func() {
		for _, f := range pending {
			f.Abort()
		}
	}()

	sink := func(n int, img image.Image) error {
		out, err := file.CreateAtomic(PagePath(outPath, n))
		if err != nil {
			return err
		}
		pending = append(pending, out)
		return png.Encode(out, img)
	}

	c, err := NewPNG(opt.Layout.Page, opt.DPI, opt.Layout.LineWidth, sink)
	if err != nil {
		return nil, err
	}
	plan, err := layout.Render(entries, c, opt.Layout)
	if err != nil {
		return nil, err
	}
	if err := c.Close(); err != nil {
		return nil, err
	}

	for _, f := range pending {
		if err := f.Commit(); err != nil {
			return nil, err
		}
	}
	return plan, nil
}
