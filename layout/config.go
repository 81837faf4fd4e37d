package layout

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jsphweid/fingerchart/constants"
)

// PageSize is a paper format in PDF points.
type PageSize struct {
	Name   string
	Width  float64
	Height float64
}

// Paper sizes understood by PageSizeByName.
var (
	A4          = PageSize{Name: "A4", Width: 595.276, Height: 841.890}
	A4Landscape = PageSize{Name: "A4L", Width: 841.890, Height: 595.276}
	A5          = PageSize{Name: "A5", Width: 420.945, Height: 595.276}
	Letter      = PageSize{Name: "Letter", Width: 612, Height: 792}
)

var pageSizes = map[string]PageSize{
	"a4":     A4,
	"a4l":    A4Landscape,
	"a5":     A5,
	"letter": Letter,
}

var ErrConfig = errors.New("invalid chart layout")

// PageSizeByName looks up a paper size, ignoring case.
func PageSizeByName(name string) (PageSize, error) {
	if size, ok := pageSizes[strings.ToLower(name)]; ok {
		return size, nil
	}
	var names []string
	for _, size := range pageSizes {
		names = append(names, size.Name)
	}
	sort.Strings(names)
	return PageSize{}, fmt.Errorf("%w: unknown page size %q (want one of %s)",
		ErrConfig, name, strings.Join(names, ", "))
}

// Config holds the page geometry and diagram dimensions, in PDF points.
type Config struct {
	Page      PageSize
	Margin    float64
	Columns   int
	RowHeight float64

	StaffSpacing float64
	StaffWidth   float64

	NoteWidth  float64
	NoteHeight float64
	NoteTilt   float64 // degrees, negative tilts clockwise

	CircleRadius     float64
	CircleGap        float64
	TopCircleOffset  float64
	FingeringSpacing float64
	RightInset       float64

	TitleOffset   float64
	TitleFontSize float64
	LineWidth     float64
}

// DefaultConfig returns the layout of the printed A4 chart.
func DefaultConfig() Config {
	return Config{
		Page:      A4,
		Margin:    constants.Margin,
		Columns:   constants.Columns,
		RowHeight: constants.RowHeight,

		StaffSpacing: constants.StaffSpacing,
		StaffWidth:   constants.StaffWidth,

		NoteWidth:  constants.NoteWidth,
		NoteHeight: constants.NoteHeight,
		NoteTilt:   constants.NoteTilt,

		CircleRadius:     constants.CircleRadius,
		CircleGap:        constants.CircleGap,
		TopCircleOffset:  constants.TopCircleOffset,
		FingeringSpacing: constants.FingeringSpacing,
		RightInset:       constants.RightInset,

		TitleOffset:   constants.TitleOffset,
		TitleFontSize: constants.TitleFontSize,
		LineWidth:     constants.LineWidth,
	}
}

// Validate rejects geometry that cannot hold a single cell.
func (c Config) Validate() error {
	switch {
	case c.Page.Width <= 0 || c.Page.Height <= 0:
		return fmt.Errorf("%w: page size must be positive", ErrConfig)
	case c.Margin < 0:
		return fmt.Errorf("%w: margin must not be negative", ErrConfig)
	case c.Page.Width-2*c.Margin <= 0 || c.Page.Height-2*c.Margin <= 0:
		return fmt.Errorf("%w: margin %.1fpt leaves no room on a %s page", ErrConfig, c.Margin, c.Page.Name)
	case c.Columns < 1:
		return fmt.Errorf("%w: need at least one column, got %d", ErrConfig, c.Columns)
	case c.RowHeight <= 0:
		return fmt.Errorf("%w: row height must be positive", ErrConfig)
	}
	return nil
}
