// Package demo holds the built-in sample chart.
package demo

import "github.com/jsphweid/fingerchart/model"

var p = model.NewPattern

// Entries returns the twelve demo notes from low E to Dis/Es. Every call
// returns a fresh slice with identical content.
func Entries() []model.Entry {
	return []model.Entry{
		{Note: "E", StaffOffset: -7, Fingerings: []model.Pattern{
			p(1, 1, 1, 1, 1, 1, 1, 0),
			p(1, 1, 1, 1, 1, 1, 1, 1),
		}},
		{Note: "F", StaffOffset: -6, Fingerings: []model.Pattern{
			p(0, 1, 1, 1, 1, 1, 1, 0),
			p(0, 1, 1, 1, 1, 1, 1, 1),
		}},
		{Note: "Fis/Ges", StaffOffset: -5, Fingerings: []model.Pattern{p(0, 1, 1, 1, 1, 1, 0, 0)}},
		{Note: "G", StaffOffset: -4, Fingerings: []model.Pattern{p(0, 1, 1, 1, 0, 0, 0, 0)}},
		{Note: "Gis/As", StaffOffset: -3, Fingerings: []model.Pattern{p(1, 1, 1, 0, 0, 0, 0, 1)}},
		{Note: "A", StaffOffset: -2, Fingerings: []model.Pattern{p(0, 1, 1, 0, 0, 0, 0, 0)}},
		{Note: "Ais/B", StaffOffset: -1, Fingerings: []model.Pattern{p(1, 1, 0, 0, 0, 0, 0, 1)}},
		{Note: "H", StaffOffset: 0, Fingerings: []model.Pattern{p(0, 1, 0, 0, 0, 0, 0, 0)}},
		{Note: "C", StaffOffset: 1, Fingerings: []model.Pattern{p(0, 0, 1, 1, 1, 0, 0, 0)}},
		{Note: "Cis/Des", StaffOffset: 2, Fingerings: []model.Pattern{p(1, 0, 1, 1, 1, 0, 0, 1)}},
		{Note: "D", StaffOffset: 3, Fingerings: []model.Pattern{p(0, 0, 1, 1, 0, 0, 0, 0)}},
		{Note: "Dis/Es", StaffOffset: 4, Fingerings: []model.Pattern{p(1, 0, 1, 0, 0, 0, 0, 1)}},
	}
}
