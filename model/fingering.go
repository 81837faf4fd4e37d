package model

import (
	"bytes"
	"strings"

	"github.com/jsphweid/fingerchart/constants"
)

// Pattern holds the key states of one fingering, topmost key first.
// A true value means the key is closed.
type Pattern [constants.KeysPerFingering]bool

// NewPattern builds a pattern from 0/1 key states.
// It panics unless exactly KeysPerFingering values are given.
func NewPattern(keys ...int) Pattern {
	var p Pattern
	if len(keys) != len(p) {
		panic("NewPattern needs exactly 8 key states")
	}
	for i, k := range keys {
		p[i] = k != 0
	}
	return p
}

// Closed returns the number of closed keys.
func (p Pattern) Closed() int {
	var n int
	for _, closed := range p {
		if closed {
			n++
		}
	}
	return n
}

func (p Pattern) String() string {
	var b strings.Builder
	for _, closed := range p {
		if closed {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// MarshalJSON writes the pattern in the 0/1 list form used by chart files.
func (p Pattern) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, closed := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		if closed {
			buf.WriteByte('1')
		} else {
			buf.WriteByte('0')
		}
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// Entry is one diagram of the chart.
type Entry struct {
	Note        string    `json:"note"`
	StaffOffset int       `json:"staff_offset"`
	Fingerings  []Pattern `json:"fingerings"`
}
