package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/fingerchart/file"
	"github.com/jsphweid/fingerchart/model"
	"github.com/jsphweid/fingerchart/util"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// ReferenceKey is the MIDI key of a note head sitting at staff offset 0.
const ReferenceKey = 59

type Options struct {
	// Transpose is added to every written key, in semitones. The default
	// of -2 gives the sounding pitch of a B-flat clarinet.
	Transpose int
	Tempo     float64
	Velocity  uint8
}

func DefaultOptions() Options {
	return Options{Transpose: -2, Tempo: 60, Velocity: 80}
}

// Note is one entry as read back from an exported file.
type Note struct {
	Label string
	Key   uint8
}

// Key returns the MIDI key for an entry, clamped to 0..127.
func Key(e model.Entry, transpose int) uint8 {
	// bounded first so the sum cannot overflow
	offset := util.Clamp(e.StaffOffset, -256, 256)
	transpose = util.Clamp(transpose, -256, 256)
	return uint8(util.Clamp(ReferenceKey+offset+transpose, 0, 127))
}

// WriteChart writes a single track SMF with one quarter note per entry,
// each preceded by a text event holding the entry's label.
func WriteChart(w io.Writer, entries []model.Entry, opt Options) error {
	if opt.Tempo <= 0 {
		return fmt.Errorf("tempo must be positive, got %g", opt.Tempo)
	}
	clock := smf.MetricTicks(480)

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(opt.Tempo))
	for _, e := range entries {
		key := Key(e, opt.Transpose)
		tr.Add(0, smf.MetaText(e.Note))
		tr.Add(0, midi.NoteOn(0, key, opt.Velocity))
		tr.Add(clock.Ticks4th(), midi.NoteOff(0, key))
	}
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = clock
	if err := s.Add(tr); err != nil {
		return err
	}
	_, err := s.WriteTo(w)
	return err
}

// WriteChartFile writes the export to path, replacing it only on success.
func WriteChartFile(path string, entries []model.Entry, opt Options) error {
	out, err := file.CreateAtomic(path)
	if err != nil {
		return err
	}
	defer out.Abort()

	if err := WriteChart(out, entries, opt); err != nil {
		return err
	}
	return out.Commit()
}

// ReadChart collects the labelled notes of an export. A note without a
// preceding text event gets an empty label.
func ReadChart(s *smf.SMF) []Note {
	var res []Note
	for _, track := range s.Tracks {
		var label string
		for _, ev := range track {
			var text string
			var ch, key, vel uint8
			switch {
			case ev.Message.GetMetaText(&text):
				label = text
			case ev.Message.GetNoteOn(&ch, &key, &vel) && vel > 0:
				res = append(res, Note{Label: label, Key: key})
				label = ""
			}
		}
	}
	return res
}

func ReadChartFile(path string) ([]Note, error) {
	s, err := ReadMidiFile(path)
	if err != nil {
		return nil, err
	}
	return ReadChart(s), nil
}

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	// smf can panic on truncated input
	defer func() {
		if r := recover(); r != nil {
			s, e = nil, fmt.Errorf("error parsing midi file: %v", r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", file.ErrFileNotFound, filepath)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading midi file: %w", err)
	}

	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("error parsing midi file: %w", err)
	}
	return res, nil
}
