package cmd

import (
	"fmt"

	"github.com/jsphweid/fingerchart/file"
	"github.com/jsphweid/fingerchart/midi"
	"github.com/spf13/cobra"
)

func init() {
	f := midiCmd.Flags()
	d := midi.DefaultOptions()
	f.Int("transpose", d.Transpose, "semitones added to every note")
	f.Float64("tempo", d.Tempo, "beats per minute")
	rootCmd.AddCommand(midiCmd)
}

var midiCmd = &cobra.Command{
	Use:   "midi <input> <output.mid>",
	Short: "Exports a chart as a MIDI file to listen to",
	Long: `Exports a chart as a MIDI file with one quarter note per entry.

Notes are transposed by -2 semitones by default, which is how a
B-flat clarinet sounds.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt := midi.DefaultOptions()
		opt.Transpose = conf.GetInt("transpose")
		opt.Tempo = conf.GetFloat64("tempo")
		return ExportMIDI(args[0], args[1], opt)
	},
}

func ExportMIDI(in, out string, opt midi.Options) error {
	entries, err := file.Load(in)
	if err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	if err := midi.WriteChartFile(out, entries, opt); err != nil {
		return fmt.Errorf("error writing midi file: %w", err)
	}
	return nil
}
