package midi

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/fingerchart/demo"
	"github.com/jsphweid/fingerchart/file"
	"github.com/jsphweid/fingerchart/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint8(59), Key(model.Entry{StaffOffset: 0}, 0))
	assert.Equal(uint8(52), Key(model.Entry{StaffOffset: -7}, 0))
	assert.Equal(uint8(61), Key(model.Entry{StaffOffset: 4}, -2))
	assert.Equal(uint8(0), Key(model.Entry{StaffOffset: -200}, 0))
	assert.Equal(uint8(127), Key(model.Entry{StaffOffset: 200}, 0))
}

func TestKeyExtremeOffsets(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint8(127), Key(model.Entry{StaffOffset: math.MaxInt - 10}, 0))
	assert.Equal(uint8(127), Key(model.Entry{StaffOffset: math.MaxInt}, math.MaxInt))
	assert.Equal(uint8(0), Key(model.Entry{StaffOffset: math.MinInt}, 0))
	assert.Equal(uint8(0), Key(model.Entry{StaffOffset: math.MinInt}, math.MinInt))
}

func TestExportRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.mid")
	entries := demo.Entries()
	require.NoError(t, WriteChartFile(path, entries, DefaultOptions()))

	notes, err := ReadChartFile(path)
	require.NoError(t, err)
	require.Len(t, notes, len(entries))

	for i, e := range entries {
		assert.Equal(t, e.Note, notes[i].Label)
		assert.Equal(t, Key(e, -2), notes[i].Key)
	}
}

func TestExportRejectsBadTempo(t *testing.T) {
	dir := t.TempDir()
	opt := DefaultOptions()
	opt.Tempo = 0

	err := WriteChartFile(filepath.Join(dir, "chart.mid"), demo.Entries(), opt)
	assert.Error(t, err)

	names, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestReadMissingFile(t *testing.T) {
	_, err := ReadChartFile(filepath.Join(t.TempDir(), "nope.mid"))
	assert.True(t, errors.Is(err, file.ErrFileNotFound))
}

func TestReadGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.mid")
	require.NoError(t, os.WriteFile(path, []byte("not a midi file"), 0644))
	_, err := ReadChartFile(path)
	assert.Error(t, err)
}
