package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsphweid/fingerchart/model"
	"github.com/jsphweid/fingerchart/schema"
	"gopkg.in/yaml.v3"
)

var (
	ErrFileNotFound  = errors.New("file not found")
	ErrMalformedJSON = errors.New("malformed JSON")
)

type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatOf picks the input format from the file extension.
// Anything that is not .yaml or .yml is read as JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Load reads and validates a chart file.
func Load(path string) ([]model.Entry, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := Decode(f, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Decode parses chart data from r and validates it.
func Decode(r io.Reader, format Format) ([]model.Entry, error) {
	data, err := parse(r, format)
	if err != nil {
		return nil, err
	}
	return schema.Validate(data)
}

func parse(r io.Reader, format Format) (any, error) {
	var data any
	switch format {
	case FormatYAML:
		err := yaml.NewDecoder(r).Decode(&data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
		}
	default:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		if err := dec.Decode(&data); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
		}
		// NOTE: a second value after the first one is an error, not ignored
		if _, err := dec.Token(); err != io.EOF {
			return nil, fmt.Errorf("%w: unexpected data after top-level value", ErrMalformedJSON)
		}
	}
	return data, nil
}

// WriteEntries writes entries in the indented JSON chart format.
func WriteEntries(path string, entries []model.Entry) error {
	out, err := CreateAtomic(path)
	if err != nil {
		return err
	}
	defer out.Abort()

	if err := EncodeEntries(out, entries); err != nil {
		return err
	}
	return out.Commit()
}

// EncodeEntries writes entries as indented JSON. Non-ASCII labels are
// written verbatim.
func EncodeEntries(w io.Writer, entries []model.Entry) error {
	if entries == nil {
		entries = []model.Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
