// Package schema turns decoded chart data into typed entries.
//
// The input is the generic value produced by encoding/json (decoded with
// UseNumber) or gopkg.in/yaml.v3. Validation is all-or-nothing: the first
// violation aborts and no entries are returned.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jsphweid/fingerchart/constants"
	"github.com/jsphweid/fingerchart/model"
)

// ErrSchema is matched by every *SchemaError.
var ErrSchema = errors.New("invalid chart data")

// SchemaError describes the first schema violation found in the input.
// Entry and Pattern are 1-indexed; zero means "not applicable".
type SchemaError struct {
	Entry   int
	Pattern int
	Field   string
	Reason  string
}

func (e *SchemaError) Error() string {
	switch {
	case e.Entry == 0:
		return e.Reason
	case e.Pattern > 0:
		return fmt.Sprintf("entry %d, fingering %d: %s", e.Entry, e.Pattern, e.Reason)
	default:
		return fmt.Sprintf("entry %d: %s", e.Entry, e.Reason)
	}
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// Validate checks data against the chart schema and returns the
// normalized entries.
func Validate(data any) ([]model.Entry, error) {
	list, ok := data.([]any)
	if !ok {
		return nil, &SchemaError{Reason: "top-level value must be a list"}
	}

	res := make([]model.Entry, 0, len(list))
	for i, item := range list {
		entry, err := validateEntry(i+1, item)
		if err != nil {
			return nil, err
		}
		res = append(res, entry)
	}
	return res, nil
}

func validateEntry(num int, item any) (model.Entry, error) {
	var entry model.Entry

	obj, ok := asObject(item)
	if !ok {
		return entry, &SchemaError{Entry: num, Reason: "is not an object"}
	}
	for _, field := range []string{"note", "staff_offset"} {
		if _, ok := obj[field]; !ok {
			return entry, &SchemaError{
				Entry:  num,
				Field:  field,
				Reason: fmt.Sprintf("missing required field %q", field),
			}
		}
	}
	_, hasMany := obj["fingerings"]
	single, hasOne := obj["fingering"]
	if !hasMany && !hasOne {
		return entry, &SchemaError{
			Entry:  num,
			Field:  "fingerings",
			Reason: `must contain "fingerings" or "fingering"`,
		}
	}

	rawFingerings := obj["fingerings"]
	if rawFingerings == nil && hasOne {
		rawFingerings = []any{single}
	}

	note, ok := obj["note"].(string)
	if !ok {
		return entry, &SchemaError{Entry: num, Field: "note", Reason: `"note" must be a string`}
	}
	offset, ok := asInt(obj["staff_offset"])
	if !ok {
		return entry, &SchemaError{Entry: num, Field: "staff_offset", Reason: `"staff_offset" must be an integer`}
	}

	patterns, ok := rawFingerings.([]any)
	if !ok || len(patterns) == 0 {
		return entry, &SchemaError{Entry: num, Field: "fingerings", Reason: `"fingerings" must be a non-empty list`}
	}

	fingerings := make([]model.Pattern, 0, len(patterns))
	for j, raw := range patterns {
		p, ok := asPattern(raw)
		if !ok {
			return entry, &SchemaError{
				Entry:   num,
				Pattern: j + 1,
				Field:   "fingerings",
				Reason:  fmt.Sprintf("must be a list of %d values 0 or 1", constants.KeysPerFingering),
			}
		}
		fingerings = append(fingerings, p)
	}

	entry.Note = note
	entry.StaffOffset = offset
	entry.Fingerings = fingerings
	return entry, nil
}

func asObject(v any) (map[string]any, bool) {
	switch obj := v.(type) {
	case map[string]any:
		return obj, true
	case map[any]any:
		res := make(map[string]any, len(obj))
		for k, val := range obj {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			res[key] = val
		}
		return res, true
	}
	return nil, false
}

// asInt accepts integral representations only: JSON "1.0" is rejected
// just like a float.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case json.Number:
		if strings.ContainsAny(n.String(), ".eE") {
			return 0, false
		}
		i, err := n.Int64()
		if err != nil || i > math.MaxInt || i < math.MinInt {
			return 0, false
		}
		return int(i), true
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		if n > math.MaxInt || n < math.MinInt {
			return 0, false
		}
		return int(n), true
	case uint:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

// asKeyState accepts 0, 1 and booleans. Numbers compare by value, so
// 1.0 counts as 1.
func asKeyState(v any) (closed bool, ok bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return false, false
		}
		return keyFromFloat(f)
	case float64:
		return keyFromFloat(x)
	case float32:
		return keyFromFloat(float64(x))
	}
	if i, ok := asInt(v); ok {
		return keyFromFloat(float64(i))
	}
	return false, false
}

func keyFromFloat(f float64) (bool, bool) {
	switch f {
	case 0:
		return false, true
	case 1:
		return true, true
	}
	return false, false
}

func asPattern(v any) (model.Pattern, bool) {
	var p model.Pattern
	keys, ok := v.([]any)
	if !ok || len(keys) != len(p) {
		return p, false
	}
	for i, k := range keys {
		closed, ok := asKeyState(k)
		if !ok {
			return p, false
		}
		p[i] = closed
	}
	return p, true
}
