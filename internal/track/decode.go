package track

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// LoadFile reads and decodes the dataset at path.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	ds, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Decode reads a dataset document: a JSON object keyed by entity id whose
// values carry "gps coordinates", "timestamp" and optionally
// "sound levels" and "category". Samples may be JSON numbers or numeric
// strings. Entity order follows the document. Any failure aborts the
// whole load with a *LoadError.
func Decode(r io.Reader) (*Dataset, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, &LoadError{Index: -1, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, &LoadError{Index: -1, Err: fmt.Errorf("%w: top level must be an object", ErrMalformed)}
	}

	ds, _ := NewDataset()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, &LoadError{Index: -1, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
		}
		id, ok := tok.(string)
		if !ok {
			return nil, &LoadError{Index: -1, Err: fmt.Errorf("%w: expected entity key", ErrMalformed)}
		}

		var fields map[string]json.RawMessage
		if err := dec.Decode(&fields); err != nil {
			return nil, &LoadError{Entity: id, Index: -1, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
		}

		t, err := decodeTrack(id, fields)
		if err != nil {
			return nil, err
		}
		if err := ds.add(t); err != nil {
			return nil, &LoadError{Entity: id, Index: -1, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
		}
	}

	if _, err := dec.Token(); err != nil {
		return nil, &LoadError{Index: -1, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &LoadError{Index: -1, Err: fmt.Errorf("%w: trailing data after dataset object", ErrMalformed)}
	}
	return ds, nil
}

func decodeTrack(id string, fields map[string]json.RawMessage) (*Track, error) {
	t := &Track{ID: id, Category: ClassifyCategory(id)}

	rawCoords, ok := lookup(fields, FieldCoordinates)
	if !ok {
		return nil, &LoadError{Entity: id, Field: FieldCoordinates, Index: -1, Err: ErrMissingField}
	}
	positions, err := decodePositions(id, rawCoords)
	if err != nil {
		return nil, err
	}
	t.Positions = positions

	rawTimes, ok := lookup(fields, FieldTimestamp)
	if !ok {
		return nil, &LoadError{Entity: id, Field: FieldTimestamp, Index: -1, Err: ErrMissingField}
	}
	if t.Timestamps, err = decodeSeries(id, FieldTimestamp, rawTimes); err != nil {
		return nil, err
	}

	if rawSound, ok := lookup(fields, FieldSoundLevels); ok {
		if t.SoundLevels, err = decodeSeries(id, FieldSoundLevels, rawSound); err != nil {
			return nil, err
		}
	}

	if rawCat, ok := lookup(fields, FieldCategory); ok {
		var name string
		if err := json.Unmarshal(rawCat, &name); err != nil {
			return nil, &LoadError{Entity: id, Field: FieldCategory, Index: -1, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
		}
		c, err := ParseCategory(name)
		if err != nil {
			return nil, &LoadError{Entity: id, Field: FieldCategory, Index: -1, Err: err}
		}
		if c != CategoryUnknown {
			t.Category = c
		}
	}

	return t, nil
}

// lookup treats an explicit JSON null the same as an absent field.
func lookup(fields map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	raw, ok := fields[name]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, false
	}
	return raw, true
}

func decodePositions(id string, raw json.RawMessage) ([]Position, error) {
	var coords []json.RawMessage
	if err := json.Unmarshal(raw, &coords); err != nil {
		return nil, &LoadError{Entity: id, Field: FieldCoordinates, Index: -1, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}

	out := make([]Position, len(coords))
	for i, c := range coords {
		var pair []json.RawMessage
		if err := json.Unmarshal(c, &pair); err != nil || len(pair) != 2 {
			return nil, &LoadError{Entity: id, Field: FieldCoordinates, Index: i, Err: ErrBadCoordinate}
		}
		x, err := parseNumber(pair[0])
		if err != nil {
			return nil, &LoadError{Entity: id, Field: FieldCoordinates, Index: i, Err: err}
		}
		y, err := parseNumber(pair[1])
		if err != nil {
			return nil, &LoadError{Entity: id, Field: FieldCoordinates, Index: i, Err: err}
		}
		out[i] = Position{X: x, Y: y}
	}
	return out, nil
}

func decodeSeries(id, field string, raw json.RawMessage) ([]float64, error) {
	var values []json.RawMessage
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, &LoadError{Entity: id, Field: field, Index: -1, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}

	out := make([]float64, len(values))
	for i, v := range values {
		f, err := parseNumber(v)
		if err != nil {
			return nil, &LoadError{Entity: id, Field: field, Index: i, Err: err}
		}
		out[i] = f
	}
	return out, nil
}

// parseNumber accepts a JSON number or a string holding one.
func parseNumber(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	text := string(raw)
	if len(raw) > 0 && raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, fmt.Errorf("%w: %s", ErrNotNumeric, raw)
		}
		text = strings.TrimSpace(text)
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrNotNumeric, raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s", ErrNotFinite, raw)
	}
	return v, nil
}
