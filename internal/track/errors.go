package track

import (
	"errors"
	"fmt"
)

// Field names as they appear in the input document.
const (
	FieldCoordinates = "gps coordinates"
	FieldTimestamp   = "timestamp"
	FieldSoundLevels = "sound levels"
	FieldCategory    = "category"
)

var (
	// ErrMalformed reports input that is not the expected JSON shape.
	ErrMalformed = errors.New("malformed dataset")
	// ErrMissingField reports a required field absent from an entity.
	ErrMissingField = errors.New("missing required field")
	// ErrNotNumeric reports a sample that cannot be read as a number.
	ErrNotNumeric = errors.New("value is not numeric")
	// ErrNotFinite reports a NaN or infinite sample.
	ErrNotFinite = errors.New("value is not finite")
	// ErrBadCoordinate reports a coordinate that is not a 2-element array.
	ErrBadCoordinate = errors.New("coordinate must be a 2-element array")
)

// LoadError identifies the entity, field and sample that failed to load.
// Index is -1 when the failure is not tied to a single sample.
type LoadError struct {
	Entity string
	Field  string
	Index  int
	Err    error
}

func (e *LoadError) Error() string {
	switch {
	case e.Entity == "":
		return fmt.Sprintf("load dataset: %v", e.Err)
	case e.Field == "":
		return fmt.Sprintf("entity %q: %v", e.Entity, e.Err)
	case e.Index < 0:
		return fmt.Sprintf("entity %q field %q: %v", e.Entity, e.Field, e.Err)
	default:
		return fmt.Sprintf("entity %q field %q[%d]: %v", e.Entity, e.Field, e.Index, e.Err)
	}
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
