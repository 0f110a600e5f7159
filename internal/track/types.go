package track

import (
	"fmt"
	"math"
	"strings"
)

// Position is a single planar sample. Units are whatever the input uses.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo returns the planar Euclidean distance between p and q.
func (p Position) DistanceTo(q Position) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Category classifies the tracked animal.
type Category string

const (
	CategoryUnknown Category = ""
	CategoryZebra   Category = "zebra"
	CategoryLion    Category = "lion"
)

// ParseCategory maps a config or JSON category name onto a Category.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return CategoryUnknown, nil
	case "zebra":
		return CategoryZebra, nil
	case "lion":
		return CategoryLion, nil
	default:
		return CategoryUnknown, fmt.Errorf("unknown category %q", s)
	}
}

// ClassifyCategory infers a category from the entity identifier naming
// convention ("Zebra_3", "Lion_1"). Matching is case-sensitive and
// "Zebra" is checked first.
func ClassifyCategory(id string) Category {
	switch {
	case strings.Contains(id, "Zebra"):
		return CategoryZebra
	case strings.Contains(id, "Lion"):
		return CategoryLion
	default:
		return CategoryUnknown
	}
}

// Track is one entity's sample sequences. Positions and Timestamps are
// index aligned; SoundLevels has an independent length.
type Track struct {
	ID          string
	Category    Category
	Positions   []Position
	Timestamps  []float64
	SoundLevels []float64
}

// Len returns the number of position samples.
func (t *Track) Len() int {
	return len(t.Positions)
}

// HasTimeline reports whether the track carries both positions and
// timestamps of matching length, the precondition for speed profiling.
func (t *Track) HasTimeline() bool {
	return len(t.Positions) > 0 && len(t.Positions) == len(t.Timestamps)
}

// Dataset maps entity identifiers to tracks and remembers the order in
// which entities were loaded. It is built once and then only read.
type Dataset struct {
	ids    []string
	tracks map[string]*Track
}

// NewDataset builds a dataset from tracks in the given order. Identifiers
// must be unique.
func NewDataset(tracks ...*Track) (*Dataset, error) {
	ds := &Dataset{
		ids:    make([]string, 0, len(tracks)),
		tracks: make(map[string]*Track, len(tracks)),
	}
	for _, t := range tracks {
		if err := ds.add(t); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

func (ds *Dataset) add(t *Track) error {
	if t == nil {
		return fmt.Errorf("nil track")
	}
	if _, dup := ds.tracks[t.ID]; dup {
		return fmt.Errorf("duplicate entity id %q", t.ID)
	}
	ds.ids = append(ds.ids, t.ID)
	ds.tracks[t.ID] = t
	return nil
}

// Len returns the number of entities.
func (ds *Dataset) Len() int {
	return len(ds.ids)
}

// IDs returns a copy of the entity identifiers in load order.
func (ds *Dataset) IDs() []string {
	out := make([]string, len(ds.ids))
	copy(out, ds.ids)
	return out
}

// Track returns the track for id, or nil.
func (ds *Dataset) Track(id string) *Track {
	return ds.tracks[id]
}

// Tracks returns the tracks in load order.
func (ds *Dataset) Tracks() []*Track {
	out := make([]*Track, len(ds.ids))
	for i, id := range ds.ids {
		out[i] = ds.tracks[id]
	}
	return out
}

// Filter returns the subset of tracks for which keep returns true,
// preserving load order. The tracks themselves are shared, not copied.
func (ds *Dataset) Filter(keep func(*Track) bool) *Dataset {
	sub := &Dataset{tracks: make(map[string]*Track)}
	for _, id := range ds.ids {
		t := ds.tracks[id]
		if keep(t) {
			sub.ids = append(sub.ids, id)
			sub.tracks[id] = t
		}
	}
	return sub
}

// ByCategory returns the tracks of category c. CategoryUnknown returns
// the whole dataset.
func (ds *Dataset) ByCategory(c Category) *Dataset {
	if c == CategoryUnknown {
		return ds
	}
	return ds.Filter(func(t *Track) bool { return t.Category == c })
}

// TotalPositions returns the number of position samples across every track.
func (ds *Dataset) TotalPositions() int {
	total := 0
	for _, id := range ds.ids {
		total += len(ds.tracks[id].Positions)
	}
	return total
}
