// Package acoustic scans ambient sound-level series for abrupt increases.
package acoustic

import (
	"fmt"

	"github.com/banshee-data/herd.report/internal/track"
)

// DefaultThreshold is the increase, in input level units, above which a
// step between consecutive samples counts as a transient.
const DefaultThreshold = 10.0

// Transient is a step up in sound level at Index relative to Index-1.
type Transient struct {
	EntityID string  `json:"entity_id"`
	Index    int     `json:"index"`
	Increase float64 `json:"increase"`
}

func (e Transient) String() string {
	return fmt.Sprintf("(%s, %d, %g)", e.EntityID, e.Index, e.Increase)
}

// Detect returns the transients of one level series in index order.
// Increases must strictly exceed threshold. Empty or single-sample series
// yield nothing.
func Detect(entityID string, levels []float64, threshold float64) []Transient {
	var out []Transient
	for i := 1; i < len(levels); i++ {
		if inc := levels[i] - levels[i-1]; inc > threshold {
			out = append(out, Transient{EntityID: entityID, Index: i, Increase: inc})
		}
	}
	return out
}

// DetectDataset runs Detect over every track in dataset order.
func DetectDataset(ds *track.Dataset, threshold float64) []Transient {
	var out []Transient
	for _, t := range ds.Tracks() {
		out = append(out, Detect(t.ID, t.SoundLevels, threshold)...)
	}
	return out
}

// Head returns at most the first n events.
func Head(events []Transient, n int) []Transient {
	if n < 0 {
		n = 0
	}
	if len(events) > n {
		return events[:n]
	}
	return events
}
