// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common test helpers to reduce code duplication
// across test files and improve test maintainability.
package testutil

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/banshee-data/herd.report/internal/track"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// MustDataset builds a dataset or fails the test.
func MustDataset(t *testing.T, tracks ...*track.Track) *track.Dataset {
	t.Helper()
	ds, err := track.NewDataset(tracks...)
	if err != nil {
		t.Fatalf("build dataset: %v", err)
	}
	return ds
}

// NewTrack builds a track from coordinate pairs and timestamps, inferring
// the category from the id.
func NewTrack(id string, coords [][2]float64, timestamps []float64) *track.Track {
	t := &track.Track{
		ID:         id,
		Category:   track.ClassifyCategory(id),
		Positions:  make([]track.Position, len(coords)),
		Timestamps: timestamps,
	}
	for i, c := range coords {
		t.Positions[i] = track.Position{X: c[0], Y: c[1]}
	}
	return t
}

// ScenarioDataset is two zebras walking side by side 0.1 units apart at one
// unit per second.
func ScenarioDataset(t *testing.T) *track.Dataset {
	t.Helper()
	return MustDataset(t,
		NewTrack("Zebra_1", [][2]float64{{0, 0}, {1, 0}, {2, 0}}, []float64{0, 1, 2}),
		NewTrack("Zebra_2", [][2]float64{{0, 0.1}, {1, 0.1}, {2, 0.1}}, []float64{0, 1, 2}),
	)
}

// RandomPositions returns n positions drawn uniformly from [-span, span)
// on each axis.
func RandomPositions(rng *rand.Rand, n int, span float64) []track.Position {
	out := make([]track.Position, n)
	for i := range out {
		out[i] = track.Position{
			X: (rng.Float64()*2 - 1) * span,
			Y: (rng.Float64()*2 - 1) * span,
		}
	}
	return out
}

// RandomDataset returns entities random tracks named prefix_0..prefix_n-1.
// Timestamps are random and may repeat or go backwards.
func RandomDataset(t *testing.T, rng *rand.Rand, prefix string, entities, maxSamples int, span float64) *track.Dataset {
	t.Helper()
	tracks := make([]*track.Track, entities)
	for i := range tracks {
		n := rng.Intn(maxSamples + 1)
		ts := make([]float64, n)
		for j := range ts {
			ts[j] = float64(rng.Intn(n + 1))
		}
		levels := make([]float64, rng.Intn(maxSamples+1))
		for j := range levels {
			levels[j] = rng.Float64() * 100
		}
		id := fmt.Sprintf("%s_%d", prefix, i)
		tracks[i] = &track.Track{
			ID:          id,
			Category:    track.ClassifyCategory(id),
			Positions:   RandomPositions(rng, n, span),
			Timestamps:  ts,
			SoundLevels: levels,
		}
	}
	return MustDataset(t, tracks...)
}
