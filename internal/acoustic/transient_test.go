package acoustic

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/banshee-data/herd.report/internal/testutil"
	"github.com/banshee-data/herd.report/internal/track"
)

func TestDetect(t *testing.T) {
	got := Detect("Zebra_1", []float64{0, 5, 20, 18, 35}, 10)
	want := []Transient{
		{EntityID: "Zebra_1", Index: 2, Increase: 15},
		{EntityID: "Zebra_1", Index: 4, Increase: 17},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Detect() mismatch (-want +got):\n%s", diff)
	}
}

func TestDetectEdgeCases(t *testing.T) {
	tests := []struct {
		name      string
		levels    []float64
		threshold float64
		want      int
	}{
		{"absent", nil, 10, 0},
		{"single", []float64{99}, 10, 0},
		{"equal to threshold", []float64{0, 10}, 10, 0},
		{"just above", []float64{0, 10.0001}, 10, 1},
		{"drops ignored", []float64{100, 0, 50}, 10, 1},
		{"zero threshold", []float64{1, 1, 2}, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, Detect("x", tt.levels, tt.threshold), tt.want)
		})
	}
}

func TestDetectDatasetOrder(t *testing.T) {
	ds := testutil.MustDataset(t,
		&track.Track{ID: "Zebra_2", SoundLevels: []float64{0, 20, 40}},
		&track.Track{ID: "Lion_1"},
		&track.Track{ID: "Zebra_1", SoundLevels: []float64{0, 11}},
	)

	got := DetectDataset(ds, DefaultThreshold)
	want := []Transient{
		{EntityID: "Zebra_2", Index: 1, Increase: 20},
		{EntityID: "Zebra_2", Index: 2, Increase: 20},
		{EntityID: "Zebra_1", Index: 1, Increase: 11},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DetectDataset() mismatch (-want +got):\n%s", diff)
	}
}

func TestHead(t *testing.T) {
	events := []Transient{{Index: 1}, {Index: 2}, {Index: 3}}
	assert.Len(t, Head(events, 2), 2)
	assert.Len(t, Head(events, 10), 3)
	assert.Empty(t, Head(events, 0))
	assert.Empty(t, Head(events, -1))
	assert.Empty(t, Head(nil, 5))
}

func TestTransientString(t *testing.T) {
	assert.Equal(t, "(Zebra_1, 2, 15)", Transient{EntityID: "Zebra_1", Index: 2, Increase: 15}.String())
}
