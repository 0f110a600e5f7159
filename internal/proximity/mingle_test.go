package proximity

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/herd.report/internal/testutil"
	"github.com/banshee-data/herd.report/internal/track"
)

func TestMingleLocations(t *testing.T) {
	ds := testutil.MustDataset(t,
		testutil.NewTrack("Lion_1", [][2]float64{{1.234, 2.345}, {50, 50}, {1.2341, 2.3449}, {9.999, 0}}, seq(4)),
		testutil.NewTrack("Zebra_1", [][2]float64{{1, 2}, {0, 0}, {1, 2}, {10, 0}}, seq(4)),
		testutil.NewTrack("Zebra_2", [][2]float64{{100, 100}}, seq(1)),
		testutil.NewTrack("Lion_2", [][2]float64{{-20, -20}}, seq(1)),
	)

	got := MingleLocations(ds, 5, 2)
	want := []track.Position{
		{X: 1.23, Y: 2.34},
		{X: 1.23, Y: 2.35},
		{X: 10, Y: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MingleLocations() mismatch (-want +got):\n%s", diff)
	}
}

func TestMingleLocationsEmpty(t *testing.T) {
	zebrasOnly := testutil.ScenarioDataset(t)
	got := MingleLocations(zebrasOnly, 5, 2)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRoundTo(t *testing.T) {
	tests := []struct {
		v        float64
		decimals int
		want     float64
	}{
		{1.005, 2, 1},     // 1.005 is stored just below the tie
		{0.125, 2, 0.12},  // exact tie rounds to even
		{0.375, 2, 0.38},  // exact tie rounds to even
		{2.5, 0, 2},
		{-1.236, 2, -1.24},
	}
	for _, tt := range tests {
		if got := roundTo(tt.v, tt.decimals); got != tt.want {
			t.Errorf("roundTo(%v, %d) = %v, want %v", tt.v, tt.decimals, got, tt.want)
		}
	}
}

func TestMingleLocationsDualNamedEntity(t *testing.T) {
	// "Zebra" wins classification, yet the id still counts as a lion here.
	dual := testutil.NewTrack("Zebra_Lion_1", [][2]float64{{3, 3}}, seq(1))
	require.Equal(t, track.CategoryZebra, dual.Category)

	ds := testutil.MustDataset(t,
		dual,
		testutil.NewTrack("Zebra_1", [][2]float64{{100, 100}}, seq(1)),
	)
	// Only the self pairing is within range.
	assert.Equal(t, []track.Position{{X: 3, Y: 3}}, MingleLocations(ds, 5, 2))
}

func TestMingleLocationsExplicitCategoryWins(t *testing.T) {
	dual := testutil.NewTrack("Zebra_Lion_1", [][2]float64{{3, 3}}, seq(1))
	dual.Category = track.CategoryLion

	ds := testutil.MustDataset(t,
		dual,
		testutil.NewTrack("Zebra_1", [][2]float64{{100, 100}}, seq(1)),
	)
	assert.Empty(t, MingleLocations(ds, 5, 2))

	ds = testutil.MustDataset(t,
		dual,
		testutil.NewTrack("Zebra_2", [][2]float64{{3, 4}}, seq(1)),
	)
	assert.Equal(t, []track.Position{{X: 3, Y: 3}}, MingleLocations(ds, 5, 2))
}
