package occupancy

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/herd.report/internal/testutil"
	"github.com/banshee-data/herd.report/internal/track"
)

func TestBin(t *testing.T) {
	t.Parallel()

	ds := testutil.MustDataset(t,
		testutil.NewTrack("Zebra_1", [][2]float64{{0.1, 0.1}, {0.2, -0.2}, {0.9, 0}}, nil),
		testutil.NewTrack("Lion_1", [][2]float64{{0.26, 0.24}, {1.1, 0.1}}, nil),
	)

	g, err := Bin(ds, 0.5)
	require.NoError(t, err)

	want := []Cell{
		{X: 0, Y: 0, Count: 2},
		{X: 0.5, Y: 0, Count: 1},
		{X: 1, Y: 0, Count: 2},
	}
	if diff := cmp.Diff(want, g.Cells); diff != "" {
		t.Errorf("Bin() cells mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, Extents{MinX: 0, MaxX: 1, MinY: 0, MaxY: 0}, g.Extents)
	assert.Equal(t, 2, g.Count(0.1, -0.1))
	assert.Equal(t, 5, g.Total())
	assert.Equal(t, 0, g.Count(7, 7))
	assert.Equal(t, 3, g.Len())
}

func TestBinRoundsHalfToEven(t *testing.T) {
	t.Parallel()

	ds := testutil.MustDataset(t,
		testutil.NewTrack("Zebra_1", [][2]float64{{0.25, 0.75}, {-0.25, 1.25}}, nil),
	)
	g, err := Bin(ds, 0.5)
	require.NoError(t, err)

	// 0.25/0.5 = 0.5 -> 0, 0.75/0.5 = 1.5 -> 2, -0.5 -> 0, 2.5 -> 2
	want := []Cell{{X: 0, Y: 1, Count: 2}}
	if diff := cmp.Diff(want, g.Cells); diff != "" {
		t.Errorf("Bin() cells mismatch (-want +got):\n%s", diff)
	}
}

func TestBinExtremeMagnitudes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		coords  [][2]float64
		binSize float64
	}{
		{"quotients beyond int64", [][2]float64{{1e19, 0}, {2e19, 0}, {-3e19, 0}}, 0.5},
		{"tiny bin size", [][2]float64{{1, 1}, {2, 2}}, 1e-19},
		{"huge negative y", [][2]float64{{0, -1e300}, {0, 1e300}, {0, 0}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := testutil.MustDataset(t, testutil.NewTrack("Zebra_1", tt.coords, nil))
			g, err := Bin(ds, tt.binSize)
			require.NoError(t, err)

			assert.Equal(t, len(tt.coords), g.Len(), "every point lands in its own cell")
			assert.Equal(t, len(tt.coords), g.Total())
			for _, c := range tt.coords {
				assert.Equal(t, 1, g.Count(c[0], c[1]), "cell for %v", c)
			}
			for i := 1; i < len(g.Cells); i++ {
				prev, cur := g.Cells[i-1], g.Cells[i]
				assert.True(t, prev.X < cur.X || (prev.X == cur.X && prev.Y < cur.Y), "cells sorted")
			}
		})
	}
}

func TestBinRejectsBadBinSize(t *testing.T) {
	t.Parallel()

	ds := testutil.ScenarioDataset(t)
	for _, size := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := Bin(ds, size)
		assert.Error(t, err, "bin size %v", size)
	}
}

func TestBinEmpty(t *testing.T) {
	t.Parallel()

	g, err := Bin(testutil.MustDataset(t), DefaultBinSize)
	require.NoError(t, err)
	assert.Empty(t, g.Cells)
	assert.Equal(t, 0, g.Total())
	assert.Equal(t, Extents{}, g.Extents)
}

// Binning conserves samples and agrees with an independent brute-force tally.
func TestBinMatchesBruteForce(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(2024))
	for iter := 0; iter < 30; iter++ {
		binSize := []float64{0.1, 0.5, 1, 2.5}[iter%4]
		ds := testutil.RandomDataset(t, rng, "Zebra", 6, 200, 20)

		g, err := Bin(ds, binSize)
		require.NoError(t, err)
		assert.Equal(t, ds.TotalPositions(), g.Total(), "conservation")

		type cell struct{ x, y float64 }
		brute := make(map[cell]int)
		for _, tr := range ds.Tracks() {
			for _, p := range tr.Positions {
				c := cell{math.RoundToEven(p.X/binSize) * binSize, math.RoundToEven(p.Y/binSize) * binSize}
				brute[c]++
			}
		}
		require.Len(t, g.Cells, len(brute))
		for _, c := range g.Cells {
			assert.Equal(t, brute[cell{c.X, c.Y}], c.Count, "cell (%v, %v)", c.X, c.Y)
		}
		for i := 1; i < len(g.Cells); i++ {
			prev, cur := g.Cells[i-1], g.Cells[i]
			assert.True(t, prev.X < cur.X || (prev.X == cur.X && prev.Y < cur.Y), "cells sorted")
		}
	}
}

func TestBinIgnoresEntityIdentity(t *testing.T) {
	t.Parallel()

	split := testutil.MustDataset(t,
		testutil.NewTrack("Zebra_1", [][2]float64{{1, 1}}, nil),
		testutil.NewTrack("Zebra_2", [][2]float64{{1, 1}}, nil),
	)
	merged := testutil.MustDataset(t,
		&track.Track{ID: "all", Positions: []track.Position{{X: 1, Y: 1}, {X: 1, Y: 1}}},
	)
	a, err := Bin(split, 0.5)
	require.NoError(t, err)
	b, err := Bin(merged, 0.5)
	require.NoError(t, err)
	assert.Equal(t, a.Cells, b.Cells)
}
