package occupancy

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/herd.report/internal/testutil"
)

func TestHistogram2D(t *testing.T) {
	t.Parallel()

	ds := testutil.MustDataset(t,
		testutil.NewTrack("Zebra_1", [][2]float64{{0, 0}, {0, 0}, {2, 4}, {4, 4}, {4, 4}, {4, 4}}, nil),
	)
	g, err := Bin(ds, 1)
	require.NoError(t, err)

	r, err := g.Histogram2D(2)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 2, 4}, r.XEdges)
	assert.Equal(t, []float64{0, 2, 4}, r.YEdges)
	// x=2 sits on an inner edge and goes right; x=4 and y=4 fold into the last bin
	assert.Equal(t, [][]float64{{2, 0}, {0, 4}}, r.Counts)

	c, rows := r.Dims()
	assert.Equal(t, 2, c)
	assert.Equal(t, 2, rows)
	assert.Equal(t, 1.0, r.X(0))
	assert.Equal(t, 3.0, r.Y(1))
	assert.Equal(t, 4.0, r.Z(1, 1))
	assert.Equal(t, 4.0, r.Max())
	assert.Equal(t, 6.0, r.Total())
}

func TestHistogram2DSinglePoint(t *testing.T) {
	t.Parallel()

	ds := testutil.MustDataset(t, testutil.NewTrack("Zebra_1", [][2]float64{{3, 3}, {3, 3}}, nil))
	g, err := Bin(ds, 0.5)
	require.NoError(t, err)

	r, err := g.Histogram2D(4)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, r.XEdges[0], 1e-12)
	assert.InDelta(t, 3.5, r.XEdges[4], 1e-12)
	assert.Equal(t, 2.0, r.Total())
}

func TestHistogram2DConservesCounts(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(5))
	ds := testutil.RandomDataset(t, rng, "Zebra", 10, 300, 50)
	g, err := Bin(ds, DefaultBinSize)
	require.NoError(t, err)

	r, err := g.Histogram2D(DefaultHeatmapBins)
	require.NoError(t, err)
	assert.Equal(t, float64(g.Total()), r.Total())
	c, rows := r.Dims()
	assert.Equal(t, DefaultHeatmapBins, c)
	assert.Equal(t, DefaultHeatmapBins, rows)
}

func TestHistogram2DEmptyAndInvalid(t *testing.T) {
	t.Parallel()

	g, err := Bin(testutil.MustDataset(t), DefaultBinSize)
	require.NoError(t, err)

	r, err := g.Histogram2D(10)
	require.NoError(t, err)
	c, rows := r.Dims()
	assert.Zero(t, c)
	assert.Zero(t, rows)
	assert.Zero(t, r.Max())

	_, err = g.Histogram2D(0)
	assert.Error(t, err)
}
