package occupancy

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// DefaultHeatmapBins is the raster resolution per axis.
const DefaultHeatmapBins = 50

// Raster is a weighted 2D histogram of the occupied cells. Counts is
// indexed [x][y]. It satisfies gonum/plot's plotter.GridXYZ.
type Raster struct {
	XEdges []float64   `json:"x_edges"`
	YEdges []float64   `json:"y_edges"`
	Counts [][]float64 `json:"counts"`
}

// Histogram2D spreads the cell counts over bins equal-width bins per axis
// spanning the extents. The last bin on each axis includes its right edge;
// an axis with a single coordinate is widened by 0.5 either side. An empty
// grid yields an empty raster.
func (g *Grid) Histogram2D(bins int) (*Raster, error) {
	if bins < 1 {
		return nil, fmt.Errorf("bins must be at least 1, got %d", bins)
	}
	if len(g.Cells) == 0 {
		return &Raster{}, nil
	}

	r := &Raster{
		XEdges: edges(g.Extents.MinX, g.Extents.MaxX, bins),
		YEdges: edges(g.Extents.MinY, g.Extents.MaxY, bins),
		Counts: make([][]float64, bins),
	}
	for i := range r.Counts {
		r.Counts[i] = make([]float64, bins)
	}
	for _, c := range g.Cells {
		r.Counts[binIndex(r.XEdges, c.X)][binIndex(r.YEdges, c.Y)] += float64(c.Count)
	}
	return r, nil
}

func edges(lo, hi float64, bins int) []float64 {
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	return floats.Span(make([]float64, bins+1), lo, hi)
}

// binIndex returns the bin holding v: the last edge <= v, with the final
// edge folded into the last bin.
func binIndex(edges []float64, v float64) int {
	i := sort.Search(len(edges), func(i int) bool { return edges[i] > v }) - 1
	last := len(edges) - 2
	if i > last {
		i = last
	}
	if i < 0 {
		i = 0
	}
	return i
}

// Total returns the sum of raster weights.
func (r *Raster) Total() float64 {
	total := 0.0
	for _, col := range r.Counts {
		total += floats.Sum(col)
	}
	return total
}

// Dims returns the number of x and y bins.
func (r *Raster) Dims() (c, rows int) {
	if len(r.Counts) == 0 {
		return 0, 0
	}
	return len(r.Counts), len(r.Counts[0])
}

// Z returns the weight of bin (c, row).
func (r *Raster) Z(c, row int) float64 {
	return r.Counts[c][row]
}

// X returns the centre of x bin c.
func (r *Raster) X(c int) float64 {
	return (r.XEdges[c] + r.XEdges[c+1]) / 2
}

// Y returns the centre of y bin row.
func (r *Raster) Y(row int) float64 {
	return (r.YEdges[row] + r.YEdges[row+1]) / 2
}

// Max returns the largest bin weight.
func (r *Raster) Max() float64 {
	m := 0.0
	for _, col := range r.Counts {
		if len(col) > 0 {
			m = max(m, floats.Max(col))
		}
	}
	return m
}
