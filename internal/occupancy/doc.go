// Package occupancy discretises position samples into a square grid and
// counts visits per cell across every entity.
//
// A coordinate v maps to cell round(v/binSize), ties to even, and the
// cell is reported at round(v/binSize)*binSize. Entity identity is not
// retained. Histogram2D rasterises the binned cells into a fixed number
// of equal-width bins for heatmap rendering.
package occupancy
