package occupancy

import (
	"fmt"
	"math"
	"sort"

	"github.com/banshee-data/herd.report/internal/track"
)

// DefaultBinSize is the grid pitch in input units.
const DefaultBinSize = 0.5

// Cell is one occupied grid cell.
type Cell struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Count int     `json:"count"`
}

// Extents bound the binned coordinates.
type Extents struct {
	MinX float64 `json:"min_x"`
	MaxX float64 `json:"max_x"`
	MinY float64 `json:"min_y"`
	MaxY float64 `json:"max_y"`
}

// Grid is the set of occupied cells, sorted by X then Y.
type Grid struct {
	BinSize float64 `json:"bin_size"`
	Cells   []Cell  `json:"cells"`
	Extents Extents `json:"extents"`

	index map[cellKey]int
}

// cellKey holds the rounded bin quotients. They stay float64 so quotients
// beyond the int64 range keep distinct keys.
type cellKey struct {
	ix, iy float64
}

func keyFor(p track.Position, binSize float64) cellKey {
	return cellKey{
		ix: math.RoundToEven(p.X/binSize) + 0, // +0 folds -0 into 0
		iy: math.RoundToEven(p.Y/binSize) + 0,
	}
}

// Bin counts every position sample of ds into cells of size binSize.
func Bin(ds *track.Dataset, binSize float64) (*Grid, error) {
	if !(binSize > 0) || math.IsInf(binSize, 0) {
		return nil, fmt.Errorf("bin size must be positive and finite, got %v", binSize)
	}

	counts := make(map[cellKey]int)
	for _, t := range ds.Tracks() {
		for _, p := range t.Positions {
			counts[keyFor(p, binSize)]++
		}
	}

	keys := make([]cellKey, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ix != keys[j].ix {
			return keys[i].ix < keys[j].ix
		}
		return keys[i].iy < keys[j].iy
	})

	g := &Grid{
		BinSize: binSize,
		Cells:   make([]Cell, len(keys)),
		index:   make(map[cellKey]int, len(keys)),
	}
	for i, k := range keys {
		g.Cells[i] = Cell{X: k.ix * binSize, Y: k.iy * binSize, Count: counts[k]}
		g.index[k] = i
	}
	g.Extents = extentsOf(g.Cells)
	return g, nil
}

func extentsOf(cells []Cell) Extents {
	if len(cells) == 0 {
		return Extents{}
	}
	e := Extents{MinX: cells[0].X, MaxX: cells[0].X, MinY: cells[0].Y, MaxY: cells[0].Y}
	for _, c := range cells[1:] {
		e.MinX = math.Min(e.MinX, c.X)
		e.MaxX = math.Max(e.MaxX, c.X)
		e.MinY = math.Min(e.MinY, c.Y)
		e.MaxY = math.Max(e.MaxY, c.Y)
	}
	return e
}

// Total returns the sum of counts across cells.
func (g *Grid) Total() int {
	total := 0
	for _, c := range g.Cells {
		total += c.Count
	}
	return total
}

// Count returns the visit count of the cell containing (x, y).
func (g *Grid) Count(x, y float64) int {
	i, ok := g.index[keyFor(track.Position{X: x, Y: y}, g.BinSize)]
	if !ok {
		return 0
	}
	return g.Cells[i].Count
}

// Len returns the number of occupied cells.
func (g *Grid) Len() int {
	return len(g.Cells)
}
