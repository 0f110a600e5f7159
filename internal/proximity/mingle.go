package proximity

import (
	"sort"
	"strconv"
	"strings"

	"github.com/banshee-data/herd.report/internal/track"
)

// MingleLocations returns the distinct lion positions, rounded to
// precision decimals, at which some zebra's index-aligned sample was
// closer than threshold. The result is sorted by X then Y and is empty
// when lions and zebras never meet.
//
// Lion and zebra membership are independent: an id naming both animals
// without an explicit category sits on both sides, pairing with itself too.
func MingleLocations(ds *track.Dataset, threshold float64, precision int) []track.Position {
	lions := ds.Filter(func(t *track.Track) bool { return isMember(t, track.CategoryLion, "Lion") }).Tracks()
	zebras := ds.Filter(func(t *track.Track) bool { return isMember(t, track.CategoryZebra, "Zebra") }).Tracks()

	seen := make(map[track.Position]struct{})
	for _, lion := range lions {
		for _, zebra := range zebras {
			n := min(len(lion.Positions), len(zebra.Positions))
			for i := 0; i < n; i++ {
				lp := lion.Positions[i]
				if lp.DistanceTo(zebra.Positions[i]) < threshold {
					seen[track.Position{X: roundTo(lp.X, precision), Y: roundTo(lp.Y, precision)}] = struct{}{}
				}
			}
		}
	}

	out := make([]track.Position, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		return out[i].Y < out[j].Y
	})
	return out
}

// isMember reports whether t belongs to category c. A category set
// explicitly on the track decides alone; an inferred one falls back to the
// id substring, so "Zebra" taking precedence in ClassifyCategory does not
// hide the "Lion" side of the same id.
func isMember(t *track.Track, c track.Category, substr string) bool {
	if t.Category == c {
		return true
	}
	return t.Category == track.ClassifyCategory(t.ID) && strings.Contains(t.ID, substr)
}

// roundTo rounds v to the nearest value with the given number of decimals,
// resolving exact ties to even through correctly rounded formatting.
func roundTo(v float64, decimals int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', decimals, 64), 64)
	if err != nil {
		return v
	}
	return r
}
