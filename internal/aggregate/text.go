package aggregate

import (
	"fmt"
	"io"
	"strings"

	"github.com/banshee-data/herd.report/internal/acoustic"
	"github.com/banshee-data/herd.report/internal/proximity"
)

// WriteText prints the report for a terminal: the full social pair
// mapping, the first topN sound transients, the mingle location count and
// speed and occupancy summaries.
func WriteText(w io.Writer, r *Report, topN int) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Run %s: %d entities, %d position samples\n", r.RunID, r.Entities, r.Samples)
	fmt.Fprintf(&b, "Social Behavior Patterns: %s\n", formatPairs(r.Social))

	s := r.SpeedSummary
	if s.Count == 0 {
		b.WriteString("Movement speeds: no samples\n")
	} else {
		fmt.Fprintf(&b, "Movement speeds: n=%d mean=%.3f sd=%.3f min=%.3f p50=%.3f p85=%.3f p95=%.3f max=%.3f\n",
			s.Count, s.Mean, s.StdDev, s.Min, s.P50, s.P85, s.P95, s.Max)
	}

	if g := r.Occupancy; g != nil {
		if g.Len() == 0 {
			b.WriteString("Occupancy: no positions\n")
		} else {
			e := g.Extents
			fmt.Fprintf(&b, "Occupancy: %d cells (bin size %g), x [%g, %g], y [%g, %g]\n",
				g.Len(), g.BinSize, e.MinX, e.MaxX, e.MinY, e.MaxY)
		}
	}

	fmt.Fprintf(&b, "Sudden Sound Increases Detected (First %d Events): %s\n",
		topN, formatTransients(acoustic.Head(r.Transients, topN)))

	if len(r.Mingle) == 0 {
		b.WriteString("No mingle locations found.\n")
	} else {
		fmt.Fprintf(&b, "Number of mingle locations found: %d\n", len(r.Mingle))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func formatPairs(pairs []proximity.PairCount) string {
	parts := make([]string, len(pairs))
	for i, pc := range pairs {
		parts[i] = fmt.Sprintf("%s: %d", pc.Pair, pc.Count)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func formatTransients(events []acoustic.Transient) string {
	parts := make([]string, len(events))
	for i, e := range events {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
