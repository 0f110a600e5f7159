package kinematics

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// CDFPoint pairs a speed with its empirical distribution value.
type CDFPoint struct {
	Speed float64 `json:"speed"`
	CDF   float64 `json:"cdf"`
}

// CDF sorts a copy of speeds ascending and pairs the i-th value with i/n.
func CDF(speeds []float64) []CDFPoint {
	if len(speeds) == 0 {
		return nil
	}
	sorted := make([]float64, len(speeds))
	copy(sorted, speeds)
	sort.Float64s(sorted)

	n := float64(len(sorted))
	out := make([]CDFPoint, len(sorted))
	for i, v := range sorted {
		out[i] = CDFPoint{Speed: v, CDF: float64(i) / n}
	}
	return out
}

// Summary describes a pooled speed sample.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P50    float64 `json:"p50"`
	P85    float64 `json:"p85"`
	P95    float64 `json:"p95"`
}

// Summarize computes summary statistics. An empty sample yields the zero
// Summary; a single sample has zero spread.
func Summarize(speeds []float64) Summary {
	if len(speeds) == 0 {
		return Summary{}
	}
	sorted := make([]float64, len(speeds))
	copy(sorted, speeds)
	sort.Float64s(sorted)

	s := Summary{
		Count: len(sorted),
		Min:   sorted[0],
		Max:   sorted[len(sorted)-1],
		P50:   stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P85:   stat.Quantile(0.85, stat.Empirical, sorted, nil),
		P95:   stat.Quantile(0.95, stat.Empirical, sorted, nil),
	}
	if len(sorted) > 1 {
		s.Mean, s.StdDev = stat.MeanStdDev(sorted, nil)
	} else {
		s.Mean = sorted[0]
	}
	return s
}
