package proximity

import (
	"sync"

	"github.com/banshee-data/herd.report/internal/monitoring"
	"github.com/banshee-data/herd.report/internal/track"
)

// DefaultDistanceThreshold is the closeness threshold in input units.
const DefaultDistanceThreshold = 5.0

// Analyzer scores every entity pair and keeps the ones its policy qualifies.
type Analyzer struct {
	Threshold float64       // strict upper bound on aligned-sample distance
	Policy    QualifyPolicy // nil means LastIteratedReference
	Workers   int           // goroutines for scoring; <= 1 runs inline
}

// Result holds the qualifying pairs in scoring order and as a lookup map.
type Result struct {
	Pairs  []PairCount
	Counts map[Pair]int
}

// NewAnalyzer returns an analyzer with the default threshold and policy.
func NewAnalyzer() *Analyzer {
	return &Analyzer{Threshold: DefaultDistanceThreshold, Policy: LastIteratedReference, Workers: 1}
}

// Analyze scores ds and filters the scores through the policy.
func (a *Analyzer) Analyze(ds *track.Dataset) Result {
	policy := a.Policy
	if policy == nil {
		policy = LastIteratedReference
	}

	scored := ScoreParallel(ds, a.Threshold, a.Workers)
	res := Result{Counts: make(map[Pair]int)}
	for _, pc := range scored {
		if float64(pc.Count) > policy(ds, pc.Pair) {
			res.Pairs = append(res.Pairs, pc)
			res.Counts[pc.Pair] = pc.Count
		}
	}
	monitoring.Debugf("proximity: %d pairs within %.3g, %d qualify", len(scored), a.Threshold, len(res.Pairs))
	return res
}

// Score counts, for every pair of entities with a.ID < b.ID, the aligned
// samples closer than threshold. Pairs that never come close are omitted.
// Output order follows dataset iteration: outer entity, then inner entity.
func Score(ds *track.Dataset, threshold float64) []PairCount {
	tracks := ds.Tracks()
	var out []PairCount
	for i := range tracks {
		out = append(out, scoreOuter(tracks, i, threshold)...)
	}
	return out
}

// ScoreParallel is Score with the outer loop spread over workers
// goroutines. The result is identical to Score.
func ScoreParallel(ds *track.Dataset, threshold float64, workers int) []PairCount {
	tracks := ds.Tracks()
	if workers <= 1 || len(tracks) < 2 {
		return Score(ds, threshold)
	}
	if workers > len(tracks) {
		workers = len(tracks)
	}

	perOuter := make([][]PairCount, len(tracks))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < len(tracks); i += workers {
				perOuter[i] = scoreOuter(tracks, i, threshold)
			}
		}(w)
	}
	wg.Wait()

	var out []PairCount
	for _, pcs := range perOuter {
		out = append(out, pcs...)
	}
	return out
}

func scoreOuter(tracks []*track.Track, i int, threshold float64) []PairCount {
	var out []PairCount
	outer := tracks[i]
	for _, inner := range tracks {
		if !(outer.ID < inner.ID) {
			continue
		}
		if n := CountWithin(outer.Positions, inner.Positions, threshold); n > 0 {
			out = append(out, PairCount{Pair: Pair{A: outer.ID, B: inner.ID}, Count: n})
		}
	}
	return out
}

// CountWithin counts index-aligned samples closer than threshold, up to
// the shorter sequence.
func CountWithin(a, b []track.Position, threshold float64) int {
	n := min(len(a), len(b))
	count := 0
	for i := 0; i < n; i++ {
		if a[i].DistanceTo(b[i]) < threshold {
			count++
		}
	}
	return count
}
