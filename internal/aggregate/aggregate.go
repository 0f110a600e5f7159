package aggregate

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/herd.report/internal/acoustic"
	"github.com/banshee-data/herd.report/internal/config"
	"github.com/banshee-data/herd.report/internal/kinematics"
	"github.com/banshee-data/herd.report/internal/monitoring"
	"github.com/banshee-data/herd.report/internal/occupancy"
	"github.com/banshee-data/herd.report/internal/proximity"
	"github.com/banshee-data/herd.report/internal/track"
)

// Report is the full result of one analysis run.
type Report struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Entities    int       `json:"entities"`
	Samples     int       `json:"samples"`

	Speeds       []float64             `json:"speeds"`
	SpeedCDF     []kinematics.CDFPoint `json:"speed_cdf"`
	SpeedSummary kinematics.Summary    `json:"speed_summary"`

	Social         []proximity.PairCount `json:"social"`
	SocialCategory track.Category        `json:"social_category,omitempty"`

	Occupancy *occupancy.Grid   `json:"occupancy"`
	Heatmap   *occupancy.Raster `json:"heatmap"`

	Mingle     []track.Position     `json:"mingle"`
	Transients []acoustic.Transient `json:"transients"`
}

// PooledSpeeds concatenates per-entity speeds in profile order.
func PooledSpeeds(profiles []kinematics.Profile) []float64 {
	n := 0
	for _, p := range profiles {
		n += len(p.Speeds)
	}
	out := make([]float64, 0, n)
	for _, p := range profiles {
		out = append(out, p.Speeds...)
	}
	return out
}

// SocialPairs runs the proximity analyzer over the entities of category c
// (every entity for CategoryUnknown) and returns the qualifying pairs.
func SocialPairs(ds *track.Dataset, c track.Category, a *proximity.Analyzer) []proximity.PairCount {
	return a.Analyze(ds.ByCategory(c)).Pairs
}

// Run computes every analysis with the thresholds in cfg. A nil cfg uses
// the built-in defaults.
func Run(ds *track.Dataset, cfg *config.AnalysisConfig) (*Report, error) {
	if cfg == nil {
		cfg = config.DefaultAnalysisConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	policy, err := proximity.PolicyByName(cfg.GetQualifyPolicy())
	if err != nil {
		return nil, err
	}

	start := time.Now()
	r := &Report{
		RunID:          uuid.NewString(),
		GeneratedAt:    start.UTC(),
		Entities:       ds.Len(),
		Samples:        ds.TotalPositions(),
		SocialCategory: cfg.GetCategory(),
	}

	r.Speeds = PooledSpeeds(kinematics.ProfileDataset(ds))
	r.SpeedCDF = kinematics.CDF(r.Speeds)
	r.SpeedSummary = kinematics.Summarize(r.Speeds)

	analyzer := &proximity.Analyzer{
		Threshold: cfg.GetDistanceThreshold(),
		Policy:    policy,
		Workers:   cfg.GetWorkers(),
	}
	r.Social = SocialPairs(ds, r.SocialCategory, analyzer)

	if r.Occupancy, err = occupancy.Bin(ds, cfg.GetBinSize()); err != nil {
		return nil, fmt.Errorf("occupancy: %w", err)
	}
	if r.Heatmap, err = r.Occupancy.Histogram2D(cfg.GetHeatmapBins()); err != nil {
		return nil, fmt.Errorf("heatmap: %w", err)
	}

	r.Mingle = proximity.MingleLocations(ds, cfg.GetMingleThreshold(), cfg.GetMinglePrecision())
	r.Transients = acoustic.DetectDataset(ds, cfg.GetSoundThreshold())

	monitoring.Debugf("aggregate: run %s over %d entities took %v", r.RunID, r.Entities, time.Since(start))
	return r, nil
}
