package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/herd.report/internal/track"
)

// DefaultConfigPath is the path to the shipped analysis defaults file.
const DefaultConfigPath = "config/analysis.defaults.json"

// Built-in defaults, used whenever a field is omitted from the file.
const (
	DefaultDistanceThreshold = 5.0
	DefaultBinSize           = 0.5
	DefaultSoundThreshold    = 10.0
	DefaultHeatmapBins       = 50
	DefaultMingleThreshold   = 5.0
	DefaultMinglePrecision   = 2
	DefaultReportTopN        = 10
	DefaultQualifyPolicy     = "last-iterated"
	DefaultWorkers           = 1
)

// QualifyPolicies lists the accepted qualify_policy names.
var QualifyPolicies = []string{"last-iterated", "min", "max", "mean"}

// AnalysisConfig holds the analysis thresholds. Every field is optional;
// the Get* methods fall back to the built-in default when a field is nil.
type AnalysisConfig struct {
	// Proximity analyzer
	DistanceThreshold *float64 `json:"distance_threshold,omitempty"`
	QualifyPolicy     *string  `json:"qualify_policy,omitempty"`
	Category          *string  `json:"category,omitempty"` // "zebra", "lion" or "" for every entity
	Workers           *int     `json:"workers,omitempty"`

	// Occupancy binner
	BinSize     *float64 `json:"bin_size,omitempty"`
	HeatmapBins *int     `json:"heatmap_bins,omitempty"`

	// Lion/zebra co-location
	MingleThreshold *float64 `json:"mingle_threshold,omitempty"`
	MinglePrecision *int     `json:"mingle_precision,omitempty"`

	// Sound transients
	SoundThreshold *float64 `json:"sound_threshold,omitempty"`

	// Reporting
	ReportTopN *int `json:"report_top_n,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyAnalysisConfig returns a config with every field unset.
func EmptyAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{}
}

// DefaultAnalysisConfig returns a config with every field populated from
// the built-in defaults.
func DefaultAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		DistanceThreshold: ptrFloat64(DefaultDistanceThreshold),
		QualifyPolicy:     ptrString(DefaultQualifyPolicy),
		Category:          ptrString(""),
		Workers:           ptrInt(DefaultWorkers),
		BinSize:           ptrFloat64(DefaultBinSize),
		HeatmapBins:       ptrInt(DefaultHeatmapBins),
		MingleThreshold:   ptrFloat64(DefaultMingleThreshold),
		MinglePrecision:   ptrInt(DefaultMinglePrecision),
		SoundThreshold:    ptrFloat64(DefaultSoundThreshold),
		ReportTopN:        ptrInt(DefaultReportTopN),
	}
}

// LoadAnalysisConfig loads an AnalysisConfig from a JSON file. Omitted
// fields keep their defaults, so partial files are fine.
func LoadAnalysisConfig(path string) (*AnalysisConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyAnalysisConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that every set value is usable.
func (c *AnalysisConfig) Validate() error {
	if c.DistanceThreshold != nil && *c.DistanceThreshold <= 0 {
		return fmt.Errorf("distance_threshold must be positive, got %f", *c.DistanceThreshold)
	}
	if c.BinSize != nil && *c.BinSize <= 0 {
		return fmt.Errorf("bin_size must be positive, got %f", *c.BinSize)
	}
	if c.HeatmapBins != nil && *c.HeatmapBins < 1 {
		return fmt.Errorf("heatmap_bins must be at least 1, got %d", *c.HeatmapBins)
	}
	if c.MingleThreshold != nil && *c.MingleThreshold <= 0 {
		return fmt.Errorf("mingle_threshold must be positive, got %f", *c.MingleThreshold)
	}
	if c.MinglePrecision != nil && (*c.MinglePrecision < 0 || *c.MinglePrecision > 12) {
		return fmt.Errorf("mingle_precision must be between 0 and 12, got %d", *c.MinglePrecision)
	}
	if c.SoundThreshold != nil && *c.SoundThreshold < 0 {
		return fmt.Errorf("sound_threshold must be non-negative, got %f", *c.SoundThreshold)
	}
	if c.ReportTopN != nil && *c.ReportTopN < 0 {
		return fmt.Errorf("report_top_n must be non-negative, got %d", *c.ReportTopN)
	}
	if c.Workers != nil && *c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", *c.Workers)
	}
	if c.QualifyPolicy != nil && *c.QualifyPolicy != "" {
		known := false
		for _, name := range QualifyPolicies {
			if *c.QualifyPolicy == name {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("unknown qualify_policy %q (want one of %v)", *c.QualifyPolicy, QualifyPolicies)
		}
	}
	if c.Category != nil {
		if _, err := track.ParseCategory(*c.Category); err != nil {
			return fmt.Errorf("invalid category: %w", err)
		}
	}
	return nil
}

// GetDistanceThreshold returns the distance_threshold value or the default.
func (c *AnalysisConfig) GetDistanceThreshold() float64 {
	if c.DistanceThreshold == nil {
		return DefaultDistanceThreshold
	}
	return *c.DistanceThreshold
}

// GetQualifyPolicy returns the qualify_policy value or the default.
func (c *AnalysisConfig) GetQualifyPolicy() string {
	if c.QualifyPolicy == nil || *c.QualifyPolicy == "" {
		return DefaultQualifyPolicy
	}
	return *c.QualifyPolicy
}

// GetCategory returns the proximity category filter. Invalid values
// degrade to no filter; Validate reports them.
func (c *AnalysisConfig) GetCategory() track.Category {
	if c.Category == nil {
		return track.CategoryUnknown
	}
	cat, err := track.ParseCategory(*c.Category)
	if err != nil {
		return track.CategoryUnknown
	}
	return cat
}

// GetWorkers returns the workers value or the default.
func (c *AnalysisConfig) GetWorkers() int {
	if c.Workers == nil || *c.Workers < 1 {
		return DefaultWorkers
	}
	return *c.Workers
}

// GetBinSize returns the bin_size value or the default.
func (c *AnalysisConfig) GetBinSize() float64 {
	if c.BinSize == nil {
		return DefaultBinSize
	}
	return *c.BinSize
}

// GetHeatmapBins returns the heatmap_bins value or the default.
func (c *AnalysisConfig) GetHeatmapBins() int {
	if c.HeatmapBins == nil {
		return DefaultHeatmapBins
	}
	return *c.HeatmapBins
}

// GetMingleThreshold returns the mingle_threshold value or the default.
func (c *AnalysisConfig) GetMingleThreshold() float64 {
	if c.MingleThreshold == nil {
		return DefaultMingleThreshold
	}
	return *c.MingleThreshold
}

// GetMinglePrecision returns the mingle_precision value or the default.
func (c *AnalysisConfig) GetMinglePrecision() int {
	if c.MinglePrecision == nil {
		return DefaultMinglePrecision
	}
	return *c.MinglePrecision
}

// GetSoundThreshold returns the sound_threshold value or the default.
func (c *AnalysisConfig) GetSoundThreshold() float64 {
	if c.SoundThreshold == nil {
		return DefaultSoundThreshold
	}
	return *c.SoundThreshold
}

// GetReportTopN returns the report_top_n value or the default.
func (c *AnalysisConfig) GetReportTopN() int {
	if c.ReportTopN == nil {
		return DefaultReportTopN
	}
	return *c.ReportTopN
}
