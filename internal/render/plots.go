package render

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/herd.report/internal/aggregate"
	"github.com/banshee-data/herd.report/internal/kinematics"
	"github.com/banshee-data/herd.report/internal/monitoring"
	"github.com/banshee-data/herd.report/internal/occupancy"
	"github.com/banshee-data/herd.report/internal/track"
)

// ErrNoData is returned when a figure has nothing to draw.
var ErrNoData = errors.New("render: no data")

// Output file names written by WritePlots.
const (
	SpeedCDFFile  = "speed_cdf.png"
	HeatmapFile   = "occupancy_heatmap.png"
	MingleFile    = "mingle_locations.png"
	heatmapColors = 12
)

var (
	figureWidth  = 10 * vg.Inch
	figureHeight = 6 * vg.Inch
)

// SpeedCDFPlot draws the empirical CDF of pooled speeds to path.
func SpeedCDFPlot(points []kinematics.CDFPoint, path string) error {
	if len(points) == 0 {
		return ErrNoData
	}

	p := plot.New()
	p.Title.Text = "Movement Speed CDF"
	p.X.Label.Text = "Speed (units/s)"
	p.Y.Label.Text = "Fraction of samples"
	p.Y.Min = 0
	p.Y.Max = 1

	pts := make(plotter.XYs, len(points))
	for i, pt := range points {
		pts[i] = plotter.XY{X: pt.Speed, Y: pt.CDF}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("create cdf line: %w", err)
	}
	line.Width = vg.Points(1)
	line.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	p.Add(line, plotter.NewGrid())

	if err := p.Save(figureWidth, figureHeight, path); err != nil {
		return fmt.Errorf("save cdf plot: %w", err)
	}
	return nil
}

// OccupancyHeatmapPlot draws the 2-D occupancy histogram to path.
func OccupancyHeatmapPlot(r *occupancy.Raster, path string) error {
	if r == nil {
		return ErrNoData
	}
	if c, rows := r.Dims(); c == 0 || rows == 0 {
		return ErrNoData
	}

	p := plot.New()
	p.Title.Text = "Occupancy Heatmap"
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"

	hm := plotter.NewHeatMap(r, palette.Heat(heatmapColors, 1))
	if hm.Min == hm.Max {
		hm.Max = hm.Min + 1
	}
	p.Add(hm)

	if err := p.Save(figureHeight, figureHeight, path); err != nil {
		return fmt.Errorf("save heatmap plot: %w", err)
	}
	return nil
}

// MinglePlot scatters lion/zebra co-location points to path.
func MinglePlot(locations []track.Position, path string) error {
	if len(locations) == 0 {
		return ErrNoData
	}

	p := plot.New()
	p.Title.Text = "Lion/Zebra Mingle Locations"
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"

	pts := make(plotter.XYs, len(locations))
	for i, loc := range locations {
		pts[i] = plotter.XY{X: loc.X, Y: loc.Y}
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("create mingle scatter: %w", err)
	}
	sc.GlyphStyle.Color = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	sc.GlyphStyle.Radius = vg.Points(3)
	p.Add(sc, plotter.NewGrid())

	if err := p.Save(figureWidth, figureHeight, path); err != nil {
		return fmt.Errorf("save mingle plot: %w", err)
	}
	return nil
}

// WritePlots renders every figure of r into dir and returns the paths that
// were written. Figures with no data are skipped.
func WritePlots(dir string, r *aggregate.Report) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create plot dir: %w", err)
	}

	figures := []struct {
		name string
		draw func(string) error
	}{
		{SpeedCDFFile, func(path string) error { return SpeedCDFPlot(r.SpeedCDF, path) }},
		{HeatmapFile, func(path string) error { return OccupancyHeatmapPlot(r.Heatmap, path) }},
		{MingleFile, func(path string) error { return MinglePlot(r.Mingle, path) }},
	}

	var written []string
	for _, f := range figures {
		path := filepath.Join(dir, f.name)
		err := f.draw(path)
		if errors.Is(err, ErrNoData) {
			monitoring.Logf("render: skipping %s, nothing to draw", f.name)
			continue
		}
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
