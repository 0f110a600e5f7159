package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/herd.report/internal/aggregate"
)

// DashboardOptions tunes the HTML dashboard.
type DashboardOptions struct {
	// AssetsHost overrides where the echarts javascript is loaded from.
	// Empty uses the go-echarts default CDN.
	AssetsHost string
	Theme      string
}

var viridis = []string{"#440154", "#482777", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}

// Dashboard renders r as a single HTML page: the speed CDF, the occupancy
// heatmap, mingle locations and the sound transients.
func Dashboard(w io.Writer, r *aggregate.Report, o DashboardOptions) error {
	initOpts := opts.Initialization{Width: "900px", Height: "600px", Theme: o.Theme, AssetsHost: o.AssetsHost}
	subtitle := fmt.Sprintf("run=%s entities=%d samples=%d", r.RunID, r.Entities, r.Samples)

	page := components.NewPage()
	if o.AssetsHost != "" {
		page.SetAssetsHost(o.AssetsHost)
	}
	page.PageTitle = "Herd Report"

	page.AddCharts(speedCDFChart(r, initOpts, subtitle))
	if r.Heatmap != nil && r.Heatmap.Total() > 0 {
		page.AddCharts(heatmapChart(r, initOpts))
	}
	if len(r.Mingle) > 0 {
		page.AddCharts(mingleChart(r, initOpts))
	}
	page.AddCharts(transientChart(r, initOpts))

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	return nil
}

func speedCDFChart(r *aggregate.Report, initOpts opts.Initialization, subtitle string) *charts.Line {
	data := make([]opts.LineData, len(r.SpeedCDF))
	for i, pt := range r.SpeedCDF {
		data[i] = opts.LineData{Value: []interface{}{pt.Speed, pt.CDF}}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts),
		charts.WithTitleOpts(opts.Title{Title: "Movement Speed CDF", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Speed (units/s)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Min: 0, Max: 1, Name: "Fraction", NameLocation: "middle", NameGap: 30}),
	)
	line.AddSeries("speed", data)
	return line
}

func heatmapChart(r *aggregate.Report, initOpts opts.Initialization) *charts.HeatMap {
	h := r.Heatmap
	cols, rows := h.Dims()

	xs := make([]string, cols)
	for i := range xs {
		xs[i] = fmt.Sprintf("%.2f", h.X(i))
	}
	ys := make([]string, rows)
	for j := range ys {
		ys[j] = fmt.Sprintf("%.2f", h.Y(j))
	}

	data := make([]opts.HeatMapData, 0)
	for i := 0; i < cols; i++ {
		for j := 0; j < rows; j++ {
			if z := h.Z(i, j); z > 0 {
				data = append(data, opts.HeatMapData{Value: [3]interface{}{i, j, z}})
			}
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts),
		charts.WithTitleOpts(opts.Title{Title: "Occupancy Heatmap", Subtitle: fmt.Sprintf("cells=%d bin=%g", r.Occupancy.Len(), r.Occupancy.BinSize)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: "X"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: ys, Name: "Y"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(h.Max()),
			InRange:    &opts.VisualMapInRange{Color: viridis},
		}),
	)
	hm.SetXAxis(xs).AddSeries("occupancy", data)
	return hm
}

func mingleChart(r *aggregate.Report, initOpts opts.Initialization) *charts.Scatter {
	data := make([]opts.ScatterData, len(r.Mingle))
	for i, p := range r.Mingle {
		data[i] = opts.ScatterData{Value: []interface{}{p.X, p.Y}}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts),
		charts.WithTitleOpts(opts.Title{Title: "Lion/Zebra Mingle Locations", Subtitle: fmt.Sprintf("count=%d", len(data))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "X", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Y", NameLocation: "middle", NameGap: 30}),
	)
	scatter.AddSeries("mingle", data,
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#ff5252"}),
	)
	return scatter
}

func transientChart(r *aggregate.Report, initOpts opts.Initialization) *charts.Bar {
	x := make([]string, len(r.Transients))
	y := make([]opts.BarData, len(r.Transients))
	for i, t := range r.Transients {
		x[i] = fmt.Sprintf("%s[%d]", t.EntityID, t.Index)
		y[i] = opts.BarData{Value: t.Increase}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts),
		charts.WithTitleOpts(opts.Title{Title: "Sudden Sound Increases", Subtitle: fmt.Sprintf("events=%d", len(y))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(x).AddSeries("increase", y)
	return bar
}
