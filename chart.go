package main

import (
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// chartBackend draws a raster-only variant of the diagram with go-chart.
// go-chart has no step series or top axis, so steps are expanded into
// horizontal segments and field names become the bottom tick labels.
type chartBackend struct{}

var chartColors = []drawing.Color{chart.ColorGreen, chart.ColorBlue, chart.ColorRed}

func (chartBackend) Name() string { return BackendChart }

func (chartBackend) Formats() []string { return []string{FormatPNG} }

func (chartBackend) Draw(w io.Writer, d diagram) error {
	n := len(d.Labels)
	scale := float64(d.DPI) / 96

	series := make([]chart.Series, 0, 3)
	for i, tr := range d.Traces.All() {
		xs, ys := stepValues(tr.Values)
		series = append(series, chart.ContinuousSeries{
			Name:    tr.Name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: chartColors[i%len(chartColors)],
				StrokeWidth: 2 * scale,
			},
		})
	}

	xTicks := make([]chart.Tick, n)
	for i, label := range d.Labels {
		xTicks[i] = chart.Tick{Value: float64(i), Label: label}
	}
	yTicks := make([]chart.Tick, len(d.YTicks))
	for i, t := range d.YTicks {
		yTicks[i] = chart.Tick{Value: t.Value, Label: t.Label}
	}

	width := int(d.WidthIn*float64(d.DPI) + 0.5)
	height := int(d.HeightIn*float64(d.DPI) + 0.5)
	pad := func(v float64) int { return int(v * scale) }

	ch := chart.Chart{
		Title:  d.Title,
		Width:  width,
		Height: height,
		DPI:    float64(d.DPI),
		Background: chart.Style{
			FillColor: drawing.ColorTransparent,
			Padding:   chart.Box{Top: pad(40), Left: pad(16), Right: pad(12), Bottom: pad(24)},
		},
		Canvas: chart.Style{FillColor: drawing.ColorTransparent},
		XAxis: chart.XAxis{
			Name:  d.XLabel,
			Ticks: xTicks,
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(n) - 0.5},
		},
		YAxis: chart.YAxis{
			Name:  d.YLabel,
			Ticks: yTicks,
			Range: &chart.ContinuousRange{Min: 0, Max: fieldLabelY},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("go-chart render: %w", err)
	}
	return nil
}

// stepValues turns one value per bit into a mid-step polyline: each bit is a
// flat segment from i-0.5 to i+0.5.
func stepValues(values []float64) ([]float64, []float64) {
	xs := make([]float64, 0, 2*len(values))
	ys := make([]float64, 0, 2*len(values))
	for i, v := range values {
		x := float64(i)
		xs = append(xs, x-0.5, x+0.5)
		ys = append(ys, v, v)
	}
	return xs, ys
}
