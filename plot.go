package main

import (
	"fmt"
	"image/color"
	"io"
	"strconv"

	"golang.org/x/image/colornames"
	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// fieldLabelY is the height at which field names are written above the traces.
const fieldLabelY = 5.3

type traceStyle struct {
	color color.Color
	shape draw.GlyphDrawer
}

// traceStyles follow the order of Traces.All.
var traceStyles = []traceStyle{
	{color: colornames.Green, shape: draw.CircleGlyph{}},
	{color: colornames.Steelblue, shape: draw.TriangleGlyph{}},
	{color: colornames.Red, shape: draw.PyramidGlyph{}},
}

// gonumBackend draws the diagram with gonum/plot and supports raster and
// vector output.
type gonumBackend struct{}

func (gonumBackend) Name() string { return BackendGonum }

func (gonumBackend) Formats() []string { return []string{FormatPNG, FormatSVG, FormatPDF} }

func (gonumBackend) Draw(w io.Writer, d diagram) error {
	p, err := buildPlot(d)
	if err != nil {
		return err
	}

	width := vg.Length(d.WidthIn) * vg.Inch
	height := vg.Length(d.HeightIn) * vg.Inch

	if d.Format == FormatPNG {
		c := vgimg.NewWith(
			vgimg.UseWH(width, height),
			vgimg.UseDPI(d.DPI),
			vgimg.UseBackgroundColor(color.Transparent),
		)
		p.Draw(draw.New(c))
		if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(w); err != nil {
			return fmt.Errorf("encode png: %w", err)
		}
		return nil
	}

	wt, err := p.WriterTo(width, height, d.Format)
	if err != nil {
		return fmt.Errorf("%s writer: %w", d.Format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("encode %s: %w", d.Format, err)
	}
	return nil
}

// headingWeight is bold except for PDF, whose canvas only carries the
// regular Liberation faces.
func headingWeight(format string) xfont.Weight {
	if format == FormatPDF {
		return xfont.WeightNormal
	}
	return xfont.WeightBold
}

// buildPlot lays out the step chart for d.
func buildPlot(d diagram) (*plot.Plot, error) {
	weight := headingWeight(d.Format)
	p := plot.New()
	p.BackgroundColor = color.Transparent

	p.Title.Text = d.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Title.TextStyle.Font.Weight = weight
	p.Title.Padding = vg.Points(12)

	p.X.Label.Text = d.XLabel
	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.X.Label.TextStyle.Font.Weight = weight
	p.Y.Label.Text = d.YLabel
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.TextStyle.Font.Weight = weight

	n := len(d.Labels)
	p.X.Min = -0.5
	p.X.Max = float64(n) - 0.5
	p.Y.Min = 0
	p.Y.Max = fieldLabelY + 0.4

	bitTicks := make([]plot.Tick, n)
	for i := range bitTicks {
		bitTicks[i] = plot.Tick{Value: float64(i), Label: strconv.Itoa(i)}
	}
	p.X.Tick.Marker = plot.ConstantTicks(bitTicks)

	yTicks := make([]plot.Tick, len(d.YTicks))
	for i, t := range d.YTicks {
		yTicks[i] = plot.Tick{Value: t.Value, Label: t.Label}
	}
	p.Y.Tick.Marker = plot.ConstantTicks(yTicks)
	p.Y.Tick.Label.Font.Size = vg.Points(12)

	p.Add(plotter.NewGrid())

	for i, tr := range d.Traces.All() {
		style := traceStyles[i%len(traceStyles)]
		xys := traceXYs(tr.Values)

		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("trace %s: %w", tr.Name, err)
		}
		line.StepStyle = plotter.MidStep
		line.Color = style.color
		line.Width = vg.Points(1.5)

		points, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, fmt.Errorf("trace %s points: %w", tr.Name, err)
		}
		points.GlyphStyle.Shape = style.shape
		points.GlyphStyle.Color = style.color
		points.GlyphStyle.Radius = vg.Points(3)

		p.Add(line, points)
		p.Legend.Add(tr.Name, line, points)
	}
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.Padding = vg.Points(5)

	labels, err := fieldLabels(d.Labels, weight)
	if err != nil {
		return nil, err
	}
	p.Add(labels)

	return p, nil
}

func traceXYs(values []float64) plotter.XYs {
	xys := make(plotter.XYs, len(values))
	for i, v := range values {
		xys[i].X = float64(i)
		xys[i].Y = v
	}
	return xys
}

// fieldLabels writes each bit's field name in a row above the traces.
func fieldLabels(names []string, weight xfont.Weight) (*plotter.Labels, error) {
	xys := make(plotter.XYs, len(names))
	for i := range names {
		xys[i].X = float64(i)
		xys[i].Y = fieldLabelY
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: names})
	if err != nil {
		return nil, fmt.Errorf("field labels: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].Font.Size = vg.Points(8)
		labels.TextStyle[i].Font.Weight = weight
	}
	return labels, nil
}
