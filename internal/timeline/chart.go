package timeline

import (
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/cuenta-regresiva/backend/internal/models"
)

// Default chart size.
const (
	ChartWidth  = 600
	ChartHeight = 120
)

const lineY = 0.5

// MarkerY is the fixed height of the airplane marker above the line.
const MarkerY = 0.56

// ChartOptions controls RenderChart.
type ChartOptions struct {
	Width       int
	Height      int
	MarkerLabel string
}

// RenderChart draws the progress line, its milestone labels and the "now" marker as a PNG.
func RenderChart(w io.Writer, state models.TimelineState, opts ChartOptions) error {
	if opts.Width <= 0 {
		opts.Width = ChartWidth
	}
	if opts.Height <= 0 {
		opts.Height = ChartHeight
	}
	if opts.MarkerLabel == "" {
		opts.MarkerLabel = "✈"
	}

	line := chart.ContinuousSeries{
		Name:    "timeline",
		XValues: []float64{0, 1},
		YValues: []float64{lineY, lineY},
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("808080"),
			StrokeWidth: 8,
		},
	}

	ticks := make([]chart.Tick, 0, len(state.Markers))
	labels := make([]chart.Value2, 0, len(state.Markers)+1)
	for _, m := range state.Markers {
		ticks = append(ticks, chart.Tick{Value: m.Fraction, Label: m.Label})
		labels = append(labels, chart.Value2{XValue: m.Fraction, YValue: lineY, Label: m.Label})
	}
	// go-chart needs at least two ticks to lay out an axis.
	if len(ticks) < 2 {
		ticks = []chart.Tick{{Value: 0, Label: ""}, {Value: 1, Label: ""}}
	}
	labels = append(labels, chart.Value2{XValue: state.Now, YValue: MarkerY, Label: opts.MarkerLabel})

	now := chart.ContinuousSeries{
		Name:    "now",
		XValues: []float64{state.Now, state.Now},
		YValues: []float64{MarkerY, MarkerY},
		Style: chart.Style{
			StrokeWidth: 0,
			DotWidth:    6,
			DotColor:    chart.ColorBlue,
		},
	}

	ch := chart.Chart{
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 10, Left: 10, Right: 10, Bottom: 10}},
		XAxis: chart.XAxis{
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
			Ticks: []chart.Tick{{Value: 0, Label: ""}, {Value: 1, Label: ""}},
		},
		Series: []chart.Series{
			line,
			now,
			chart.AnnotationSeries{Annotations: labels},
		},
	}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render timeline chart: %w", err)
	}
	return nil
}
