// Package chartimg renders the dashboard charts as PNG images for export.
package chartimg

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches/charts"
)

const (
	PieWidth      = 640
	PieHeight     = 480
	ScatterWidth  = 960
	ScatterHeight = 480
)

// Plotly's default qualitative colors, so exported images match the page.
var palette = []drawing.Color{
	drawing.ColorFromHex("636efa"),
	drawing.ColorFromHex("ef553b"),
	drawing.ColorFromHex("00cc96"),
	drawing.ColorFromHex("ab63fa"),
	drawing.ColorFromHex("ffa15a"),
	drawing.ColorFromHex("19d3f3"),
	drawing.ColorFromHex("ff6692"),
	drawing.ColorFromHex("b6e880"),
}

var noDataColor = drawing.ColorFromHex("cccccc")

func colorAt(i int) drawing.Color {
	return palette[i%len(palette)]
}

// pointStyle draws markers only, no connecting line.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    5,
		DotColor:    col,
	}
}

func blankStyle() chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		StrokeColor: drawing.ColorTransparent,
		DotWidth:    0,
		DotColor:    drawing.ColorTransparent,
	}
}

// RenderPie writes p as a PNG. Empty slices are skipped; a chart with nothing
// to show is drawn as a single gray "No data" wedge.
func RenderPie(w io.Writer, p charts.PieChart) error {
	var values []chart.Value
	for i, s := range p.Slices {
		if s.Value <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%s)", s.Label, strconv.FormatFloat(s.Value, 'f', -1, 64)),
			Value: s.Value,
			Style: chart.Style{FillColor: colorAt(i), StrokeColor: drawing.ColorWhite, StrokeWidth: 1},
		})
	}
	if len(values) == 0 {
		values = []chart.Value{{
			Label: "No data",
			Value: 1,
			Style: chart.Style{FillColor: noDataColor},
		}}
	}

	pie := chart.PieChart{
		Title:  p.Title,
		Width:  PieWidth,
		Height: PieHeight,
		Values: values,
	}
	if err := pie.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render pie chart: %w", err)
	}
	return nil
}

// RenderScatter writes s as a PNG with one colored series per booster
// version category. The x axis spans the selected payload range.
func RenderScatter(w io.Writer, s charts.ScatterChart) error {
	xMin, xMax := s.Criteria.PayloadMin, s.Criteria.PayloadMax
	if xMax <= xMin {
		xMin, xMax = xMin-500, xMin+500
	}
	yMin, yMax := outcomeRange(s)

	var series []chart.Series
	for i, cat := range s.Series {
		xs := make([]float64, 0, len(cat.Points))
		ys := make([]float64, 0, len(cat.Points))
		for _, p := range cat.Points {
			xs = append(xs, p.PayloadMassKg)
			ys = append(ys, float64(p.Class))
		}
		series = append(series, chart.ContinuousSeries{
			Name:    cat.Category,
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(colorAt(i)),
		})
	}
	// go-chart refuses to render without a visible series, so an empty
	// selection gets a transparent one to keep the axes.
	empty := len(series) == 0
	if empty {
		series = append(series, chart.ContinuousSeries{
			XValues: []float64{xMin},
			YValues: []float64{0},
			Style:   blankStyle(),
		})
	}

	ch := chart.Chart{
		Title:      s.Title,
		Width:      ScatterWidth,
		Height:     ScatterHeight,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  s.XLabel,
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
		},
		YAxis: chart.YAxis{
			Name:  s.YLabel,
			Range: &chart.ContinuousRange{Min: yMin, Max: yMax},
			Ticks: outcomeTicks(yMin, yMax),
		},
		Series: series,
	}
	if !empty {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render scatter chart: %w", err)
	}
	return nil
}

// outcomeRange pads the plotted outcome values by half a unit, always
// covering 0 and 1.
func outcomeRange(s charts.ScatterChart) (float64, float64) {
	lo, hi := 0.0, 1.0
	for _, series := range s.Series {
		for _, p := range series.Points {
			lo = math.Min(lo, float64(p.Class))
			hi = math.Max(hi, float64(p.Class))
		}
	}
	return lo - 0.5, hi + 0.5
}

func outcomeTicks(min, max float64) []chart.Tick {
	var ticks []chart.Tick
	for v := math.Ceil(min); v <= max; v++ {
		ticks = append(ticks, chart.Tick{Value: v, Label: strconv.Itoa(int(v))})
	}
	return ticks
}
