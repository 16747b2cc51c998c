package chart

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/pbaille/clubgap/internal/domain"
	"github.com/pbaille/clubgap/internal/gapping"
)

// Palette holds the colors used by every chart
type Palette struct {
	Background string
	Text       string
	Carry      string
	Total      string
	Central    string
}

// DefaultPalette is a light fairway theme
var DefaultPalette = Palette{
	Background: "ffffff",
	Text:       "2f3b2f",
	Carry:      "2e7d32",
	Total:      "8d6e63",
	Central:    "f9a825",
}

const (
	width  = 900
	height = 450
)

// RenderGaps draws one vertical min..max bar per club with its central estimate,
// longest club on the left.
func RenderGaps(gaps []gapping.Gap, unit domain.Unit, palette Palette) ([]byte, error) {
	if len(gaps) == 0 {
		return renderNoDataPlaceholder(palette, "No gapping data for this selection")
	}

	bounds := make([]float64, 0, len(gaps)*2)
	ticks := make([]chart.Tick, 0, len(gaps))
	series := make([]chart.Series, 0, len(gaps)+1)
	central := chart.ContinuousSeries{
		Name:  "Central",
		Style: dotStyle(palette.Central),
	}

	for i, g := range gaps {
		x := float64(i + 1)
		bounds = append(bounds, g.Min, g.Max)
		ticks = append(ticks, chart.Tick{Value: x, Label: g.Name})
		series = append(series, chart.ContinuousSeries{
			Name:    g.Name,
			XValues: []float64{x, x},
			YValues: []float64{g.Min, g.Max},
			Style:   barStyle(palette.Carry, 14),
		})
		central.XValues = append(central.XValues, x)
		central.YValues = append(central.YValues, g.Central)
	}
	series = append(series, central)

	return render(palette, gapping.ScaleFor(bounds), len(gaps), ticks, unit, series)
}

// RenderClubShots draws the carry and total interval of each shot of a club
// on the club's padded chart scale.
func RenderClubShots(club domain.Club, shots []domain.Shot, unit domain.Unit, palette Palette) ([]byte, error) {
	if len(shots) == 0 {
		return renderNoDataPlaceholder(palette, fmt.Sprintf("No shots logged for %s", club.Name))
	}

	ticks := make([]chart.Tick, 0, len(shots))
	series := make([]chart.Series, 0, len(shots)*2)
	for i, s := range shots {
		x := float64(i + 1)
		ticks = append(ticks, chart.Tick{Value: x, Label: s.ShotType})

		carry, carryVar := s.Distance(domain.Carry)
		total, totalVar := s.Distance(domain.Total)
		carry, carryVar = gapping.Convert(carry, s.Unit, unit), gapping.Convert(carryVar, s.Unit, unit)
		total, totalVar = gapping.Convert(total, s.Unit, unit), gapping.Convert(totalVar, s.Unit, unit)

		series = append(series,
			chart.ContinuousSeries{
				Name:    s.ShotType + " carry",
				XValues: []float64{x - 0.15, x - 0.15},
				YValues: []float64{carry - carryVar, carry + carryVar},
				Style:   barStyle(palette.Carry, 10),
			},
			chart.ContinuousSeries{
				Name:    s.ShotType + " total",
				XValues: []float64{x + 0.15, x + 0.15},
				YValues: []float64{total - totalVar, total + totalVar},
				Style:   barStyle(palette.Total, 10),
			},
		)
	}

	return render(palette, gapping.ChartRange(shots, unit), len(shots), ticks, unit, series)
}

func render(palette Palette, scale gapping.Scale, n int, ticks []chart.Tick, unit domain.Unit, series []chart.Series) ([]byte, error) {
	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: drawing.ColorFromHex(palette.Background),
		},
		Canvas: chart.Style{
			FillColor: drawing.ColorFromHex(palette.Background),
		},
		XAxis: chart.XAxis{
			Style: chart.Style{
				FontColor: drawing.ColorFromHex(palette.Text),
			},
			Range: &chart.ContinuousRange{Min: 0, Max: float64(n + 1)},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name: string(unit),
			Style: chart.Style{
				FontColor: drawing.ColorFromHex(palette.Text),
			},
			Range: &chart.ContinuousRange{Min: scale.Min, Max: scale.Max},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", gapping.RoundDistance(f))
				}
				return ""
			},
		},
		Series: series,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buffer.Bytes(), nil
}

func barStyle(color string, width float64) chart.Style {
	return chart.Style{
		StrokeColor: drawing.ColorFromHex(color),
		StrokeWidth: width,
	}
}

func dotStyle(color string) chart.Style {
	return chart.Style{
		StrokeColor: drawing.ColorTransparent,
		StrokeWidth: 0,
		DotColor:    drawing.ColorFromHex(color),
		DotWidth:    5,
	}
}

func renderNoDataPlaceholder(palette Palette, msg string) ([]byte, error) {
	graph := chart.Chart{
		Width:  400,
		Height: 200,
		Background: chart.Style{
			FillColor: drawing.ColorFromHex(palette.Background),
		},
		Canvas: chart.Style{
			FillColor: drawing.ColorFromHex(palette.Background),
		},
		XAxis: chart.XAxis{Style: chart.Style{Hidden: true}},
		YAxis: chart.YAxis{Style: chart.Style{Hidden: true}},
		// go-chart refuses to render without a series
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style:   chart.Style{Hidden: true},
				XValues: []float64{0, 1},
				YValues: []float64{0, 1},
			},
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(drawing.ColorFromHex(palette.Text))
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render placeholder: %w", err)
	}
	return buffer.Bytes(), nil
}
