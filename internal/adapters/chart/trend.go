package chart

import (
	"fmt"
	"image/color"

	"fxreport/internal/domain"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// TrendRenderer draws a series as a line of rate against day index
// (1 = newest day) and saves it; the format follows the file extension.
type TrendRenderer struct {
	width  vg.Length
	height vg.Length
}

func (r *TrendRenderer) RenderTrend(series domain.TimeSeries, path string) error {
	if series.Empty() {
		return fmt.Errorf("trend for %s: %w", series.Currency.Display(), domain.ErrEmptyInput)
	}

	p := plot.New()
	p.Title.Text = "Exchange Rate Trend for " + series.Currency.Display()
	p.X.Label.Text = "Day"
	p.Y.Label.Text = "Exchange Rate"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(series.Rates))
	for i, v := range series.Rates {
		pts[i].X = float64(i + 1)
		pts[i].Y = v
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("failed to build trend line for %s: %w", series.Currency.Display(), err)
	}
	blue := color.RGBA{B: 255, A: 255}
	line.Color = blue
	line.Width = vg.Points(2)
	points.Shape = draw.CircleGlyph{}
	points.Color = blue
	points.Radius = vg.Points(3)
	p.Add(line, points)

	if err = p.Save(r.width, r.height, path); err != nil {
		return fmt.Errorf("failed to save trend chart %q: %w", path, err)
	}
	return nil
}

// NewTrendRenderer renders square charts of the given side in inches.
func NewTrendRenderer(sideInches float64) *TrendRenderer {
	if sideInches <= 0 {
		sideInches = 8
	}
	side := vg.Length(sideInches) * vg.Inch
	return &TrendRenderer{width: side, height: side}
}
