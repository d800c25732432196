package charts

import (
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"volvedash/pkg/contracts/domain"
)

const (
	barWidth   = 14
	barSpacing = 2
)

var volumeColours = map[string]drawing.Color{
	domain.ColumnVolOil:   chart.ColorGreen,
	domain.ColumnVolGas:   chart.ColorRed,
	domain.ColumnVolWater: chart.ColorBlue,
}

// renderTotals draws a grouped bar per well: Vol_o, Vol_g and Vol_w side by
// side, separated from the next well by an empty slot.
func (r *Renderer) renderTotals(w io.Writer, def Definition, format Format, totals []domain.WellTotals) error {
	var bars []chart.Value
	minVolume, maxVolume := 0.0, 0.0

	for wi, t := range totals {
		if wi > 0 {
			bars = append(bars, chart.Value{
				Value: 0,
				Style: chart.Style{FillColor: drawing.ColorTransparent, StrokeColor: drawing.ColorTransparent},
			})
		}
		for ci, column := range domain.VolumeColumns {
			v, _ := t.Volume(column).Float64()
			minVolume = math.Min(minVolume, v)
			maxVolume = math.Max(maxVolume, v)

			label := ""
			if ci == len(domain.VolumeColumns)/2 {
				label = t.Well
			}
			col := volumeColours[column]
			bars = append(bars, chart.Value{
				Value: v,
				Label: label,
				Style: chart.Style{FillColor: col, StrokeColor: col, StrokeWidth: 1},
			})
		}
	}

	if len(bars) == 0 {
		bars = append(bars, chart.Value{
			Value: 0,
			Label: "no data",
			Style: chart.Style{FillColor: drawing.ColorTransparent, StrokeColor: drawing.ColorTransparent},
		})
	}

	yRange, yTicks := volumeAxis(minVolume, maxVolume)

	width := r.width
	if need := len(bars)*(barWidth+barSpacing) + 160; need > width {
		width = need
	}

	bc := chart.BarChart{
		Title:      fmt.Sprintf("%s (green Vol_o, red Vol_g, blue Vol_w)", def.Title),
		Width:      width,
		Height:     r.height,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		YAxis:      chart.YAxis{Name: "Volume", Range: yRange, Ticks: yTicks},
		Bars:       bars,
	}

	if err := bc.Render(format.provider(), w); err != nil {
		return fmt.Errorf("render %s chart: %w", def.ID, err)
	}
	return nil
}
