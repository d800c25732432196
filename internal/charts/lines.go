package charts

import (
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"

	"volvedash/internal/production"
	"volvedash/pkg/contracts/domain"
)

var dashed = []float64{6, 4}

// renderLines draws one line per well for each column. The first column is
// drawn solid, the following ones dashed in the same well colour.
func (r *Renderer) renderLines(w io.Writer, def Definition, format Format, records []domain.ProductionRecord, columns ...string) error {
	wells := production.Wells(records)
	colour := make(map[string]int, len(wells))
	for i, well := range wells {
		colour[well] = i
	}

	var series []chart.Series
	firstYear, lastYear := math.MaxInt, math.MinInt
	minVolume, maxVolume := 0.0, 0.0

	for ci, column := range columns {
		perWell, err := production.YearlySeries(records, column)
		if err != nil {
			return err
		}
		for _, s := range perWell {
			if len(s.Points) == 0 {
				continue
			}
			xs := make([]float64, len(s.Points))
			ys := make([]float64, len(s.Points))
			for i, p := range s.Points {
				xs[i] = float64(p.Year)
				ys[i], _ = p.Volume.Float64()
				firstYear = min(firstYear, p.Year)
				lastYear = max(lastYear, p.Year)
				minVolume = math.Min(minVolume, ys[i])
				maxVolume = math.Max(maxVolume, ys[i])
			}
			// A lone point still needs two samples to be drawn.
			if len(xs) == 1 {
				xs = append(xs, xs[0])
				ys = append(ys, ys[0])
			}

			name := s.Well
			if len(columns) > 1 {
				name = fmt.Sprintf("%s (%s)", s.Well, column)
			}
			col := chart.GetDefaultColor(colour[s.Well])
			style := chart.Style{
				StrokeColor: col,
				StrokeWidth: 2,
				DotColor:    col,
				DotWidth:    3,
			}
			if ci > 0 {
				style.StrokeDashArray = dashed
			}
			series = append(series, chart.ContinuousSeries{
				Name:    name,
				XValues: xs,
				YValues: ys,
				Style:   style,
			})
		}
	}

	if len(series) == 0 {
		firstYear, lastYear = 2008, 2016
		series = append(series, chart.ContinuousSeries{
			Style:   chart.Style{Hidden: true},
			XValues: []float64{float64(firstYear), float64(lastYear)},
			YValues: []float64{0, 0},
		})
	}

	xRange, xTicks := yearAxis(firstYear, lastYear)
	yRange, yTicks := volumeAxis(minVolume, maxVolume)

	ch := chart.Chart{
		Title:      def.Title,
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      chart.XAxis{Name: domain.ColumnYear, Range: xRange, Ticks: xTicks},
		YAxis:      chart.YAxis{Name: volumeAxisName(columns), Range: yRange, Ticks: yTicks},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.LegendLeft(&ch)}

	if err := ch.Render(format.provider(), w); err != nil {
		return fmt.Errorf("render %s chart: %w", def.ID, err)
	}
	return nil
}

func volumeAxisName(columns []string) string {
	if len(columns) == 1 {
		return columns[0]
	}
	name := columns[0]
	for _, c := range columns[1:] {
		name += " / " + c
	}
	return name
}
