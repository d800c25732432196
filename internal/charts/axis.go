package charts

import (
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
)

// volumeAxis returns a range covering [min, max] that always includes zero,
// with rounded ticks.
func volumeAxis(min, max float64) (*chart.ContinuousRange, []chart.Tick) {
	if min > 0 {
		min = 0
	}
	if max <= min {
		max = min + 1
	}
	step := niceStep(max-min, 5)
	lo := math.Floor(min/step) * step
	hi := math.Ceil(max/step) * step
	if hi <= max {
		hi += step
	}

	ticks := make([]chart.Tick, 0, int((hi-lo)/step)+1)
	for v := lo; v <= hi+step/2; v += step {
		ticks = append(ticks, chart.Tick{Value: v, Label: formatVolume(v)})
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}, ticks
}

// maxYearTicks bounds the labels on the year axis
const maxYearTicks = 20

// yearAxis returns a range covering [first, last] with a tick per year, or
// per n years once the span exceeds maxYearTicks. A single year is widened
// by one on each side.
func yearAxis(first, last int) (*chart.ContinuousRange, []chart.Tick) {
	lo, hi := first, last
	if lo == hi {
		lo--
		hi++
	}
	step := 1
	if span := hi - lo; span >= maxYearTicks {
		step = (span + maxYearTicks - 1) / maxYearTicks
	}
	ticks := make([]chart.Tick, 0, maxYearTicks+2)
	for y := lo; y <= hi; y += step {
		ticks = append(ticks, chart.Tick{Value: float64(y), Label: strconv.Itoa(y)})
	}
	return &chart.ContinuousRange{Min: float64(lo), Max: float64(hi)}, ticks
}

// niceStep picks a 1, 2, 2.5 or 5 times power of ten step giving roughly n
// intervals over span.
func niceStep(span float64, n int) float64 {
	raw := span / float64(n)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, c := range []float64{1, 2, 2.5, 5, 10} {
		if c*mag >= raw {
			return c * mag
		}
	}
	return 10 * mag
}

// formatVolume abbreviates large values with k, M and G suffixes.
func formatVolume(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e9:
		return trimFloat(v/1e9) + "G"
	case abs >= 1e6:
		return trimFloat(v/1e6) + "M"
	case abs >= 1e3:
		return trimFloat(v/1e3) + "k"
	}
	return trimFloat(v)
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
