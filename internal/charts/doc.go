// Package charts renders the four fixed production plots with go-chart.
//
// Each chart is addressed by a short id (oil, gas, oil-water, totals) and can
// be rendered as PNG or SVG. Axis ranges are always set explicitly so that a
// single year or a flat series still produces a valid image.
package charts
