package charts

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"

	"volvedash/internal/production"
	"volvedash/pkg/contracts/domain"
)

var (
	// ErrUnknownChart is returned for an id outside Definitions.
	ErrUnknownChart = errors.New("unknown chart")
	// ErrUnsupportedFormat is returned for formats other than png and svg.
	ErrUnsupportedFormat = errors.New("unsupported chart format")
)

// Chart ids served by the Plots view.
const (
	IDOil      = "oil"
	IDGas      = "gas"
	IDOilWater = "oil-water"
	IDTotals   = "totals"
)

// Format is an output image format.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat validates an image format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatPNG:
		return FormatPNG, nil
	case FormatSVG:
		return FormatSVG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

func (f Format) provider() chart.RendererProvider {
	if f == FormatSVG {
		return chart.SVG
	}
	return chart.PNG
}

// Definition describes one of the dashboard charts.
type Definition struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Caption string `json:"caption"`
}

// Definitions lists the charts in display order.
var Definitions = []Definition{
	{ID: IDOil, Title: "Vol_o vs Year (per well)", Caption: "Oil production (Vol_o) over time"},
	{ID: IDGas, Title: "Vol_g vs Year (per well)", Caption: "Gas production (Vol_g) over time"},
	{ID: IDOilWater, Title: "Vol_o and Vol_w vs Year (per well)", Caption: "Oil and water production over time"},
	{ID: IDTotals, Title: "Cumulative totals per well", Caption: "Cumulative Vol_o, Vol_g and Vol_w per well"},
}

// Lookup returns the definition for id.
func Lookup(id string) (Definition, error) {
	for _, d := range Definitions {
		if d.ID == id {
			return d, nil
		}
	}
	return Definition{}, fmt.Errorf("%w: %q", ErrUnknownChart, id)
}

// Renderer draws charts from production records.
type Renderer struct {
	width  int
	height int
	logger *slog.Logger
}

// NewRenderer creates a renderer producing images of the given size.
func NewRenderer(width, height int, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		width:  width,
		height: height,
		logger: logger.With(slog.String("component", "chart_renderer")),
	}
}

// Render writes chart id for records to w in the given format.
func (r *Renderer) Render(w io.Writer, id string, format Format, records []domain.ProductionRecord) error {
	def, err := Lookup(id)
	if err != nil {
		return err
	}
	if _, err := ParseFormat(string(format)); err != nil {
		return err
	}

	switch id {
	case IDOil:
		return r.renderLines(w, def, format, records, domain.ColumnVolOil)
	case IDGas:
		return r.renderLines(w, def, format, records, domain.ColumnVolGas)
	case IDOilWater:
		return r.renderLines(w, def, format, records, domain.ColumnVolOil, domain.ColumnVolWater)
	default:
		return r.renderTotals(w, def, format, production.Totals(records))
	}
}
