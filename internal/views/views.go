// Package views renders the dashboard HTML pages from embedded templates.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strconv"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/banner.svg
var defaultBanner []byte

// Menu is one of the sidebar entries.
type Menu string

const (
	MenuHome  Menu = "Home"
	MenuData  Menu = "Data"
	MenuPlots Menu = "Plots"
)

// Menus lists the sidebar entries in display order.
var Menus = []Menu{MenuHome, MenuData, MenuPlots}

// Page is the model of every dashboard page. Exactly one of Data, Plots and
// Error is set, except on Home where none is.
type Page struct {
	Title     string
	Menu      Menu
	Menus     []Menu
	BannerURL string
	Version   string

	Data  *DataView
	Plots *PlotsView
	Error *ErrorView
}

// DataView is one page of the transformed production table.
type DataView struct {
	Columns    []string
	Rows       [][]string
	RowNumbers []int
	TotalRows  int
	Page       int
	Size       int
	Pages      int
	PrevURL    string
	NextURL    string
}

// NewDataView builds the view for rows starting at offset within a table of
// total rows.
func NewDataView(columns []string, rows [][]string, total, page, size int) *DataView {
	pages := 1
	if total > 0 {
		pages = (total-1)/size + 1
	}

	// rows only come back for pages inside the table, so the offset fits
	numbers := make([]int, len(rows))
	for i := range rows {
		numbers[i] = (page-1)*size + i + 1
	}

	v := &DataView{
		Columns:    columns,
		Rows:       rows,
		RowNumbers: numbers,
		TotalRows:  total,
		Page:       page,
		Size:       size,
		Pages:      pages,
	}
	if page > 1 {
		v.PrevURL = dataURL(page-1, size)
	}
	if page < pages {
		v.NextURL = dataURL(page+1, size)
	}
	return v
}

func dataURL(page, size int) string {
	q := url.Values{}
	q.Set("menu", string(MenuData))
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	return "/?" + q.Encode()
}

// PlotsView lists the charts shown on the Plots page.
type PlotsView struct {
	Charts []ChartView
}

// ChartView links one chart image.
type ChartView struct {
	ID       string
	Title    string
	Caption  string
	ImageURL string
	SVGURL   string
}

// NewChartView links the PNG and SVG renditions of chart id.
func NewChartView(id, title, caption string) ChartView {
	return ChartView{
		ID:       id,
		Title:    title,
		Caption:  caption,
		ImageURL: fmt.Sprintf("/charts/%s.png", id),
		SVGURL:   fmt.Sprintf("/charts/%s.svg", id),
	}
}

// ErrorView is the panel shown when the dataset cannot be used.
type ErrorView struct {
	Status      int
	Title       string
	Detail      string
	Missing     []string
	Conflicting []string
}

// Renderer executes the embedded page templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes page to w. The page is rendered to a buffer first so a
// template error never leaves a half written response.
func (r *Renderer) Render(w io.Writer, page Page) error {
	if page.Menus == nil {
		page.Menus = Menus
	}
	if page.Menu == "" {
		page.Menu = MenuHome
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		return fmt.Errorf("render %s page: %w", page.Menu, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// DefaultBanner returns the embedded banner image used when no image file is
// configured.
func DefaultBanner() []byte {
	return defaultBanner
}

// DefaultBannerContentType is the MIME type of DefaultBanner.
const DefaultBannerContentType = "image/svg+xml"
