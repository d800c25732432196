package views

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	return r
}

func TestRender_Home(t *testing.T) {
	var buf bytes.Buffer

	err := newRenderer(t).Render(&buf, Page{Title: "Volve Field Production History", BannerURL: "/static/banner"})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "<title>Volve Field Production History</title>")
	assert.Contains(t, html, `id="home"`)
	assert.Contains(t, html, `src="/static/banner"`)
	assert.Contains(t, html, `<a href="/?menu=Home" class="active">Home</a>`)
	assert.Contains(t, html, `<a href="/?menu=Data">Data</a>`)
	assert.Contains(t, html, `<a href="/?menu=Plots">Plots</a>`)
	assert.NotContains(t, html, `id="data"`)
}

func TestRender_Data(t *testing.T) {
	var buf bytes.Buffer
	data := NewDataView(
		[]string{"DATEPRD", "Well", "Vol_o"},
		[][]string{{"2008-01-01", "<A>", "10"}},
		3, 2, 1,
	)

	err := newRenderer(t).Render(&buf, Page{Title: "t", Menu: MenuData, Data: data})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, `id="data"`)
	assert.Contains(t, html, "<th>Vol_o</th>")
	assert.Contains(t, html, "&lt;A&gt;", "cells are escaped")
	assert.Contains(t, html, "<td>2</td>", "row numbers continue across pages")
	assert.Contains(t, html, "3 rows, 3 columns")
	assert.Contains(t, html, "/?menu=Data&amp;page=1&amp;size=1")
	assert.Contains(t, html, "/?menu=Data&amp;page=3&amp;size=1")
	assert.Contains(t, html, `<a href="/?menu=Data" class="active">Data</a>`)
}

func TestRender_Plots(t *testing.T) {
	var buf bytes.Buffer
	plots := &PlotsView{Charts: []ChartView{
		NewChartView("oil", "Vol_o vs Year (per well)", "Oil production"),
		NewChartView("totals", "Totals", "Totals per well"),
	}}

	require.NoError(t, newRenderer(t).Render(&buf, Page{Menu: MenuPlots, Plots: plots}))

	html := buf.String()
	assert.Contains(t, html, `src="/charts/oil.png"`)
	assert.Contains(t, html, `href="/charts/totals.svg"`)
	assert.Contains(t, html, `id="chart-totals"`)
}

func TestRender_Error(t *testing.T) {
	var buf bytes.Buffer
	page := Page{
		Menu: MenuPlots,
		Error: &ErrorView{
			Status:  422,
			Title:   "Dataset Schema Mismatch",
			Detail:  "The workbook does not have the expected columns.",
			Missing: []string{"BORE_GAS_VOL"},
		},
	}

	require.NoError(t, newRenderer(t).Render(&buf, page))

	html := buf.String()
	assert.Contains(t, html, `class="error-panel"`)
	assert.Contains(t, html, "<code>BORE_GAS_VOL</code>")
	assert.Contains(t, html, "Status 422")
	assert.NotContains(t, html, `id="plots"`)
}

func TestNewDataView(t *testing.T) {
	v := NewDataView([]string{"a"}, nil, 0, 1, 100)
	assert.Equal(t, 1, v.Pages)
	assert.Empty(t, v.PrevURL)
	assert.Empty(t, v.NextURL)

	v = NewDataView([]string{"a"}, [][]string{{"x"}}, 250, 3, 100)
	assert.Equal(t, 3, v.Pages)
	assert.Equal(t, []int{201}, v.RowNumbers)
	assert.NotEmpty(t, v.PrevURL)
	assert.Empty(t, v.NextURL)
}

func TestDefaultBanner(t *testing.T) {
	assert.True(t, bytes.HasPrefix(DefaultBanner(), []byte("<svg")))
}
