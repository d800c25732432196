package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volvedash/internal/config"
	"volvedash/internal/shared/testutil"
)

func newTestApplication(t *testing.T, datasetPath string) *Application {
	t.Helper()

	cfg := config.Default()
	cfg.Dataset.Path = datasetPath
	cfg.Dataset.ImagePath = ""
	cfg.Dashboard.ChartWidth = 400
	cfg.Dashboard.ChartHeight = 300
	cfg.Security.RateLimit.Enabled = false
	cfg.Server.ShutdownTimeout = 5 * time.Second

	logger, _ := testutil.NewTestLogger(t)
	app, err := New(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = app.OTelProviders.Shutdown(ctx)
	})
	return app
}

func serve(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestNew(t *testing.T) {
	path := testutil.WriteWorkbook(t, "Sheet1", testutil.VolveRows())
	app := newTestApplication(t, path)

	assert.NotNil(t, app.Router)
	assert.NotNil(t, app.Server)
	assert.Equal(t, ":8080", app.Server.Addr)
	assert.NotNil(t, app.Production)
	assert.NotNil(t, app.Health)
	assert.False(t, app.Production.Loaded())
}

func TestRouter_Dashboard(t *testing.T) {
	path := testutil.WriteWorkbook(t, "Sheet1", testutil.VolveRows())
	app := newTestApplication(t, path)

	home := serve(t, app.Router, "/")
	require.Equal(t, http.StatusOK, home.Code)
	assert.Contains(t, home.Body.String(), `id="home"`)
	assert.NotEmpty(t, home.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", home.Header().Get("X-Content-Type-Options"))
	assert.False(t, app.Production.Loaded(), "Home must not load the dataset")

	data := serve(t, app.Router, "/?menu=Data")
	require.Equal(t, http.StatusOK, data.Code)
	assert.Contains(t, data.Body.String(), "15/9-F-11")
	assert.Contains(t, data.Body.String(), "<th>Vol_o</th>")
	assert.True(t, app.Production.Loaded())

	plots := serve(t, app.Router, "/plots")
	require.Equal(t, http.StatusOK, plots.Code)
	assert.Contains(t, plots.Body.String(), "/charts/totals.png")

	assert.Equal(t, int64(1), app.Production.Status().Loads)
}

func TestRouter_ChartsAndAPI(t *testing.T) {
	path := testutil.WriteWorkbook(t, "Sheet1", testutil.VolveRows())
	app := newTestApplication(t, path)

	for _, target := range []string{"/charts/oil.png", "/charts/gas.svg", "/charts/oil-water.png", "/charts/totals.svg"} {
		rec := serve(t, app.Router, target)
		assert.Equal(t, http.StatusOK, rec.Code, target)
		assert.NotEmpty(t, rec.Body.Bytes(), target)
	}

	totals := serve(t, app.Router, "/api/data/totals")
	require.Equal(t, http.StatusOK, totals.Code)
	var body struct {
		Wells []map[string]interface{} `json:"wells"`
	}
	require.NoError(t, json.Unmarshal(totals.Body.Bytes(), &body))
	assert.Len(t, body.Wells, 2)

	csv := serve(t, app.Router, "/api/data/export.csv")
	assert.Equal(t, http.StatusOK, csv.Code)
	assert.Contains(t, csv.Body.String(), "Vol_o")

	health := serve(t, app.Router, "/api/health/ready")
	assert.Equal(t, http.StatusOK, health.Code)

	metrics := serve(t, app.Router, "/metrics")
	require.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), "dataset_loads_total")
	assert.Contains(t, metrics.Body.String(), "chart_renders_total")
}

func TestRouter_MissingDataset(t *testing.T) {
	app := newTestApplication(t, filepath.Join(t.TempDir(), "missing.xlsx"))

	home := serve(t, app.Router, "/?menu=Home")
	assert.Equal(t, http.StatusOK, home.Code)

	data := serve(t, app.Router, "/?menu=Data")
	assert.Equal(t, http.StatusNotFound, data.Code)
	assert.Contains(t, data.Body.String(), `class="error-panel"`)

	api := serve(t, app.Router, "/api/data/records")
	assert.Equal(t, http.StatusNotFound, api.Code)
	assert.Contains(t, api.Header().Get("Content-Type"), "application/json")

	ready := serve(t, app.Router, "/api/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, ready.Code)
}

func TestRouter_NotFoundAndMethod(t *testing.T) {
	app := newTestApplication(t, filepath.Join(t.TempDir(), "volve.xlsx"))

	rec := serve(t, app.Router, "/settings")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	post := httptest.NewRecorder()
	app.Router.ServeHTTP(post, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, post.Code)
}

func TestApplication_ServeAndStop(t *testing.T) {
	path := testutil.WriteWorkbook(t, "Sheet1", testutil.VolveRows())
	app := newTestApplication(t, path)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, app.Serve(ctx, listener, cancel))

	resp, err := http.Get(fmt.Sprintf("http://%s/api/health", listener.Addr()))
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, app.Stop(context.Background()))
	assert.NoError(t, ctx.Err(), "clean shutdown must not cancel the run context")
}
