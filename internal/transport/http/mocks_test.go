package http

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"volvedash/internal/charts"
	apperrors "volvedash/internal/errors"
	"volvedash/internal/middleware"
	"volvedash/internal/production"
	"volvedash/internal/services"
	"volvedash/internal/shared/testutil"
	"volvedash/internal/views"
	"volvedash/pkg/contracts/domain"
)

// MockProductionService is a testify mock of ProductionService
type MockProductionService struct {
	mock.Mock
}

func (m *MockProductionService) Dataset(ctx context.Context) (*production.Dataset, error) {
	args := m.Called(ctx)
	ds, _ := args.Get(0).(*production.Dataset)
	return ds, args.Error(1)
}

func (m *MockProductionService) Columns(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	cols, _ := args.Get(0).([]string)
	return cols, args.Error(1)
}

func (m *MockProductionService) TablePage(ctx context.Context, page, size int) (*services.TablePage, error) {
	args := m.Called(ctx, page, size)
	tp, _ := args.Get(0).(*services.TablePage)
	return tp, args.Error(1)
}

func (m *MockProductionService) Records(ctx context.Context, page, size int) (*services.RecordPage, error) {
	args := m.Called(ctx, page, size)
	rp, _ := args.Get(0).(*services.RecordPage)
	return rp, args.Error(1)
}

func (m *MockProductionService) Totals(ctx context.Context) (*services.TotalsResult, error) {
	args := m.Called(ctx)
	totals, _ := args.Get(0).(*services.TotalsResult)
	return totals, args.Error(1)
}

func (m *MockProductionService) Series(ctx context.Context, column string) ([]domain.WellSeries, error) {
	args := m.Called(ctx, column)
	series, _ := args.Get(0).([]domain.WellSeries)
	return series, args.Error(1)
}

func (m *MockProductionService) RenderChart(ctx context.Context, w io.Writer, id string, format charts.Format) error {
	args := m.Called(ctx, w, id, format)
	return args.Error(0)
}

func (m *MockProductionService) Export(ctx context.Context, w io.Writer, format services.ExportFormat) error {
	args := m.Called(ctx, w, format)
	return args.Error(0)
}

func (m *MockProductionService) Status() services.LoadStatus {
	args := m.Called()
	return args.Get(0).(services.LoadStatus)
}

// writeBytes makes a mocked writer method emit b
func writeBytes(b []byte) func(mock.Arguments) {
	return func(args mock.Arguments) {
		_, _ = args.Get(1).(io.Writer).Write(b)
	}
}

type routerFixture struct {
	router  http.Handler
	service *MockProductionService
	logs    *testutil.BufferedSlogHandler
}

// newRouterFixture wires the handlers the same way the application does
func newRouterFixture(t *testing.T, imagePath string) *routerFixture {
	t.Helper()

	logger, logs := testutil.NewTestLogger(t)
	svc := &MockProductionService{}
	t.Cleanup(func() { svc.AssertExpectations(t) })

	renderer, err := views.NewRenderer()
	require.NoError(t, err)

	errorHandler := apperrors.NewErrorHandler(logger, false)
	validator := middleware.NewQueryValidator(100, 1000, logger)

	dashboard := NewDashboardHandler(svc, renderer, validator, errorHandler, nil,
		DashboardConfig{Title: "Volve Field Production History", Version: "test"}, logger)
	chartHandler := NewChartHandler(svc, imagePath, errorHandler, logger)
	dataHandler := NewDataHandler(svc, validator, errorHandler, logger)

	r := chi.NewRouter()
	dashboard.RegisterRoutes(r)
	r.Get(BannerPath, chartHandler.Banner)
	r.Get("/charts/{file}", chartHandler.GetChart)
	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/charts", chartHandler.ListCharts)
		r.Mount("/data", dataHandler.Routes())
	})
	r.NotFound(errorHandler.NotFound)

	return &routerFixture{router: r, service: svc, logs: logs}
}

func datasetNotFound() error {
	return apperrors.DatasetNotFound("volve_params.xlsx", production.ErrDatasetNotFound)
}

func schemaMismatch(missing ...string) error {
	schemaErr := &production.SchemaError{Missing: missing}
	return apperrors.SchemaMismatch(schemaErr.Error(), missing, nil, schemaErr)
}
