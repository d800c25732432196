package http

import (
	"context"
	"io"

	"volvedash/internal/charts"
	"volvedash/internal/production"
	"volvedash/internal/services"
	"volvedash/pkg/contracts/domain"
)

// ProductionService defines the dataset operations the handlers depend on
type ProductionService interface {
	Dataset(ctx context.Context) (*production.Dataset, error)
	Columns(ctx context.Context) ([]string, error)
	TablePage(ctx context.Context, page, size int) (*services.TablePage, error)
	Records(ctx context.Context, page, size int) (*services.RecordPage, error)
	Totals(ctx context.Context) (*services.TotalsResult, error)
	Series(ctx context.Context, column string) ([]domain.WellSeries, error)
	RenderChart(ctx context.Context, w io.Writer, id string, format charts.Format) error
	Export(ctx context.Context, w io.Writer, format services.ExportFormat) error
	Status() services.LoadStatus
}

// HealthService defines the health operations served under /api
type HealthService interface {
	HealthCheck(ctx context.Context) services.HealthStatus
	ReadinessCheck(ctx context.Context) services.HealthStatus
	LivenessCheck(ctx context.Context) services.HealthStatus
	Version() map[string]interface{}
}
