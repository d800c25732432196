package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/singleflight"

	"volvedash/internal/charts"
	"volvedash/internal/exporter"
	"volvedash/internal/infrastructure"
	"volvedash/internal/production"
	"volvedash/pkg/contracts/domain"
)

const loadKey = "dataset"

// ExportFormat selects the download format of the transformed table
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

// RecordPage is one page of transformed records
type RecordPage struct {
	Records []domain.ProductionRecord `json:"records"`
	Page    int                       `json:"page"`
	Size    int                       `json:"size"`
	Total   int                       `json:"total"`
	Pages   int                       `json:"pages"`
}

// TablePage is one page of the transformed table
type TablePage struct {
	Table *production.Table
	Page  int
	Size  int
	Total int
}

// TotalsResult holds per-well totals and their sum
type TotalsResult struct {
	Wells []domain.WellTotals `json:"wells"`
	Total domain.WellTotals   `json:"total"`
}

// LoadStatus describes the state of the one-time dataset load
type LoadStatus struct {
	Loaded    bool      `json:"loaded"`
	Source    string    `json:"source"`
	Rows      int       `json:"rows,omitempty"`
	LoadedAt  time.Time `json:"loaded_at,omitempty"`
	Loads     int64     `json:"loads"`
	LastError string    `json:"last_error,omitempty"`
}

// ProductionService owns the production dataset. The workbook is read and
// transformed at most once; concurrent first callers share a single load and
// a failed load is retried on the next call.
type ProductionService struct {
	loader   production.Loader
	source   string
	renderer *charts.Renderer
	metrics  *infrastructure.BusinessMetrics
	tracer   trace.Tracer
	logger   *slog.Logger

	group   singleflight.Group
	mu      sync.RWMutex
	dataset *production.Dataset
	lastErr error
	loads   atomic.Int64
}

// NewProductionService creates a production service with injected dependencies
func NewProductionService(
	loader production.Loader,
	source string,
	renderer *charts.Renderer,
	metrics *infrastructure.BusinessMetrics,
	tracer trace.Tracer,
	logger *slog.Logger,
) *ProductionService {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer(infrastructure.MeterName)
	}
	if renderer == nil {
		renderer = charts.NewRenderer(1024, 480, logger)
	}

	return &ProductionService{
		loader:   loader,
		source:   source,
		renderer: renderer,
		metrics:  metrics,
		tracer:   tracer,
		logger:   infrastructure.WithComponent(logger, "production_service"),
	}
}

// Dataset returns the transformed dataset, loading it on first use
func (s *ProductionService) Dataset(ctx context.Context) (*production.Dataset, error) {
	s.mu.RLock()
	ds := s.dataset
	s.mu.RUnlock()
	if ds != nil {
		return ds, nil
	}

	// The shared load must outlive the caller that happened to start it.
	ch := s.group.DoChan(loadKey, func() (interface{}, error) {
		return s.load(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, translateError(res.Err, s.source)
		}
		return res.Val.(*production.Dataset), nil
	}
}

func (s *ProductionService) load(ctx context.Context) (*production.Dataset, error) {
	s.mu.RLock()
	ds := s.dataset
	s.mu.RUnlock()
	if ds != nil {
		return ds, nil
	}

	ctx, span := s.tracer.Start(ctx, "production.load",
		trace.WithAttributes(attribute.String("dataset.source", s.source)))
	defer span.End()
	ctx = infrastructure.WithSpanTraceID(ctx)

	s.loads.Add(1)
	start := time.Now()

	ds, err := s.readAndTransform(ctx)
	duration := time.Since(start)

	rows := 0
	if ds != nil {
		rows = len(ds.Records)
	}
	infrastructure.RecordDatasetLoad(ctx, s.metrics, s.source, rows, duration, err)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		infrastructure.RecordError(ctx, err)
		s.lastErr = err
		s.logger.ErrorContext(ctx, "production dataset load failed",
			slog.String("source", s.source),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return nil, err
	}

	s.dataset = ds
	s.lastErr = nil
	s.logger.InfoContext(ctx, "production dataset loaded",
		slog.String("source", s.source),
		slog.Int("rows", rows),
		slog.Int("columns", len(ds.Table.Columns)),
		slog.Duration("duration", duration))
	return ds, nil
}

func (s *ProductionService) readAndTransform(ctx context.Context) (*production.Dataset, error) {
	table, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	ds, err := production.Transform(table)
	if err != nil {
		return nil, err
	}
	ds.Source = s.source
	ds.LoadedAt = time.Now()
	return ds, nil
}

// Columns returns the transformed column names
func (s *ProductionService) Columns(ctx context.Context) ([]string, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), ds.Table.Columns...), nil
}

// TablePage returns rows of the transformed table for a 1-based page
func (s *ProductionService) TablePage(ctx context.Context, page, size int) (*TablePage, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	page, size = normalizePage(page, size)
	start := pageStart(page, size, ds.Table.Len())
	return &TablePage{
		Table: ds.Table.Slice(start, start+min(size, ds.Table.Len()-start)),
		Page:  page,
		Size:  size,
		Total: ds.Table.Len(),
	}, nil
}

// Records returns a page of typed records
func (s *ProductionService) Records(ctx context.Context, page, size int) (*RecordPage, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	page, size = normalizePage(page, size)

	total := len(ds.Records)
	start := pageStart(page, size, total)
	end := start + min(size, total-start)

	return &RecordPage{
		Records: ds.Records[start:end],
		Page:    page,
		Size:    size,
		Total:   total,
		Pages:   pageCount(total, size),
	}, nil
}

// Totals returns per-well totals sorted by well and the grand total
func (s *ProductionService) Totals(ctx context.Context) (*TotalsResult, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	wells := production.Totals(ds.Records)
	return &TotalsResult{Wells: wells, Total: production.GrandTotal(wells)}, nil
}

// Series returns the yearly per-well series of one volume column
func (s *ProductionService) Series(ctx context.Context, column string) ([]domain.WellSeries, error) {
	if err := production.ValidVolumeColumn(column); err != nil {
		return nil, translateError(err, s.source)
	}
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	series, err := production.YearlySeries(ds.Records, column)
	return series, translateError(err, s.source)
}

// RenderChart writes chart id in the given format to w
func (s *ProductionService) RenderChart(ctx context.Context, w io.Writer, id string, format charts.Format) error {
	if _, err := charts.Lookup(id); err != nil {
		return translateError(err, s.source)
	}
	if _, err := charts.ParseFormat(string(format)); err != nil {
		return translateError(err, s.source)
	}

	ds, err := s.Dataset(ctx)
	if err != nil {
		return err
	}

	ctx, span := s.tracer.Start(ctx, "production.render_chart",
		trace.WithAttributes(attribute.String("chart.id", id), attribute.String("chart.format", string(format))))
	defer span.End()

	start := time.Now()
	err = s.renderer.Render(w, id, format, ds.Records)
	infrastructure.RecordChartRender(ctx, s.metrics, id, string(format), time.Since(start), err)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		s.logger.ErrorContext(ctx, "chart render failed",
			slog.String("chart", id),
			slog.String("format", string(format)),
			slog.String("error", err.Error()))
		return fmt.Errorf("render chart %s: %w", id, err)
	}
	return nil
}

// Export writes the transformed table to w
func (s *ProductionService) Export(ctx context.Context, w io.Writer, format ExportFormat) error {
	if format != ExportCSV && format != ExportXLSX {
		return translateError(fmt.Errorf("%w: export %q", charts.ErrUnsupportedFormat, format), s.source)
	}

	ds, err := s.Dataset(ctx)
	if err != nil {
		return err
	}

	if format == ExportXLSX {
		return exporter.WriteXLSX(w, ds.Table)
	}
	return exporter.WriteCSV(w, ds.Table, exporter.WriteOptions{BOMPrefix: true})
}

// Status reports whether the dataset has been loaded
func (s *ProductionService) Status() LoadStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := LoadStatus{
		Loaded: s.dataset != nil,
		Source: s.source,
		Loads:  s.loads.Load(),
	}
	if s.dataset != nil {
		status.Rows = len(s.dataset.Records)
		status.LoadedAt = s.dataset.LoadedAt
	}
	if s.lastErr != nil {
		status.LastError = s.lastErr.Error()
	}
	return status
}

// Loaded reports whether the dataset is held in memory
func (s *ProductionService) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset != nil
}

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 100
	}
	return page, size
}

// pageStart returns the offset of a 1-based page, or total when the page
// lies past the end. It never multiplies page by size unbounded.
func pageStart(page, size, total int) int {
	if page-1 >= pageCount(total, size) {
		return total
	}
	return min((page-1)*size, total)
}

func pageCount(total, size int) int {
	if total == 0 {
		return 1
	}
	return (total-1)/size + 1
}
