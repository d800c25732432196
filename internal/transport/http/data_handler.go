package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apperrors "volvedash/internal/errors"
	"volvedash/internal/middleware"
	"volvedash/internal/services"
)

// DataHandler serves the transformed production data as JSON and downloads
type DataHandler struct {
	service      ProductionService
	validator    *middleware.QueryValidator
	errorHandler *apperrors.ErrorHandler
	logger       *slog.Logger
}

// NewDataHandler creates a new data handler with RFC 7807 error handling
func NewDataHandler(service ProductionService, validator *middleware.QueryValidator, errorHandler *apperrors.ErrorHandler, logger *slog.Logger) *DataHandler {
	return &DataHandler{
		service:      service,
		validator:    validator,
		errorHandler: errorHandler,
		logger:       logger.With(slog.String("component", "data_handler")),
	}
}

// Routes returns the data routes
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/records", h.GetRecords)
	r.Get("/columns", h.GetColumns)
	r.Get("/totals", h.GetTotals)
	r.Get("/series/{column}", h.GetSeries)
	r.Get("/status", h.GetStatus)
	r.Get("/export.csv", h.export(services.ExportCSV, "text/csv; charset=utf-8"))
	r.Get("/export.xlsx", h.export(services.ExportXLSX, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"))

	return r
}

// GetRecords handles GET /api/data/records?page&size
func (h *DataHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	query, err := h.validator.ParseViewQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	page, err := h.service.Records(r.Context(), query.Page, query.Size)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.DebugContext(r.Context(), "records served",
		slog.Int("page", page.Page),
		slog.Int("size", page.Size),
		slog.Int("count", len(page.Records)))

	render.JSON(w, r, page)
}

// GetColumns handles GET /api/data/columns
func (h *DataHandler) GetColumns(w http.ResponseWriter, r *http.Request) {
	columns, err := h.service.Columns(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"columns": columns,
		"count":   len(columns),
	})
}

// GetTotals handles GET /api/data/totals
func (h *DataHandler) GetTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.service.Totals(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, totals)
}

// GetSeries handles GET /api/data/series/{column}
func (h *DataHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	column := chi.URLParam(r, "column")

	series, err := h.service.Series(r.Context(), column)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"column": column,
		"wells":  series,
	})
}

// GetStatus handles GET /api/data/status
func (h *DataHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Status())
}

func (h *DataHandler) export(format services.ExportFormat, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filename := fmt.Sprintf("volve_production_%s.%s", time.Now().Format("20060102"), format)
		aw := &attachmentWriter{ResponseWriter: w, contentType: contentType, filename: filename}

		if err := h.service.Export(r.Context(), aw, format); err != nil {
			if aw.started {
				// Headers are gone; the client sees a truncated file
				h.logger.ErrorContext(r.Context(), "export interrupted",
					slog.String("format", string(format)),
					slog.String("error", err.Error()))
				return
			}
			h.errorHandler.HandleError(w, r, err)
			return
		}

		h.logger.InfoContext(r.Context(), "export completed",
			slog.String("format", string(format)),
			slog.String("filename", filename))
	}
}

// attachmentWriter sets download headers on the first write so a load
// failure can still be answered with a problem response.
type attachmentWriter struct {
	http.ResponseWriter
	contentType string
	filename    string
	started     bool
}

func (a *attachmentWriter) Write(p []byte) (int, error) {
	if !a.started {
		a.started = true
		a.Header().Set("Content-Type", a.contentType)
		a.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.filename))
		a.ResponseWriter.WriteHeader(http.StatusOK)
	}
	return a.ResponseWriter.Write(p)
}
