package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"volvedash/internal/charts"
	apperrors "volvedash/internal/errors"
	"volvedash/internal/views"
)

// ChartHandler serves chart images and the banner
type ChartHandler struct {
	service      ProductionService
	errorHandler *apperrors.ErrorHandler
	imagePath    string
	logger       *slog.Logger
}

// NewChartHandler creates a new chart handler. imagePath may be empty, in
// which case the embedded banner is served.
func NewChartHandler(service ProductionService, imagePath string, errorHandler *apperrors.ErrorHandler, logger *slog.Logger) *ChartHandler {
	return &ChartHandler{
		service:      service,
		errorHandler: errorHandler,
		imagePath:    imagePath,
		logger:       logger.With(slog.String("handler", "charts")),
	}
}

// GetChart handles GET /charts/{file}, where file is "<id>.<png|svg>"
func (h *ChartHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	ext := path.Ext(file)
	id := strings.TrimSuffix(file, ext)

	format, err := charts.ParseFormat(strings.TrimPrefix(ext, "."))
	if err != nil {
		h.errorHandler.HandleError(w, r, apperrors.NewUnsupportedError(err.Error(), err))
		return
	}

	var buf bytes.Buffer
	if err := h.service.RenderChart(r.Context(), &buf, id, format); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "no-cache")
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.DebugContext(r.Context(), "write chart", slog.String("chart", id), slog.String("error", err.Error()))
	}
}

// ListCharts handles GET /api/charts
func (h *ChartHandler) ListCharts(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"charts":  charts.Definitions,
		"formats": []charts.Format{charts.FormatPNG, charts.FormatSVG},
	})
}

// Banner handles GET /static/banner
func (h *ChartHandler) Banner(w http.ResponseWriter, r *http.Request) {
	if h.imagePath != "" {
		if info, err := os.Stat(h.imagePath); err == nil && !info.IsDir() {
			http.ServeFile(w, r, h.imagePath)
			return
		}
		h.logger.WarnContext(r.Context(), "banner image unavailable, serving embedded banner",
			slog.String("path", h.imagePath))
	}

	w.Header().Set("Content-Type", views.DefaultBannerContentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	http.ServeContent(w, r, "banner.svg", time.Time{}, bytes.NewReader(views.DefaultBanner()))
}
