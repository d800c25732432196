package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"volvedash/internal/charts"
	apperrors "volvedash/internal/errors"
	"volvedash/internal/infrastructure"
	"volvedash/internal/middleware"
	"volvedash/internal/production"
	"volvedash/internal/views"
)

// BannerPath is where the banner image is served.
const BannerPath = "/static/banner"

// DashboardConfig holds the page chrome shared by every view
type DashboardConfig struct {
	Title   string
	Version string
}

// DashboardHandler serves the Home, Data and Plots views
type DashboardHandler struct {
	service      ProductionService
	views        *views.Renderer
	validator    *middleware.QueryValidator
	errorHandler *apperrors.ErrorHandler
	metrics      *infrastructure.BusinessMetrics
	cfg          DashboardConfig
	logger       *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	service ProductionService,
	renderer *views.Renderer,
	validator *middleware.QueryValidator,
	errorHandler *apperrors.ErrorHandler,
	metrics *infrastructure.BusinessMetrics,
	cfg DashboardConfig,
	logger *slog.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		views:        renderer,
		validator:    validator,
		errorHandler: errorHandler,
		metrics:      metrics,
		cfg:          cfg,
		logger:       logger.With(slog.String("handler", "dashboard")),
	}
}

// RegisterRoutes registers the dashboard routes at the root of r
func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Index)
	r.Get("/home", h.view(views.MenuHome))
	r.Get("/data", h.view(views.MenuData))
	r.Get("/plots", h.view(views.MenuPlots))
}

// Index handles GET /?menu=Home|Data|Plots
func (h *DashboardHandler) Index(w http.ResponseWriter, r *http.Request) {
	query, err := h.validator.ParseViewQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	menu := views.Menu(query.Menu)
	if menu == "" {
		menu = views.MenuHome
	}
	h.serve(w, r, menu, query)
}

// view serves a fixed menu entry; a menu query parameter is ignored
func (h *DashboardHandler) view(menu views.Menu) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := h.validator.ParseViewQuery(withoutMenu(r))
		if err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		h.serve(w, r, menu, query)
	}
}

// withoutMenu returns a shallow copy of r whose query string has no menu
func withoutMenu(r *http.Request) *http.Request {
	values := r.URL.Query()
	if !values.Has("menu") {
		return r
	}
	values.Del("menu")
	u := *r.URL
	u.RawQuery = values.Encode()
	r = r.WithContext(r.Context())
	r.URL = &u
	return r
}

func (h *DashboardHandler) serve(w http.ResponseWriter, r *http.Request, menu views.Menu, query middleware.ViewQuery) {
	ctx := r.Context()
	page := views.Page{
		Title:     h.cfg.Title,
		Menu:      menu,
		BannerURL: BannerPath,
		Version:   h.cfg.Version,
	}

	var loadErr error
	switch menu {
	case views.MenuData:
		page.Data, loadErr = h.dataView(ctx, query)
	case views.MenuPlots:
		page.Plots, loadErr = h.plotsView(ctx)
	}

	status := http.StatusOK
	if loadErr != nil {
		page.Error = h.errorView(loadErr, r)
		status = page.Error.Status
		h.logger.WarnContext(ctx, "dataset unavailable for view",
			slog.String("menu", string(menu)),
			slog.Int("status", status),
			slog.String("error", loadErr.Error()))
	}

	var buf bytes.Buffer
	if err := h.views.Render(&buf, page); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.DebugContext(ctx, "write view", slog.String("error", err.Error()))
	}
	infrastructure.RecordViewRender(ctx, h.metrics, string(menu), status)
}

func (h *DashboardHandler) dataView(ctx context.Context, query middleware.ViewQuery) (*views.DataView, error) {
	tp, err := h.service.TablePage(ctx, query.Page, query.Size)
	if err != nil {
		return nil, err
	}
	return views.NewDataView(tp.Table.Columns, tp.Table.Rows, tp.Total, tp.Page, tp.Size), nil
}

func (h *DashboardHandler) plotsView(ctx context.Context) (*views.PlotsView, error) {
	// Charts are fetched by the browser; loading here surfaces a broken
	// dataset as an error panel instead of four broken images.
	if _, err := h.service.Dataset(ctx); err != nil {
		return nil, err
	}

	pv := &views.PlotsView{Charts: make([]views.ChartView, 0, len(charts.Definitions))}
	for _, def := range charts.Definitions {
		pv.Charts = append(pv.Charts, views.NewChartView(def.ID, def.Title, def.Caption))
	}
	return pv, nil
}

func (h *DashboardHandler) errorView(err error, r *http.Request) *views.ErrorView {
	problem := h.errorHandler.ErrorToProblem(err, r)
	ev := &views.ErrorView{
		Status: problem.Status,
		Title:  problem.Title,
		Detail: problem.Detail,
	}
	if source, ok := problem.Extensions[apperrors.ContextSource].(string); ok && source != "" {
		ev.Detail = fmt.Sprintf("%s (%s)", ev.Detail, source)
	}

	var schemaErr *production.SchemaError
	if errors.As(err, &schemaErr) {
		ev.Missing = schemaErr.Missing
		ev.Conflicting = schemaErr.Conflicting
	}
	return ev
}
