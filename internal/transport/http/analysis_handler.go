package http

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"invctl/internal/config"
	apierrors "invctl/internal/errors"
	"invctl/internal/exporter"
	"invctl/internal/middleware"
	"invctl/internal/services"
)

// RunMetrics records completed analysis runs. Implemented by
// infrastructure.Metrics; nil disables recording.
type RunMetrics interface {
	ObserveRun(mode string, success bool, seconds float64)
}

// AnalysisHandler exposes analysis runs over HTTP. Workbooks are referenced
// by server-local path; the handler never accepts uploads.
type AnalysisHandler struct {
	service  *services.AnalysisService
	defaults config.AnalysisConfig
	logger   *slog.Logger
	metrics  RunMetrics
}

// NewAnalysisHandler creates a new analysis handler. Omitted request
// parameters fall back to the supplied configuration defaults.
func NewAnalysisHandler(service *services.AnalysisService, defaults config.AnalysisConfig, logger *slog.Logger, metrics RunMetrics) *AnalysisHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisHandler{
		service:  service,
		defaults: defaults,
		logger:   logger.With(slog.String("component", "analysis_handler")),
		metrics:  metrics,
	}
}

// Routes returns the analysis routes.
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.CreateRun)
	r.Get("/", h.ListRuns)

	r.Route("/{runID}", func(r chi.Router) {
		r.Use(h.RunCtx)
		r.Get("/", h.GetRun)
		r.Get("/{table}", h.GetTable)
	})

	return r
}

// RunCtx loads the referenced run into the request context.
func (h *AnalysisHandler) RunCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		runID := chi.URLParam(r, "runID")
		if runID == "" {
			h.renderError(w, r, apierrors.ErrValidationField("run_id", "Run ID is required"))
			return
		}

		result, err := h.service.GetRun(runID)
		if err != nil {
			h.renderError(w, r, apierrors.FromAppError(err))
			return
		}

		next.ServeHTTP(w, r.WithContext(withRun(r.Context(), result)))
	})
}

// CreateRunRequest is the body of POST /api/analysis.
type CreateRunRequest struct {
	Mode             string   `json:"mode"`
	Workbooks        []string `json:"workbooks"`
	AsOf             string   `json:"as_of"`
	HorizonDays      int      `json:"horizon_days"`
	ZScore           float64  `json:"z_score"`
	DemandWindowDays int      `json:"demand_window_days"`
}

// CreateRun handles POST /api/analysis.
func (h *AnalysisHandler) CreateRun(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	var req CreateRunRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.renderError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	params, err := h.buildParams(req)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "starting analysis run",
		slog.String("request_id", reqID),
		slog.String("mode", req.Mode),
		slog.Int("workbooks", len(req.Workbooks)),
	)

	start := time.Now()
	var result *services.Result
	switch services.Mode(req.Mode) {
	case services.ModeCombined:
		if len(req.Workbooks) != 1 {
			h.renderError(w, r, apierrors.ErrValidationField("workbooks", "Combined mode takes exactly one workbook"))
			return
		}
		result, err = h.service.AnalyzeCombined(r.Context(), req.Workbooks[0], params)
	case services.ModeAutoDetect:
		result, err = h.service.AnalyzeAutoDetect(r.Context(), req.Workbooks, params)
	default:
		h.renderError(w, r, apierrors.ErrValidationField("mode", fmt.Sprintf("Unknown analysis mode: %q", req.Mode)))
		return
	}
	if h.metrics != nil {
		h.metrics.ObserveRun(req.Mode, err == nil, time.Since(start).Seconds())
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "analysis run failed",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		h.renderError(w, r, apierrors.FromAppError(err))
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, result)
}

// ListRuns handles GET /api/analysis.
func (h *AnalysisHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs := h.service.ListRuns()
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   runs,
		"count":  len(runs),
	})
}

// GetRun handles GET /api/analysis/{runID}.
func (h *AnalysisHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	result := runFromContext(r.Context())
	render.JSON(w, r, result)
}

// GetTable handles GET /api/analysis/{runID}/{table}. With ?format=csv the
// table is written as a CSV attachment instead of JSON.
func (h *AnalysisHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	result := runFromContext(r.Context())
	table := chi.URLParam(r, "table")

	headers, records, payload, err := resultTable(result, table)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		h.writeCSV(w, r, fmt.Sprintf("%s_%s.csv", table, result.RunID), headers, records)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"run_id": result.RunID,
		"table":  table,
		"data":   payload,
	})
}

// resultTable maps a table name onto the run's section slices. A table that
// exists but was not produced by the run's mode is a 404, same as an unknown
// name.
func resultTable(result *services.Result, table string) ([]string, [][]string, interface{}, error) {
	switch table {
	case "inventory-aging":
		if result.InventoryAging == nil {
			return nil, nil, nil, apierrors.NotFoundError("table inventory-aging for run " + result.RunID)
		}
		headers, records := exporter.InventoryAgingTable(result.InventoryAging)
		return headers, records, result.InventoryAging, nil
	case "reorder-plan":
		if result.ReorderPlan == nil {
			return nil, nil, nil, apierrors.NotFoundError("table reorder-plan for run " + result.RunID)
		}
		headers, records := exporter.ReorderPlanTable(result.ReorderPlan)
		return headers, records, result.ReorderPlan, nil
	case "receivables":
		if result.Receivables == nil {
			return nil, nil, nil, apierrors.NotFoundError("table receivables for run " + result.RunID)
		}
		headers, records := exporter.ReceivablesAgingTable(result.Receivables)
		return headers, records, result.Receivables, nil
	case "snapshot":
		if result.Snapshot == nil {
			return nil, nil, nil, apierrors.NotFoundError("table snapshot for run " + result.RunID)
		}
		headers, records := exporter.SnapshotTable(result.Snapshot)
		return headers, records, result.Snapshot, nil
	default:
		return nil, nil, nil, apierrors.NotFoundError("table " + table)
	}
}

// buildParams assembles run parameters from the request. Zero-valued
// numeric fields mean the configured defaults, same as the CLI flags; an
// omitted as_of means the current date.
func (h *AnalysisHandler) buildParams(req CreateRunRequest) (services.RunParams, error) {
	params := services.RunParams{
		HorizonDays:      req.HorizonDays,
		ZScore:           req.ZScore,
		DemandWindowDays: req.DemandWindowDays,
	}
	if params.HorizonDays == 0 {
		params.HorizonDays = h.defaults.HorizonDays
	}
	if params.ZScore == 0 {
		params.ZScore = h.defaults.ZScore
	}
	if params.DemandWindowDays == 0 {
		params.DemandWindowDays = h.defaults.DemandWindowDays
	}
	if req.AsOf == "" {
		now := time.Now().UTC()
		params.AsOf = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		return params, nil
	}
	asOf, err := time.Parse("2006-01-02", req.AsOf)
	if err != nil {
		return params, apierrors.ErrValidationField("as_of", fmt.Sprintf("Invalid as-of date %q, expected YYYY-MM-DD", req.AsOf))
	}
	params.AsOf = asOf
	return params, nil
}

func (h *AnalysisHandler) writeCSV(w http.ResponseWriter, r *http.Request, filename string, headers []string, records [][]string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to stream csv header", slog.String("error", err.Error()))
		return
	}
	if err := cw.WriteAll(records); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to stream csv records", slog.String("error", err.Error()))
		return
	}
	cw.Flush()
}

func (h *AnalysisHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr, ok := err.(*apierrors.APIError)
	if !ok {
		apiErr = apierrors.FromAppError(err)
	}
	if renderErr := render.Render(w, r, apiErr); renderErr != nil {
		h.logger.ErrorContext(r.Context(), "failed to render error response",
			slog.String("error", renderErr.Error()))
	}
}
