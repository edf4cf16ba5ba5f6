package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "shelterpulse/internal/errors"
	"shelterpulse/internal/exporter"
	"shelterpulse/internal/services"
)

// DataHandler serves the cleaned dataset: record listing, summary,
// aggregates, reload and export.
type DataHandler struct {
	service      DataServiceInterface
	csvWriter    *exporter.CSVWriter
	xlsxWriter   *exporter.XLSXWriter
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDataHandler creates a new data handler.
func NewDataHandler(service DataServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DataHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DataHandler{
		service:      service,
		csvWriter:    exporter.NewCSVWriter(logger),
		xlsxWriter:   exporter.NewXLSXWriter(logger),
		logger:       logger.With(slog.String("component", "data_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the data routes.
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/records", h.GetRecords)
	r.Get("/summary", h.GetSummary)
	r.Post("/reload", h.Reload)

	r.Route("/aggregates", func(r chi.Router) {
		r.Get("/intake-types", h.GetIntakeTypes)
		r.Get("/outcome-types", h.GetOutcomeTypes)
		r.Get("/intake-reasons", h.GetIntakeReasons)
		r.Get("/monthly-intakes", h.GetMonthlyIntakes)
		r.Get("/adoption-rates", h.GetAdoptionRates)
		r.Get("/outcome-by-reason", h.GetOutcomesByReason)
		r.Get("/stay-duration", h.GetStayDurations)
	})

	r.Get("/export/csv", h.ExportCSV)
	r.Get("/export/xlsx", h.ExportXLSX)

	return r
}

// filterFromQuery reads the shared filter parameters.
func filterFromQuery(r *http.Request) services.RecordFilter {
	q := r.URL.Query()
	filter := services.RecordFilter{
		AnimalType:   q.Get("animal_type"),
		OutcomeGroup: q.Get("outcome_group"),
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(q.Get("offset")); err == nil {
		filter.Offset = offset
	}
	return filter
}

// GetRecords handles GET /api/data/records.
func (h *DataHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.Records(r.Context(), filterFromQuery(r))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, page)
}

// GetSummary handles GET /api/data/summary.
func (h *DataHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// Reload handles POST /api/data/reload. It re-runs the cleaning pipeline
// against the source file and answers with the fresh summary.
func (h *DataHandler) Reload(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "dataset reload requested")

	summary, err := h.service.Reload(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

func (h *DataHandler) GetIntakeTypes(w http.ResponseWriter, r *http.Request) {
	h.renderCounts(w, r, h.service.IntakeTypeCounts)
}

func (h *DataHandler) GetOutcomeTypes(w http.ResponseWriter, r *http.Request) {
	h.renderCounts(w, r, h.service.OutcomeTypeCounts)
}

func (h *DataHandler) GetIntakeReasons(w http.ResponseWriter, r *http.Request) {
	h.renderCounts(w, r, h.service.IntakeReasonCounts)
}

func (h *DataHandler) renderCounts(w http.ResponseWriter, r *http.Request, fetch func(ctx context.Context) ([]services.ValueCount, error)) {
	counts, err := fetch(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, counts)
}

// GetMonthlyIntakes handles GET /api/data/aggregates/monthly-intakes.
func (h *DataHandler) GetMonthlyIntakes(w http.ResponseWriter, r *http.Request) {
	months, err := h.service.MonthlyIntakes(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, months)
}

// GetAdoptionRates handles GET /api/data/aggregates/adoption-rates. The
// optional by parameter picks the dimension (animal_type, age_category,
// sex_base).
func (h *DataHandler) GetAdoptionRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.service.AdoptionRates(r.Context(), r.URL.Query().Get("by"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, rates)
}

// GetOutcomesByReason handles GET /api/data/aggregates/outcome-by-reason.
func (h *DataHandler) GetOutcomesByReason(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.OutcomesByReason(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, rows)
}

// GetStayDurations handles GET /api/data/aggregates/stay-duration.
func (h *DataHandler) GetStayDurations(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.StayDurations(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, stats)
}

// ExportCSV handles GET /api/data/export/csv. The filter parameters of the
// record listing apply; paging does not.
func (h *DataHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.FilteredRecords(r.Context(), filterFromQuery(r))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	filename := "shelter-records-" + time.Now().UTC().Format("2006-01-02") + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := h.csvWriter.Write(w, records, exporter.WriteOptions{BOMPrefix: true}); err != nil {
		h.logger.ErrorContext(r.Context(), "csv export failed", slog.String("error", err.Error()))
	}
}

// ExportXLSX handles GET /api/data/export/xlsx.
func (h *DataHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.FilteredRecords(r.Context(), filterFromQuery(r))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	filename := "shelter-records-" + time.Now().UTC().Format("2006-01-02") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := h.xlsxWriter.Write(w, records); err != nil {
		h.logger.ErrorContext(r.Context(), "xlsx export failed", slog.String("error", err.Error()))
	}
}
