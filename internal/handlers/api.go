package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"seller-report/internal/errors"
	"seller-report/internal/models"
	"seller-report/internal/observability"
	"seller-report/internal/services"
)

const (
	defaultTopSellers = 10
	noStore           = "no-store"
)

type APIHandlers struct {
	report       *services.SalesReport
	logger       *slog.Logger
	validate     *validator.Validate
	maxBodyBytes int64
}

func NewAPIHandlers(report *services.SalesReport, logger *slog.Logger, maxBodyBytes int64) *APIHandlers {
	return &APIHandlers{
		report:       report,
		logger:       logger,
		validate:     newValidator(),
		maxBodyBytes: maxBodyBytes,
	}
}

// newValidator reports field names by their json tags.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type reportResponse struct {
	Rows    []models.ReportRow        `json:"rows"`
	Summary services.AggregateSummary `json:"summary"`
}

// HandleGenerate decodes a dataset, runs the report pipeline over it and
// stores the result as the current report.
func (h *APIHandlers) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	var data models.Dataset
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		errors.WriteError(w, h.logger, fmt.Errorf("%w: %w", errors.ErrMalformedBody, err), requestID)
		return
	}

	if err := h.validate.Struct(data); err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return
	}

	ctx, span := observability.StartSpan(r.Context(), "report.generate")
	span.SetTag("sellers", strconv.Itoa(len(data.Sellers)))
	span.SetTag("purchase_records", strconv.Itoa(len(data.PurchaseRecords)))
	defer span.FinishAndLog(h.logger)

	report, err := h.report.Generate(ctx, data)
	if err != nil {
		span.SetError(err)
		errors.WriteError(w, h.logger, err, requestID)
		return
	}

	span.SetTag("skipped_records", strconv.Itoa(report.Summary.SkippedRecords))
	span.SetTag("skipped_items", strconv.Itoa(report.Summary.SkippedItems))

	errors.WriteSuccessWithHeaders(w, reportResponse{Rows: report.Rows, Summary: report.Summary}, map[string]string{
		"Cache-Control": noStore,
	})
}

func (h *APIHandlers) HandleReport(w http.ResponseWriter, r *http.Request) {
	if !h.report.Ready() {
		errors.WriteError(w, h.logger, notReady(), observability.GetRequestID(r.Context()))
		return
	}

	errors.WriteSuccessWithHeaders(w, h.report.Rows(), map[string]string{
		"Cache-Control": noStore,
	})
}

func (h *APIHandlers) HandleTopSellers(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	limit := defaultTopSellers
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			errors.WriteError(w, h.logger, errors.BadRequest("limit must be a positive integer"), requestID)
			return
		}
		limit = n
	}

	if !h.report.Ready() {
		errors.WriteError(w, h.logger, notReady(), requestID)
		return
	}

	errors.WriteSuccessWithHeaders(w, h.report.TopSellers(limit), map[string]string{
		"Cache-Control": noStore,
	})
}

func (h *APIHandlers) HandleSeller(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	if !h.report.Ready() {
		errors.WriteError(w, h.logger, notReady(), requestID)
		return
	}

	id := r.PathValue("id")
	row, ok := h.report.Seller(id)
	if !ok {
		errors.WriteError(w, h.logger, errors.NotFound("seller not found").WithDetails(id), requestID)
		return
	}

	errors.WriteSuccess(w, row)
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
		"ready":     h.report.Ready(),
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.report.Stats())
}

func notReady() *errors.AppError {
	return errors.ServiceUnavailable("no report has been generated yet")
}
