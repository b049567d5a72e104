package http

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"affrecon/internal/dataprocessing"
	apierrors "affrecon/internal/errors"
	"affrecon/internal/exporter"
	"affrecon/internal/services"
	"affrecon/pkg/contracts/domain"
)

// uploadField is the multipart form field carrying the report file.
const uploadField = "file"

var validate = validator.New()

// ReconcileHandler handles the reconciliation API with RFC 7807 compliance
type ReconcileHandler struct {
	service        *services.ReconciliationService
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
	maxUploadBytes int64
}

// NewReconcileHandler creates a new reconciliation handler
func NewReconcileHandler(service *services.ReconciliationService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, maxUploadBytes int64) *ReconcileHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReconcileHandler{
		service:        service,
		logger:         logger.With(slog.String("component", "reconcile_handler")),
		errorHandler:   errorHandler,
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes returns the reconciliation routes
func (h *ReconcileHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/campaign", h.UploadCampaign)
	r.Post("/ledger", h.UploadLedger)

	r.Get("/metrics", h.GetCampaignMetrics)
	r.Get("/kpis", h.GetKPIs)
	r.Get("/users/top", h.GetTopUsers)
	r.Get("/users/{username}", h.InspectUser)
	r.Get("/export", h.ExportHeadline)

	return r
}

// UploadCampaign ingests a campaign summary report (CSV or XLSX)
func (h *ReconcileHandler) UploadCampaign(w http.ResponseWriter, r *http.Request) {
	records, err := h.readUpload(w, r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	campaign, err := h.service.LoadCampaign(r.Context(), records)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]interface{}{
		"status":   "loaded",
		"campaign": campaign,
	})
}

// UploadLedger ingests a per-user value ledger report (CSV or XLSX)
func (h *ReconcileHandler) UploadLedger(w http.ResponseWriter, r *http.Request) {
	records, err := h.readUpload(w, r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	users, err := h.service.LoadLedger(r.Context(), records)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]interface{}{
		"status":      "loaded",
		"total_users": users.TotalUsers,
		"total_value": users.TotalValue,
	})
}

// GetCampaignMetrics returns the campaign snapshot
func (h *ReconcileHandler) GetCampaignMetrics(w http.ResponseWriter, r *http.Request) {
	campaign, err := h.service.CampaignMetrics(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, campaign)
}

// GetKPIs returns the derived KPI set
func (h *ReconcileHandler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	kpis, err := h.service.KPIs(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, kpis)
}

// GetTopUsers returns the top users by total ledger value
func (h *ReconcileHandler) GetTopUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.UserIndex(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"top_users":   users.TopUsers,
		"total_users": users.TotalUsers,
	})
}

// inspectRequest is the validated shape of the user inspection query.
// Observed stays free-form; it goes through the same tolerant coercion as
// any report cell.
type inspectRequest struct {
	Username string `validate:"required,max=128"`
	Observed string `validate:"omitempty,max=64"`
}

// InspectUser returns the commission inspection for one username
func (h *ReconcileHandler) InspectUser(w http.ResponseWriter, r *http.Request) {
	req := inspectRequest{
		Username: chi.URLParam(r, "username"),
		Observed: r.URL.Query().Get("observed"),
	}
	if err := validate.Struct(req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("username", "username is required and must be at most 128 characters"))
		return
	}

	var observed any
	if req.Observed != "" {
		observed = req.Observed
	}

	result, err := h.service.InspectUser(r.Context(), req.Username, observed)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// ExportHeadline streams the headline metrics as a two-column CSV download
func (h *ReconcileHandler) ExportHeadline(w http.ResponseWriter, r *http.Request) {
	metrics := h.service.HeadlineMetrics(r.Context())

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="headline.csv"`)

	writer := exporter.NewCSVWriter()
	if err := writer.WriteHeadline(w, metrics); err != nil {
		h.logger.ErrorContext(r.Context(), "headline export failed",
			slog.String("error", err.Error()))
	}
}

// readUpload extracts and parses the uploaded report from a multipart form.
func (h *ReconcileHandler) readUpload(w http.ResponseWriter, r *http.Request) ([]domain.RawRecord, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			return nil, apierrors.ErrUploadTooLarge
		}
		return nil, apierrors.InvalidRequestWithError(err)
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		return nil, apierrors.ErrValidation(uploadField, "multipart field 'file' is required")
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".csv":
		records, err := dataprocessing.ParseCSV(file)
		if err != nil {
			return nil, apierrors.ReportParseError("csv", err)
		}
		return records, nil
	case ".xlsx":
		// excelize needs random access; spool the upload to a temp file
		records, err := h.spoolAndParse(file, ext)
		if err != nil {
			return nil, apierrors.ReportParseError("workbook", err)
		}
		return records, nil
	default:
		return nil, apierrors.ErrValidation(uploadField, "unsupported report format: "+ext)
	}
}

func (h *ReconcileHandler) spoolAndParse(file io.Reader, ext string) ([]domain.RawRecord, error) {
	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	return dataprocessing.ParseFile(tmp.Name())
}
