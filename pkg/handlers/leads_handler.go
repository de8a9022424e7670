package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/leadpilot-inc/lead-engine/pkg/apperrors"
	"github.com/leadpilot-inc/lead-engine/pkg/models"
	"github.com/leadpilot-inc/lead-engine/pkg/services"
	"github.com/leadpilot-inc/lead-engine/pkg/webhook"
)

// maxImportBody caps the CSV upload size.
const maxImportBody = 10 << 20 // 10 MiB

// LeadListResponse for GET /api/leads
type LeadListResponse struct {
	Leads []*models.LeadWithQualification `json:"leads"`
	Total int                             `json:"total"`
}

// ImportResponse for POST /api/leads/import
type ImportResponse struct {
	Imported int `json:"imported"`
}

// LeadsHandler serves lead listings, CSV import/export and the qualification
// webhook trigger.
type LeadsHandler struct {
	leadService services.LeadService
	dispatcher  *webhook.Dispatcher
	logger      *zap.Logger
}

// NewLeadsHandler creates a new leads handler.
func NewLeadsHandler(leadService services.LeadService, dispatcher *webhook.Dispatcher, logger *zap.Logger) *LeadsHandler {
	return &LeadsHandler{
		leadService: leadService,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

// RegisterRoutes registers the leads handler's routes on the given mux.
func (h *LeadsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/leads", h.List)
	mux.HandleFunc("POST /api/leads/import", h.Import)
	mux.HandleFunc("GET /api/leads/export", h.Export)
	mux.HandleFunc("POST /api/leads/qualify", h.Qualify)
}

// List handles GET /api/leads
func (h *LeadsHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := services.LeadFilter{
		Query:    query.Get("q"),
		Source:   query.Get("source"),
		Industry: query.Get("industry"),
		Status:   query.Get("status"),
		Limit:    parseIntParam(query.Get("limit")),
		Offset:   parseIntParam(query.Get("offset")),
	}

	leads, total, err := h.leadService.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list leads", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "list_leads_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	response := LeadListResponse{Leads: leads, Total: total}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Import handles POST /api/leads/import. The body is raw CSV text.
func (h *LeadsHandler) Import(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxImportBody))
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "read_body_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	count, err := h.leadService.ImportCSV(r.Context(), string(body))
	if err != nil {
		if errors.Is(err, apperrors.ErrEmptyCSV) || errors.Is(err, apperrors.ErrNoValidRows) {
			if err := ErrorResponse(w, http.StatusBadRequest, "invalid_csv", err.Error()); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to import CSV", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "import_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	response := ImportResponse{Imported: count}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Export handles GET /api/leads/export and streams the CSV download.
func (h *LeadsHandler) Export(w http.ResponseWriter, r *http.Request) {
	filename, content, err := h.leadService.ExportCSV(r.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNoLeads) {
			if err := ErrorResponse(w, http.StatusNotFound, "no_leads", err.Error()); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to export CSV", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "export_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if _, err := w.Write([]byte(content)); err != nil {
		h.logger.Error("Failed to write CSV response", zap.Error(err))
	}
}

// Qualify handles POST /api/leads/qualify, firing the qualification webhook.
// The webhook is fire-and-forget; only a transport failure is an error and
// nothing is retried.
func (h *LeadsHandler) Qualify(w http.ResponseWriter, r *http.Request) {
	if err := h.dispatcher.InitiateQualification(r.Context()); err != nil {
		h.logger.Error("Failed to trigger qualification webhook", zap.Error(err))
		if err := ErrorResponse(w, http.StatusBadGateway, "qualification_trigger_failed",
			"Failed to initiate lead qualification. Please try again."); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Lead qualification initiated"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

func parseIntParam(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0
	}
	return value
}
