package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/leadpilot-inc/lead-engine/pkg/analytics"
	"github.com/leadpilot-inc/lead-engine/pkg/services"
)

// DashboardHandler serves the aggregate dashboard endpoints.
type DashboardHandler struct {
	dashboardService services.DashboardService
	logger           *zap.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(dashboardService services.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// RegisterRoutes registers the dashboard handler's routes on the given mux.
func (h *DashboardHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/dashboard/kpis", h.KPIs)
	mux.HandleFunc("GET /api/dashboard/volume", h.Volume)
	mux.HandleFunc("GET /api/dashboard/categories", h.Categories)
	mux.HandleFunc("GET /api/dashboard/sources", h.Sources)
}

// KPIs handles GET /api/dashboard/kpis
func (h *DashboardHandler) KPIs(w http.ResponseWriter, r *http.Request) {
	kpis, err := h.dashboardService.GetKPIs(r.Context())
	if err != nil {
		h.logger.Error("Failed to get dashboard KPIs", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "dashboard_kpis_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: kpis}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Volume handles GET /api/dashboard/volume?range=this_week
func (h *DashboardHandler) Volume(w http.ResponseWriter, r *http.Request) {
	rawRange := r.URL.Query().Get("range")
	if rawRange == "" {
		rawRange = string(analytics.RangeThisWeek)
	}

	sel, err := analytics.ParseRangeSelector(rawRange)
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_range", "unrecognized date range selector: "+rawRange); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	buckets, err := h.dashboardService.GetVolumeByDate(r.Context(), sel)
	if err != nil {
		h.logger.Error("Failed to get lead volume",
			zap.String("range", rawRange), zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "lead_volume_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: buckets}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Categories handles GET /api/dashboard/categories
func (h *DashboardHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.dashboardService.GetCategories(r.Context())
	if err != nil {
		h.logger.Error("Failed to get lead categories", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "lead_categories_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: categories}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Sources handles GET /api/dashboard/sources
func (h *DashboardHandler) Sources(w http.ResponseWriter, r *http.Request) {
	sources, err := h.dashboardService.GetSourcePerformance(r.Context())
	if err != nil {
		h.logger.Error("Failed to get source performance", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "source_performance_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: sources}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
