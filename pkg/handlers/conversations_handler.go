package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/leadpilot-inc/lead-engine/pkg/models"
	"github.com/leadpilot-inc/lead-engine/pkg/services"
)

// ConversationListResponse for GET /api/conversations
type ConversationListResponse struct {
	Conversations []*models.Conversation `json:"conversations"`
	Total         int                    `json:"total"`
}

// ConversationsHandler serves the call log listing.
type ConversationsHandler struct {
	conversationService services.ConversationService
	logger              *zap.Logger
}

// NewConversationsHandler creates a new conversations handler.
func NewConversationsHandler(conversationService services.ConversationService, logger *zap.Logger) *ConversationsHandler {
	return &ConversationsHandler{
		conversationService: conversationService,
		logger:              logger,
	}
}

// RegisterRoutes registers the conversations handler's routes on the given mux.
func (h *ConversationsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/conversations", h.List)
}

// List handles GET /api/conversations
func (h *ConversationsHandler) List(w http.ResponseWriter, r *http.Request) {
	conversations, err := h.conversationService.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list conversations", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "list_conversations_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	response := ConversationListResponse{Conversations: conversations, Total: len(conversations)}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// AppointmentListResponse for GET /api/appointments
type AppointmentListResponse struct {
	Appointments []*models.Appointment `json:"appointments"`
	Total        int                   `json:"total"`
}

// AppointmentsHandler serves the appointment listing and per-lead follow-ups.
type AppointmentsHandler struct {
	appointmentService services.AppointmentService
	followUpService    services.FollowUpService
	logger             *zap.Logger
}

// NewAppointmentsHandler creates a new appointments handler.
func NewAppointmentsHandler(appointmentService services.AppointmentService, followUpService services.FollowUpService, logger *zap.Logger) *AppointmentsHandler {
	return &AppointmentsHandler{
		appointmentService: appointmentService,
		followUpService:    followUpService,
		logger:             logger,
	}
}

// RegisterRoutes registers the appointments handler's routes on the given mux.
func (h *AppointmentsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/appointments", h.List)
	mux.HandleFunc("GET /api/leads/{id}/followups", h.FollowUps)
}

// List handles GET /api/appointments
func (h *AppointmentsHandler) List(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentService.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list appointments", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "list_appointments_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	response := AppointmentListResponse{Appointments: appointments, Total: len(appointments)}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// FollowUps handles GET /api/leads/{id}/followups
func (h *AppointmentsHandler) FollowUps(w http.ResponseWriter, r *http.Request) {
	leadID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_lead_id", "lead id must be a UUID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	followUps, err := h.followUpService.ListByLead(r.Context(), leadID)
	if err != nil {
		h.logger.Error("Failed to list follow-ups",
			zap.String("lead_id", leadID.String()), zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "list_followups_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: followUps}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
