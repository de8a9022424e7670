package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/leadpilot-inc/lead-engine/pkg/models"
	"github.com/leadpilot-inc/lead-engine/pkg/notify"
)

// NotificationListResponse for GET /api/notifications
type NotificationListResponse struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unreadCount"`
}

// NotificationsHandler serves the locally owned notification list.
type NotificationsHandler struct {
	center *notify.Center
	logger *zap.Logger
}

// NewNotificationsHandler creates a new notifications handler.
func NewNotificationsHandler(center *notify.Center, logger *zap.Logger) *NotificationsHandler {
	return &NotificationsHandler{
		center: center,
		logger: logger,
	}
}

// RegisterRoutes registers the notifications handler's routes on the given mux.
func (h *NotificationsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/notifications", h.List)
	mux.HandleFunc("POST /api/notifications/{id}/read", h.MarkRead)
	mux.HandleFunc("POST /api/notifications/read-all", h.MarkAllRead)
	mux.HandleFunc("DELETE /api/notifications", h.ClearAll)
}

// List handles GET /api/notifications
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	response := NotificationListResponse{
		Notifications: h.center.List(),
		UnreadCount:   h.center.UnreadCount(),
	}
	if response.Notifications == nil {
		response.Notifications = []models.Notification{}
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// MarkRead handles POST /api/notifications/{id}/read. Idempotent; an unknown
// id is not an error.
func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_notification_id", "notification id must be a UUID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	h.center.MarkRead(id)
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// MarkAllRead handles POST /api/notifications/read-all. Idempotent.
func (h *NotificationsHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	h.center.MarkAllRead()
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ClearAll handles DELETE /api/notifications
func (h *NotificationsHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	h.center.ClearAll()
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
