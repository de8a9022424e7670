package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/leadpilot-inc/lead-engine/pkg/models"
	"github.com/leadpilot-inc/lead-engine/pkg/notify"
)

type noopStore struct{}

func (noopStore) Load(ctx context.Context) ([]models.Notification, error) { return nil, nil }
func (noopStore) Save(ctx context.Context, n []models.Notification) error { return nil }

func newNotificationsMux(center *notify.Center) *http.ServeMux {
	mux := http.NewServeMux()
	NewNotificationsHandler(center, zap.NewNop()).RegisterRoutes(mux)
	return mux
}

func newLoadedCenter() *notify.Center {
	center := notify.NewCenter(noopStore{}, 10, zap.NewNop())
	center.Load(context.Background())
	return center
}

func TestNotificationsHandler_List_EmptyIsAnArray(t *testing.T) {
	mux := newNotificationsMux(newLoadedCenter())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/notifications", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"notifications":[]`)
	assert.Contains(t, rec.Body.String(), `"unreadCount":0`)
}

func TestNotificationsHandler_List(t *testing.T) {
	center := newLoadedCenter()
	center.Add(uuid.New(), "Acme Corp")
	center.Add(uuid.New(), "Globex")
	mux := newNotificationsMux(center)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/notifications", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Acme Corp")
	assert.Contains(t, rec.Body.String(), `"unreadCount":2`)
}

func TestNotificationsHandler_MarkRead(t *testing.T) {
	center := newLoadedCenter()
	center.Add(uuid.New(), "Acme Corp")
	id := center.List()[0].ID
	mux := newNotificationsMux(center)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/notifications/"+id.String()+"/read", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, center.UnreadCount())
}

func TestNotificationsHandler_MarkRead_InvalidID(t *testing.T) {
	mux := newNotificationsMux(newLoadedCenter())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/notifications/not-a-uuid/read", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_notification_id")
}

func TestNotificationsHandler_MarkRead_UnknownIDIsOK(t *testing.T) {
	mux := newNotificationsMux(newLoadedCenter())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/notifications/"+uuid.NewString()+"/read", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNotificationsHandler_MarkAllRead(t *testing.T) {
	center := newLoadedCenter()
	center.Add(uuid.New(), "Acme Corp")
	center.Add(uuid.New(), "Globex")
	mux := newNotificationsMux(center)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/notifications/read-all", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, center.UnreadCount())
	assert.Len(t, center.List(), 2)
}

func TestNotificationsHandler_ClearAll(t *testing.T) {
	center := newLoadedCenter()
	center.Add(uuid.New(), "Acme Corp")
	mux := newNotificationsMux(center)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/notifications", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, center.List())
}
