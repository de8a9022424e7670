package events

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/leadpilot-inc/lead-engine/pkg/cache"
	"github.com/leadpilot-inc/lead-engine/pkg/models"
)

type mockSink struct {
	mu    sync.Mutex
	added []uuid.UUID
	names []string
}

func (m *mockSink) Add(leadID uuid.UUID, companyName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.added = append(m.added, leadID)
	m.names = append(m.names, companyName)
}

type mockRefresher struct {
	mu       sync.Mutex
	prefixes []string
	err      error
	done     chan struct{}
}

func (m *mockRefresher) Refresh(ctx context.Context, prefix string) error {
	m.mu.Lock()
	m.prefixes = append(m.prefixes, prefix)
	m.mu.Unlock()
	if m.done != nil {
		m.done <- struct{}{}
	}
	return m.err
}

func seededCache(t *testing.T, keys ...string) *cache.Cache {
	t.Helper()
	c := cache.New()
	for _, key := range keys {
		_, err := c.Get(context.Background(), key, func(ctx context.Context) (interface{}, error) {
			return "cached", nil
		})
		require.NoError(t, err)
	}
	return c
}

func TestDispatcher_Handle_InvalidatesMappedPrefixes(t *testing.T) {
	c := seededCache(t,
		cache.KeyDashboardKPIs,
		cache.KeyConversations,
		cache.KeyAppointments,
	)
	d := NewDispatcher(DefaultDependencies(), c, nil, nil, zap.NewNop())

	d.Handle(context.Background(), models.ChangeEvent{
		Event: models.ChangeEventInsert,
		Table: models.TableCallLogsActivity,
	})

	// call_logs_activity invalidates KPIs and conversations, not appointments.
	assert.ElementsMatch(t, []string{cache.KeyAppointments}, c.Keys())
}

func TestDispatcher_Handle_UnknownTableIsIgnored(t *testing.T) {
	c := seededCache(t, cache.KeyDashboardKPIs)
	sink := &mockSink{}
	d := NewDispatcher(DefaultDependencies(), c, sink, nil, zap.NewNop())

	d.Handle(context.Background(), models.ChangeEvent{
		Event: models.ChangeEventInsert,
		Table: "some_other_table",
	})

	assert.ElementsMatch(t, []string{cache.KeyDashboardKPIs}, c.Keys())
	assert.Empty(t, sink.added)
}

func TestDispatcher_Handle_LeadInsertRaisesNotification(t *testing.T) {
	leadID := uuid.New()
	payload, err := json.Marshal(map[string]string{
		"id":           leadID.String(),
		"company_name": "Acme Corp",
	})
	require.NoError(t, err)

	sink := &mockSink{}
	d := NewDispatcher(DefaultDependencies(), cache.New(), sink, nil, zap.NewNop())

	d.Handle(context.Background(), models.ChangeEvent{
		Event: models.ChangeEventInsert,
		Table: models.TableIncomingLeads,
		New:   payload,
	})

	require.Len(t, sink.added, 1)
	assert.Equal(t, leadID, sink.added[0])
	assert.Equal(t, "Acme Corp", sink.names[0])
}

func TestDispatcher_Handle_NoNotificationForUpdates(t *testing.T) {
	payload, err := json.Marshal(map[string]string{
		"id":           uuid.New().String(),
		"company_name": "Acme Corp",
	})
	require.NoError(t, err)

	sink := &mockSink{}
	d := NewDispatcher(DefaultDependencies(), cache.New(), sink, nil, zap.NewNop())

	d.Handle(context.Background(), models.ChangeEvent{
		Event: models.ChangeEventUpdate,
		Table: models.TableIncomingLeads,
		New:   payload,
	})

	assert.Empty(t, sink.added)
}

func TestDispatcher_Handle_MalformedInsertPayloadIsDropped(t *testing.T) {
	sink := &mockSink{}
	d := NewDispatcher(DefaultDependencies(), cache.New(), sink, nil, zap.NewNop())

	d.Handle(context.Background(), models.ChangeEvent{
		Event: models.ChangeEventInsert,
		Table: models.TableIncomingLeads,
		New:   json.RawMessage(`{"id": "not-a-uuid"`),
	})
	d.Handle(context.Background(), models.ChangeEvent{
		Event: models.ChangeEventInsert,
		Table: models.TableIncomingLeads,
		New:   json.RawMessage(`{"id": "not-a-uuid", "company_name": "Acme"}`),
	})

	assert.Empty(t, sink.added)
}

func TestDispatcher_Handle_KicksBackgroundRefresh(t *testing.T) {
	refresher := &mockRefresher{done: make(chan struct{}, 8)}
	d := NewDispatcher(DefaultDependencies(), cache.New(), nil, refresher, zap.NewNop())

	d.Handle(context.Background(), models.ChangeEvent{
		Event: models.ChangeEventInsert,
		Table: models.TableAppointmentDetails,
	})

	select {
	case <-refresher.done:
	case <-time.After(2 * time.Second):
		t.Fatal("background refresh never ran")
	}

	refresher.mu.Lock()
	defer refresher.mu.Unlock()
	assert.Equal(t, []string{cache.KeyAppointments}, refresher.prefixes)
}

func TestDispatcher_Run_StopsWhenChannelCloses(t *testing.T) {
	c := seededCache(t, cache.KeyAppointments)
	d := NewDispatcher(DefaultDependencies(), c, nil, nil, zap.NewNop())

	events := make(chan models.ChangeEvent, 1)
	events <- models.ChangeEvent{
		Event: models.ChangeEventDelete,
		Table: models.TableAppointmentDetails,
	}
	close(events)

	done := make(chan struct{})
	go func() {
		d.Run(context.Background(), events)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatcher did not stop on channel close")
	}
	assert.Empty(t, c.Keys())
}
