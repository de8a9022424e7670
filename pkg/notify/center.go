package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/leadpilot-inc/lead-engine/pkg/models"
)

// Center maintains the capped, deduplicated "new lead" notification list.
// The list is ordered most-recent-first, deduplicated by lead id, truncated
// to max entries with the oldest evicted first, and persisted to the store on
// every mutation. A notification only transitions unread -> read; the only
// removal is the full-list clear.
type Center struct {
	store  Store
	max    int
	logger *zap.Logger

	mu            sync.Mutex
	notifications []models.Notification
}

// NewCenter creates a notification center backed by store. Call Load once at
// startup before serving.
func NewCenter(store Store, max int, logger *zap.Logger) *Center {
	return &Center{
		store:  store,
		max:    max,
		logger: logger.Named("notification-center"),
	}
}

// Load restores the persisted list. Corrupt or missing state degrades to an
// empty list; it is logged and never surfaced as an error.
func (c *Center) Load(ctx context.Context) {
	notifications, err := c.store.Load(ctx)
	if err != nil {
		c.logger.Warn("Failed to load persisted notifications, starting empty", zap.Error(err))
		notifications = nil
	}
	if len(notifications) > c.max {
		notifications = notifications[:c.max]
	}

	c.mu.Lock()
	c.notifications = notifications
	c.mu.Unlock()
}

// Add prepends an unread notification for the lead. It is a no-op when a
// notification for that lead id is already present, read or not.
func (c *Center) Add(leadID uuid.UUID, companyName string) {
	if companyName == "" {
		companyName = "Unknown Company"
	}

	c.mu.Lock()
	for _, n := range c.notifications {
		if n.LeadID == leadID {
			c.mu.Unlock()
			return
		}
	}

	updated := make([]models.Notification, 0, len(c.notifications)+1)
	updated = append(updated, models.Notification{
		ID:          uuid.New(),
		LeadID:      leadID,
		CompanyName: companyName,
		Timestamp:   time.Now(),
	})
	updated = append(updated, c.notifications...)
	if len(updated) > c.max {
		updated = updated[:c.max]
	}
	c.notifications = updated
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.persist(snapshot)
}

// MarkRead flags one notification as read. Idempotent; unknown ids are a
// no-op.
func (c *Center) MarkRead(id uuid.UUID) {
	c.mu.Lock()
	changed := false
	for i := range c.notifications {
		if c.notifications[i].ID == id && !c.notifications[i].Read {
			c.notifications[i].Read = true
			changed = true
		}
	}
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	if changed {
		c.persist(snapshot)
	}
}

// MarkAllRead flags every notification as read. Idempotent.
func (c *Center) MarkAllRead() {
	c.mu.Lock()
	for i := range c.notifications {
		c.notifications[i].Read = true
	}
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.persist(snapshot)
}

// ClearAll empties the list.
func (c *Center) ClearAll() {
	c.mu.Lock()
	c.notifications = nil
	c.mu.Unlock()

	c.persist([]models.Notification{})
}

// List returns the current notifications, most recent first.
func (c *Center) List() []models.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// UnreadCount is derived on every call, never stored.
func (c *Center) UnreadCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, n := range c.notifications {
		if !n.Read {
			count++
		}
	}
	return count
}

func (c *Center) snapshotLocked() []models.Notification {
	snapshot := make([]models.Notification, len(c.notifications))
	copy(snapshot, c.notifications)
	return snapshot
}

func (c *Center) persist(notifications []models.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.store.Save(ctx, notifications); err != nil {
		c.logger.Warn("Failed to persist notifications", zap.Error(err))
	}
}
