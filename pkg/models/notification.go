package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a locally owned "new lead" alert. The list is deduplicated
// by LeadID, capped, ordered most-recent-first, and persisted as a single
// keyed blob; the backing store never owns these.
type Notification struct {
	ID          uuid.UUID `json:"id"`
	LeadID      uuid.UUID `json:"leadId"`
	CompanyName string    `json:"companyName"`
	Timestamp   time.Time `json:"timestamp"`
	Read        bool      `json:"read"`
}
