package models

import (
	"time"

	"github.com/google/uuid"
)

// FollowUp represents a scheduled follow-up action from the follow_up table.
type FollowUp struct {
	ID           uuid.UUID  `json:"id"`
	LeadID       *uuid.UUID `json:"lead_id"`
	FollowupType *string    `json:"followup_type"`
	Status       *string    `json:"status"`
	ScheduledAt  *time.Time `json:"scheduled_at"`
	CreatedAt    time.Time  `json:"created_at"`
}
