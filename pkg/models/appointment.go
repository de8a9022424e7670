package models

import "github.com/google/uuid"

// Appointment represents a scheduled meeting from the appointment_details
// table. Date and time columns are stored as free-form strings upstream and
// are passed through without semantic validation.
type Appointment struct {
	ID        uuid.UUID  `json:"id"`
	LeadID    *uuid.UUID `json:"lead_id"`
	LeadName  *string    `json:"lead_name"`
	LeadEmail *string    `json:"lead_email"`
	Date      *string    `json:"date"`
	StartTime *string    `json:"start_time"`
	EndTime   *string    `json:"end_time"`
}
