package models

import (
	"time"

	"github.com/google/uuid"
)

// Lead represents an inbound sales inquiry from the incoming_leads table.
// Leads are created by the external ingestion pipeline; this service only
// reads them, except for the CSV bulk import path.
type Lead struct {
	ID                   uuid.UUID  `json:"id"`
	CompanyName          *string    `json:"company_name"`
	ContactName          *string    `json:"contact_name"`
	EmailAddress         *string    `json:"email_address"`
	PhoneNumber          *string    `json:"phone_number"`
	LeadSource           *string    `json:"lead_source"`
	IndustrySector       *string    `json:"industry_sector"`
	Status               *string    `json:"status"`
	InitialInterestNotes *string    `json:"initial_interest_notes"`
	Website              *string    `json:"website"`
	CreatedAt            *time.Time `json:"created_at"`
}

// Source returns the acquisition channel, defaulting to "Unknown" when the
// column is null or empty.
func (l *Lead) Source() string {
	if l.LeadSource == nil || *l.LeadSource == "" {
		return UnknownSource
	}
	return *l.LeadSource
}

// UnknownSource is the bucket for leads without an acquisition channel.
const UnknownSource = "Unknown"

// LeadWithQualification pairs a lead with its authoritative qualification
// record. When the join yields more than one qualification row, the first one
// wins and the rest are discarded.
type LeadWithQualification struct {
	Lead
	Qualification *Qualification `json:"qualification_data"`
}

// NewLead is the shape accepted by the CSV import bulk insert. All fields are
// optional except Status, which defaults to "new" upstream.
type NewLead struct {
	CompanyName          *string
	ContactName          *string
	EmailAddress         *string
	PhoneNumber          *string
	LeadSource           *string
	IndustrySector       *string
	Status               string
	InitialInterestNotes *string
	Website              *string
}
