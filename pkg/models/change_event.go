package models

import (
	"encoding/json"

	"github.com/leadpilot-inc/lead-engine/pkg/jsonutil"
)

// Change event types delivered by the gateway's notification channel.
const (
	ChangeEventInsert = "INSERT"
	ChangeEventUpdate = "UPDATE"
	ChangeEventDelete = "DELETE"
)

// Table names published on the change channel.
const (
	TableIncomingLeads      = "incoming_leads"
	TableQualificationData  = "qualification_data"
	TableCallLogsActivity   = "call_logs_activity"
	TableAppointmentDetails = "appointment_details"
	TableFollowUp           = "follow_up"
)

// ChangeEvent is one row-level change notification from the backing store.
// New carries the raw row payload for INSERT/UPDATE events; consumers decode
// only the columns they care about.
type ChangeEvent struct {
	Event string          `json:"event"`
	Table string          `json:"table"`
	New   json.RawMessage `json:"new,omitempty"`
}

// LeadInsertPayload is the subset of an incoming_leads row needed to raise a
// notification.
type LeadInsertPayload struct {
	ID          string
	CompanyName string
}

// UnmarshalJSON decodes the row payload leniently; the store's columns are
// free-form, so company_name can arrive as a number or boolean.
func (p *LeadInsertPayload) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          json.RawMessage `json:"id"`
		CompanyName json.RawMessage `json:"company_name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.ID = jsonutil.FlexibleStringValue(raw.ID)
	p.CompanyName = jsonutil.FlexibleStringValue(raw.CompanyName)
	return nil
}
