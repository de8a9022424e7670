package models

import (
	"time"

	"github.com/google/uuid"
)

// Call status counted as an in-progress call for the dashboard KPIs.
const CallStatusActive = "active"

// CallLog represents a contact attempt from the call_logs_activity table.
type CallLog struct {
	ID                 uuid.UUID  `json:"id"`
	LeadID             *uuid.UUID `json:"lead_id"`
	CallDuration       *int       `json:"call_duration"` // seconds
	CallStatus         *string    `json:"call_status"`
	CallType           *string    `json:"call_type"`
	SentimentScore     *string    `json:"sentiment_score"`
	CallSummary        *string    `json:"call_summary"`
	CallRecordingURL   *string    `json:"call_recording_url"`
	NextActionRequired *string    `json:"next_action_required"`
	AssignedSalesRep   *string    `json:"assigned_sales_rep"`
	CallTimestamp      *time.Time `json:"call_timestamp"`
}

// ConversationLeadInfo is the denormalized lead contact block attached to a
// call log for the conversations view.
type ConversationLeadInfo struct {
	CompanyName  *string `json:"company_name"`
	ContactName  *string `json:"contact_name"`
	EmailAddress *string `json:"email_address"`
	PhoneNumber  *string `json:"phone_number"`
}

// Conversation is a call log joined with its lead's contact info.
type Conversation struct {
	CallLog
	Lead *ConversationLeadInfo `json:"incoming_leads"`
}
