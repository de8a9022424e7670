package models

import (
	"time"

	"github.com/google/uuid"
)

// Qualification status value used for source performance and KPI counting.
// This is an exact match against qualification_status, unlike the substring
// matching applied to LeadType for category counts. The two policies cover
// different, differently-populated columns and are intentionally not unified.
const QualificationStatusQualified = "Qualified"

// Qualification represents a row from the qualification_data table. Zero or
// one per lead is treated as authoritative; the data itself is written by the
// external qualification pipeline and is unnormalized free text throughout.
type Qualification struct {
	ID                    uuid.UUID  `json:"id"`
	LeadID                *uuid.UUID `json:"lead_id"`
	QualificationStatus   *string    `json:"qualification_status"`
	QualificationScore    *int       `json:"qualification_score"`
	LeadType              *string    `json:"lead_type"`
	BudgetRange           *string    `json:"budget_range"`
	AuthorityLevel        *string    `json:"authority_level"`
	DeliveryTimeline      *string    `json:"delivery_timeline"`
	TechnicalRequirements *string    `json:"technical_requirements"`
	DecisionMaker         *bool      `json:"decision_maker"`
	CreatedAt             *time.Time `json:"created_at"`
}

// IsQualified reports whether the record's status is exactly "Qualified".
func (q *Qualification) IsQualified() bool {
	return q.QualificationStatus != nil && *q.QualificationStatus == QualificationStatusQualified
}
