package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/leadpilot-inc/lead-engine/pkg/database"
	"github.com/leadpilot-inc/lead-engine/pkg/models"
)

// FollowUpRepository provides read access to follow_up.
type FollowUpRepository interface {
	// GetByLeadID returns follow-ups for one lead, latest scheduled first.
	GetByLeadID(ctx context.Context, leadID uuid.UUID) ([]*models.FollowUp, error)
}

type followUpRepository struct {
	db *database.DB
}

// NewFollowUpRepository creates a new FollowUpRepository.
func NewFollowUpRepository(db *database.DB) FollowUpRepository {
	return &followUpRepository{db: db}
}

var _ FollowUpRepository = (*followUpRepository)(nil)

func (r *followUpRepository) GetByLeadID(ctx context.Context, leadID uuid.UUID) ([]*models.FollowUp, error) {
	query := `
		SELECT id, lead_id, followup_type, status, scheduled_at, created_at
		FROM follow_up
		WHERE lead_id = $1
		ORDER BY scheduled_at DESC NULLS LAST`

	rows, err := r.db.Query(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("failed to query follow-ups: %w", err)
	}
	defer rows.Close()

	var followUps []*models.FollowUp
	for rows.Next() {
		var f models.FollowUp
		err := rows.Scan(&f.ID, &f.LeadID, &f.FollowupType, &f.Status, &f.ScheduledAt, &f.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan follow-up row: %w", err)
		}
		followUps = append(followUps, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read follow-up rows: %w", err)
	}
	return followUps, nil
}
