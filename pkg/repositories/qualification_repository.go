package repositories

import (
	"context"
	"fmt"

	"github.com/leadpilot-inc/lead-engine/pkg/database"
	"github.com/leadpilot-inc/lead-engine/pkg/models"
)

// QualificationRepository provides read access to qualification_data.
type QualificationRepository interface {
	// GetOutcomeRows returns lead_id and qualification_status for every
	// record, for the source performance join.
	GetOutcomeRows(ctx context.Context) ([]*models.Qualification, error)

	// GetCategoryRows returns lead_type for every record, for category counts.
	GetCategoryRows(ctx context.Context) ([]*models.Qualification, error)

	// CountQualified counts records with status exactly "Qualified".
	CountQualified(ctx context.Context) (int, error)
}

type qualificationRepository struct {
	db *database.DB
}

// NewQualificationRepository creates a new QualificationRepository.
func NewQualificationRepository(db *database.DB) QualificationRepository {
	return &qualificationRepository{db: db}
}

var _ QualificationRepository = (*qualificationRepository)(nil)

func (r *qualificationRepository) GetOutcomeRows(ctx context.Context) ([]*models.Qualification, error) {
	query := `SELECT id, lead_id, qualification_status FROM qualification_data`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query qualification outcomes: %w", err)
	}
	defer rows.Close()

	var quals []*models.Qualification
	for rows.Next() {
		var q models.Qualification
		if err := rows.Scan(&q.ID, &q.LeadID, &q.QualificationStatus); err != nil {
			return nil, fmt.Errorf("failed to scan qualification outcome: %w", err)
		}
		quals = append(quals, &q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read qualification outcomes: %w", err)
	}
	return quals, nil
}

func (r *qualificationRepository) GetCategoryRows(ctx context.Context) ([]*models.Qualification, error) {
	query := `SELECT id, lead_type FROM qualification_data`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query qualification categories: %w", err)
	}
	defer rows.Close()

	var quals []*models.Qualification
	for rows.Next() {
		var q models.Qualification
		if err := rows.Scan(&q.ID, &q.LeadType); err != nil {
			return nil, fmt.Errorf("failed to scan qualification category: %w", err)
		}
		quals = append(quals, &q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read qualification categories: %w", err)
	}
	return quals, nil
}

func (r *qualificationRepository) CountQualified(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM qualification_data WHERE qualification_status = $1`

	var count int
	if err := r.db.QueryRow(ctx, query, models.QualificationStatusQualified).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count qualified records: %w", err)
	}
	return count, nil
}
