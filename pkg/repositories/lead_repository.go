package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/leadpilot-inc/lead-engine/pkg/database"
	"github.com/leadpilot-inc/lead-engine/pkg/models"
)

// LeadRepository provides read access to incoming_leads plus the CSV bulk
// insert, the single write this service performs.
type LeadRepository interface {
	// GetAllWithQualification returns every lead joined with its
	// authoritative qualification record, newest lead first. When a lead has
	// several qualification rows the first one wins.
	GetAllWithQualification(ctx context.Context) ([]*models.LeadWithQualification, error)

	// GetVolumeRows returns creation instant and source for every lead,
	// oldest first. Range filtering happens in the aggregator, not here.
	GetVolumeRows(ctx context.Context) ([]*models.Lead, error)

	// GetPerformanceRows returns id, source and status for every lead.
	GetPerformanceRows(ctx context.Context) ([]*models.Lead, error)

	// CountAll returns the total lead count.
	CountAll(ctx context.Context) (int, error)

	// CountConverted counts leads whose status contains closed, converted or
	// won, case-insensitively.
	CountConverted(ctx context.Context) (int, error)

	// BulkInsert inserts imported leads and returns the inserted count.
	BulkInsert(ctx context.Context, leads []models.NewLead) (int, error)
}

type leadRepository struct {
	db *database.DB
}

// NewLeadRepository creates a new LeadRepository.
func NewLeadRepository(db *database.DB) LeadRepository {
	return &leadRepository{db: db}
}

var _ LeadRepository = (*leadRepository)(nil)

func (r *leadRepository) GetAllWithQualification(ctx context.Context) ([]*models.LeadWithQualification, error) {
	query := `
		SELECT l.id, l.company_name, l.contact_name, l.email_address, l.phone_number,
		       l.lead_source, l.industry_sector, l.status, l.initial_interest_notes,
		       l.website, l.created_at,
		       q.id, q.lead_id, q.qualification_status, q.qualification_score,
		       q.lead_type, q.budget_range, q.authority_level, q.delivery_timeline,
		       q.technical_requirements, q.decision_maker, q.created_at
		FROM incoming_leads l
		LEFT JOIN qualification_data q ON q.lead_id = l.id
		ORDER BY l.created_at DESC NULLS LAST, q.created_at ASC NULLS LAST`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query leads with qualification: %w", err)
	}
	defer rows.Close()

	var leads []*models.LeadWithQualification
	seen := make(map[uuid.UUID]struct{})

	for rows.Next() {
		var lead models.LeadWithQualification
		var qual models.Qualification
		var qualID *uuid.UUID // null on a LEFT JOIN miss

		err := rows.Scan(
			&lead.ID, &lead.CompanyName, &lead.ContactName, &lead.EmailAddress,
			&lead.PhoneNumber, &lead.LeadSource, &lead.IndustrySector, &lead.Status,
			&lead.InitialInterestNotes, &lead.Website, &lead.CreatedAt,
			&qualID, &qual.LeadID, &qual.QualificationStatus, &qual.QualificationScore,
			&qual.LeadType, &qual.BudgetRange, &qual.AuthorityLevel, &qual.DeliveryTimeline,
			&qual.TechnicalRequirements, &qual.DecisionMaker, &qual.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead row: %w", err)
		}

		if _, ok := seen[lead.ID]; ok {
			// Later qualification rows for the same lead are discarded.
			continue
		}
		seen[lead.ID] = struct{}{}

		if qualID != nil {
			qual.ID = *qualID
			lead.Qualification = &qual
		}

		leads = append(leads, &lead)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lead rows: %w", err)
	}
	return leads, nil
}

func (r *leadRepository) GetVolumeRows(ctx context.Context) ([]*models.Lead, error) {
	query := `
		SELECT id, created_at, lead_source
		FROM incoming_leads
		ORDER BY created_at ASC NULLS LAST`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query lead volume rows: %w", err)
	}
	defer rows.Close()

	var leads []*models.Lead
	for rows.Next() {
		var lead models.Lead
		if err := rows.Scan(&lead.ID, &lead.CreatedAt, &lead.LeadSource); err != nil {
			return nil, fmt.Errorf("failed to scan lead volume row: %w", err)
		}
		leads = append(leads, &lead)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lead volume rows: %w", err)
	}
	return leads, nil
}

func (r *leadRepository) GetPerformanceRows(ctx context.Context) ([]*models.Lead, error) {
	query := `SELECT id, lead_source, status FROM incoming_leads`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query lead performance rows: %w", err)
	}
	defer rows.Close()

	var leads []*models.Lead
	for rows.Next() {
		var lead models.Lead
		if err := rows.Scan(&lead.ID, &lead.LeadSource, &lead.Status); err != nil {
			return nil, fmt.Errorf("failed to scan lead performance row: %w", err)
		}
		leads = append(leads, &lead)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lead performance rows: %w", err)
	}
	return leads, nil
}

func (r *leadRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM incoming_leads`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count leads: %w", err)
	}
	return count, nil
}

func (r *leadRepository) CountConverted(ctx context.Context) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM incoming_leads
		WHERE status ILIKE '%closed%' OR status ILIKE '%converted%' OR status ILIKE '%won%'`

	var count int
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count converted leads: %w", err)
	}
	return count, nil
}

func (r *leadRepository) BulkInsert(ctx context.Context, leads []models.NewLead) (int, error) {
	if len(leads) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO incoming_leads (
			company_name, contact_name, email_address, phone_number,
			lead_source, industry_sector, status, initial_interest_notes, website
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	for _, lead := range leads {
		batch.Queue(query,
			lead.CompanyName,
			lead.ContactName,
			lead.EmailAddress,
			lead.PhoneNumber,
			lead.LeadSource,
			lead.IndustrySector,
			lead.Status,
			lead.InitialInterestNotes,
			lead.Website,
		)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range leads {
		if _, err := results.Exec(); err != nil {
			return 0, fmt.Errorf("failed to insert imported leads: %w", err)
		}
	}
	return len(leads), nil
}
