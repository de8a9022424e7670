package repositories

import (
	"context"
	"fmt"

	"github.com/leadpilot-inc/lead-engine/pkg/database"
	"github.com/leadpilot-inc/lead-engine/pkg/models"
)

// CallLogRepository provides read access to call_logs_activity.
type CallLogRepository interface {
	// GetConversations returns call logs joined with lead contact info,
	// newest call first.
	GetConversations(ctx context.Context) ([]*models.Conversation, error)

	// AverageDuration returns the mean duration in whole seconds across
	// non-null-duration calls, 0 when there are none.
	AverageDuration(ctx context.Context) (int, error)

	// CountActive counts calls with status exactly "active".
	CountActive(ctx context.Context) (int, error)
}

type callLogRepository struct {
	db *database.DB
}

// NewCallLogRepository creates a new CallLogRepository.
func NewCallLogRepository(db *database.DB) CallLogRepository {
	return &callLogRepository{db: db}
}

var _ CallLogRepository = (*callLogRepository)(nil)

func (r *callLogRepository) GetConversations(ctx context.Context) ([]*models.Conversation, error) {
	query := `
		SELECT c.id, c.lead_id, c.call_duration, c.call_status, c.call_type,
		       c.sentiment_score, c.call_summary, c.call_recording_url,
		       c.next_action_required, c.assigned_sales_rep, c.call_timestamp,
		       l.company_name, l.contact_name, l.email_address, l.phone_number
		FROM call_logs_activity c
		LEFT JOIN incoming_leads l ON l.id = c.lead_id
		ORDER BY c.call_timestamp DESC NULLS LAST`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversations: %w", err)
	}
	defer rows.Close()

	var conversations []*models.Conversation
	for rows.Next() {
		var conv models.Conversation
		var info models.ConversationLeadInfo
		err := rows.Scan(
			&conv.ID, &conv.LeadID, &conv.CallDuration, &conv.CallStatus, &conv.CallType,
			&conv.SentimentScore, &conv.CallSummary, &conv.CallRecordingURL,
			&conv.NextActionRequired, &conv.AssignedSalesRep, &conv.CallTimestamp,
			&info.CompanyName, &info.ContactName, &info.EmailAddress, &info.PhoneNumber,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conversation row: %w", err)
		}
		if conv.LeadID != nil {
			conv.Lead = &info
		}
		conversations = append(conversations, &conv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read conversation rows: %w", err)
	}
	return conversations, nil
}

func (r *callLogRepository) AverageDuration(ctx context.Context) (int, error) {
	query := `
		SELECT COALESCE(ROUND(AVG(call_duration)), 0)
		FROM call_logs_activity
		WHERE call_duration IS NOT NULL`

	var avg int
	if err := r.db.QueryRow(ctx, query).Scan(&avg); err != nil {
		return 0, fmt.Errorf("failed to compute average call duration: %w", err)
	}
	return avg, nil
}

func (r *callLogRepository) CountActive(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM call_logs_activity WHERE call_status = $1`

	var count int
	if err := r.db.QueryRow(ctx, query, models.CallStatusActive).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active calls: %w", err)
	}
	return count, nil
}
