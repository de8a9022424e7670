package repositories

import (
	"context"
	"fmt"

	"github.com/leadpilot-inc/lead-engine/pkg/database"
	"github.com/leadpilot-inc/lead-engine/pkg/models"
)

// AppointmentRepository provides read access to appointment_details.
type AppointmentRepository interface {
	GetAll(ctx context.Context) ([]*models.Appointment, error)
}

type appointmentRepository struct {
	db *database.DB
}

// NewAppointmentRepository creates a new AppointmentRepository.
func NewAppointmentRepository(db *database.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

var _ AppointmentRepository = (*appointmentRepository)(nil)

func (r *appointmentRepository) GetAll(ctx context.Context) ([]*models.Appointment, error) {
	query := `
		SELECT id, lead_id, lead_name, lead_email, date, start_time, end_time
		FROM appointment_details
		ORDER BY date DESC NULLS LAST, start_time DESC NULLS LAST`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer rows.Close()

	var appointments []*models.Appointment
	for rows.Next() {
		var a models.Appointment
		err := rows.Scan(&a.ID, &a.LeadID, &a.LeadName, &a.LeadEmail, &a.Date, &a.StartTime, &a.EndTime)
		if err != nil {
			return nil, fmt.Errorf("failed to scan appointment row: %w", err)
		}
		appointments = append(appointments, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read appointment rows: %w", err)
	}
	return appointments, nil
}
