package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/leadpilot-inc/lead-engine/pkg/cache"
	"github.com/leadpilot-inc/lead-engine/pkg/models"
	"github.com/leadpilot-inc/lead-engine/pkg/repositories"
)

// AppointmentService serves the appointment listing.
type AppointmentService interface {
	List(ctx context.Context) ([]*models.Appointment, error)
}

type appointmentService struct {
	repo   repositories.AppointmentRepository
	cache  *cache.Cache
	logger *zap.Logger
}

// NewAppointmentService creates a new AppointmentService.
func NewAppointmentService(repo repositories.AppointmentRepository, c *cache.Cache, logger *zap.Logger) AppointmentService {
	return &appointmentService{
		repo:   repo,
		cache:  c,
		logger: logger.Named("appointment-service"),
	}
}

var _ AppointmentService = (*appointmentService)(nil)

func (s *appointmentService) List(ctx context.Context) ([]*models.Appointment, error) {
	value, err := s.cache.Get(ctx, cache.KeyAppointments, func(ctx context.Context) (interface{}, error) {
		return s.repo.GetAll(ctx)
	})
	if err != nil {
		s.logger.Error("Failed to load appointments", zap.Error(err))
		return nil, err
	}
	return value.([]*models.Appointment), nil
}

// FollowUpService serves per-lead follow-up listings. These are keyed per
// lead and read directly, without caching.
type FollowUpService interface {
	ListByLead(ctx context.Context, leadID uuid.UUID) ([]*models.FollowUp, error)
}

type followUpService struct {
	repo   repositories.FollowUpRepository
	logger *zap.Logger
}

// NewFollowUpService creates a new FollowUpService.
func NewFollowUpService(repo repositories.FollowUpRepository, logger *zap.Logger) FollowUpService {
	return &followUpService{
		repo:   repo,
		logger: logger.Named("follow-up-service"),
	}
}

var _ FollowUpService = (*followUpService)(nil)

func (s *followUpService) ListByLead(ctx context.Context, leadID uuid.UUID) ([]*models.FollowUp, error) {
	followUps, err := s.repo.GetByLeadID(ctx, leadID)
	if err != nil {
		s.logger.Error("Failed to load follow-ups",
			zap.String("lead_id", leadID.String()), zap.Error(err))
		return nil, err
	}
	return followUps, nil
}
