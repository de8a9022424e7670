package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/leadpilot-inc/lead-engine/pkg/analytics"
	"github.com/leadpilot-inc/lead-engine/pkg/cache"
	"github.com/leadpilot-inc/lead-engine/pkg/models"
	"github.com/leadpilot-inc/lead-engine/pkg/repositories"
)

// DashboardService computes the dashboard aggregates. Results are cached
// under their canonical keys and invalidated by the change-event dispatcher;
// volume, categories and source performance fetch raw rows and aggregate
// locally so that bucket completeness and bucket/classification timezone
// alignment never depend on query-side filtering.
type DashboardService interface {
	GetKPIs(ctx context.Context) (*models.DashboardKPIs, error)
	GetVolumeByDate(ctx context.Context, sel analytics.RangeSelector) ([]models.DateBucket, error)
	GetCategories(ctx context.Context) ([]models.CategoryCount, error)
	GetSourcePerformance(ctx context.Context) ([]models.SourcePerformance, error)
}

type dashboardService struct {
	leadRepo repositories.LeadRepository
	qualRepo repositories.QualificationRepository
	callRepo repositories.CallLogRepository
	cache    *cache.Cache
	loc      *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

// NewDashboardService creates a new DashboardService. loc is the timezone
// used for both range resolution and day bucketing.
func NewDashboardService(
	leadRepo repositories.LeadRepository,
	qualRepo repositories.QualificationRepository,
	callRepo repositories.CallLogRepository,
	c *cache.Cache,
	loc *time.Location,
	logger *zap.Logger,
) DashboardService {
	return &dashboardService{
		leadRepo: leadRepo,
		qualRepo: qualRepo,
		callRepo: callRepo,
		cache:    c,
		loc:      loc,
		now:      time.Now,
		logger:   logger.Named("dashboard-service"),
	}
}

var _ DashboardService = (*dashboardService)(nil)

// GetKPIs runs five independent scalar queries. There is no snapshot
// consistency across them; each defaults to zero on an empty store.
func (s *dashboardService) GetKPIs(ctx context.Context) (*models.DashboardKPIs, error) {
	value, err := s.cache.Get(ctx, cache.KeyDashboardKPIs, func(ctx context.Context) (interface{}, error) {
		avgDuration, err := s.callRepo.AverageDuration(ctx)
		if err != nil {
			return nil, err
		}
		activeCalls, err := s.callRepo.CountActive(ctx)
		if err != nil {
			return nil, err
		}
		totalLeads, err := s.leadRepo.CountAll(ctx)
		if err != nil {
			return nil, err
		}
		qualifiedLeads, err := s.qualRepo.CountQualified(ctx)
		if err != nil {
			return nil, err
		}
		convertedLeads, err := s.leadRepo.CountConverted(ctx)
		if err != nil {
			return nil, err
		}

		return &models.DashboardKPIs{
			AvgResponseTime:   avgDuration,
			ActiveCallsCount:  activeCalls,
			TotalLeads:        totalLeads,
			QualifiedLeads:    qualifiedLeads,
			QualificationRate: analytics.Percentage(qualifiedLeads, totalLeads),
			ConversionRate:    analytics.Percentage(convertedLeads, totalLeads),
		}, nil
	})
	if err != nil {
		s.logger.Error("Failed to compute dashboard KPIs", zap.Error(err))
		return nil, err
	}
	return value.(*models.DashboardKPIs), nil
}

func (s *dashboardService) GetVolumeByDate(ctx context.Context, sel analytics.RangeSelector) ([]models.DateBucket, error) {
	start, end, err := analytics.ResolveDateRange(sel, s.now(), s.loc)
	if err != nil {
		return nil, err
	}

	value, err := s.cache.Get(ctx, cache.VolumeKey(string(sel)), func(ctx context.Context) (interface{}, error) {
		leads, err := s.leadRepo.GetVolumeRows(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load lead volume rows: %w", err)
		}
		return analytics.LeadVolumeByDate(leads, start, end, s.loc), nil
	})
	if err != nil {
		s.logger.Error("Failed to compute lead volume",
			zap.String("range", string(sel)), zap.Error(err))
		return nil, err
	}
	return value.([]models.DateBucket), nil
}

func (s *dashboardService) GetCategories(ctx context.Context) ([]models.CategoryCount, error) {
	value, err := s.cache.Get(ctx, cache.KeyLeadCategories, func(ctx context.Context) (interface{}, error) {
		quals, err := s.qualRepo.GetCategoryRows(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load qualification categories: %w", err)
		}
		return analytics.CountLeadCategories(quals), nil
	})
	if err != nil {
		s.logger.Error("Failed to compute lead categories", zap.Error(err))
		return nil, err
	}
	return value.([]models.CategoryCount), nil
}

func (s *dashboardService) GetSourcePerformance(ctx context.Context) ([]models.SourcePerformance, error) {
	value, err := s.cache.Get(ctx, cache.KeyLeadSourcePerformance, func(ctx context.Context) (interface{}, error) {
		leads, err := s.leadRepo.GetPerformanceRows(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load lead performance rows: %w", err)
		}
		quals, err := s.qualRepo.GetOutcomeRows(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load qualification outcomes: %w", err)
		}
		return analytics.SourcePerformance(leads, quals), nil
	})
	if err != nil {
		s.logger.Error("Failed to compute source performance", zap.Error(err))
		return nil, err
	}
	return value.([]models.SourcePerformance), nil
}
