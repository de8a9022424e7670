package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/leadpilot-inc/lead-engine/pkg/apperrors"
	"github.com/leadpilot-inc/lead-engine/pkg/cache"
	"github.com/leadpilot-inc/lead-engine/pkg/csvio"
	"github.com/leadpilot-inc/lead-engine/pkg/events"
	"github.com/leadpilot-inc/lead-engine/pkg/models"
	"github.com/leadpilot-inc/lead-engine/pkg/repositories"
)

// LeadFilter narrows the lead listing. All filtering and pagination happens
// locally against the cached full result set; the gateway query is always
// unfiltered.
type LeadFilter struct {
	Query    string // matches company, contact or email, case-insensitive
	Source   string
	Industry string
	Status   string
	Limit    int
	Offset   int
}

// LeadService serves lead listings, CSV import/export and the cache
// bookkeeping around the import write.
type LeadService interface {
	// List returns the filtered page and the total count after filtering.
	List(ctx context.Context, filter LeadFilter) ([]*models.LeadWithQualification, int, error)

	// ImportCSV parses and bulk-inserts leads, returning the imported count.
	ImportCSV(ctx context.Context, text string) (int, error)

	// ExportCSV returns the download filename and CSV content.
	ExportCSV(ctx context.Context) (string, string, error)
}

type leadService struct {
	repo   repositories.LeadRepository
	cache  *cache.Cache
	deps   events.Dependencies
	now    func() time.Time
	logger *zap.Logger
}

// NewLeadService creates a new LeadService.
func NewLeadService(repo repositories.LeadRepository, c *cache.Cache, deps events.Dependencies, logger *zap.Logger) LeadService {
	return &leadService{
		repo:   repo,
		cache:  c,
		deps:   deps,
		now:    time.Now,
		logger: logger.Named("lead-service"),
	}
}

var _ LeadService = (*leadService)(nil)

func (s *leadService) List(ctx context.Context, filter LeadFilter) ([]*models.LeadWithQualification, int, error) {
	leads, err := s.allLeads(ctx)
	if err != nil {
		return nil, 0, err
	}

	filtered := make([]*models.LeadWithQualification, 0, len(leads))
	for _, lead := range leads {
		if matchesFilter(lead, filter) {
			filtered = append(filtered, lead)
		}
	}
	total := len(filtered)

	if filter.Offset > 0 {
		if filter.Offset >= len(filtered) {
			filtered = nil
		} else {
			filtered = filtered[filter.Offset:]
		}
	}
	if filter.Limit > 0 && filter.Limit < len(filtered) {
		filtered = filtered[:filter.Limit]
	}

	return filtered, total, nil
}

func (s *leadService) ImportCSV(ctx context.Context, text string) (int, error) {
	leads, err := csvio.ImportLeads(text)
	if err != nil {
		return 0, err
	}

	count, err := s.repo.BulkInsert(ctx, leads)
	if err != nil {
		s.logger.Error("Failed to import leads", zap.Int("rows", len(leads)), zap.Error(err))
		return 0, err
	}

	// A direct write bypasses the change stream on some deployments, so
	// invalidate exactly what an insert event for incoming_leads would.
	for _, prefix := range s.deps.PrefixesFor(models.TableIncomingLeads) {
		s.cache.InvalidatePrefix(prefix)
	}

	s.logger.Info("Imported leads from CSV", zap.Int("count", count))
	return count, nil
}

func (s *leadService) ExportCSV(ctx context.Context) (string, string, error) {
	withQual, err := s.allLeads(ctx)
	if err != nil {
		return "", "", err
	}
	if len(withQual) == 0 {
		return "", "", apperrors.ErrNoLeads
	}

	leads := make([]*models.Lead, len(withQual))
	for i, l := range withQual {
		leads[i] = &l.Lead
	}

	return csvio.ExportFilename(s.now()), csvio.ExportLeads(leads), nil
}

// allLeads serves the cached unfiltered lead list, newest first.
func (s *leadService) allLeads(ctx context.Context) ([]*models.LeadWithQualification, error) {
	value, err := s.cache.Get(ctx, cache.KeyLeadsWithQualification, func(ctx context.Context) (interface{}, error) {
		return s.repo.GetAllWithQualification(ctx)
	})
	if err != nil {
		s.logger.Error("Failed to load leads", zap.Error(err))
		return nil, err
	}
	return value.([]*models.LeadWithQualification), nil
}

func matchesFilter(lead *models.LeadWithQualification, filter LeadFilter) bool {
	if filter.Source != "" && deref(lead.LeadSource) != filter.Source {
		return false
	}
	if filter.Industry != "" && deref(lead.IndustrySector) != filter.Industry {
		return false
	}
	if filter.Status != "" && !strings.EqualFold(deref(lead.Status), filter.Status) {
		return false
	}
	if filter.Query != "" {
		q := strings.ToLower(filter.Query)
		if !strings.Contains(strings.ToLower(deref(lead.CompanyName)), q) &&
			!strings.Contains(strings.ToLower(deref(lead.ContactName)), q) &&
			!strings.Contains(strings.ToLower(deref(lead.EmailAddress)), q) {
			return false
		}
	}
	return true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
