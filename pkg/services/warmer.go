package services

import (
	"context"
	"strings"

	"github.com/leadpilot-inc/lead-engine/pkg/analytics"
	"github.com/leadpilot-inc/lead-engine/pkg/cache"
)

// CacheWarmer re-computes an invalidated aggregate in the background so the
// next dashboard read hits a warm cache. It implements events.Refresher; its
// errors are logged by the dispatcher and never surfaced, in contrast to the
// strict error propagation on foreground reads.
type CacheWarmer struct {
	dashboard     DashboardService
	leads         LeadService
	conversations ConversationService
	appointments  AppointmentService
}

// NewCacheWarmer creates a warmer over the cached services.
func NewCacheWarmer(
	dashboard DashboardService,
	leads LeadService,
	conversations ConversationService,
	appointments AppointmentService,
) *CacheWarmer {
	return &CacheWarmer{
		dashboard:     dashboard,
		leads:         leads,
		conversations: conversations,
		appointments:  appointments,
	}
}

// Refresh re-fetches the aggregate behind one cache key prefix.
func (w *CacheWarmer) Refresh(ctx context.Context, prefix string) error {
	switch {
	case prefix == cache.KeyDashboardKPIs:
		_, err := w.dashboard.GetKPIs(ctx)
		return err
	case prefix == cache.KeyLeadCategories:
		_, err := w.dashboard.GetCategories(ctx)
		return err
	case prefix == cache.KeyLeadSourcePerformance:
		_, err := w.dashboard.GetSourcePerformance(ctx)
		return err
	case strings.HasPrefix(prefix, cache.KeyLeadVolumePrefix):
		// Warm the default dashboard range; other ranges repopulate lazily.
		_, err := w.dashboard.GetVolumeByDate(ctx, analytics.RangeThisWeek)
		return err
	case prefix == cache.KeyLeadsWithQualification:
		_, _, err := w.leads.List(ctx, LeadFilter{})
		return err
	case prefix == cache.KeyConversations:
		_, err := w.conversations.List(ctx)
		return err
	case prefix == cache.KeyAppointments:
		_, err := w.appointments.List(ctx)
		return err
	}
	return nil
}
