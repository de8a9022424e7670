package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/leadpilot-inc/lead-engine/pkg/analytics"
	"github.com/leadpilot-inc/lead-engine/pkg/cache"
	"github.com/leadpilot-inc/lead-engine/pkg/models"
)

func fixedNow() time.Time {
	return time.Date(2025, time.January, 15, 14, 30, 0, 0, time.UTC)
}

func newTestDashboardService(leadRepo *mockLeadRepo, qualRepo *mockQualRepo, callRepo *mockCallRepo) (*dashboardService, *cache.Cache) {
	c := cache.New()
	svc := NewDashboardService(leadRepo, qualRepo, callRepo, c, time.UTC, zap.NewNop()).(*dashboardService)
	svc.now = fixedNow
	return svc, c
}

func TestDashboardService_GetKPIs(t *testing.T) {
	leadRepo := &mockLeadRepo{total: 40, converted: 10}
	qualRepo := &mockQualRepo{qualified: 25}
	callRepo := &mockCallRepo{avgDuration: 95, active: 3}
	svc, _ := newTestDashboardService(leadRepo, qualRepo, callRepo)

	kpis, err := svc.GetKPIs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 95, kpis.AvgResponseTime)
	assert.Equal(t, 3, kpis.ActiveCallsCount)
	assert.Equal(t, 40, kpis.TotalLeads)
	assert.Equal(t, 25, kpis.QualifiedLeads)
	assert.Equal(t, 63, kpis.QualificationRate) // round(25/40*100)
	assert.Equal(t, 25, kpis.ConversionRate)
}

func TestDashboardService_GetKPIs_EmptyStore(t *testing.T) {
	svc, _ := newTestDashboardService(&mockLeadRepo{}, &mockQualRepo{}, &mockCallRepo{})

	kpis, err := svc.GetKPIs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, kpis.TotalLeads)
	assert.Equal(t, 0, kpis.QualificationRate)
	assert.Equal(t, 0, kpis.ConversionRate)
}

func TestDashboardService_GetKPIs_QueryError(t *testing.T) {
	wantErr := errors.New("connection refused")
	svc, _ := newTestDashboardService(&mockLeadRepo{err: wantErr}, &mockQualRepo{}, &mockCallRepo{})

	_, err := svc.GetKPIs(context.Background())
	assert.ErrorIs(t, err, wantErr)
}

func TestDashboardService_GetVolumeByDate(t *testing.T) {
	inRange := time.Date(2025, time.January, 13, 9, 0, 0, 0, time.UTC)
	outOfRange := time.Date(2025, time.January, 2, 9, 0, 0, 0, time.UTC)
	source := "Website"

	leadRepo := &mockLeadRepo{volume: []*models.Lead{
		{ID: uuid.New(), CreatedAt: &inRange, LeadSource: &source},
		{ID: uuid.New(), CreatedAt: &outOfRange, LeadSource: &source},
	}}
	svc, _ := newTestDashboardService(leadRepo, &mockQualRepo{}, &mockCallRepo{})

	buckets, err := svc.GetVolumeByDate(context.Background(), analytics.RangeThisWeek)
	require.NoError(t, err)

	// Sunday Jan 12 through Wednesday Jan 15.
	require.Len(t, buckets, 4)
	assert.Equal(t, 1, buckets[1].Leads)
	assert.Equal(t, 0, buckets[0].Leads+buckets[2].Leads+buckets[3].Leads)
}

func TestDashboardService_GetVolumeByDate_UnknownRange(t *testing.T) {
	svc, _ := newTestDashboardService(&mockLeadRepo{}, &mockQualRepo{}, &mockCallRepo{})

	_, err := svc.GetVolumeByDate(context.Background(), analytics.RangeSelector("next_week"))
	assert.Error(t, err)
}

func TestDashboardService_GetVolumeByDate_CachesPerRange(t *testing.T) {
	leadRepo := &mockLeadRepo{}
	svc, c := newTestDashboardService(leadRepo, &mockQualRepo{}, &mockCallRepo{})
	ctx := context.Background()

	_, err := svc.GetVolumeByDate(ctx, analytics.RangeToday)
	require.NoError(t, err)
	_, err = svc.GetVolumeByDate(ctx, analytics.RangeThisMonth)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		cache.VolumeKey(string(analytics.RangeToday)),
		cache.VolumeKey(string(analytics.RangeThisMonth)),
	}, c.Keys())
}

func TestDashboardService_GetCategories(t *testing.T) {
	hot := "Hot"
	blank := ""
	qualRepo := &mockQualRepo{categories: []*models.Qualification{
		{LeadType: &hot},
		{LeadType: &blank},
		{},
	}}
	svc, _ := newTestDashboardService(&mockLeadRepo{}, qualRepo, &mockCallRepo{})

	counts, err := svc.GetCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, 4)
	assert.Equal(t, models.CategoryHot, counts[0].Category)
	assert.Equal(t, 1, counts[0].Count)
}

func TestDashboardService_GetSourcePerformance(t *testing.T) {
	source := "Referral"
	lead := &models.Lead{ID: uuid.New(), LeadSource: &source}
	status := models.QualificationStatusQualified

	leadRepo := &mockLeadRepo{perf: []*models.Lead{lead}}
	qualRepo := &mockQualRepo{outcomes: []*models.Qualification{
		{LeadID: &lead.ID, QualificationStatus: &status},
	}}
	svc, _ := newTestDashboardService(leadRepo, qualRepo, &mockCallRepo{})

	stats, err := svc.GetSourcePerformance(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "Referral", stats[0].Source)
	assert.Equal(t, 100, stats[0].Rate)
}
