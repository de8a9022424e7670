//go:build integration

package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadpilot-inc/lead-engine/pkg/models"
	"github.com/leadpilot-inc/lead-engine/pkg/testhelpers"
)

func insertLead(t *testing.T, store *testhelpers.LeadStoreDB, company, source, status string, createdAt time.Time) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := store.DB.QueryRow(context.Background(), `
		INSERT INTO incoming_leads (company_name, lead_source, status, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		company, source, status, createdAt).Scan(&id)
	require.NoError(t, err)
	return id
}

func insertQualification(t *testing.T, store *testhelpers.LeadStoreDB, leadID uuid.UUID, status, leadType string, createdAt time.Time) {
	t.Helper()

	_, err := store.DB.Exec(context.Background(), `
		INSERT INTO qualification_data (lead_id, qualification_status, lead_type, created_at)
		VALUES ($1, $2, $3, $4)`,
		leadID, status, leadType, createdAt)
	require.NoError(t, err)
}

func TestLeadRepository_GetAllWithQualification(t *testing.T) {
	store := testhelpers.GetLeadStore(t)
	store.Truncate(t)
	repo := NewLeadRepository(store.DB)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	oldID := insertLead(t, store, "Old Co", "Website", "new", now.Add(-time.Hour))
	newID := insertLead(t, store, "New Co", "Referral", "new", now)

	// Two qualification rows for one lead; only the first by created_at wins.
	insertQualification(t, store, newID, models.QualificationStatusQualified, "Hot", now.Add(-10*time.Minute))
	insertQualification(t, store, newID, "Pending", "Cold", now.Add(-5*time.Minute))

	leads, err := repo.GetAllWithQualification(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 2)

	// Newest lead first.
	assert.Equal(t, newID, leads[0].ID)
	assert.Equal(t, oldID, leads[1].ID)

	require.NotNil(t, leads[0].Qualification)
	assert.Equal(t, models.QualificationStatusQualified, *leads[0].Qualification.QualificationStatus)
	assert.Equal(t, "Hot", *leads[0].Qualification.LeadType)

	assert.Nil(t, leads[1].Qualification)
}

func TestLeadRepository_Counts(t *testing.T) {
	store := testhelpers.GetLeadStore(t)
	store.Truncate(t)
	repo := NewLeadRepository(store.DB)
	ctx := context.Background()

	now := time.Now().UTC()
	insertLead(t, store, "A", "Website", "new", now)
	insertLead(t, store, "B", "Website", "Closed Won", now)
	insertLead(t, store, "C", "Referral", "converted to customer", now)
	insertLead(t, store, "D", "Referral", "contacted", now)

	total, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, total)

	converted, err := repo.CountConverted(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, converted)
}

func TestLeadRepository_BulkInsert(t *testing.T) {
	store := testhelpers.GetLeadStore(t)
	store.Truncate(t)
	repo := NewLeadRepository(store.DB)
	ctx := context.Background()

	company := "Imported Co"
	email := "hello@imported.test"
	count, err := repo.BulkInsert(ctx, []models.NewLead{
		{CompanyName: &company, EmailAddress: &email, Status: "new"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	total, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	count, err = repo.BulkInsert(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
