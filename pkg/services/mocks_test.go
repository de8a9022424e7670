package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/leadpilot-inc/lead-engine/pkg/models"
)

type mockLeadRepo struct {
	withQual  []*models.LeadWithQualification
	volume    []*models.Lead
	perf      []*models.Lead
	total     int
	converted int
	inserted  int
	err       error

	withQualCalls int
	insertedRows  []models.NewLead
}

func (m *mockLeadRepo) GetAllWithQualification(ctx context.Context) ([]*models.LeadWithQualification, error) {
	m.withQualCalls++
	return m.withQual, m.err
}

func (m *mockLeadRepo) GetVolumeRows(ctx context.Context) ([]*models.Lead, error) {
	return m.volume, m.err
}

func (m *mockLeadRepo) GetPerformanceRows(ctx context.Context) ([]*models.Lead, error) {
	return m.perf, m.err
}

func (m *mockLeadRepo) CountAll(ctx context.Context) (int, error) {
	return m.total, m.err
}

func (m *mockLeadRepo) CountConverted(ctx context.Context) (int, error) {
	return m.converted, m.err
}

func (m *mockLeadRepo) BulkInsert(ctx context.Context, leads []models.NewLead) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.insertedRows = leads
	if m.inserted > 0 {
		return m.inserted, nil
	}
	return len(leads), nil
}

type mockQualRepo struct {
	outcomes   []*models.Qualification
	categories []*models.Qualification
	qualified  int
	err        error
}

func (m *mockQualRepo) GetOutcomeRows(ctx context.Context) ([]*models.Qualification, error) {
	return m.outcomes, m.err
}

func (m *mockQualRepo) GetCategoryRows(ctx context.Context) ([]*models.Qualification, error) {
	return m.categories, m.err
}

func (m *mockQualRepo) CountQualified(ctx context.Context) (int, error) {
	return m.qualified, m.err
}

type mockCallRepo struct {
	conversations []*models.Conversation
	avgDuration   int
	active        int
	err           error
}

func (m *mockCallRepo) GetConversations(ctx context.Context) ([]*models.Conversation, error) {
	return m.conversations, m.err
}

func (m *mockCallRepo) AverageDuration(ctx context.Context) (int, error) {
	return m.avgDuration, m.err
}

func (m *mockCallRepo) CountActive(ctx context.Context) (int, error) {
	return m.active, m.err
}

type mockAppointmentRepo struct {
	appointments []*models.Appointment
	err          error
}

func (m *mockAppointmentRepo) GetAll(ctx context.Context) ([]*models.Appointment, error) {
	return m.appointments, m.err
}

type mockFollowUpRepo struct {
	followUps []*models.FollowUp
	err       error
}

func (m *mockFollowUpRepo) GetByLeadID(ctx context.Context, leadID uuid.UUID) ([]*models.FollowUp, error) {
	return m.followUps, m.err
}
