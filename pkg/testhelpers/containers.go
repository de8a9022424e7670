package testhelpers

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/leadpilot-inc/lead-engine/pkg/database"
)

// leadStoreSchema mirrors the externally owned lead store tables the engine
// reads from. Kept here rather than in migrations because the engine never
// owns or migrates this schema in production.
const leadStoreSchema = `
CREATE EXTENSION IF NOT EXISTS "pgcrypto";

CREATE TABLE incoming_leads (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    company_name TEXT,
    contact_name TEXT,
    email_address TEXT,
    phone_number TEXT,
    lead_source TEXT,
    industry_sector TEXT,
    status TEXT,
    initial_interest_notes TEXT,
    website TEXT,
    created_at TIMESTAMPTZ DEFAULT now()
);

CREATE TABLE qualification_data (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    lead_id UUID REFERENCES incoming_leads(id),
    qualification_status TEXT,
    qualification_score INTEGER,
    lead_type TEXT,
    budget_range TEXT,
    authority_level TEXT,
    delivery_timeline TEXT,
    technical_requirements TEXT,
    decision_maker BOOLEAN,
    created_at TIMESTAMPTZ DEFAULT now()
);

CREATE TABLE call_logs_activity (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    lead_id UUID REFERENCES incoming_leads(id),
    call_duration INTEGER,
    call_status TEXT,
    call_type TEXT,
    sentiment_score TEXT,
    call_summary TEXT,
    call_recording_url TEXT,
    next_action_required TEXT,
    assigned_sales_rep TEXT,
    call_timestamp TIMESTAMPTZ DEFAULT now()
);

CREATE TABLE appointment_details (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    lead_id UUID REFERENCES incoming_leads(id),
    lead_name TEXT,
    lead_email TEXT,
    date TEXT,
    start_time TEXT,
    end_time TEXT
);

CREATE TABLE follow_up (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    lead_id UUID REFERENCES incoming_leads(id),
    followup_type TEXT,
    status TEXT,
    scheduled_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ DEFAULT now()
);
`

// LeadStoreDB holds a shared test database container and connection.
type LeadStoreDB struct {
	Container testcontainers.Container
	DB        *database.DB
	ConnStr   string
}

var (
	sharedLeadStore     *LeadStoreDB
	sharedLeadStoreOnce sync.Once
	sharedLeadStoreErr  error
)

// GetLeadStore returns a shared PostgreSQL container with the lead store
// schema applied. The container is created once and reused across all tests
// in the run.
func GetLeadStore(t *testing.T) *LeadStoreDB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}

	sharedLeadStoreOnce.Do(func() {
		sharedLeadStore, sharedLeadStoreErr = setupLeadStore()
	})

	if sharedLeadStoreErr != nil {
		t.Fatalf("Failed to setup test database: %v", sharedLeadStoreErr)
	}

	return sharedLeadStore
}

func setupLeadStore() (*LeadStoreDB, error) {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("leadpilot_test"),
		tcpostgres.WithUsername("leadpilot"),
		tcpostgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start test container: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            connStr,
		MaxConnections: 5,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	if _, err := db.Exec(ctx, leadStoreSchema); err != nil {
		return nil, fmt.Errorf("failed to apply lead store schema: %w", err)
	}

	return &LeadStoreDB{
		Container: container,
		DB:        db,
		ConnStr:   connStr,
	}, nil
}

// Truncate empties the lead store tables between tests.
func (l *LeadStoreDB) Truncate(t *testing.T) {
	t.Helper()

	_, err := l.DB.Exec(context.Background(),
		"TRUNCATE follow_up, appointment_details, call_logs_activity, qualification_data, incoming_leads CASCADE")
	if err != nil {
		t.Fatalf("failed to truncate lead store tables: %v", err)
	}
}
