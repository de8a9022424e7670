package notify

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadpilot-inc/lead-engine/pkg/models"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notifications.json")
	store := NewFileStore(path)
	ctx := context.Background()

	original := []models.Notification{
		{
			ID:          uuid.New(),
			LeadID:      uuid.New(),
			CompanyName: "Acme Corp",
			Timestamp:   time.Now().Truncate(time.Second),
			Read:        true,
		},
		{
			ID:          uuid.New(),
			LeadID:      uuid.New(),
			CompanyName: "Globex",
			Timestamp:   time.Now().Add(-time.Hour).Truncate(time.Second),
		},
	}

	require.NoError(t, store.Save(ctx, original))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	for i := range original {
		assert.Equal(t, original[i].ID, loaded[i].ID)
		assert.Equal(t, original[i].LeadID, loaded[i].LeadID)
		assert.Equal(t, original[i].CompanyName, loaded[i].CompanyName)
		assert.Equal(t, original[i].Read, loaded[i].Read)
		assert.True(t, original[i].Timestamp.Equal(loaded[i].Timestamp))
	}
}

func TestFileStore_LoadMissingFileReturnsEmpty(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "missing.json"))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestFileStore_LoadCorruptFileReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notifications.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := NewFileStore(path).Load(context.Background())
	assert.Error(t, err)
}

func TestFileStore_SaveOverwritesPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notifications.json")
	store := NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []models.Notification{
		{ID: uuid.New(), LeadID: uuid.New(), CompanyName: "Old"},
	}))
	require.NoError(t, store.Save(ctx, []models.Notification{}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
