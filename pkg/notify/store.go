package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/leadpilot-inc/lead-engine/pkg/models"
)

// Store persists the notification list as a single keyed blob.
type Store interface {
	Load(ctx context.Context) ([]models.Notification, error)
	Save(ctx context.Context, notifications []models.Notification) error
}

// RedisStore keeps the blob in Redis under a fixed key.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

var _ Store = (*RedisStore)(nil)

func (s *RedisStore) Load(ctx context.Context) ([]models.Notification, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load notifications from redis: %w", err)
	}

	var notifications []models.Notification
	if err := json.Unmarshal(raw, &notifications); err != nil {
		return nil, fmt.Errorf("malformed notification blob: %w", err)
	}
	return notifications, nil
}

func (s *RedisStore) Save(ctx context.Context, notifications []models.Notification) error {
	raw, err := json.Marshal(notifications)
	if err != nil {
		return fmt.Errorf("failed to marshal notifications: %w", err)
	}
	if err := s.client.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to save notifications to redis: %w", err)
	}
	return nil
}

// FileStore keeps the blob in a local JSON file. Used when Redis is not
// configured.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

var _ Store = (*FileStore)(nil)

func (s *FileStore) Load(_ context.Context) ([]models.Notification, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read notification file: %w", err)
	}

	var notifications []models.Notification
	if err := json.Unmarshal(raw, &notifications); err != nil {
		return nil, fmt.Errorf("malformed notification file: %w", err)
	}
	return notifications, nil
}

func (s *FileStore) Save(_ context.Context, notifications []models.Notification) error {
	raw, err := json.Marshal(notifications)
	if err != nil {
		return fmt.Errorf("failed to marshal notifications: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0600); err != nil {
		return fmt.Errorf("failed to write notification file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace notification file: %w", err)
	}
	return nil
}
