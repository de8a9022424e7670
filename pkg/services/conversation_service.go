package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/leadpilot-inc/lead-engine/pkg/cache"
	"github.com/leadpilot-inc/lead-engine/pkg/models"
	"github.com/leadpilot-inc/lead-engine/pkg/repositories"
)

// ConversationService serves the call log listing with lead contact info.
type ConversationService interface {
	List(ctx context.Context) ([]*models.Conversation, error)
}

type conversationService struct {
	repo   repositories.CallLogRepository
	cache  *cache.Cache
	logger *zap.Logger
}

// NewConversationService creates a new ConversationService.
func NewConversationService(repo repositories.CallLogRepository, c *cache.Cache, logger *zap.Logger) ConversationService {
	return &conversationService{
		repo:   repo,
		cache:  c,
		logger: logger.Named("conversation-service"),
	}
}

var _ ConversationService = (*conversationService)(nil)

func (s *conversationService) List(ctx context.Context) ([]*models.Conversation, error) {
	value, err := s.cache.Get(ctx, cache.KeyConversations, func(ctx context.Context) (interface{}, error) {
		return s.repo.GetConversations(ctx)
	})
	if err != nil {
		s.logger.Error("Failed to load conversations", zap.Error(err))
		return nil, err
	}
	return value.([]*models.Conversation), nil
}
