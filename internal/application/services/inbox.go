package services

import (
	"context"
	"fmt"

	"github.com/quickdesk/core/internal/domain/entities"
	"github.com/quickdesk/core/internal/infrastructure/logger"
	"github.com/quickdesk/core/internal/ports"
)

// InboxService loads the conversation summaries shown in the inbox list.
// The engine treats them as read-only; selecting one opens a conversation
// view backed by the ConversationStore.
type InboxService struct {
	api    ports.ChatAPI
	logger *logger.Logger
}

// NewInboxService creates a new inbox service
func NewInboxService(api ports.ChatAPI, log *logger.Logger) *InboxService {
	return &InboxService{
		api:    api,
		logger: log.WithComponent("inbox"),
	}
}

// LoadThreads fetches the inbox summaries. A failed load leaves the list
// empty and surfaces the error; there is no automatic retry.
func (s *InboxService) LoadThreads(ctx context.Context) ([]entities.Thread, error) {
	threads, err := s.api.FetchInbox(ctx)
	if err != nil {
		s.logger.Errorw("Failed to fetch inbox", "error", err)
		return nil, fmt.Errorf("fetch inbox: %w", err)
	}

	return threads, nil
}
