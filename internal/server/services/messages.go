package services

import (
	"context"
	"time"

	"github.com/ericmlantz/backend/internal/common"
	"github.com/ericmlantz/backend/internal/server/models"
	"github.com/ericmlantz/backend/internal/server/repositories/messages"
	"github.com/google/uuid"
)

type MessageService struct {
	messages messages.Repository
	now      func() time.Time
}

func NewMessageService(repo messages.Repository) *MessageService {
	return &MessageService{messages: repo, now: func() time.Time { return time.Now().UTC() }}
}

// Send stores m with a fresh id. The client's timestamp is kept when present.
// Whether the pair has matched is not checked.
func (s *MessageService) Send(ctx context.Context, m models.Message) (*models.Message, error) {
	if m.FromUserID == "" || m.ToRestID == "" {
		return nil, common.ErrorValidation
	}

	m.ID = uuid.NewString()
	if m.Timestamp.IsZero() {
		m.Timestamp = s.now()
	}

	if err := s.messages.Create(ctx, &m); err != nil {
		return nil, storageError(err)
	}
	return &m, nil
}

// Conversation returns the messages from userID to restID in insertion order.
func (s *MessageService) Conversation(ctx context.Context, userID, restID string) ([]*models.Message, error) {
	if userID == "" || restID == "" {
		return nil, common.ErrorValidation
	}
	l, err := s.messages.ListConversation(ctx, userID, restID)
	return l, storageError(err)
}
