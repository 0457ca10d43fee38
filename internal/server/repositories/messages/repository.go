// Package messages stores conversation messages addressed by the directed
// (from user, to restaurant) pair.
package messages

import (
	"context"

	"github.com/ericmlantz/backend/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, m *models.Message) error
	// ListConversation returns the messages from userID to restID in the order
	// they were stored.
	ListConversation(ctx context.Context, userID, restID string) ([]*models.Message, error)
}
