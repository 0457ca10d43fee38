// Package matches stores the append-only match lists of users and restaurants.
package matches

import (
	"context"

	"github.com/ericmlantz/backend/internal/server/models"
)

type Repository interface {
	// Append adds m to the end of the owner's list and returns the whole list.
	// Entries are never deduplicated. A missing owner yields common.ErrorNotFound.
	Append(ctx context.Context, owner models.Variant, ownerID string, m models.Match) ([]models.Match, error)
	// AppendPair records a two-sided match: {rest_id} on the user and
	// {user_id} on the restaurant, both or neither.
	AppendPair(ctx context.Context, userID, restID string) (*models.MatchPair, error)
	List(ctx context.Context, owner models.Variant, ownerID string) ([]models.Match, error)
}
