// Package restaurants persists venue accounts and their profile fields.
package restaurants

import (
	"context"

	"github.com/ericmlantz/backend/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context, id string) (*models.Restaurant, error)
	// Update replaces every profile field of id and returns the stored record.
	Update(ctx context.Context, id string, p models.RestaurantProfile) (*models.Restaurant, error)
	List(ctx context.Context) ([]*models.Restaurant, error)
	ListByZipcode(ctx context.Context, zipcode string) ([]*models.Restaurant, error)
	// ListByIDs returns the restaurants whose id is in ids; unknown ids are skipped.
	ListByIDs(ctx context.Context, ids []string) ([]*models.Restaurant, error)
}
