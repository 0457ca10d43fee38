// Package users persists diner accounts and their profile fields.
package users

import (
	"context"

	"github.com/ericmlantz/backend/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context, id string) (*models.User, error)
	// Update replaces every profile field of id and returns the stored record.
	// Matches are left untouched.
	Update(ctx context.Context, id string, p models.UserProfile) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	ListByZipcode(ctx context.Context, zipcode string) ([]*models.User, error)
}
