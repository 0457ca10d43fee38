// Package credentials stores the login material of both account variants.
// Email uniqueness per variant is enforced by the storage layer itself.
package credentials

import (
	"context"

	"github.com/ericmlantz/backend/internal/server/models"
)

type Repository interface {
	// FindByEmail returns common.ErrorNotFound when no account of variant has email.
	FindByEmail(ctx context.Context, variant models.Variant, email string) (*models.Credentials, error)
	// Create inserts a new account; a duplicate email yields common.ErrorAlreadyExists.
	Create(ctx context.Context, c *models.Credentials) error
}
