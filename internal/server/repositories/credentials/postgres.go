package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ericmlantz/backend/internal/common"
	"github.com/ericmlantz/backend/internal/dbx"
	"github.com/ericmlantz/backend/internal/server/models"
)

// PostgresRepository keeps credentials in the users / restaurants tables.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, variant models.Variant, email string) (*models.Credentials, error) {
	if !variant.Valid() {
		return nil, common.ErrorValidation
	}

	query := fmt.Sprintf(
		`SELECT id, email, hashed_password, created_at FROM %s
		 WHERE email = $1`, variant.Collection())

	c := &models.Credentials{Variant: variant}
	err := r.db.QueryRowContext(ctx, query, email).Scan(&c.ID, &c.Email, &c.HashedPassword, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Credentials) error {
	if !c.Variant.Valid() {
		return common.ErrorValidation
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (id, email, hashed_password)
		 VALUES ($1, $2, $3)
		 RETURNING created_at`, c.Variant.Collection())

	err := r.db.QueryRowContext(ctx, query, c.ID, c.Email, c.HashedPassword).Scan(&c.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
