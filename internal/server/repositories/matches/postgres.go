package matches

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ericmlantz/backend/internal/common"
	"github.com/ericmlantz/backend/internal/dbx"
	"github.com/ericmlantz/backend/internal/server/models"
)

// PostgresRepository keeps match entries in the matches table, one row per
// entry, ordered by seq. It needs the pool itself to open transactions.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, owner models.Variant, ownerID string, m models.Match) ([]models.Match, error) {
	if !owner.Valid() {
		return nil, common.ErrorValidation
	}

	var result []models.Match
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := lockOwner(ctx, tx, owner, ownerID); err != nil {
			return err
		}
		if err := insert(ctx, tx, owner, ownerID, m); err != nil {
			return err
		}

		var err error
		result, err = list(ctx, tx, owner, ownerID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PostgresRepository) AppendPair(ctx context.Context, userID, restID string) (*models.MatchPair, error) {
	pair := &models.MatchPair{}

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		// users before restaurants, always, so concurrent pairs cannot deadlock
		if err := lockOwner(ctx, tx, models.VariantUser, userID); err != nil {
			return err
		}
		if err := lockOwner(ctx, tx, models.VariantRestaurant, restID); err != nil {
			return err
		}

		if err := insert(ctx, tx, models.VariantUser, userID, models.Match{RestID: restID}); err != nil {
			return err
		}
		if err := insert(ctx, tx, models.VariantRestaurant, restID, models.Match{UserID: userID}); err != nil {
			return err
		}

		var err error
		if pair.UserMatches, err = list(ctx, tx, models.VariantUser, userID); err != nil {
			return err
		}
		pair.RestaurantMatches, err = list(ctx, tx, models.VariantRestaurant, restID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return pair, nil
}

func (r *PostgresRepository) List(ctx context.Context, owner models.Variant, ownerID string) ([]models.Match, error) {
	if !owner.Valid() {
		return nil, common.ErrorValidation
	}
	return list(ctx, r.db, owner, ownerID)
}

func lockOwner(ctx context.Context, tx dbx.DBTX, owner models.Variant, ownerID string) error {
	query := fmt.Sprintf(`SELECT id FROM %s WHERE id = $1 FOR UPDATE`, owner.Collection())

	var id string
	if err := tx.QueryRowContext(ctx, query, ownerID).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func insert(ctx context.Context, tx dbx.DBTX, owner models.Variant, ownerID string, m models.Match) error {
	query :=
		`INSERT INTO matches (owner_variant, owner_id, rest_id, user_id)
		 VALUES ($1, $2, $3, $4)`

	if _, err := tx.ExecContext(ctx, query, string(owner), ownerID, m.RestID, m.UserID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func list(ctx context.Context, db dbx.DBTX, owner models.Variant, ownerID string) ([]models.Match, error) {
	query :=
		`SELECT rest_id, user_id FROM matches
		 WHERE owner_variant = $1 AND owner_id = $2
		 ORDER BY seq`

	rows, err := db.QueryContext(ctx, query, string(owner), ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Match{}
	for rows.Next() {
		var m models.Match
		if err := rows.Scan(&m.RestID, &m.UserID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
