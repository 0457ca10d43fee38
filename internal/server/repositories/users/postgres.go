package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ericmlantz/backend/internal/common"
	"github.com/ericmlantz/backend/internal/dbx"
	"github.com/ericmlantz/backend/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// selectUsers aggregates each user's match list in insertion order.
const selectUsers = `SELECT u.id, u.email, u.first_name, u.dob_day, u.dob_month, u.dob_year,
       u.profile_photo, u.zipcode, u.created_at,
       COALESCE(json_agg(json_build_object('rest_id', NULLIF(m.rest_id, ''), 'user_id', NULLIF(m.user_id, ''))
                ORDER BY m.seq) FILTER (WHERE m.seq IS NOT NULL), '[]')
  FROM users u
  LEFT JOIN matches m ON m.owner_variant = 'user' AND m.owner_id = u.id
 %s
 GROUP BY u.id
 ORDER BY u.created_at, u.id`

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*models.User, error) {
	u := &models.User{}
	var matches []byte
	err := s.Scan(&u.ID, &u.Email, &u.FirstName, &u.DobDay, &u.DobMonth, &u.DobYear,
		&u.ProfilePhoto, &u.Zipcode, &u.CreatedAt, &matches)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(matches, &u.Matches); err != nil {
		return nil, fmt.Errorf("decode matches: %w", err)
	}
	u.Matches = models.NonNilMatches(u.Matches)
	return u, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.User, error) {
	query := fmt.Sprintf(selectUsers, "WHERE u.id = $1")

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return u, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, p models.UserProfile) (*models.User, error) {
	query :=
		`UPDATE users
		    SET first_name = $2, dob_day = $3, dob_month = $4, dob_year = $5,
		        profile_photo = $6, zipcode = $7
		  WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id,
		p.FirstName, p.DobDay, p.DobMonth, p.DobYear, p.ProfilePhoto, p.Zipcode)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return nil, common.ErrorNotFound
	}

	return r.Get(ctx, id)
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.User, error) {
	return r.list(ctx, fmt.Sprintf(selectUsers, ""))
}

func (r *PostgresRepository) ListByZipcode(ctx context.Context, zipcode string) ([]*models.User, error) {
	return r.list(ctx, fmt.Sprintf(selectUsers, "WHERE u.zipcode = $1"), zipcode)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
