package restaurants

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

const selectRestaurants = `SELECT r.id, r.email, r.rest_name, r.rest_logo, r.rest_photo1, r.rest_description,
       r.rest_url, r.rest_phone, r.food_type, r.rest_street, r.rest_apt, r.rest_city,
       r.rest_state, r.zipcode, r.created_at,
       COALESCE(json_agg(json_build_object('rest_id', NULLIF(m.rest_id, ''), 'user_id', NULLIF(m.user_id, ''))
                ORDER BY m.seq) FILTER (WHERE m.seq IS NOT NULL), '[]')
  FROM restaurants r
  LEFT JOIN matches m ON m.owner_variant = 'restaurant' AND m.owner_id = r.id
 %s
 GROUP BY r.id
 ORDER BY r.created_at, r.id`

type scanner interface {
	Scan(dest ...any) error
}

func scanRestaurant(s scanner) (*models.Restaurant, error) {
	r := &models.Restaurant{}
	var matches []byte
	err := s.Scan(&r.ID, &r.Email, &r.Name, &r.Logo, &r.Photo, &r.Description,
		&r.URL, &r.Phone, &r.FoodType, &r.Street, &r.Apt, &r.City,
		&r.State, &r.Zipcode, &r.CreatedAt, &matches)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(matches, &r.Matches); err != nil {
		return nil, fmt.Errorf("decode matches: %w", err)
	}
	r.Matches = models.NonNilMatches(r.Matches)
	return r, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Restaurant, error) {
	query := fmt.Sprintf(selectRestaurants, "WHERE r.id = $1")

	rest, err := scanRestaurant(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return rest, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, p models.RestaurantProfile) (*models.Restaurant, error) {
	query :=
		`UPDATE restaurants
		    SET rest_name = $2, rest_logo = $3, rest_photo1 = $4, rest_description = $5,
		        rest_url = $6, rest_phone = $7, food_type = $8, rest_street = $9,
		        rest_apt = $10, rest_city = $11, rest_state = $12, zipcode = $13
		  WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id,
		p.Name, p.Logo, p.Photo, p.Description, p.URL, p.Phone, p.FoodType,
		p.Street, p.Apt, p.City, p.State, p.Zipcode)
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

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Restaurant, error) {
	return r.list(ctx, fmt.Sprintf(selectRestaurants, ""))
}

func (r *PostgresRepository) ListByZipcode(ctx context.Context, zipcode string) ([]*models.Restaurant, error) {
	return r.list(ctx, fmt.Sprintf(selectRestaurants, "WHERE r.zipcode = $1"), zipcode)
}

func (r *PostgresRepository) ListByIDs(ctx context.Context, ids []string) ([]*models.Restaurant, error) {
	if len(ids) == 0 {
		return []*models.Restaurant{}, nil
	}

	// One array parameter keeps the statement within the bind limit for any
	// number of ids.
	return r.list(ctx, fmt.Sprintf(selectRestaurants, "WHERE r.id = ANY($1)"), ids)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Restaurant, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Restaurant{}
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, rest)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
