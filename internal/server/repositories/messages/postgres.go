package messages

import (
	"context"
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

func (r *PostgresRepository) Create(ctx context.Context, m *models.Message) error {
	query :=
		`INSERT INTO messages (id, from_user_id, to_rest_id, body, sent_at)
		 VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query, m.ID, m.FromUserID, m.ToRestID, m.Body, m.Timestamp)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListConversation(ctx context.Context, userID, restID string) ([]*models.Message, error) {
	query :=
		`SELECT id, from_user_id, to_rest_id, body, sent_at FROM messages
		 WHERE from_user_id = $1 AND to_rest_id = $2
		 ORDER BY seq`

	rows, err := r.db.QueryContext(ctx, query, userID, restID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Message{}
	for rows.Next() {
		m := &models.Message{}
		if err := rows.Scan(&m.ID, &m.FromUserID, &m.ToRestID, &m.Body, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
