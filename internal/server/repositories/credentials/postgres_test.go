package credentials

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ericmlantz/backend/internal/common"
	"github.com/ericmlantz/backend/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestPostgres_FindByEmail_User(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*email,\s*hashed_password,\s*created_at\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`
	now := time.Now()
	mock.ExpectQuery(q).
		WithArgs("a@b.c").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "hashed_password", "created_at"}).
			AddRow("u-1", "a@b.c", []byte("hash"), now))

	got, err := repo.FindByEmail(context.Background(), models.VariantUser, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID)
	assert.Equal(t, models.VariantUser, got.Variant)
	assert.Equal(t, []byte("hash"), got.HashedPassword)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_FindByEmail_RestaurantTable(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+restaurants\s+WHERE\s+email`).
		WithArgs("r@b.c").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "hashed_password", "created_at"}).
			AddRow("r-1", "r@b.c", []byte("hash"), time.Now()))

	got, err := repo.FindByEmail(context.Background(), models.VariantRestaurant, "r@b.c")
	require.NoError(t, err)
	assert.Equal(t, "r-1", got.ID)
	assert.Equal(t, models.VariantRestaurant, got.Variant)
}

func TestPostgres_FindByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+users`).WithArgs("x@y.z").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), models.VariantUser, "x@y.z")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgres_FindByEmail_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+users`).WithArgs("x@y.z").WillReturnError(errors.New("db down"))

	_, err := repo.FindByEmail(context.Background(), models.VariantUser, "x@y.z")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestPostgres_FindByEmail_InvalidVariant(t *testing.T) {
	repo, _, db := newRepoWithMock(t)
	defer db.Close()

	_, err := repo.FindByEmail(context.Background(), models.Variant("admin"), "x@y.z")
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestPostgres_Create_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+restaurants\s*\(id,\s*email,\s*hashed_password\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+created_at\s*$`
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(q).
		WithArgs("r-1", "r@b.c", []byte("hash")).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	c := &models.Credentials{ID: "r-1", Variant: models.VariantRestaurant, Email: "r@b.c", HashedPassword: []byte("hash")}
	require.NoError(t, repo.Create(context.Background(), c))
	assert.Equal(t, now, c.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Create_Duplicate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WithArgs("u-1", "a@b.c", []byte("hash")).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &models.Credentials{ID: "u-1", Variant: models.VariantUser, Email: "a@b.c", HashedPassword: []byte("hash")})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestPostgres_Create_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WithArgs("u-1", "a@b.c", []byte("hash")).
		WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &models.Credentials{ID: "u-1", Variant: models.VariantUser, Email: "a@b.c", HashedPassword: []byte("hash")})
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorAlreadyExists)
	assert.Contains(t, err.Error(), "db error")
}
