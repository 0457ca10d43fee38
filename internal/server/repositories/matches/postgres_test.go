package matches

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ericmlantz/backend/internal/common"
	"github.com/ericmlantz/backend/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	lockUserQ = `SELECT\s+id\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s+FOR\s+UPDATE`
	lockRestQ = `SELECT\s+id\s+FROM\s+restaurants\s+WHERE\s+id\s*=\s*\$1\s+FOR\s+UPDATE`
	insertQ   = `(?s)^INSERT\s+INTO\s+matches\s*\(owner_variant,\s*owner_id,\s*rest_id,\s*user_id\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)$`
	listQ     = `(?s)SELECT\s+rest_id,\s*user_id\s+FROM\s+matches\s+WHERE\s+owner_variant\s*=\s*\$1\s+AND\s+owner_id\s*=\s*\$2\s+ORDER\s+BY\s+seq`
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestAppend_UserSide(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(lockUserQ).WithArgs("u-1").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("u-1"))
	mock.ExpectExec(insertQ).WithArgs("user", "u-1", "r-1", "").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(listQ).WithArgs("user", "u-1").
		WillReturnRows(sqlmock.NewRows([]string{"rest_id", "user_id"}).
			AddRow("r-1", "").
			AddRow("r-1", ""))
	mock.ExpectCommit()

	got, err := repo.Append(context.Background(), models.VariantUser, "u-1", models.Match{RestID: "r-1"})
	require.NoError(t, err)
	assert.Equal(t, []models.Match{{RestID: "r-1"}, {RestID: "r-1"}}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppend_OwnerMissingRollsBack(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(lockRestQ).WithArgs("r-x").WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Append(context.Background(), models.VariantRestaurant, "r-x", models.Match{UserID: "u-1"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppend_InsertErrorRollsBack(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(lockUserQ).WithArgs("u-1").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("u-1"))
	mock.ExpectExec(insertQ).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := repo.Append(context.Background(), models.VariantUser, "u-1", models.Match{RestID: "r-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppend_InvalidVariant(t *testing.T) {
	repo, _, db := newRepoWithMock(t)
	defer db.Close()

	_, err := repo.Append(context.Background(), models.Variant("x"), "id", models.Match{})
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestAppendPair_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(lockUserQ).WithArgs("u-1").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("u-1"))
	mock.ExpectQuery(lockRestQ).WithArgs("r-1").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("r-1"))
	mock.ExpectExec(insertQ).WithArgs("user", "u-1", "r-1", "").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(insertQ).WithArgs("restaurant", "r-1", "", "u-1").WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectQuery(listQ).WithArgs("user", "u-1").
		WillReturnRows(sqlmock.NewRows([]string{"rest_id", "user_id"}).AddRow("r-1", ""))
	mock.ExpectQuery(listQ).WithArgs("restaurant", "r-1").
		WillReturnRows(sqlmock.NewRows([]string{"rest_id", "user_id"}).AddRow("", "u-1"))
	mock.ExpectCommit()

	got, err := repo.AppendPair(context.Background(), "u-1", "r-1")
	require.NoError(t, err)
	assert.Equal(t, []models.Match{{RestID: "r-1"}}, got.UserMatches)
	assert.Equal(t, []models.Match{{UserID: "u-1"}}, got.RestaurantMatches)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppendPair_SecondInsertFailsRollsBack(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(lockUserQ).WithArgs("u-1").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("u-1"))
	mock.ExpectQuery(lockRestQ).WithArgs("r-1").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("r-1"))
	mock.ExpectExec(insertQ).WithArgs("user", "u-1", "r-1", "").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(insertQ).WithArgs("restaurant", "r-1", "", "u-1").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	_, err := repo.AppendPair(context.Background(), "u-1", "r-1")
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQ).WithArgs("user", "u-1").WillReturnRows(sqlmock.NewRows([]string{"rest_id", "user_id"}))

	got, err := repo.List(context.Background(), models.VariantUser, "u-1")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
