package credentials

import (
	"context"
	"testing"
	"time"

	"github.com/ericmlantz/backend/internal/common"
	"github.com/ericmlantz/backend/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongo_FindByEmail(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("user found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "app-data.users", mtest.FirstBatch, bson.D{
			{Key: "user_id", Value: "u-1"},
			{Key: "email", Value: "a@b.c"},
			{Key: "hashed_password", Value: []byte("hash")},
			{Key: "created_at", Value: time.Now()},
		}))

		got, err := NewMongoRepository(mt.DB).FindByEmail(context.Background(), models.VariantUser, "a@b.c")
		require.NoError(mt, err)
		assert.Equal(mt, "u-1", got.ID)
		assert.Equal(mt, []byte("hash"), got.HashedPassword)
	})

	mt.Run("restaurant id field", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "app-data.restaurants", mtest.FirstBatch, bson.D{
			{Key: "rest_id", Value: "r-1"},
			{Key: "email", Value: "r@b.c"},
			{Key: "hashed_password", Value: []byte("hash")},
		}))

		got, err := NewMongoRepository(mt.DB).FindByEmail(context.Background(), models.VariantRestaurant, "r@b.c")
		require.NoError(mt, err)
		assert.Equal(mt, "r-1", got.ID)
		assert.Equal(mt, models.VariantRestaurant, got.Variant)
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "app-data.users", mtest.FirstBatch))

		_, err := NewMongoRepository(mt.DB).FindByEmail(context.Background(), models.VariantUser, "x@y.z")
		assert.ErrorIs(mt, err, common.ErrorNotFound)
	})
}

func TestMongo_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		c := &models.Credentials{ID: "u-1", Variant: models.VariantUser, Email: "a@b.c", HashedPassword: []byte("hash")}
		require.NoError(mt, NewMongoRepository(mt.DB).Create(context.Background(), c))
		assert.False(mt, c.CreatedAt.IsZero())
	})

	mt.Run("duplicate email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		c := &models.Credentials{ID: "u-2", Variant: models.VariantUser, Email: "a@b.c", HashedPassword: []byte("hash")}
		err := NewMongoRepository(mt.DB).Create(context.Background(), c)
		assert.ErrorIs(mt, err, common.ErrorAlreadyExists)
	})

	mt.Run("invalid variant", func(mt *mtest.T) {
		err := NewMongoRepository(mt.DB).Create(context.Background(), &models.Credentials{Variant: "x"})
		assert.ErrorIs(mt, err, common.ErrorValidation)
	})
}
