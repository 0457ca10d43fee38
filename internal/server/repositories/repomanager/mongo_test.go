package repomanager

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoManager(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("ensure indexes", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)

		require.NoError(mt, FromDatabase(mt.DB).EnsureIndexes(context.Background()))
	})

	mt.Run("index error names the collection", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    85,
			Name:    "IndexOptionsConflict",
			Message: "index exists with different options",
		}))

		err := FromDatabase(mt.DB).EnsureIndexes(context.Background())
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "users indexes")
	})

	mt.Run("ping", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		require.NoError(mt, FromDatabase(mt.DB).Ping(context.Background()))
	})

	mt.Run("vends repositories", func(mt *mtest.T) {
		var m RepositoryManager = FromDatabase(mt.DB)
		assert.NotNil(mt, m.Credentials())
		assert.NotNil(mt, m.Users())
		assert.NotNil(mt, m.Restaurants())
		assert.NotNil(mt, m.Matches())
		assert.NotNil(mt, m.Messages())
	})
}
