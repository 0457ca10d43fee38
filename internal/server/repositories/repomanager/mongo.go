package repomanager

import (
	"context"
	"fmt"

	"github.com/ericmlantz/backend/internal/server/models"
	"github.com/ericmlantz/backend/internal/server/repositories/credentials"
	"github.com/ericmlantz/backend/internal/server/repositories/matches"
	"github.com/ericmlantz/backend/internal/server/repositories/messages"
	"github.com/ericmlantz/backend/internal/server/repositories/restaurants"
	"github.com/ericmlantz/backend/internal/server/repositories/users"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoRepositoryManager vends MongoDB-backed repositories sharing one client.
type MongoRepositoryManager struct {
	client *mongo.Client
	db     *mongo.Database
}

// mongoConnect is a seam for testing mongo.Connect.
var mongoConnect = func(ctx context.Context, opts ...*options.ClientOptions) (*mongo.Client, error) {
	return mongo.Connect(ctx, opts...)
}

// NewMongoRepositoryManager connects, pings the primary and creates the
// indexes the repositories rely on.
func NewMongoRepositoryManager(ctx context.Context, uri, database string) (*MongoRepositoryManager, error) {
	client, err := mongoConnect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect error: %w", err)
	}

	m := FromDatabase(client.Database(database))

	if err := m.Ping(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping error: %w", err)
	}

	if err := m.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo index error: %w", err)
	}

	return m, nil
}

// FromDatabase wraps an already connected database without touching indexes.
func FromDatabase(db *mongo.Database) *MongoRepositoryManager {
	return &MongoRepositoryManager{client: db.Client(), db: db}
}

// EnsureIndexes creates the unique email and id indexes per account
// collection and the conversation index on messages. Existing indexes are kept.
func (m *MongoRepositoryManager) EnsureIndexes(ctx context.Context) error {
	for _, v := range []models.Variant{models.VariantUser, models.VariantRestaurant} {
		_, err := m.db.Collection(v.Collection()).Indexes().CreateMany(ctx, []mongo.IndexModel{
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: v.IDField(), Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "zipcode", Value: 1}}},
		})
		if err != nil {
			return fmt.Errorf("%s indexes: %w", v.Collection(), err)
		}
	}

	_, err := m.db.Collection("messages").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "from_userId", Value: 1}, {Key: "to_restId", Value: 1}, {Key: "_id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("messages indexes: %w", err)
	}

	return nil
}

func (m *MongoRepositoryManager) Credentials() credentials.Repository {
	return credentials.NewMongoRepository(m.db)
}

func (m *MongoRepositoryManager) Users() users.Repository {
	return users.NewMongoRepository(m.db)
}

func (m *MongoRepositoryManager) Restaurants() restaurants.Repository {
	return restaurants.NewMongoRepository(m.db)
}

func (m *MongoRepositoryManager) Matches() matches.Repository {
	return matches.NewMongoRepository(m.db)
}

func (m *MongoRepositoryManager) Messages() messages.Repository {
	return messages.NewMongoRepository(m.db)
}

func (m *MongoRepositoryManager) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
