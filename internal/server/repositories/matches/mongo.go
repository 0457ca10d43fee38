package matches

import (
	"context"
	"errors"
	"fmt"

	"github.com/ericmlantz/backend/internal/common"
	"github.com/ericmlantz/backend/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// illegalOperation is returned by standalone servers for transactional commands.
const illegalOperation = 20

// MongoRepository keeps match lists embedded in the account documents, as the
// matches array.
type MongoRepository struct {
	db *mongo.Database
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{db: db}
}

type matchesDoc struct {
	Matches []models.Match `bson:"matches"`
}

// runInTransaction is a seam for tests; mock deployments cannot run sessions.
var runInTransaction = func(ctx context.Context, client *mongo.Client, fn func(ctx context.Context) (any, error)) (any, error) {
	sess, err := client.StartSession()
	if err != nil {
		return nil, err
	}
	defer sess.EndSession(ctx)

	return sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return fn(sc)
	})
}

func (r *MongoRepository) Append(ctx context.Context, owner models.Variant, ownerID string, m models.Match) ([]models.Match, error) {
	if !owner.Valid() {
		return nil, common.ErrorValidation
	}

	filter := bson.M{owner.IDField(): ownerID}
	update := bson.M{"$push": bson.M{"matches": m}}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"matches": 1})

	var doc matchesDoc
	if err := r.db.Collection(owner.Collection()).FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return models.NonNilMatches(doc.Matches), nil
}

func (r *MongoRepository) AppendPair(ctx context.Context, userID, restID string) (*models.MatchPair, error) {
	res, err := runInTransaction(ctx, r.db.Client(), func(ctx context.Context) (any, error) {
		return r.appendPair(ctx, userID, restID)
	})

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == illegalOperation {
		return r.appendPair(ctx, userID, restID)
	}
	if err != nil {
		return nil, err
	}

	return res.(*models.MatchPair), nil
}

// appendPair checks the restaurant first so the sequential path never leaves
// a user-side entry behind for a missing restaurant.
func (r *MongoRepository) appendPair(ctx context.Context, userID, restID string) (*models.MatchPair, error) {
	err := r.db.Collection(models.VariantRestaurant.Collection()).
		FindOne(ctx, bson.M{"rest_id": restID}, options.FindOne().SetProjection(bson.M{"rest_id": 1})).
		Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	userMatches, err := r.Append(ctx, models.VariantUser, userID, models.Match{RestID: restID})
	if err != nil {
		return nil, err
	}

	restMatches, err := r.Append(ctx, models.VariantRestaurant, restID, models.Match{UserID: userID})
	if err != nil {
		return nil, err
	}

	return &models.MatchPair{UserMatches: userMatches, RestaurantMatches: restMatches}, nil
}

func (r *MongoRepository) List(ctx context.Context, owner models.Variant, ownerID string) ([]models.Match, error) {
	if !owner.Valid() {
		return nil, common.ErrorValidation
	}

	opts := options.FindOne().SetProjection(bson.M{"matches": 1})

	var doc matchesDoc
	if err := r.db.Collection(owner.Collection()).FindOne(ctx, bson.M{owner.IDField(): ownerID}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return models.NonNilMatches(doc.Matches), nil
}
