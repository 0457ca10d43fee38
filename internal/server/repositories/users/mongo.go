package users

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

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(models.VariantUser.Collection())}
}

var listSort = bson.D{{Key: "created_at", Value: 1}, {Key: "user_id", Value: 1}}

func (r *MongoRepository) Get(ctx context.Context, id string) (*models.User, error) {
	u := &models.User{}
	if err := r.coll.FindOne(ctx, bson.M{"user_id": id}).Decode(u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	u.Matches = models.NonNilMatches(u.Matches)
	return u, nil
}

func (r *MongoRepository) Update(ctx context.Context, id string, p models.UserProfile) (*models.User, error) {
	update := bson.M{"$set": bson.M{
		"first_name":    p.FirstName,
		"dob_day":       p.DobDay,
		"dob_month":     p.DobMonth,
		"dob_year":      p.DobYear,
		"profile_photo": p.ProfilePhoto,
		"zipcode":       p.Zipcode,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	u := &models.User{}
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"user_id": id}, update, opts).Decode(u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	u.Matches = models.NonNilMatches(u.Matches)
	return u, nil
}

func (r *MongoRepository) List(ctx context.Context) ([]*models.User, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoRepository) ListByZipcode(ctx context.Context, zipcode string) ([]*models.User, error) {
	return r.find(ctx, bson.M{"zipcode": zipcode})
}

func (r *MongoRepository) find(ctx context.Context, filter bson.M) ([]*models.User, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(listSort))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer cur.Close(ctx)

	result := []*models.User{}
	if err := cur.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	for _, u := range result {
		u.Matches = models.NonNilMatches(u.Matches)
	}
	return result, nil
}
