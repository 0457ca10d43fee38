package restaurants

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
	return &MongoRepository{coll: db.Collection(models.VariantRestaurant.Collection())}
}

var listSort = bson.D{{Key: "created_at", Value: 1}, {Key: "rest_id", Value: 1}}

func (r *MongoRepository) Get(ctx context.Context, id string) (*models.Restaurant, error) {
	rest := &models.Restaurant{}
	if err := r.coll.FindOne(ctx, bson.M{"rest_id": id}).Decode(rest); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	rest.Matches = models.NonNilMatches(rest.Matches)
	return rest, nil
}

func (r *MongoRepository) Update(ctx context.Context, id string, p models.RestaurantProfile) (*models.Restaurant, error) {
	update := bson.M{"$set": bson.M{
		"rest_name":        p.Name,
		"rest_logo":        p.Logo,
		"rest_photo1":      p.Photo,
		"rest_description": p.Description,
		"rest_url":         p.URL,
		"rest_phone":       p.Phone,
		"food_type":        p.FoodType,
		"rest_street":      p.Street,
		"rest_apt":         p.Apt,
		"rest_city":        p.City,
		"rest_state":       p.State,
		"zipcode":          p.Zipcode,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	rest := &models.Restaurant{}
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"rest_id": id}, update, opts).Decode(rest); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	rest.Matches = models.NonNilMatches(rest.Matches)
	return rest, nil
}

func (r *MongoRepository) List(ctx context.Context) ([]*models.Restaurant, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoRepository) ListByZipcode(ctx context.Context, zipcode string) ([]*models.Restaurant, error) {
	return r.find(ctx, bson.M{"zipcode": zipcode})
}

func (r *MongoRepository) ListByIDs(ctx context.Context, ids []string) ([]*models.Restaurant, error) {
	if len(ids) == 0 {
		return []*models.Restaurant{}, nil
	}
	return r.find(ctx, bson.M{"rest_id": bson.M{"$in": ids}})
}

func (r *MongoRepository) find(ctx context.Context, filter bson.M) ([]*models.Restaurant, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(listSort))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer cur.Close(ctx)

	result := []*models.Restaurant{}
	if err := cur.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	for _, rest := range result {
		rest.Matches = models.NonNilMatches(rest.Matches)
	}
	return result, nil
}
