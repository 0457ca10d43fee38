package credentials

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ericmlantz/backend/internal/common"
	"github.com/ericmlantz/backend/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoRepository keeps credentials in the users / restaurants collections.
// The unique email index is created by the repository manager.
type MongoRepository struct {
	db *mongo.Database
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{db: db}
}

// credentialsDoc decodes either variant; only the id field differs.
type credentialsDoc struct {
	UserID         string    `bson:"user_id"`
	RestID         string    `bson:"rest_id"`
	Email          string    `bson:"email"`
	HashedPassword []byte    `bson:"hashed_password"`
	CreatedAt      time.Time `bson:"created_at"`
}

func (r *MongoRepository) FindByEmail(ctx context.Context, variant models.Variant, email string) (*models.Credentials, error) {
	if !variant.Valid() {
		return nil, common.ErrorValidation
	}

	var doc credentialsDoc
	err := r.db.Collection(variant.Collection()).FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	id := doc.UserID
	if variant == models.VariantRestaurant {
		id = doc.RestID
	}

	return &models.Credentials{
		ID:             id,
		Variant:        variant,
		Email:          doc.Email,
		HashedPassword: doc.HashedPassword,
		CreatedAt:      doc.CreatedAt,
	}, nil
}

func (r *MongoRepository) Create(ctx context.Context, c *models.Credentials) error {
	if !c.Variant.Valid() {
		return common.ErrorValidation
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	doc := bson.D{
		{Key: c.Variant.IDField(), Value: c.ID},
		{Key: "email", Value: c.Email},
		{Key: "hashed_password", Value: c.HashedPassword},
		{Key: "matches", Value: bson.A{}},
		{Key: "created_at", Value: c.CreatedAt},
	}

	if _, err := r.db.Collection(c.Variant.Collection()).InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
