package services

import (
	"context"

	"github.com/ericmlantz/backend/internal/common"
	"github.com/ericmlantz/backend/internal/server/models"
	"github.com/ericmlantz/backend/internal/server/repositories/restaurants"
	"github.com/ericmlantz/backend/internal/server/repositories/users"
)

// ProfileService overwrites the profile fields of an account. Omitted fields
// are stored empty; match lists are never touched.
type ProfileService struct {
	users       users.Repository
	restaurants restaurants.Repository
}

func NewProfileService(u users.Repository, r restaurants.Repository) *ProfileService {
	return &ProfileService{users: u, restaurants: r}
}

func (s *ProfileService) UpdateUser(ctx context.Context, id string, p models.UserProfile) (*models.User, error) {
	if id == "" {
		return nil, common.ErrorValidation
	}
	u, err := s.users.Update(ctx, id, p)
	return u, storageError(err)
}

func (s *ProfileService) UpdateRestaurant(ctx context.Context, id string, p models.RestaurantProfile) (*models.Restaurant, error) {
	if id == "" {
		return nil, common.ErrorValidation
	}
	r, err := s.restaurants.Update(ctx, id, p)
	return r, storageError(err)
}
