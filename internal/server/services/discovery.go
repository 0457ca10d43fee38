package services

import (
	"context"

	"github.com/ericmlantz/backend/internal/server/models"
	"github.com/ericmlantz/backend/internal/server/repositories/restaurants"
	"github.com/ericmlantz/backend/internal/server/repositories/users"
)

// DiscoveryService reads accounts for browsing. Lists are unbounded and
// ordered by creation time, then id.
type DiscoveryService struct {
	users       users.Repository
	restaurants restaurants.Repository
}

func NewDiscoveryService(u users.Repository, r restaurants.Repository) *DiscoveryService {
	return &DiscoveryService{users: u, restaurants: r}
}

func (s *DiscoveryService) GetUser(ctx context.Context, id string) (*models.User, error) {
	u, err := s.users.Get(ctx, id)
	return u, storageError(err)
}

func (s *DiscoveryService) GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	r, err := s.restaurants.Get(ctx, id)
	return r, storageError(err)
}

func (s *DiscoveryService) ListUsers(ctx context.Context) ([]*models.User, error) {
	l, err := s.users.List(ctx)
	return l, storageError(err)
}

func (s *DiscoveryService) ListRestaurants(ctx context.Context) ([]*models.Restaurant, error) {
	l, err := s.restaurants.List(ctx)
	return l, storageError(err)
}

// UsersByZipcode matches the zipcode string exactly.
func (s *DiscoveryService) UsersByZipcode(ctx context.Context, zipcode string) ([]*models.User, error) {
	l, err := s.users.ListByZipcode(ctx, zipcode)
	return l, storageError(err)
}

func (s *DiscoveryService) RestaurantsByZipcode(ctx context.Context, zipcode string) ([]*models.Restaurant, error) {
	l, err := s.restaurants.ListByZipcode(ctx, zipcode)
	return l, storageError(err)
}
