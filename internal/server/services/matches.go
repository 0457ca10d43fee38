package services

import (
	"context"

	"github.com/ericmlantz/backend/internal/common"
	"github.com/ericmlantz/backend/internal/logging"
	"github.com/ericmlantz/backend/internal/server/models"
	"github.com/ericmlantz/backend/internal/server/repositories/matches"
	"github.com/ericmlantz/backend/internal/server/repositories/restaurants"
)

// MatchService mutates match lists. Appends are never deduplicated and the
// target id is not checked for existence.
type MatchService struct {
	matches     matches.Repository
	restaurants restaurants.Repository
	logger      logging.Logger
}

func NewMatchService(m matches.Repository, r restaurants.Repository, logger logging.Logger) *MatchService {
	return &MatchService{matches: m, restaurants: r, logger: logger.With("module", "matches")}
}

// AddRestaurantMatch appends {rest_id: restID} to the user's list.
func (s *MatchService) AddRestaurantMatch(ctx context.Context, userID, restID string) ([]models.Match, error) {
	if userID == "" || restID == "" {
		return nil, common.ErrorValidation
	}
	list, err := s.matches.Append(ctx, models.VariantUser, userID, models.MatchFor(models.VariantUser, restID))
	if err != nil {
		return nil, storageError(err)
	}
	s.logger.Debug(ctx, "restaurant matched", "user_id", userID, "rest_id", restID)
	return list, nil
}

// AddUserMatch appends {user_id: userID} to the restaurant's list.
func (s *MatchService) AddUserMatch(ctx context.Context, restID, userID string) ([]models.Match, error) {
	if userID == "" || restID == "" {
		return nil, common.ErrorValidation
	}
	list, err := s.matches.Append(ctx, models.VariantRestaurant, restID, models.MatchFor(models.VariantRestaurant, userID))
	if err != nil {
		return nil, storageError(err)
	}
	s.logger.Debug(ctx, "user matched", "rest_id", restID, "user_id", userID)
	return list, nil
}

// Match records the pair on both sides or on neither.
func (s *MatchService) Match(ctx context.Context, userID, restID string) (*models.MatchPair, error) {
	if userID == "" || restID == "" {
		return nil, common.ErrorValidation
	}
	pair, err := s.matches.AppendPair(ctx, userID, restID)
	if err != nil {
		return nil, storageError(err)
	}
	s.logger.Info(ctx, "two-sided match", "user_id", userID, "rest_id", restID)
	return pair, nil
}

// GetMatchedRestaurants resolves ids to restaurants, silently skipping
// unknown ones.
func (s *MatchService) GetMatchedRestaurants(ctx context.Context, ids []string) ([]*models.Restaurant, error) {
	l, err := s.restaurants.ListByIDs(ctx, ids)
	return l, storageError(err)
}
