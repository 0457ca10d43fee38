// Package memstore is an in-process implementation of every repository,
// backing the memory storage backend and the service and handler tests.
// Records are returned as copies; callers never share state with the store.
package memstore

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/ericmlantz/backend/internal/common"
	"github.com/ericmlantz/backend/internal/server/models"
	"github.com/ericmlantz/backend/internal/server/repositories/credentials"
	"github.com/ericmlantz/backend/internal/server/repositories/matches"
	"github.com/ericmlantz/backend/internal/server/repositories/messages"
	"github.com/ericmlantz/backend/internal/server/repositories/restaurants"
	"github.com/ericmlantz/backend/internal/server/repositories/users"
)

type Store struct {
	mu sync.Mutex

	users      map[string]*models.User
	userOrder  []string
	userEmails map[string]string

	rests      map[string]*models.Restaurant
	restOrder  []string
	restEmails map[string]string

	messages   []*models.Message
	messageIDs map[string]struct{}

	now func() time.Time
}

func New() *Store {
	return &Store{
		users:      map[string]*models.User{},
		userEmails: map[string]string{},
		rests:      map[string]*models.Restaurant{},
		restEmails: map[string]string{},
		messageIDs: map[string]struct{}{},
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Credentials() credentials.Repository { return credentialsRepo{s} }
func (s *Store) Users() users.Repository             { return usersRepo{s} }
func (s *Store) Restaurants() restaurants.Repository { return restaurantsRepo{s} }
func (s *Store) Matches() matches.Repository         { return matchesRepo{s} }
func (s *Store) Messages() messages.Repository       { return messagesRepo{s} }

func copyUser(u *models.User) *models.User {
	c := *u
	c.Matches = append([]models.Match{}, u.Matches...)
	return &c
}

func copyRestaurant(r *models.Restaurant) *models.Restaurant {
	c := *r
	c.Matches = append([]models.Match{}, r.Matches...)
	return &c
}

type credentialsRepo struct{ s *Store }

func (r credentialsRepo) FindByEmail(_ context.Context, variant models.Variant, email string) (*models.Credentials, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	switch variant {
	case models.VariantUser:
		if id, ok := s.userEmails[email]; ok {
			u := s.users[id]
			return &models.Credentials{ID: u.ID, Variant: variant, Email: u.Email, HashedPassword: u.HashedPassword, CreatedAt: u.CreatedAt}, nil
		}
	case models.VariantRestaurant:
		if id, ok := s.restEmails[email]; ok {
			rest := s.rests[id]
			return &models.Credentials{ID: rest.ID, Variant: variant, Email: rest.Email, HashedPassword: rest.HashedPassword, CreatedAt: rest.CreatedAt}, nil
		}
	default:
		return nil, common.ErrorValidation
	}

	return nil, common.ErrorNotFound
}

func (r credentialsRepo) Create(_ context.Context, c *models.Credentials) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	c.CreatedAt = s.now()

	switch c.Variant {
	case models.VariantUser:
		if _, ok := s.userEmails[c.Email]; ok {
			return common.ErrorAlreadyExists
		}
		if _, ok := s.users[c.ID]; ok {
			return common.ErrorAlreadyExists
		}
		s.users[c.ID] = &models.User{ID: c.ID, Email: c.Email, HashedPassword: c.HashedPassword, Matches: []models.Match{}, CreatedAt: c.CreatedAt}
		s.userEmails[c.Email] = c.ID
		s.userOrder = append(s.userOrder, c.ID)
	case models.VariantRestaurant:
		if _, ok := s.restEmails[c.Email]; ok {
			return common.ErrorAlreadyExists
		}
		if _, ok := s.rests[c.ID]; ok {
			return common.ErrorAlreadyExists
		}
		s.rests[c.ID] = &models.Restaurant{ID: c.ID, Email: c.Email, HashedPassword: c.HashedPassword, Matches: []models.Match{}, CreatedAt: c.CreatedAt}
		s.restEmails[c.Email] = c.ID
		s.restOrder = append(s.restOrder, c.ID)
	default:
		return common.ErrorValidation
	}

	return nil
}

type usersRepo struct{ s *Store }

func (r usersRepo) Get(_ context.Context, id string) (*models.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return copyUser(u), nil
}

func (r usersRepo) Update(_ context.Context, id string, p models.UserProfile) (*models.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u.FirstName = p.FirstName
	u.DobDay = p.DobDay
	u.DobMonth = p.DobMonth
	u.DobYear = p.DobYear
	u.ProfilePhoto = p.ProfilePhoto
	u.Zipcode = p.Zipcode
	return copyUser(u), nil
}

func (r usersRepo) List(_ context.Context) ([]*models.User, error) {
	return r.filter(func(*models.User) bool { return true }), nil
}

func (r usersRepo) ListByZipcode(_ context.Context, zipcode string) ([]*models.User, error) {
	return r.filter(func(u *models.User) bool { return u.Zipcode == zipcode }), nil
}

func (r usersRepo) filter(keep func(*models.User) bool) []*models.User {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	result := []*models.User{}
	for _, id := range s.userOrder {
		if u := s.users[id]; keep(u) {
			result = append(result, copyUser(u))
		}
	}
	return result
}

type restaurantsRepo struct{ s *Store }

func (r restaurantsRepo) Get(_ context.Context, id string) (*models.Restaurant, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	rest, ok := s.rests[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return copyRestaurant(rest), nil
}

func (r restaurantsRepo) Update(_ context.Context, id string, p models.RestaurantProfile) (*models.Restaurant, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	rest, ok := s.rests[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	rest.Name = p.Name
	rest.Logo = p.Logo
	rest.Photo = p.Photo
	rest.Description = p.Description
	rest.URL = p.URL
	rest.Phone = p.Phone
	rest.FoodType = p.FoodType
	rest.Street = p.Street
	rest.Apt = p.Apt
	rest.City = p.City
	rest.State = p.State
	rest.Zipcode = p.Zipcode
	return copyRestaurant(rest), nil
}

func (r restaurantsRepo) List(_ context.Context) ([]*models.Restaurant, error) {
	return r.filter(func(*models.Restaurant) bool { return true }), nil
}

func (r restaurantsRepo) ListByZipcode(_ context.Context, zipcode string) ([]*models.Restaurant, error) {
	return r.filter(func(rest *models.Restaurant) bool { return rest.Zipcode == zipcode }), nil
}

func (r restaurantsRepo) ListByIDs(_ context.Context, ids []string) ([]*models.Restaurant, error) {
	return r.filter(func(rest *models.Restaurant) bool { return slices.Contains(ids, rest.ID) }), nil
}

func (r restaurantsRepo) filter(keep func(*models.Restaurant) bool) []*models.Restaurant {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	result := []*models.Restaurant{}
	for _, id := range s.restOrder {
		if rest := s.rests[id]; keep(rest) {
			result = append(result, copyRestaurant(rest))
		}
	}
	return result
}

type matchesRepo struct{ s *Store }

// ownerMatches returns a pointer to the owner's list; callers hold s.mu.
func (s *Store) ownerMatches(owner models.Variant, ownerID string) (*[]models.Match, error) {
	switch owner {
	case models.VariantUser:
		if u, ok := s.users[ownerID]; ok {
			return &u.Matches, nil
		}
	case models.VariantRestaurant:
		if rest, ok := s.rests[ownerID]; ok {
			return &rest.Matches, nil
		}
	default:
		return nil, common.ErrorValidation
	}
	return nil, common.ErrorNotFound
}

func (r matchesRepo) Append(_ context.Context, owner models.Variant, ownerID string, m models.Match) ([]models.Match, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.ownerMatches(owner, ownerID)
	if err != nil {
		return nil, err
	}
	*list = append(*list, m)
	return append([]models.Match{}, *list...), nil
}

func (r matchesRepo) AppendPair(_ context.Context, userID, restID string) (*models.MatchPair, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	userList, err := s.ownerMatches(models.VariantUser, userID)
	if err != nil {
		return nil, err
	}
	restList, err := s.ownerMatches(models.VariantRestaurant, restID)
	if err != nil {
		return nil, err
	}

	*userList = append(*userList, models.Match{RestID: restID})
	*restList = append(*restList, models.Match{UserID: userID})

	return &models.MatchPair{
		UserMatches:       append([]models.Match{}, *userList...),
		RestaurantMatches: append([]models.Match{}, *restList...),
	}, nil
}

func (r matchesRepo) List(_ context.Context, owner models.Variant, ownerID string) ([]models.Match, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.ownerMatches(owner, ownerID)
	if err != nil {
		return nil, err
	}
	return append([]models.Match{}, *list...), nil
}

type messagesRepo struct{ s *Store }

func (r messagesRepo) Create(_ context.Context, m *models.Message) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.messageIDs[m.ID]; ok {
		return common.ErrorAlreadyExists
	}
	c := *m
	s.messages = append(s.messages, &c)
	s.messageIDs[m.ID] = struct{}{}
	return nil
}

func (r messagesRepo) ListConversation(_ context.Context, userID, restID string) ([]*models.Message, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	result := []*models.Message{}
	for _, m := range s.messages {
		if m.FromUserID == userID && m.ToRestID == restID {
			c := *m
			result = append(result, &c)
		}
	}
	return result, nil
}
