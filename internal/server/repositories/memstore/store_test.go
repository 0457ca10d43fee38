package memstore

import (
	"context"
	"sync"
	"testing"

	"github.com/ericmlantz/backend/internal/common"
	"github.com/ericmlantz/backend/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, s *Store, variant models.Variant, id, email string) {
	t.Helper()
	require.NoError(t, s.Credentials().Create(context.Background(), &models.Credentials{
		ID: id, Variant: variant, Email: email, HashedPassword: []byte("h"),
	}))
}

func TestCredentials_UniquePerVariant(t *testing.T) {
	ctx := context.Background()
	s := New()

	seed(t, s, models.VariantUser, "u-1", "a@b.c")
	// the same email may exist once per variant
	seed(t, s, models.VariantRestaurant, "r-1", "a@b.c")

	err := s.Credentials().Create(ctx, &models.Credentials{ID: "u-2", Variant: models.VariantUser, Email: "a@b.c"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	c, err := s.Credentials().FindByEmail(ctx, models.VariantRestaurant, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, "r-1", c.ID)

	_, err = s.Credentials().FindByEmail(ctx, models.VariantUser, "nobody@b.c")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCredentials_ConcurrentSignupOnlyOneWins(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	errs := make([]error, 10)

	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.Credentials().Create(context.Background(), &models.Credentials{
				ID: string(rune('a' + i)), Variant: models.VariantUser, Email: "same@x.y",
			})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, common.ErrorAlreadyExists)
		}
	}
	assert.Equal(t, 1, ok)
}

func TestUsers_UpdateKeepsMatchesAndReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := New()
	seed(t, s, models.VariantUser, "u-1", "a@b.c")

	_, err := s.Matches().Append(ctx, models.VariantUser, "u-1", models.Match{RestID: "r-1"})
	require.NoError(t, err)

	u, err := s.Users().Update(ctx, "u-1", models.UserProfile{FirstName: "Ann", Zipcode: "10001"})
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.FirstName)
	assert.Equal(t, []models.Match{{RestID: "r-1"}}, u.Matches)

	u.Matches[0].RestID = "mutated"
	again, err := s.Users().Get(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "r-1", again.Matches[0].RestID)

	_, err = s.Users().Update(ctx, "nope", models.UserProfile{})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUsers_ListByZipcodeStableOrder(t *testing.T) {
	ctx := context.Background()
	s := New()
	for _, id := range []string{"u-1", "u-2", "u-3"} {
		seed(t, s, models.VariantUser, id, id+"@x.y")
	}
	_, _ = s.Users().Update(ctx, "u-1", models.UserProfile{Zipcode: "1"})
	_, _ = s.Users().Update(ctx, "u-3", models.UserProfile{Zipcode: "1"})

	got, err := s.Users().ListByZipcode(ctx, "1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "u-1", got[0].ID)
	assert.Equal(t, "u-3", got[1].ID)

	none, err := s.Users().ListByZipcode(ctx, "999")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestRestaurants_ListByIDsSkipsUnknown(t *testing.T) {
	ctx := context.Background()
	s := New()
	seed(t, s, models.VariantRestaurant, "r-1", "1@x.y")
	seed(t, s, models.VariantRestaurant, "r-2", "2@x.y")

	got, err := s.Restaurants().ListByIDs(ctx, []string{"r-2", "ghost"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "r-2", got[0].ID)

	got, err = s.Restaurants().ListByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMatches_AppendNoDedup(t *testing.T) {
	ctx := context.Background()
	s := New()
	seed(t, s, models.VariantUser, "u-1", "a@b.c")

	_, err := s.Matches().Append(ctx, models.VariantUser, "u-1", models.Match{RestID: "r-1"})
	require.NoError(t, err)
	got, err := s.Matches().Append(ctx, models.VariantUser, "u-1", models.Match{RestID: "r-1"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = s.Matches().Append(ctx, models.VariantRestaurant, "r-x", models.Match{UserID: "u-1"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMatches_AppendPairAllOrNothing(t *testing.T) {
	ctx := context.Background()
	s := New()
	seed(t, s, models.VariantUser, "u-1", "a@b.c")
	seed(t, s, models.VariantRestaurant, "r-1", "r@b.c")

	_, err := s.Matches().AppendPair(ctx, "u-1", "r-missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	list, err := s.Matches().List(ctx, models.VariantUser, "u-1")
	require.NoError(t, err)
	assert.Empty(t, list)

	pair, err := s.Matches().AppendPair(ctx, "u-1", "r-1")
	require.NoError(t, err)
	assert.Equal(t, []models.Match{{RestID: "r-1"}}, pair.UserMatches)
	assert.Equal(t, []models.Match{{UserID: "u-1"}}, pair.RestaurantMatches)
}

func TestMessages_ConversationIsDirectedAndOrdered(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Messages().Create(ctx, &models.Message{ID: "1", FromUserID: "u-1", ToRestID: "r-1", Body: "a"}))
	require.NoError(t, s.Messages().Create(ctx, &models.Message{ID: "2", FromUserID: "u-1", ToRestID: "r-2", Body: "b"}))
	require.NoError(t, s.Messages().Create(ctx, &models.Message{ID: "3", FromUserID: "u-1", ToRestID: "r-1", Body: "c"}))
	assert.ErrorIs(t, s.Messages().Create(ctx, &models.Message{ID: "3"}), common.ErrorAlreadyExists)

	got, err := s.Messages().ListConversation(ctx, "u-1", "r-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Body)
	assert.Equal(t, "c", got[1].Body)

	reversed, err := s.Messages().ListConversation(ctx, "r-1", "u-1")
	require.NoError(t, err)
	assert.Empty(t, reversed)
}
