package httpapi

import (
	"net/http"

	"github.com/ericmlantz/backend/internal/common"
	"github.com/ericmlantz/backend/internal/server/models"
)

type addRestaurantMatchRequest struct {
	UserID              string `json:"userId"`
	MatchedRestaurantID string `json:"matchedRestaurantId"`
}

// addUserMatchRequest names the restaurant restId. Older clients send the
// same id as userId, which is used when restId is absent.
type addUserMatchRequest struct {
	RestID        string `json:"restId"`
	UserID        string `json:"userId,omitempty"`
	MatchedUserID string `json:"matchedUserId"`
}

func (r addUserMatchRequest) restaurantID() string {
	if r.RestID != "" {
		return r.RestID
	}
	return r.UserID
}

type matchRequest struct {
	UserID string `json:"userId"`
	RestID string `json:"restId"`
}

type matchesResponse struct {
	Matches []models.Match `json:"matches"`
}

func (h *Handler) addRestaurantMatch(w http.ResponseWriter, r *http.Request) {
	var req addRestaurantMatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if !owns(r.Context(), models.VariantUser, req.UserID) {
		h.fail(w, r, common.ErrorForbidden)
		return
	}

	list, err := h.Matches.AddRestaurantMatch(r.Context(), req.UserID, req.MatchedRestaurantID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.IncrementMatches(string(models.VariantUser), 1)
	}
	respondJSON(w, http.StatusOK, matchesResponse{Matches: list})
}

func (h *Handler) addUserMatch(w http.ResponseWriter, r *http.Request) {
	var req addUserMatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	restID := req.restaurantID()
	if !owns(r.Context(), models.VariantRestaurant, restID) {
		h.fail(w, r, common.ErrorForbidden)
		return
	}

	list, err := h.Matches.AddUserMatch(r.Context(), restID, req.MatchedUserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.IncrementMatches(string(models.VariantRestaurant), 1)
	}
	respondJSON(w, http.StatusOK, matchesResponse{Matches: list})
}

// match records both sides; either party may ask.
func (h *Handler) match(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	ctx := r.Context()
	if !owns(ctx, models.VariantUser, req.UserID) && !owns(ctx, models.VariantRestaurant, req.RestID) {
		h.fail(w, r, common.ErrorForbidden)
		return
	}

	pair, err := h.Matches.Match(ctx, req.UserID, req.RestID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.IncrementMatches(string(models.VariantUser), 1)
		h.Metrics.IncrementMatches(string(models.VariantRestaurant), 1)
	}
	respondJSON(w, http.StatusOK, pair)
}
