package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/ericmlantz/backend/internal/common"
	"github.com/ericmlantz/backend/internal/server/models"
)

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("userId")
	if id == "" {
		h.fail(w, r, common.ErrorValidation)
		return
	}

	u, err := h.Discovery.GetUser(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, u)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("restId")
	if id == "" {
		h.fail(w, r, common.ErrorValidation)
		return
	}

	rest, err := h.Discovery.GetRestaurant(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rest)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	l, err := h.Discovery.ListUsers(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, l)
}

func (h *Handler) listRestaurants(w http.ResponseWriter, r *http.Request) {
	l, err := h.Discovery.ListRestaurants(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, l)
}

func (h *Handler) usersByZipcode(w http.ResponseWriter, r *http.Request) {
	zipcode := r.URL.Query().Get("zipcode")
	if zipcode == "" {
		h.fail(w, r, common.ErrorValidation)
		return
	}

	l, err := h.Discovery.UsersByZipcode(r.Context(), zipcode)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, l)
}

func (h *Handler) restaurantsByZipcode(w http.ResponseWriter, r *http.Request) {
	zipcode := r.URL.Query().Get("zipcode")
	if zipcode == "" {
		h.fail(w, r, common.ErrorValidation)
		return
	}

	l, err := h.Discovery.RestaurantsByZipcode(r.Context(), zipcode)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, l)
}

// matchedRestaurants resolves restIds, a JSON array in the query string.
func (h *Handler) matchedRestaurants(w http.ResponseWriter, r *http.Request) {
	var ids []string
	if err := json.Unmarshal([]byte(r.URL.Query().Get("restIds")), &ids); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "restIds must be a JSON array of strings")
		return
	}

	l, err := h.Matches.GetMatchedRestaurants(r.Context(), ids)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, l)
}

type personFormData struct {
	UserID       string `json:"user_id"`
	FirstName    string `json:"first_name"`
	DobDay       string `json:"dob_day"`
	DobMonth     string `json:"dob_month"`
	DobYear      string `json:"dob_year"`
	ProfilePhoto string `json:"profile_photo"`
	Zipcode      string `json:"zipcode"`
}

type updateUserRequest struct {
	PersonFormData *personFormData `json:"personFormData"`
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := decodeJSON(w, r, &req); err != nil || req.PersonFormData == nil {
		h.fail(w, r, common.ErrorValidation)
		return
	}
	f := req.PersonFormData

	if !owns(r.Context(), models.VariantUser, f.UserID) {
		h.fail(w, r, common.ErrorForbidden)
		return
	}

	u, err := h.Profiles.UpdateUser(r.Context(), f.UserID, models.UserProfile{
		FirstName:    f.FirstName,
		DobDay:       f.DobDay,
		DobMonth:     f.DobMonth,
		DobYear:      f.DobYear,
		ProfilePhoto: f.ProfilePhoto,
		Zipcode:      f.Zipcode,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, u)
}

// restaurantFormData accepts the cuisine as type_of_food, the name the
// onboarding form posts, or as food_type.
type restaurantFormData struct {
	RestID      string `json:"rest_id"`
	Name        string `json:"rest_name"`
	Logo        string `json:"rest_logo"`
	Photo       string `json:"rest_photo1"`
	Description string `json:"rest_description"`
	URL         string `json:"rest_url"`
	Phone       string `json:"rest_phone"`
	TypeOfFood  string `json:"type_of_food"`
	FoodType    string `json:"food_type"`
	Street      string `json:"rest_street"`
	Apt         string `json:"rest_apt"`
	City        string `json:"rest_city"`
	State       string `json:"rest_state"`
	Zipcode     string `json:"zipcode"`
}

type updateRestaurantRequest struct {
	RestaurantFormData *restaurantFormData `json:"restaurantFormData"`
}

func (h *Handler) updateRestaurant(w http.ResponseWriter, r *http.Request) {
	var req updateRestaurantRequest
	if err := decodeJSON(w, r, &req); err != nil || req.RestaurantFormData == nil {
		h.fail(w, r, common.ErrorValidation)
		return
	}
	f := req.RestaurantFormData

	if !owns(r.Context(), models.VariantRestaurant, f.RestID) {
		h.fail(w, r, common.ErrorForbidden)
		return
	}

	foodType := f.TypeOfFood
	if foodType == "" {
		foodType = f.FoodType
	}

	rest, err := h.Profiles.UpdateRestaurant(r.Context(), f.RestID, models.RestaurantProfile{
		Name:        f.Name,
		Logo:        f.Logo,
		Photo:       f.Photo,
		Description: f.Description,
		URL:         f.URL,
		Phone:       f.Phone,
		FoodType:    foodType,
		Street:      f.Street,
		Apt:         f.Apt,
		City:        f.City,
		State:       f.State,
		Zipcode:     f.Zipcode,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rest)
}
