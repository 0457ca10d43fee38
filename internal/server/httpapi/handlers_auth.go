package httpapi

import (
	"net/http"

	"github.com/ericmlantz/backend/internal/server/models"
	"github.com/ericmlantz/backend/internal/server/services"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse carries the id twice: as id, and under the variant specific
// key existing clients read.
type authResponse struct {
	Token  string `json:"token"`
	ID     string `json:"id"`
	UserID string `json:"userId,omitempty"`
	RestID string `json:"restId,omitempty"`
}

func newAuthResponse(res *services.AuthResult) authResponse {
	out := authResponse{Token: res.Token, ID: res.ID}
	if res.Variant == models.VariantRestaurant {
		out.RestID = res.ID
	} else {
		out.UserID = res.ID
	}
	return out
}

func (h *Handler) signup(variant models.Variant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.fail(w, r, err)
			return
		}

		res, err := h.Auth.Signup(r.Context(), variant, req.Email, req.Password)
		if h.Metrics != nil {
			h.Metrics.ObserveSignup(string(variant), err)
		}
		if err != nil {
			h.fail(w, r, err)
			return
		}

		respondJSON(w, http.StatusCreated, newAuthResponse(res))
	}
}

// login answers 201 on success, as the deployed clients expect.
func (h *Handler) login(variant models.Variant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.fail(w, r, err)
			return
		}

		res, err := h.Auth.Login(r.Context(), variant, req.Email, req.Password)
		if h.Metrics != nil {
			h.Metrics.ObserveLogin(string(variant), err)
		}
		if err != nil {
			h.fail(w, r, err)
			return
		}

		respondJSON(w, http.StatusCreated, newAuthResponse(res))
	}
}
