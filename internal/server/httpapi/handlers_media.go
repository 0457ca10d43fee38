package httpapi

import (
	"net/http"

	"github.com/ericmlantz/backend/internal/common"
)

type uploadURLRequest struct {
	ContentType string `json:"contentType"`
}

// photoUploadURL presigns an upload into the caller's own key space.
func (h *Handler) photoUploadURL(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		h.fail(w, r, common.ErrorUnauthorized)
		return
	}

	var req uploadURLRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	up, err := h.Media.PresignPhotoUpload(r.Context(), claims.Variant, claims.AccountID, req.ContentType)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, up)
}
