package httpapi

import (
	"net/http"

	"github.com/ericmlantz/backend/internal/common"
	"github.com/ericmlantz/backend/internal/server/models"
)

type sendMessageRequest struct {
	Message *models.Message `json:"message"`
}

// conversation is readable by either participant.
func (h *Handler) conversation(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userID, restID := q.Get("userId"), q.Get("correspondingRestId")
	if userID == "" || restID == "" {
		h.fail(w, r, common.ErrorValidation)
		return
	}

	ctx := r.Context()
	if !owns(ctx, models.VariantUser, userID) && !owns(ctx, models.VariantRestaurant, restID) {
		h.fail(w, r, common.ErrorForbidden)
		return
	}

	l, err := h.Messages.Conversation(ctx, userID, restID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, l)
}

func (h *Handler) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Message == nil {
		h.fail(w, r, common.ErrorValidation)
		return
	}
	if !owns(r.Context(), models.VariantUser, req.Message.FromUserID) {
		h.fail(w, r, common.ErrorForbidden)
		return
	}

	m, err := h.Messages.Send(r.Context(), *req.Message)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.IncrementMessages()
	}
	respondJSON(w, http.StatusCreated, m)
}
