package handler

import (
	"net/http"

	"github.com/cardtable/eights/internal/api/response"
	"github.com/cardtable/eights/internal/services/autoplay"
)

// AutoHandler plays automated moves for a seat
type AutoHandler struct {
	autoplay *autoplay.Service
}

// NewAutoHandler creates a new auto-move handler
func NewAutoHandler(autoplay *autoplay.Service) *AutoHandler {
	return &AutoHandler{
		autoplay: autoplay,
	}
}

// Auto handles POST /api/v1/games/{id}/auto
func (h *AutoHandler) Auto(w http.ResponseWriter, r *http.Request) {
	pid, err := playerID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	action, err := h.autoplay.Act(r.Context(), gameID(r), pid)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AutoResponse{
		Type:         string(action.Type),
		Card:         action.Card,
		DeclaredSuit: action.DeclaredSuit,
		View:         action.View,
	})
}
