package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cardtable/eights/internal/api/request"
	"github.com/cardtable/eights/internal/api/response"
	"github.com/cardtable/eights/internal/model"
	"github.com/cardtable/eights/internal/services/directory"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	directory directory.ControllerInterface
}

// NewGameHandler creates a new game handler
func NewGameHandler(directory directory.ControllerInterface) *GameHandler {
	return &GameHandler{
		directory: directory,
	}
}

// gameID extracts the game id path variable
func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

// playerID extracts the required player_id query parameter
func playerID(r *http.Request) (model.PlayerID, error) {
	id := r.URL.Query().Get("player_id")
	if id == "" {
		return "", NewInvalidRequestError("player_id query parameter is required")
	}
	return model.PlayerID(id), nil
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, err := h.directory.CreateGame(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.CreateGameResponse{GameID: string(id)})
}

// Join handles POST /api/v1/games/{id}/join
func (h *GameHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req request.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	id := gameID(r)
	pid, err := h.directory.Join(r.Context(), id, req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.JoinResponse{
		GameID:   string(id),
		PlayerID: string(pid),
	})
}

// Start handles POST /api/v1/games/{id}/start
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	view, err := h.directory.Start(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, view)
}

// GetPublic handles GET /api/v1/games/{id}
func (h *GameHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	view, err := h.directory.GetPublicState(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, view)
}

// GetState handles GET /api/v1/games/{id}/state
func (h *GameHandler) GetState(w http.ResponseWriter, r *http.Request) {
	pid, err := playerID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	view, err := h.directory.GetPlayerState(r.Context(), gameID(r), pid)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, view)
}

// Play handles POST /api/v1/games/{id}/play
func (h *GameHandler) Play(w http.ResponseWriter, r *http.Request) {
	pid, err := playerID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.PlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	card, err := model.ParseCard(req.Card)
	if err != nil {
		WriteError(w, NewInvalidRequestError("invalid card: "+req.Card))
		return
	}

	var declaredSuit *model.Suit
	if req.DeclaredSuit != "" {
		suit, err := model.ParseSuit(req.DeclaredSuit)
		if err != nil {
			WriteError(w, NewInvalidRequestError("invalid declared suit: "+req.DeclaredSuit))
			return
		}
		declaredSuit = &suit
	}

	view, err := h.directory.PlayCard(r.Context(), gameID(r), pid, card, declaredSuit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, view)
}

// Draw handles POST /api/v1/games/{id}/draw
func (h *GameHandler) Draw(w http.ResponseWriter, r *http.Request) {
	pid, err := playerID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	card, view, err := h.directory.DrawCard(r.Context(), gameID(r), pid)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.DrawResponse{Card: card, View: view})
}

// Delete handles DELETE /api/v1/games/{id}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.directory.DeleteGame(r.Context(), gameID(r)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Moves handles GET /api/v1/games/{id}/moves
func (h *GameHandler) Moves(w http.ResponseWriter, r *http.Request) {
	moves, err := h.directory.GetMoves(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MovesResponse{Moves: moves})
}

// Health handles GET /api/v1/health
func (h *GameHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.HealthResponse{Status: "ok"})
}
