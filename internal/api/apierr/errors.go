package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cardtable/eights/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeGameNotFound        = "GAME_NOT_FOUND"
	CodeGameFull            = "GAME_FULL"
	CodeInvalidState        = "INVALID_STATE"
	CodeNotEnoughPlayers    = "NOT_ENOUGH_PLAYERS"
	CodePlayerNotInGame     = "PLAYER_NOT_IN_GAME"
	CodeNotYourTurn         = "NOT_YOUR_TURN"
	CodeCardNotInHand       = "CARD_NOT_IN_HAND"
	CodeMissingDeclaredSuit = "MISSING_DECLARED_SUIT"
	CodeIllegalMove         = "ILLEGAL_MOVE"
	CodeDeckExhausted       = "DECK_EXHAUSTED"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrGameFull):
		return &httpError{http.StatusConflict, APIError{CodeGameFull, "Game already has two players"}}
	case errors.Is(err, model.ErrInvalidState):
		return &httpError{http.StatusConflict, APIError{CodeInvalidState, "Operation not valid in the game's current state"}}
	case errors.Is(err, model.ErrNotEnoughPlayers):
		return &httpError{http.StatusConflict, APIError{CodeNotEnoughPlayers, "Not enough players to start"}}
	case errors.Is(err, model.ErrPlayerNotInGame):
		return &httpError{http.StatusForbidden, APIError{CodePlayerNotInGame, "Player is not in this game"}}
	case errors.Is(err, model.ErrNotYourTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrCardNotInHand):
		return &httpError{http.StatusConflict, APIError{CodeCardNotInHand, "Card is not in your hand"}}
	case errors.Is(err, model.ErrMissingDeclaredSuit):
		return &httpError{http.StatusBadRequest, APIError{CodeMissingDeclaredSuit, "Playing an eight requires a declared suit"}}
	case errors.Is(err, model.ErrIllegalMove):
		return &httpError{http.StatusConflict, APIError{CodeIllegalMove, "Card cannot be played on the current discard"}}
	case errors.Is(err, model.ErrDeckExhausted):
		return &httpError{http.StatusConflict, APIError{CodeDeckExhausted, "No cards left to draw"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
