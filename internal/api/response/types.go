package response

import (
	"github.com/cardtable/eights/internal/model"
)

// CreateGameResponse is the response for creating a game
type CreateGameResponse struct {
	GameID string `json:"game_id"`
}

// JoinResponse is the response for joining a game
type JoinResponse struct {
	GameID   string `json:"game_id"`
	PlayerID string `json:"player_id"`
}

// DrawResponse is the response for drawing a card
type DrawResponse struct {
	Card model.Card       `json:"card"`
	View model.PlayerView `json:"view"`
}

// AutoResponse is the response for an automated move
type AutoResponse struct {
	Type         string           `json:"type"`
	Card         model.Card       `json:"card"`
	DeclaredSuit *model.Suit      `json:"declared_suit,omitempty"`
	View         model.PlayerView `json:"view"`
}

// MovesResponse is the response for the move history
type MovesResponse struct {
	Moves []model.MoveRecord `json:"moves"`
}

// HealthResponse is the response for the health check
type HealthResponse struct {
	Status string `json:"status"`
}
