package model

// SeatView is a player as seen by anyone: identity and hand size only
type SeatView struct {
	ID       PlayerID `json:"id"`
	Name     string   `json:"name"`
	HandSize int      `json:"hand_size"`
}

// PublicView is the game as any observer may see it. No hand contents.
type PublicView struct {
	GameID          GameID     `json:"game_id"`
	State           GameState  `json:"state"`
	Players         []SeatView `json:"players"`
	TopCard         *Card      `json:"top_card"`
	ActiveSuit      *Suit      `json:"active_suit"`
	DrawPileSize    int        `json:"draw_pile_size"`
	DiscardPileSize int        `json:"discard_pile_size"`
	CurrentPlayerID *PlayerID  `json:"current_player_id"`
	WinnerID        *PlayerID  `json:"winner_id"`
	WinnerName      string     `json:"winner_name,omitempty"`
}

// PlayerView is the public view plus the recipient's own hand
type PlayerView struct {
	PublicView
	PlayerID PlayerID `json:"player_id"`
	Hand     []Card   `json:"hand"`
}

// ViewKind tags which variant a ViewPayload carries
type ViewKind string

const (
	ViewKindPublic ViewKind = "public"
	ViewKindPlayer ViewKind = "player"
)

// ViewPayload is a tagged union of the two view shapes. Exactly one of
// Public/Player is set, matching Kind.
type ViewPayload struct {
	Kind   ViewKind    `json:"kind"`
	Public *PublicView `json:"public,omitempty"`
	Player *PlayerView `json:"player,omitempty"`
}

// PublicPayload wraps a public view in its tagged form
func PublicPayload(v PublicView) ViewPayload {
	return ViewPayload{Kind: ViewKindPublic, Public: &v}
}

// PlayerPayload wraps a player view in its tagged form
func PlayerPayload(v PlayerView) ViewPayload {
	return ViewPayload{Kind: ViewKindPlayer, Player: &v}
}
