package model

import "time"

// GameSnapshot is the archived form of a game, suitable for JSON storage
// and for rehydrating a live game at startup.
type GameSnapshot struct {
	ID            GameID    `json:"id"`
	State         GameState `json:"state"`
	Players       []Player  `json:"players"`
	DrawPile      []Card    `json:"draw_pile"`
	DiscardPile   []Card    `json:"discard_pile"`
	ActiveSuit    *Suit     `json:"active_suit"`
	CurrentPlayer int       `json:"current_player"`
	Winner        *PlayerID `json:"winner"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SnapshotOf copies a game into its archive form
func SnapshotOf(g *Game) GameSnapshot {
	players := make([]Player, len(g.Players))
	for i, p := range g.Players {
		players[i] = Player{
			ID:   p.ID,
			Name: p.Name,
			Hand: append([]Card(nil), p.Hand...),
		}
	}
	return GameSnapshot{
		ID:            g.ID,
		State:         g.State,
		Players:       players,
		DrawPile:      append([]Card(nil), g.DrawPile...),
		DiscardPile:   append([]Card(nil), g.DiscardPile...),
		ActiveSuit:    g.ActiveSuit,
		CurrentPlayer: g.CurrentPlayer,
		Winner:        g.Winner,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

// ToGame rebuilds a live game from a snapshot
func (s GameSnapshot) ToGame() *Game {
	players := make([]*Player, len(s.Players))
	for i := range s.Players {
		p := s.Players[i]
		p.Hand = append([]Card(nil), p.Hand...)
		players[i] = &p
	}
	return &Game{
		ID:            s.ID,
		State:         s.State,
		Players:       players,
		DrawPile:      append([]Card(nil), s.DrawPile...),
		DiscardPile:   append([]Card(nil), s.DiscardPile...),
		ActiveSuit:    s.ActiveSuit,
		CurrentPlayer: s.CurrentPlayer,
		Winner:        s.Winner,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// MoveType identifies what kind of move a record describes
type MoveType string

const (
	MovePlay MoveType = "play"
	MoveDraw MoveType = "draw"
)

// MoveRecord is one archived move in a game's history
type MoveRecord struct {
	ID           string    `json:"id"`
	GameID       GameID    `json:"game_id"`
	PlayerID     PlayerID  `json:"player_id"`
	Type         MoveType  `json:"type"`
	Card         *Card     `json:"card,omitempty"`
	DeclaredSuit *Suit     `json:"declared_suit,omitempty"`
	PlayedAt     time.Time `json:"played_at"`
}
