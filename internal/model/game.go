package model

import "time"

// GameID uniquely identifies a game
type GameID string

// GameState is the lifecycle state of a game
type GameState string

const (
	GameStateWaiting  GameState = "waiting"
	GameStateActive   GameState = "active"
	GameStateFinished GameState = "finished"
)

// MaxPlayers is the number of seats in a game
const MaxPlayers = 2

// HandSize is the number of cards dealt to each player at start
const HandSize = 7

// Game is the live state of a single Crazy Eights game. It carries no
// locking of its own; the directory serializes access per game.
type Game struct {
	ID            GameID    `json:"id"`
	State         GameState `json:"state"`
	Players       []*Player `json:"players"`
	DrawPile      []Card    `json:"draw_pile"`
	DiscardPile   []Card    `json:"discard_pile"`
	ActiveSuit    *Suit     `json:"active_suit"`
	CurrentPlayer int       `json:"current_player"`
	Winner        *PlayerID `json:"winner"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewGame creates an empty waiting game
func NewGame(id GameID, now time.Time) *Game {
	return &Game{
		ID:        id,
		State:     GameStateWaiting,
		Players:   []*Player{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TopCard returns the top of the discard pile, or false before the first flip
func (g *Game) TopCard() (Card, bool) {
	if len(g.DiscardPile) == 0 {
		return Card{}, false
	}
	return g.DiscardPile[len(g.DiscardPile)-1], true
}

// PlayerByID returns the seated player with the given id, or nil
func (g *Game) PlayerByID(id PlayerID) *Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PlayerIndex returns the seat index for the given player id, or -1
func (g *Game) PlayerIndex(id PlayerID) int {
	for i, p := range g.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// CardTotal counts every card across hands and both piles
func (g *Game) CardTotal() int {
	total := len(g.DrawPile) + len(g.DiscardPile)
	for _, p := range g.Players {
		total += len(p.Hand)
	}
	return total
}
