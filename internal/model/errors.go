package model

import "errors"

var (
	// ErrGameNotFound indicates the requested game does not exist
	ErrGameNotFound = errors.New("game not found")

	// ErrGameFull indicates the game already has two seated players
	ErrGameFull = errors.New("game is full")

	// ErrInvalidState indicates the operation is not valid in the game's current state
	ErrInvalidState = errors.New("invalid game state for this operation")

	// ErrNotEnoughPlayers indicates a start was attempted with fewer than two players
	ErrNotEnoughPlayers = errors.New("not enough players to start")

	// ErrPlayerNotInGame indicates the player id is not seated in the game
	ErrPlayerNotInGame = errors.New("player is not in this game")

	// ErrNotYourTurn indicates a move by a player out of turn
	ErrNotYourTurn = errors.New("not your turn")

	// ErrCardNotInHand indicates the player tried to play a card they do not hold
	ErrCardNotInHand = errors.New("card not in hand")

	// ErrMissingDeclaredSuit indicates an eight was played without declaring a suit
	ErrMissingDeclaredSuit = errors.New("playing an eight requires a declared suit")

	// ErrIllegalMove indicates the card does not match the top card or active suit
	ErrIllegalMove = errors.New("card cannot be played on the current discard")

	// ErrDeckExhausted indicates no card can be drawn even after reshuffling
	ErrDeckExhausted = errors.New("draw pile exhausted")
)
