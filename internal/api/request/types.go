package request

// JoinRequest is the request body for joining a game
type JoinRequest struct {
	Name string `json:"name"`
}

// PlayRequest is the request body for playing a card. Card uses
// "<rank><suit>" notation, e.g. "8♥" or "10S". DeclaredSuit is required
// when the card is an eight.
type PlayRequest struct {
	Card         string `json:"card"`
	DeclaredSuit string `json:"declared_suit,omitempty"`
}
