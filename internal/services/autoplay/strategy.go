package autoplay

import "github.com/cardtable/eights/internal/model"

// Decision is what a strategy wants to do with a turn. Either Draw is
// true, or Card holds the card to play (with DeclaredSuit set when the
// card is an eight).
type Decision struct {
	Draw         bool
	Card         model.Card
	DeclaredSuit *model.Suit
}

// Strategy defines how an automated seat chooses its move
type Strategy interface {
	ChooseMove(hand []model.Card, top model.Card, activeSuit *model.Suit) Decision
}
