package model

// DeckSize is the number of cards in a standard deck
const DeckSize = 52

// FullDeck returns all 52 cards in a stable suit-major order.
// Callers shuffle the result themselves.
func FullDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			deck = append(deck, Card{Rank: rank, Suit: suit})
		}
	}
	return deck
}
