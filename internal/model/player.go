package model

// PlayerID uniquely identifies a seated player
type PlayerID string

// Player is a seat in a game, holding its hand of cards
type Player struct {
	ID   PlayerID `json:"id"`
	Name string   `json:"name"`
	Hand []Card   `json:"hand"`
}

// HasCard reports whether the player holds the given card
func (p *Player) HasCard(card Card) bool {
	for _, c := range p.Hand {
		if c == card {
			return true
		}
	}
	return false
}

// RemoveCard removes one instance of card from the hand.
// Returns false if the card is not held.
func (p *Player) RemoveCard(card Card) bool {
	for i, c := range p.Hand {
		if c == card {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}
