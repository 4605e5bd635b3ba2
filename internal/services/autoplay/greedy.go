package autoplay

import "github.com/cardtable/eights/internal/model"

// Greedy plays the first legal non-eight in hand order, spends an eight
// only when nothing else is legal, and draws as a last resort.
type Greedy struct{}

// NewGreedy creates a new Greedy strategy
func NewGreedy() *Greedy {
	return &Greedy{}
}

// ChooseMove implements Strategy
func (g *Greedy) ChooseMove(hand []model.Card, top model.Card, activeSuit *model.Suit) Decision {
	for _, card := range hand {
		if card.Rank == model.RankEight {
			continue
		}
		if legal(card, top, activeSuit) {
			return Decision{Card: card}
		}
	}

	for _, card := range hand {
		if card.Rank == model.RankEight {
			suit := declareFor(hand, card)
			return Decision{Card: card, DeclaredSuit: &suit}
		}
	}

	return Decision{Draw: true}
}

// legal reports whether a non-eight card may be played on the discard
func legal(card model.Card, top model.Card, activeSuit *model.Suit) bool {
	if activeSuit != nil {
		return card.Suit == *activeSuit
	}
	return card.Suit == top.Suit || card.Rank == top.Rank
}

// declareFor picks the suit the hand holds most of, ignoring the eight
// being played and any other eights. Ties resolve in deck suit order.
func declareFor(hand []model.Card, eight model.Card) model.Suit {
	counts := make(map[model.Suit]int)
	for _, card := range hand {
		if card == eight || card.Rank == model.RankEight {
			continue
		}
		counts[card.Suit]++
	}

	best := eight.Suit
	bestCount := 0
	for _, suit := range model.Suits {
		if counts[suit] > bestCount {
			best = suit
			bestCount = counts[suit]
		}
	}
	return best
}
