package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Suit is one of the four card suits, stored as its symbol
type Suit string

const (
	SuitHearts   Suit = "♥"
	SuitDiamonds Suit = "♦"
	SuitClubs    Suit = "♣"
	SuitSpades   Suit = "♠"
)

// Suits lists all four suits in deck order
var Suits = []Suit{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}

// Rank is a card rank, ace through king
type Rank string

const (
	RankAce   Rank = "A"
	RankTwo   Rank = "2"
	RankThree Rank = "3"
	RankFour  Rank = "4"
	RankFive  Rank = "5"
	RankSix   Rank = "6"
	RankSeven Rank = "7"
	RankEight Rank = "8"
	RankNine  Rank = "9"
	RankTen   Rank = "10"
	RankJack  Rank = "J"
	RankQueen Rank = "Q"
	RankKing  Rank = "K"
)

// Ranks lists all thirteen ranks in deck order
var Ranks = []Rank{
	RankAce, RankTwo, RankThree, RankFour, RankFive, RankSix, RankSeven,
	RankEight, RankNine, RankTen, RankJack, RankQueen, RankKing,
}

// Card is an immutable rank/suit pair; compare with ==
type Card struct {
	Rank Rank
	Suit Suit
}

// String renders the card as "<rank><suit>", e.g. "8♥"
func (c Card) String() string {
	return string(c.Rank) + string(c.Suit)
}

// MarshalJSON encodes the card as its string form
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a card from its string form
func (c *Card) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	card, err := ParseCard(s)
	if err != nil {
		return err
	}
	*c = card
	return nil
}

// suitNames maps upper-cased letter and word forms to suits
var suitNames = map[string]Suit{
	"H": SuitHearts, "HEARTS": SuitHearts,
	"D": SuitDiamonds, "DIAMONDS": SuitDiamonds,
	"C": SuitClubs, "CLUBS": SuitClubs,
	"S": SuitSpades, "SPADES": SuitSpades,
}

// ParseSuit accepts a suit symbol ("♥"), letter ("h") or name ("hearts")
func ParseSuit(s string) (Suit, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", fmt.Errorf("suit cannot be empty")
	}
	for _, suit := range Suits {
		if trimmed == string(suit) {
			return suit, nil
		}
	}
	if suit, ok := suitNames[strings.ToUpper(trimmed)]; ok {
		return suit, nil
	}
	return "", fmt.Errorf("invalid suit: %q", s)
}

// ParseRank accepts a rank value such as "A", "10" or "k"
func ParseRank(s string) (Rank, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(s))
	if trimmed == "" {
		return "", fmt.Errorf("rank cannot be empty")
	}
	for _, rank := range Ranks {
		if trimmed == string(rank) {
			return rank, nil
		}
	}
	return "", fmt.Errorf("invalid rank: %q", s)
}

// ParseCard parses "<rank><suit>" card notation, e.g. "8♥" or "10S".
// The suit is always the final rune.
func ParseCard(s string) (Card, error) {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) < 2 {
		return Card{}, fmt.Errorf("invalid card format: %q", s)
	}
	suit, err := ParseSuit(string(runes[len(runes)-1]))
	if err != nil {
		return Card{}, err
	}
	rank, err := ParseRank(string(runes[:len(runes)-1]))
	if err != nil {
		return Card{}, err
	}
	return Card{Rank: rank, Suit: suit}, nil
}
