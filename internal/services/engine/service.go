package engine

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/cardtable/eights/internal/dependencies/clock"
	"github.com/cardtable/eights/internal/dependencies/random"
	"github.com/cardtable/eights/internal/model"
)

// Service applies Crazy Eights rules to a game. It does not lock or
// persist; callers serialize access per game and archive afterwards.
type Service struct {
	clock  clock.Clock
	random random.Random
	logger *slog.Logger
}

// NewService creates a new rules Service
func NewService(clock clock.Clock, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		clock:  clock,
		random: random,
		logger: logger,
	}
}

// NewGame creates a fresh waiting game with a generated id
func (s *Service) NewGame() *model.Game {
	return model.NewGame(model.GameID(uuid.NewString()), s.clock.Now())
}

// Join seats a player and returns them. Joining with a name that is
// already seated returns the existing player, so a client that lost its
// response can safely retry.
func (s *Service) Join(g *model.Game, name string) (*model.Player, error) {
	if g.State != model.GameStateWaiting {
		return nil, model.ErrInvalidState
	}

	for _, p := range g.Players {
		if p.Name == name {
			return p, nil
		}
	}

	if len(g.Players) >= model.MaxPlayers {
		return nil, model.ErrGameFull
	}

	player := &model.Player{
		ID:   model.PlayerID(uuid.NewString()),
		Name: name,
		Hand: []model.Card{},
	}
	g.Players = append(g.Players, player)
	g.UpdatedAt = s.clock.Now()

	s.logger.Info("player joined",
		slog.String("game_id", string(g.ID)),
		slog.String("player_id", string(player.ID)),
		slog.String("player_name", name),
	)

	return player, nil
}

// Start shuffles, deals and activates the game. Calling Start on a game
// that is already active is a no-op.
func (s *Service) Start(g *model.Game) error {
	if g.State == model.GameStateActive {
		return nil
	}
	if g.State != model.GameStateWaiting {
		return model.ErrInvalidState
	}
	if len(g.Players) < model.MaxPlayers {
		return model.ErrNotEnoughPlayers
	}

	deck := model.FullDeck()
	s.random.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	// Deal alternately, one card at a time, in join order
	for i := 0; i < model.HandSize; i++ {
		for _, p := range g.Players {
			p.Hand = append(p.Hand, deck[0])
			deck = deck[1:]
		}
	}

	// Flip the first discard. An eight cannot open the pile, so eights
	// are shuffled back until a plain card comes up.
	for deck[0].Rank == model.RankEight {
		eight := deck[0]
		deck = append(deck[1:], eight)
		s.random.Shuffle(len(deck), func(i, j int) {
			deck[i], deck[j] = deck[j], deck[i]
		})
	}
	g.DiscardPile = []model.Card{deck[0]}
	g.DrawPile = deck[1:]

	g.ActiveSuit = nil
	g.CurrentPlayer = 0
	g.State = model.GameStateActive
	g.UpdatedAt = s.clock.Now()

	top, _ := g.TopCard()
	s.logger.Info("game started",
		slog.String("game_id", string(g.ID)),
		slog.String("top_card", top.String()),
	)

	return nil
}

// Play discards a card from the player's hand. Eights are wild and must
// carry a declared suit; a non-eight clears any declared suit. Emptying
// the hand wins and finishes the game.
func (s *Service) Play(g *model.Game, playerID model.PlayerID, card model.Card, declaredSuit *model.Suit) error {
	if g.State != model.GameStateActive {
		return model.ErrInvalidState
	}

	idx := g.PlayerIndex(playerID)
	if idx == -1 {
		return model.ErrPlayerNotInGame
	}
	if idx != g.CurrentPlayer {
		return model.ErrNotYourTurn
	}

	player := g.Players[idx]
	if !player.HasCard(card) {
		return model.ErrCardNotInHand
	}

	if card.Rank == model.RankEight {
		if declaredSuit == nil {
			return model.ErrMissingDeclaredSuit
		}
	} else if !s.canPlay(g, card) {
		return model.ErrIllegalMove
	}

	player.RemoveCard(card)
	g.DiscardPile = append(g.DiscardPile, card)

	if card.Rank == model.RankEight {
		suit := *declaredSuit
		g.ActiveSuit = &suit
	} else {
		g.ActiveSuit = nil
	}

	if len(player.Hand) == 0 {
		winner := player.ID
		g.Winner = &winner
		g.State = model.GameStateFinished
		s.logger.Info("game finished",
			slog.String("game_id", string(g.ID)),
			slog.String("winner_id", string(winner)),
			slog.String("winner_name", player.Name),
		)
	} else {
		s.advanceTurn(g)
	}

	g.UpdatedAt = s.clock.Now()
	return nil
}

// Draw takes exactly one card from the draw pile and advances the turn.
// An empty draw pile is rebuilt by shuffling every discard but the top
// card; only when that still yields nothing is the deck exhausted.
func (s *Service) Draw(g *model.Game, playerID model.PlayerID) (model.Card, error) {
	if g.State != model.GameStateActive {
		return model.Card{}, model.ErrInvalidState
	}

	idx := g.PlayerIndex(playerID)
	if idx == -1 {
		return model.Card{}, model.ErrPlayerNotInGame
	}
	if idx != g.CurrentPlayer {
		return model.Card{}, model.ErrNotYourTurn
	}

	if len(g.DrawPile) == 0 {
		s.reshuffleDiscards(g)
	}
	if len(g.DrawPile) == 0 {
		return model.Card{}, model.ErrDeckExhausted
	}

	card := g.DrawPile[0]
	g.DrawPile = g.DrawPile[1:]
	g.Players[idx].Hand = append(g.Players[idx].Hand, card)

	s.advanceTurn(g)
	g.UpdatedAt = s.clock.Now()
	return card, nil
}

// canPlay reports whether a non-eight card is playable right now
func (s *Service) canPlay(g *model.Game, card model.Card) bool {
	if g.ActiveSuit != nil {
		return card.Suit == *g.ActiveSuit
	}
	top, ok := g.TopCard()
	if !ok {
		return true
	}
	return card.Suit == top.Suit || card.Rank == top.Rank
}

func (s *Service) advanceTurn(g *model.Game) {
	g.CurrentPlayer = (g.CurrentPlayer + 1) % len(g.Players)
}

// reshuffleDiscards rebuilds the draw pile from every discard except the
// top card, which stays to keep play anchored
func (s *Service) reshuffleDiscards(g *model.Game) {
	if len(g.DiscardPile) <= 1 {
		return
	}

	top := g.DiscardPile[len(g.DiscardPile)-1]
	pile := append([]model.Card(nil), g.DiscardPile[:len(g.DiscardPile)-1]...)
	s.random.Shuffle(len(pile), func(i, j int) {
		pile[i], pile[j] = pile[j], pile[i]
	})

	g.DrawPile = pile
	g.DiscardPile = []model.Card{top}

	s.logger.Info("draw pile reshuffled",
		slog.String("game_id", string(g.ID)),
		slog.Int("cards", len(pile)),
	)
}
