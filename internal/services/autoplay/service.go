package autoplay

import (
	"context"
	"log/slog"

	"github.com/cardtable/eights/internal/model"
	"github.com/cardtable/eights/internal/services/directory"
)

// Action describes the move the service made for a seat
type Action struct {
	Type         model.MoveType
	Card         model.Card
	DeclaredSuit *model.Suit
	View         model.PlayerView
}

// Service plays a single automated move for a seat through the game
// directory. The directory enforces turn order and legality; the
// strategy only picks among moves that should be legal.
type Service struct {
	directory directory.ControllerInterface
	strategy  Strategy
	logger    *slog.Logger
}

// NewService creates a new autoplay Service
func NewService(directory directory.ControllerInterface, strategy Strategy, logger *slog.Logger) *Service {
	return &Service{
		directory: directory,
		strategy:  strategy,
		logger:    logger.With(slog.String("component", "autoplay")),
	}
}

// Act takes one move for the player: the strategy's play if it has a
// legal card, otherwise a draw. The player must be on turn.
func (s *Service) Act(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (Action, error) {
	view, err := s.directory.GetPlayerState(ctx, gameID, playerID)
	if err != nil {
		return Action{}, err
	}

	if view.State != model.GameStateActive || view.TopCard == nil {
		return Action{}, model.ErrInvalidState
	}
	if view.CurrentPlayerID == nil || *view.CurrentPlayerID != playerID {
		return Action{}, model.ErrNotYourTurn
	}

	decision := s.strategy.ChooseMove(view.Hand, *view.TopCard, view.ActiveSuit)

	if decision.Draw {
		card, after, err := s.directory.DrawCard(ctx, gameID, playerID)
		if err != nil {
			return Action{}, err
		}
		s.logger.Info("auto move drew",
			slog.String("game_id", string(gameID)),
			slog.String("player_id", string(playerID)),
		)
		return Action{Type: model.MoveDraw, Card: card, View: after}, nil
	}

	after, err := s.directory.PlayCard(ctx, gameID, playerID, decision.Card, decision.DeclaredSuit)
	if err != nil {
		return Action{}, err
	}
	s.logger.Info("auto move played",
		slog.String("game_id", string(gameID)),
		slog.String("player_id", string(playerID)),
		slog.String("card", decision.Card.String()),
	)
	return Action{Type: model.MovePlay, Card: decision.Card, DeclaredSuit: decision.DeclaredSuit, View: after}, nil
}
