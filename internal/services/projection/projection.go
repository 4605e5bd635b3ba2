package projection

import (
	"github.com/cardtable/eights/internal/model"
)

// Public projects a game into the view any observer may see.
// Opponent hands appear only as sizes.
func Public(g *model.Game) model.PublicView {
	players := make([]model.SeatView, len(g.Players))
	for i, p := range g.Players {
		players[i] = model.SeatView{
			ID:       p.ID,
			Name:     p.Name,
			HandSize: len(p.Hand),
		}
	}

	var topCard *model.Card
	if top, ok := g.TopCard(); ok {
		topCard = &top
	}

	var activeSuit *model.Suit
	if g.ActiveSuit != nil {
		suit := *g.ActiveSuit
		activeSuit = &suit
	}

	var currentPlayerID *model.PlayerID
	if g.State == model.GameStateActive && g.CurrentPlayer < len(g.Players) {
		id := g.Players[g.CurrentPlayer].ID
		currentPlayerID = &id
	}

	var winnerID *model.PlayerID
	var winnerName string
	if g.Winner != nil {
		id := *g.Winner
		winnerID = &id
		if w := g.PlayerByID(id); w != nil {
			winnerName = w.Name
		}
	}

	return model.PublicView{
		GameID:          g.ID,
		State:           g.State,
		Players:         players,
		TopCard:         topCard,
		ActiveSuit:      activeSuit,
		DrawPileSize:    len(g.DrawPile),
		DiscardPileSize: len(g.DiscardPile),
		CurrentPlayerID: currentPlayerID,
		WinnerID:        winnerID,
		WinnerName:      winnerName,
	}
}

// ForPlayer projects a game for one seated player, adding their own hand
// to the public view
func ForPlayer(g *model.Game, playerID model.PlayerID) (model.PlayerView, error) {
	player := g.PlayerByID(playerID)
	if player == nil {
		return model.PlayerView{}, model.ErrPlayerNotInGame
	}

	return model.PlayerView{
		PublicView: Public(g),
		PlayerID:   player.ID,
		Hand:       append([]model.Card{}, player.Hand...),
	}, nil
}

// ForAllPlayers projects each seated player's view, keyed by player id
func ForAllPlayers(g *model.Game) map[model.PlayerID]model.PlayerView {
	views := make(map[model.PlayerID]model.PlayerView, len(g.Players))
	for _, p := range g.Players {
		view, err := ForPlayer(g, p.ID)
		if err != nil {
			continue
		}
		views[p.ID] = view
	}
	return views
}
