package session

import (
	"log/slog"

	"github.com/cardtable/eights/internal/model"
)

// Broadcaster fans game updates out to every subscribed connection.
// Delivery failures drop the offending connection and never reach the
// caller.
type Broadcaster struct {
	registry *Registry
	logger   *slog.Logger
}

// NewBroadcaster creates a Broadcaster over the given registry
func NewBroadcaster(registry *Registry, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		registry: registry,
		logger:   logger.With(slog.String("component", "broadcaster")),
	}
}

// Deliver sends each subscribed player their own view of the update.
// Players without a per-player view receive the public view instead.
func (b *Broadcaster) Deliver(
	gameID model.GameID,
	eventType model.EventType,
	public model.PublicView,
	players map[model.PlayerID]model.PlayerView,
) {
	for playerID, conn := range b.registry.Connections(gameID) {
		var payload model.ViewPayload
		if view, ok := players[playerID]; ok {
			payload = model.PlayerPayload(view)
		} else {
			payload = model.PublicPayload(public)
		}

		msg := model.UpdateMessage{Type: eventType, View: payload}
		if err := conn.Send(msg); err != nil {
			b.logger.Warn("send failed, dropping connection",
				slog.String("game_id", string(gameID)),
				slog.String("player_id", string(playerID)),
				slog.String("event", string(eventType)),
				slog.String("error", err.Error()),
			)
			b.registry.Unregister(gameID, playerID, conn)
		}
	}
}

// DropGame closes every subscription for a game
func (b *Broadcaster) DropGame(gameID model.GameID) {
	b.registry.DropGame(gameID)
}
